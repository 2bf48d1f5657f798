package omx

// VideoPortDefinition is the video-domain part of a port definition.
type VideoPortDefinition struct {
	MIMEType          string
	FrameWidth        uint32
	FrameHeight       uint32
	Stride            int32
	SliceHeight       uint32
	Bitrate           uint32
	Framerate         uint32 // Q16
	ErrorConcealment  bool
	CompressionFormat VideoCodingType
	ColorFormat       ColorFormat
}

// PortDefinition describes one port: buffer requirements and format.
type PortDefinition struct {
	PortIndex         uint32
	Dir               Direction
	BufferCountActual uint32
	BufferCountMin    uint32
	BufferSize        uint32
	Enabled           bool
	Populated         bool
	Domain            Domain
	BuffersContiguous bool
	BufferAlignment   uint32
	Video             VideoPortDefinition
}

// PortInfo is the framework's record of a port.
type PortInfo struct {
	Def PortDefinition
	// NativeBuffers holds the handles registered through IndexParamUseNativeBuffer2.
	NativeBuffers []uintptr
}

// VideoPortFormat enumerates the formats a port supports.
type VideoPortFormat struct {
	PortIndex         uint32
	Index             uint32
	CompressionFormat VideoCodingType
	ColorFormat       ColorFormat
	Framerate         uint32
}

// ProfileLevel is one supported (profile, level) pair.
type ProfileLevel struct {
	Profile uint32
	Level   uint32
}

// ProfileLevelQuery enumerates supported profile/level pairs by index.
type ProfileLevelQuery struct {
	PortIndex    uint32
	ProfileIndex uint32
	Profile      uint32
	Level        uint32
}

// ComponentRole carries a standard component role such as "video_decoder.avc".
type ComponentRole struct {
	Role string
}

// ConfigRect is a rectangle on a port, used for the output crop.
type ConfigRect struct {
	PortIndex uint32
	Left      uint32
	Top       uint32
	Width     uint32
	Height    uint32
}

// EnableNativeBuffers toggles platform graphic buffers on a port.
type EnableNativeBuffers struct {
	PortIndex uint32
	Enable    bool
}

// NativeBufferUsage reports the usage bits required for platform graphic buffers.
type NativeBufferUsage struct {
	PortIndex uint32
	Usage     uint32
}

// UseNativeBuffer registers a platform graphic buffer on a port.
type UseNativeBuffer struct {
	PortIndex uint32
	Handle    uintptr
}

// PrepareForAdaptivePlayback enables or disables adaptive playback.
type PrepareForAdaptivePlayback struct {
	PortIndex      uint32
	Enable         bool
	MaxFrameWidth  uint32
	MaxFrameHeight uint32
}

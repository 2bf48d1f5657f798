package omx

import (
	"fmt"
	"strings"
)

// Port indices of a two-port video decoder component.
const (
	InputPortIndex  uint32 = 0
	OutputPortIndex uint32 = 1
	MaxPortIndex           = OutputPortIndex
)

// MaxStringNameSize bounds role and component name comparisons.
const MaxStringNameSize = 128

// Direction of a port
type Direction int

const (
	DirInput Direction = iota
	DirOutput
)

// String returns a human-readable string representation of the direction
func (d Direction) String() string {
	switch d {
	case DirInput:
		return "input"
	case DirOutput:
		return "output"
	default:
		return "unknown"
	}
}

// Domain of a port
type Domain int

const (
	DomainAudio Domain = iota
	DomainVideo
	DomainImage
	DomainOther
)

// VideoCodingType identifies the compression format carried on a port.
type VideoCodingType int

const (
	CodingUnused VideoCodingType = iota
	CodingAutoDetect
	CodingMPEG2
	CodingH263
	CodingMPEG4
	CodingWMV
	CodingRV
	CodingAVC
	CodingMJPEG
	CodingVP8
	CodingVP9
	CodingHEVC
)

var codingNames = map[VideoCodingType]string{
	CodingUnused:     "unused",
	CodingAutoDetect: "autodetect",
	CodingMPEG2:      "mpeg2",
	CodingH263:       "h263",
	CodingMPEG4:      "mpeg4",
	CodingWMV:        "wmv",
	CodingRV:         "rv",
	CodingAVC:        "avc",
	CodingMJPEG:      "mjpeg",
	CodingVP8:        "vp8",
	CodingVP9:        "vp9",
	CodingHEVC:       "hevc",
}

func (c VideoCodingType) String() string {
	if name, ok := codingNames[c]; ok {
		return name
	}
	return fmt.Sprintf("coding(%d)", int(c))
}

// ParseCodingType is the inverse of VideoCodingType.String.
func ParseCodingType(name string) (VideoCodingType, bool) {
	for c, n := range codingNames {
		if n == name {
			return c, true
		}
	}
	return CodingUnused, false
}

// ColorFormat identifies the raw pixel layout carried on a port.
type ColorFormat uint32

const (
	ColorFormatUnused           ColorFormat = 0
	ColorFormatYUV420Planar     ColorFormat = 0x13
	ColorFormatYUV420SemiPlanar ColorFormat = 0x15
	ColorFormatAndroidOpaque    ColorFormat = 0x7F000789
)

func (c ColorFormat) String() string {
	switch c {
	case ColorFormatUnused:
		return "unused"
	case ColorFormatYUV420Planar:
		return "yuv420p"
	case ColorFormatYUV420SemiPlanar:
		return "yuv420sp"
	case ColorFormatAndroidOpaque:
		return "android-opaque"
	default:
		return fmt.Sprintf("0x%x", uint32(c))
	}
}

// ParseColorFormat is the inverse of ColorFormat.String for named formats.
func ParseColorFormat(name string) (ColorFormat, bool) {
	for _, c := range []ColorFormat{ColorFormatUnused, ColorFormatYUV420Planar, ColorFormatYUV420SemiPlanar, ColorFormatAndroidOpaque} {
		if c.String() == name {
			return c, true
		}
	}
	return ColorFormatUnused, false
}

// Index selects a parameter or config structure.
type Index uint32

const (
	IndexParamStandardComponentRole           Index = 0x01000017
	IndexParamPortDefinition                  Index = 0x02000001
	IndexParamVideoPortFormat                 Index = 0x06000001
	IndexParamVideoProfileLevelQuerySupported Index = 0x06000010
	IndexConfigCommonOutputCrop               Index = 0x0700001D

	// Vendor extension indices, resolved by name through GetExtensionIndex.
	IndexVendorStart                Index = 0x7F000000
	IndexPrepareForAdaptivePlayback Index = IndexVendorStart + 1
	IndexParamEnableNativeBuffers   Index = IndexVendorStart + 0x11
	IndexParamGetNativeBufferUsage  Index = IndexVendorStart + 0x12
	IndexParamUseNativeBuffer2      Index = IndexVendorStart + 0x13
)

// Vendor extension names.
const (
	ExtPrepareForAdaptivePlayback = "OMX.google.android.index.prepareForAdaptivePlayback"
	ExtEnableNativeBuffers        = "OMX.google.android.index.enableAndroidNativeBuffers"
	ExtGetNativeBufferUsage       = "OMX.google.android.index.getAndroidNativeBufferUsage"
	ExtUseNativeBuffer2           = "OMX.google.android.index.useAndroidNativeBuffer2"
)

var indexNames = map[Index]string{
	IndexParamStandardComponentRole:           "ParamStandardComponentRole",
	IndexParamPortDefinition:                  "ParamPortDefinition",
	IndexParamVideoPortFormat:                 "ParamVideoPortFormat",
	IndexParamVideoProfileLevelQuerySupported: "ParamVideoProfileLevelQuerySupported",
	IndexConfigCommonOutputCrop:               "ConfigCommonOutputCrop",
	IndexPrepareForAdaptivePlayback:           "PrepareForAdaptivePlayback",
	IndexParamEnableNativeBuffers:             "ParamEnableNativeBuffers",
	IndexParamGetNativeBufferUsage:            "ParamGetNativeBufferUsage",
	IndexParamUseNativeBuffer2:                "ParamUseNativeBuffer2",
}

func (i Index) String() string {
	if name, ok := indexNames[i]; ok {
		return name
	}
	return fmt.Sprintf("index(0x%08x)", uint32(i))
}

// Event is emitted by a component towards its client.
type Event int

const (
	EventCmdComplete Event = iota
	EventError
	EventMark
	EventPortSettingsChanged
	EventBufferFlag
)

func (e Event) String() string {
	switch e {
	case EventCmdComplete:
		return "CmdComplete"
	case EventError:
		return "Error"
	case EventMark:
		return "Mark"
	case EventPortSettingsChanged:
		return "PortSettingsChanged"
	case EventBufferFlag:
		return "BufferFlag"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

// Command is sent by a client to a component.
type Command int

const (
	CommandStateSet Command = iota
	CommandFlush
	CommandPortDisable
	CommandPortEnable
	CommandMarkBuffer
)

func (c Command) String() string {
	switch c {
	case CommandStateSet:
		return "StateSet"
	case CommandFlush:
		return "Flush"
	case CommandPortDisable:
		return "PortDisable"
	case CommandPortEnable:
		return "PortEnable"
	case CommandMarkBuffer:
		return "MarkBuffer"
	default:
		return fmt.Sprintf("command(%d)", int(c))
	}
}

// State of a component
type State int

const (
	StateInvalid State = iota
	StateLoaded
	StateIdle
	StateExecuting
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "Loaded"
	case StateIdle:
		return "Idle"
	case StateExecuting:
		return "Executing"
	default:
		return "Invalid"
	}
}

// ParseState is the inverse of State.String, case-insensitive.
func ParseState(name string) (State, bool) {
	for _, s := range []State{StateLoaded, StateIdle, StateExecuting} {
		if strings.EqualFold(s.String(), name) {
			return s, true
		}
	}
	return StateInvalid, false
}

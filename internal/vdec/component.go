// Package vdec is the reusable base of a video decoder component. It owns the
// negotiated configuration of the compressed input port and the raw output
// port, and drives the port reconfiguration handshake whenever the decoded
// frame geometry changes mid-stream.
//
// A Component is not safe for concurrent use. The enclosing framework is
// expected to serialize every call into one instance.
package vdec

import (
	"log/slog"

	"github.com/babelcloud/gbox/packages/vdec/internal/omx"
	"github.com/pkg/errors"
)

const (
	// one uncompressed macroblock
	defaultMinInputBufferSize = 384
	// max input size is normally the output size
	defaultMinCompressionRatio = 1
)

// Config describes the codec a Component decodes. Concrete decoders differ
// only by this data.
type Config struct {
	// Name is the component name, e.g. "OMX.sprd.h264.decoder".
	Name string
	// Role is the standard component role, e.g. "video_decoder.avc".
	Role string
	// CodingType is the compression format of the input port.
	CodingType omx.VideoCodingType
	// ProfileLevels is the table answered by profile/level enumeration.
	// It is referenced, not copied.
	ProfileLevels []omx.ProfileLevel
	// Width and Height are the initial frame dimensions.
	Width  uint32
	Height uint32
	// DecoderSoftware marks a backend decoding on the CPU.
	DecoderSoftware bool
	// IOMMUEnabled marks a backend that maps output buffers through an IOMMU.
	IOMMUEnabled bool
}

// Component implements the port configuration store, the reconfiguration
// state machine and the parameter negotiation of a video decoder.
type Component struct {
	fw     omx.Framework
	logger *slog.Logger

	name          string
	role          string
	codingType    omx.VideoCodingType
	profileLevels []omx.ProfileLevel

	adaptive          bool
	adaptiveMaxWidth  uint32
	adaptiveMaxHeight uint32

	width  uint32
	height uint32

	cropLeft   uint32
	cropTop    uint32
	cropWidth  uint32
	cropHeight uint32

	settingsChange SettingsChangeState

	minInputBufferSize  uint32
	minCompressionRatio uint32

	useNativeBuffers bool
	decoderSoftware  bool
	iommuEnabled     bool

	portsInitialized bool
}

var _ omx.Handler = (*Component)(nil)

// New creates a component bound to fw. Ports must be set up with InitPorts
// before the component is handed to a client.
func New(cfg Config, fw omx.Framework, logger *slog.Logger) (*Component, error) {
	if fw == nil {
		return nil, errors.New("vdec: framework is required")
	}
	if cfg.Role == "" {
		return nil, errors.Errorf("vdec: component %q has no role", cfg.Name)
	}
	if len(cfg.Role) >= omx.MaxStringNameSize {
		return nil, errors.Errorf("vdec: role %q longer than %d bytes", cfg.Role, omx.MaxStringNameSize-1)
	}
	if !FrameSizeSupported(cfg.Width, cfg.Height) {
		return nil, errors.Errorf("vdec: frame size %dx%d not supported", cfg.Width, cfg.Height)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Component{
		fw:                  fw,
		logger:              logger.With("component", cfg.Name),
		name:                cfg.Name,
		role:                cfg.Role,
		codingType:          cfg.CodingType,
		profileLevels:       cfg.ProfileLevels,
		width:               cfg.Width,
		height:              cfg.Height,
		cropWidth:           cfg.Width,
		cropHeight:          cfg.Height,
		settingsChange:      SettingsChangeNone,
		minInputBufferSize:  defaultMinInputBufferSize,
		minCompressionRatio: defaultMinCompressionRatio,
		decoderSoftware:     cfg.DecoderSoftware,
		iommuEnabled:        cfg.IOMMUEnabled,
	}, nil
}

// Name returns the component name.
func (c *Component) Name() string {
	return c.name
}

// Role returns the standard component role.
func (c *Component) Role() string {
	return c.role
}

// CodingType returns the compression format of the input port.
func (c *Component) CodingType() omx.VideoCodingType {
	return c.codingType
}

// UsesNativeBuffers reports whether the output port was switched to platform
// graphic buffers.
func (c *Component) UsesNativeBuffers() bool {
	return c.useNativeBuffers
}

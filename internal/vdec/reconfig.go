package vdec

import (
	"fmt"

	"github.com/babelcloud/gbox/packages/vdec/internal/omx"
)

// SettingsChangeState tracks the output port reconfiguration handshake.
type SettingsChangeState int

const (
	// SettingsChangeNone is the steady state.
	SettingsChangeNone SettingsChangeState = iota
	// SettingsChangeAwaitingDisabled: the client was notified and has to
	// disable the output port.
	SettingsChangeAwaitingDisabled
	// SettingsChangeAwaitingEnabled: the output port is disabled and has to
	// be enabled again with the new definition.
	SettingsChangeAwaitingEnabled
)

// String returns a human-readable string representation of the state
func (s SettingsChangeState) String() string {
	switch s {
	case SettingsChangeNone:
		return "none"
	case SettingsChangeAwaitingDisabled:
		return "awaiting-disabled"
	case SettingsChangeAwaitingEnabled:
		return "awaiting-enabled"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// CropMode tells HandlePortSettingsChange how the crop relates to the new
// geometry.
type CropMode int

const (
	// CropUnset: the backend reported no crop, the crop follows the frame.
	CropUnset CropMode = iota
	// CropChanged: the backend reported a new crop, already stored with SetCrop.
	CropChanged
	// CropSame: the backend reported the crop that is already stored.
	CropSame
)

func (m CropMode) String() string {
	switch m {
	case CropUnset:
		return "unset"
	case CropChanged:
		return "changed"
	case CropSame:
		return "same"
	default:
		return fmt.Sprintf("crop(%d)", int(m))
	}
}

// InvariantError reports a port completion that does not fit the handshake.
// It is raised as a panic: the component state can no longer be trusted.
type InvariantError struct {
	State   SettingsChangeState
	Enabled bool
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("vdec: unexpected output port completion (enabled=%t) in state %s", e.Enabled, e.State)
}

// nextSettingsChange is the transition function of the handshake for an
// output port completion.
func nextSettingsChange(state SettingsChangeState, enabled bool) (SettingsChangeState, error) {
	switch {
	case state == SettingsChangeAwaitingDisabled && !enabled:
		return SettingsChangeAwaitingEnabled, nil
	case state == SettingsChangeAwaitingEnabled && enabled:
		return SettingsChangeNone, nil
	default:
		return state, &InvariantError{State: state, Enabled: enabled}
	}
}

// SettingsChange returns the handshake state.
func (c *Component) SettingsChange() SettingsChangeState {
	return c.settingsChange
}

// HandlePortSettingsChange applies a frame geometry reported by the decoder
// backend. It returns true when the output port has to be cycled before the
// next frame can be delivered; in that case the client has been notified and
// the handshake is in progress.
//
// fakeStride is for backends that write frames using width and height as the
// stride, whatever the negotiated output stride is.
//
// A geometry AcceptsFrame refuses is dropped without touching the ports;
// callers are expected to check it first.
func (c *Component) HandlePortSettingsChange(width, height uint32, mode CropMode, fakeStride bool) (portWillReset bool) {
	if !c.AcceptsFrame(width, height) {
		c.logger.Error("unsupported frame size dropped", "width", width, "height", height, "adaptive", c.adaptive)
		return false
	}

	sizeChanged := width != c.width || height != c.height
	updateCrop := mode == CropUnset
	cropChanged := mode == CropChanged
	strideChanged := false
	if fakeStride {
		def := &c.fw.EditPortInfo(omx.OutputPortIndex).Def
		if def.Video.Stride != int32(width) || def.Video.SliceHeight != height {
			strideChanged = true
		}
	}

	if !sizeChanged && !cropChanged && !strideChanged {
		return false
	}

	c.width = width
	c.height = height

	if (sizeChanged && !c.adaptive) || width > c.adaptiveMaxWidth || height > c.adaptiveMaxHeight {
		if c.adaptive {
			c.adaptiveMaxWidth = max(c.adaptiveMaxWidth, width)
			c.adaptiveMaxHeight = max(c.adaptiveMaxHeight, height)
		}
		c.UpdatePortDefinitions(updateCrop, false)
		c.fw.Notify(omx.EventPortSettingsChanged, omx.OutputPortIndex, 0, nil)
		c.settingsChange = SettingsChangeAwaitingDisabled

		c.logger.Info("output port reconfiguration started",
			"width", width,
			"height", height,
			"adaptive", c.adaptive,
			"size_changed", sizeChanged,
			"stride_changed", strideChanged,
		)
		return true
	}

	c.UpdatePortDefinitions(updateCrop, false)
	if fakeStride {
		// Deliberately inconsistent with the buffer layout: the renderer
		// infers the layout the backend actually wrote from these fields.
		def := &c.fw.EditPortInfo(omx.OutputPortIndex).Def
		def.Video.Stride = int32(c.width)
		def.Video.SliceHeight = c.height
	}
	c.fw.Notify(omx.EventPortSettingsChanged, omx.OutputPortIndex, uint32(omx.IndexConfigCommonOutputCrop), nil)

	c.logger.Debug("output crop updated in place",
		"width", width,
		"height", height,
		"crop", fmt.Sprintf("%d,%d %dx%d", c.cropLeft, c.cropTop, c.cropWidth, c.cropHeight),
	)
	return false
}

// OnPortEnableCompleted advances the handshake. Completions on the input port
// are ignored. A completion that does not match the handshake panics with an
// *InvariantError.
func (c *Component) OnPortEnableCompleted(portIndex uint32, enabled bool) {
	if portIndex != omx.OutputPortIndex {
		return
	}

	next, err := nextSettingsChange(c.settingsChange, enabled)
	if err != nil {
		c.logger.Error("port settings handshake broken", "state", c.settingsChange.String(), "enabled", enabled)
		panic(err)
	}

	c.logger.Debug("port settings handshake advanced", "from", c.settingsChange.String(), "to", next.String())
	c.settingsChange = next
}

// OnReset abandons any handshake in progress. Geometry already applied is kept.
func (c *Component) OnReset() {
	c.settingsChange = SettingsChangeNone
}

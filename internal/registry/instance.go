package registry

import (
	"github.com/babelcloud/gbox/packages/vdec/internal/codecs"
	"github.com/babelcloud/gbox/packages/vdec/internal/omx"
	"github.com/babelcloud/gbox/packages/vdec/internal/simple"
	"github.com/babelcloud/gbox/packages/vdec/internal/vdec"
	"github.com/pkg/errors"
	"k8s.io/utils/keymutex"
)

// ErrDestroyed is returned by calls into a destroyed instance.
var ErrDestroyed = errors.New("registry: component destroyed")

// Instance is one live component. Every method holds the instance lock for
// its whole duration.
type Instance struct {
	handle string
	codec  codecs.Codec
	fw     *simple.Component
	dec    *vdec.Component
	lock   keymutex.KeyMutex

	destroyed bool
}

// Handle returns the instance handle.
func (i *Instance) Handle() string {
	return i.handle
}

// Codec returns the codec the instance decodes.
func (i *Instance) Codec() codecs.Codec {
	return i.codec
}

func (i *Instance) do(fn func() error) (err error) {
	i.lock.LockKey(i.handle)
	defer func() {
		if uerr := i.lock.UnlockKey(i.handle); uerr != nil && err == nil {
			err = uerr
		}
	}()
	if i.destroyed {
		return ErrDestroyed
	}
	return fn()
}

// GetParameter reads a parameter.
func (i *Instance) GetParameter(index omx.Index, params any) error {
	return i.do(func() error {
		return i.fw.GetParameter(index, params)
	})
}

// SetParameter writes a parameter.
func (i *Instance) SetParameter(index omx.Index, params any) error {
	return i.do(func() error {
		return i.fw.SetParameter(index, params)
	})
}

// GetConfig reads a config.
func (i *Instance) GetConfig(index omx.Index, params any) error {
	return i.do(func() error {
		return i.fw.GetConfig(index, params)
	})
}

// GetExtensionIndex resolves an extension name.
func (i *Instance) GetExtensionIndex(name string) (index omx.Index, err error) {
	err = i.do(func() error {
		index, err = i.fw.ResolveExtension(name)
		return err
	})
	return index, err
}

// SendCommand processes a client command.
func (i *Instance) SendCommand(cmd omx.Command, param uint32) error {
	return i.do(func() error {
		return i.fw.SendCommand(cmd, param)
	})
}

// DrainEvents returns the events emitted since the previous call.
func (i *Instance) DrainEvents() (events []simple.EventRecord, err error) {
	err = i.do(func() error {
		events = i.fw.DrainEvents()
		return nil
	})
	return events, err
}

// FrameDecoded is the backend side: it reports the geometry of a decoded
// frame. crop is nil when the backend has no crop information. It returns
// whether the output port is about to be reset. A frame size the output port
// cannot describe fails with omx.ErrorUnsupportedSetting and changes nothing.
func (i *Instance) FrameDecoded(width, height uint32, crop *omx.ConfigRect, fakeStride bool) (portWillReset bool, err error) {
	err = i.do(func() error {
		if !i.dec.AcceptsFrame(width, height) {
			return errors.Wrapf(omx.ErrorUnsupportedSetting, "frame %dx%d", width, height)
		}
		mode := vdec.CropUnset
		if crop != nil {
			mode = i.dec.SetCrop(crop.Left, crop.Top, crop.Width, crop.Height)
		}
		portWillReset = i.dec.HandlePortSettingsChange(width, height, mode, fakeStride)
		return nil
	})
	return portWillReset, err
}

// Snapshot returns the decoder state a client cannot query through parameters.
func (i *Instance) Snapshot() (snap Snapshot, err error) {
	err = i.do(func() error {
		snap.SettingsChange = i.dec.SettingsChange()
		snap.Width, snap.Height = i.dec.Dimensions()
		snap.Adaptive, snap.AdaptiveMaxWidth, snap.AdaptiveMaxHeight = i.dec.Adaptive()
		snap.Crop = i.dec.Crop()
		snap.State = i.fw.State()
		for port := omx.InputPortIndex; port <= omx.MaxPortIndex; port++ {
			def, derr := i.dec.PortDefinition(port)
			if derr != nil {
				return derr
			}
			snap.Ports = append(snap.Ports, def)
		}
		return nil
	})
	return snap, err
}

// Snapshot is a point-in-time copy of an instance's state.
type Snapshot struct {
	State             omx.State
	SettingsChange    vdec.SettingsChangeState
	Width             uint32
	Height            uint32
	Adaptive          bool
	AdaptiveMaxWidth  uint32
	AdaptiveMaxHeight uint32
	Crop              omx.ConfigRect
	Ports             []omx.PortDefinition
}

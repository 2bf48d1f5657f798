package simple

import (
	"github.com/babelcloud/gbox/packages/vdec/internal/omx"
)

// GetParameter is the client entry point for parameter reads.
func (c *Component) GetParameter(index omx.Index, params any) error {
	if c.handler == nil {
		return c.InternalGetParameter(index, params)
	}
	return c.handler.InternalGetParameter(index, params)
}

// SetParameter is the client entry point for parameter writes.
func (c *Component) SetParameter(index omx.Index, params any) error {
	if c.handler == nil {
		return c.InternalSetParameter(index, params)
	}
	return c.handler.InternalSetParameter(index, params)
}

// GetConfig is the client entry point for config reads.
func (c *Component) GetConfig(index omx.Index, params any) error {
	if c.handler == nil {
		return omx.ErrorUnsupportedIndex
	}
	return c.handler.GetConfig(index, params)
}

// ResolveExtension is the client entry point for extension name lookups.
func (c *Component) ResolveExtension(name string) (omx.Index, error) {
	if c.handler == nil {
		return c.GetExtensionIndex(name)
	}
	return c.handler.GetExtensionIndex(name)
}

// InternalGetParameter answers port definition reads.
func (c *Component) InternalGetParameter(index omx.Index, params any) error {
	switch index {
	case omx.IndexParamPortDefinition:
		p, ok := params.(*omx.PortDefinition)
		if !ok {
			return omx.ErrorBadParameter
		}
		if int(p.PortIndex) >= len(c.ports) {
			return omx.ErrorBadPortIndex
		}
		*p = c.ports[p.PortIndex].Def
		return nil

	default:
		return omx.ErrorUnsupportedIndex
	}
}

// InternalSetParameter applies buffer count overrides of a port definition,
// input buffer size overrides, and records native buffers.
func (c *Component) InternalSetParameter(index omx.Index, params any) error {
	switch index {
	case omx.IndexParamPortDefinition:
		p, ok := params.(*omx.PortDefinition)
		if !ok {
			return omx.ErrorBadParameter
		}
		if int(p.PortIndex) >= len(c.ports) {
			return omx.ErrorBadPortIndex
		}
		def := &c.ports[p.PortIndex].Def
		if p.BufferCountActual < def.BufferCountMin {
			return omx.ErrorUnsupportedSetting
		}
		def.BufferCountActual = p.BufferCountActual
		// output sizes are derived by the component from the frame geometry
		if def.Dir == omx.DirInput && p.BufferSize != 0 {
			def.BufferSize = p.BufferSize
		}
		return nil

	case omx.IndexParamUseNativeBuffer2:
		p, ok := params.(*omx.UseNativeBuffer)
		if !ok {
			return omx.ErrorBadParameter
		}
		if int(p.PortIndex) >= len(c.ports) {
			return omx.ErrorBadPortIndex
		}
		port := c.ports[p.PortIndex]
		if !port.Def.Enabled {
			return omx.ErrorIncorrectState
		}
		port.NativeBuffers = append(port.NativeBuffers, p.Handle)
		port.Def.Populated = uint32(len(port.NativeBuffers)) >= port.Def.BufferCountActual
		return nil

	default:
		return omx.ErrorUnsupportedIndex
	}
}

// GetExtensionIndex resolves names registered with RegisterExtension.
func (c *Component) GetExtensionIndex(name string) (omx.Index, error) {
	if index, ok := c.extensions.Get(name); ok {
		return index, nil
	}
	c.logger.Debug("unknown extension", "name", name)
	return 0, omx.ErrorUnsupportedIndex
}

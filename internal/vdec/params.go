package vdec

import (
	"github.com/babelcloud/gbox/packages/vdec/internal/omx"
)

var extensionIndices = map[string]omx.Index{
	omx.ExtPrepareForAdaptivePlayback: omx.IndexPrepareForAdaptivePlayback,
	omx.ExtEnableNativeBuffers:        omx.IndexParamEnableNativeBuffers,
	omx.ExtGetNativeBufferUsage:       omx.IndexParamGetNativeBufferUsage,
	omx.ExtUseNativeBuffer2:           omx.IndexParamUseNativeBuffer2,
}

// InternalGetParameter answers the parameter reads the decoder owns and
// hands everything else to the framework.
func (c *Component) InternalGetParameter(index omx.Index, params any) error {
	switch index {
	case omx.IndexParamVideoPortFormat:
		p, ok := params.(*omx.VideoPortFormat)
		if !ok {
			return omx.ErrorBadParameter
		}
		if p.PortIndex > omx.MaxPortIndex {
			return omx.ErrorBadPortIndex
		}
		if p.Index != 0 {
			return omx.ErrorNoMore
		}

		if p.PortIndex == omx.InputPortIndex {
			p.CompressionFormat = c.codingType
			p.ColorFormat = omx.ColorFormatUnused
			p.Framerate = 0
		} else {
			outDef := &c.fw.EditPortInfo(omx.OutputPortIndex).Def
			p.CompressionFormat = omx.CodingUnused
			p.ColorFormat = outDef.Video.ColorFormat
			p.Framerate = 0
		}
		return nil

	case omx.IndexParamVideoProfileLevelQuerySupported:
		p, ok := params.(*omx.ProfileLevelQuery)
		if !ok {
			return omx.ErrorBadParameter
		}
		if p.PortIndex != omx.InputPortIndex {
			c.logger.Warn("profile level query on wrong port", "port", p.PortIndex)
			return omx.ErrorUnsupportedIndex
		}
		if p.ProfileIndex >= uint32(len(c.profileLevels)) {
			return omx.ErrorNoMore
		}
		p.Profile = c.profileLevels[p.ProfileIndex].Profile
		p.Level = c.profileLevels[p.ProfileIndex].Level
		return nil

	case omx.IndexParamEnableNativeBuffers:
		p, ok := params.(*omx.EnableNativeBuffers)
		if !ok {
			return omx.ErrorBadParameter
		}
		p.Enable = c.useNativeBuffers
		return nil

	case omx.IndexParamGetNativeBufferUsage:
		p, ok := params.(*omx.NativeBufferUsage)
		if !ok {
			return omx.ErrorBadParameter
		}
		p.Usage = c.NativeBufferUsage()
		c.logger.Debug("native buffer usage", "usage", p.Usage)
		return nil

	default:
		return c.fw.InternalGetParameter(index, params)
	}
}

// InternalSetParameter applies the parameter writes the decoder owns and
// hands everything else to the framework.
func (c *Component) InternalSetParameter(index omx.Index, params any) error {
	switch index {
	case omx.IndexParamStandardComponentRole:
		p, ok := params.(*omx.ComponentRole)
		if !ok {
			return omx.ErrorBadParameter
		}
		if truncateName(p.Role) != truncateName(c.role) {
			return omx.ErrorUndefined
		}
		return nil

	case omx.IndexParamVideoPortFormat:
		p, ok := params.(*omx.VideoPortFormat)
		if !ok {
			return omx.ErrorBadParameter
		}
		if p.PortIndex > omx.MaxPortIndex {
			return omx.ErrorBadPortIndex
		}
		if p.Index != 0 {
			return omx.ErrorNoMore
		}

		if p.PortIndex == omx.InputPortIndex {
			if p.CompressionFormat != c.codingType || p.ColorFormat != omx.ColorFormatUnused {
				return omx.ErrorUnsupportedSetting
			}
		} else {
			if p.CompressionFormat != omx.CodingUnused || p.ColorFormat != omx.ColorFormatYUV420SemiPlanar {
				return omx.ErrorUnsupportedSetting
			}
		}
		return nil

	case omx.IndexParamEnableNativeBuffers:
		p, ok := params.(*omx.EnableNativeBuffers)
		if !ok {
			return omx.ErrorBadParameter
		}
		c.useNativeBuffers = p.Enable
		// graphic buffers keep the semi-planar layout on this hardware
		c.fw.EditPortInfo(omx.OutputPortIndex).Def.Video.ColorFormat = omx.ColorFormatYUV420SemiPlanar
		c.logger.Info("native buffers toggled", "enable", p.Enable)
		return nil

	case omx.IndexPrepareForAdaptivePlayback:
		p, ok := params.(*omx.PrepareForAdaptivePlayback)
		if !ok {
			return omx.ErrorBadParameter
		}
		if p.Enable && !FrameSizeSupported(p.MaxFrameWidth, p.MaxFrameHeight) {
			return omx.ErrorUnsupportedSetting
		}
		c.adaptive = p.Enable
		if c.adaptive {
			c.adaptiveMaxWidth = p.MaxFrameWidth
			c.adaptiveMaxHeight = p.MaxFrameHeight
			c.width = c.adaptiveMaxWidth
			c.height = c.adaptiveMaxHeight
		} else {
			c.adaptiveMaxWidth = 0
			c.adaptiveMaxHeight = 0
		}
		c.UpdatePortDefinitions(true, true)
		c.logger.Info("adaptive playback prepared",
			"enable", p.Enable,
			"max_width", p.MaxFrameWidth,
			"max_height", p.MaxFrameHeight,
		)
		return nil

	case omx.IndexParamPortDefinition:
		p, ok := params.(*omx.PortDefinition)
		if !ok {
			return omx.ErrorBadParameter
		}
		if p.PortIndex > omx.MaxPortIndex {
			return omx.ErrorBadPortIndex
		}
		def := &c.fw.EditPortInfo(p.PortIndex).Def

		newWidth, newHeight := p.Video.FrameWidth, p.Video.FrameHeight
		if newWidth != def.Video.FrameWidth || newHeight != def.Video.FrameHeight {
			if !FrameSizeSupported(newWidth, newHeight) {
				return omx.ErrorUnsupportedSetting
			}
			if p.PortIndex == omx.OutputPortIndex {
				c.width = newWidth
				c.height = newHeight
				c.UpdatePortDefinitions(true, true)
				// the buffer size follows the frame size
				p.BufferSize = def.BufferSize
			} else {
				// The input buffer size is driven by the output frame size,
				// a client may still request a larger one below.
				def.Video.FrameWidth = newWidth
				def.Video.FrameHeight = newHeight
			}
		}
		return c.fw.InternalSetParameter(index, params)

	default:
		return c.fw.InternalSetParameter(index, params)
	}
}

// GetConfig answers config reads. Only the output crop is supported.
func (c *Component) GetConfig(index omx.Index, params any) error {
	switch index {
	case omx.IndexConfigCommonOutputCrop:
		p, ok := params.(*omx.ConfigRect)
		if !ok {
			return omx.ErrorBadParameter
		}
		if p.PortIndex != omx.OutputPortIndex {
			return omx.ErrorUndefined
		}
		p.Left = c.cropLeft
		p.Top = c.cropTop
		p.Width = c.cropWidth
		p.Height = c.cropHeight
		return nil

	default:
		return omx.ErrorUnsupportedIndex
	}
}

// GetExtensionIndex resolves the vendor extensions of the decoder and hands
// unknown names to the framework.
func (c *Component) GetExtensionIndex(name string) (omx.Index, error) {
	if index, ok := extensionIndices[name]; ok {
		c.logger.Debug("extension resolved", "name", name, "index", index.String())
		return index, nil
	}
	return c.fw.GetExtensionIndex(name)
}

func truncateName(s string) string {
	if len(s) > omx.MaxStringNameSize-1 {
		return s[:omx.MaxStringNameSize-1]
	}
	return s
}

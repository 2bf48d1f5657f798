package vdec

import (
	"math"

	"github.com/babelcloud/gbox/packages/vdec/internal/omx"
)

const rawVideoMIMEType = "video/raw"

// InitPorts adds the input and output ports to the framework and computes
// their initial sizes. It must be called exactly once.
func (c *Component) InitPorts(numInputBuffers, inputBufferSize, numOutputBuffers uint32, mimeType string, minCompressionRatio uint32) {
	if c.portsInitialized {
		panic("vdec: InitPorts called twice on " + c.name)
	}
	c.portsInitialized = true

	if minCompressionRatio == 0 {
		minCompressionRatio = 1
	}
	c.minInputBufferSize = inputBufferSize
	c.minCompressionRatio = minCompressionRatio

	// frame size is filled in by UpdatePortDefinitions
	c.fw.AddPort(omx.PortDefinition{
		PortIndex:         omx.InputPortIndex,
		Dir:               omx.DirInput,
		BufferCountMin:    numInputBuffers,
		BufferCountActual: numInputBuffers,
		BufferSize:        inputBufferSize,
		Enabled:           true,
		Domain:            omx.DomainVideo,
		BufferAlignment:   1,
		Video: omx.VideoPortDefinition{
			MIMEType:          mimeType,
			CompressionFormat: c.codingType,
			ColorFormat:       omx.ColorFormatUnused,
		},
	})

	c.fw.AddPort(omx.PortDefinition{
		PortIndex:         omx.OutputPortIndex,
		Dir:               omx.DirOutput,
		BufferCountMin:    numOutputBuffers,
		BufferCountActual: numOutputBuffers,
		Enabled:           true,
		Domain:            omx.DomainVideo,
		BufferAlignment:   2,
		Video: omx.VideoPortDefinition{
			MIMEType:          rawVideoMIMEType,
			CompressionFormat: omx.CodingUnused,
			ColorFormat:       omx.ColorFormatYUV420SemiPlanar,
		},
	})

	c.UpdatePortDefinitions(true, true)

	c.logger.Info("ports initialized",
		"mime", mimeType,
		"input_buffers", numInputBuffers,
		"output_buffers", numOutputBuffers,
		"min_input_buffer_size", inputBufferSize,
		"min_compression_ratio", minCompressionRatio,
	)
}

// UpdatePortDefinitions recomputes every derived port field from the current
// frame size. The input buffer size only ever grows here.
func (c *Component) UpdatePortDefinitions(updateCrop, updateInputSize bool) {
	outDef := &c.fw.EditPortInfo(omx.OutputPortIndex).Def
	outDef.Video.FrameWidth, outDef.Video.FrameHeight = c.EffectiveOutputDimensions()
	outDef.Video.Stride = int32(outDef.Video.FrameWidth)
	outDef.Video.SliceHeight = outDef.Video.FrameHeight
	outDef.BufferSize = uint32(outDef.Video.Stride) * outDef.Video.SliceHeight * 3 / 2

	inDef := &c.fw.EditPortInfo(omx.InputPortIndex).Def
	inDef.Video.FrameWidth = c.width
	inDef.Video.FrameHeight = c.height
	// compressed data has no raster layout
	inDef.Video.Stride = 0
	inDef.Video.SliceHeight = 0

	if updateInputSize {
		inDef.BufferSize = max(outDef.BufferSize/c.minCompressionRatio, max(c.minInputBufferSize, inDef.BufferSize))
	}

	if updateCrop {
		c.cropLeft = 0
		c.cropTop = 0
		c.cropWidth = c.width
		c.cropHeight = c.height
	}
}

// FrameSizeSupported reports whether an output port can describe frames of
// width x height: the stride has to fit an int32 and a YUV420 buffer a uint32.
func FrameSizeSupported(width, height uint32) bool {
	if width > math.MaxInt32 {
		return false
	}
	return uint64(width)*uint64(height)*3/2 <= math.MaxUint32
}

// AcceptsFrame reports whether HandlePortSettingsChange can apply a decoded
// frame of width x height, taking the growth of the adaptive maxima into
// account.
func (c *Component) AcceptsFrame(width, height uint32) bool {
	if !FrameSizeSupported(width, height) {
		return false
	}
	if c.adaptive {
		return FrameSizeSupported(max(c.adaptiveMaxWidth, width), max(c.adaptiveMaxHeight, height))
	}
	return true
}

// EffectiveOutputDimensions returns the frame size output buffers are sized
// for: the adaptive maxima while adaptive playback is on, the current frame
// size otherwise.
func (c *Component) EffectiveOutputDimensions() (width, height uint32) {
	if c.adaptive {
		return c.adaptiveMaxWidth, c.adaptiveMaxHeight
	}
	return c.width, c.height
}

// Dimensions returns the current frame size.
func (c *Component) Dimensions() (width, height uint32) {
	return c.width, c.height
}

// Adaptive returns the adaptive playback state.
func (c *Component) Adaptive() (enabled bool, maxWidth, maxHeight uint32) {
	return c.adaptive, c.adaptiveMaxWidth, c.adaptiveMaxHeight
}

// Crop returns the output crop rectangle.
func (c *Component) Crop() omx.ConfigRect {
	return omx.ConfigRect{
		PortIndex: omx.OutputPortIndex,
		Left:      c.cropLeft,
		Top:       c.cropTop,
		Width:     c.cropWidth,
		Height:    c.cropHeight,
	}
}

// SetCrop stores the crop a decoder backend reported for the next frame and
// tells whether it differs from the stored one. The result is meant to be
// passed on to HandlePortSettingsChange.
func (c *Component) SetCrop(left, top, width, height uint32) CropMode {
	if left == c.cropLeft && top == c.cropTop && width == c.cropWidth && height == c.cropHeight {
		return CropSame
	}
	c.cropLeft = left
	c.cropTop = top
	c.cropWidth = width
	c.cropHeight = height
	return CropChanged
}

// PortDefinition returns a copy of a port definition with derived fields up
// to date.
func (c *Component) PortDefinition(portIndex uint32) (omx.PortDefinition, error) {
	if portIndex > omx.MaxPortIndex {
		return omx.PortDefinition{}, omx.ErrorBadPortIndex
	}
	return c.fw.EditPortInfo(portIndex).Def, nil
}

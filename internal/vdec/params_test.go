package vdec

import (
	"fmt"
	"strings"
	"testing"

	"github.com/babelcloud/gbox/packages/vdec/internal/omx"
	"github.com/babelcloud/gbox/packages/vdec/internal/simple"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGetPortFormat(t *testing.T) {
	c, _ := newTestComponent(t, 320, 240)

	tests := []struct {
		name    string
		port    uint32
		index   uint32
		want    omx.VideoPortFormat
		wantErr error
	}{
		{
			name: "input",
			port: omx.InputPortIndex,
			want: omx.VideoPortFormat{PortIndex: omx.InputPortIndex, CompressionFormat: omx.CodingAVC, ColorFormat: omx.ColorFormatUnused},
		},
		{
			name: "output",
			port: omx.OutputPortIndex,
			want: omx.VideoPortFormat{PortIndex: omx.OutputPortIndex, CompressionFormat: omx.CodingUnused, ColorFormat: omx.ColorFormatYUV420SemiPlanar},
		},
		{name: "second format", port: omx.InputPortIndex, index: 1, wantErr: omx.ErrorNoMore},
		{name: "bad port", port: 2, wantErr: omx.ErrorBadPortIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := omx.VideoPortFormat{PortIndex: tt.port, Index: tt.index, Framerate: 30 << 16}
			err := c.InternalGetParameter(omx.IndexParamVideoPortFormat, &p)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestSetPortFormat(t *testing.T) {
	c, _ := newTestComponent(t, 320, 240)

	tests := []struct {
		name    string
		format  omx.VideoPortFormat
		wantErr error
	}{
		{
			name:   "input coding",
			format: omx.VideoPortFormat{PortIndex: omx.InputPortIndex, CompressionFormat: omx.CodingAVC},
		},
		{
			name:    "input other coding",
			format:  omx.VideoPortFormat{PortIndex: omx.InputPortIndex, CompressionFormat: omx.CodingHEVC},
			wantErr: omx.ErrorUnsupportedSetting,
		},
		{
			name:    "input with color",
			format:  omx.VideoPortFormat{PortIndex: omx.InputPortIndex, CompressionFormat: omx.CodingAVC, ColorFormat: omx.ColorFormatYUV420Planar},
			wantErr: omx.ErrorUnsupportedSetting,
		},
		{
			name:   "output semi-planar",
			format: omx.VideoPortFormat{PortIndex: omx.OutputPortIndex, ColorFormat: omx.ColorFormatYUV420SemiPlanar},
		},
		{
			name:    "output planar",
			format:  omx.VideoPortFormat{PortIndex: omx.OutputPortIndex, ColorFormat: omx.ColorFormatYUV420Planar},
			wantErr: omx.ErrorUnsupportedSetting,
		},
		{
			name:    "output compressed",
			format:  omx.VideoPortFormat{PortIndex: omx.OutputPortIndex, CompressionFormat: omx.CodingAVC, ColorFormat: omx.ColorFormatYUV420SemiPlanar},
			wantErr: omx.ErrorUnsupportedSetting,
		},
		{
			name:    "second format",
			format:  omx.VideoPortFormat{PortIndex: omx.OutputPortIndex, Index: 1, ColorFormat: omx.ColorFormatYUV420SemiPlanar},
			wantErr: omx.ErrorNoMore,
		},
		{
			name:    "bad port",
			format:  omx.VideoPortFormat{PortIndex: 7},
			wantErr: omx.ErrorBadPortIndex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.InternalSetParameter(omx.IndexParamVideoPortFormat, &tt.format)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestProfileLevelQuery(t *testing.T) {
	c, _ := newTestComponent(t, 320, 240)

	for i, want := range testProfileLevels {
		q := omx.ProfileLevelQuery{PortIndex: omx.InputPortIndex, ProfileIndex: uint32(i)}
		require.NoError(t, c.InternalGetParameter(omx.IndexParamVideoProfileLevelQuerySupported, &q))
		assert.Equal(t, want.Profile, q.Profile)
		assert.Equal(t, want.Level, q.Level)
	}

	q := omx.ProfileLevelQuery{PortIndex: omx.InputPortIndex, ProfileIndex: 3}
	assert.ErrorIs(t, c.InternalGetParameter(omx.IndexParamVideoProfileLevelQuerySupported, &q), omx.ErrorNoMore)

	q = omx.ProfileLevelQuery{PortIndex: omx.OutputPortIndex}
	assert.ErrorIs(t, c.InternalGetParameter(omx.IndexParamVideoProfileLevelQuerySupported, &q), omx.ErrorUnsupportedIndex)
}

func TestSetComponentRole(t *testing.T) {
	c, _ := newTestComponent(t, 320, 240)

	assert.NoError(t, c.InternalSetParameter(omx.IndexParamStandardComponentRole, &omx.ComponentRole{Role: "video_decoder.avc"}))
	assert.ErrorIs(t, c.InternalSetParameter(omx.IndexParamStandardComponentRole, &omx.ComponentRole{Role: "video_decoder.hevc"}), omx.ErrorUndefined)
	assert.ErrorIs(t, c.InternalSetParameter(omx.IndexParamStandardComponentRole, &omx.ComponentRole{Role: "video_decoder"}), omx.ErrorUndefined)
}

func TestSetComponentRoleTruncated(t *testing.T) {
	role := strings.Repeat("r", omx.MaxStringNameSize-1)
	cfg := testConfig(320, 240)
	cfg.Role = role
	c, err := New(cfg, simple.New("test", nil), nil)
	require.NoError(t, err)

	// only the first 127 bytes take part in the comparison
	assert.NoError(t, c.InternalSetParameter(omx.IndexParamStandardComponentRole, &omx.ComponentRole{Role: role + "suffix"}))
	assert.ErrorIs(t, c.InternalSetParameter(omx.IndexParamStandardComponentRole, &omx.ComponentRole{Role: role[1:]}), omx.ErrorUndefined)
}

func TestGetConfigCrop(t *testing.T) {
	c, _ := newTestComponent(t, 320, 240)
	c.SetCrop(4, 2, 312, 236)

	crop := omx.ConfigRect{PortIndex: omx.OutputPortIndex}
	require.NoError(t, c.GetConfig(omx.IndexConfigCommonOutputCrop, &crop))
	assert.Equal(t, omx.ConfigRect{PortIndex: omx.OutputPortIndex, Left: 4, Top: 2, Width: 312, Height: 236}, crop)

	crop = omx.ConfigRect{PortIndex: omx.InputPortIndex}
	assert.ErrorIs(t, c.GetConfig(omx.IndexConfigCommonOutputCrop, &crop), omx.ErrorUndefined)
	assert.Zero(t, crop.Width)

	assert.ErrorIs(t, c.GetConfig(omx.IndexParamPortDefinition, &omx.PortDefinition{}), omx.ErrorUnsupportedIndex)
}

func TestEnableNativeBuffers(t *testing.T) {
	c, _ := newTestComponent(t, 320, 240)

	p := omx.EnableNativeBuffers{PortIndex: omx.OutputPortIndex}
	require.NoError(t, c.InternalGetParameter(omx.IndexParamEnableNativeBuffers, &p))
	assert.False(t, p.Enable)

	require.NoError(t, c.InternalSetParameter(omx.IndexParamEnableNativeBuffers, &omx.EnableNativeBuffers{PortIndex: omx.OutputPortIndex, Enable: true}))
	require.NoError(t, c.InternalGetParameter(omx.IndexParamEnableNativeBuffers, &p))
	assert.True(t, p.Enable)
	assert.True(t, c.UsesNativeBuffers())
	assert.Equal(t, omx.ColorFormatYUV420SemiPlanar, outputDef(c).Video.ColorFormat)

	require.NoError(t, c.InternalSetParameter(omx.IndexParamEnableNativeBuffers, &omx.EnableNativeBuffers{PortIndex: omx.OutputPortIndex}))
	assert.False(t, c.UsesNativeBuffers())
	assert.Equal(t, omx.ColorFormatYUV420SemiPlanar, outputDef(c).Video.ColorFormat)
}

func TestPrepareForAdaptivePlayback(t *testing.T) {
	c, _ := newTestComponent(t, 640, 480)

	enableAdaptive(t, c, 1920, 1080)
	enabled, maxW, maxH := c.Adaptive()
	assert.True(t, enabled)
	assert.Equal(t, uint32(1920), maxW)
	assert.Equal(t, uint32(1080), maxH)
	w, h := c.Dimensions()
	assert.Equal(t, uint32(1920), w)
	assert.Equal(t, uint32(1080), h)
	assert.Equal(t, omx.ConfigRect{PortIndex: omx.OutputPortIndex, Width: 1920, Height: 1080}, c.Crop())
	assert.Equal(t, uint32(1920*1080*3/2/2), inputDef(c).BufferSize)

	require.NoError(t, c.InternalSetParameter(omx.IndexPrepareForAdaptivePlayback, &omx.PrepareForAdaptivePlayback{
		PortIndex:      omx.OutputPortIndex,
		MaxFrameWidth:  4096,
		MaxFrameHeight: 2160,
	}))
	enabled, maxW, maxH = c.Adaptive()
	assert.False(t, enabled)
	assert.Zero(t, maxW)
	assert.Zero(t, maxH)
	assert.Equal(t, uint32(1920), outputDef(c).Video.FrameWidth)
}

func TestPrepareForAdaptivePlaybackUnsupportedSize(t *testing.T) {
	c, _ := newTestComponent(t, 640, 480)
	out := outputDef(c)

	err := c.InternalSetParameter(omx.IndexPrepareForAdaptivePlayback, &omx.PrepareForAdaptivePlayback{
		PortIndex:      omx.OutputPortIndex,
		Enable:         true,
		MaxFrameWidth:  65536,
		MaxFrameHeight: 65536,
	})
	assert.ErrorIs(t, err, omx.ErrorUnsupportedSetting)

	enabled, maxW, maxH := c.Adaptive()
	assert.False(t, enabled)
	assert.Zero(t, maxW)
	assert.Zero(t, maxH)
	w, h := c.Dimensions()
	assert.Equal(t, uint32(640), w)
	assert.Equal(t, uint32(480), h)
	assert.Equal(t, out, outputDef(c))
}

func TestSetPortDefinition(t *testing.T) {
	t.Run("output size", func(t *testing.T) {
		c, _ := newTestComponent(t, 320, 240)
		def := outputDef(c)
		def.Video.FrameWidth = 1280
		def.Video.FrameHeight = 720
		def.BufferSize = 1

		require.NoError(t, c.InternalSetParameter(omx.IndexParamPortDefinition, &def))
		assert.Equal(t, uint32(1280*720*3/2), def.BufferSize, "caller's size follows the frame size")

		out := outputDef(c)
		assert.Equal(t, uint32(1280), out.Video.FrameWidth)
		assert.Equal(t, int32(1280), out.Video.Stride)
		assert.Equal(t, uint32(1280*720*3/2), out.BufferSize)
		assert.Equal(t, uint32(1280*720*3/2/2), inputDef(c).BufferSize)
		assert.Equal(t, omx.ConfigRect{PortIndex: omx.OutputPortIndex, Width: 1280, Height: 720}, c.Crop())
		assert.Equal(t, SettingsChangeNone, c.SettingsChange())
	})

	t.Run("input size", func(t *testing.T) {
		c, _ := newTestComponent(t, 320, 240)
		def := inputDef(c)
		def.Video.FrameWidth = 1280
		def.Video.FrameHeight = 720

		require.NoError(t, c.InternalSetParameter(omx.IndexParamPortDefinition, &def))
		assert.Equal(t, uint32(1280), inputDef(c).Video.FrameWidth)
		assert.Equal(t, uint32(320), outputDef(c).Video.FrameWidth)
		w, _ := c.Dimensions()
		assert.Equal(t, uint32(320), w)
	})

	t.Run("larger input buffers", func(t *testing.T) {
		c, _ := newTestComponent(t, 320, 240)
		def := inputDef(c)
		def.BufferSize = 1 << 20
		def.BufferCountActual = 8

		require.NoError(t, c.InternalSetParameter(omx.IndexParamPortDefinition, &def))
		assert.Equal(t, uint32(1<<20), inputDef(c).BufferSize)
		assert.Equal(t, uint32(8), inputDef(c).BufferCountActual)
	})

	t.Run("too few buffers", func(t *testing.T) {
		c, _ := newTestComponent(t, 320, 240)
		def := outputDef(c)
		def.BufferCountActual = 1

		assert.ErrorIs(t, c.InternalSetParameter(omx.IndexParamPortDefinition, &def), omx.ErrorUnsupportedSetting)
	})

	t.Run("bad port", func(t *testing.T) {
		c, _ := newTestComponent(t, 320, 240)
		assert.ErrorIs(t, c.InternalSetParameter(omx.IndexParamPortDefinition, &omx.PortDefinition{PortIndex: 2}), omx.ErrorBadPortIndex)
	})

	for _, port := range []uint32{omx.InputPortIndex, omx.OutputPortIndex} {
		t.Run(fmt.Sprintf("unsupported size on port %d", port), func(t *testing.T) {
			c, _ := newTestComponent(t, 320, 240)
			out, in := outputDef(c), inputDef(c)
			def := c.fw.EditPortInfo(port).Def
			def.Video.FrameWidth = 1 << 31
			def.Video.FrameHeight = 2

			assert.ErrorIs(t, c.InternalSetParameter(omx.IndexParamPortDefinition, &def), omx.ErrorUnsupportedSetting)
			assert.Equal(t, out, outputDef(c))
			assert.Equal(t, in, inputDef(c))
			w, h := c.Dimensions()
			assert.Equal(t, uint32(320), w)
			assert.Equal(t, uint32(240), h)
		})
	}
}

func TestGetExtensionIndex(t *testing.T) {
	c, fw := newMockComponent(t, 320, 240)

	tests := []struct {
		name string
		want omx.Index
	}{
		{omx.ExtPrepareForAdaptivePlayback, omx.IndexPrepareForAdaptivePlayback},
		{omx.ExtEnableNativeBuffers, omx.IndexParamEnableNativeBuffers},
		{omx.ExtGetNativeBufferUsage, omx.IndexParamGetNativeBufferUsage},
		{omx.ExtUseNativeBuffer2, omx.IndexParamUseNativeBuffer2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.GetExtensionIndex(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	fw.EXPECT().GetExtensionIndex("OMX.vendor.index.unknown").Return(omx.Index(0), omx.ErrorUnsupportedIndex)
	_, err := c.GetExtensionIndex("OMX.vendor.index.unknown")
	assert.ErrorIs(t, err, omx.ErrorUnsupportedIndex)
}

func TestParameterFallback(t *testing.T) {
	c, fw := newMockComponent(t, 320, 240)

	def := &omx.PortDefinition{PortIndex: omx.OutputPortIndex}
	fw.EXPECT().InternalGetParameter(omx.IndexParamPortDefinition, def).Return(nil)
	assert.NoError(t, c.InternalGetParameter(omx.IndexParamPortDefinition, def))

	unknown := omx.Index(0x7F0000FF)
	fw.EXPECT().InternalGetParameter(unknown, gomock.Any()).Return(omx.ErrorUnsupportedIndex)
	assert.ErrorIs(t, c.InternalGetParameter(unknown, &struct{}{}), omx.ErrorUnsupportedIndex)

	fw.EXPECT().InternalSetParameter(unknown, gomock.Any()).Return(omx.ErrorUnsupportedIndex)
	assert.ErrorIs(t, c.InternalSetParameter(unknown, &struct{}{}), omx.ErrorUnsupportedIndex)

	// port definitions always reach the framework after the component's own handling
	set := outputDef(c)
	fw.EXPECT().InternalSetParameter(omx.IndexParamPortDefinition, &set).Return(nil)
	assert.NoError(t, c.InternalSetParameter(omx.IndexParamPortDefinition, &set))
}

func TestParameterWrongType(t *testing.T) {
	c, _ := newTestComponent(t, 320, 240)

	indices := []omx.Index{
		omx.IndexParamVideoPortFormat,
		omx.IndexParamVideoProfileLevelQuerySupported,
		omx.IndexParamEnableNativeBuffers,
		omx.IndexParamGetNativeBufferUsage,
	}
	for _, index := range indices {
		assert.ErrorIs(t, c.InternalGetParameter(index, &omx.ComponentRole{}), omx.ErrorBadParameter, index.String())
	}

	indices = []omx.Index{
		omx.IndexParamStandardComponentRole,
		omx.IndexParamVideoPortFormat,
		omx.IndexParamEnableNativeBuffers,
		omx.IndexPrepareForAdaptivePlayback,
		omx.IndexParamPortDefinition,
	}
	for _, index := range indices {
		assert.ErrorIs(t, c.InternalSetParameter(index, omx.ConfigRect{}), omx.ErrorBadParameter, index.String())
	}

	assert.ErrorIs(t, c.GetConfig(omx.IndexConfigCommonOutputCrop, &omx.PortDefinition{}), omx.ErrorBadParameter)
}

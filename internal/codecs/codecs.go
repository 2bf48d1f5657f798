// Package codecs lists the video decoders the component factory can build.
// Decoders differ only by data: role, MIME type, coding type, profile/level
// table and port sizing.
package codecs

import (
	"sort"

	"github.com/babelcloud/gbox/packages/vdec/internal/omx"
)

// Codec describes one decoder component.
type Codec struct {
	Name          string
	Role          string
	MIMEType      string
	CodingType    omx.VideoCodingType
	ProfileLevels []omx.ProfileLevel

	// initial frame size
	Width  uint32
	Height uint32

	NumInputBuffers     uint32
	InputBufferSize     uint32
	NumOutputBuffers    uint32
	MinCompressionRatio uint32

	// FakeStride marks backends that write frames with the frame width as
	// stride, ignoring the negotiated output stride.
	FakeStride bool
}

var catalog = map[string]Codec{
	"OMX.sprd.h264.decoder": {
		Name:                "OMX.sprd.h264.decoder",
		Role:                "video_decoder.avc",
		MIMEType:            "video/avc",
		CodingType:          omx.CodingAVC,
		ProfileLevels:       avcProfileLevels,
		Width:               320,
		Height:              240,
		NumInputBuffers:     8,
		InputBufferSize:     1920 * 1088 * 3 / 2 / 2,
		NumOutputBuffers:    5,
		MinCompressionRatio: 2,
	},
	"OMX.sprd.hevc.decoder": {
		Name:                "OMX.sprd.hevc.decoder",
		Role:                "video_decoder.hevc",
		MIMEType:            "video/hevc",
		CodingType:          omx.CodingHEVC,
		ProfileLevels:       hevcProfileLevels,
		Width:               320,
		Height:              240,
		NumInputBuffers:     4,
		InputBufferSize:     1920 * 1088 * 3 / 2 / 4,
		NumOutputBuffers:    4,
		MinCompressionRatio: 4,
	},
	"OMX.sprd.mpeg4.decoder": {
		Name:                "OMX.sprd.mpeg4.decoder",
		Role:                "video_decoder.mpeg4",
		MIMEType:            "video/mp4v-es",
		CodingType:          omx.CodingMPEG4,
		ProfileLevels:       mpeg4ProfileLevels,
		Width:               352,
		Height:              288,
		NumInputBuffers:     4,
		InputBufferSize:     8192,
		NumOutputBuffers:    2,
		MinCompressionRatio: 1,
		FakeStride:          true,
	},
	"OMX.sprd.h263.decoder": {
		Name:                "OMX.sprd.h263.decoder",
		Role:                "video_decoder.h263",
		MIMEType:            "video/3gpp",
		CodingType:          omx.CodingH263,
		ProfileLevels:       h263ProfileLevels,
		Width:               352,
		Height:              288,
		NumInputBuffers:     4,
		InputBufferSize:     8192,
		NumOutputBuffers:    2,
		MinCompressionRatio: 1,
		FakeStride:          true,
	},
	"OMX.sprd.vpx.decoder": {
		Name:                "OMX.sprd.vpx.decoder",
		Role:                "video_decoder.vp8",
		MIMEType:            "video/x-vnd.on2.vp8",
		CodingType:          omx.CodingVP8,
		ProfileLevels:       vp8ProfileLevels,
		Width:               320,
		Height:              240,
		NumInputBuffers:     4,
		InputBufferSize:     768 * 1024,
		NumOutputBuffers:    4,
		MinCompressionRatio: 2,
	},
	"OMX.sprd.vp9.decoder": {
		Name:                "OMX.sprd.vp9.decoder",
		Role:                "video_decoder.vp9",
		MIMEType:            "video/x-vnd.on2.vp9",
		CodingType:          omx.CodingVP9,
		ProfileLevels:       vp9ProfileLevels,
		Width:               320,
		Height:              240,
		NumInputBuffers:     4,
		InputBufferSize:     768 * 1024,
		NumOutputBuffers:    4,
		MinCompressionRatio: 2,
	},
}

// Lookup returns the codec registered under a component name.
func Lookup(name string) (Codec, bool) {
	c, ok := catalog[name]
	return c, ok
}

// All returns every codec ordered by component name.
func All() []Codec {
	all := make([]Codec, 0, len(catalog))
	for _, c := range catalog {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Name < all[j].Name
	})
	return all
}

// Package probe derives frame geometry from codec parameter sets, standing
// in for the geometry a decoder backend reports after parsing a stream
// header. Parsing is done by mediacommon.
package probe

import (
	"github.com/babelcloud/gbox/packages/vdec/internal/omx"
	"github.com/babelcloud/gbox/packages/vdec/internal/vdec"
	"github.com/bluenviron/mediacommon/v2/pkg/codecs/h264"
	"github.com/bluenviron/mediacommon/v2/pkg/codecs/h265"
	"github.com/pkg/errors"
)

// Geometry is the coded frame size and the display window inside it.
type Geometry struct {
	Width  uint32
	Height uint32
	// Crop is the display window. Cropped is false when it covers the whole frame.
	Crop    omx.ConfigRect
	Cropped bool
}

// FromParameterSet extracts the geometry of the sequence parameter set found
// in data. data is either a single NAL unit or an Annex-B byte stream. A frame
// size an output port cannot describe fails with omx.ErrorUnsupportedSetting.
func FromParameterSet(coding omx.VideoCodingType, data []byte) (Geometry, error) {
	var (
		g   Geometry
		err error
	)
	switch coding {
	case omx.CodingAVC:
		nalu, ferr := findNALU(data, func(n []byte) bool {
			return h264.NALUType(n[0]&0x1F) == h264.NALUTypeSPS
		})
		if ferr != nil {
			return Geometry{}, ferr
		}
		g, err = fromH264(nalu)

	case omx.CodingHEVC:
		nalu, ferr := findNALU(data, func(n []byte) bool {
			return h265.NALUType((n[0]>>1)&0x3F) == h265.NALUType_SPS_NUT
		})
		if ferr != nil {
			return Geometry{}, ferr
		}
		g, err = fromH265(nalu)

	default:
		return Geometry{}, errors.Errorf("probe: no parameter set parser for %s", coding)
	}
	if err != nil {
		return Geometry{}, err
	}

	if !vdec.FrameSizeSupported(g.Width, g.Height) {
		return Geometry{}, errors.Wrapf(omx.ErrorUnsupportedSetting, "probe: frame %dx%d", g.Width, g.Height)
	}
	return g, nil
}

func findNALU(data []byte, match func([]byte) bool) ([]byte, error) {
	if len(data) == 0 {
		return nil, errors.New("probe: empty parameter set")
	}

	nalus := [][]byte{data}
	if len(data) > 3 && data[0] == 0x00 && data[1] == 0x00 {
		var annexB h264.AnnexB
		if err := annexB.Unmarshal(data); err != nil {
			return nil, errors.Wrap(err, "probe: invalid Annex-B stream")
		}
		nalus = annexB
	}

	for _, nalu := range nalus {
		if len(nalu) > 0 && match(nalu) {
			return nalu, nil
		}
	}
	return nil, errors.New("probe: no sequence parameter set found")
}

func fromH264(nalu []byte) (Geometry, error) {
	var sps h264.SPS
	if err := sps.Unmarshal(nalu); err != nil {
		return Geometry{}, errors.Wrap(err, "probe: invalid H.264 SPS")
	}

	codedWidth := (sps.PicWidthInMbsMinus1 + 1) * 16
	fieldFactor := uint32(2)
	if sps.FrameMbsOnlyFlag {
		fieldFactor = 1
	}
	codedHeight := fieldFactor * (sps.PicHeightInMapUnitsMinus1 + 1) * 16

	g := Geometry{
		Width:  codedWidth,
		Height: codedHeight,
		Crop: omx.ConfigRect{
			PortIndex: omx.OutputPortIndex,
			Width:     uint32(sps.Width()),
			Height:    uint32(sps.Height()),
		},
	}

	if fc := sps.FrameCropping; fc != nil {
		if fc.LeftOffset+fc.RightOffset > 0 {
			unitX := (codedWidth - g.Crop.Width) / (fc.LeftOffset + fc.RightOffset)
			g.Crop.Left = fc.LeftOffset * unitX
		}
		if fc.TopOffset+fc.BottomOffset > 0 {
			unitY := (codedHeight - g.Crop.Height) / (fc.TopOffset + fc.BottomOffset)
			g.Crop.Top = fc.TopOffset * unitY
		}
	}
	g.Cropped = g.Crop.Left != 0 || g.Crop.Top != 0 || g.Crop.Width != codedWidth || g.Crop.Height != codedHeight

	return g, nil
}

func fromH265(nalu []byte) (Geometry, error) {
	var sps h265.SPS
	if err := sps.Unmarshal(nalu); err != nil {
		return Geometry{}, errors.Wrap(err, "probe: invalid H.265 SPS")
	}

	width, height := uint32(sps.Width()), uint32(sps.Height())
	return Geometry{
		Width:  width,
		Height: height,
		Crop: omx.ConfigRect{
			PortIndex: omx.OutputPortIndex,
			Width:     width,
			Height:    height,
		},
	}, nil
}

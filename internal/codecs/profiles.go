package codecs

import "github.com/babelcloud/gbox/packages/vdec/internal/omx"

// AVC profiles and levels
const (
	AVCProfileBaseline uint32 = 0x01
	AVCProfileMain     uint32 = 0x02
	AVCProfileExtended uint32 = 0x04
	AVCProfileHigh     uint32 = 0x08

	AVCLevel1  uint32 = 0x01
	AVCLevel1b uint32 = 0x02
	AVCLevel11 uint32 = 0x04
	AVCLevel12 uint32 = 0x08
	AVCLevel13 uint32 = 0x10
	AVCLevel2  uint32 = 0x20
	AVCLevel21 uint32 = 0x40
	AVCLevel22 uint32 = 0x80
	AVCLevel3  uint32 = 0x100
	AVCLevel31 uint32 = 0x200
	AVCLevel32 uint32 = 0x400
	AVCLevel4  uint32 = 0x800
	AVCLevel41 uint32 = 0x1000
	AVCLevel42 uint32 = 0x2000
	AVCLevel5  uint32 = 0x4000
	AVCLevel51 uint32 = 0x8000
)

// HEVC profiles and levels
const (
	HEVCProfileMain   uint32 = 0x01
	HEVCProfileMain10 uint32 = 0x02

	HEVCMainTierLevel3  uint32 = 0x40
	HEVCMainTierLevel31 uint32 = 0x100
	HEVCMainTierLevel4  uint32 = 0x400
	HEVCMainTierLevel41 uint32 = 0x1000
	HEVCMainTierLevel5  uint32 = 0x4000
	HEVCMainTierLevel51 uint32 = 0x10000
)

// MPEG-4 part 2 profiles and levels
const (
	MPEG4ProfileSimple         uint32 = 0x01
	MPEG4ProfileAdvancedSimple uint32 = 0x8000

	MPEG4Level0  uint32 = 0x01
	MPEG4Level0b uint32 = 0x02
	MPEG4Level1  uint32 = 0x04
	MPEG4Level2  uint32 = 0x08
	MPEG4Level3  uint32 = 0x10
	MPEG4Level4  uint32 = 0x20
	MPEG4Level4a uint32 = 0x40
	MPEG4Level5  uint32 = 0x80
)

// H.263 profiles and levels
const (
	H263ProfileBaseline uint32 = 0x01
	H263ProfileISWV2    uint32 = 0x20

	H263Level10 uint32 = 0x01
	H263Level20 uint32 = 0x02
	H263Level30 uint32 = 0x04
	H263Level40 uint32 = 0x08
	H263Level45 uint32 = 0x10
)

// VP8 and VP9 profiles and levels
const (
	VP8ProfileMain   uint32 = 0x01
	VP8LevelVersion0 uint32 = 0x01

	VP9Profile0 uint32 = 0x01
	VP9Level41  uint32 = 0x80
	VP9Level5   uint32 = 0x100
)

var avcProfileLevels = []omx.ProfileLevel{
	{Profile: AVCProfileBaseline, Level: AVCLevel51},
	{Profile: AVCProfileMain, Level: AVCLevel51},
	{Profile: AVCProfileHigh, Level: AVCLevel51},
}

var hevcProfileLevels = []omx.ProfileLevel{
	{Profile: HEVCProfileMain, Level: HEVCMainTierLevel51},
	{Profile: HEVCProfileMain10, Level: HEVCMainTierLevel51},
}

var mpeg4ProfileLevels = []omx.ProfileLevel{
	{Profile: MPEG4ProfileSimple, Level: MPEG4Level0},
	{Profile: MPEG4ProfileSimple, Level: MPEG4Level0b},
	{Profile: MPEG4ProfileSimple, Level: MPEG4Level1},
	{Profile: MPEG4ProfileSimple, Level: MPEG4Level2},
	{Profile: MPEG4ProfileSimple, Level: MPEG4Level3},
	{Profile: MPEG4ProfileAdvancedSimple, Level: MPEG4Level5},
}

var h263ProfileLevels = []omx.ProfileLevel{
	{Profile: H263ProfileBaseline, Level: H263Level10},
	{Profile: H263ProfileBaseline, Level: H263Level20},
	{Profile: H263ProfileBaseline, Level: H263Level30},
	{Profile: H263ProfileBaseline, Level: H263Level45},
	{Profile: H263ProfileISWV2, Level: H263Level10},
	{Profile: H263ProfileISWV2, Level: H263Level20},
	{Profile: H263ProfileISWV2, Level: H263Level30},
	{Profile: H263ProfileISWV2, Level: H263Level45},
}

var vp8ProfileLevels = []omx.ProfileLevel{
	{Profile: VP8ProfileMain, Level: VP8LevelVersion0},
}

var vp9ProfileLevels = []omx.ProfileLevel{
	{Profile: VP9Profile0, Level: VP9Level5},
}

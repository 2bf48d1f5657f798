package vdec

// Graphic buffer usage bits.
const (
	UsageSWReadOften  uint32 = 0x00000003
	UsageSWWriteOften uint32 = 0x00000030
	UsageVideoBuffer  uint32 = 0x01000000
)

// NativeBufferUsage returns the usage bits output graphic buffers must be
// allocated with. CPU decoding and IOMMU-mapped backends can use any CPU
// accessible memory; otherwise buffers must come from the video carveout.
func (c *Component) NativeBufferUsage() uint32 {
	if c.decoderSoftware || c.iommuEnabled {
		return UsageSWReadOften | UsageSWWriteOften
	}
	return UsageVideoBuffer | UsageSWReadOften | UsageSWWriteOften
}

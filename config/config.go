package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

var v *viper.Viper

func init() {
	v = viper.New()

	// Set default values
	v.SetDefault("decoder.software", false)
	v.SetDefault("decoder.iommu", false)
	v.SetDefault("decoder.min_input_buffer_size", 0)

	// Set default vdec home directory
	v.SetDefault("vdec.home", filepath.Join(xdg.ConfigHome, "vdec"))

	// Environment variables
	v.AutomaticEnv()
	v.BindEnv("decoder.software", "VDEC_DECODER_SOFTWARE")
	v.BindEnv("decoder.iommu", "VDEC_IOMMU_ENABLED")
	v.BindEnv("decoder.min_input_buffer_size", "VDEC_MIN_INPUT_BUFFER_SIZE")
	v.BindEnv("vdec.home", "VDEC_HOME")

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Look for config in the following paths
	configPaths := []string{
		".",
		os.Getenv("VDEC_HOME"),
		filepath.Join(xdg.ConfigHome, "vdec"),
		"/etc/vdec",
	}

	for _, path := range configPaths {
		if path != "" {
			v.AddConfigPath(path)
		}
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			panic(fmt.Sprintf("Fatal error reading config file: %s", err))
		}
	}
}

// DecoderSoftware reports whether the decoder backend runs on the CPU.
func DecoderSoftware() bool {
	return v.GetBool("decoder.software")
}

// IOMMUEnabled reports whether output buffers are mapped through an IOMMU.
func IOMMUEnabled() bool {
	return v.GetBool("decoder.iommu")
}

// MinInputBufferSize returns the floor applied to every codec's input buffer
// size, 0 when unset.
func MinInputBufferSize() uint32 {
	return v.GetUint32("decoder.min_input_buffer_size")
}

// GetVdecHome returns the vdec home directory
func GetVdecHome() string {
	return v.GetString("vdec.home")
}

// ScenarioDir returns the directory scenario names are resolved against.
func ScenarioDir() string {
	return filepath.Join(GetVdecHome(), "scenarios")
}

// ConfigFileUsed returns the config file that was loaded, empty when none.
func ConfigFileUsed() string {
	return v.ConfigFileUsed()
}

package cmd

import (
	"fmt"
	"os"

	"github.com/babelcloud/gbox/packages/vdec/config"
	"github.com/babelcloud/gbox/packages/vdec/internal/registry"
	"github.com/babelcloud/gbox/packages/vdec/internal/util"
	"github.com/babelcloud/gbox/packages/vdec/internal/version"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	verbose bool

	rootCmd = &cobra.Command{
		Use:   "vdec",
		Short: "Video decoder component tool",
		Long: `vdec exercises the port configuration core of the video decoder components:
it lists the available decoders, plays client scenarios against them and
probes frame geometry from parameter sets.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			util.InitLogger(verbose)
			if f, ok := cmd.OutOrStdout().(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flag("version").Changed {
				info := version.Info()
				fmt.Fprintf(cmd.OutOrStdout(), "vdec version %s, build %s\n", info["Version"], info["GitCommit"])
				return nil
			}
			return cmd.Help()
		},
	}
)

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().Bool("version", false, "Print version information and exit")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(NewCodecsCommand())
	rootCmd.AddCommand(NewSimulateCommand())
	rootCmd.AddCommand(NewProbeCommand())
	rootCmd.AddCommand(NewVersionCommand())
}

// newRegistry builds a registry configured from the config file and environment.
func newRegistry() *registry.Registry {
	return registry.New(util.GetLogger(), registry.Options{
		DecoderSoftware:    config.DecoderSoftware(),
		IOMMUEnabled:       config.IOMMUEnabled(),
		MinInputBufferSize: config.MinInputBufferSize(),
	})
}

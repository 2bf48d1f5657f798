package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/babelcloud/gbox/packages/vdec/internal/omx"
	"github.com/babelcloud/gbox/packages/vdec/internal/probe"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type ProbeOptions struct {
	Coding string
}

func NewProbeCommand() *cobra.Command {
	opts := &ProbeOptions{}

	cmd := &cobra.Command{
		Use:   "probe <hex>",
		Short: "Print the frame geometry of a sequence parameter set",
		Long: `Print the coded frame size and the display window described by an H.264 or
H.265 sequence parameter set. The argument is the hex encoded NAL unit or an
Annex-B byte stream containing it.`,
		Example: `  vdec probe 6742c028d900780227e584000003000400000300f03c60c920
  vdec probe --coding hevc 0000000142010101...`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ExecuteProbe(cmd.OutOrStdout(), strings.Join(args, ""), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Coding, "coding", "c", "avc", "Coding type of the parameter set (avc or hevc)")
	cmd.RegisterFlagCompletionFunc("coding", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"avc", "hevc"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func ExecuteProbe(out io.Writer, hexData string, opts *ProbeOptions) error {
	coding, ok := omx.ParseCodingType(opts.Coding)
	if !ok {
		return errors.Errorf("unknown coding type %q", opts.Coding)
	}
	data, err := hex.DecodeString(strings.Join(strings.Fields(hexData), ""))
	if err != nil {
		return errors.Wrap(err, "invalid hex data")
	}

	g, err := probe.FromParameterSet(coding, data)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Frame:  %s\n", color.New(color.FgCyan).Sprintf("%dx%d", g.Width, g.Height))
	crop := fmt.Sprintf("(%d,%d) %dx%d", g.Crop.Left, g.Crop.Top, g.Crop.Width, g.Crop.Height)
	if g.Cropped {
		crop = color.New(color.FgYellow).Sprint(crop)
	}
	fmt.Fprintf(out, "Crop:   %s\n", crop)
	return nil
}

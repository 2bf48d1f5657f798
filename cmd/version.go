package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/babelcloud/gbox/packages/vdec/internal/version"
	"github.com/spf13/cobra"
)

type VersionOptions struct {
	OutputFormat string
}

func NewVersionCommand() *cobra.Command {
	opts := &VersionOptions{}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Example: `  vdec version
  vdec version --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Info()
			if opts.OutputFormat == "json" {
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Version:     %s\n", info["Version"])
			fmt.Fprintf(out, "Go version:  %s\n", info["GoVersion"])
			fmt.Fprintf(out, "Git commit:  %s\n", info["GitCommit"])
			fmt.Fprintf(out, "Built:       %s\n", info["FormattedTime"])
			fmt.Fprintf(out, "OS/Arch:     %s/%s\n", info["OS"], info["Arch"])
			fmt.Fprintf(out, "Components:  %s\n", info["Components"])
			fmt.Fprintf(out, "Parser:      %s\n", info["Parser"])
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.OutputFormat, "output", "o", "text", "Output format (json or text)")
	return cmd
}

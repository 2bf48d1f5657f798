package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/babelcloud/gbox/packages/vdec/internal/codecs"
	"github.com/babelcloud/gbox/packages/vdec/internal/util"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type CodecsOptions struct {
	OutputFormat string
}

func NewCodecsCommand() *cobra.Command {
	opts := &CodecsOptions{}

	cmd := &cobra.Command{
		Use:   "codecs",
		Short: "List the decoder components",
		Example: `  vdec codecs
  vdec codecs --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ExecuteCodecs(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.OutputFormat, "output", "o", "text", "Output format (json or text)")
	cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "text"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

type codecEntry struct {
	Name                string `json:"name"`
	Role                string `json:"role"`
	MIMEType            string `json:"mime"`
	Coding              string `json:"coding"`
	ProfileLevels       int    `json:"profile_levels"`
	InputBuffers        uint32 `json:"input_buffers"`
	InputBufferSize     uint32 `json:"input_buffer_size"`
	OutputBuffers       uint32 `json:"output_buffers"`
	MinCompressionRatio uint32 `json:"min_compression_ratio"`
}

func ExecuteCodecs(out io.Writer, opts *CodecsOptions) error {
	var entries []codecEntry
	for _, c := range codecs.All() {
		entries = append(entries, codecEntry{
			Name:                c.Name,
			Role:                c.Role,
			MIMEType:            c.MIMEType,
			Coding:              c.CodingType.String(),
			ProfileLevels:       len(c.ProfileLevels),
			InputBuffers:        c.NumInputBuffers,
			InputBufferSize:     c.InputBufferSize,
			OutputBuffers:       c.NumOutputBuffers,
			MinCompressionRatio: c.MinCompressionRatio,
		})
	}

	switch opts.OutputFormat {
	case "json":
		data, err := json.MarshalIndent(map[string]interface{}{"data": entries}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal codecs: %v", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	case "text", "":
	default:
		return fmt.Errorf("unknown output format %q", opts.OutputFormat)
	}

	columns := []util.TableColumn{
		{Header: "NAME", Key: "name"},
		{Header: "ROLE", Key: "role"},
		{Header: "MIME", Key: "mime"},
		{Header: "PROFILES", Key: "profiles"},
		{Header: "INPUT", Key: "input"},
		{Header: "OUTPUT", Key: "output"},
		{Header: "RATIO", Key: "ratio"},
	}
	var rows []map[string]interface{}
	for _, e := range entries {
		rows = append(rows, map[string]interface{}{
			"name":     color.New(color.FgCyan).Sprint(e.Name),
			"role":     e.Role,
			"mime":     e.MIMEType,
			"profiles": e.ProfileLevels,
			"input":    fmt.Sprintf("%d x %d", e.InputBuffers, e.InputBufferSize),
			"output":   e.OutputBuffers,
			"ratio":    e.MinCompressionRatio,
		})
	}
	util.RenderTable(out, columns, rows)
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/babelcloud/gbox/packages/vdec/config"
	"github.com/babelcloud/gbox/packages/vdec/internal/omx"
	"github.com/babelcloud/gbox/packages/vdec/internal/registry"
	"github.com/babelcloud/gbox/packages/vdec/internal/simulate"
	"github.com/babelcloud/gbox/packages/vdec/internal/util"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type SimulateOptions struct {
	ShowEvents bool
	ShowPorts  bool
}

func NewSimulateCommand() *cobra.Command {
	opts := &SimulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate <scenario>",
		Short: "Play a client scenario against a decoder component",
		Long: `Play the steps of a TOML scenario against a decoder component and report
what the component answered. A scenario that is not an existing file is looked
up by name in the scenarios directory of the vdec home.`,
		Example: `  vdec simulate scenarios/resolution_change.toml
  vdec simulate adaptive --events
  vdec simulate fake_stride --ports`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ExecuteSimulate(cmd.Context(), cmd.OutOrStdout(), newRegistry(), args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.ShowEvents, "events", "e", false, "Print the events emitted by every step")
	flags.BoolVarP(&opts.ShowPorts, "ports", "p", false, "Print the final port definitions")

	return cmd
}

func ExecuteSimulate(ctx context.Context, out io.Writer, reg *registry.Registry, scenario string, opts *SimulateOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	sc, err := simulate.Load(resolveScenario(scenario))
	if err != nil {
		return err
	}

	report, runErr := simulate.NewRunner(reg, util.GetLogger()).Run(ctx, sc)
	if report == nil {
		return runErr
	}

	printReport(out, report, opts)

	if runErr != nil {
		return runErr
	}
	if report.Failed() {
		return errors.New("scenario failed")
	}
	return nil
}

func resolveScenario(name string) string {
	if _, err := os.Stat(name); err == nil {
		return name
	}
	if !strings.HasSuffix(name, ".toml") {
		name += ".toml"
	}
	return filepath.Join(config.ScenarioDir(), name)
}

func printReport(out io.Writer, report *simulate.Report, opts *SimulateOptions) {
	fmt.Fprintf(out, "%s %s\n\n", color.New(color.FgCyan).Sprint(report.Component), color.New(color.Faint).Sprint(report.Handle))

	for _, step := range report.Steps {
		status := color.New(color.FgGreen).Sprint("ok")
		if step.Failed() {
			status = color.New(color.FgRed).Sprint("FAIL")
		}
		line := fmt.Sprintf("%3d. %-4s %-16s %s", step.Index, status, step.Action, step.Detail)
		if step.PortWillReset {
			line += color.New(color.FgYellow).Sprint(" [port reset]")
		}
		if step.Err != nil {
			line += color.New(color.Faint).Sprintf(" (%v)", step.Err)
		}
		fmt.Fprintln(out, line)

		for _, f := range step.Failures {
			fmt.Fprintf(out, "       %s\n", color.New(color.FgRed).Sprint(f))
		}
		if opts.ShowEvents {
			for _, ev := range step.Events {
				fmt.Fprintf(out, "       %s\n", formatEvent(ev.Event, ev.Data1, ev.Data2))
			}
		}
	}

	final := report.Final
	if len(final.Ports) == 0 {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "State: %s, settings change: %s, frame %dx%d, crop (%d,%d) %dx%d\n",
		final.State, final.SettingsChange, final.Width, final.Height,
		final.Crop.Left, final.Crop.Top, final.Crop.Width, final.Crop.Height)
	if final.Adaptive {
		fmt.Fprintf(out, "Adaptive playback up to %dx%d\n", final.AdaptiveMaxWidth, final.AdaptiveMaxHeight)
	}

	if !opts.ShowPorts {
		return
	}
	fmt.Fprintln(out)
	columns := []util.TableColumn{
		{Header: "PORT", Key: "port"},
		{Header: "ENABLED", Key: "enabled"},
		{Header: "FRAME", Key: "frame"},
		{Header: "STRIDE", Key: "stride"},
		{Header: "BUFFERS", Key: "buffers"},
		{Header: "SIZE", Key: "size"},
		{Header: "FORMAT", Key: "format"},
	}
	var rows []map[string]interface{}
	for _, def := range final.Ports {
		format := def.Video.CompressionFormat.String()
		if def.PortIndex == omx.OutputPortIndex {
			format = def.Video.ColorFormat.String()
		}
		rows = append(rows, map[string]interface{}{
			"port":    def.PortIndex,
			"enabled": def.Enabled,
			"frame":   fmt.Sprintf("%dx%d", def.Video.FrameWidth, def.Video.FrameHeight),
			"stride":  fmt.Sprintf("%d/%d", def.Video.Stride, def.Video.SliceHeight),
			"buffers": fmt.Sprintf("%d (min %d)", def.BufferCountActual, def.BufferCountMin),
			"size":    def.BufferSize,
			"format":  format,
		})
	}
	util.RenderTable(out, columns, rows)
}

func formatEvent(event omx.Event, data1, data2 uint32) string {
	switch event {
	case omx.EventCmdComplete:
		cmd := omx.Command(data1)
		if cmd == omx.CommandStateSet {
			return fmt.Sprintf("%s %s %s", event, cmd, omx.State(data2))
		}
		return fmt.Sprintf("%s %s port %d", event, cmd, data2)
	case omx.EventPortSettingsChanged:
		if data2 == 0 {
			return fmt.Sprintf("%s port %d", event, data1)
		}
		return fmt.Sprintf("%s port %d %s", event, data1, omx.Index(data2))
	default:
		return fmt.Sprintf("%s %d %d", event, data1, data2)
	}
}

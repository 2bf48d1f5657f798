package simulate

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"github.com/babelcloud/gbox/packages/vdec/internal/omx"
	"github.com/babelcloud/gbox/packages/vdec/internal/probe"
	"github.com/babelcloud/gbox/packages/vdec/internal/registry"
	"github.com/babelcloud/gbox/packages/vdec/internal/simple"
	"github.com/babelcloud/gbox/packages/vdec/internal/vdec"
	"github.com/pkg/errors"
	"k8s.io/utils/ptr"
)

// StepResult is the outcome of one scenario step.
type StepResult struct {
	Index  int
	Action string
	// Detail is a short description of what the component answered.
	Detail string
	// Err is the result of the step's component call, nil on success.
	Err error
	// PortWillReset is set by geometry steps that started a reconfiguration.
	PortWillReset bool
	// Events holds every event the component emitted during the step,
	// including those caused by the client's own reactions.
	Events []simple.EventRecord
	// Failures lists the unmet expectations.
	Failures []string
}

// Failed reports whether the step missed an expectation.
func (s StepResult) Failed() bool {
	return len(s.Failures) > 0
}

// Report is the outcome of a scenario.
type Report struct {
	Component string
	Handle    string
	Steps     []StepResult
	Final     registry.Snapshot
}

// Failed reports whether any step missed an expectation.
func (r *Report) Failed() bool {
	for _, s := range r.Steps {
		if s.Failed() {
			return true
		}
	}
	return false
}

// Runner plays scenarios against components of a registry.
type Runner struct {
	reg    *registry.Registry
	logger *slog.Logger
}

// NewRunner creates a runner.
func NewRunner(reg *registry.Registry, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{reg: reg, logger: logger}
}

// Run creates the scenario's component, plays every step and destroys the
// component. A component abort ends the scenario early: the returned report
// holds the steps played so far and the error wraps the *vdec.InvariantError.
func (r *Runner) Run(ctx context.Context, sc *Scenario) (*Report, error) {
	inst, err := r.reg.Create(sc.Component)
	if err != nil {
		return nil, err
	}
	defer func() {
		if derr := r.reg.Destroy(inst.Handle()); derr != nil {
			r.logger.Warn("failed to destroy component", "handle", inst.Handle(), "error", derr)
		}
	}()

	report := &Report{
		Component: sc.Component,
		Handle:    inst.Handle(),
	}
	s := &session{
		inst:      inst,
		autoCycle: ptr.Deref(sc.AutoCycle, true),
		logger:    r.logger.With("handle", inst.Handle()),
	}

	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return report, errors.Wrap(err, "scenario interrupted")
		}

		result, err := s.play(i+1, step)
		report.Steps = append(report.Steps, result)
		if err != nil {
			return report, errors.Wrapf(err, "step %d (%s)", i+1, step.Action)
		}
	}

	report.Final, err = inst.Snapshot()
	if err != nil {
		return report, errors.Wrap(err, "failed to snapshot component")
	}
	return report, nil
}

type session struct {
	inst      *registry.Instance
	autoCycle bool
	logger    *slog.Logger
}

// play runs one step. The returned error is set only when the component
// aborted.
func (s *session) play(index int, step Step) (result StepResult, aborted error) {
	result = StepResult{Index: index, Action: step.Action}

	defer func() {
		if v := recover(); v != nil {
			ierr, ok := v.(*vdec.InvariantError)
			if !ok {
				panic(v)
			}
			s.logger.Error("component aborted", "step", index, "error", ierr)
			result.Failures = append(result.Failures, "component aborted: "+ierr.Error())
			aborted = errors.Wrap(ierr, "component aborted")
		}
	}()

	result.Detail, result.PortWillReset, result.Err = s.act(step)
	s.collectEvents(&result)
	s.check(step, &result)

	s.logger.Debug("step played",
		"step", index,
		"action", step.Action,
		"detail", result.Detail,
		"error", result.Err,
		"events", len(result.Events),
	)
	return result, nil
}

// collectEvents drains the component events and plays the client's reaction
// to port settings changes until the component is quiet.
func (s *session) collectEvents(result *StepResult) {
	for {
		events, err := s.inst.DrainEvents()
		if err != nil || len(events) == 0 {
			return
		}
		result.Events = append(result.Events, events...)

		for _, ev := range events {
			if ev.Event != omx.EventPortSettingsChanged || ev.Data1 != omx.OutputPortIndex {
				continue
			}
			switch omx.Index(ev.Data2) {
			case 0:
				if s.autoCycle {
					s.cycleOutputPort()
				}
			case omx.IndexConfigCommonOutputCrop:
				crop := omx.ConfigRect{PortIndex: omx.OutputPortIndex}
				if err := s.inst.GetConfig(omx.IndexConfigCommonOutputCrop, &crop); err != nil {
					s.logger.Warn("crop query failed", "error", err)
				}
			}
		}
	}
}

func (s *session) cycleOutputPort() {
	if err := s.inst.SendCommand(omx.CommandPortDisable, omx.OutputPortIndex); err != nil {
		s.logger.Warn("output port disable failed", "error", err)
		return
	}
	if err := s.inst.SendCommand(omx.CommandPortEnable, omx.OutputPortIndex); err != nil {
		s.logger.Warn("output port enable failed", "error", err)
	}
}

func (s *session) check(step Step, result *StepResult) {
	exp := step.Expect
	if exp == nil {
		if result.Err != nil {
			result.Failures = append(result.Failures, "unexpected error: "+result.Err.Error())
		}
		return
	}

	if exp.Error == "" {
		if result.Err != nil {
			result.Failures = append(result.Failures, "unexpected error: "+result.Err.Error())
		}
	} else {
		want, ok := omx.ParseError(exp.Error)
		switch {
		case !ok:
			result.Failures = append(result.Failures, fmt.Sprintf("unknown error name %q", exp.Error))
		case omx.Code(result.Err) != want:
			result.Failures = append(result.Failures, fmt.Sprintf("error: want %s, got %v", want, result.Err))
		}
	}

	if exp.Reset != nil && *exp.Reset != result.PortWillReset {
		result.Failures = append(result.Failures, fmt.Sprintf("reset: want %t, got %t", *exp.Reset, result.PortWillReset))
	}

	if exp.SettingsChange == "" && exp.Crop == nil && exp.Stride == nil {
		return
	}
	snap, err := s.inst.Snapshot()
	if err != nil {
		result.Failures = append(result.Failures, "snapshot: "+err.Error())
		return
	}
	if exp.SettingsChange != "" {
		if got := snap.SettingsChange.String(); got != exp.SettingsChange {
			result.Failures = append(result.Failures, fmt.Sprintf("settings change: want %s, got %s", exp.SettingsChange, got))
		}
	}
	if exp.Crop != nil {
		want := omx.ConfigRect{
			PortIndex: omx.OutputPortIndex,
			Left:      exp.Crop[0],
			Top:       exp.Crop[1],
			Width:     exp.Crop[2],
			Height:    exp.Crop[3],
		}
		if snap.Crop != want {
			result.Failures = append(result.Failures, fmt.Sprintf("crop: want %s, got %s", formatRect(want), formatRect(snap.Crop)))
		}
	}
	if exp.Stride != nil {
		if got := snap.Ports[omx.OutputPortIndex].Video.Stride; got != *exp.Stride {
			result.Failures = append(result.Failures, fmt.Sprintf("stride: want %d, got %d", *exp.Stride, got))
		}
	}
}

func (s *session) act(step Step) (detail string, portWillReset bool, err error) {
	codec := s.inst.Codec()

	switch step.Action {
	case ActionFrame:
		var crop *omx.ConfigRect
		if step.Crop != nil {
			crop = &omx.ConfigRect{
				PortIndex: omx.OutputPortIndex,
				Left:      step.Crop[0],
				Top:       step.Crop[1],
				Width:     step.Crop[2],
				Height:    step.Crop[3],
			}
		}
		portWillReset, err = s.inst.FrameDecoded(step.Width, step.Height, crop, ptr.Deref(step.FakeStride, codec.FakeStride))
		return fmt.Sprintf("%dx%d", step.Width, step.Height), portWillReset, err

	case ActionSPS:
		data, err := hex.DecodeString(strings.Join(strings.Fields(step.Data), ""))
		if err != nil {
			return "", false, errors.Wrap(err, "invalid sps data")
		}
		g, err := probe.FromParameterSet(codec.CodingType, data)
		if err != nil {
			return "", false, err
		}
		var crop *omx.ConfigRect
		if g.Cropped {
			crop = &g.Crop
		}
		portWillReset, err = s.inst.FrameDecoded(g.Width, g.Height, crop, ptr.Deref(step.FakeStride, codec.FakeStride))
		return fmt.Sprintf("%dx%d crop %s", g.Width, g.Height, formatRect(g.Crop)), portWillReset, err

	case ActionPortDefinition:
		def := omx.PortDefinition{PortIndex: ptr.Deref(step.Port, omx.OutputPortIndex)}
		if err := s.inst.GetParameter(omx.IndexParamPortDefinition, &def); err != nil {
			return "", false, err
		}
		def.Video.FrameWidth = step.Width
		def.Video.FrameHeight = step.Height
		if step.BufferSize != 0 {
			def.BufferSize = step.BufferSize
		}
		err := s.inst.SetParameter(omx.IndexParamPortDefinition, &def)
		return fmt.Sprintf("port %d %dx%d buffer %d", def.PortIndex, step.Width, step.Height, def.BufferSize), false, err

	case ActionAdaptive:
		index, err := s.inst.GetExtensionIndex(omx.ExtPrepareForAdaptivePlayback)
		if err != nil {
			return "", false, err
		}
		err = s.inst.SetParameter(index, &omx.PrepareForAdaptivePlayback{
			PortIndex:      ptr.Deref(step.Port, omx.OutputPortIndex),
			Enable:         step.Enable,
			MaxFrameWidth:  step.MaxWidth,
			MaxFrameHeight: step.MaxHeight,
		})
		return fmt.Sprintf("enable=%t max %dx%d", step.Enable, step.MaxWidth, step.MaxHeight), false, err

	case ActionNativeBuffers:
		index, err := s.inst.GetExtensionIndex(omx.ExtEnableNativeBuffers)
		if err != nil {
			return "", false, err
		}
		port := ptr.Deref(step.Port, omx.OutputPortIndex)
		if err := s.inst.SetParameter(index, &omx.EnableNativeBuffers{PortIndex: port, Enable: step.Enable}); err != nil {
			return "", false, err
		}
		if index, err = s.inst.GetExtensionIndex(omx.ExtGetNativeBufferUsage); err != nil {
			return "", false, err
		}
		usage := omx.NativeBufferUsage{PortIndex: port}
		err = s.inst.GetParameter(index, &usage)
		return fmt.Sprintf("enable=%t usage=0x%08x", step.Enable, usage.Usage), false, err

	case ActionPortFormat:
		format := omx.VideoPortFormat{
			PortIndex: ptr.Deref(step.Port, omx.InputPortIndex),
			Index:     step.Index,
		}
		if step.Coding == "" && step.Color == "" {
			err := s.inst.GetParameter(omx.IndexParamVideoPortFormat, &format)
			return fmt.Sprintf("port %d coding=%s color=%s", format.PortIndex, format.CompressionFormat, format.ColorFormat), false, err
		}
		var ok bool
		if format.CompressionFormat, ok = omx.ParseCodingType(orDefault(step.Coding, "unused")); !ok {
			return "", false, errors.Errorf("unknown coding type %q", step.Coding)
		}
		if format.ColorFormat, ok = omx.ParseColorFormat(orDefault(step.Color, "unused")); !ok {
			return "", false, errors.Errorf("unknown color format %q", step.Color)
		}
		err := s.inst.SetParameter(omx.IndexParamVideoPortFormat, &format)
		return fmt.Sprintf("port %d coding=%s color=%s", format.PortIndex, format.CompressionFormat, format.ColorFormat), false, err

	case ActionProfileLevels:
		port := ptr.Deref(step.Port, omx.InputPortIndex)
		var pairs []string
		for i := uint32(0); ; i++ {
			q := omx.ProfileLevelQuery{PortIndex: port, ProfileIndex: i}
			err := s.inst.GetParameter(omx.IndexParamVideoProfileLevelQuerySupported, &q)
			if errors.Is(err, omx.ErrorNoMore) {
				break
			}
			if err != nil {
				return strings.Join(pairs, " "), false, err
			}
			pairs = append(pairs, fmt.Sprintf("0x%x/0x%x", q.Profile, q.Level))
		}
		return strings.Join(pairs, " "), false, nil

	case ActionQueryCrop:
		crop := omx.ConfigRect{PortIndex: ptr.Deref(step.Port, omx.OutputPortIndex)}
		err := s.inst.GetConfig(omx.IndexConfigCommonOutputCrop, &crop)
		return formatRect(crop), false, err

	case ActionRole:
		err := s.inst.SetParameter(omx.IndexParamStandardComponentRole, &omx.ComponentRole{Role: step.Role})
		return step.Role, false, err

	case ActionState:
		state, ok := omx.ParseState(step.State)
		if !ok {
			return "", false, errors.Errorf("unknown state %q", step.State)
		}
		return state.String(), false, s.inst.SendCommand(omx.CommandStateSet, uint32(state))

	case ActionReset:
		snap, err := s.inst.Snapshot()
		if err != nil {
			return "", false, err
		}
		if snap.State == omx.StateLoaded {
			if err := s.inst.SendCommand(omx.CommandStateSet, uint32(omx.StateIdle)); err != nil {
				return "", false, err
			}
		}
		return omx.StateLoaded.String(), false, s.inst.SendCommand(omx.CommandStateSet, uint32(omx.StateLoaded))

	case ActionPortCommand:
		port := ptr.Deref(step.Port, omx.OutputPortIndex)
		var cmd omx.Command
		switch step.Command {
		case "disable":
			cmd = omx.CommandPortDisable
		case "enable":
			cmd = omx.CommandPortEnable
		case "flush":
			cmd = omx.CommandFlush
		default:
			return "", false, errors.Errorf("unknown port command %q", step.Command)
		}
		return fmt.Sprintf("%s port %d", cmd, port), false, s.inst.SendCommand(cmd, port)

	default:
		return "", false, errors.Errorf("unknown action %q", step.Action)
	}
}

func formatRect(r omx.ConfigRect) string {
	return fmt.Sprintf("(%d,%d) %dx%d", r.Left, r.Top, r.Width, r.Height)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

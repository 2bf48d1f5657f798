// Package simulate plays a client against a decoder component: it runs the
// steps of a scenario, answers port settings changes the way a media player
// does and records everything the component emitted.
package simulate

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// Step actions
const (
	ActionFrame          = "frame"
	ActionSPS            = "sps"
	ActionPortDefinition = "port_definition"
	ActionAdaptive       = "adaptive"
	ActionNativeBuffers  = "native_buffers"
	ActionPortFormat     = "port_format"
	ActionProfileLevels  = "profile_levels"
	ActionQueryCrop      = "query_crop"
	ActionRole           = "role"
	ActionState          = "state"
	ActionReset          = "reset"
	ActionPortCommand    = "port_command"
)

var knownActions = map[string]bool{
	ActionFrame:          true,
	ActionSPS:            true,
	ActionPortDefinition: true,
	ActionAdaptive:       true,
	ActionNativeBuffers:  true,
	ActionPortFormat:     true,
	ActionProfileLevels:  true,
	ActionQueryCrop:      true,
	ActionRole:           true,
	ActionState:          true,
	ActionReset:          true,
	ActionPortCommand:    true,
}

// Scenario is a scripted client session against one component.
type Scenario struct {
	// Component is the component name, e.g. "OMX.sprd.h264.decoder".
	Component string `toml:"component"`
	// AutoCycle makes the client disable and re-enable the output port on
	// every port settings change that requires it. Defaults to true.
	AutoCycle *bool  `toml:"auto_cycle"`
	Steps     []Step `toml:"step"`
}

// Step is one client or backend action.
type Step struct {
	Action string `toml:"action"`

	Port       *uint32  `toml:"port"`
	Width      uint32   `toml:"width"`
	Height     uint32   `toml:"height"`
	Crop       []uint32 `toml:"crop"`
	FakeStride *bool    `toml:"fake_stride"`
	BufferSize uint32   `toml:"buffer_size"`

	Enable    bool   `toml:"enable"`
	MaxWidth  uint32 `toml:"max_width"`
	MaxHeight uint32 `toml:"max_height"`

	Index  uint32 `toml:"index"`
	Coding string `toml:"coding"`
	Color  string `toml:"color"`

	Role    string `toml:"role"`
	State   string `toml:"state"`
	Command string `toml:"command"`

	// Data is a hex encoded parameter set for the sps action.
	Data string `toml:"data"`

	Expect *Expect `toml:"expect"`
}

// Expect lists the outcome a step must have.
type Expect struct {
	// Reset is whether the step must start a port reconfiguration.
	Reset *bool `toml:"reset"`
	// Error is the result code name, e.g. "no more". Empty means success.
	Error string `toml:"error"`
	// SettingsChange is the handshake state after the step.
	SettingsChange string `toml:"settings_change"`
	// Crop is the output crop after the step as left, top, width, height.
	Crop []uint32 `toml:"crop"`
	// Stride is the output port stride after the step.
	Stride *int32 `toml:"stride"`
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read scenario %s", path)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid scenario %s", path)
	}
	return sc, nil
}

// Parse decodes and validates a TOML scenario.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := toml.Unmarshal(data, &sc); err != nil {
		return nil, errors.Wrap(err, "failed to decode scenario")
	}
	if sc.Component == "" {
		return nil, errors.New("scenario has no component")
	}
	for i, step := range sc.Steps {
		if !knownActions[step.Action] {
			return nil, errors.Errorf("step %d: unknown action %q", i+1, step.Action)
		}
		if step.Crop != nil && len(step.Crop) != 4 {
			return nil, errors.Errorf("step %d: crop needs left, top, width and height", i+1)
		}
		if step.Expect != nil && step.Expect.Crop != nil && len(step.Expect.Crop) != 4 {
			return nil, errors.Errorf("step %d: expected crop needs left, top, width and height", i+1)
		}
	}
	return &sc, nil
}

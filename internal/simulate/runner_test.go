package simulate

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/babelcloud/gbox/packages/vdec/internal/omx"
	"github.com/babelcloud/gbox/packages/vdec/internal/registry"
	"github.com/babelcloud/gbox/packages/vdec/internal/vdec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, data string) (*Report, error) {
	t.Helper()
	sc, err := Parse([]byte(data))
	require.NoError(t, err)
	reg := registry.New(nil, registry.Options{})
	report, err := NewRunner(reg, nil).Run(context.Background(), sc)
	assert.Empty(t, reg.Handles(), "component destroyed after the run")
	return report, err
}

func TestRunScenarioFiles(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "scenarios", "*.toml"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			sc, err := Load(file)
			require.NoError(t, err)

			report, err := NewRunner(registry.New(nil, registry.Options{}), nil).Run(context.Background(), sc)
			require.NoError(t, err)
			for _, step := range report.Steps {
				assert.Empty(t, step.Failures, "step %d (%s)", step.Index, step.Action)
			}
			assert.False(t, report.Failed())
			assert.Equal(t, vdec.SettingsChangeNone, report.Final.SettingsChange)
		})
	}
}

func TestRunAutoCycle(t *testing.T) {
	report, err := run(t, `
component = "OMX.sprd.h264.decoder"

[[step]]
action = "frame"
width = 1280
height = 720
expect = { reset = true, settings_change = "none" }
`)
	require.NoError(t, err)
	require.Len(t, report.Steps, 1)

	events := report.Steps[0].Events
	require.Len(t, events, 3)
	assert.Equal(t, omx.EventPortSettingsChanged, events[0].Event)
	assert.Equal(t, uint32(omx.CommandPortDisable), events[1].Data1)
	assert.Equal(t, uint32(omx.CommandPortEnable), events[2].Data1)

	assert.Equal(t, uint32(1280), report.Final.Width)
	assert.Equal(t, uint32(1280*720*3/2), report.Final.Ports[omx.OutputPortIndex].BufferSize)
	assert.True(t, report.Final.Ports[omx.OutputPortIndex].Enabled)
}

func TestRunManualHandshake(t *testing.T) {
	report, err := run(t, `
component = "OMX.sprd.hevc.decoder"
auto_cycle = false

[[step]]
action = "frame"
width = 3840
height = 2160
expect = { reset = true, settings_change = "awaiting-disabled" }

[[step]]
action = "reset"
expect = { settings_change = "none" }

[[step]]
action = "state"
state = "idle"
`)
	require.NoError(t, err)
	assert.False(t, report.Failed())
	assert.Equal(t, omx.StateIdle, report.Final.State)
	assert.Equal(t, uint32(3840), report.Final.Width)
}

func TestRunExpectationFailures(t *testing.T) {
	report, err := run(t, `
component = "OMX.sprd.h264.decoder"

[[step]]
action = "frame"
width = 320
height = 240
expect = { reset = true }

[[step]]
action = "query_crop"
port = 0

[[step]]
action = "query_crop"
port = 0
expect = { error = "bad port index" }

[[step]]
action = "role"
role = "video_decoder.avc"
expect = { error = "undefined" }

[[step]]
action = "profile_levels"
expect = { error = "not a code" }
`)
	require.NoError(t, err)
	require.Len(t, report.Steps, 5)
	assert.True(t, report.Failed())

	assert.Equal(t, []string{"reset: want true, got false"}, report.Steps[0].Failures)
	assert.Equal(t, []string{"unexpected error: omx: undefined"}, report.Steps[1].Failures)
	assert.Equal(t, []string{"error: want omx: bad port index, got omx: undefined"}, report.Steps[2].Failures)
	assert.Equal(t, []string{"error: want omx: undefined, got <nil>"}, report.Steps[3].Failures)
	assert.Equal(t, []string{`unknown error name "not a code"`}, report.Steps[4].Failures)
}

func TestRunComponentAbort(t *testing.T) {
	report, err := run(t, `
component = "OMX.sprd.vp9.decoder"

[[step]]
action = "profile_levels"

[[step]]
action = "port_command"
command = "disable"

[[step]]
action = "profile_levels"
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 2 (port_command): component aborted")

	var ierr *vdec.InvariantError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, vdec.SettingsChangeNone, ierr.State)

	require.Len(t, report.Steps, 2)
	assert.True(t, report.Steps[1].Failed())
}

func TestRunInPlaceCropQuery(t *testing.T) {
	report, err := run(t, `
component = "OMX.sprd.h264.decoder"

[[step]]
action = "adaptive"
enable = true
max_width = 1920
max_height = 1088

[[step]]
action = "frame"
width = 1920
height = 1088
crop = [0, 0, 1920, 1080]
expect = { reset = false }

[[step]]
action = "query_crop"
`)
	require.NoError(t, err)
	require.Len(t, report.Steps, 3)

	events := report.Steps[1].Events
	require.Len(t, events, 1)
	assert.Equal(t, uint32(omx.IndexConfigCommonOutputCrop), events[0].Data2)
	assert.Equal(t, "(0,0) 1920x1080", report.Steps[2].Detail)
}

func TestRunGeometryExpectations(t *testing.T) {
	report, err := run(t, `
component = "OMX.sprd.mpeg4.decoder"

[[step]]
action = "adaptive"
enable = true
max_width = 640
max_height = 480

[[step]]
action = "frame"
width = 320
height = 240
expect = { stride = 320, crop = [0, 0, 320, 240] }

[[step]]
action = "frame"
width = 320
height = 240
crop = [0, 0, 320, 232]
expect = { stride = 640, crop = [0, 0, 320, 240] }
`)
	require.NoError(t, err)
	require.Len(t, report.Steps, 3)

	assert.Empty(t, report.Steps[1].Failures)
	assert.Equal(t, []string{
		"crop: want (0,0) 320x240, got (0,0) 320x232",
		"stride: want 640, got 320",
	}, report.Steps[2].Failures)
}

func TestRunUnsupportedFrameSize(t *testing.T) {
	report, err := run(t, `
component = "OMX.sprd.h264.decoder"

[[step]]
action = "frame"
width = 65536
height = 65536
expect = { error = "unsupported setting", reset = false, stride = 320, crop = [0, 0, 320, 240] }

[[step]]
action = "sps"
data = "00 00 00 01 67 42 c0 28 f4 00 0f ff 80 07 ff f2"
expect = { error = "unsupported setting", settings_change = "none" }

[[step]]
action = "port_definition"
width = 65536
height = 65536
expect = { error = "unsupported setting", stride = 320 }

[[step]]
action = "adaptive"
enable = true
max_width = 65536
max_height = 65536
expect = { error = "unsupported setting", stride = 320 }
`)
	require.NoError(t, err)
	require.Len(t, report.Steps, 4)
	for _, step := range report.Steps {
		assert.Empty(t, step.Failures, "step %d (%s)", step.Index, step.Action)
		assert.ErrorIs(t, step.Err, omx.ErrorUnsupportedSetting)
	}
	assert.Equal(t, uint32(320), report.Final.Width)
	assert.Equal(t, uint32(320*240*3/2), report.Final.Ports[omx.OutputPortIndex].BufferSize)
}

func TestRunActions(t *testing.T) {
	report, err := run(t, `
component = "OMX.sprd.mpeg4.decoder"

[[step]]
action = "port_format"
port = 1

[[step]]
action = "port_format"
port = 1
color = "yuv420sp"

[[step]]
action = "port_format"
port = 0
coding = "mpeg4"

[[step]]
action = "port_format"
port = 0
coding = "avc"
expect = { error = "unsupported setting" }

[[step]]
action = "profile_levels"
port = 1
expect = { error = "unsupported index" }

[[step]]
action = "native_buffers"
enable = true

[[step]]
action = "port_definition"
port = 0
width = 352
height = 288
buffer_size = 65536

[[step]]
action = "port_command"
command = "flush"
port = 0
`)
	require.NoError(t, err)
	assert.False(t, report.Failed())

	assert.Equal(t, "port 1 coding=unused color=yuv420sp", report.Steps[0].Detail)
	assert.Equal(t, "enable=true usage=0x01000033", report.Steps[5].Detail)
	assert.Equal(t, uint32(65536), report.Final.Ports[omx.InputPortIndex].BufferSize)
}

func TestRunUnknownComponent(t *testing.T) {
	sc := &Scenario{Component: "OMX.sprd.av1.decoder"}
	_, err := NewRunner(registry.New(nil, registry.Options{}), nil).Run(context.Background(), sc)
	assert.ErrorContains(t, err, "unknown component")
}

func TestRunCancelled(t *testing.T) {
	sc, err := Parse([]byte("component = \"OMX.sprd.h264.decoder\"\n[[step]]\naction = \"query_crop\"\n"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := NewRunner(registry.New(nil, registry.Options{}), nil).Run(ctx, sc)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	assert.Empty(t, report.Steps)
}

package util

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	columns := []TableColumn{
		{Header: "NAME", Key: "name"},
		{Header: "SIZE", Key: "size"},
	}
	data := []map[string]interface{}{
		{"name": "OMX.sprd.h264.decoder", "size": 1555200},
		{"name": "OMX.sprd.vp9.decoder", "size": 786432},
	}

	RenderTable(&buf, columns, data)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "NAME                  SIZE", lines[0])
	assert.Equal(t, "--------------------- -------", lines[1])
	assert.Equal(t, "OMX.sprd.h264.decoder 1555200", lines[2])
	assert.Equal(t, "OMX.sprd.vp9.decoder  786432", lines[3])
}

func TestRenderTableIgnoresColorCodes(t *testing.T) {
	saved := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = saved }()

	var buf bytes.Buffer
	RenderTable(&buf, []TableColumn{{Header: "A", Key: "a"}, {Header: "B", Key: "b"}}, []map[string]interface{}{
		{"a": color.New(color.FgCyan).Sprint("xyz"), "b": 1},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "--- -", lines[1])
	assert.Equal(t, "xyz 1", stripANSI(lines[2]))
}

func TestRenderTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	RenderTable(&buf, []TableColumn{{Header: "A", Key: "a"}}, nil)
	assert.Equal(t, "No data to display\n", buf.String())
}

func TestVerboseFlag(t *testing.T) {
	assert.True(t, hasVerboseFlag([]string{"vdec", "simulate", "--verbose", "x.toml"}))
	assert.True(t, hasVerboseFlag([]string{"vdec", "-v", "codecs"}))
	assert.False(t, hasVerboseFlag([]string{"vdec", "codecs", "--verbosity"}))
}

func TestInitLoggerLevel(t *testing.T) {
	var buf bytes.Buffer

	InitLoggerTo(&buf, false)
	GetLogger().Info("hidden")
	GetLogger().Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	InitLoggerTo(&buf, true)
	GetLogger().Debug("details", "port", 1)
	assert.Contains(t, buf.String(), "details port=1")
}

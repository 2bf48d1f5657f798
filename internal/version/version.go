// Package version reports build metadata of the vdec tool together with the
// decoder components and parser it was built with.
package version

import (
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/babelcloud/gbox/packages/vdec/internal/codecs"
)

// Set at build time via -ldflags
var (
	Version   = "dev"
	BuildTime = "unknown"
	CommitID  = "unknown"
)

const parserModule = "github.com/bluenviron/mediacommon/v2"

func buildTime() string {
	if BuildTime == "unknown" {
		return BuildTime
	}
	t, err := time.Parse(time.RFC3339, BuildTime)
	if err != nil {
		return BuildTime
	}
	return t.Format("Mon Jan 2 15:04:05 2006")
}

// ParserVersion returns the version of the parameter set parser linked into
// the binary, "unknown" when the build carries no module information.
func ParserVersion() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, dep := range bi.Deps {
		if dep.Path == parserModule {
			if dep.Replace != nil {
				return dep.Replace.Version
			}
			return dep.Version
		}
	}
	return "unknown"
}

// Info returns the build metadata and the decoder catalog summary.
func Info() map[string]string {
	all := codecs.All()
	names := make([]string, 0, len(all))
	for _, c := range all {
		names = append(names, c.Name)
	}

	return map[string]string{
		"Version":       Version,
		"GoVersion":     runtime.Version(),
		"GitCommit":     CommitID,
		"BuildTime":     BuildTime,
		"FormattedTime": buildTime(),
		"OS":            runtime.GOOS,
		"Arch":          runtime.GOARCH,
		"Components":    strconv.Itoa(len(all)),
		"ComponentList": strings.Join(names, ","),
		"Parser":        parserModule + " " + ParserVersion(),
	}
}

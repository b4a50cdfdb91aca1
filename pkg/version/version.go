// Package version reports which arquivao build produced an archive.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set with -ldflags, e.g.
// go build -ldflags "-X 'arquivao/pkg/version.Version=1.2.3' -X 'arquivao/pkg/version.Commit=abcdefg'"
// Builds without ldflags fall back to the module and VCS data embedded by the
// Go toolchain, so `go install arquivao@v1.2.3` still reports v1.2.3.
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

const (
	unsetVersion   = "dev"
	unsetCommit    = "none"
	unsetBuildTime = "unknown"
	develVersion   = "(devel)"
	shortCommitLen = 12
)

// Info contains comprehensive version information.
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
	Modified  bool // Built from a working tree with uncommitted changes.
	GoVersion string
	Platform  string
}

// Get returns the current version information.
func Get() Info {
	bi, _ := debug.ReadBuildInfo()
	return resolve(bi)
}

// resolve merges the ldflags values with the embedded build info. Values set
// through ldflags always win.
func resolve(bi *debug.BuildInfo) Info {
	info := Info{
		Version:   Version,
		GitCommit: Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
	if bi == nil {
		return info
	}

	if info.Version == unsetVersion && bi.Main.Version != "" && bi.Main.Version != develVersion {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == unsetCommit && s.Value != "" {
				info.GitCommit = s.Value
				if len(info.GitCommit) > shortCommitLen {
					info.GitCommit = info.GitCommit[:shortCommitLen]
				}
			}
		case "vcs.time":
			if info.BuildTime == unsetBuildTime && s.Value != "" {
				info.BuildTime = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// String renders the info on one line, e.g.
// arquivao version 1.2.3 (commit: abcdefg) built at 2024-04-27T15:04:05Z with go1.24.0 on linux/amd64
func (i Info) String() string {
	commit := i.GitCommit
	if i.Modified {
		commit += "-dirty"
	}
	return fmt.Sprintf(
		"arquivao version %s (commit: %s) built at %s with %s on %s",
		i.Version,
		commit,
		i.BuildTime,
		i.GoVersion,
		i.Platform,
	)
}

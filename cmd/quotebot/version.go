package main

import (
	"time"

	"github.com/carlmjohnson/versioninfo"

	"github.com/jsamuelsen/daily-quote-bot/internal/adapters/http/handlers"
)

// resolveBuildInfo prefers ldflags values and falls back to the module and
// VCS data embedded by the Go toolchain.
func resolveBuildInfo() handlers.BuildInfo {
	version, commit, buildTime := Version, Commit, BuildTime

	if version == "dev" && versioninfo.Version != "" && versioninfo.Version != "unknown" && versioninfo.Version != "(devel)" {
		version = versioninfo.Version
	}

	if commit == "unknown" && versioninfo.Revision != "" {
		commit = versioninfo.Revision
		if versioninfo.DirtyBuild {
			commit += "-dirty"
		}
	}

	if buildTime == "unknown" && !versioninfo.LastCommit.IsZero() {
		buildTime = versioninfo.LastCommit.UTC().Format(time.RFC3339)
	}

	return handlers.NewBuildInfo(version, commit, buildTime)
}

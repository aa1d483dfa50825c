// Package version carries the build information; the build system sets
// the variables with `-ldflags "-X boscoin.io/ballot/lib/version.GitCommit=..."`.
package version

import (
	"fmt"
	"runtime"
)

var (
	Version   string = "0.1.0"
	GitCommit string
	GitState  string
	BuildDate string
)

func goVersion() string {
	return runtime.Version()
}

func ToDetailVersion() string {
	commit := GitCommit
	if len(GitState) > 0 && GitState != "clean" {
		commit = commit + "-" + GitState
	}

	return fmt.Sprintf("version=%s git=%s build=%s go=%s", Version, commit, BuildDate, goVersion())
}

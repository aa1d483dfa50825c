package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToDetailVersion(t *testing.T) {
	defer func(c, s string) { GitCommit, GitState = c, s }(GitCommit, GitState)

	GitCommit = "4f8a1c2"
	GitState = "clean"
	require.True(t, strings.HasPrefix(ToDetailVersion(), "version="+Version+" git=4f8a1c2 build="))

	GitState = "dirty"
	require.True(t, strings.Contains(ToDetailVersion(), "git=4f8a1c2-dirty "))
}

package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	require.NotEmpty(t, Version)
	require.NotEmpty(t, BuildTime)
	require.NotEmpty(t, GitCommit)
}

func TestString(t *testing.T) {
	origVersion, origCommit, origTime := Version, GitCommit, BuildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = origVersion, origCommit, origTime })

	Version, GitCommit, BuildTime = "v1.0.0", "unknown", "unknown"
	require.Equal(t, "v1.0.0", String())

	GitCommit, BuildTime = "abc1234", "2026-01-02T03:04:05Z"
	require.Equal(t, "v1.0.0 (commit abc1234, built 2026-01-02T03:04:05Z)", String())
}

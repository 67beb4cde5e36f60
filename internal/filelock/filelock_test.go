package filelock

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileLock_Exclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ".cosmofactory.lock")
	first := New(path)
	second := New(path)

	require.NoError(t, first.TryLock())
	require.FileExists(t, path)

	err := second.TryLock()
	require.ErrorIs(t, err, ErrLocked)

	require.NoError(t, first.Unlock())
	require.NoError(t, second.TryLock())
	require.NoError(t, second.Unlock())
	require.Equal(t, path, second.Path())
}

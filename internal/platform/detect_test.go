package platform

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultRecordingDirForLinuxWithXDG(t *testing.T) {
	t.Parallel()

	dir, err := DefaultRecordingDirFor("linux", "/home/dev", "/tmp/xdg-data")
	require.NoError(t, err)
	require.Equal(t, "/tmp/xdg-data/livecap/recordings", dir)
}

func TestDefaultRecordingDirForLinuxWithoutXDG(t *testing.T) {
	t.Parallel()

	dir, err := DefaultRecordingDirFor("linux", "/home/dev", "")
	require.NoError(t, err)
	require.Equal(t, "/home/dev/.local/share/livecap/recordings", dir)
}

func TestDefaultExportDirForMacOS(t *testing.T) {
	t.Parallel()

	dir, err := DefaultExportDirFor("darwin", "/Users/dev", "")
	require.NoError(t, err)
	require.Equal(t, "/Users/dev/Library/Application Support/livecap/exports", dir)
}

func TestDefaultRecordingDirForUnsupportedOS(t *testing.T) {
	t.Parallel()

	_, err := DefaultRecordingDirFor("windows", "/Users/dev", "")
	require.Error(t, err)
}

func TestResolveExportDirOverride(t *testing.T) {
	t.Parallel()

	dir, err := ResolveExportDir("/tmp/out//")
	require.NoError(t, err)
	require.Equal(t, "/tmp/out", dir)
}

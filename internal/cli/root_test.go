package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeContainer(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]string{
		"":      "webm",
		"webm":  "webm",
		" WEBM": "webm",
		"mp4":   "mp4",
		" Mp4 ": "mp4",
	} {
		got, err := sanitizeContainer(input)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := sanitizeContainer("mkv")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported container")
}

func TestRootCmdRejectsUnknownContainer(t *testing.T) {
	t.Parallel()

	_, _, err := runCommand(t, []string{"--container", "mkv", "version"})
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCommand(t, []string{"version"})
	require.NoError(t, err)
	require.Contains(t, stdout, "livecap v")
}

func TestRootCmdUnknownFlag(t *testing.T) {
	t.Parallel()

	_, _, err := runCommand(t, []string{"--definitely-not-a-flag"})
	require.Error(t, err)
}

func TestDevicesCommandRuns(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCommand(t, []string{"devices"})
	// Unsupported OSes error out; everywhere else the command reports each
	// backend even when it is not installed.
	if err != nil {
		require.Contains(t, err.Error(), "unsupported OS")
		return
	}
	require.Contains(t, stdout, "== ffmpeg-")
}

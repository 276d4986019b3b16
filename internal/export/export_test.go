package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/livecap/livecap/internal/capture"
	"github.com/stretchr/testify/require"
)

func TestSavePairsMediaAndSubtitle(t *testing.T) {
	t.Parallel()

	srcDir := t.TempDir()
	mediaSrc := filepath.Join(srcDir, "take.webm")
	require.NoError(t, os.WriteFile(mediaSrc, []byte("webm-bytes"), 0o644))

	outDir := filepath.Join(t.TempDir(), "exports")
	paths, err := Save(outDir, "session-1", capture.Artifact{Path: mediaSrc, MIME: "audio/webm"}, "WEBVTT\n\n")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(outDir, "session-1.webm"), paths.Media)
	require.Equal(t, filepath.Join(outDir, "session-1.vtt"), paths.Subtitle)

	media, err := os.ReadFile(paths.Media)
	require.NoError(t, err)
	require.Equal(t, "webm-bytes", string(media))

	vtt, err := os.ReadFile(paths.Subtitle)
	require.NoError(t, err)
	require.Equal(t, "WEBVTT\n\n", string(vtt))
}

func TestSaveUsesMP4ExtensionForMP4Artifacts(t *testing.T) {
	t.Parallel()

	srcDir := t.TempDir()
	mediaSrc := filepath.Join(srcDir, "take.mp4")
	require.NoError(t, os.WriteFile(mediaSrc, []byte("mp4-bytes"), 0o644))

	paths, err := Save(t.TempDir(), "clip", capture.Artifact{Path: mediaSrc, MIME: "audio/mp4"}, "WEBVTT\n\n")
	require.NoError(t, err)
	require.Equal(t, "clip.mp4", filepath.Base(paths.Media))
}

func TestSaveWithoutArtifact(t *testing.T) {
	t.Parallel()

	_, err := Save(t.TempDir(), "empty", capture.Artifact{}, "WEBVTT\n\n")
	require.ErrorIs(t, err, ErrNothingToExport)
}

func TestSaveRequiresBaseName(t *testing.T) {
	t.Parallel()

	_, err := Save(t.TempDir(), "   ", capture.Artifact{Path: "x"}, "WEBVTT\n\n")
	require.Error(t, err)
}

func TestSaveMissingMediaCleansUpSubtitle(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	_, err := Save(outDir, "broken", capture.Artifact{Path: filepath.Join(outDir, "missing.webm")}, "WEBVTT\n\n")
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(outDir, "broken.vtt"))
	require.True(t, os.IsNotExist(statErr))
}

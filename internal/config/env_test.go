package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadReadsDotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DEEPGRAM_API_KEY=dotenv-key\nLIVECAP_ENGINE=deepgram\n"), 0o644))

	t.Setenv("DEEPGRAM_API_KEY", "")
	t.Setenv("LIVECAP_ENGINE", "")
	os.Unsetenv("DEEPGRAM_API_KEY")
	os.Unsetenv("LIVECAP_ENGINE")

	env := Load(path)
	require.Equal(t, "dotenv-key", env.DeepgramAPIKey)
	require.Equal(t, "deepgram", env.Engine)
}

func TestLoadProcessEnvWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DEEPGRAM_API_KEY=dotenv-key\n"), 0o644))

	t.Setenv("DEEPGRAM_API_KEY", "process-key")

	env := Load(path)
	require.Equal(t, "process-key", env.DeepgramAPIKey)
}

func TestLoadMissingFileIsFine(t *testing.T) {
	t.Setenv("LIVECAP_ENGINE_CMD", " whisper-stream ")

	env := Load(filepath.Join(t.TempDir(), "does-not-exist.env"))
	require.Equal(t, "whisper-stream", env.EngineCommand)
}

// Package config resolves engine settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	envDeepgramAPIKey = "DEEPGRAM_API_KEY"
	envDeepgramURL    = "DEEPGRAM_URL"
	envEngine         = "LIVECAP_ENGINE"
	envEngineCommand  = "LIVECAP_ENGINE_CMD"
)

// Env holds recognizer settings pulled from the process environment.
type Env struct {
	Engine         string
	EngineCommand  string
	DeepgramAPIKey string
	DeepgramURL    string
}

// Load reads an optional .env file (missing files are fine, real process env
// always wins) and returns the recognizer settings.
func Load(dotenvPath string) Env {
	if dotenvPath != "" {
		_ = godotenv.Load(dotenvPath)
	} else {
		_ = godotenv.Load()
	}

	return Env{
		Engine:         strings.TrimSpace(os.Getenv(envEngine)),
		EngineCommand:  strings.TrimSpace(os.Getenv(envEngineCommand)),
		DeepgramAPIKey: strings.TrimSpace(os.Getenv(envDeepgramAPIKey)),
		DeepgramURL:    strings.TrimSpace(os.Getenv(envDeepgramURL)),
	}
}

// Package capture owns the media side of a recording session: it runs a
// capture backend that muxes microphone input into a container file while
// teeing the same audio as a live PCM stream for the recognizer.
package capture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"
)

var ErrNoBackendAvailable = errors.New("no capture backend available")

// Config describes one recording run.
type Config struct {
	OutputPath string
	Container  string // webm or mp4
	Input      string
	SampleRate int
	Channels   int
	Logger     *zap.Logger
}

// Recorder is a capture backend. Start begins recording and returns the live
// PCM stream; the channel closes when capture ends. Stop finalizes the
// container and returns the artifact. A Recorder records at most one run at
// a time.
type Recorder interface {
	Name() string
	Available() bool
	Start(ctx context.Context, cfg Config) (<-chan []byte, error)
	Stop(ctx context.Context) (Artifact, error)
	ListDevices(ctx context.Context) (string, error)
}

// DefaultRecorders returns the capture backends for the given OS, most
// preferred first.
func DefaultRecorders(goos string) []Recorder {
	switch goos {
	case "linux":
		return []Recorder{newFFmpegRecorder("ffmpeg-pulse", "pulse", "default"), newFFmpegRecorder("ffmpeg-alsa", "alsa", "default")}
	case "darwin":
		return []Recorder{newFFmpegRecorder("ffmpeg-avfoundation", "avfoundation", ":0")}
	default:
		return nil
	}
}

// NewRecorder picks a backend for the current OS, honoring an explicit
// preference ("auto" or empty means first available).
func NewRecorder(preferred string) (Recorder, error) {
	recorders := DefaultRecorders(runtime.GOOS)
	if len(recorders) == 0 {
		return nil, fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
	return SelectRecorder(recorders, preferred)
}

func SelectRecorder(recorders []Recorder, preferred string) (Recorder, error) {
	if len(recorders) == 0 {
		return nil, errors.New("no capture backends configured")
	}

	if preferred != "" && preferred != "auto" {
		for _, recorder := range recorders {
			if recorder.Name() == preferred {
				if !recorder.Available() {
					return nil, fmt.Errorf("requested capture backend %q is not available", preferred)
				}
				return recorder, nil
			}
		}
		return nil, fmt.Errorf("unknown capture backend %q", preferred)
	}

	for _, recorder := range recorders {
		if recorder.Available() {
			return recorder, nil
		}
	}

	return nil, ErrNoBackendAvailable
}

func commandAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

func commandOutput(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return strings.TrimSpace(string(out)), nil
}

func defaultSampleRate(value int) int {
	if value <= 0 {
		return 16000
	}
	return value
}

func defaultChannels(value int) int {
	if value <= 0 {
		return 1
	}
	return value
}

func removePartialRecording(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}

	err := os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func filepathDir(path string) string {
	return filepath.Dir(filepath.Clean(path))
}

package capture

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// ffmpegRecorder captures with a single ffmpeg process that writes the
// container file and simultaneously emits raw s16le PCM on stdout, which we
// fan out as the live audio stream.
type ffmpegRecorder struct {
	name         string
	format       string
	defaultInput string

	mu     sync.Mutex
	cmd    *exec.Cmd
	cfg    Config
	logger *zap.Logger
	stream chan []byte
	done   chan struct{}
}

func newFFmpegRecorder(name, format, defaultInput string) *ffmpegRecorder {
	return &ffmpegRecorder{name: name, format: format, defaultInput: defaultInput}
}

func (r *ffmpegRecorder) Name() string { return r.name }

func (r *ffmpegRecorder) Available() bool {
	return commandAvailable("ffmpeg")
}

func (r *ffmpegRecorder) Start(ctx context.Context, cfg Config) (<-chan []byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cmd != nil {
		return nil, errors.New("capture already running")
	}
	if cfg.OutputPath == "" {
		return nil, errors.New("output path is required")
	}
	if err := os.MkdirAll(filepathDir(cfg.OutputPath), 0o755); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	input := cfg.Input
	if input == "" {
		input = r.defaultInput
	}

	args := buildFFmpegArgs(r.format, input, cfg)
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	cmd.Stderr = os.Stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("open ffmpeg stdout: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}

	r.cmd = cmd
	r.cfg = cfg
	r.logger = logger
	r.stream = make(chan []byte, 32)
	r.done = make(chan struct{})

	go r.pumpPCM(ctx, stdout, r.stream, r.done)

	logger.Debug("capture started",
		zap.String("backend", r.name),
		zap.String("input", input),
		zap.String("output", cfg.OutputPath))
	return r.stream, nil
}

// Stop signals ffmpeg to finalize the container, waits for it to flush, and
// returns the artifact. A salvageable partial file still counts as an
// artifact; only a missing or empty file is a failure.
func (r *ffmpegRecorder) Stop(_ context.Context) (Artifact, error) {
	r.mu.Lock()
	cmd := r.cmd
	cfg := r.cfg
	logger := r.logger
	done := r.done
	r.cmd = nil
	r.mu.Unlock()

	if cmd == nil {
		return Artifact{}, errors.New("capture not running")
	}

	// SIGINT asks ffmpeg to close the container cleanly; a hard kill would
	// leave an unreadable file for mp4.
	if cmd.Process != nil {
		_ = cmd.Process.Signal(os.Interrupt)
	}

	waitErr := cmd.Wait()
	if done != nil {
		<-done
	}

	info, statErr := os.Stat(cfg.OutputPath)
	if statErr != nil || info.Size() == 0 {
		if cleanupErr := removePartialRecording(cfg.OutputPath); cleanupErr != nil {
			logger.Warn("failed to remove partial recording", zap.String("path", cfg.OutputPath), zap.Error(cleanupErr))
		}
		if waitErr != nil {
			return Artifact{}, fmt.Errorf("ffmpeg capture failed: %w", waitErr)
		}
		return Artifact{}, fmt.Errorf("capture produced no output at %s", cfg.OutputPath)
	}

	if waitErr != nil {
		// ffmpeg exits non-zero after SIGINT on some builds even when the
		// file is fine.
		logger.Debug("ffmpeg exited non-zero after stop signal", zap.Error(waitErr))
	}

	artifact := Artifact{Path: cfg.OutputPath, MIME: MIMEForContainer(cfg.Container)}
	logger.Debug("capture finished", zap.String("path", artifact.Path), zap.String("mime", artifact.MIME))
	return artifact, nil
}

func (r *ffmpegRecorder) pumpPCM(ctx context.Context, stdout io.Reader, stream chan<- []byte, done chan<- struct{}) {
	defer close(done)
	defer close(stream)

	reader := bufio.NewReaderSize(stdout, 64*1024)
	buf := make([]byte, 8192)
	for {
		n, err := reader.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			select {
			case stream <- chunk:
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			return
		}
	}
}

func (r *ffmpegRecorder) ListDevices(ctx context.Context) (string, error) {
	switch r.format {
	case "avfoundation":
		out, _ := exec.CommandContext(ctx, "ffmpeg", "-hide_banner", "-f", "avfoundation", "-list_devices", "true", "-i", "").CombinedOutput()
		trimmed := strings.TrimSpace(string(out))
		if trimmed == "" {
			return "", errors.New("ffmpeg returned no device output")
		}
		return trimmed, nil
	case "pulse":
		if commandAvailable("pactl") {
			return commandOutput(ctx, "pactl", "list", "short", "sources")
		}
		return "", errors.New("pactl not available to list pulse sources")
	case "alsa":
		if commandAvailable("arecord") {
			return commandOutput(ctx, "arecord", "-L")
		}
		return "", errors.New("arecord not available to list alsa devices")
	default:
		return "", fmt.Errorf("no device listing for format %q", r.format)
	}
}

// buildFFmpegArgs muxes the input into the container at OutputPath and tees
// the same audio as raw s16le PCM on stdout for the recognizer.
func buildFFmpegArgs(format, input string, cfg Config) []string {
	rate := strconv.Itoa(defaultSampleRate(cfg.SampleRate))
	channels := strconv.Itoa(defaultChannels(cfg.Channels))

	codec := "libopus"
	if strings.EqualFold(cfg.Container, "mp4") {
		codec = "aac"
	}

	return []string{
		"-nostdin", "-hide_banner", "-loglevel", "error", "-y",
		"-f", format, "-i", input,
		"-map", "0:a", "-ac", channels, "-ar", rate, "-c:a", codec, cfg.OutputPath,
		"-map", "0:a", "-ac", channels, "-ar", rate, "-f", "s16le", "-c:a", "pcm_s16le", "pipe:1",
	}
}

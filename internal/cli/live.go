package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/livecap/livecap/internal/capture"
	"github.com/livecap/livecap/internal/config"
	"github.com/livecap/livecap/internal/platform"
	"github.com/livecap/livecap/internal/recognize"
	"github.com/livecap/livecap/internal/session"
	"github.com/livecap/livecap/internal/subtitle"
	"github.com/livecap/livecap/internal/timeline"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var errInteractiveRequiresTTY = errors.New("interactive recording requires terminal input")

// runLive is the default flow: capture with live captions until stopped, then
// export the media file and its WebVTT subtitles side by side.
func (a *appState) runLive(ctx context.Context) error {
	recorder, err := a.newRecorderFn(a.backend)
	if err != nil {
		return err
	}

	engine, err := a.newEngineFn(config.Load(a.envFile))
	if err != nil {
		return err
	}

	recordingPath, err := a.recordingPath()
	if err != nil {
		return err
	}

	sess := session.New(session.Options{
		Recorder: recorder,
		Engine:   engine,
		CaptureConfig: capture.Config{
			OutputPath: recordingPath,
			Container:  a.container,
			Input:      a.input,
			Logger:     a.log(),
		},
		Logger:  a.log(),
		Notify:  func(status string) { fmt.Fprintln(os.Stderr, status) },
		OnChunk: a.printChunk,
	})

	interactive := a.duration <= 0
	if interactive && !a.immediate {
		if err := a.waitFn("Press Enter to start recording."); err != nil {
			return err
		}
	}

	if err := sess.Start(ctx); err != nil {
		return err
	}

	a.log().Info("recording started",
		zap.String("backend", recorder.Name()),
		zap.String("engine", engine.Name()),
		zap.String("output", recordingPath))

	stopProgress := func() {}
	if interactive {
		stopProgress = startSpinner(a.progressEnabled(), "Recording")
	} else {
		stopProgress = startDurationProgress(a.progressEnabled(), "Recording", a.duration)
	}

	var waitErr error
	if interactive {
		waitErr = a.waitFn("Recording... press Enter to stop.")
	} else {
		select {
		case <-time.After(a.duration):
		case <-ctx.Done():
			waitErr = ctx.Err()
		}
	}
	stopProgress()

	if stopErr := sess.Stop(ctx); stopErr != nil {
		// Keep whatever transcript we have; the export below will report
		// the missing artifact.
		a.log().Warn("stopping recording failed", zap.Error(stopErr))
	}
	if waitErr != nil {
		sess.Clear(ctx)
		return waitErr
	}

	store := sess.Store()
	a.log().Info("recording finished",
		zap.Int("chunks", store.Len()),
		zap.Int("words", store.WordCount()),
		zap.String("duration", subtitle.FormatTimestamp(store.Duration())))

	return a.exportSession(sess)
}

func (a *appState) exportSession(sess *session.Session) error {
	dir, err := platform.ResolveExportDir(a.outputDir)
	if err != nil {
		return err
	}

	base := strings.TrimSpace(a.baseName)
	if base == "" {
		base = fmt.Sprintf("capture-%s", a.now().Format("20060102-150405"))
	}

	paths, err := sess.Export(dir, base)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.outWriter(), paths.Media)
	fmt.Fprintln(a.outWriter(), paths.Subtitle)
	return nil
}

func (a *appState) recordingPath() (string, error) {
	dir, err := platform.ResolveRecordingDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create recording directory %s: %w", dir, err)
	}

	name := fmt.Sprintf("recording-%s.%s", a.now().Format("20060102-150405"), a.container)
	return filepath.Join(dir, name), nil
}

func (a *appState) printChunk(chunk timeline.Chunk) {
	fmt.Fprintf(a.outWriter(), "[%s --> %s] %s\n",
		subtitle.FormatTimestamp(chunk.Start),
		subtitle.FormatTimestamp(chunk.End),
		chunk.Text)
}

// buildEngine picks the recognition engine. "auto" prefers Deepgram when an
// API key is configured and falls back to the subprocess stream engine.
func (a *appState) buildEngine(env config.Env) (recognize.Engine, error) {
	choice := strings.TrimSpace(strings.ToLower(a.engine))
	if choice == "" || choice == "auto" {
		choice = env.Engine
	}
	if choice == "" || choice == "auto" {
		if env.DeepgramAPIKey != "" {
			choice = "deepgram"
		} else {
			choice = "stream"
		}
	}

	switch choice {
	case "deepgram":
		return recognize.NewDeepgramEngine(recognize.DeepgramConfig{
			APIKey: env.DeepgramAPIKey,
			URL:    env.DeepgramURL,
			Logger: a.log(),
		}), nil
	case "stream":
		command := a.engineCmd
		if command == "" {
			command = env.EngineCommand
		}
		if command == "" {
			return nil, errors.New("stream engine needs --engine-cmd (or LIVECAP_ENGINE_CMD)")
		}
		return recognize.NewStreamEngine(recognize.StreamConfig{
			Command: command,
			Logger:  a.log(),
		}), nil
	default:
		return nil, fmt.Errorf("unknown engine %q (want stream or deepgram)", choice)
	}
}

func waitForEnter(message string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errInteractiveRequiresTTY
	}

	if message != "" {
		if _, err := fmt.Fprintln(os.Stderr, message); err != nil {
			return err
		}
	}

	reader := bufio.NewReader(os.Stdin)
	_, err := reader.ReadString('\n')
	return err
}

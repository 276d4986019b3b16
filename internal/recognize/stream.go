package recognize

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/livecap/livecap/internal/timeline"
	"go.uber.org/zap"
)

// StreamConfig describes the external recognizer process. The process reads
// raw PCM from stdin and writes one JSON event per line to stdout:
//
//	{"text": "hello wor", "final": false}
//	{"text": "hello world", "final": true}
type StreamConfig struct {
	Command string
	Args    []string
	Logger  *zap.Logger
}

// StreamEngine runs the recognizer as a subprocess, pumping captured audio
// into its stdin and translating its NDJSON output into updates.
type StreamEngine struct {
	cfg    StreamConfig
	logger *zap.Logger

	mu     sync.Mutex
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	cancel context.CancelFunc
	done   chan struct{}
}

func NewStreamEngine(cfg StreamConfig) *StreamEngine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StreamEngine{cfg: cfg, logger: logger}
}

func (e *StreamEngine) Name() string { return "stream" }

func (e *StreamEngine) Start(ctx context.Context, audio <-chan []byte, consumer Consumer) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cmd != nil {
		return errors.New("stream engine already started")
	}

	command := strings.TrimSpace(e.cfg.Command)
	if command == "" {
		return errors.New("stream engine requires a recognizer command")
	}

	runCtx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(runCtx, command, e.cfg.Args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("open recognizer stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("open recognizer stdout: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("open recognizer stderr: %w", err)
	}

	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("start recognizer %q: %w", command, err)
	}

	e.cmd = cmd
	e.stdin = stdin
	e.cancel = cancel
	e.done = make(chan struct{})
	done := e.done

	go e.pumpAudio(runCtx, audio, stdin)
	go e.logStderr(stderr)
	go func() {
		defer close(done)
		e.readEvents(runCtx, stdout, consumer)
		_ = cmd.Wait()
	}()

	e.logger.Debug("stream engine started", zap.String("command", command))
	return nil
}

func (e *StreamEngine) Stop(_ context.Context) error {
	e.mu.Lock()
	cmd := e.cmd
	stdin := e.stdin
	cancel := e.cancel
	done := e.done
	e.cmd = nil
	e.stdin = nil
	e.cancel = nil
	e.done = nil
	e.mu.Unlock()

	if cmd == nil {
		return nil
	}

	// Closing stdin lets the recognizer flush its last hypothesis and exit
	// on its own before the context cancel forces it down.
	if stdin != nil {
		_ = stdin.Close()
	}
	if cmd.Process != nil {
		_ = cmd.Process.Signal(os.Interrupt)
	}
	if done != nil {
		<-done
	}
	if cancel != nil {
		cancel()
	}
	return nil
}

func (e *StreamEngine) pumpAudio(ctx context.Context, audio <-chan []byte, stdin io.WriteCloser) {
	for {
		select {
		case <-ctx.Done():
			return
		case chunk, ok := <-audio:
			if !ok {
				_ = stdin.Close()
				return
			}
			if len(chunk) == 0 {
				continue
			}
			if _, err := stdin.Write(chunk); err != nil {
				e.logger.Debug("recognizer stdin write failed", zap.Error(err))
				return
			}
		}
	}
}

type streamEvent struct {
	Text  string `json:"text"`
	Final bool   `json:"final"`
	Error string `json:"error"`
}

func (e *StreamEngine) readEvents(ctx context.Context, r io.Reader, consumer Consumer) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		update, errCode, ok := parseStreamLine(line)
		if !ok {
			e.logger.Debug("ignoring unparseable recognizer line", zap.String("line", line))
			continue
		}
		if errCode != "" {
			consumer.OnError(errCode)
			continue
		}
		consumer.OnUpdate(update)
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) && ctx.Err() == nil {
		e.logger.Warn("recognizer output read failed", zap.Error(err))
		consumer.OnError(ErrAborted)
	}
}

func parseStreamLine(line string) (timeline.Update, ErrorCode, bool) {
	var event streamEvent
	if err := json.Unmarshal([]byte(line), &event); err != nil {
		return timeline.Update{}, "", false
	}

	if event.Error != "" {
		return timeline.Update{}, ErrorCode(event.Error), true
	}

	return timeline.Update{
		Segments: []timeline.Segment{{Text: event.Text, Final: event.Final}},
	}, "", true
}

func (e *StreamEngine) logStderr(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		e.logger.Debug("recognizer", zap.String("stderr", line))
	}
}

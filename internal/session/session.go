// Package session drives the recording lifecycle: Idle, Recording, Stopped.
// A session owns the transcript store, the chunk builder, and both
// collaborators (media capture and speech recognition), and serializes every
// state mutation because collaborator events arrive on their own goroutines.
package session

import (
	"context"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/livecap/livecap/internal/capture"
	"github.com/livecap/livecap/internal/export"
	"github.com/livecap/livecap/internal/recognize"
	"github.com/livecap/livecap/internal/subtitle"
	"github.com/livecap/livecap/internal/timeline"
	"github.com/livecap/livecap/internal/transcript"
	"go.uber.org/zap"
)

type State int

const (
	StateIdle State = iota
	StateRecording
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Options wires a session together. Recorder and Engine are required; the
// rest have working defaults.
type Options struct {
	Recorder      capture.Recorder
	Engine        recognize.Engine
	CaptureConfig capture.Config
	Logger        *zap.Logger

	// Notify receives user-facing status lines (collaborator failures,
	// lifecycle notices). Defaults to logging.
	Notify func(status string)

	// OnChunk fires for every finalized chunk, for live display.
	OnChunk func(chunk timeline.Chunk)

	// OnInterim fires when the interim hypothesis changes.
	OnInterim func(text string)
}

type Session struct {
	id       string
	recorder capture.Recorder
	engine   recognize.Engine
	capCfg   capture.Config
	logger   *zap.Logger
	notify   func(string)
	onChunk  func(timeline.Chunk)
	onInter  func(string)

	clock   *timeline.Clock
	builder *timeline.Builder
	store   *transcript.Store

	mu       sync.Mutex
	state    State
	artifact *capture.Artifact
}

func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	clock := timeline.NewClock()
	s := &Session{
		id:       uuid.NewString(),
		recorder: opts.Recorder,
		engine:   opts.Engine,
		capCfg:   opts.CaptureConfig,
		logger:   logger,
		onChunk:  opts.OnChunk,
		onInter:  opts.OnInterim,
		clock:    clock,
		builder:  timeline.NewBuilder(clock),
		store:    transcript.NewStore(),
	}

	s.notify = opts.Notify
	if s.notify == nil {
		s.notify = func(status string) {
			logger.Info(status, zap.String("session", s.id))
		}
	}
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Store exposes the transcript state for display and seek lookups. The store
// is safe for concurrent reads while recording.
func (s *Session) Store() *transcript.Store { return s.store }

// Artifact returns the finalized media artifact, if the session holds one.
func (s *Session) Artifact() (capture.Artifact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.artifact == nil {
		return capture.Artifact{}, false
	}
	return *s.artifact, true
}

// Start acquires both collaborators and enters Recording. Starting while
// already recording is a no-op. Every start is a fresh session: transcript,
// clock anchor, and chunk counters reset unconditionally. An acquisition
// failure leaves the session Idle with no partial state.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateRecording {
		s.mu.Unlock()
		return nil
	}
	s.discardArtifactLocked()
	s.store.Reset()
	s.builder.Reset()
	s.mu.Unlock()

	audio, err := s.recorder.Start(ctx, s.capCfg)
	if err != nil {
		acqErr := &AcquisitionError{Collaborator: "media capture", Err: err}
		s.notify("Could not start recording: " + err.Error())
		return acqErr
	}

	if err := s.engine.Start(ctx, audio, s); err != nil {
		// Tear the recorder down again; a half-acquired session must not
		// linger.
		if artifact, stopErr := s.recorder.Stop(ctx); stopErr == nil {
			_ = os.Remove(artifact.Path)
		}
		acqErr := &AcquisitionError{Collaborator: "speech recognition", Err: err}
		s.notify("Could not start speech recognition: " + err.Error())
		return acqErr
	}

	s.mu.Lock()
	s.clock.Start()
	s.state = StateRecording
	s.mu.Unlock()

	s.logger.Info("recording started",
		zap.String("session", s.id),
		zap.String("backend", s.recorder.Name()),
		zap.String("engine", s.engine.Name()))
	return nil
}

// Stop halts recognition, finalizes the media artifact, and enters Stopped.
// Stopping while not recording is a no-op. The current interim hypothesis is
// discarded; finalized chunks are retained.
func (s *Session) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateRecording {
		s.mu.Unlock()
		return nil
	}
	// Leave Recording before stopping the collaborators: their event loops
	// may be blocked delivering into OnUpdate, which must stay lock-cheap.
	s.state = StateStopped
	s.mu.Unlock()

	if err := s.engine.Stop(ctx); err != nil {
		s.logger.Warn("recognition engine stop failed", zap.String("session", s.id), zap.Error(err))
	}

	artifact, err := s.recorder.Stop(ctx)

	s.mu.Lock()
	s.store.SetInterim("")
	if err != nil {
		s.artifact = nil
	} else {
		s.artifact = &artifact
	}
	s.mu.Unlock()

	if s.onInter != nil {
		s.onInter("")
	}

	if err != nil {
		s.notify("Recording failed: " + err.Error())
		s.logger.Warn("media capture stop failed", zap.String("session", s.id), zap.Error(err))
		return err
	}

	s.logger.Info("recording stopped",
		zap.String("session", s.id),
		zap.String("artifact", artifact.Path),
		zap.Int("chunks", s.store.Len()),
		zap.Int("words", s.store.WordCount()))
	return nil
}

// Clear returns to Idle from any state: stops collaborators if recording,
// discards the transcript and the media artifact, and resets all counters.
func (s *Session) Clear(ctx context.Context) {
	s.mu.Lock()
	recording := s.state == StateRecording
	s.state = StateIdle
	s.mu.Unlock()

	if recording {
		if err := s.engine.Stop(ctx); err != nil {
			s.logger.Warn("recognition engine stop failed", zap.String("session", s.id), zap.Error(err))
		}
		if artifact, err := s.recorder.Stop(ctx); err == nil {
			_ = os.Remove(artifact.Path)
		}
	}

	s.mu.Lock()
	s.discardArtifactLocked()
	s.store.Reset()
	s.builder.Reset()
	s.mu.Unlock()

	s.logger.Info("session cleared", zap.String("session", s.id))
}

// OnUpdate implements recognize.Consumer. Events arriving outside Recording
// (late flushes after stop) are dropped.
func (s *Session) OnUpdate(update timeline.Update) {
	s.mu.Lock()
	if s.state != StateRecording {
		s.mu.Unlock()
		return
	}
	chunks, interim := s.builder.Process(update)
	s.store.Append(chunks...)
	s.store.SetInterim(interim)
	s.mu.Unlock()

	if s.onChunk != nil {
		for _, chunk := range chunks {
			s.onChunk(chunk)
		}
	}
	if s.onInter != nil {
		s.onInter(interim)
	}
}

// OnError implements recognize.Consumer. Recognition failures surface as a
// status line only: capture keeps running, finalized chunks stay, and the
// builder counters are untouched so recognition could resume.
func (s *Session) OnError(code recognize.ErrorCode) {
	s.logger.Warn("recognition error",
		zap.String("session", s.id),
		zap.String("code", string(code)))
	s.notify(StatusForRecognitionCode(code))
}

// Export writes the media artifact and the WebVTT transcript next to each
// other under the given base name. Exporting without an artifact fails with
// export.ErrNothingToExport and writes no files.
func (s *Session) Export(dir, base string) (export.Paths, error) {
	artifact, ok := s.Artifact()
	if !ok {
		return export.Paths{}, export.ErrNothingToExport
	}

	doc := subtitle.Render(s.store.Chunks())
	return export.Save(dir, base, artifact, doc)
}

func (s *Session) discardArtifactLocked() {
	if s.artifact != nil {
		_ = os.Remove(s.artifact.Path)
		s.artifact = nil
	}
}

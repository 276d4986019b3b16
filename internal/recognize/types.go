// Package recognize defines the boundary to the streaming speech recognizer.
// The recognizer is a black box: it consumes live audio and pushes typed
// updates carrying interim and final result segments, plus an error signal
// when something goes wrong mid-stream.
package recognize

import (
	"context"

	"github.com/livecap/livecap/internal/timeline"
)

// ErrorCode classifies mid-stream recognizer failures.
type ErrorCode string

const (
	ErrNoSpeech     ErrorCode = "no-speech"
	ErrAudioCapture ErrorCode = "audio-capture"
	ErrNotAllowed   ErrorCode = "not-allowed"
	ErrNetwork      ErrorCode = "network"
	ErrAborted      ErrorCode = "aborted"
)

// Consumer receives recognition events. Implementations must tolerate calls
// from the engine's internal read loop goroutine.
type Consumer interface {
	OnUpdate(update timeline.Update)
	OnError(code ErrorCode)
}

// Engine is a streaming recognizer. Start begins recognition against the
// given live audio stream and returns once the engine is running; events are
// delivered to the consumer until Stop is called, the audio channel closes,
// or the context is cancelled. Stop is idempotent.
type Engine interface {
	Name() string
	Start(ctx context.Context, audio <-chan []byte, consumer Consumer) error
	Stop(ctx context.Context) error
}

// ConsumerFuncs adapts plain functions to the Consumer interface.
type ConsumerFuncs struct {
	Update func(timeline.Update)
	Error  func(ErrorCode)
}

func (c ConsumerFuncs) OnUpdate(update timeline.Update) {
	if c.Update != nil {
		c.Update(update)
	}
}

func (c ConsumerFuncs) OnError(code ErrorCode) {
	if c.Error != nil {
		c.Error(code)
	}
}

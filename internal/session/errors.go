package session

import (
	"fmt"

	"github.com/livecap/livecap/internal/recognize"
)

// AcquisitionError means the media or recognition collaborator could not be
// acquired; the recording never started and no partial state exists.
type AcquisitionError struct {
	Collaborator string
	Err          error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("acquire %s: %v", e.Collaborator, e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

// RecognitionError is an engine-reported mid-stream failure. It never stops
// an in-progress media recording and never discards finalized chunks.
type RecognitionError struct {
	Code recognize.ErrorCode
}

func (e *RecognitionError) Error() string {
	return fmt.Sprintf("recognition error: %s", e.Code)
}

// StatusForRecognitionCode maps an engine error code to the user-facing
// status line.
func StatusForRecognitionCode(code recognize.ErrorCode) string {
	switch code {
	case recognize.ErrNoSpeech:
		return "No speech detected. Check mic mute and selected input device."
	case recognize.ErrAudioCapture:
		return "Recognizer lost the audio input."
	case recognize.ErrNotAllowed:
		return "Speech recognition access was denied."
	case recognize.ErrNetwork:
		return "Speech recognition transport failed."
	case recognize.ErrAborted:
		return "Speech recognition was aborted."
	default:
		return fmt.Sprintf("Speech recognition failed (%s).", code)
	}
}

// Package transcript holds the authoritative transcript state for a
// recording session: the append-only sequence of timed chunks, the current
// interim hypothesis, and the running word count.
package transcript

import (
	"sync"

	"github.com/livecap/livecap/internal/timeline"
)

// Store is owned by a single recording session. Chunks are append-only and
// chronologically ordered by construction; interim text is transient and
// replaced wholesale on every recognition update. A mutex guards all access
// because recognition and media events may arrive on different goroutines.
type Store struct {
	mu        sync.Mutex
	chunks    []timeline.Chunk
	interim   string
	wordCount int
}

func NewStore() *Store {
	return &Store{}
}

// Append records finalized chunks in arrival order and folds their word
// counts into the running total.
func (s *Store) Append(chunks ...timeline.Chunk) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, chunk := range chunks {
		s.chunks = append(s.chunks, chunk)
		s.wordCount += chunk.WordCount()
	}
}

// SetInterim replaces the current unfinalized hypothesis. Interim text never
// contributes to the word count.
func (s *Store) SetInterim(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interim = text
}

func (s *Store) Interim() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interim
}

// Chunks returns a copy of the chunk sequence.
func (s *Store) Chunks() []timeline.Chunk {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]timeline.Chunk, len(s.chunks))
	copy(out, s.chunks)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.chunks)
}

func (s *Store) WordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wordCount
}

// Duration returns the end time of the last chunk, i.e. the extent of the
// tiled timeline, in seconds.
func (s *Store) Duration() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.chunks) == 0 {
		return 0
	}
	return s.chunks[len(s.chunks)-1].End
}

// Reset discards everything. Used when a new recording starts and on
// explicit clear; there is no partial reset.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chunks = nil
	s.interim = ""
	s.wordCount = 0
}

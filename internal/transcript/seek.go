package transcript

import "github.com/livecap/livecap/internal/timeline"

// FindChunkAt returns the chunk active at playback position t, in seconds
// from recording start. Intervals are half-open [start, end), so when two
// chunks share a boundary the later one owns the boundary instant. A
// zero-duration chunk owns exactly its own instant. Positions before the
// first chunk or at/after the last chunk's end match nothing.
func (s *Store) FindChunkAt(t float64) (timeline.Chunk, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		match timeline.Chunk
		found bool
	)
	for _, chunk := range s.chunks {
		if chunk.Start <= t && t < chunk.End {
			match, found = chunk, true
		} else if chunk.Start == chunk.End && t == chunk.Start {
			match, found = chunk, true
		}
	}
	return match, found
}

// StartTimeOf returns the start time of the chunk with the given id, for
// seek-on-click. Plain lookup; chunk ids are unique within a session.
func (s *Store) StartTimeOf(id string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, chunk := range s.chunks {
		if chunk.ID == id {
			return chunk.Start, true
		}
	}
	return 0, false
}

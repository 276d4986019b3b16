package timeline

import (
	"fmt"
	"strings"
)

// Segment is one recognition result inside an update. Final segments are
// permanent; the recognizer guarantees it will not re-emit their content.
// Non-final segments are provisional and may be revised or withdrawn by a
// later update.
type Segment struct {
	Text  string
	Final bool
}

// Update is the payload of a single recognition event: zero or more segments
// in the order the recognizer produced them.
type Update struct {
	Segments []Segment
}

// Builder converts a stream of recognition updates into timed chunks. It owns
// the pair of counters that stitch the chunk timeline together: the end time
// of the last finalized chunk and the running chunk index. Both survive
// recognizer errors so a restart can resume; only Reset clears them.
//
// Builder is not safe for concurrent use; the owning session serializes
// access.
type Builder struct {
	clock        *Clock
	lastFinalEnd float64
	nextIndex    int
}

func NewBuilder(clock *Clock) *Builder {
	return &Builder{clock: clock}
}

// Process walks the update's segments in delivered order. Every final segment
// becomes a chunk whose end is the clock reading at the moment of
// finalization and whose start is the previous chunk's end. Interim segment
// texts are concatenated into a single string that wholly replaces any
// earlier interim text, so an update without interim segments clears it.
//
// A final segment that trims to empty still becomes a (zero-word,
// typically zero-duration) chunk: dropping it would tear a hole in the
// chunk tiling, and the exporter tolerates empty cues better than players
// tolerate gaps.
func (b *Builder) Process(update Update) (chunks []Chunk, interim string) {
	var interimParts []string

	for _, segment := range update.Segments {
		if !segment.Final {
			interimParts = append(interimParts, segment.Text)
			continue
		}

		end := b.clock.Elapsed()
		chunk := Chunk{
			ID:    fmt.Sprintf("chunk-%d", b.nextIndex),
			Text:  strings.TrimSpace(segment.Text),
			Start: b.lastFinalEnd,
			End:   end,
		}
		chunks = append(chunks, chunk)
		b.lastFinalEnd = end
		b.nextIndex++
	}

	return chunks, strings.Join(interimParts, "")
}

// Reset zeroes the chunk counters. Called when a new recording starts or the
// session is cleared, never on recognizer errors.
func (b *Builder) Reset() {
	b.lastFinalEnd = 0
	b.nextIndex = 0
}

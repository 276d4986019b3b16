package timeline

import "strings"

// Chunk is one finalized span of transcript text. Start and End are offsets
// from recording start in seconds. Adjacent chunks tile the recording
// timeline: chunk n starts exactly where chunk n-1 ended, with chunk 0
// starting at zero.
type Chunk struct {
	ID    string
	Text  string
	Start float64
	End   float64
}

// WordCount returns the number of whitespace-delimited tokens in the chunk
// text. Empty and all-whitespace text counts as zero words.
func (c Chunk) WordCount() int {
	return len(strings.Fields(c.Text))
}

// Duration returns the chunk length in seconds. Zero-duration chunks are
// legal; they mark a finalization that carried no usable text.
func (c Chunk) Duration() float64 {
	return c.End - c.Start
}

// Package subtitle renders a chunk timeline as a WebVTT document and parses
// one back, so exports can be verified cue-for-cue.
package subtitle

import (
	"fmt"
	"math"
	"strings"

	"github.com/livecap/livecap/internal/timeline"
)

const header = "WEBVTT"

// FormatTimestamp renders seconds as HH:MM:SS.mmm with every field
// zero-padded and milliseconds truncated, never rounded. Subtitle players
// compare these strings byte-wise, so the arithmetic must stay exactly this.
func FormatTimestamp(seconds float64) string {
	hours := int(math.Floor(seconds / 3600))
	minutes := int(math.Floor(math.Mod(seconds, 3600) / 60))
	secs := int(math.Floor(math.Mod(seconds, 60)))

	// The nudge keeps decimal inputs like 65.234, which sit a hair below
	// their nominal value in binary, from truncating to the previous
	// millisecond. It is far smaller than half a millisecond, so genuine
	// sub-millisecond precision still truncates.
	millis := int(math.Floor((seconds-math.Floor(seconds))*1000 + 1e-7))
	if millis > 999 {
		millis = 999
	}

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, secs, millis)
}

// Render produces a complete WebVTT document: the header, then one cue block
// per chunk in chronological order. Cues are numbered from 1. Empty chunks
// render as empty cues rather than being skipped, keeping cue numbering in
// step with chunk indices.
func Render(chunks []timeline.Chunk) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")

	for i, chunk := range chunks {
		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", FormatTimestamp(chunk.Start), FormatTimestamp(chunk.End))
		b.WriteString(strings.TrimSpace(chunk.Text))
		b.WriteString("\n\n")
	}

	return b.String()
}

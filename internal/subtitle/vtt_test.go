package subtitle

import (
	"testing"

	"github.com/livecap/livecap/internal/timeline"
	"github.com/stretchr/testify/require"
)

func TestFormatTimestamp(t *testing.T) {
	t.Parallel()

	require.Equal(t, "00:00:00.000", FormatTimestamp(0))
	require.Equal(t, "00:01:05.234", FormatTimestamp(65.234))
	require.Equal(t, "00:00:01.200", FormatTimestamp(1.2))
	require.Equal(t, "01:00:00.000", FormatTimestamp(3600))
	require.Equal(t, "02:15:42.001", FormatTimestamp(2*3600+15*60+42.0015))
	require.Equal(t, "27:46:40.000", FormatTimestamp(100000))
}

func TestFormatTimestampTruncatesMilliseconds(t *testing.T) {
	t.Parallel()

	require.Equal(t, "00:00:00.999", FormatTimestamp(0.9999))
	require.Equal(t, "00:00:59.999", FormatTimestamp(59.9999))
}

func TestRenderDocumentShape(t *testing.T) {
	t.Parallel()

	doc := Render([]timeline.Chunk{
		{ID: "chunk-0", Text: "hello world", Start: 0, End: 1.2},
		{ID: "chunk-1", Text: "this is a test", Start: 1.2, End: 3.5},
		{ID: "chunk-2", Text: "", Start: 3.5, End: 3.5},
	})

	want := "WEBVTT\n\n" +
		"1\n00:00:00.000 --> 00:00:01.200\nhello world\n\n" +
		"2\n00:00:01.200 --> 00:00:03.500\nthis is a test\n\n" +
		"3\n00:00:03.500 --> 00:00:03.500\n\n\n"
	require.Equal(t, want, doc)
}

func TestRenderEmptyTimeline(t *testing.T) {
	t.Parallel()

	require.Equal(t, "WEBVTT\n\n", Render(nil))
}

func TestRoundTripRecoverCues(t *testing.T) {
	t.Parallel()

	chunks := []timeline.Chunk{
		{ID: "chunk-0", Text: "hello world", Start: 0, End: 1.2},
		{ID: "chunk-1", Text: "this is a test", Start: 1.2, End: 3.5},
		{ID: "chunk-2", Text: "", Start: 3.5, End: 3.5},
		{ID: "chunk-3", Text: "after an hour", Start: 3.5, End: 3725.043},
	}

	cues, err := Parse(Render(chunks))
	require.NoError(t, err)
	require.Len(t, cues, len(chunks))

	for i, cue := range cues {
		require.Equal(t, i+1, cue.Index)
		require.Equal(t, chunks[i].Text, cue.Text)
		requireMillisEqual(t, chunks[i].Start, cue.Start)
		requireMillisEqual(t, chunks[i].End, cue.End)
	}
}

// requireMillisEqual compares times up to the millisecond truncation the
// formatter applies: the recovered value may sit up to one millisecond below
// the original, never above it.
func requireMillisEqual(t *testing.T, want, got float64) {
	t.Helper()
	require.InDelta(t, want, got, 0.001)
	require.LessOrEqual(t, got, want+1e-9)
}

func TestParseRejectsMissingHeader(t *testing.T) {
	t.Parallel()

	_, err := Parse("1\n00:00:00.000 --> 00:00:01.000\nhi\n")
	require.ErrorIs(t, err, ErrInvalidDocument)
}

func TestParseRejectsMalformedTiming(t *testing.T) {
	t.Parallel()

	_, err := Parse("WEBVTT\n\n1\n00:00:00.000 -> 00:00:01.000\nhi\n")
	require.ErrorIs(t, err, ErrInvalidDocument)

	_, err = Parse("WEBVTT\n\n1\nnot a timing line\nhi\n")
	require.ErrorIs(t, err, ErrInvalidDocument)
}

package transcript

import (
	"testing"

	"github.com/livecap/livecap/internal/timeline"
	"github.com/stretchr/testify/require"
)

func TestFindChunkAtInsideInterval(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.Append(sessionChunks()...)

	chunk, ok := store.FindChunkAt(0.5)
	require.True(t, ok)
	require.Equal(t, "chunk-0", chunk.ID)

	chunk, ok = store.FindChunkAt(2.0)
	require.True(t, ok)
	require.Equal(t, "chunk-1", chunk.ID)
}

func TestFindChunkAtSharedBoundaryBelongsToLaterChunk(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.Append(sessionChunks()...)

	chunk, ok := store.FindChunkAt(1.2)
	require.True(t, ok)
	require.Equal(t, "chunk-1", chunk.ID)

	// The zero-duration chunk owns exactly its own boundary instant.
	chunk, ok = store.FindChunkAt(3.5)
	require.True(t, ok)
	require.Equal(t, "chunk-2", chunk.ID)
}

func TestFindChunkAtOutsideTimeline(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.Append(
		timeline.Chunk{ID: "chunk-0", Text: "a", Start: 0, End: 1},
		timeline.Chunk{ID: "chunk-1", Text: "b", Start: 1, End: 2},
	)

	_, ok := store.FindChunkAt(-0.1)
	require.False(t, ok)

	// The final chunk's own end belongs to nothing.
	_, ok = store.FindChunkAt(2.0)
	require.False(t, ok)

	_, ok = store.FindChunkAt(9.9)
	require.False(t, ok)
}

func TestFindChunkAtEmptyStore(t *testing.T) {
	t.Parallel()

	store := NewStore()
	_, ok := store.FindChunkAt(0)
	require.False(t, ok)
}

func TestStartTimeOf(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.Append(sessionChunks()...)

	start, ok := store.StartTimeOf("chunk-1")
	require.True(t, ok)
	require.InDelta(t, 1.2, start, 1e-9)

	_, ok = store.StartTimeOf("chunk-99")
	require.False(t, ok)
}

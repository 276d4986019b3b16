package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClockElapsedFromAnchor(t *testing.T) {
	t.Parallel()

	current := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := NewClockAt(func() time.Time { return current })

	clock.Start()
	require.Equal(t, 0.0, clock.Elapsed())

	current = current.Add(1200 * time.Millisecond)
	require.InDelta(t, 1.2, clock.Elapsed(), 1e-9)

	current = current.Add(2300 * time.Millisecond)
	require.InDelta(t, 3.5, clock.Elapsed(), 1e-9)
}

func TestClockRestartMovesAnchor(t *testing.T) {
	t.Parallel()

	current := time.Unix(1000, 0)
	clock := NewClockAt(func() time.Time { return current })

	clock.Start()
	current = current.Add(5 * time.Second)
	require.InDelta(t, 5.0, clock.Elapsed(), 1e-9)

	clock.Start()
	require.Equal(t, 0.0, clock.Elapsed())
}

func TestNewClockAtNilFallsBackToRealTime(t *testing.T) {
	t.Parallel()

	clock := NewClockAt(nil)
	clock.Start()
	require.GreaterOrEqual(t, clock.Elapsed(), 0.0)
}

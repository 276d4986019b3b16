package timeline

import "time"

// Clock anchors a recording session at time zero and reports every later
// instant as elapsed seconds since that anchor. Readings rely on Go's
// monotonic clock, so wall-clock adjustments never move the anchor.
type Clock struct {
	anchor time.Time
	now    func() time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// NewClockAt builds a clock with an injected time source.
func NewClockAt(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Start re-anchors the clock at the current instant. Elapsed readings taken
// before Start are meaningless; callers must start before they ask.
func (c *Clock) Start() {
	c.anchor = c.now()
}

// Elapsed returns seconds since the most recent Start.
func (c *Clock) Elapsed() float64 {
	return c.now().Sub(c.anchor).Seconds()
}

package realtime

import "time"

// Cadence is the state of a repeating timer: a period and the instant the
// current period began. It holds no goroutine; a loop asks NextWake when to
// come back and calls Advance when it wakes. Re-establishing the timer is a
// call to Start, after which no due time of the old schedule is honoured.
type Cadence struct {
	Period time.Duration
	Anchor time.Time
}

// Start (re)establishes the timer at now with the given period.
func (c *Cadence) Start(now time.Time, period time.Duration) {
	c.Period = period
	c.Anchor = now
}

// Active reports whether the timer has been started with a usable period.
func (c *Cadence) Active() bool {
	return !c.Anchor.IsZero() && c.Period > 0
}

// NextWake returns when the timer fires next. If not active, returns (zero, false).
func (c *Cadence) NextWake() (time.Time, bool) {
	if !c.Active() {
		return time.Time{}, false
	}
	return c.Anchor.Add(c.Period), true
}

// Advance reports whether the timer fired by now. A firing counts once even
// if several periods elapsed; the missed ones are dropped, like time.Ticker.
func (c *Cadence) Advance(now time.Time) bool {
	if !c.Active() {
		return false
	}
	elapsed := now.Sub(c.Anchor)
	if elapsed < c.Period {
		return false
	}
	c.Anchor = c.Anchor.Add(elapsed / c.Period * c.Period)
	return true
}

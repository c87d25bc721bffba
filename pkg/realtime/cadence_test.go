package realtime

import (
	"testing"
	"time"
)

func TestCadence_NotStarted(t *testing.T) {
	var c Cadence
	if _, ok := c.NextWake(); ok {
		t.Error("NextWake should return false when not started")
	}
	if c.Advance(time.Now().UTC()) {
		t.Error("Advance should not fire when not started")
	}
}

func TestCadence_FiresOncePerPeriod(t *testing.T) {
	now := time.Now().UTC()
	var c Cadence
	c.Start(now, 100*time.Millisecond)

	next, ok := c.NextWake()
	if !ok {
		t.Fatal("NextWake should return true when active")
	}
	if want := now.Add(100 * time.Millisecond); !next.Equal(want) {
		t.Errorf("next %v, want %v", next, want)
	}

	if c.Advance(now.Add(99 * time.Millisecond)) {
		t.Error("should not fire before the period elapses")
	}
	if !c.Advance(now.Add(100 * time.Millisecond)) {
		t.Error("should fire when the period elapses")
	}
	if c.Advance(now.Add(150 * time.Millisecond)) {
		t.Error("should not fire twice within one period")
	}
	if !c.Advance(now.Add(200 * time.Millisecond)) {
		t.Error("should fire at the second period")
	}
}

func TestCadence_DropsMissedPeriods(t *testing.T) {
	now := time.Now().UTC()
	var c Cadence
	c.Start(now, 10*time.Millisecond)

	if !c.Advance(now.Add(55 * time.Millisecond)) {
		t.Fatal("should fire after a long delay")
	}
	if want := now.Add(50 * time.Millisecond); !c.Anchor.Equal(want) {
		t.Errorf("Anchor %v, want %v", c.Anchor, want)
	}
	if c.Advance(now.Add(56 * time.Millisecond)) {
		t.Error("missed periods must not be replayed")
	}
}

func TestCadence_RestartReplacesSchedule(t *testing.T) {
	now := time.Now().UTC()
	var c Cadence
	c.Start(now, 500*time.Millisecond)

	restart := now.Add(400 * time.Millisecond)
	c.Start(restart, 10*time.Second)

	// The old schedule's due time passes without a firing.
	if c.Advance(now.Add(500 * time.Millisecond)) {
		t.Error("old schedule fired after replacement")
	}
	if c.Advance(restart.Add(10*time.Second - time.Millisecond)) {
		t.Error("new schedule should not fire early")
	}
	if !c.Advance(restart.Add(10 * time.Second)) {
		t.Error("new schedule should fire after its own period")
	}
}

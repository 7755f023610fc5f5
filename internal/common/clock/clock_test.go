package clock

import (
	"testing"
	"time"
)

func TestMockClock_AdvanceAndSince(t *testing.T) {
	start := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	c := NewMockClock(start)

	c.Advance(90 * time.Minute)

	if got := c.Now(); !got.Equal(start.Add(90 * time.Minute)) {
		t.Errorf("unexpected now %v", got)
	}
	if got := c.Since(start); got != 90*time.Minute {
		t.Errorf("expected 90m, got %v", got)
	}

	c.SetTime(start)
	if !c.Now().Equal(start) {
		t.Error("expected SetTime to reset the clock")
	}
}

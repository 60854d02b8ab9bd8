package core

import (
	"testing"
	"time"
)

func TestManualClockAdvance(t *testing.T) {
	c := NewManualClock(time.Second)

	if c.Now() != time.Second {
		t.Fatalf("Now() = %v, expected 1s", c.Now())
	}

	c.Advance(16 * time.Millisecond)
	if c.Now() != time.Second+16*time.Millisecond {
		t.Errorf("Now() = %v after Advance, expected 1.016s", c.Now())
	}

	c.Advance(-time.Second)
	if c.Now() != time.Second+16*time.Millisecond {
		t.Errorf("negative Advance should be ignored, got %v", c.Now())
	}
}

func TestMonotonicClockNeverGoesBack(t *testing.T) {
	c := NewMonotonicClock()
	prev := c.Now()
	for i := 0; i < 1000; i++ {
		now := c.Now()
		if now < prev {
			t.Fatalf("clock went backwards: %v < %v", now, prev)
		}
		prev = now
	}
}

package blink

import "testing"

func TestClockCountsDownAndExpires(t *testing.T) {
	fired := 0
	c := NewClock(3, func() { fired++ })
	c.Restart()

	for i := 0; i < 2; i++ {
		if c.Tick() {
			t.Fatalf("tick %d expired early", i+1)
		}
	}
	if c.Remaining() != 1 {
		t.Errorf("Remaining() = %d, expected 1", c.Remaining())
	}

	if !c.Tick() {
		t.Fatal("third tick should expire")
	}
	if fired != 1 {
		t.Errorf("onExpire fired %d times, expected 1", fired)
	}
	if c.Running() {
		t.Error("clock still running after expiry")
	}

	// Further ticks do nothing until restarted.
	if c.Tick() || fired != 1 {
		t.Error("stopped clock ticked")
	}
}

func TestClockSuspend(t *testing.T) {
	c := NewClock(5, nil)
	c.Restart()
	c.Tick()
	c.Suspend()

	for i := 0; i < 10; i++ {
		c.Tick()
	}
	if c.Remaining() != 4 {
		t.Errorf("Remaining() = %d, expected 4", c.Remaining())
	}

	c.Restart()
	if c.Remaining() != 5 || !c.Running() {
		t.Errorf("Restart() gave remaining %d running %v", c.Remaining(), c.Running())
	}
}

func TestClockDisabled(t *testing.T) {
	c := NewClock(0, func() { t.Error("disabled clock expired") })
	c.Restart()
	if c.Running() {
		t.Error("zero-limit clock should not run")
	}
	c.Tick()
}

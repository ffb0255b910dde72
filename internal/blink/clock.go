package blink

// Clock is the per-turn countdown, measured in simulated seconds.
// It holds no timer of its own: a scheduler calls Tick once per second and
// the clock fires onExpire when the count reaches zero.
type Clock struct {
	limit     int
	remaining int
	running   bool
	onExpire  func()
}

// NewClock creates a stopped clock. A limit of zero or less disables it.
func NewClock(limit int, onExpire func()) *Clock {
	if limit < 0 {
		limit = 0
	}
	return &Clock{
		limit:     limit,
		remaining: limit,
		onExpire:  onExpire,
	}
}

// Restart rewinds the countdown to the full limit and starts it.
func (c *Clock) Restart() {
	c.remaining = c.limit
	c.running = c.limit > 0
}

// Suspend stops the countdown without changing the remaining time.
func (c *Clock) Suspend() {
	c.running = false
}

// Running reports whether ticks currently count down.
func (c *Clock) Running() bool {
	return c.running
}

// Remaining returns the seconds left on the current turn.
func (c *Clock) Remaining() int {
	return c.remaining
}

// Limit returns the configured seconds per turn.
func (c *Clock) Limit() int {
	return c.limit
}

// Tick advances the clock by one second. It returns true when this tick
// expired the turn, after onExpire has run.
func (c *Clock) Tick() bool {
	if !c.running {
		return false
	}

	c.remaining--
	if c.remaining > 0 {
		return false
	}

	c.remaining = 0
	c.running = false
	if c.onExpire != nil {
		c.onExpire()
	}
	return true
}

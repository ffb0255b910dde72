package core

import "time"

// RuntimeConfig contains configuration passed to a screen at initialization.
// Screens use this to adapt to terminal size and for deterministic matches.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed; 0 means use current time
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0,
	}
}

// ResolvedSeed returns Seed, or a time-based seed when Seed is zero.
func (c RuntimeConfig) ResolvedSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// Fits reports whether the screen is at least w by h characters.
func (c RuntimeConfig) Fits(w, h int) bool {
	return c.ScreenW >= w && c.ScreenH >= h
}

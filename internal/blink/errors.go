package blink

import "errors"

// Advisory errors returned by engine operations. A rejected operation never
// changes the match state, so callers may ignore these safely.
var (
	ErrInvalidIndex   = errors.New("blink: cell index out of range")
	ErrCellOccupied   = errors.New("blink: cell is already occupied")
	ErrMatchDecided   = errors.New("blink: match is already decided")
	ErrNotYourTurn    = errors.New("blink: it's not your turn")
	ErrStaleIntent    = errors.New("blink: intent no longer applies")
	ErrNoEmptyCell    = errors.New("blink: no empty cell")
	ErrInvalidPalette = errors.New("blink: palette has duplicate symbols")
)

// ErrConfigurationIncomplete is the only fatal condition: a match cannot be
// created without a palette for both seats.
var ErrConfigurationIncomplete = errors.New("blink: both seats need a palette")

package model

import "errors"

var (
	ErrIllegalSelection   = errors.New("illegal selection")
	ErrIllegalDestination = errors.New("illegal destination")
	ErrGameOver           = errors.New("game over")
	ErrNothingHeld        = errors.New("no piece held")
	ErrInvalidMove        = errors.New("invalid move")
	ErrNotPlayable        = errors.New("cell not playable")
	ErrOccupied           = errors.New("cell occupied")
	ErrOutOfBounds        = errors.New("cell out of bounds")
)

// IsRejection reports whether err is a rejected player input that should be
// shown as a notice rather than treated as a fault.
func IsRejection(err error) bool {
	return errors.Is(err, ErrIllegalSelection) ||
		errors.Is(err, ErrIllegalDestination) ||
		errors.Is(err, ErrGameOver) ||
		errors.Is(err, ErrNothingHeld)
}

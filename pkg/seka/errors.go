package seka

import (
	"errors"
	"fmt"
)

// contract errors surfaced by the facade
var (
	// ErrNotPlayersTurn is returned when a player acts out of turn
	ErrNotPlayersTurn = errors.New("it is not your turn")

	// ErrInvalidPhase is returned when an operation is attempted in the wrong game phase
	ErrInvalidPhase = errors.New("the game is not in the right phase for that")

	// ErrInvalidAmount is returned for a non-positive or otherwise malformed amount
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrPlayerNotFound is returned when the player is not part of the game
	ErrPlayerNotFound = errors.New("player is not in this game")
)

// ValidationError is a rejection with a reason the caller can show the player.
// No state is mutated when a ValidationError is returned.
type ValidationError string

func (v ValidationError) Error() string {
	return string(v)
}

func newValidationError(format string, a ...interface{}) ValidationError {
	return ValidationError(fmt.Sprintf(format, a...))
}

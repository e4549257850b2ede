package ledger

import (
	"context"
	"errors"
)

// ErrInsufficientFunds is returned by Debit when the player cannot cover the amount
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrPlayerNotFound is returned when the ledger has no account for the player
var ErrPlayerNotFound = errors.New("player not found in ledger")

// Ledger tracks each player's spendable points. Amounts are non-negative
// integers in the platform's smallest unit. Implementations must make Debit
// and Credit atomic read-modify-write operations; the engine never locks the
// ledger itself.
type Ledger interface {
	// Balance returns the player's current balance
	Balance(ctx context.Context, playerID int64) (int, error)

	// Debit removes amount from the player's balance and returns the new
	// balance. Returns ErrInsufficientFunds without mutating anything if the
	// balance cannot cover the amount.
	Debit(ctx context.Context, playerID int64, amount int, reason string) (int, error)

	// Credit adds amount to the player's balance and returns the new balance
	Credit(ctx context.Context, playerID int64, amount int, reason string) (int, error)
}

package ledger

import (
	"context"
	"fmt"
	"sync"
)

// Entry is a single balance adjustment recorded by the in-memory ledger
type Entry struct {
	PlayerID int64
	Amount   int
	Reason   string
}

// Mem is an in-memory Ledger for tests and simulations
type Mem struct {
	mu       sync.Mutex
	balances map[int64]int
	entries  []Entry

	// FailCredits forces Credit to fail, for exercising payout reconciliation
	FailCredits bool
}

// NewMem returns an in-memory ledger seeded with the provided balances
func NewMem(balances map[int64]int) *Mem {
	b := make(map[int64]int, len(balances))
	for id, balance := range balances {
		b[id] = balance
	}

	return &Mem{balances: b}
}

// Balance returns the player's current balance
func (m *Mem) Balance(_ context.Context, playerID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	balance, ok := m.balances[playerID]
	if !ok {
		return 0, ErrPlayerNotFound
	}

	return balance, nil
}

// Debit removes amount from the player's balance
func (m *Mem) Debit(_ context.Context, playerID int64, amount int, reason string) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("cannot debit a negative amount: %d", amount)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	balance, ok := m.balances[playerID]
	if !ok {
		return 0, ErrPlayerNotFound
	}

	if balance < amount {
		return balance, ErrInsufficientFunds
	}

	m.balances[playerID] = balance - amount
	m.entries = append(m.entries, Entry{PlayerID: playerID, Amount: -amount, Reason: reason})
	return m.balances[playerID], nil
}

// Credit adds amount to the player's balance
func (m *Mem) Credit(_ context.Context, playerID int64, amount int, reason string) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("cannot credit a negative amount: %d", amount)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailCredits {
		return 0, fmt.Errorf("credit rejected for player %d", playerID)
	}

	balance, ok := m.balances[playerID]
	if !ok {
		return 0, ErrPlayerNotFound
	}

	m.balances[playerID] = balance + amount
	m.entries = append(m.entries, Entry{PlayerID: playerID, Amount: amount, Reason: reason})
	return m.balances[playerID], nil
}

// Entries returns a copy of the recorded adjustments
func (m *Mem) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := make([]Entry, len(m.entries))
	copy(entries, m.entries)
	return entries
}

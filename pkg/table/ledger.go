package table

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"seka-server/pkg/db"
	"seka-server/pkg/ledger"
)

// Ledger is a postgres-backed chip ledger scoped to a single table. It
// satisfies the engine's ledger contract: a debit checks and adjusts the
// balance in one statement, so concurrent debits cannot overdraw a seat.
type Ledger struct {
	tableUUID string
}

// NewLedger returns a ledger over the table's seats
func NewLedger(tableUUID string) *Ledger {
	return &Ledger{tableUUID: tableUUID}
}

// Balance returns the player's balance at the table
func (l *Ledger) Balance(ctx context.Context, playerID int64) (int, error) {
	pt, err := GetPlayerTable(ctx, l.tableUUID, playerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ledger.ErrPlayerNotFound
		}

		return 0, err
	}

	return pt.Balance, nil
}

// Debit removes amount from the player's balance
func (l *Ledger) Debit(ctx context.Context, playerID int64, amount int, reason string) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("cannot debit a negative amount: %d", amount)
	}

	return l.adjust(ctx, playerID, -amount, reason)
}

// Credit adds amount to the player's balance
func (l *Ledger) Credit(ctx context.Context, playerID int64, amount int, reason string) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("cannot credit a negative amount: %d", amount)
	}

	return l.adjust(ctx, playerID, amount, reason)
}

func (l *Ledger) adjust(ctx context.Context, playerID int64, byAmount int, reason string) (int, error) {
	tx, err := db.Instance().BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	const query = `
UPDATE players_tables
SET balance = balance + $1, updated = (NOW() AT TIME ZONE 'utc')
WHERE table_uuid = $2
  AND player_id = $3
  AND balance + $1 >= 0
RETURNING id, balance`

	var seatID int64
	var balance int
	row := tx.QueryRowContext(ctx, query, byAmount, l.tableUUID, playerID)
	if err := row.Scan(&seatID, &balance); err != nil {
		rollback(tx)
		if !errors.Is(err, sql.ErrNoRows) {
			return 0, err
		}

		// the update matched nothing: either the seat doesn't exist or the
		// balance can't cover the debit
		pt, err := GetPlayerTable(ctx, l.tableUUID, playerID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return 0, ledger.ErrPlayerNotFound
			}

			return 0, err
		}

		return pt.Balance, ledger.ErrInsufficientFunds
	}

	const logQuery = `
INSERT INTO balance_adjustments (players_tables_id, amount, reason)
VALUES ($1, $2, $3)`
	if _, err := tx.ExecContext(ctx, logQuery, seatID, byAmount, reason); err != nil {
		rollback(tx)
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return balance, nil
}

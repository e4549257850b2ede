package table

import (
	"context"
	"time"

	"github.com/lib/pq"
	"seka-server/pkg/db"
)

const playerTableColumns = `
players_tables.id,
players_tables.player_id,
players_tables.table_uuid,
players_tables.balance,
players_tables.active,
players_tables.created,
players_tables.updated`

// PlayerTable represents a seat at a table: one row in players_tables
type PlayerTable struct {
	ID        int64     `json:"id"`
	PlayerID  int64     `json:"playerId"`
	TableUUID string    `json:"tableUuid"`
	Balance   int       `json:"balance"`
	Active    bool      `json:"active"`
	Created   time.Time `json:"created"`
	Updated   time.Time `json:"updated"`
}

func getPlayerTableByRow(row db.Scanner) (*PlayerTable, error) {
	var pt PlayerTable
	if err := row.Scan(&pt.ID, &pt.PlayerID, &pt.TableUUID, &pt.Balance, &pt.Active,
		&pt.Created, &pt.Updated); err != nil {
		return nil, err
	}

	return &pt, nil
}

// GetPlayerTable returns the seat for the player at the table
func GetPlayerTable(ctx context.Context, tableUUID string, playerID int64) (*PlayerTable, error) {
	const query = `
SELECT ` + playerTableColumns + `
FROM players_tables
WHERE players_tables.table_uuid = $1
  AND players_tables.player_id = $2`

	row := db.Instance().QueryRowContext(ctx, query, tableUUID, playerID)
	return getPlayerTableByRow(row)
}

// AdjustBalance will adjust the balance of the player at the table and
// record the adjustment with the reason
func (p *PlayerTable) AdjustBalance(ctx context.Context, byAmount int, reason string, game *Game) error {
	const query = `SELECT adjust_balance($1, $2, $3, $4)`
	var gameID *int64
	if game != nil {
		gameID = &game.ID
	}

	_, err := db.Instance().ExecContext(ctx, query, p.ID, byAmount, gameID, reason)
	if err != nil {
		return err
	}

	p.Balance += byAmount

	return nil
}

// SetActive sets the active state for the seat in the database
func (p *PlayerTable) SetActive(ctx context.Context, active bool) error {
	const query = `
UPDATE players_tables
SET active = $1, updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $2`
	execContext, err := db.Instance().ExecContext(ctx, query, active, p.ID)
	if err != nil {
		return err
	}

	if ra, _ := execContext.RowsAffected(); ra > 0 {
		p.Active = active
	}

	return nil
}

func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}

	return false
}

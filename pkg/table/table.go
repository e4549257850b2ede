package table

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"seka-server/pkg/db"
)

const tableColumns = `
tables.uuid,
tables.name,
tables.owner_id,
tables.created`

// Table seats players and tracks their chip balances
// A table has many players and can have many games
type Table struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
	// OwnerID is who created the table
	OwnerID int64     `json:"ownerId"`
	Created time.Time `json:"created"`
}

// CreateTable creates a new table and seats the owner with the buy-in
func CreateTable(ctx context.Context, ownerID int64, name string, buyIn int) (*Table, error) {
	tx, err := db.Instance().BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	u := uuid.New().String()
	const query = `
INSERT INTO tables (uuid, name, owner_id)
VALUES ($1, $2, $3)
RETURNING created
`
	var created time.Time
	row := tx.QueryRowContext(ctx, query, u, name, ownerID)
	if err := row.Scan(&created); err != nil {
		rollback(tx)
		return nil, err
	}

	const query2 = `
INSERT INTO players_tables (player_id, table_uuid, balance)
VALUES ($1, $2, $3)`
	if _, err = tx.ExecContext(ctx, query2, ownerID, u, buyIn); err != nil {
		rollback(tx)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &Table{
		UUID:    u,
		Name:    name,
		OwnerID: ownerID,
		Created: created,
	}, nil
}

func getTableByRow(row db.Scanner) (*Table, error) {
	var t Table
	if err := row.Scan(&t.UUID, &t.Name, &t.OwnerID, &t.Created); err != nil {
		return nil, err
	}

	return &t, nil
}

// GetTableByUUID returns a table by its UUID
func GetTableByUUID(ctx context.Context, uuid string) (*Table, error) {
	const query = `
SELECT ` + tableColumns + `
FROM tables
WHERE uuid = $1`

	row := db.Instance().QueryRowContext(ctx, query, uuid)
	return getTableByRow(row)
}

// Reload will refresh the data from the database
func (t *Table) Reload(ctx context.Context) error {
	tbl, err := GetTableByUUID(ctx, t.UUID)
	if err != nil {
		return err
	}

	*t = *tbl
	return nil
}

// Join seats a player at the table with the buy-in as their starting balance
func (t *Table) Join(ctx context.Context, playerID int64, buyIn int) (*PlayerTable, error) {
	const query = `
INSERT INTO players_tables (player_id, table_uuid, balance)
VALUES ($1, $2, $3)
RETURNING ` + playerTableColumns

	row := db.Instance().QueryRowContext(ctx, query, playerID, t.UUID, buyIn)
	pt, err := getPlayerTableByRow(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, UserError("player is already at the table")
		}

		return nil, err
	}

	return pt, nil
}

// GetPlayers returns all players at the table in seating order
func (t *Table) GetPlayers(ctx context.Context) ([]*PlayerTable, error) {
	const query = `
SELECT ` + playerTableColumns + `
FROM players_tables
WHERE players_tables.table_uuid = $1
ORDER BY players_tables.id`

	rows, err := db.Instance().QueryContext(ctx, query, t.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*PlayerTable, 0)
	for rows.Next() {
		p, err := getPlayerTableByRow(rows)
		if err != nil {
			return nil, err
		}

		records = append(records, p)
	}

	return records, nil
}

// GetActivePlayerIDs returns the IDs of the active players in seating order
func (t *Table) GetActivePlayerIDs(ctx context.Context) ([]int64, error) {
	players, err := t.GetPlayers(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(players))
	for _, p := range players {
		if p.Active {
			ids = append(ids, p.PlayerID)
		}
	}

	return ids, nil
}

// CreateGame will create a new game record for the table
func (t *Table) CreateGame(ctx context.Context, gameUUID string) (*Game, error) {
	const query = `
INSERT INTO games (table_uuid, game_uuid)
VALUES ($1, $2)
RETURNING ` + gamesColumns

	row := db.Instance().QueryRowContext(ctx, query, t.UUID, gameUUID)
	return gameByRow(row)
}

// GetGamesCount returns the number of games played at the table
func (t *Table) GetGamesCount(ctx context.Context) (int64, error) {
	const query = `
SELECT COUNT(id)
FROM games
WHERE table_uuid = $1`

	var count int64
	if err := db.Instance().QueryRowContext(ctx, query, t.UUID).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		logrus.WithError(err).Error("could not rollback transaction")
	}
}

package table

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"seka-server/pkg/db"
)

// Game is a record in the games table holding the snapshot of one hand
type Game struct {
	ID        int64
	TableUUID string
	// GameUUID is the engine's identifier for the hand
	GameUUID string
	data     json.RawMessage
	Created  time.Time
	Ended    time.Time
}

const gamesColumns = `id, table_uuid, game_uuid, data, created, ended`

// GameByID returns a game record by its ID
func GameByID(ctx context.Context, id int64) (*Game, error) {
	const query = `
SELECT ` + gamesColumns + `
FROM games
WHERE id = $1`
	row := db.Instance().QueryRowContext(ctx, query, id)
	return gameByRow(row)
}

func gameByRow(row *sql.Row) (*Game, error) {
	var g Game
	var data []byte
	var ended sql.NullTime

	if err := row.Scan(&g.ID, &g.TableUUID, &g.GameUUID, &data, &g.Created, &ended); err != nil {
		return nil, err
	}

	g.data = data
	g.Ended = ended.Time

	return &g, nil
}

// SaveState replaces the stored snapshot for an in-progress hand
func (g *Game) SaveState(ctx context.Context, state interface{}) error {
	b, err := json.Marshal(state)
	if err != nil {
		return err
	}

	const query = `
UPDATE games
SET data = $1
WHERE id = $2`
	if _, err := db.Instance().ExecContext(ctx, query, b, g.ID); err != nil {
		return err
	}

	g.data = b
	return nil
}

// LoadState unmarshals the stored snapshot into out
func (g *Game) LoadState(out interface{}) error {
	if g.data == nil {
		return sql.ErrNoRows
	}

	return json.Unmarshal(g.data, out)
}

// EndGame stores the final snapshot and marks the hand as ended
func (g *Game) EndGame(ctx context.Context, state interface{}) error {
	b, err := json.Marshal(state)
	if err != nil {
		return err
	}

	const query = `
UPDATE games
SET data = $1, ended = NOW() AT TIME ZONE 'utc'
WHERE id = $2
RETURNING ended`

	row := db.Instance().QueryRowContext(ctx, query, b, g.ID)
	var ended time.Time
	if err := row.Scan(&ended); err != nil {
		return err
	}

	g.data = b
	g.Ended = ended
	return nil
}

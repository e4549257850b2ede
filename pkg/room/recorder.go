package room

import (
	"context"
	"fmt"

	"seka-server/pkg/seka"
	"seka-server/pkg/table"
)

// TableRecorder persists hand snapshots into the table's games records
type TableRecorder struct {
	tbl  *table.Table
	game *table.Game
}

// NewTableRecorder returns a recorder writing to the table's game history
func NewTableRecorder(tbl *table.Table) *TableRecorder {
	return &TableRecorder{tbl: tbl}
}

// HandStarted creates the games record and stores the opening snapshot
func (r *TableRecorder) HandStarted(ctx context.Context, state *seka.GameState) error {
	game, err := r.tbl.CreateGame(ctx, state.UUID)
	if err != nil {
		return err
	}

	r.game = game
	return game.SaveState(ctx, state)
}

// HandUpdated replaces the stored snapshot
func (r *TableRecorder) HandUpdated(ctx context.Context, state *seka.GameState) error {
	if r.game == nil {
		return fmt.Errorf("no games record for game %s", state.UUID)
	}

	return r.game.SaveState(ctx, state)
}

// HandFinished stores the final snapshot and closes the games record
func (r *TableRecorder) HandFinished(ctx context.Context, state *seka.GameState) error {
	if r.game == nil {
		return fmt.Errorf("no games record for game %s", state.UUID)
	}

	game := r.game
	r.game = nil
	return game.EndGame(ctx, state)
}

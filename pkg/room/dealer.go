package room

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"seka-server/pkg/seka"
	"seka-server/pkg/seka/action"
)

// Recorder persists hand snapshots. Recording is best-effort: a failed write
// is logged and never rolls back the hand.
type Recorder interface {
	HandStarted(ctx context.Context, state *seka.GameState) error
	HandUpdated(ctx context.Context, state *seka.GameState) error
	HandFinished(ctx context.Context, state *seka.GameState) error
}

// NopRecorder discards all snapshots
type NopRecorder struct{}

// HandStarted does nothing
func (NopRecorder) HandStarted(context.Context, *seka.GameState) error { return nil }

// HandUpdated does nothing
func (NopRecorder) HandUpdated(context.Context, *seka.GameState) error { return nil }

// HandFinished does nothing
func (NopRecorder) HandFinished(context.Context, *seka.GameState) error { return nil }

// Dealer runs hands for a fixed set of seated players and persists the
// state after every action
type Dealer struct {
	logger   logrus.FieldLogger
	engine   *seka.Engine
	recorder Recorder

	mu        sync.Mutex
	playerIDs []int64
	ante      int
	game      *seka.Game
}

// NewDealer creates a dealer for the seated players
func NewDealer(logger logrus.FieldLogger, engine *seka.Engine, recorder Recorder, playerIDs []int64, ante int) *Dealer {
	return &Dealer{
		logger:    logger,
		engine:    engine,
		recorder:  recorder,
		playerIDs: playerIDs,
		ante:      ante,
	}
}

// StartHand deals the next hand. The first call seats a fresh game; later
// calls rotate the dealer button and re-ante the same players.
func (d *Dealer) StartHand(ctx context.Context) (*seka.GameState, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.game == nil {
		g, err := seka.NewGame(d.playerIDs)
		if err != nil {
			return nil, err
		}

		d.game = g
	}

	if err := d.engine.Initialize(ctx, d.game, d.ante); err != nil {
		return nil, err
	}

	state := d.engine.State(d.game)
	if err := d.recorder.HandStarted(ctx, state); err != nil {
		d.logger.WithError(err).WithField("game", state.UUID).Error("could not record hand start")
	}

	return state, nil
}

// Action applies one player action and returns the acting player's view of
// the game
func (d *Dealer) Action(ctx context.Context, playerID int64, act action.Action, amount int) (*seka.GameState, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.game == nil {
		return nil, seka.ErrInvalidPhase
	}

	if err := d.engine.ApplyAction(ctx, d.game, playerID, act, amount); err != nil {
		return nil, err
	}

	d.record(ctx)
	return d.engine.PlayerState(d.game, playerID)
}

func (d *Dealer) record(ctx context.Context) {
	state := d.engine.State(d.game)

	var err error
	if state.Phase == seka.PhaseCompleted {
		err = d.recorder.HandFinished(ctx, state)
	} else {
		err = d.recorder.HandUpdated(ctx, state)
	}

	if err != nil {
		d.logger.WithError(err).WithField("game", state.UUID).Error("could not record hand state")
	}
}

// State returns the player's view of the current hand
func (d *Dealer) State(playerID int64) (*seka.GameState, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.game == nil {
		return nil, seka.ErrInvalidPhase
	}

	return d.engine.PlayerState(d.game, playerID)
}

// AdminState returns the unsanitized view of the current hand
func (d *Dealer) AdminState() *seka.GameState {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.game == nil {
		return nil
	}

	return d.engine.State(d.game)
}

// LegalActions returns the actions the player may currently take
func (d *Dealer) LegalActions(playerID int64) []action.Action {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.game == nil {
		return nil
	}

	return d.engine.LegalActions(d.game, playerID)
}

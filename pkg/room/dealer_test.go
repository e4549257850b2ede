package room

import (
	"context"
	"io/ioutil"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"seka-server/internal/rng"
	"seka-server/pkg/ledger"
	"seka-server/pkg/seka"
	"seka-server/pkg/seka/action"
)

type memRecorder struct {
	started  int
	updated  int
	finished int
	last     *seka.GameState
}

func (r *memRecorder) HandStarted(_ context.Context, state *seka.GameState) error {
	r.started++
	r.last = state
	return nil
}

func (r *memRecorder) HandUpdated(_ context.Context, state *seka.GameState) error {
	r.updated++
	r.last = state
	return nil
}

func (r *memRecorder) HandFinished(_ context.Context, state *seka.GameState) error {
	r.finished++
	r.last = state
	return nil
}

func testDealer(balances map[int64]int, playerIDs []int64, ante int) (*Dealer, *memRecorder) {
	logger := logrus.New()
	logger.SetOutput(ioutil.Discard)

	opts := seka.DefaultOptions()
	opts.ShuffleSource = rng.Seeded(1)
	engine := seka.New(logger, ledger.NewMem(balances), opts)

	recorder := &memRecorder{}
	return NewDealer(logger, engine, recorder, playerIDs, ante), recorder
}

func TestDealer_runsAHand(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()

	d, recorder := testDealer(map[int64]int{1: 1000, 2: 1000}, []int64{1, 2}, 100)

	_, err := d.State(1)
	a.Equal(seka.ErrInvalidPhase, err)

	state, err := d.StartHand(ctx)
	a.NoError(err)
	a.Equal(seka.PhaseBetting, state.Phase)
	a.Equal(200, state.Pot)
	a.Equal(1, recorder.started)

	a.Equal([]action.Action{action.Watch}, d.LegalActions(1))

	state, err = d.Action(ctx, 2, action.Bet, 50)
	a.NoError(err)
	a.Equal(250, state.Pot)

	// the actor hasn't looked at their cards, so their own view hides them
	a.Nil(state.Players[1].Cards)

	_, err = d.Action(ctx, 2, action.Check, 0)
	a.Equal(seka.ErrNotPlayersTurn, err)

	_, err = d.Action(ctx, 1, action.Call, 0)
	a.NoError(err)
	_, err = d.Action(ctx, 2, action.Check, 0)
	a.NoError(err)
	state, err = d.Action(ctx, 1, action.Check, 0)
	a.NoError(err)

	a.Equal(seka.PhaseCompleted, state.Phase)
	a.Equal(1, recorder.finished)
	a.Equal(seka.PhaseCompleted, recorder.last.Phase)
	a.NotEmpty(recorder.last.WinnerIDs)

	// completed hands are revealed in every view
	for _, ps := range state.Players {
		a.Equal(3, len(ps.Cards))
	}

	// the next hand reuses the seats and rotates the button
	state, err = d.StartHand(ctx)
	a.NoError(err)
	a.Equal(seka.PhaseBetting, state.Phase)
	a.Equal(1, state.DealerIndex)
	a.Equal(2, recorder.started)
}

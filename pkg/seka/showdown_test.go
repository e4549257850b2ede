package seka

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"seka-server/pkg/seka/action"
	"seka-server/pkg/seka/handanalyzer"
)

func TestShowdown_headsUpEndToEnd(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()

	e, mem := testEngine(map[int64]int{1: 1000, 2: 1000})

	var turns, roundsEnded, showdowns, completions int
	e.Events = Events{
		TurnChanged:   func(*Game, int64) { turns++ },
		RoundEnded:    func(*Game, int) { roundsEnded++ },
		Showdown:      func(*Game) { showdowns++ },
		GameCompleted: func(*Game) { completions++ },
	}

	g, err := NewGame([]int64{1, 2})
	a.NoError(err)
	a.NoError(e.Initialize(ctx, g, 100))
	a.Equal(200, g.Pot)

	setHand(t, g, 1, "14s,14h,9c") // two aces
	setHand(t, g, 2, "10c,9d,8s")  // ten high

	// player 2 acts first off the dealer
	a.Equal(int64(2), g.CurrentPlayerID)
	a.NoError(e.ApplyAction(ctx, g, 2, action.Bet, 50))
	a.Equal(250, g.Pot)
	a.NoError(e.ApplyAction(ctx, g, 1, action.Call, 0))
	a.Equal(300, g.Pot)

	// round two: nobody opens, so the hand shows down
	a.Equal(2, g.Round)
	a.Equal(0, g.CurrentBet)
	a.NoError(e.ApplyAction(ctx, g, 2, action.Check, 0))
	a.NoError(e.ApplyAction(ctx, g, 1, action.Check, 0))

	a.Equal(PhaseCompleted, g.Phase)
	a.Equal([]int64{1}, g.WinnerIDs)
	a.False(g.FinishedAt.IsZero())

	p1 := g.Player(1)
	a.True(p1.IsWinner)
	a.Equal(handanalyzer.TwoAcesScore, p1.HandScore)
	a.Equal(285, p1.Winnings)
	a.False(g.Player(2).IsWinner)

	balance, err := mem.Balance(ctx, 1)
	a.NoError(err)
	a.Equal(1135, balance)

	balance, err = mem.Balance(ctx, 2)
	a.NoError(err)
	a.Equal(850, balance)

	a.Equal(2, roundsEnded)
	a.Equal(1, showdowns)
	a.Equal(1, completions)
	a.True(turns >= 4)
}

func TestShowdown_svaraSplitsThePot(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()

	e, mem := testEngine(map[int64]int{1: 1000, 2: 1000})
	g, err := NewGame([]int64{1, 2})
	a.NoError(err)
	a.NoError(e.Initialize(ctx, g, 100))

	setHand(t, g, 1, "14s,14h,6c")
	setHand(t, g, 2, "14d,14c,9s")

	a.NoError(e.ApplyAction(ctx, g, 2, action.Bet, 50))
	a.NoError(e.ApplyAction(ctx, g, 1, action.Call, 0))
	a.NoError(e.ApplyAction(ctx, g, 2, action.Check, 0))
	a.NoError(e.ApplyAction(ctx, g, 1, action.Check, 0))

	a.Equal(PhaseCompleted, g.Phase)
	a.Equal([]int64{1, 2}, g.WinnerIDs)

	// 300 in the pot, 285 payable, 142 each, 16 stays with the house
	for _, id := range []int64{1, 2} {
		p := g.Player(id)
		a.True(p.IsWinner)
		a.Equal(142, p.Winnings)

		balance, err := mem.Balance(ctx, id)
		a.NoError(err)
		a.Equal(992, balance)
	}
}

func TestShowdown_sidePots(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()

	// player 3 can only cover the ante plus 40
	e, mem := testEngine(map[int64]int{1: 1000, 2: 1000, 3: 80})
	g, err := NewGame([]int64{1, 2, 3})
	a.NoError(err)
	a.NoError(e.Initialize(ctx, g, 40))
	a.Equal(120, g.Pot)

	setHand(t, g, 1, "13s,13h,13c") // three kings
	setHand(t, g, 2, "9c,8d,6s")
	setHand(t, g, 3, "14s,14h,14d") // three aces

	a.NoError(e.ApplyAction(ctx, g, 2, action.Bet, 100))
	a.NoError(e.ApplyAction(ctx, g, 3, action.Call, 0))

	p3 := g.Player(3)
	a.Equal(StatusAllIn, p3.Status)
	a.Equal(80, p3.TotalBet)

	a.NoError(e.ApplyAction(ctx, g, 1, action.Call, 0))
	a.Equal(2, g.Round)
	a.NoError(e.ApplyAction(ctx, g, 2, action.Check, 0))
	a.NoError(e.ApplyAction(ctx, g, 1, action.Check, 0))

	a.Equal(PhaseCompleted, g.Phase)
	a.Equal([]int64{3}, g.WinnerIDs)

	// main pot 80×3=240 goes to player 3; side pot 60×2=120 goes to the
	// better of the two covering players
	a.True(p3.IsWinner)
	a.Equal(228, p3.Winnings)

	p1 := g.Player(1)
	a.True(p1.IsWinner)
	a.Equal(114, p1.Winnings)
	a.False(g.Player(2).IsWinner)

	balance, err := mem.Balance(ctx, 3)
	a.NoError(err)
	a.Equal(228, balance)

	balance, err = mem.Balance(ctx, 1)
	a.NoError(err)
	a.Equal(974, balance)

	balance, err = mem.Balance(ctx, 2)
	a.NoError(err)
	a.Equal(860, balance)
}

func TestShowdown_creditFailureIsRecorded(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()

	e, mem := testEngine(map[int64]int{1: 1000, 2: 1000})
	g, err := NewGame([]int64{1, 2})
	a.NoError(err)
	a.NoError(e.Initialize(ctx, g, 100))

	mem.FailCredits = true

	a.NoError(e.ApplyAction(ctx, g, 2, action.Bet, 50))
	a.NoError(e.ApplyAction(ctx, g, 1, action.Fold, 0))

	// the hand still completes; the payout is queued for reconciliation
	a.Equal(PhaseCompleted, g.Phase)
	a.Equal([]int64{2}, g.WinnerIDs)
	a.Equal(1, len(g.FailedCredits))
	a.Equal(int64(2), g.FailedCredits[0].PlayerID)
	a.Equal(237, g.FailedCredits[0].Amount)

	p2 := g.Player(2)
	a.True(p2.IsWinner)
	a.Equal(237, p2.Winnings)

	balance, err := mem.Balance(ctx, 2)
	a.NoError(err)
	a.Equal(850, balance)
}

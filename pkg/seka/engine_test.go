package seka

import (
	"context"
	"io/ioutil"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"seka-server/internal/rng"
	"seka-server/pkg/deck"
	"seka-server/pkg/ledger"
	"seka-server/pkg/seka/handanalyzer"
)

func testLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(ioutil.Discard)
	return logger
}

func testEngine(balances map[int64]int) (*Engine, *ledger.Mem) {
	mem := ledger.NewMem(balances)
	opts := DefaultOptions()
	opts.ShuffleSource = rng.Seeded(1)
	return New(testLogger(), mem, opts), mem
}

// setHand replaces a player's dealt hand and refreshes the cached score
func setHand(t *testing.T, g *Game, playerID int64, cards string) {
	t.Helper()

	p := g.Player(playerID)
	if p == nil {
		t.Fatalf("player %d not in game", playerID)
	}

	p.Hand = deck.CardsFromString(cards)
	hv, err := handanalyzer.Analyze(p.Hand)
	if err != nil {
		t.Fatal(err)
	}

	p.HandScore = hv.Score
	p.HandDescription = hv.Description
}

func TestNewGame(t *testing.T) {
	a := assert.New(t)

	g, err := NewGame([]int64{1, 2, 3})
	a.NoError(err)
	a.Equal(PhaseWaiting, g.Phase)
	a.Equal(3, len(g.Players))
	a.NotEmpty(g.UUID)

	_, err = NewGame([]int64{1})
	a.EqualError(err, "a game needs at least two players")

	_, err = NewGame([]int64{1, 1})
	a.EqualError(err, "duplicate player id")
}

func TestEngine_Initialize(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()

	e, mem := testEngine(map[int64]int{1: 1000, 2: 1000, 3: 1000})
	g, _ := NewGame([]int64{1, 2, 3})

	a.NoError(e.Initialize(ctx, g, 100))

	a.Equal(PhaseBetting, g.Phase)
	a.Equal(1, g.Round)
	a.Equal(300, g.Pot)
	a.Equal(0, g.CurrentBet)
	a.True(g.BlindsPosted)
	a.Equal(100, g.Ante)

	// dealer at seat 0: small blind seat 1, big blind seat 2, first to act seat 1
	a.Equal(1, g.SmallBlindIndex)
	a.Equal(2, g.BigBlindIndex)
	a.Equal(int64(2), g.CurrentPlayerID)

	for _, p := range g.Players {
		a.Equal(3, len(p.Hand))
		a.Equal(100, p.TotalBet)
		a.Equal(0, p.CurrentBet)
		a.Positive(p.HandScore)
		a.NotEmpty(p.HandDescription)

		balance, _ := mem.Balance(ctx, p.PlayerID)
		a.Equal(900, balance)
	}

	// no card appears in two hands
	seen := make(map[string]bool)
	for _, p := range g.Players {
		for _, card := range p.Hand {
			a.False(seen[card.String()])
			seen[card.String()] = true
		}
	}

	// cannot initialize a hand already in progress
	a.Equal(ErrInvalidPhase, e.Initialize(ctx, g, 100))
}

func TestEngine_Initialize_headsUpBlinds(t *testing.T) {
	a := assert.New(t)

	e, _ := testEngine(map[int64]int{1: 500, 2: 500})
	g, _ := NewGame([]int64{1, 2})

	a.NoError(e.Initialize(context.Background(), g, 50))

	// heads-up, the dealer is also the small blind
	a.Equal(g.DealerIndex, g.SmallBlindIndex)
	a.Equal((g.DealerIndex+1)%2, g.BigBlindIndex)
}

func TestEngine_Initialize_invalidAnte(t *testing.T) {
	a := assert.New(t)

	e, _ := testEngine(map[int64]int{1: 500, 2: 500})
	g, _ := NewGame([]int64{1, 2})

	a.Equal(ErrInvalidAmount, e.Initialize(context.Background(), g, 0))
	a.Equal(ErrInvalidAmount, e.Initialize(context.Background(), g, -5))
}

func TestEngine_Initialize_insufficientAnte(t *testing.T) {
	a := assert.New(t)

	e, mem := testEngine(map[int64]int{1: 500, 2: 40})
	g, _ := NewGame([]int64{1, 2})

	err := e.Initialize(context.Background(), g, 100)
	a.Error(err)
	a.ErrorIs(err, ledger.ErrInsufficientFunds)

	// the ante already collected from the first seat is refunded
	balance, err := mem.Balance(context.Background(), 1)
	a.NoError(err)
	a.Equal(500, balance)
	a.Equal(0, g.Pot)
	a.Equal(0, g.Player(1).TotalBet)
}

func TestEngine_dealerRotation(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()

	e, _ := testEngine(map[int64]int{1: 10000, 2: 10000, 3: 10000})
	g, _ := NewGame([]int64{1, 2, 3})

	a.NoError(e.Initialize(ctx, g, 100))
	a.Equal(0, g.DealerIndex)

	// fold the hand down to one player to complete it
	a.NoError(e.ApplyAction(ctx, g, 2, "fold", 0))
	a.NoError(e.ApplyAction(ctx, g, 3, "fold", 0))
	a.Equal(PhaseCompleted, g.Phase)

	// the next hand rotates the dealer clockwise and resets per-hand state
	a.NoError(e.Initialize(ctx, g, 100))
	a.Equal(1, g.DealerIndex)
	a.Equal(PhaseBetting, g.Phase)
	a.Equal(300, g.Pot)
	a.Empty(g.WinnerIDs)
	a.Empty(g.History)
	for _, p := range g.Players {
		a.Equal(StatusActive, p.Status)
		a.False(p.IsWinner)
	}
}

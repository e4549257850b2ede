package seka

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"seka-server/internal/rng"
	"seka-server/pkg/deck"
	"seka-server/pkg/ledger"
	"seka-server/pkg/seka/handanalyzer"
)

// Options configures how Seka is played
type Options struct {
	// PlatformFeePercent is the cut of each pot the house keeps at payout
	PlatformFeePercent int

	// MaxBettingRounds is the hard cap on betting rounds per hand
	MaxBettingRounds int

	// ShuffleSource overrides the random source used for shuffling
	// Leave nil to use a cryptographically strong source
	ShuffleSource rng.Generator
}

// DefaultOptions returns the default options for Seka
func DefaultOptions() Options {
	return Options{
		PlatformFeePercent: 5,
		MaxBettingRounds:   3,
	}
}

// Events are callback hooks the engine invokes on phase changes. The actual
// fan-out to clients is entirely external. Any hook may be nil.
type Events struct {
	TurnChanged   func(g *Game, playerID int64)
	RoundEnded    func(g *Game, round int)
	Showdown      func(g *Game)
	GameCompleted func(g *Game)
}

// Engine is the coordination entry point for Seka games. It owns no game
// state itself; callers pass the game aggregate into every operation and
// must serialize calls per game.
type Engine struct {
	logger logrus.FieldLogger
	ledger ledger.Ledger
	opts   Options

	// Events may be set before the first call into the engine
	Events Events
}

// New returns a new Seka engine
func New(logger logrus.FieldLogger, lgr ledger.Ledger, opts Options) *Engine {
	if opts.PlatformFeePercent < 0 || opts.PlatformFeePercent > 100 {
		panic(fmt.Sprintf("bad platform fee percent: %d", opts.PlatformFeePercent))
	}

	if opts.MaxBettingRounds <= 0 {
		opts.MaxBettingRounds = DefaultOptions().MaxBettingRounds
	}

	return &Engine{
		logger: logger,
		ledger: lgr,
		opts:   opts,
	}
}

// Initialize starts a new hand: collects the ante from every seat, deals
// three cards each, caches hand scores, and opens betting round 1. On a
// completed game it first rotates the dealer and resets per-hand state.
func (e *Engine) Initialize(ctx context.Context, g *Game, ante int) error {
	if g.Phase == PhaseCompleted {
		e.rotateForNextHand(g)
	}

	if g.Phase != PhaseWaiting {
		return ErrInvalidPhase
	}

	if ante <= 0 {
		return ErrInvalidAmount
	}

	g.Ante = ante
	e.assignBlindSeats(g)

	// every seat contributes the full entry fee into the opening pot
	reason := fmt.Sprintf("seka ante, game %s", g.UUID)
	for i, p := range g.Players {
		if _, err := e.ledger.Debit(ctx, p.PlayerID, ante, reason); err != nil {
			e.refundAntes(ctx, g, i, ante)
			return fmt.Errorf("could not collect ante from player %d: %w", p.PlayerID, err)
		}

		p.TotalBet += ante
		g.Pot += ante
	}
	g.BlindsPosted = true

	g.Phase = PhaseDealing
	if err := e.deal(g); err != nil {
		return err
	}

	g.Phase = PhaseBetting
	g.Round = 1
	g.CurrentBet = 0

	seat := g.nextActiveSeat(g.DealerIndex + 1)
	if seat < 0 {
		return fmt.Errorf("no active players after dealing")
	}

	g.CurrentPlayerID = g.Players[seat].PlayerID
	e.fireTurnChanged(g)
	return nil
}

// refundAntes returns the antes already collected from the first count seats
// after a later seat's debit failed
func (e *Engine) refundAntes(ctx context.Context, g *Game, count, ante int) {
	reason := fmt.Sprintf("seka ante refund, game %s", g.UUID)
	for _, p := range g.Players[:count] {
		if _, err := e.ledger.Credit(ctx, p.PlayerID, ante, reason); err != nil {
			e.logger.WithError(err).WithFields(logrus.Fields{
				"game":   g.UUID,
				"player": p.PlayerID,
			}).Error("could not refund ante")
			continue
		}

		p.TotalBet -= ante
		g.Pot -= ante
	}
}

func (e *Engine) deal(g *Game) error {
	d := deck.New()
	if e.opts.ShuffleSource != nil {
		d = d.Shuffle(e.opts.ShuffleSource)
	} else {
		d = d.SecureShuffle()
	}

	hands, _, err := d.DealHands(len(g.Players), handanalyzer.HandSize)
	if err != nil {
		return err
	}

	for i, p := range g.Players {
		p.Hand = hands[i]

		hv, err := handanalyzer.Analyze(p.Hand)
		if err != nil {
			// a misdealt hand is a defect, not a playable state
			e.logger.WithError(err).WithField("player", p.PlayerID).Error("dealt an invalid hand")
			return err
		}

		p.HandScore = hv.Score
		p.HandDescription = hv.Description
	}

	return nil
}

// assignBlindSeats records the blind positions for the hand. Seka uses an
// ante-equals-pot-share model, so the seats are informational. Heads-up, the
// dealer is also the small blind.
func (e *Engine) assignBlindSeats(g *Game) {
	n := len(g.Players)
	if n == 2 {
		g.SmallBlindIndex = g.DealerIndex
		g.BigBlindIndex = (g.DealerIndex + 1) % n
		return
	}

	g.SmallBlindIndex = (g.DealerIndex + 1) % n
	g.BigBlindIndex = (g.DealerIndex + 2) % n
}

// rotateForNextHand advances the dealer clockwise and resets per-hand state,
// keeping the same seats
func (e *Engine) rotateForNextHand(g *Game) {
	g.DealerIndex = (g.DealerIndex + 1) % len(g.Players)

	players := make([]*Player, len(g.Players))
	for i, p := range g.Players {
		players[i] = newPlayer(p.PlayerID)
	}

	g.Players = players
	g.Phase = PhaseWaiting
	g.Round = 0
	g.CurrentPlayerID = 0
	g.Pot = 0
	g.CurrentBet = 0
	g.Ante = 0
	g.BlindsPosted = false
	g.History = nil
	g.WinnerIDs = nil
	g.FailedCredits = nil
	g.FinishedAt = time.Time{}
}

func (e *Engine) fireTurnChanged(g *Game) {
	if e.Events.TurnChanged != nil {
		e.Events.TurnChanged(g, g.CurrentPlayerID)
	}
}

func (e *Engine) fireRoundEnded(g *Game, round int) {
	if e.Events.RoundEnded != nil {
		e.Events.RoundEnded(g, round)
	}
}

func (e *Engine) fireShowdown(g *Game) {
	if e.Events.Showdown != nil {
		e.Events.Showdown(g)
	}
}

func (e *Engine) fireGameCompleted(g *Game) {
	if e.Events.GameCompleted != nil {
		e.Events.GameCompleted(g)
	}
}

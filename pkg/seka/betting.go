package seka

import (
	"context"
	"errors"
	"fmt"

	"seka-server/pkg/ledger"
	"seka-server/pkg/seka/action"
)

// ApplyAction validates and applies one player action against the live game,
// advances the turn, and triggers the next round or the showdown when the
// betting round completes. House rules coerce some underfunded actions into
// milder legal ones (call into fold or all-in, check into fold); the history
// records both the requested and the settled action.
func (e *Engine) ApplyAction(ctx context.Context, g *Game, playerID int64, act action.Action, amount int) error {
	if !act.IsValid() {
		return fmt.Errorf("%s is not a valid action", string(act))
	}

	p := g.Player(playerID)
	if p == nil {
		return ErrPlayerNotFound
	}

	if g.Phase != PhaseBetting {
		return ErrInvalidPhase
	}

	// watching your own cards is allowed at any point in the betting phase
	if act == action.Watch {
		return e.applyWatch(g, p)
	}

	if g.CurrentPlayerID != playerID {
		return ErrNotPlayersTurn
	}

	switch p.Status {
	case StatusFolded:
		return newValidationError("you already folded")
	case StatusAllIn, StatusDisconnected:
		return ErrNotPlayersTurn
	}

	if act == action.Reveal {
		return e.applyReveal(g, p)
	}

	requested := act
	if act != action.Fold && e.onlyCallRemains(g, p) {
		// every other player has acted and matched; the last actor's intent
		// settles as a call
		act = action.Call
	}

	var err error
	switch act {
	case action.Fold:
		err = e.applyFold(g, p, requested)
	case action.Check:
		err = e.applyCheck(ctx, g, p, requested)
	case action.Call:
		err = e.applyCall(ctx, g, p, requested)
	case action.Bet, action.Raise:
		err = e.applyBetOrRaise(ctx, g, p, act, requested, amount)
	case action.AllIn:
		err = e.applyAllIn(ctx, g, p, requested)
	default:
		err = fmt.Errorf("unhandled action %s", act)
	}

	if err != nil {
		return err
	}

	e.advanceTurn(g)
	return e.checkRoundCompletion(ctx, g)
}

func (e *Engine) applyWatch(g *Game, p *Player) error {
	if p.ViewedCards {
		return newValidationError("you already looked at your cards")
	}

	p.ViewedCards = true
	g.appendHistory(p.PlayerID, action.Watch, action.Watch, 0)
	e.logger.WithField("player", p.PlayerID).Debug("player exited blind mode")
	return nil
}

// applyReveal compares the player's hand with the next occupied seat. It is
// best-effort: the outcome is logged and recorded, nothing else changes.
func (e *Engine) applyReveal(g *Game, p *Player) error {
	if g.Round < 2 {
		return newValidationError("reveal is only available after the first betting round")
	}

	index := g.playerIndex(p.PlayerID)
	n := len(g.Players)
	for i := 1; i < n; i++ {
		other := g.Players[(index+i)%n]
		if !other.InHand() {
			continue
		}

		outcome := "loses to"
		if p.HandScore > other.HandScore {
			outcome = "beats"
		} else if p.HandScore == other.HandScore {
			outcome = "ties"
		}

		e.logger.WithFields(map[string]interface{}{
			"player": p.PlayerID,
			"other":  other.PlayerID,
		}).Infof("reveal: player %s next seat", outcome)

		g.appendHistory(p.PlayerID, action.Reveal, action.Reveal, 0)
		return nil
	}

	return newValidationError("no one left to reveal against")
}

// onlyCallRemains is the auto-call shortcut: true when every other player who
// can act has already acted and matched the bet, and the acting player is
// simply behind
func (e *Engine) onlyCallRemains(g *Game, p *Player) bool {
	if g.CurrentBet <= p.CurrentBet {
		return false
	}

	for _, other := range g.Players {
		if other.PlayerID == p.PlayerID || !other.CanAct() {
			continue
		}

		if !other.HasActed || other.CurrentBet != g.CurrentBet {
			return false
		}
	}

	return true
}

func (e *Engine) applyFold(g *Game, p *Player, requested action.Action) error {
	p.Status = StatusFolded
	p.HasActed = true
	g.appendHistory(p.PlayerID, action.Fold, requested, 0)
	return nil
}

func (e *Engine) applyCheck(ctx context.Context, g *Game, p *Player, requested action.Action) error {
	if p.CurrentBet == g.CurrentBet {
		p.HasActed = true
		g.appendHistory(p.PlayerID, action.Check, requested, 0)
		return nil
	}

	balance, err := e.ledger.Balance(ctx, p.PlayerID)
	if err != nil {
		return err
	}

	if balance == 0 {
		// house rule: a broke player checking into a bet folds
		return e.applyFold(g, p, requested)
	}

	return newValidationError("you cannot check with an active bet")
}

func (e *Engine) applyCall(ctx context.Context, g *Game, p *Player, requested action.Action) error {
	toCall := g.CurrentBet - p.CurrentBet
	if toCall <= 0 {
		return newValidationError("nothing to call")
	}

	balance, err := e.ledger.Balance(ctx, p.PlayerID)
	if err != nil {
		return err
	}

	if balance == 0 {
		// house rule: a zero-balance call folds
		return e.applyFold(g, p, requested)
	}

	if balance < toCall {
		return e.settle(ctx, g, p, balance, action.AllIn, requested)
	}

	return e.settle(ctx, g, p, toCall, action.Call, requested)
}

func (e *Engine) applyBetOrRaise(ctx context.Context, g *Game, p *Player, act action.Action, requested action.Action, target int) error {
	if target <= 0 {
		return ErrInvalidAmount
	}

	if target <= g.CurrentBet {
		return newValidationError("a %s of %d must exceed the current bet of %d", string(act), target, g.CurrentBet)
	}

	chips := target - p.CurrentBet

	balance, err := e.ledger.Balance(ctx, p.PlayerID)
	if err != nil {
		return err
	}

	if balance < chips {
		// the intent stands; the engine substitutes an all-in for what the
		// player can actually cover
		return e.applyAllIn(ctx, g, p, requested)
	}

	return e.settle(ctx, g, p, chips, act, requested)
}

func (e *Engine) applyAllIn(ctx context.Context, g *Game, p *Player, requested action.Action) error {
	balance, err := e.ledger.Balance(ctx, p.PlayerID)
	if err != nil {
		return err
	}

	if balance == 0 {
		if p.CurrentBet == g.CurrentBet {
			p.Status = StatusAllIn
			p.HasActed = true
			g.appendHistory(p.PlayerID, action.AllIn, requested, 0)
			return nil
		}

		return e.applyFold(g, p, requested)
	}

	return e.settle(ctx, g, p, balance, action.AllIn, requested)
}

// settle moves chips into the pot. The ledger debit happens first; if it
// fails, nothing changes.
func (e *Engine) settle(ctx context.Context, g *Game, p *Player, chips int, settled, requested action.Action) error {
	reason := fmt.Sprintf("seka %s, game %s round %d", string(settled), g.UUID, g.Round)
	if _, err := e.ledger.Debit(ctx, p.PlayerID, chips, reason); err != nil {
		if errors.Is(err, ledger.ErrInsufficientFunds) {
			return err
		}

		return fmt.Errorf("ledger debit failed: %w", err)
	}

	p.CurrentBet += chips
	p.TotalBet += chips
	g.Pot += chips
	p.HasActed = true

	if settled == action.AllIn {
		p.Status = StatusAllIn
	}

	if p.CurrentBet > g.CurrentBet {
		g.CurrentBet = p.CurrentBet

		// a new high bet reopens the action for everyone else
		for _, other := range g.Players {
			if other.PlayerID != p.PlayerID && other.CanAct() {
				other.HasActed = false
			}
		}
	}

	g.appendHistory(p.PlayerID, settled, requested, chips)
	return nil
}

// advanceTurn moves the turn to the next seat that can act
func (e *Engine) advanceTurn(g *Game) {
	index := g.playerIndex(g.CurrentPlayerID)
	seat := g.nextActiveSeat(index + 1)
	if seat < 0 {
		g.CurrentPlayerID = 0
		return
	}

	g.CurrentPlayerID = g.Players[seat].PlayerID
	e.fireTurnChanged(g)
}

// checkRoundCompletion decides whether the betting round is over and, if so,
// whether to start the next round or go to showdown
func (e *Engine) checkRoundCompletion(ctx context.Context, g *Game) error {
	inHand := g.inHandPlayers()

	roundOver := len(inHand) <= 1 || e.allActedAndMatched(g)
	if !roundOver {
		return nil
	}

	e.fireRoundEnded(g, g.Round)

	// the hand shows down early when betting can't meaningfully continue:
	// one player left, nobody able to act, a round nobody opened, or the
	// round cap
	if len(inHand) <= 1 || g.canActCount() <= 1 || g.CurrentBet == 0 || g.Round >= e.opts.MaxBettingRounds {
		return e.showdown(ctx, g)
	}

	g.Round++
	g.CurrentBet = 0
	for _, p := range g.Players {
		p.CurrentBet = 0
		p.HasActed = false
	}

	seat := g.nextActiveSeat(g.DealerIndex + 1)
	g.CurrentPlayerID = g.Players[seat].PlayerID
	e.fireTurnChanged(g)
	return nil
}

// allActedAndMatched returns true when every player who can act has acted
// and matches the table bet. Vacuously true when no one can act.
func (e *Engine) allActedAndMatched(g *Game) bool {
	for _, p := range g.Players {
		if !p.CanAct() {
			continue
		}

		if !p.HasActed || p.CurrentBet != g.CurrentBet {
			return false
		}
	}

	return true
}

package seka

import (
	"context"
	"fmt"
	"time"

	"seka-server/pkg/seka/handanalyzer"
	"seka-server/pkg/seka/potmanager"
)

// showdown evaluates the remaining hands, determines winner(s), and
// distributes the pot minus the platform fee
func (e *Engine) showdown(ctx context.Context, g *Game) error {
	g.Phase = PhaseShowdown
	g.CurrentPlayerID = 0
	e.fireShowdown(g)

	inHand := g.inHandPlayers()
	if len(inHand) == 0 {
		// the state machine should never let this happen
		err := fmt.Errorf("showdown with zero eligible players in game %s", g.UUID)
		e.logger.WithField("game", g.UUID).Error(err.Error())
		return err
	}

	scores := make(map[int64]int, len(inHand))
	if len(inHand) == 1 {
		// uncontested hand; no need to evaluate
		g.WinnerIDs = []int64{inHand[0].PlayerID}
		scores[inHand[0].PlayerID] = inHand[0].HandScore
	} else {
		for _, p := range inHand {
			hv, err := handanalyzer.Analyze(p.Hand)
			if err != nil {
				e.logger.WithError(err).WithFields(map[string]interface{}{
					"game":   g.UUID,
					"player": p.PlayerID,
				}).Error("invalid hand at showdown")
				return err
			}

			p.HandScore = hv.Score
			p.HandDescription = hv.Description
			scores[p.PlayerID] = hv.Score
		}

		g.WinnerIDs = handanalyzer.Winners(scores)
	}

	e.distribute(ctx, g, inHand, scores)

	g.Phase = PhaseCompleted
	g.FinishedAt = time.Now()
	e.fireGameCompleted(g)
	return nil
}

// distribute pays each pot's winners their fee-adjusted share. Credit
// failures are logged and recorded for reconciliation; they never block
// completing the hand.
func (e *Engine) distribute(ctx context.Context, g *Game, inHand []*Player, scores map[int64]int) {
	pots := e.buildPots(g, inHand)

	for potIndex, pot := range pots {
		winners := potWinners(pot, scores)
		if len(winners) == 0 {
			e.logger.WithFields(map[string]interface{}{
				"game": g.UUID,
				"pot":  potIndex,
			}).Error("pot has no eligible winners")
			continue
		}

		perWinner, retained := potmanager.Split(pot.Amount, e.opts.PlatformFeePercent, len(winners))
		e.logger.WithFields(map[string]interface{}{
			"game":     g.UUID,
			"pot":      potIndex,
			"amount":   pot.Amount,
			"winners":  len(winners),
			"retained": retained,
		}).Info("distributing pot")

		for _, id := range winners {
			p := g.Player(id)
			p.IsWinner = true
			p.Winnings += perWinner

			if perWinner == 0 {
				continue
			}

			reason := fmt.Sprintf("seka winnings, game %s", g.UUID)
			if _, err := e.ledger.Credit(ctx, id, perWinner, reason); err != nil {
				e.logger.WithError(err).WithFields(map[string]interface{}{
					"game":   g.UUID,
					"player": id,
					"amount": perWinner,
				}).Error("payout credit failed; queued for reconciliation")

				g.FailedCredits = append(g.FailedCredits, FailedCredit{
					PlayerID: id,
					Amount:   perWinner,
					Reason:   reason,
				})
			}
		}
	}
}

// buildPots returns the side pots when any all-in player remains, otherwise
// a single main pot covering everyone still in the hand
func (e *Engine) buildPots(g *Game, inHand []*Player) []*potmanager.Pot {
	anyAllIn := false
	for _, p := range inHand {
		if p.Status == StatusAllIn {
			anyAllIn = true
			break
		}
	}

	if !anyAllIn {
		ids := make([]int64, len(inHand))
		for i, p := range inHand {
			ids[i] = p.PlayerID
		}

		return []*potmanager.Pot{{Amount: g.Pot, EligibleIDs: ids}}
	}

	contributors := make([]potmanager.Contributor, len(g.Players))
	for i, p := range g.Players {
		contributors[i] = stake{p: p}
	}

	return potmanager.BuildPots(contributors)
}

// potWinners returns the highest-scoring eligible players for a pot
func potWinners(pot *potmanager.Pot, scores map[int64]int) []int64 {
	eligible := make(map[int64]int, len(pot.EligibleIDs))
	for _, id := range pot.EligibleIDs {
		if score, ok := scores[id]; ok {
			eligible[id] = score
		}
	}

	if len(eligible) == 0 {
		return nil
	}

	return handanalyzer.Winners(eligible)
}

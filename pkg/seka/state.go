package seka

import (
	"time"

	"seka-server/pkg/deck"
	"seka-server/pkg/seka/action"
)

// GameState is a read-only projection of a game
type GameState struct {
	UUID            string          `json:"uuid"`
	Phase           Phase           `json:"phase"`
	Round           int             `json:"round"`
	CurrentPlayerID int64           `json:"currentPlayerId"`
	Pot             int             `json:"pot"`
	CurrentBet      int             `json:"currentBet"`
	Ante            int             `json:"ante"`
	DealerIndex     int             `json:"dealerIndex"`
	Players         []*playerState  `json:"players"`
	History         []*HistoryEntry `json:"history"`
	WinnerIDs       []int64         `json:"winnerIds"`
	FinishedAt      *time.Time      `json:"finishedAt,omitempty"`
}

type playerState struct {
	PlayerID    int64     `json:"playerId"`
	Cards       deck.Hand `json:"cards,omitempty"`
	CurrentBet  int       `json:"currentBet"`
	TotalBet    int       `json:"totalBet"`
	Status      Status    `json:"status"`
	HasActed    bool      `json:"hasActed"`
	ViewedCards bool      `json:"viewedCards"`
	IsWinner    bool      `json:"isWinner"`
	Winnings    int       `json:"winnings"`

	// HandScore backs the strength badge; shown before the cards themselves
	HandScore       *int   `json:"handScore,omitempty"`
	HandDescription string `json:"handDescription,omitempty"`
}

// State returns the unsanitized projection for internal and admin use. Every
// hand and cached score is visible.
func (e *Engine) State(g *Game) *GameState {
	players := make([]*playerState, len(g.Players))
	for i, p := range g.Players {
		score := p.HandScore
		players[i] = &playerState{
			PlayerID:        p.PlayerID,
			Cards:           p.Hand.Clone(),
			CurrentBet:      p.CurrentBet,
			TotalBet:        p.TotalBet,
			Status:          p.Status,
			HasActed:        p.HasActed,
			ViewedCards:     p.ViewedCards,
			IsWinner:        p.IsWinner,
			Winnings:        p.Winnings,
			HandScore:       &score,
			HandDescription: p.HandDescription,
		}
	}

	return e.gameState(g, players)
}

// PlayerState returns the projection scoped to one player. A hand is hidden
// until its owner has viewed their cards and the viewer is that owner, or
// the game reaches showdown. A cached score is visible once its owner has
// viewed their cards, so other seats can see a strength badge without seeing
// the cards.
func (e *Engine) PlayerState(g *Game, viewerID int64) (*GameState, error) {
	if g.Player(viewerID) == nil {
		return nil, ErrPlayerNotFound
	}

	atShowdown := g.Phase == PhaseShowdown || g.Phase == PhaseCompleted

	players := make([]*playerState, len(g.Players))
	for i, p := range g.Players {
		ps := &playerState{
			PlayerID:    p.PlayerID,
			CurrentBet:  p.CurrentBet,
			TotalBet:    p.TotalBet,
			Status:      p.Status,
			HasActed:    p.HasActed,
			ViewedCards: p.ViewedCards,
			IsWinner:    p.IsWinner,
			Winnings:    p.Winnings,
		}

		showCards := (atShowdown && p.InHand()) || (p.PlayerID == viewerID && p.ViewedCards)
		if showCards {
			ps.Cards = p.Hand.Clone()
		}

		if p.ViewedCards || atShowdown {
			score := p.HandScore
			ps.HandScore = &score
			if showCards {
				ps.HandDescription = p.HandDescription
			}
		}

		players[i] = ps
	}

	return e.gameState(g, players), nil
}

func (e *Engine) gameState(g *Game, players []*playerState) *GameState {
	var finishedAt *time.Time
	if !g.FinishedAt.IsZero() {
		t := g.FinishedAt
		finishedAt = &t
	}

	history := make([]*HistoryEntry, len(g.History))
	copy(history, g.History)

	winners := make([]int64, len(g.WinnerIDs))
	copy(winners, g.WinnerIDs)

	return &GameState{
		UUID:            g.UUID,
		Phase:           g.Phase,
		Round:           g.Round,
		CurrentPlayerID: g.CurrentPlayerID,
		Pot:             g.Pot,
		CurrentBet:      g.CurrentBet,
		Ante:            g.Ante,
		DealerIndex:     g.DealerIndex,
		Players:         players,
		History:         history,
		WinnerIDs:       winners,
		FinishedAt:      finishedAt,
	}
}

// LegalActions derives the currently-permitted actions for the player
// without mutating anything
func (e *Engine) LegalActions(g *Game, playerID int64) []action.Action {
	p := g.Player(playerID)
	if p == nil || g.Phase != PhaseBetting {
		return nil
	}

	actions := make([]action.Action, 0, 6)
	if !p.ViewedCards {
		actions = append(actions, action.Watch)
	}

	if g.CurrentPlayerID != playerID || !p.CanAct() {
		return actions
	}

	if p.CurrentBet == g.CurrentBet {
		actions = append(actions, action.Check)
	} else {
		actions = append(actions, action.Call)
	}

	if g.CurrentBet == 0 {
		actions = append(actions, action.Bet)
	} else {
		actions = append(actions, action.Raise)
	}

	actions = append(actions, action.AllIn, action.Fold)

	if g.Round >= 2 {
		actions = append(actions, action.Reveal)
	}

	return actions
}

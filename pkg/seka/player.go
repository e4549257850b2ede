package seka

import (
	"seka-server/pkg/deck"
)

// Status is a player's lifecycle status within the hand
type Status string

// status constants
const (
	StatusActive       Status = "active"
	StatusFolded       Status = "folded"
	StatusAllIn        Status = "all_in"
	StatusDisconnected Status = "disconnected"
)

// Player is a seat in a Seka game. A Player record is created when a hand
// starts and either mutated in place each action or discarded at hand end.
type Player struct {
	PlayerID int64     `json:"playerId"`
	Hand     deck.Hand `json:"hand"`

	// CurrentBet is the player's bet in the current betting round
	CurrentBet int `json:"currentBet"`

	// TotalBet is everything the player has put in this hand, ante included
	TotalBet int `json:"totalBet"`

	Status      Status `json:"status"`
	HasActed    bool   `json:"hasActed"`
	ViewedCards bool   `json:"viewedCards"`

	IsWinner bool `json:"isWinner"`
	Winnings int  `json:"winnings"`

	// cached evaluation so strength badges can be shown without revealing cards
	HandScore       int    `json:"handScore"`
	HandDescription string `json:"handDescription"`
}

func newPlayer(id int64) *Player {
	return &Player{
		PlayerID: id,
		Status:   StatusActive,
	}
}

// CanAct returns true if the player can still make betting decisions
func (p *Player) CanAct() bool {
	return p.Status == StatusActive
}

// InHand returns true if the player has not folded out of the hand
// All-in players remain in the hand
func (p *Player) InHand() bool {
	return p.Status == StatusActive || p.Status == StatusAllIn
}

// stake adapts a player to the pot manager's Contributor interface
type stake struct {
	p *Player
}

func (s stake) ID() int64     { return s.p.PlayerID }
func (s stake) TotalBet() int { return s.p.TotalBet }
func (s stake) Folded() bool  { return !s.p.InHand() }

package seka

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"seka-server/pkg/seka/action"
)

// Phase is the lifecycle phase of a hand
type Phase string

// phase constants
const (
	PhaseWaiting   Phase = "waiting"
	PhaseDealing   Phase = "dealing"
	PhaseBetting   Phase = "betting"
	PhaseShowdown  Phase = "showdown"
	PhaseCompleted Phase = "completed"
)

// HistoryEntry is one applied action in the betting history. Action is the
// action that actually settled; Requested preserves what the player asked
// for when the engine coerced it into something else.
type HistoryEntry struct {
	UUID      string        `json:"uuid"`
	PlayerID  int64         `json:"playerId"`
	Action    action.Action `json:"action"`
	Requested action.Action `json:"requested"`

	// Amount is the number of chips the action moved into the pot
	Amount int       `json:"amount"`
	Time   time.Time `json:"time"`
}

// FailedCredit is a payout credit the ledger rejected. The hand still
// completes; reconciliation is an administrative follow-up.
type FailedCredit struct {
	PlayerID int64  `json:"playerId"`
	Amount   int    `json:"amount"`
	Reason   string `json:"reason"`
}

// Game is the single mutable aggregate for one Seka table. It persists
// across hands (the dealer rotates) until the table disbands. At most one
// logical actor may mutate a Game at a time; callers serialize access.
type Game struct {
	UUID            string          `json:"uuid"`
	Phase           Phase           `json:"phase"`
	Round           int             `json:"round"`
	CurrentPlayerID int64           `json:"currentPlayerId"`
	Pot             int             `json:"pot"`
	CurrentBet      int             `json:"currentBet"`
	Ante            int             `json:"ante"`
	DealerIndex     int             `json:"dealerIndex"`
	SmallBlindIndex int             `json:"smallBlindIndex"`
	BigBlindIndex   int             `json:"bigBlindIndex"`
	BlindsPosted    bool            `json:"blindsPosted"`
	Players         []*Player       `json:"players"`
	History         []*HistoryEntry `json:"history"`
	WinnerIDs       []int64         `json:"winnerIds"`
	FailedCredits   []FailedCredit  `json:"failedCredits,omitempty"`
	FinishedAt      time.Time       `json:"finishedAt"`
}

// NewGame returns a game in the waiting phase for the given seats
// Seat order is betting order
func NewGame(playerIDs []int64) (*Game, error) {
	if len(playerIDs) < 2 {
		return nil, errors.New("a game needs at least two players")
	}

	seen := make(map[int64]bool, len(playerIDs))
	players := make([]*Player, len(playerIDs))
	for i, id := range playerIDs {
		if seen[id] {
			return nil, errors.New("duplicate player id")
		}
		seen[id] = true
		players[i] = newPlayer(id)
	}

	return &Game{
		UUID:    uuid.New().String(),
		Phase:   PhaseWaiting,
		Players: players,
	}, nil
}

// Player returns the player with the given id, or nil
func (g *Game) Player(id int64) *Player {
	for _, p := range g.Players {
		if p.PlayerID == id {
			return p
		}
	}

	return nil
}

func (g *Game) playerIndex(id int64) int {
	for i, p := range g.Players {
		if p.PlayerID == id {
			return i
		}
	}

	return -1
}

// inHandPlayers returns the players who have not folded out of the hand
func (g *Game) inHandPlayers() []*Player {
	players := make([]*Player, 0, len(g.Players))
	for _, p := range g.Players {
		if p.InHand() {
			players = append(players, p)
		}
	}

	return players
}

// canActCount returns the number of players still able to make decisions
func (g *Game) canActCount() int {
	count := 0
	for _, p := range g.Players {
		if p.CanAct() {
			count++
		}
	}

	return count
}

// nextActiveSeat returns the next seat at or after start that can act, or -1
func (g *Game) nextActiveSeat(start int) int {
	n := len(g.Players)
	for i := 0; i < n; i++ {
		index := (start + i) % n
		if g.Players[index].CanAct() {
			return index
		}
	}

	return -1
}

func (g *Game) appendHistory(playerID int64, settled, requested action.Action, amount int) {
	g.History = append(g.History, &HistoryEntry{
		UUID:      uuid.New().String(),
		PlayerID:  playerID,
		Action:    settled,
		Requested: requested,
		Amount:    amount,
		Time:      time.Now(),
	})
}

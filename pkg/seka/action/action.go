package action

import (
	"encoding/json"
	"fmt"
)

// Action represents an action a player can take
type Action string

// action constants
const (
	Check  Action = "check"
	Bet    Action = "bet"
	Call   Action = "call"
	Raise  Action = "raise"
	Fold   Action = "fold"
	AllIn  Action = "all_in"
	Reveal Action = "reveal"
	Watch  Action = "watch"
)

var allowedActions = map[Action]bool{
	Check:  true,
	Bet:    true,
	Call:   true,
	Raise:  true,
	Fold:   true,
	AllIn:  true,
	Reveal: true,
	Watch:  true,
}

// FromString returns an action for the given string
func FromString(s string) (Action, error) {
	if _, ok := allowedActions[Action(s)]; ok {
		return Action(s), nil
	}

	return "", fmt.Errorf("unknown action for identifier: %s", s)
}

func (a Action) String() string {
	switch a {
	case Check:
		return "Check"
	case Bet:
		return "Bet"
	case Call:
		return "Call"
	case Raise:
		return "Raise"
	case Fold:
		return "Fold"
	case AllIn:
		return "All-in"
	case Reveal:
		return "Reveal"
	case Watch:
		return "Watch"
	}

	panic("unknown action")
}

// MarshalJSON encodes the action into JSON
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}{
		ID:   string(a),
		Name: a.String(),
	})
}

// IsValid returns true if the action is permitted
func (a Action) IsValid() bool {
	_, ok := allowedActions[a]
	return ok
}

// SpendsChips returns true if the action moves chips into the pot
func (a Action) SpendsChips() bool {
	switch a {
	case Bet, Call, Raise, AllIn:
		return true
	}

	return false
}

// LogMessage returns a message formatted for the log
func (a Action) LogMessage(amount int) string {
	switch a {
	case Check:
		return "checked"
	case Bet:
		return fmt.Sprintf("bet %d", amount)
	case Call:
		return fmt.Sprintf("called %d", amount)
	case Raise:
		return fmt.Sprintf("raised to %d", amount)
	case Fold:
		return "folded"
	case AllIn:
		return fmt.Sprintf("went all-in for %d", amount)
	case Reveal:
		return "revealed against the next seat"
	case Watch:
		return "looked at their cards"
	}

	return ""
}

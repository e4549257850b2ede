package potmanager

import (
	"sort"
)

// Contributor is a player's stake in the hand as seen by the pot manager
type Contributor interface {
	ID() int64
	TotalBet() int
	Folded() bool
}

// Pot is an amount plus the set of player ids eligible to win it
// The first pot is the main pot; any further pots are side pots created by
// all-in players
type Pot struct {
	Amount      int     `json:"amount"`
	EligibleIDs []int64 `json:"eligibleIds"`
}

// IsEligible returns true if the player may win this pot
func (p *Pot) IsEligible(playerID int64) bool {
	for _, id := range p.EligibleIDs {
		if id == playerID {
			return true
		}
	}

	return false
}

// BuildPots derives the main pot and side pots from the distribution of
// total bets. Pots are never stored; they are rebuilt on demand.
//
// Tiers are the distinct total bets of non-folded contributors in ascending
// order. Folded contributions count toward pot amounts (capped at each tier)
// but never toward eligibility, so the pots always sum to the full pot.
func BuildPots(contributors []Contributor) []*Pot {
	seen := make(map[int]bool)
	for _, c := range contributors {
		if !c.Folded() && c.TotalBet() > 0 {
			seen[c.TotalBet()] = true
		}
	}

	if len(seen) == 0 {
		return nil
	}

	levels := make([]int, 0, len(seen))
	for level := range seen {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	pots := make([]*Pot, 0, len(levels))
	prev := 0
	for _, level := range levels {
		p := &Pot{}
		for _, c := range contributors {
			contribution := c.TotalBet()
			if contribution > level {
				contribution = level
			}
			if contribution > prev {
				p.Amount += contribution - prev
			}

			if !c.Folded() && c.TotalBet() >= level {
				p.EligibleIDs = append(p.EligibleIDs, c.ID())
			}
		}

		pots = append(pots, p)
		prev = level
	}

	// a folded player may have contributed beyond the highest live tier;
	// that overage stays in the last pot
	top := levels[len(levels)-1]
	for _, c := range contributors {
		if c.Folded() && c.TotalBet() > top {
			pots[len(pots)-1].Amount += c.TotalBet() - top
		}
	}

	return pots
}

// Total returns the combined amount across the pots
func Total(pots []*Pot) int {
	total := 0
	for _, p := range pots {
		total += p.Amount
	}

	return total
}

// Split returns the floor-rounded share each of k winners receives from a pot
// after the platform fee, along with the amount the platform retains. The
// retained amount includes both the fee and any rounding shortfall.
func Split(amount, feePercent, winners int) (perWinner, retained int) {
	if winners <= 0 || amount <= 0 {
		return 0, amount
	}

	payable := amount * (100 - feePercent) / 100
	perWinner = payable / winners
	retained = amount - perWinner*winners

	return perWinner, retained
}

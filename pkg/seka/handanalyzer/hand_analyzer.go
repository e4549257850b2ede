package handanalyzer

import (
	"fmt"
	"sort"

	"seka-server/pkg/deck"
)

// HandSize is the number of cards in a Seka hand
const HandSize = 3

// ThreeSevensScore is the fixed score for three sevens, the best possible hand
const ThreeSevensScore = 34

// TwoAcesScore is the fixed score for a hand holding exactly two aces
const TwoAcesScore = 22

// Category identifies how a hand scored. The category is for display only;
// hands are ranked solely by score.
type Category string

// category constants
const (
	ThreeSevens  Category = "three-sevens"
	ThreeOfAKind Category = "three-of-a-kind"
	TwoAces      Category = "two-aces"
	Flush        Category = "flush"
	HighCard     Category = "high-card"
)

// HandValue is the evaluation of a three-card Seka hand
type HandValue struct {
	Category    Category  `json:"category"`
	Score       int       `json:"score"`
	Description string    `json:"description"`
	Cards       deck.Hand `json:"cards"`
}

// Analyze evaluates a three-card Seka hand
// If the hand holds the wildcard, every possible substitution from the full
// deck is tried and the best-scoring one is kept. The returned value always
// carries the original cards.
func Analyze(hand deck.Hand) (*HandValue, error) {
	if len(hand) != HandSize {
		return nil, fmt.Errorf("a seka hand must have exactly %d cards, got %d", HandSize, len(hand))
	}

	wild := hand.Wildcard()
	if wild == nil {
		category, score, description := scoreCards(hand)
		return &HandValue{
			Category:    category,
			Score:       score,
			Description: description,
			Cards:       hand.Clone(),
		}, nil
	}

	others := make(deck.Hand, 0, HandSize-1)
	for _, card := range hand {
		if !card.IsWild {
			others = append(others, card)
		}
	}

	var best *HandValue
	var bestAs *deck.Card
	for _, candidate := range deck.New().Cards {
		if candidate.IsWild {
			continue
		}

		trial := append(others.Clone(), candidate)
		category, score, description := scoreCards(trial)
		if best == nil || score > best.Score {
			best = &HandValue{
				Category:    category,
				Score:       score,
				Description: description,
			}
			bestAs = candidate
		}
	}

	best.Cards = hand.Clone()
	best.Description = fmt.Sprintf("%s (wildcard as %s)", best.Description, bestAs)
	return best, nil
}

// scoreCards applies the Seka scoring rules in precedence order. Exactly one
// rule applies to a given hand.
func scoreCards(cards deck.Hand) (Category, int, string) {
	if cards[0].Rank == cards[1].Rank && cards[1].Rank == cards[2].Rank {
		if cards[0].Rank == 7 {
			return ThreeSevens, ThreeSevensScore, "three sevens"
		}

		sum := cards[0].Value() + cards[1].Value() + cards[2].Value()
		return ThreeOfAKind, sum, fmt.Sprintf("three of a kind, %ss", rankName(cards[0].Rank))
	}

	aces := 0
	for _, card := range cards {
		if card.Rank == deck.Ace {
			aces++
		}
	}
	if aces == 2 {
		return TwoAces, TwoAcesScore, "two aces"
	}

	if cards[0].Suit == cards[1].Suit && cards[1].Suit == cards[2].Suit {
		sum := cards[0].Value() + cards[1].Value() + cards[2].Value()
		return Flush, sum, fmt.Sprintf("three-card flush, %d points", sum)
	}

	bestPair := 0
	for i := 0; i < len(cards); i++ {
		for j := i + 1; j < len(cards); j++ {
			if cards[i].Suit == cards[j].Suit {
				if sum := cards[i].Value() + cards[j].Value(); sum > bestPair {
					bestPair = sum
				}
			}
		}
	}
	if bestPair > 0 {
		return Flush, bestPair, fmt.Sprintf("two-card flush, %d points", bestPair)
	}

	high := cards[0]
	for _, card := range cards[1:] {
		if card.Value() > high.Value() {
			high = card
		}
	}

	return HighCard, high.Value(), fmt.Sprintf("%s high", high)
}

// Compare returns a positive number if a beats b, a negative number if b
// beats a, and zero if the hands tie. Equal scores always tie, regardless of
// category.
func Compare(a, b *HandValue) int {
	return a.Score - b.Score
}

// Winners returns the ids of every player tied at the maximum score. More
// than one id is the Svara condition; breaking the tie is the caller's
// concern.
func Winners(scores map[int64]int) []int64 {
	var max int
	found := false
	for _, score := range scores {
		if !found || score > max {
			max = score
			found = true
		}
	}

	winners := make([]int64, 0, 1)
	for id, score := range scores {
		if score == max {
			winners = append(winners, id)
		}
	}

	sort.Slice(winners, func(i, j int) bool { return winners[i] < winners[j] })
	return winners
}

func rankName(rank int) string {
	switch rank {
	case deck.Jack:
		return "jack"
	case deck.Queen:
		return "queen"
	case deck.King:
		return "king"
	case deck.Ace:
		return "ace"
	default:
		return fmt.Sprintf("%d", rank)
	}
}

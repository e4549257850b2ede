package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"
	"fmt"

	"seka-server/internal/rng"
)

// Size is the number of cards in a Seka deck
const Size = 36

// ErrEndOfDeck is an error when a deal is attempted with too few cards remaining
var ErrEndOfDeck = errors.New("end of deck reached")

// Deck represents an ordered sequence of playing cards
type Deck struct {
	Cards []*Card `json:"cards"`
}

// New returns a new, unshuffled 36-card Seka deck
func New() *Deck {
	cards := make([]*Card, 0, Size)
	for _, suit := range []Suit{Clubs, Diamonds, Hearts, Spades} {
		for rank := MinRank; rank <= MaxRank; rank++ {
			cards = append(cards, newCard(rank, suit))
		}
	}

	return &Deck{Cards: cards}
}

// Shuffle returns a Fisher-Yates shuffled copy of the deck using the generator
// The receiver is never modified
func (d *Deck) Shuffle(gen rng.Generator) *Deck {
	cards := make([]*Card, len(d.Cards))
	copy(cards, d.Cards)

	for j := len(cards) - 1; j > 0; j-- {
		i := gen.Intn(j + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}

	return &Deck{Cards: cards}
}

// SecureShuffle returns a shuffled copy of the deck using a cryptographically
// strong random source
func (d *Deck) SecureShuffle() *Deck {
	return d.Shuffle(rng.Crypto{})
}

// Deal returns the first n cards and the remainder of the deck
// The receiver is never modified
func (d *Deck) Deal(n int) (Hand, *Deck, error) {
	if n > len(d.Cards) {
		return nil, nil, ErrEndOfDeck
	}

	hand := make(Hand, n)
	copy(hand, d.Cards[:n])

	rest := make([]*Card, len(d.Cards)-n)
	copy(rest, d.Cards[n:])

	return hand, &Deck{Cards: rest}, nil
}

// DealHands deals perPlayer cards to each of players seats in seat order and
// returns the hands along with the remainder of the deck
func (d *Deck) DealHands(players, perPlayer int) ([]Hand, *Deck, error) {
	if players <= 0 {
		return nil, nil, fmt.Errorf("cannot deal to %d players", players)
	}

	if players*perPlayer > len(d.Cards) {
		return nil, nil, ErrEndOfDeck
	}

	hands := make([]Hand, players)
	for i := range hands {
		hands[i] = make(Hand, 0, perPlayer)
	}

	rest := d
	for c := 0; c < perPlayer; c++ {
		for seat := 0; seat < players; seat++ {
			var dealt Hand
			var err error
			dealt, rest, err = rest.Deal(1)
			if err != nil {
				return nil, nil, err
			}

			hands[seat] = append(hands[seat], dealt[0])
		}
	}

	return hands, rest, nil
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}

// HashCode returns a SHA1 hash code of the deck.
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.Cards {
		_, _ = hash.Write([]byte(card.String()))
	}

	return hex.EncodeToString(hash.Sum(nil)[:])
}

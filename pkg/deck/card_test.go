package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCard_Value(t *testing.T) {
	a := assert.New(t)

	a.Equal(6, CardFromString("6h").Value())
	a.Equal(9, CardFromString("9d").Value())
	a.Equal(10, CardFromString("10s").Value())
	a.Equal(10, CardFromString("11c").Value())
	a.Equal(10, CardFromString("12h").Value())
	a.Equal(10, CardFromString("13d").Value())
	a.Equal(11, CardFromString("14s").Value())
}

func TestCardFromString(t *testing.T) {
	a := assert.New(t)

	card := CardFromString("7c")
	a.Equal(7, card.Rank)
	a.Equal(Clubs, card.Suit)
	a.True(card.IsWild)

	card = CardFromString("7d")
	a.False(card.IsWild)

	a.Nil(CardFromString(""))
	a.Panics(func() { CardFromString("5c") })
	a.Panics(func() { CardFromString("15c") })
	a.Panics(func() { CardFromString("7x") })
}

func TestCard_String(t *testing.T) {
	a := assert.New(t)

	a.Equal("A♠", CardFromString("14s").String())
	a.Equal("7♣", CardFromString("7c").String())
	a.Equal("10♡", CardFromString("10h").String())
	a.Equal("J♢", CardFromString("11d").String())
}

func TestCardsFromString(t *testing.T) {
	a := assert.New(t)

	cards := CardsFromString("6c,7h,14s")
	a.Equal(3, len(cards))
	a.Equal("6c,7h,14s", CardsToString(cards))
	a.Equal(0, len(CardsFromString("")))
}

func TestHand(t *testing.T) {
	a := assert.New(t)

	hand := Hand(CardsFromString("6c,7c"))
	a.True(hand.HasCard(CardFromString("6c")))
	a.False(hand.HasCard(CardFromString("6d")))

	a.NotNil(hand.Wildcard())
	a.True(hand.Wildcard().IsWild)
	a.Nil(Hand(CardsFromString("6c,8c")).Wildcard())

	clone := hand.Clone()
	clone.AddCard(CardFromString("9h"))
	a.Equal(2, len(hand))
	a.Equal(3, len(clone))
}

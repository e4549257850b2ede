package action

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromString(t *testing.T) {
	a := assert.New(t)

	act, err := FromString("all_in")
	a.NoError(err)
	a.Equal(AllIn, act)
	a.True(act.IsValid())

	_, err = FromString("split")
	a.EqualError(err, "unknown action for identifier: split")
}

func TestAction_SpendsChips(t *testing.T) {
	a := assert.New(t)

	a.True(Bet.SpendsChips())
	a.True(Call.SpendsChips())
	a.True(Raise.SpendsChips())
	a.True(AllIn.SpendsChips())
	a.False(Check.SpendsChips())
	a.False(Fold.SpendsChips())
	a.False(Reveal.SpendsChips())
	a.False(Watch.SpendsChips())
}

func TestAction_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Raise)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"id":"raise","name":"Raise"}`, string(data))
}

func TestAction_LogMessage(t *testing.T) {
	a := assert.New(t)

	a.Equal("bet 50", Bet.LogMessage(50))
	a.Equal("went all-in for 120", AllIn.LogMessage(120))
	a.Equal("folded", Fold.LogMessage(0))
}

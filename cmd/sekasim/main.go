package main

import (
	"context"
	"flag"
	"io/ioutil"
	"math/rand"

	"github.com/sirupsen/logrus"
	"seka-server/internal/config"
	"seka-server/internal/rng"
	"seka-server/pkg/ledger"
	"seka-server/pkg/room"
	"seka-server/pkg/seka"
	"seka-server/pkg/seka/action"
)

// maxActionsPerHand guards the bot loop against a runaway hand
const maxActionsPerHand = 500

func main() {
	players := flag.Int("players", 4, "number of seated players")
	hands := flag.Int("hands", 10, "number of hands to play")
	ante := flag.Int("ante", 0, "ante per hand (0 uses the configured default)")
	buyIn := flag.Int("buyin", 5000, "starting balance per player")
	seed := flag.Int64("seed", 1, "seed for the shuffle and the bots")
	verbose := flag.Bool("v", false, "log every action")
	flag.Parse()

	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	cfg := config.Instance()
	if *ante == 0 {
		*ante = cfg.Game.DefaultAnte
	}

	balances := make(map[int64]int, *players)
	playerIDs := make([]int64, *players)
	for i := range playerIDs {
		id := int64(i + 1)
		playerIDs[i] = id
		balances[id] = *buyIn
	}

	mem := ledger.NewMem(balances)

	opts := seka.DefaultOptions()
	opts.PlatformFeePercent = cfg.Game.PlatformFeePercent
	opts.MaxBettingRounds = cfg.Game.MaxBettingRounds
	opts.ShuffleSource = rng.Seeded(*seed)

	engineLogger := logger
	if !*verbose {
		engineLogger = logrus.New()
		engineLogger.SetOutput(ioutil.Discard)
	}

	engine := seka.New(engineLogger, mem, opts)
	dealer := room.NewDealer(logger, engine, room.NopRecorder{}, playerIDs, *ante)

	bots := rand.New(rand.NewSource(*seed))
	ctx := context.Background()

	for hand := 1; hand <= *hands; hand++ {
		if !playHand(ctx, logger, dealer, bots, hand) {
			break
		}
	}

	for _, id := range playerIDs {
		balance, err := mem.Balance(ctx, id)
		if err != nil {
			logger.WithError(err).WithField("player", id).Fatal("could not read balance")
		}

		logger.WithFields(logrus.Fields{
			"player":  id,
			"balance": balance,
		}).Info("final balance")
	}
}

func playHand(ctx context.Context, logger *logrus.Logger, dealer *room.Dealer, bots *rand.Rand, hand int) bool {
	state, err := dealer.StartHand(ctx)
	if err != nil {
		logger.WithError(err).Warn("could not start hand")
		return false
	}

	logger.WithFields(logrus.Fields{
		"hand": hand,
		"game": state.UUID,
		"pot":  state.Pot,
	}).Info("hand started")

	for i := 0; i < maxActionsPerHand; i++ {
		state = dealer.AdminState()
		if state.Phase != seka.PhaseBetting {
			break
		}

		playerID := state.CurrentPlayerID
		act, amount := choose(bots, dealer.LegalActions(playerID), state)

		if _, err := dealer.Action(ctx, playerID, act, amount); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"player": playerID,
				"action": string(act),
			}).Fatal("bot played an illegal action")
		}

		logger.WithField("player", playerID).Debug(act.LogMessage(amount))
	}

	state = dealer.AdminState()
	if state.Phase != seka.PhaseCompleted {
		logger.WithField("game", state.UUID).Fatal("hand did not complete")
	}

	logger.WithFields(logrus.Fields{
		"hand":    hand,
		"winners": state.WinnerIDs,
		"pot":     state.Pot,
	}).Info("hand complete")

	return true
}

// choose picks the bot's next move: lean toward the passive option, bet or
// raise by the ante occasionally, rarely fold
func choose(bots *rand.Rand, legal []action.Action, state *seka.GameState) (action.Action, int) {
	has := make(map[action.Action]bool, len(legal))
	for _, a := range legal {
		has[a] = true
	}

	if has[action.Watch] && bots.Intn(2) == 0 {
		return action.Watch, 0
	}

	roll := bots.Intn(10)
	switch {
	case has[action.Check]:
		if roll < 7 {
			return action.Check, 0
		}

		return action.Bet, state.Ante
	case has[action.Call]:
		if roll < 6 {
			return action.Call, 0
		} else if roll < 8 {
			return action.Raise, state.CurrentBet + state.Ante
		}

		return action.Fold, 0
	}

	return action.Fold, 0
}

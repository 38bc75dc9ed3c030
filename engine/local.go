package engine

import (
	"context"
	"time"

	"skyjo/experiments/metrics"
	"skyjo/game"
	"skyjo/utils"

	"github.com/rs/zerolog/log"
)

// PlayGame plays rounds until a player's game score reaches the score ending the game.
func (e *Engine) PlayGame(ctx context.Context, gameIndex int) (metrics.GameMetric, error) {
	gm := metrics.GameMetric{
		Game:      gameIndex,
		Scores:    make([]int, e.rules.Players),
		StartTime: time.Now(),
	}

	for roundIndex := 0; ; roundIndex++ {
		rm, err := e.PlayRound(ctx, gameIndex, roundIndex, gm.Scores)
		if err != nil {
			return gm, err
		}
		for i, score := range rm.Scores {
			gm.Scores[i] += score
		}
		gm.Rounds = append(gm.Rounds, rm)

		if utils.Max(gm.Scores) >= e.rules.ScoreEndingGame {
			break
		}
	}

	gm.Winners = game.Winners(gm.Scores)
	gm.EndTime = time.Now()
	gm.Duration = gm.EndTime.Sub(gm.StartTime)

	log.Debug().Int("game", gameIndex).Int("rounds", len(gm.Rounds)).Ints("scores", gm.Scores).
		Ints("winners", gm.Winners).Dur("duration", gm.Duration).Msg("game finished")
	return gm, nil
}

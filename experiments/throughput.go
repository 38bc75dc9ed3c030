package experiments

import (
	"context"
	"fmt"
	"math"
	"time"

	"skyjo/experiments/metrics"
	"skyjo/meta"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"
)

type ThroughputResult struct {
	Workers        int
	Games          int
	Rounds         int
	Duration       time.Duration
	GamesPerSecond float64
}

// RunThroughput plays the same seeded run once per worker count and measures its speed.
func RunThroughput(ctx context.Context, config meta.Config, factory StrategyFactory, workers []int) ([]ThroughputResult, error) {
	results := []ThroughputResult{}

	if config.Seed == 0 {
		config.Seed = frand.Uint64n(math.MaxUint64) + 1
	}

	log.Info().Msg("starting throughput experiment...")

	for _, w := range workers {
		config.Workers = w
		log.Info().Msgf("starting %d games with %d workers...", config.Games, w)

		report, err := Run(ctx, config, factory, metrics.NewCollector(false))
		if err != nil {
			return results, fmt.Errorf("throughput run with %d workers: %w", w, err)
		}

		result := ThroughputResult{
			Workers:  w,
			Games:    report.Games,
			Rounds:   report.Rounds,
			Duration: report.Elapsed,
		}
		if seconds := report.Elapsed.Seconds(); seconds > 0 {
			result.GamesPerSecond = float64(report.Games) / seconds
		}
		results = append(results, result)

		log.Info().Msgf("completed %d games with %d workers in %s (%.1f games/s)", result.Games, w,
			result.Duration, result.GamesPerSecond)
	}

	log.Info().Msg("completed throughput experiment")
	return results, nil
}

package experiments

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"skyjo/engine"
	"skyjo/experiments/metrics"
	"skyjo/game"
	"skyjo/meta"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"
)

// StrategyFactory seats the strategies of one game. rng belongs to that game only.
type StrategyFactory func(gameIndex int, rng *rand.Rand) ([]engine.Strategy, error)

// SimulationState holds the player records shared by every game of a run.
type SimulationState struct {
	mu      sync.Mutex
	Players []game.Player
}

func NewSimulationState(players int) *SimulationState {
	return &SimulationState{Players: game.NewPlayers(players)}
}

// AddGame folds a finished game into the player records.
func (s *SimulationState) AddGame(gm metrics.GameMetric) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, score := range gm.Scores {
		s.Players[i].TotalScore += score
	}
	for _, winner := range gm.Winners {
		s.Players[winner].Victories++
	}
	for _, round := range gm.Rounds {
		for i, triplets := range round.Triplets {
			s.Players[i].TotalTriplets += triplets
		}
	}
}

// Snapshot returns a copy of the player records.
func (s *SimulationState) Snapshot() []game.Player {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]game.Player(nil), s.Players...)
}

func (s *SimulationState) Victories() []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	victories := make([]int, len(s.Players))
	for i, p := range s.Players {
		victories[i] = p.Victories
	}
	return victories
}

// Run plays config.Games independent games on config.Workers goroutines. Every game gets
// its own generator seeded from the run's master seed, so a seeded run gives the same
// results whatever the number of workers. The first failing game cancels the others.
func Run(ctx context.Context, config meta.Config, factory StrategyFactory, collector metrics.Collector) (Report, error) {
	if err := config.Validate(); err != nil {
		return Report{}, err
	}

	seed := config.Seed
	if seed == 0 {
		seed = frand.Uint64n(math.MaxUint64) + 1
	}
	master := rand.New(rand.NewSource(seed))
	seeds := make([]uint64, config.Games)
	for i := range seeds {
		seeds[i] = master.Uint64()
	}

	runID := uuid.New()
	state := NewSimulationState(config.Players)
	collector.Start(config.Players)
	progress := max(config.Games/10, 1)
	var completed atomic.Int64

	log.Info().Str("run", runID.String()).Uint64("seed", seed).
		Msgf("starting %d games of %d players with %d workers...", config.Games, config.Players, config.Workers)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(config.Workers)
	for i := 0; i < config.Games; i++ {
		gameIndex := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			rng := rand.New(rand.NewSource(seeds[gameIndex]))
			strategies, err := factory(gameIndex, rng)
			if err != nil {
				return fmt.Errorf("failed to seat strategies of game %d: %w", gameIndex, err)
			}
			e, err := engine.New(config.Rules, strategies, rng, engine.WithPrimary(meta.PRIMARY_PLAYER))
			if err != nil {
				return err
			}

			gm, err := e.PlayGame(ctx, gameIndex)
			if err != nil {
				return fmt.Errorf("game %d: %w", gameIndex, err)
			}
			state.AddGame(gm)
			collector.AddGame(gm)

			if n := completed.Add(1); n%int64(progress) == 0 {
				log.Info().Msgf("completed %d of %d games", n, config.Games)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	run := collector.Complete()
	report := NewReport(state.Snapshot(), meta.PRIMARY_PLAYER, config.PercentWinRequired, run)
	report.RunID = runID.String()
	report.Seed = seed

	log.Info().Str("run", report.RunID).Msgf("completed %d games (%d rounds) in %s", run.Games, run.Rounds, run.Duration)
	return report, nil
}

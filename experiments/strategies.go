package experiments

import (
	"fmt"
	"io"

	"skyjo/engine"
	"skyjo/meta"
	"skyjo/player"

	"golang.org/x/exp/rand"
)

// NewStrategyFactory seats the configured primary strategy at meta.PRIMARY_PLAYER and
// random control strategies everywhere else. in and out are only used by an interactive
// primary.
func NewStrategyFactory(config meta.Config, in io.Reader, out io.Writer) (StrategyFactory, error) {
	var primary func(rng *rand.Rand) engine.Strategy

	switch config.Primary {
	case "random":
		primary = func(rng *rand.Rand) engine.Strategy { return player.NewRandom(rng) }
	case "scripted":
		script, err := player.LoadScript(config.Script)
		if err != nil {
			return nil, err
		}
		primary = func(*rand.Rand) engine.Strategy { return player.NewScripted(script) }
	case "interactive":
		// a single human across the whole run
		interactive := player.NewInteractive(in, out)
		primary = func(*rand.Rand) engine.Strategy { return interactive }
	default:
		return nil, fmt.Errorf("unknown primary strategy %q", config.Primary)
	}

	return func(_ int, rng *rand.Rand) ([]engine.Strategy, error) {
		strategies := make([]engine.Strategy, config.Players)
		for i := range strategies {
			if i == meta.PRIMARY_PLAYER {
				strategies[i] = primary(rng)
			} else {
				strategies[i] = player.NewRandom(rng)
			}
		}
		return strategies, nil
	}, nil
}

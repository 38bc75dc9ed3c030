package meta

import (
	"fmt"
	"os"

	"skyjo/game"

	"gopkg.in/yaml.v3"
)

// Rules are the table dimensions a round is played with.
type Rules struct {
	Players         int `yaml:"players"`
	Columns         int `yaml:"columns"`
	Rows            int `yaml:"rows"`
	ScoreEndingGame int `yaml:"scoreEndingGame"`
}

func (r Rules) CellsPerGrid() int {
	return r.Columns * r.Rows
}

// GridStockLength is the number of cards reserved to reveal every cell of every grid.
func (r Rules) GridStockLength() int {
	return r.Players * r.CellsPerGrid()
}

// Config is a simulation run; zero values read from a file keep their defaults.
type Config struct {
	Rules              `yaml:",inline"`
	Games              int     `yaml:"games"`
	Workers            int     `yaml:"workers"`
	Seed               uint64  `yaml:"seed"`
	PercentWinRequired float64 `yaml:"percentWinRequired"`
	Primary            string  `yaml:"primary"` // random, scripted or interactive
	Script             string  `yaml:"script"`  // script file of the scripted primary
	OutputDir          string  `yaml:"outputDir"`
}

func DefaultRules() Rules {
	return Rules{
		Players:         NUMBER_OF_PLAYERS,
		Columns:         NUMBER_OF_COLUMNS,
		Rows:            NUMBER_OF_ROWS,
		ScoreEndingGame: SCORE_ENDING_GAME,
	}
}

func DefaultConfig() Config {
	return Config{
		Rules:              DefaultRules(),
		Games:              NUMBER_OF_GAMES,
		Workers:            1,
		PercentWinRequired: PLAYER_0_PERCENT_WIN_REQUIRED,
		Primary:            "random",
	}
}

// LoadConfig reads a YAML config file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return config, config.Validate()
}

// Validate rejects tables the rules cannot be played on.
func (r Rules) Validate() error {
	if r.Players < 2 {
		return fmt.Errorf("need at least two players, got %d", r.Players)
	}
	if r.Columns < 1 {
		return fmt.Errorf("need at least one column, got %d", r.Columns)
	}
	if r.Rows < 2 {
		return fmt.Errorf("need at least two rows, got %d", r.Rows)
	}
	if r.ScoreEndingGame <= 0 {
		return fmt.Errorf("ending score must be positive, got %d", r.ScoreEndingGame)
	}
	// the grid stock, the first discard and at least one card to draw
	if needed, deck := r.GridStockLength()+2, len(game.NewDeck()); needed > deck {
		return fmt.Errorf("%d players with %dx%d grids need %d cards, the deck has %d",
			r.Players, r.Columns, r.Rows, needed, deck)
	}
	return nil
}

func (c Config) Validate() error {
	if err := c.Rules.Validate(); err != nil {
		return err
	}
	if c.Games <= 0 {
		return fmt.Errorf("number of games must be positive, got %d", c.Games)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("number of workers must be positive, got %d", c.Workers)
	}
	switch c.Primary {
	case "random", "interactive":
	case "scripted":
		if c.Script == "" {
			return fmt.Errorf("scripted primary needs a script file")
		}
	default:
		return fmt.Errorf("unknown primary strategy %q", c.Primary)
	}
	if c.Primary == "interactive" && c.Workers != 1 {
		return fmt.Errorf("interactive primary needs exactly one worker, got %d", c.Workers)
	}
	return nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"skyjo/experiments"
	"skyjo/experiments/metrics"
	"skyjo/meta"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	games := flag.Int("games", meta.NUMBER_OF_GAMES, "Number of games to play")
	workers := flag.Int("workers", 1, "Number of games played in parallel")
	seed := flag.Uint64("seed", 0, "Seed of the run, random when 0")
	out := flag.String("out", "", "Directory to store the run records in")
	primary := flag.String("primary", "random", "Strategy of player 0: random, scripted or interactive")
	script := flag.String("script", "", "Script file of the scripted strategy")
	logLevel := flag.String("log-level", "info", "Log level: trace, debug, info, warn or error")
	dryRun := flag.Bool("dry-run", false, "Play a single game and log every round and turn")
	throughput := flag.String("throughput", "", "Comma separated worker counts to measure the run speed with")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	config := meta.DefaultConfig()
	if *configPath != "" {
		config, err = meta.LoadConfig(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}

	// flags given on the command line override the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "games":
			config.Games = *games
		case "workers":
			config.Workers = *workers
		case "seed":
			config.Seed = *seed
		case "out":
			config.OutputDir = *out
		case "primary":
			config.Primary = *primary
		case "script":
			config.Script = *script
		}
	})
	if *dryRun {
		config.Games = 1
		config.Workers = 1
		if level > zerolog.DebugLevel {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	}
	if err := config.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	factory, err := experiments.NewStrategyFactory(config, os.Stdin, os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seat strategies")
	}

	if *throughput != "" {
		counts, err := parseWorkers(*throughput)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid throughput worker counts")
		}
		if _, err := experiments.RunThroughput(ctx, config, factory, counts); err != nil {
			log.Fatal().Err(err).Msg("throughput experiment failed")
		}
		return
	}

	collector := metrics.NewCollector(config.OutputDir != "")
	report, err := experiments.Run(ctx, config, factory, collector)
	if err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
	report.Print(os.Stdout)

	if config.OutputDir != "" {
		if err := writeRecords(config, report, collector); err != nil {
			log.Fatal().Err(err).Msg("failed to store run records")
		}
	}
}

func writeRecords(config meta.Config, report experiments.Report, collector metrics.Collector) error {
	// record the seed actually used
	config.Seed = report.Seed

	writer, err := metrics.NewWriter(config.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to create run writer: %w", err)
	}

	err = writer.WriteSetup(metrics.Setup{
		RunID:     report.RunID,
		Config:    config,
		Players:   report.Players,
		Games:     report.Games,
		Rounds:    report.Rounds,
		Turns:     report.Run.Turns,
		StartTime: report.Run.StartTime,
		EndTime:   report.Run.EndTime,
		Duration:  report.Run.Duration,
	})
	if err != nil {
		return err
	}
	if err := writer.WriteGameRecords(collector.Games()); err != nil {
		return err
	}
	if err := writer.WriteRoundRecords(collector.Games()); err != nil {
		return err
	}

	log.Info().Str("run", report.RunID).Msgf("stored run records in %s", writer.Dir())
	return nil
}

func parseWorkers(list string) ([]int, error) {
	counts := []int{}
	for _, part := range strings.Split(list, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid worker count %q", part)
		}
		counts = append(counts, n)
	}
	return counts, nil
}

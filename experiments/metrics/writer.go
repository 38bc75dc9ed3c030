package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"skyjo/game"
	"skyjo/meta"

	"gopkg.in/yaml.v3"
)

// Setup is the summary of a run stored next to its records.
type Setup struct {
	RunID     string        `yaml:"runId"`
	Config    meta.Config   `yaml:"config"`
	Players   []game.Player `yaml:"players"`
	Games     int           `yaml:"games"`
	Rounds    int           `yaml:"rounds"`
	Turns     int           `yaml:"turns"`
	StartTime time.Time     `yaml:"startTime"`
	EndTime   time.Time     `yaml:"endTime"`
	Duration  time.Duration `yaml:"duration"`
}

type Writer struct {
	baseDir string
}

// NewWriter stores the records of a run in a subfolder of dir named by the current timestamp.
func NewWriter(dir string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
	baseDir := filepath.Join(dir, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteSetup(setup Setup) error {
	data, err := yaml.Marshal(setup)
	if err != nil {
		return fmt.Errorf("failed to encode setup: %w", err)
	}
	path := filepath.Join(w.baseDir, "setup.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write setup file: %w", err)
	}
	return nil
}

func (w *Writer) WriteGameRecords(games []GameMetric) error {
	header := []string{"game", "rounds", "scores", "winners", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(games))
	for _, g := range games {
		rows = append(rows, []string{
			strconv.Itoa(g.Game),
			strconv.Itoa(len(g.Rounds)),
			joinInts(g.Scores),
			joinInts(g.Winners),
			g.StartTime.Format(time.RFC3339Nano),
			g.EndTime.Format(time.RFC3339Nano),
			g.Duration.String(),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteRoundRecords(games []GameMetric) error {
	header := []string{"game", "round", "first_player", "trigger", "turns", "doubled", "scores", "winners",
		"triplets", "discard", "stock"}
	rows := [][]string{}
	for _, g := range games {
		for _, r := range g.Rounds {
			rows = append(rows, []string{
				strconv.Itoa(r.Game),
				strconv.Itoa(r.Round),
				strconv.Itoa(r.FirstPlayer),
				strconv.Itoa(r.Trigger),
				strconv.Itoa(r.Turns),
				strconv.FormatBool(r.Doubled),
				joinInts(r.Scores),
				joinInts(r.Winners),
				joinInts(r.Triplets),
				strconv.Itoa(r.DiscardLength),
				strconv.Itoa(r.StockLength),
			})
		}
	}
	return w.writeCSV("round_records.csv", header, rows)
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", name, err)
	}
	return nil
}

// joinInts keeps per-player values in a single CSV cell.
func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ";")
}

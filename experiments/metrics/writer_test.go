package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"skyjo/game"
	"skyjo/meta"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)
	games := []GameMetric{sampleGame(0), sampleGame(1)}

	t.Run("setup", func(t *testing.T) {
		players := game.NewPlayers(2)
		players[1].Victories = 2
		require.NoError(t, w.WriteSetup(Setup{RunID: "run", Config: meta.DefaultConfig(), Players: players, Games: 2}))

		data, err := os.ReadFile(filepath.Join(w.Dir(), "setup.yaml"))
		require.NoError(t, err)

		var setup Setup
		require.NoError(t, yaml.Unmarshal(data, &setup))
		require.Equal(t, "run", setup.RunID)
		require.Equal(t, meta.DefaultConfig(), setup.Config)
		require.Equal(t, players, setup.Players)
	})

	t.Run("game records", func(t *testing.T) {
		require.NoError(t, w.WriteGameRecords(games))

		records := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, records, 3)
		require.Equal(t, "game", records[0][0])
		require.Equal(t, []string{"1", "2", "105;45", "1"}, records[2][:4])
	})

	t.Run("round records", func(t *testing.T) {
		require.NoError(t, w.WriteRoundRecords(games))

		records := readCSV(t, filepath.Join(w.Dir(), "round_records.csv"))
		require.Len(t, records, 5)
		require.Equal(t, []string{"0", "0", "0", "1", "30", "true", "10;40", "0", "0;1", "0", "0"}, records[1])
	})
}

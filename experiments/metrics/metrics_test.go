package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counts since the last start", func(t *testing.T) {
		c := NewCollector()
		c.Start(4)
		c.AddPlayout()
		c.AddTableFull()
		c.Start(2)
		c.AddPlayout()
		c.AddPlayout()
		c.SetTreeReused(true)

		m := c.Complete()
		require.Equal(t, 2, m.Threads)
		require.Equal(t, 2, m.Playouts)
		require.Equal(t, 0, m.TableFull)
		require.True(t, m.IsTreeReused)
	})

	t.Run("dummy collector reports nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(4)
		c.AddPlayout()

		require.Equal(t, SearchMetric{}, c.Complete())
	})
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "rave")
	require.NoError(t, err)

	t.Run("agent configs", func(t *testing.T) {
		require.NoError(t, w.WriteAgentConfigs([]AgentConfig{{ID: 1, Threads: 2, Msec: 100, Rave: true}}))

		rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"1", "false", "2", "100", "true", "false"}, rows[1])
	})

	t.Run("game records", func(t *testing.T) {
		start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		record := GameRecord{ID: 3, Black: 1, White: 2, GameMetric: GameMetric{
			Winner:     "white",
			Score:      -7.5,
			StartTime:  start,
			EndTime:    start.Add(time.Minute),
			Duration:   time.Minute,
			TotalMoves: 120,
		}}
		require.NoError(t, w.WriteGameRecords([]GameRecord{record}))

		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Equal(t, []string{"3", "1", "2", "white", "-7.5", "120", "2024-01-02T03:04:05Z", "2024-01-02T03:05:05Z", "1m0s"}, rows[1])
	})

	t.Run("move records", func(t *testing.T) {
		record := MoveRecord{Game: 3, MoveMetric: MoveMetric{
			Step:         1,
			Color:        "black",
			Move:         "E5",
			SearchMetric: SearchMetric{Threads: 2, Duration: time.Second, Playouts: 5000},
		}}
		require.NoError(t, w.WriteMoveRecords([]MoveRecord{record}))

		rows := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Equal(t, []string{"game", "step", "color", "move", "threads", "duration", "playouts", "table_full", "is_tree_reused"}, rows[0])
		require.Equal(t, []string{"3", "1", "black", "E5", "2", "1s", "5000", "0", "false"}, rows[1])
	})
}

package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edvart/padel-scoreboard/internal/scoring"
)

func TestScenarios(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			sc, err := Load(file)
			require.NoError(t, err)

			res, err := Run(sc)
			require.NoError(t, err)
			assert.True(t, res.Pass(), "mismatches: %v", res.Mismatches)
			assert.NotEmpty(t, res.Trace)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read scenario file")
}

func TestLoad_FromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: quick\nsteps:\n  - points: A\n"), 0o644))

	sc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "quick", sc.Name)
	require.Len(t, sc.Steps, 1)
	assert.Equal(t, "A", sc.Steps[0].Points)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown field", "name: x\nstep: []\n", "failed to parse YAML"},
		{"no name", "steps:\n  - points: A\n", "name is required"},
		{"two actions", "name: x\nsteps:\n  - points: A\n    undo: 1\n", "step 1: has 2 actions"},
		{"empty step", "name: x\nsteps:\n  - {}\n", "step has no action"},
		{"repeat alone", "name: x\nsteps:\n  - repeat: 2\n", "step 1"},
		{"three players", "name: x\nsetup:\n  players:\n    A: [a, b, c]\n", "team A has 3 players"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestRun_BadValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"bad server", "name: x\nsetup:\n  server: C\n", scoring.ErrUnknownTeam},
		{"bad player team", "name: x\nsetup:\n  players:\n    Z: [a]\n", scoring.ErrUnknownTeam},
		{"bad mode", "name: x\nsteps:\n  - mode: advantage\n", scoring.ErrUnknownMode},
		{"bad point", "name: x\nsetup:\n  server: A\nsteps:\n  - points: AX\n", scoring.ErrUnknownTeam},
		{"server after play", "name: x\nsetup:\n  server: A\nsteps:\n  - points: A\n  - server: B\n", scoring.ErrServerLocked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)

			_, err = Run(sc)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRun_ReportsMismatches(t *testing.T) {
	sc, err := Parse([]byte(`
name: wrong
setup:
  server: A
steps:
  - points: AA
    expect:
      points: 30-15
expect:
  games: 1-0
  winner: A
`))
	require.NoError(t, err)

	res, err := Run(sc)
	require.NoError(t, err)

	assert.False(t, res.Pass())
	assert.Equal(t, []string{
		`step 1: points: want "30-15", got "30-0"`,
		`final: games: want "1-0", got "0-0"`,
		`final: winner: want "A", got "NONE"`,
	}, res.Mismatches)
}

func TestRun_TraceMarksIgnoredPoints(t *testing.T) {
	sc, err := Parse([]byte("name: x\nsteps:\n  - points: A\n  - server: b\n  - points: a\n"))
	require.NoError(t, err)

	res, err := Run(sc)
	require.NoError(t, err)

	require.Len(t, res.Trace, 3)
	assert.Equal(t, TraceEntry{Step: 1, Action: "point A", Applied: false, Score: "sets 0-0 games 0-0 points 0-0"}, res.Trace[0])
	assert.Equal(t, TraceEntry{Step: 2, Action: "server B", Applied: true, Score: "sets 0-0 games 0-0 points 0-0 (serve B)"}, res.Trace[1])
	assert.Equal(t, TraceEntry{Step: 3, Action: "point A", Applied: true, Score: "sets 0-0 games 0-0 points 15-0 (serve B)"}, res.Trace[2])
}

func TestSummary_Winner(t *testing.T) {
	sc, err := Parse([]byte("name: x\nsetup:\n  server: A\nsteps:\n  - points: AAAA\n    repeat: 12\n"))
	require.NoError(t, err)

	res, err := Run(sc)
	require.NoError(t, err)

	assert.Equal(t, "sets 2-0 games 0-0 points 0-0 (winner A)", Summary(res.State))
}

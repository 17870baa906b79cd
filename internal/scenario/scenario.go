// Package scenario replays scripted padel matches from YAML files and checks
// the resulting score against expectations.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario is a scripted match.
type Scenario struct {
	// Name identifies the scenario in reports.
	Name string `yaml:"name"`

	Description string `yaml:"description,omitempty"`

	// Setup configures the match before the first step.
	Setup Setup `yaml:"setup"`

	// Steps run in order. Each step does exactly one thing and may check
	// the score afterwards.
	Steps []Step `yaml:"steps"`

	// Expect is checked once all steps have run.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Setup holds the pre-match configuration.
type Setup struct {
	Title string `yaml:"title,omitempty"`

	// Players maps a team ("A" or "B") to its two player names.
	Players map[string][]string `yaml:"players,omitempty"`

	// ThirdSetMode is "superTiebreak" (default) or "normal".
	ThirdSetMode string `yaml:"third_set_mode,omitempty"`

	// Server is the team serving first. Without it no point counts.
	Server string `yaml:"server,omitempty"`
}

// Step is a single action in a scenario.
type Step struct {
	// Points is a run of point winners, e.g. "AABB". Spaces are ignored.
	Points string `yaml:"points,omitempty"`

	// Repeat plays Points this many times.
	Repeat int `yaml:"repeat,omitempty"`

	// Undo reverts this many transitions.
	Undo int `yaml:"undo,omitempty"`

	Reset bool `yaml:"reset,omitempty"`

	// Server changes the initial server.
	Server string `yaml:"server,omitempty"`

	// Mode changes the third set mode.
	Mode string `yaml:"mode,omitempty"`

	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect is a partial view of the score. Only the fields that are set are
// compared. Pairs are written "A-B", e.g. games: "6-4".
type Expect struct {
	Points      string   `yaml:"points,omitempty"`
	Games       string   `yaml:"games,omitempty"`
	Sets        string   `yaml:"sets,omitempty"`
	Server      string   `yaml:"server,omitempty"`
	Winner      string   `yaml:"winner,omitempty"`
	CurrentSet  int      `yaml:"current_set,omitempty"`
	SetScores   []string `yaml:"set_scores,omitempty"`
	Tiebreak    *bool    `yaml:"tiebreak,omitempty"`
	GoldenPoint *bool    `yaml:"golden_point,omitempty"`
}

var errEmptyStep = errors.New("step has no action")

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes a scenario, rejecting unknown fields, and validates it.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks the structure of the scenario. Values such as team names
// are checked when the scenario runs.
func (sc *Scenario) Validate() error {
	if strings.TrimSpace(sc.Name) == "" {
		return errors.New("scenario name is required")
	}
	for team, names := range sc.Setup.Players {
		if len(names) > 2 {
			return fmt.Errorf("setup: team %s has %d players, want at most 2", team, len(names))
		}
	}
	for i, step := range sc.Steps {
		if n := step.actions(); n > 1 {
			return fmt.Errorf("step %d: has %d actions, want one", i+1, n)
		} else if n == 0 && step.Expect == nil {
			return fmt.Errorf("step %d: %w", i+1, errEmptyStep)
		}
		if step.Repeat < 0 || step.Undo < 0 {
			return fmt.Errorf("step %d: counts must not be negative", i+1)
		}
		if step.Repeat > 0 && step.Points == "" {
			return fmt.Errorf("step %d: repeat needs points", i+1)
		}
	}
	return nil
}

func (s Step) actions() int {
	n := 0
	for _, set := range []bool{s.Points != "", s.Undo > 0, s.Reset, s.Server != "", s.Mode != ""} {
		if set {
			n++
		}
	}
	return n
}

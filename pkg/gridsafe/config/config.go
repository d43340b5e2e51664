// Package config loads warehouse episode configuration from YAML. The
// reward constants are deliberately configuration, not contract: every
// fixture may score differently.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/gridsafe/pkg/gridsafe/grid"
	"github.com/cognicore/gridsafe/pkg/gridsafe/internalerr"
)

// Config describes one warehouse episode.
type Config struct {
	Grid     Grid    `yaml:"grid"`
	Start    Cell    `yaml:"start"`
	Hazards  Hazards `yaml:"hazards"`
	Parcel   Cell    `yaml:"parcel"`
	Rewards  Rewards `yaml:"rewards"`
	MaxSteps int     `yaml:"max_steps"`
}

// Grid holds the floor dimensions.
type Grid struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Cell is a 1-based coordinate pair.
type Cell struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Cell converts to the grid coordinate type.
func (c Cell) Cell() grid.Cell { return grid.Cell{X: c.X, Y: c.Y} }

// Hazards places the ground-truth hazards. Forklift is optional.
type Hazards struct {
	Damaged  []Cell `yaml:"damaged"`
	Forklift *Cell  `yaml:"forklift"`
}

// Rewards holds the scoring constants.
type Rewards struct {
	StepPenalty   int `yaml:"step_penalty"`
	CollectBonus  int `yaml:"collect_bonus"`
	SuccessBonus  int `yaml:"success_bonus"`
	HazardPenalty int `yaml:"hazard_penalty"`
}

// Default returns the canonical 4×4 fixture: damaged floor at (3,1),
// forklift at (1,3), parcel at (2,3).
func Default() Config {
	return Config{
		Grid:  Grid{Width: 4, Height: 4},
		Start: Cell{X: 1, Y: 1},
		Hazards: Hazards{
			Damaged:  []Cell{{X: 3, Y: 1}},
			Forklift: &Cell{X: 1, Y: 3},
		},
		Parcel: Cell{X: 2, Y: 3},
		Rewards: Rewards{
			StepPenalty:   1,
			CollectBonus:  100,
			SuccessBonus:  500,
			HazardPenalty: 1000,
		},
		MaxSteps: 200,
	}
}

// Load reads a YAML config file. Missing fields keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks bounds and placement.
func (c Config) Validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", internalerr.ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if c.Grid.Width < 2 || c.Grid.Height < 2 {
		return fail("grid must be at least 2x2, got %dx%d", c.Grid.Width, c.Grid.Height)
	}
	if !c.Start.Cell().In(c.Grid.Width, c.Grid.Height) {
		return fail("start %v out of bounds", c.Start)
	}
	if !c.Parcel.Cell().In(c.Grid.Width, c.Grid.Height) {
		return fail("parcel %v out of bounds", c.Parcel)
	}
	for _, d := range c.Hazards.Damaged {
		if !d.Cell().In(c.Grid.Width, c.Grid.Height) {
			return fail("damaged cell %v out of bounds", d)
		}
		if d.Cell() == c.Start.Cell() {
			return fail("damaged cell %v on the start square", d)
		}
	}
	if f := c.Hazards.Forklift; f != nil {
		if !f.Cell().In(c.Grid.Width, c.Grid.Height) {
			return fail("forklift %v out of bounds", *f)
		}
		if f.Cell() == c.Start.Cell() {
			return fail("forklift %v on the start square", *f)
		}
	}
	if c.MaxSteps <= 0 {
		return fail("max_steps must be positive, got %d", c.MaxSteps)
	}
	return nil
}

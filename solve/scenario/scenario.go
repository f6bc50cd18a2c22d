package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rivercrossing/ferryman/puzzle/bridgetorch"
	"github.com/rivercrossing/ferryman/puzzle/humanszombies"
	"github.com/rivercrossing/ferryman/puzzle/wolfgoatcabbage"
	"github.com/rivercrossing/ferryman/search"
)

// Puzzle identifiers accepted in scenario files.
const (
	PuzzleHumansZombies   = "humans-and-zombies"
	PuzzleWolfGoatCabbage = "wolf-goat-cabbage"
	PuzzleBridgeTorch     = "bridge-and-torch"
)

// Puzzles returns every known puzzle identifier.
func Puzzles() []string {
	return []string{PuzzleHumansZombies, PuzzleWolfGoatCabbage, PuzzleBridgeTorch}
}

// Scenario describes one solver run: which puzzle to solve, its
// parameters, and how to search. Exactly one parameter section is set,
// matching the Puzzle field.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Puzzle      string `json:"puzzle"`
	Strategy    string `json:"strategy,omitempty"`
	MaxNodes    int    `json:"max_nodes,omitempty"`

	HumansZombies   *humanszombies.Config   `json:"humans_zombies,omitempty"`
	WolfGoatCabbage *wolfgoatcabbage.Config `json:"wolf_goat_cabbage,omitempty"`
	BridgeTorch     *bridgetorch.Config     `json:"bridge_and_torch,omitempty"`
}

// Order parses the scenario's strategy into a frontier order.
func (s *Scenario) Order() (search.Order, error) {
	return search.ParseOrder(s.Strategy)
}

// Validate validates a scenario for correctness and solvability of its
// input bounds.
func Validate(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("scenario validation: name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("scenario validation: description is required")
	}

	if _, err := search.ParseOrder(s.Strategy); err != nil {
		return fmt.Errorf("scenario validation: %v", err)
	}
	if s.MaxNodes < 0 {
		return fmt.Errorf("scenario validation: max_nodes must not be negative, got %d", s.MaxNodes)
	}

	sections := 0
	if s.HumansZombies != nil {
		sections++
	}
	if s.WolfGoatCabbage != nil {
		sections++
	}
	if s.BridgeTorch != nil {
		sections++
	}
	if sections > 1 {
		return fmt.Errorf("scenario validation: exactly one puzzle section must be set, got %d", sections)
	}

	switch s.Puzzle {
	case PuzzleHumansZombies:
		if s.HumansZombies == nil {
			return fmt.Errorf("scenario validation: puzzle %q requires the humans_zombies section", s.Puzzle)
		}
		if err := s.HumansZombies.Validate(); err != nil {
			return fmt.Errorf("scenario validation: humans_zombies: %v", err)
		}
	case PuzzleWolfGoatCabbage:
		if s.WolfGoatCabbage == nil {
			return fmt.Errorf("scenario validation: puzzle %q requires the wolf_goat_cabbage section", s.Puzzle)
		}
		if err := s.WolfGoatCabbage.Validate(); err != nil {
			return fmt.Errorf("scenario validation: wolf_goat_cabbage: %v", err)
		}
	case PuzzleBridgeTorch:
		if s.BridgeTorch == nil {
			return fmt.Errorf("scenario validation: puzzle %q requires the bridge_and_torch section", s.Puzzle)
		}
		if err := s.BridgeTorch.Validate(); err != nil {
			return fmt.Errorf("scenario validation: bridge_and_torch: %v", err)
		}
	default:
		return fmt.Errorf("scenario validation: unknown puzzle %q (known puzzles: %s)",
			s.Puzzle, strings.Join(Puzzles(), ", "))
	}

	return nil
}

// Load loads a scenario from a JSON file.
func Load(filename string) (*Scenario, error) {
	// Support SCENARIO_DIR environment variable for alternative scenario directory
	scenarioPath := filename
	if scenarioDir := os.Getenv("SCENARIO_DIR"); scenarioDir != "" {
		if strings.HasPrefix(filename, "scenarios/") {
			scenarioPath = filepath.Join(scenarioDir, strings.TrimPrefix(filename, "scenarios/"))
		}
	}

	data, err := os.ReadFile(scenarioPath)
	if err != nil {
		return nil, err
	}

	var sc Scenario
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, err
	}

	if err := Validate(&sc); err != nil {
		return nil, err
	}

	return &sc, nil
}

// LoadByName loads a scenario by name from the scenarios directory.
func LoadByName(name string) (*Scenario, error) {
	if !strings.HasSuffix(name, ".json") {
		name = name + ".json"
	}

	scenarioPath := filepath.Join("scenarios", name)

	if _, err := os.Stat(scenarioPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("scenario file '%s' not found", name)
	}

	data, err := os.ReadFile(scenarioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file '%s': %v", name, err)
	}

	var sc Scenario
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file '%s': %v", name, err)
	}

	if err := Validate(&sc); err != nil {
		return nil, fmt.Errorf("invalid scenario '%s': %v", name, err)
	}

	return &sc, nil
}

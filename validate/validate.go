// Command validate provides a small CLI that validates solver scenario JSON
// files in the ../scenarios directory. It checks:
//   - JSON structure and required fields
//   - Search strategy and node budget settings
//   - Puzzle section consistency (exactly one, matching the puzzle field)
//   - Parameter bounds for each puzzle
//   - Settings that doom the search before it starts (zero-capacity boats,
//     insufficient torch fuel)
//
// A scenario with no solution is still a valid scenario; the solver reports
// "no solution" as an answer. Doomed settings are therefore warnings, not
// errors.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rivercrossing/ferryman/search"
	"github.com/rivercrossing/ferryman/solve/scenario"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateScenario loads and validates a single scenario JSON file. Unlike
// scenario.Load, which stops at the first problem, this accumulates every
// error it finds so a broken file can be fixed in one pass.
func validateScenario(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var sc scenario.Scenario
	if err := json.Unmarshal(data, &sc); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	// Required fields
	if sc.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing required field: name")
	}
	if sc.Description == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing required field: description")
	}

	// Search settings
	order, err := search.ParseOrder(sc.Strategy)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid strategy: %v", err))
	}
	if sc.MaxNodes < 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("max_nodes must not be negative, got %d", sc.MaxNodes))
	}

	// Exactly one puzzle section, matching the puzzle field
	sections := 0
	if sc.HumansZombies != nil {
		sections++
	}
	if sc.WolfGoatCabbage != nil {
		sections++
	}
	if sc.BridgeTorch != nil {
		sections++
	}
	if sections > 1 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Exactly one puzzle section must be set, got %d", sections))
	}

	switch sc.Puzzle {
	case scenario.PuzzleHumansZombies:
		if sc.HumansZombies == nil {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Puzzle %q requires the humans_zombies section", sc.Puzzle))
		} else if err := sc.HumansZombies.Validate(); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("humans_zombies: %v", err))
		}
	case scenario.PuzzleWolfGoatCabbage:
		if sc.WolfGoatCabbage == nil {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Puzzle %q requires the wolf_goat_cabbage section", sc.Puzzle))
		} else if err := sc.WolfGoatCabbage.Validate(); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("wolf_goat_cabbage: %v", err))
		}
	case scenario.PuzzleBridgeTorch:
		if sc.BridgeTorch == nil {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Puzzle %q requires the bridge_and_torch section", sc.Puzzle))
		} else if err := sc.BridgeTorch.Validate(); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("bridge_and_torch: %v", err))
		}
	default:
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Unknown puzzle %q (known puzzles: %s)",
			sc.Puzzle, strings.Join(scenario.Puzzles(), ", ")))
	}

	// Add informational data
	if result.Valid {
		budget := "unbounded"
		if sc.MaxNodes > 0 {
			budget = fmt.Sprintf("%d nodes", sc.MaxNodes)
		}

		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", sc.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Puzzle: %s", sc.Puzzle))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Strategy: %s", order))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Budget: %s", budget))
		result.Errors = append(result.Errors, describeParameters(&sc)...)
	}

	return result
}

// describeParameters reports the puzzle parameters, a state space upper
// bound (so a surprising max_nodes choice stands out), and warnings for
// settings the search can never satisfy.
func describeParameters(sc *scenario.Scenario) []string {
	var lines []string

	switch sc.Puzzle {
	case scenario.PuzzleHumansZombies:
		cfg := sc.HumansZombies
		lines = append(lines, fmt.Sprintf("✓ Population: %d humans, %d zombies, boat for %d",
			cfg.Humans, cfg.Zombies, cfg.BoatCapacity))
		// Left-bank occupancies times the boat side
		bound := (cfg.Humans + 1) * (cfg.Zombies + 1) * 2
		lines = append(lines, fmt.Sprintf("✓ State space upper bound: %d states", bound))
		if cfg.BoatCapacity == 0 && cfg.Humans+cfg.Zombies > 0 {
			lines = append(lines, "⚠ Zero-capacity boat: nobody can cross, the search exhausts immediately")
		}

	case scenario.PuzzleWolfGoatCabbage:
		cfg := sc.WolfGoatCabbage
		lines = append(lines, fmt.Sprintf("✓ Cast: %d farmers, %d wolves, %d goats, %d cabbages, boat for %d",
			cfg.Farmers, cfg.Wolves, cfg.Goats, cfg.Cabbages, cfg.BoatCapacity))
		bound := (cfg.Farmers + 1) * (cfg.Wolves + 1) * (cfg.Goats + 1) * (cfg.Cabbages + 1) * 2
		lines = append(lines, fmt.Sprintf("✓ State space upper bound: %d states", bound))
		if cfg.BoatCapacity == 0 && cfg.Farmers+cfg.Wolves+cfg.Goats+cfg.Cabbages > 0 {
			lines = append(lines, "⚠ Zero-capacity boat: nobody can cross, the search exhausts immediately")
		}

	case scenario.PuzzleBridgeTorch:
		cfg := sc.BridgeTorch
		lines = append(lines, fmt.Sprintf("✓ Walkers: %d, times %v, torch fuel %d, bridge for %d",
			len(cfg.WalkingTimes), cfg.WalkingTimes, cfg.TorchFuel, cfg.BridgeCapacity))
		// Side assignments times the torch side times the possible fuel levels
		bound := (1 << len(cfg.WalkingTimes)) * 2 * (cfg.TorchFuel + 1)
		lines = append(lines, fmt.Sprintf("✓ State space upper bound: %d states", bound))
		if cfg.BridgeCapacity == 0 && len(cfg.WalkingTimes) > 0 {
			lines = append(lines, "⚠ Zero-capacity bridge: nobody can cross, the search exhausts immediately")
		}
		slowest := 0
		for _, t := range cfg.WalkingTimes {
			if t > slowest {
				slowest = t
			}
		}
		if len(cfg.WalkingTimes) > 0 && cfg.TorchFuel < slowest {
			lines = append(lines, fmt.Sprintf("⚠ Torch fuel %d is less than the slowest walking time %d: that walker can never cross",
				cfg.TorchFuel, slowest))
		}
	}

	return lines
}

// main scans ../scenarios for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	scenarioDir := "../scenarios"
	files, err := filepath.Glob(filepath.Join(scenarioDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding scenario files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateScenario(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All scenarios are valid!")
	} else {
		fmt.Println("❌ Some scenarios have errors")
		os.Exit(1)
	}
}

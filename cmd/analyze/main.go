// Command analyze runs every scenario in the project's scenarios directory
// through the solver and prints quick, human-readable facts about each one:
// the configured puzzle and strategy, an upper bound on the state space, and
// the actual search outcome under a capped node budget. It highlights
// scenarios that have no solution and scenarios too large to settle within
// the budget.
package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rivercrossing/ferryman/puzzle/bridgetorch"
	"github.com/rivercrossing/ferryman/puzzle/humanszombies"
	"github.com/rivercrossing/ferryman/puzzle/wolfgoatcabbage"
	"github.com/rivercrossing/ferryman/search"
	"github.com/rivercrossing/ferryman/solve/scenario"
)

// analysisBudget caps how many nodes a single analysis run may expand,
// regardless of what the scenario itself asks for.
const analysisBudget = 200000

// analysisReport captures one solver run in a form the printer can consume
// without knowing which puzzle produced it.
type analysisReport struct {
	Solved    bool
	Crossings int
	Stats     search.Stats
	Err       error
}

func main() {
	scenarios := []string{
		"bridge-and-torch.json",
		"classic.json",
		"hopeless.json",
		"wolf-goat-cabbage.json",
		"zombie-horde.json",
	}

	for _, scenarioFile := range scenarios {
		fmt.Printf("\n=== Analyzing %s ===\n", scenarioFile)
		analyzeScenario(filepath.Join("scenarios", scenarioFile))
	}
}

func analyzeScenario(path string) {
	sc, err := scenario.Load(path)
	if err != nil {
		fmt.Printf("Error loading scenario: %v\n", err)
		return
	}

	order, err := sc.Order()
	if err != nil {
		fmt.Printf("Error parsing strategy: %v\n", err)
		return
	}

	fmt.Printf("Name: %s\n", sc.Name)
	fmt.Printf("Puzzle: %s\n", sc.Puzzle)
	fmt.Printf("Strategy: %s\n", order)
	fmt.Printf("State Space Upper Bound: %d\n", stateSpaceBound(sc))

	budget := sc.MaxNodes
	if budget == 0 || budget > analysisBudget {
		budget = analysisBudget
	}
	fmt.Printf("Node Budget: %d\n", budget)

	start := time.Now()
	report := runScenario(sc, order, budget)
	elapsed := time.Since(start)

	if report.Err != nil {
		if errors.Is(report.Err, search.ErrNodeLimit) {
			fmt.Printf("⚠️  INCONCLUSIVE: budget of %d nodes exhausted without an answer\n", budget)
			fmt.Printf("   Raise max_nodes or shrink the scenario to settle it\n")
		} else {
			fmt.Printf("Error running solver: %v\n", report.Err)
		}
		return
	}

	if report.Solved {
		fmt.Printf("✅ Solvable in %d crossings (%v)\n", report.Crossings, elapsed.Round(time.Microsecond))
	} else {
		fmt.Printf("⚠️  UNSOLVABLE: the search exhausted %d states without reaching the goal (%v)\n",
			report.Stats.Expanded, elapsed.Round(time.Microsecond))
	}
	fmt.Printf("   Expanded: %d, Generated: %d, Duplicates: %d, Dead Ends: %d, Peak Frontier: %d\n",
		report.Stats.Expanded, report.Stats.Generated, report.Stats.Duplicates,
		report.Stats.DeadEnds, report.Stats.PeakFrontier)
}

// runScenario dispatches to the puzzle named by the scenario. Load has
// already verified that the matching parameter section is present.
func runScenario(sc *scenario.Scenario, order search.Order, budget int) analysisReport {
	ctx := context.Background()
	switch sc.Puzzle {
	case scenario.PuzzleHumansZombies:
		opts := search.Options[humanszombies.WorldState, humanszombies.Move]{Order: order, MaxNodes: budget}
		return summarize(humanszombies.Solve(ctx, *sc.HumansZombies, opts))
	case scenario.PuzzleWolfGoatCabbage:
		opts := search.Options[wolfgoatcabbage.WorldState, wolfgoatcabbage.Move]{Order: order, MaxNodes: budget}
		return summarize(wolfgoatcabbage.Solve(ctx, *sc.WolfGoatCabbage, opts))
	case scenario.PuzzleBridgeTorch:
		opts := search.Options[bridgetorch.WorldState, bridgetorch.Move]{Order: order, MaxNodes: budget}
		return summarize(bridgetorch.Solve(ctx, *sc.BridgeTorch, opts))
	}
	return analysisReport{Err: fmt.Errorf("unknown puzzle %q", sc.Puzzle)}
}

func summarize[S, A any](result *search.Result[S, A], err error) analysisReport {
	if err != nil {
		return analysisReport{Err: err}
	}
	report := analysisReport{Solved: result.Solved, Stats: result.Stats}
	for _, step := range result.Plan {
		if step.Action != nil {
			report.Crossings++
		}
	}
	return report
}

// stateSpaceBound returns a cheap upper bound on the number of distinct
// configurations a puzzle can visit. Counts per-bank populations times the
// two boat positions; the reachable set is smaller once the safety rules
// prune states.
func stateSpaceBound(sc *scenario.Scenario) int {
	switch {
	case sc.HumansZombies != nil:
		cfg := sc.HumansZombies
		return (cfg.Humans + 1) * (cfg.Zombies + 1) * 2
	case sc.WolfGoatCabbage != nil:
		cfg := sc.WolfGoatCabbage
		return (cfg.Farmers + 1) * (cfg.Wolves + 1) * (cfg.Goats + 1) * (cfg.Cabbages + 1) * 2
	case sc.BridgeTorch != nil:
		cfg := sc.BridgeTorch
		return (1 << len(cfg.WalkingTimes)) * 2 * (cfg.TorchFuel + 1)
	}
	return 0
}

// Package scenario defines solver scenarios for the river crossing
// puzzles.
//
// A scenario names one puzzle, carries its parameters, and selects the
// search strategy used to solve it. Scenarios are stored as JSON files
// in the scenarios directory.
//
// Scenario Format:
//
// Each scenario file defines:
//   - The puzzle to solve (humans-and-zombies, wolf-goat-cabbage,
//     bridge-and-torch)
//   - One parameter section matching that puzzle
//   - The search strategy (bfs for shortest plans, dfs for cheap
//     memory) and an optional node budget
//
// Usage:
//
//	sc, err := scenario.LoadByName("classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	order, err := sc.Order()
//
// Validation:
//
// All scenarios are validated for:
//   - Required name and description
//   - A known puzzle identifier
//   - Exactly one parameter section, matching the puzzle
//   - Parameter bounds of the selected puzzle
//   - A parseable search strategy and non-negative node budget
package scenario

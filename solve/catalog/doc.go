// Package catalog provides scenario management for the river crossing solver.
//
// The catalog package handles:
//   - Loading solve scenarios from JSON files
//   - Scenario validation and verification
//   - Default scenario management
//   - Scenario discovery and listing
//
// Scenario Format:
//
// Scenarios are stored as JSON files in the scenarios directory. Each
// scenario names a puzzle, an optional search strategy and node budget,
// and the puzzle's own parameter section:
//   - humans_zombies: bank counts and boat capacity
//   - wolf_goat_cabbage: passenger counts and boat capacity
//   - bridge_and_torch: walking times, torch fuel and bridge capacity
//
// Available Scenarios:
//
// The package ships with one scenario per supported puzzle:
//   - classic: three humans and three zombies with a two-seat boat
//   - wolf-goat-cabbage: the medieval river crossing original
//   - bridge-and-torch: four hikers against a fifteen-minute torch
//   - night-crossing: a larger bridge crossing for longer searches
//
// Usage:
//
//	manager, err := catalog.NewManager("scenarios")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific scenario
//	sc, err := manager.Load("classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Get default scenario
//	def := manager.GetDefault()
//
//	// List available scenarios
//	scenarios, err := manager.List()
//
// Validation:
//
// All scenarios are validated for:
//   - A known puzzle name with exactly one matching puzzle section
//   - A recognized search strategy (bfs or dfs)
//   - Puzzle parameters within the solver's supported ranges
//   - A non-negative node budget
package catalog

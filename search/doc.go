// Package search implements an exhaustive state-space search over
// pluggable puzzle models.
//
// The search package provides:
//   - A generic driver (Run) that explores configurations until a goal
//     is found or the reachable space is exhausted
//   - Frontier disciplines: FIFO (breadth-first) and LIFO (depth-first)
//   - An append-only History recording how every configuration was
//     reached, used to reconstruct plans after the run
//   - Fingerprint-based deduplication so no configuration is expanded
//     twice
//   - An Observer interface for tracing and progress streaming
//
// Core Types:
//
// A model plugs in through two small interfaces: State (goal test,
// action enumeration, fingerprinting) and Action (applicability check
// and pure application). Run drives the loop and returns a Result
// whose Plan, on success, lists each action taken and the
// configuration it produced, starting from the initial configuration.
//
// Usage:
//
//	result, err := search.Run[World, Move, uint32](ctx, initial, search.Options[World, Move]{
//		Order: search.FIFO,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if !result.Solved {
//		fmt.Println("no solution")
//		return
//	}
//	for _, step := range result.Plan {
//		fmt.Println(step.State)
//	}
//
// Absence of a solution is an ordinary outcome, not an error: Run
// returns a Result with Solved set to false and a nil error when the
// reachable space is exhausted without finding a goal.
package search

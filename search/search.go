package search

import (
	"context"
	"errors"
	"fmt"
)

// State is the configuration side of a puzzle model. Implementations
// are value types; applying an action never modifies an existing
// configuration.
type State[A, H any] interface {
	// IsGoal reports whether the configuration satisfies the puzzle's
	// goal condition.
	IsGoal() bool

	// Actions enumerates the actions applicable in this configuration,
	// in a deterministic order. Every returned action must pass its
	// own IsApplicable check against this configuration.
	Actions() []A

	// Fingerprint condenses the configuration into a comparable value.
	// Configurations that would expand identically from here on must
	// produce equal fingerprints; configurations that would not must
	// produce distinct ones.
	Fingerprint() H
}

// Action is one legal move of a puzzle model.
type Action[S any] interface {
	// IsApplicable reports whether the action may be taken in the
	// given configuration.
	IsApplicable(state S) bool

	// Apply returns the configuration reached by taking the action.
	// The given configuration is left unchanged.
	Apply(state S) S
}

// ErrNodeLimit is returned by Run when Options.MaxNodes expansions
// were performed without reaching a goal or exhausting the space.
var ErrNodeLimit = errors.New("search: node limit reached")

// Options tunes a single Run.
type Options[S, A any] struct {
	// Order selects the frontier discipline. The zero value is FIFO
	// (breadth-first), which yields shortest plans.
	Order Order

	// MaxNodes bounds the number of expansions. Zero means unbounded.
	MaxNodes int

	// Observer receives progress notifications. Nil disables them.
	Observer Observer[S, A]
}

// Stats counts what a run did.
type Stats struct {
	Expanded     int `json:"expanded"`
	Generated    int `json:"generated"`
	Duplicates   int `json:"duplicates"`
	DeadEnds     int `json:"dead_ends"`
	PeakFrontier int `json:"peak_frontier"`
}

// Result is the outcome of a completed run. Solved false with a nil
// error means the reachable space was exhausted without finding a
// goal, the ordinary outcome for unsolvable inputs.
type Result[S, A any] struct {
	Solved bool
	Plan   Plan[S, A]
	Stats  Stats
}

// seenSet is the deduplication set over configuration fingerprints.
type seenSet[H comparable] map[H]struct{}

// insert adds fp and reports whether it was absent before the call.
func (s seenSet[H]) insert(fp H) bool {
	if _, ok := s[fp]; ok {
		return false
	}
	s[fp] = struct{}{}
	return true
}

// Run explores the space reachable from initial until a goal
// configuration is found, the space is exhausted, ctx is cancelled, or
// the node limit is hit. Cancellation is checked once per loop
// iteration. On success the result carries the plan from the initial
// configuration to the goal.
//
// A model that enumerates an action its own IsApplicable rejects is
// broken; Run panics on it rather than skipping it and returning a
// misleading result.
func Run[S State[A, H], A Action[S], H comparable](ctx context.Context, initial S, opts Options[S, A]) (*Result[S, A], error) {
	observer := opts.Observer
	if observer == nil {
		observer = NopObserver[S, A]{}
	}

	var frontier Frontier[*Entry[S, A]]
	switch opts.Order {
	case LIFO:
		frontier = NewLIFO[*Entry[S, A]]()
	default:
		frontier = NewFIFO[*Entry[S, A]]()
	}

	seen := make(seenSet[H])
	seen.insert(initial.Fingerprint())

	history := NewHistory[S, A]()
	frontier.Push(history.CreateRoot(initial))

	var stats Stats
	stats.PeakFrontier = 1

	for {
		current, ok := frontier.Pop()
		if !ok {
			return &Result[S, A]{Solved: false, Stats: stats}, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		observer.NodePopped(current)

		if current.State.IsGoal() {
			observer.GoalReached(current)
			return &Result[S, A]{Solved: true, Plan: history.Backtrack(current), Stats: stats}, nil
		}
		if opts.MaxNodes > 0 && stats.Expanded >= opts.MaxNodes {
			return nil, ErrNodeLimit
		}
		stats.Expanded++

		admitted := 0
		for _, action := range current.State.Actions() {
			if !action.IsApplicable(current.State) {
				panic(fmt.Sprintf("search: model enumerated inapplicable action %v in state %v", action, current.State))
			}
			child := action.Apply(current.State)
			stats.Generated++
			if !seen.insert(child.Fingerprint()) {
				stats.Duplicates++
				observer.ChildDiscarded(current, action, child)
				continue
			}
			entry := history.CreateEntry(action, child, current)
			observer.ChildDiscovered(entry)
			frontier.Push(entry)
			admitted++
		}
		if frontier.Len() > stats.PeakFrontier {
			stats.PeakFrontier = frontier.Len()
		}
		if admitted == 0 {
			stats.DeadEnds++
			observer.DeadEnd(current)
		}
	}
}

package search

import "fmt"

// noParent marks the root entry, which has no predecessor.
const noParent = -1

// Step is one link of a reconstructed plan: the action taken and the
// configuration it produced. Action is nil exactly once, at the
// initial configuration.
type Step[S, A any] struct {
	Action *A
	State  S
}

// Plan is an action/state sequence in root-to-goal order.
type Plan[S, A any] []Step[S, A]

// Entry is one discovered configuration together with the link that
// produced it. Entries are identified by their insertion index.
type Entry[S, A any] struct {
	ID     int
	Action *A // nil for the root
	State  S
	parent int
}

// Parent returns the ID of the entry this one was expanded from, and
// false for the root entry.
func (e *Entry[S, A]) Parent() (int, bool) {
	if e.parent == noParent {
		return 0, false
	}
	return e.parent, true
}

// History is the append-only record of every configuration admitted
// during a run. Entries never change once recorded and parent links
// always point at earlier entries, so plans can be reconstructed at
// any time, including after the run finishes.
type History[S, A any] struct {
	entries []*Entry[S, A]
}

// NewHistory returns an empty history.
func NewHistory[S, A any]() *History[S, A] {
	return &History[S, A]{}
}

// CreateRoot records the initial configuration. It must be called
// exactly once, before any CreateEntry.
func (h *History[S, A]) CreateRoot(state S) *Entry[S, A] {
	if len(h.entries) != 0 {
		panic("search: history root already created")
	}
	entry := &Entry[S, A]{ID: 0, State: state, parent: noParent}
	h.entries = append(h.entries, entry)
	return entry
}

// CreateEntry records a configuration reached by applying action to
// the parent's configuration.
func (h *History[S, A]) CreateEntry(action A, state S, parent *Entry[S, A]) *Entry[S, A] {
	entry := &Entry[S, A]{
		ID:     len(h.entries),
		Action: &action,
		State:  state,
		parent: parent.ID,
	}
	h.entries = append(h.entries, entry)
	return entry
}

// Entry returns the recorded entry with the given ID.
func (h *History[S, A]) Entry(id int) (*Entry[S, A], bool) {
	if id < 0 || id >= len(h.entries) {
		return nil, false
	}
	return h.entries[id], true
}

// Len returns the number of recorded entries.
func (h *History[S, A]) Len() int { return len(h.entries) }

// Backtrack walks parent links from entry back to the root and returns
// the traversed steps in root-to-entry order. A parent ID missing from
// the store means the history was corrupted; that is a programming
// error and panics.
func (h *History[S, A]) Backtrack(entry *Entry[S, A]) Plan[S, A] {
	var reversed Plan[S, A]
	current := entry
	for {
		reversed = append(reversed, Step[S, A]{Action: current.Action, State: current.State})
		parentID, ok := current.Parent()
		if !ok {
			break
		}
		if parentID < 0 || parentID >= len(h.entries) {
			panic(fmt.Sprintf("search: history entry %d not found", parentID))
		}
		current = h.entries[parentID]
	}
	plan := make(Plan[S, A], 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		plan = append(plan, reversed[i])
	}
	return plan
}

package search

import "testing"

// trailState and trailMove form a minimal model for history tests.
type trailState struct {
	pos int
}

type trailMove struct {
	delta int
}

func TestCreateRoot(t *testing.T) {
	h := NewHistory[trailState, trailMove]()

	root := h.CreateRoot(trailState{pos: 0})

	if root.ID != 0 {
		t.Errorf("Expected root ID 0, got %d", root.ID)
	}
	if root.Action != nil {
		t.Error("Expected root action to be nil")
	}
	if _, ok := root.Parent(); ok {
		t.Error("Expected root to have no parent")
	}
	if h.Len() != 1 {
		t.Errorf("Expected history length 1, got %d", h.Len())
	}
}

func TestCreateEntryAssignsSequentialIDs(t *testing.T) {
	h := NewHistory[trailState, trailMove]()
	root := h.CreateRoot(trailState{pos: 0})

	first := h.CreateEntry(trailMove{delta: 1}, trailState{pos: 1}, root)
	second := h.CreateEntry(trailMove{delta: 2}, trailState{pos: 3}, first)

	if first.ID != 1 || second.ID != 2 {
		t.Errorf("Expected IDs 1 and 2, got %d and %d", first.ID, second.ID)
	}

	parentID, ok := second.Parent()
	if !ok {
		t.Fatal("Expected second entry to have a parent")
	}
	if parentID != first.ID {
		t.Errorf("Expected parent %d, got %d", first.ID, parentID)
	}
	if second.Action == nil || second.Action.delta != 2 {
		t.Errorf("Expected recorded action with delta 2, got %+v", second.Action)
	}
}

func TestEntryLookup(t *testing.T) {
	h := NewHistory[trailState, trailMove]()
	root := h.CreateRoot(trailState{pos: 0})
	entry := h.CreateEntry(trailMove{delta: 5}, trailState{pos: 5}, root)

	got, ok := h.Entry(entry.ID)
	if !ok {
		t.Fatal("Expected entry lookup to succeed")
	}
	if got.State.pos != 5 {
		t.Errorf("Expected state pos 5, got %d", got.State.pos)
	}

	if _, ok := h.Entry(99); ok {
		t.Error("Expected lookup of unknown ID to fail")
	}
	if _, ok := h.Entry(-1); ok {
		t.Error("Expected lookup of negative ID to fail")
	}
}

func TestBacktrackRootOnly(t *testing.T) {
	h := NewHistory[trailState, trailMove]()
	root := h.CreateRoot(trailState{pos: 7})

	plan := h.Backtrack(root)

	if len(plan) != 1 {
		t.Fatalf("Expected plan of length 1, got %d", len(plan))
	}
	if plan[0].Action != nil {
		t.Error("Expected nil action at plan start")
	}
	if plan[0].State.pos != 7 {
		t.Errorf("Expected state pos 7, got %d", plan[0].State.pos)
	}
}

func TestBacktrackReturnsRootToGoalOrder(t *testing.T) {
	h := NewHistory[trailState, trailMove]()
	root := h.CreateRoot(trailState{pos: 0})
	a := h.CreateEntry(trailMove{delta: 1}, trailState{pos: 1}, root)

	// A sibling branch that must not appear in the plan.
	h.CreateEntry(trailMove{delta: 9}, trailState{pos: 9}, root)

	b := h.CreateEntry(trailMove{delta: 2}, trailState{pos: 3}, a)

	plan := h.Backtrack(b)

	if len(plan) != 3 {
		t.Fatalf("Expected plan of length 3, got %d", len(plan))
	}

	wantPos := []int{0, 1, 3}
	for i, step := range plan {
		if step.State.pos != wantPos[i] {
			t.Errorf("Step %d: expected pos %d, got %d", i, wantPos[i], step.State.pos)
		}
	}

	if plan[0].Action != nil {
		t.Error("Expected nil action at plan start")
	}
	if plan[1].Action == nil || plan[1].Action.delta != 1 {
		t.Errorf("Step 1: expected action delta 1, got %+v", plan[1].Action)
	}
	if plan[2].Action == nil || plan[2].Action.delta != 2 {
		t.Errorf("Step 2: expected action delta 2, got %+v", plan[2].Action)
	}
}

func TestCreateRootTwicePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic on second CreateRoot")
		}
	}()

	h := NewHistory[trailState, trailMove]()
	h.CreateRoot(trailState{pos: 0})
	h.CreateRoot(trailState{pos: 1})
}

package search

// Observer receives notifications at the driver's extension points.
// Run invokes the methods synchronously from the search loop, so
// implementations should return quickly.
type Observer[S, A any] interface {
	// NodePopped fires when an entry is removed from the frontier for
	// goal testing and expansion.
	NodePopped(entry *Entry[S, A])

	// ChildDiscovered fires when a generated configuration is admitted
	// to the history and frontier.
	ChildDiscovered(entry *Entry[S, A])

	// ChildDiscarded fires when a generated configuration is dropped
	// because its fingerprint has already been seen.
	ChildDiscarded(parent *Entry[S, A], action A, child S)

	// DeadEnd fires when an expansion admits no children.
	DeadEnd(entry *Entry[S, A])

	// GoalReached fires at most once per run, for the entry whose
	// state satisfies the goal.
	GoalReached(entry *Entry[S, A])
}

// NopObserver ignores every notification. It is the default when
// Options.Observer is nil.
type NopObserver[S, A any] struct{}

func (NopObserver[S, A]) NodePopped(*Entry[S, A])           {}
func (NopObserver[S, A]) ChildDiscovered(*Entry[S, A])      {}
func (NopObserver[S, A]) ChildDiscarded(*Entry[S, A], A, S) {}
func (NopObserver[S, A]) DeadEnd(*Entry[S, A])              {}
func (NopObserver[S, A]) GoalReached(*Entry[S, A])          {}

package search

import "fmt"

// Order selects the frontier discipline for a run.
type Order int

const (
	// FIFO explores oldest entries first (breadth-first).
	FIFO Order = iota
	// LIFO explores newest entries first (depth-first).
	LIFO
)

// String returns the user-facing strategy name.
func (o Order) String() string {
	if o == LIFO {
		return "dfs"
	}
	return "bfs"
}

// ParseOrder maps a strategy name to an Order. The empty string selects
// the breadth-first default.
func ParseOrder(strategy string) (Order, error) {
	switch strategy {
	case "", "bfs":
		return FIFO, nil
	case "dfs":
		return LIFO, nil
	default:
		return FIFO, fmt.Errorf("unknown strategy %q (want \"bfs\" or \"dfs\")", strategy)
	}
}

// Frontier holds entries waiting to be explored. Push admits an entry,
// Pop removes the next one according to the discipline and reports
// whether one was available.
type Frontier[T any] interface {
	Push(item T)
	Pop() (T, bool)
	Len() int
}

// NewLIFO returns a stack-ordered frontier. A search driven by it
// behaves depth-first.
func NewLIFO[T any]() Frontier[T] { return &stack[T]{} }

// NewFIFO returns a queue-ordered frontier. A search driven by it
// behaves breadth-first and reaches goals by a shortest action
// sequence.
func NewFIFO[T any]() Frontier[T] { return &queue[T]{} }

type stack[T any] struct {
	items []T
}

func (s *stack[T]) Push(item T) {
	s.items = append(s.items, item)
}

func (s *stack[T]) Pop() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	last := len(s.items) - 1
	item := s.items[last]
	s.items[last] = zero
	s.items = s.items[:last]
	return item, true
}

func (s *stack[T]) Len() int { return len(s.items) }

type queue[T any] struct {
	items []T
}

func (q *queue[T]) Push(item T) {
	q.items = append(q.items, item)
}

func (q *queue[T]) Pop() (T, bool) {
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	item := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return item, true
}

func (q *queue[T]) Len() int { return len(q.items) }

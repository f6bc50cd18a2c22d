// Package bridgetorch models the bridge-and-torch puzzle: people with
// different walking speeds cross a bridge at night, sharing a single
// torch with limited fuel. The bridge holds a bounded party, a party
// walks at the pace of its slowest member, and every crossing burns
// that many minutes of torch fuel.
package bridgetorch

import (
	"context"
	"fmt"
	"sort"

	"github.com/rivercrossing/ferryman/search"
)

// maxMinutes bounds walking times and fuel so fingerprints pack one
// byte per value.
const maxMinutes = 255

// Side identifies an end of the bridge.
type Side int

const (
	// Left is the side everyone starts on.
	Left Side = iota
	// Right is the side everyone must reach.
	Right
)

// String returns "left" or "right".
func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Left {
		return Right
	}
	return Left
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Side) UnmarshalText(text []byte) error {
	switch string(text) {
	case "left":
		*s = Left
	case "right":
		*s = Right
	default:
		return fmt.Errorf("unknown side %q", string(text))
	}
	return nil
}

// Torch tracks where the light is and how long its fuel lasts.
type Torch struct {
	Side      Side `json:"side"`
	Remaining int  `json:"remaining"`
}

// WorldState is one configuration of the puzzle. People are identified
// by their walking time in minutes; both sides are kept sorted so that
// equal configurations are canonical.
type WorldState struct {
	Time           int   `json:"time"`
	Left           []int `json:"left"`
	Right          []int `json:"right"`
	Torch          Torch `json:"torch"`
	BridgeCapacity int   `json:"bridge_capacity"`
}

func (s WorldState) String() string {
	return fmt.Sprintf("{ t=%d, left: %s, right: %s, torch: %s/%d }",
		s.Time, renderPeople(s.Left), renderPeople(s.Right), s.Torch.Side, s.Torch.Remaining)
}

// torchSide returns the people on the side the torch is at.
func (s WorldState) torchSide() []int {
	if s.Torch.Side == Left {
		return s.Left
	}
	return s.Right
}

// IsGoal reports whether everyone reached the right side.
func (s WorldState) IsGoal() bool {
	return len(s.Left) == 0
}

// Actions enumerates every applicable party from the torch's side.
// Parties are distinct as multisets of walking times: with people
// taking 1, 1 and 5 minutes and a two-person bridge, the parties are
// [1], [5], [1 1] and [1 5].
func (s WorldState) Actions() []Move {
	side := s.torchSide()
	var actions []Move

	party := make([]int, 0, s.BridgeCapacity)
	for size := 1; size <= s.BridgeCapacity && size <= len(side); size++ {
		collectParties(s, side, size, 0, party, &actions)
	}

	return actions
}

// collectParties appends every distinct party of the given size drawn
// from people[start:]. Equal walking times are interchangeable, so
// duplicates at the same position are skipped; people must be sorted.
func collectParties(s WorldState, people []int, size, start int, party []int, actions *[]Move) {
	if len(party) == size {
		move := Move{Party: append([]int(nil), party...)}
		if move.IsApplicable(s) {
			*actions = append(*actions, move)
		}
		return
	}
	for i := start; i < len(people); i++ {
		if i > start && people[i] == people[i-1] {
			continue
		}
		collectParties(s, people, size, i+1, append(party, people[i]), actions)
	}
}

// Fingerprint packs the left side, the torch position, and the
// remaining fuel. The torch position alone is not enough since
// different paths can reach the same arrangement with different
// remaining times.
func (s WorldState) Fingerprint() string {
	key := make([]byte, 0, len(s.Left)+2)
	for _, t := range s.Left {
		key = append(key, byte(t))
	}
	sideBit := byte(0)
	if s.Torch.Side == Right {
		sideBit = 1
	}
	key = append(key, sideBit, byte(s.Torch.Remaining))
	return string(key)
}

// Move walks a party across the bridge with the torch.
type Move struct {
	Party []int `json:"party"`
}

func (m Move) String() string {
	return fmt.Sprintf("{ %s }", renderPeople(m.Party))
}

// WalkingTime is the crossing time of the party, set by its slowest
// member.
func (m Move) WalkingTime() int {
	slowest := 0
	for _, t := range m.Party {
		if t > slowest {
			slowest = t
		}
	}
	return slowest
}

// IsApplicable reports whether the move is legal: the party must fit
// the bridge, stand on the torch's side, and the torch must hold long
// enough for the crossing.
func (m Move) IsApplicable(s WorldState) bool {
	if len(m.Party) == 0 || len(m.Party) > s.BridgeCapacity {
		return false
	}
	if !containsParty(s.torchSide(), m.Party) {
		return false
	}
	return s.Torch.Remaining >= m.WalkingTime()
}

// containsParty reports whether the side holds the party as a
// multiset.
func containsParty(side, party []int) bool {
	counts := make(map[int]int, len(side))
	for _, t := range side {
		counts[t]++
	}
	for _, t := range party {
		counts[t]--
		if counts[t] < 0 {
			return false
		}
	}
	return true
}

// Apply walks the party across, advances the clock, burns torch fuel,
// and hands the torch to the other side. The given configuration is
// left unchanged.
func (m Move) Apply(s WorldState) WorldState {
	out := s
	out.Left = append([]int(nil), s.Left...)
	out.Right = append([]int(nil), s.Right...)

	here, there := &out.Left, &out.Right
	if s.Torch.Side == Right {
		here, there = &out.Right, &out.Left
	}
	for _, t := range m.Party {
		*here = removeFirst(*here, t)
		*there = append(*there, t)
	}
	sort.Ints(*there)

	walkingTime := m.WalkingTime()
	out.Time += walkingTime
	out.Torch = Torch{
		Side:      s.Torch.Side.Opposite(),
		Remaining: s.Torch.Remaining - walkingTime,
	}
	return out
}

// removeFirst drops the first occurrence of t, preserving order.
func removeFirst(times []int, t int) []int {
	for i, v := range times {
		if v == t {
			return append(times[:i], times[i+1:]...)
		}
	}
	panic(fmt.Sprintf("bridgetorch: person <%d> not on this side", t))
}

// Config describes a puzzle instance: everyone starts on the left
// side with the torch.
type Config struct {
	WalkingTimes   []int `json:"walking_times"`
	TorchFuel      int   `json:"torch_fuel"`
	BridgeCapacity int   `json:"bridge_capacity"`
}

// DefaultConfig is the classic four-person puzzle: crossing times 1,
// 2, 5 and 8 minutes, 15 minutes of fuel, two people on the bridge.
func DefaultConfig() Config {
	return Config{
		WalkingTimes:   []int{1, 2, 5, 8},
		TorchFuel:      15,
		BridgeCapacity: 2,
	}
}

// Validate checks the configuration bounds. A bridge capacity of zero
// is valid and simply makes the puzzle unsolvable unless nobody has to
// cross.
func (c Config) Validate() error {
	for i, t := range c.WalkingTimes {
		if t < 0 || t > maxMinutes {
			return fmt.Errorf("walking_times[%d] must be between 0 and %d, got %d", i, maxMinutes, t)
		}
	}
	if c.TorchFuel < 0 || c.TorchFuel > maxMinutes {
		return fmt.Errorf("torch_fuel must be between 0 and %d, got %d", maxMinutes, c.TorchFuel)
	}
	if c.BridgeCapacity < 0 || c.BridgeCapacity > maxMinutes {
		return fmt.Errorf("bridge_capacity must be between 0 and %d, got %d", maxMinutes, c.BridgeCapacity)
	}
	return nil
}

// Initial builds the starting configuration.
func (c Config) Initial() WorldState {
	left := append([]int(nil), c.WalkingTimes...)
	sort.Ints(left)
	return WorldState{
		Left:           left,
		Right:          []int{},
		Torch:          Torch{Side: Left, Remaining: c.TorchFuel},
		BridgeCapacity: c.BridgeCapacity,
	}
}

// Solve validates the configuration and searches for a crossing plan.
func Solve(ctx context.Context, cfg Config, opts search.Options[WorldState, Move]) (*search.Result[WorldState, Move], error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return search.Run[WorldState, Move, string](ctx, cfg.Initial(), opts)
}

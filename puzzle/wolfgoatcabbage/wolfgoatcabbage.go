// Package wolfgoatcabbage models the wolf, goat and cabbage crossing:
// farmers ferry wolves, goats and cabbages across a river without ever
// leaving wolves alone with goats, or goats alone with cabbages. The
// counted variant solved here allows any number of each and any boat
// capacity; at least one farmer must be aboard to steer.
package wolfgoatcabbage

import (
	"context"
	"fmt"

	"github.com/rivercrossing/ferryman/search"
)

// maxCount bounds the counts so fingerprints pack into eight bits per
// field.
const maxCount = 255

// Bank identifies a side of the river.
type Bank int

const (
	// Left is the bank everyone starts on.
	Left Bank = iota
	// Right is the bank everyone must reach.
	Right
)

// String returns "left" or "right".
func (b Bank) String() string {
	if b == Right {
		return "right"
	}
	return "left"
}

// Opposite returns the other bank.
func (b Bank) Opposite() Bank {
	if b == Left {
		return Right
	}
	return Left
}

// MarshalText implements encoding.TextMarshaler.
func (b Bank) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Bank) UnmarshalText(text []byte) error {
	switch string(text) {
	case "left":
		*b = Left
	case "right":
		*b = Right
	default:
		return fmt.Errorf("unknown bank %q", string(text))
	}
	return nil
}

// BankState counts who and what stands on one bank.
type BankState struct {
	Farmers  int `json:"farmers"`
	Wolves   int `json:"wolves"`
	Goats    int `json:"goats"`
	Cabbages int `json:"cabbages"`
}

// Empty reports whether the bank is deserted.
func (b BankState) Empty() bool {
	return b.Farmers == 0 && b.Wolves == 0 && b.Goats == 0 && b.Cabbages == 0
}

func (b BankState) String() string {
	return fmt.Sprintf("{ %d×F, %d×W, %d×G, %d×C }", b.Farmers, b.Wolves, b.Goats, b.Cabbages)
}

// Boat ferries parties between the banks.
type Boat struct {
	Capacity int  `json:"capacity"`
	Bank     Bank `json:"bank"`
}

// WorldState is one configuration of the puzzle. Depth counts the
// crossings taken so far; it is carried for display only and does not
// participate in the fingerprint.
type WorldState struct {
	Depth int       `json:"depth"`
	Left  BankState `json:"left"`
	Right BankState `json:"right"`
	Boat  Boat      `json:"boat"`
}

func (s WorldState) String() string {
	return fmt.Sprintf("{ t=%d, left: %v, right: %v, boat: %v }", s.Depth, s.Left, s.Right, s.Boat.Bank)
}

// hereThere returns the bank the boat is at and the opposite bank.
func (s WorldState) hereThere() (BankState, BankState) {
	if s.Boat.Bank == Left {
		return s.Left, s.Right
	}
	return s.Right, s.Left
}

// IsGoal reports whether everyone and everything reached the right
// bank.
func (s WorldState) IsGoal() bool {
	return s.Left.Empty()
}

// Actions enumerates every applicable party for the boat's bank, in a
// fixed farmers/wolves/goats/cabbages loop order with early capacity
// cutoffs.
func (s WorldState) Actions() []Move {
	bank := s.boatBank()
	capacity := s.Boat.Capacity
	actions := make([]Move, 0, 5)

	for f := 0; f <= min(bank.Farmers, capacity); f++ {
		for w := 0; w <= min(bank.Wolves, capacity); w++ {
			if f+w > capacity {
				break
			}
			for g := 0; g <= min(bank.Goats, capacity); g++ {
				if f+w+g > capacity {
					break
				}
				for c := 0; c <= min(bank.Cabbages, capacity); c++ {
					if f+w+g+c > capacity {
						break
					}
					move := Move{Farmers: f, Wolves: w, Goats: g, Cabbages: c}
					if move.IsApplicable(s) {
						actions = append(actions, move)
					}
				}
			}
		}
	}

	return actions
}

// boatBank returns the bank the boat is at.
func (s WorldState) boatBank() BankState {
	if s.Boat.Bank == Left {
		return s.Left
	}
	return s.Right
}

// Fingerprint packs the left bank counts and the boat position. Depth
// is excluded: configurations differing only in how many crossings it
// took to reach them expand identically.
func (s WorldState) Fingerprint() uint64 {
	boat := uint64(0)
	if s.Boat.Bank == Right {
		boat = 1
	}
	return uint64(s.Left.Farmers)<<32 |
		uint64(s.Left.Wolves)<<24 |
		uint64(s.Left.Goats)<<16 |
		uint64(s.Left.Cabbages)<<8 |
		boat
}

// Move ferries a party to the opposite bank.
type Move struct {
	Farmers  int `json:"farmers"`
	Wolves   int `json:"wolves"`
	Goats    int `json:"goats"`
	Cabbages int `json:"cabbages"`
}

// Size is the number of passengers on the boat.
func (m Move) Size() int {
	return m.Farmers + m.Wolves + m.Goats + m.Cabbages
}

func (m Move) String() string {
	return fmt.Sprintf("{ %d×F, %d×W, %d×G, %d×C }", m.Farmers, m.Wolves, m.Goats, m.Cabbages)
}

// IsApplicable reports whether the move is legal: the boat must be
// neither empty nor overloaded, carry a farmer to steer, draw only
// from the departure bank, and leave no bank where a wolf guards a
// goat or a goat guards a cabbage without a farmer present.
func (m Move) IsApplicable(s WorldState) bool {
	if m.Farmers < 0 || m.Wolves < 0 || m.Goats < 0 || m.Cabbages < 0 {
		return false
	}
	if m.Size() == 0 || m.Size() > s.Boat.Capacity {
		return false
	}
	if m.Farmers == 0 {
		return false
	}

	here, there := s.hereThere()
	if here.Farmers < m.Farmers || here.Wolves < m.Wolves ||
		here.Goats < m.Goats || here.Cabbages < m.Cabbages {
		return false
	}

	if here.Farmers-m.Farmers == 0 &&
		here.Wolves-m.Wolves > 0 &&
		here.Goats-m.Goats > 0 {
		return false
	}
	if there.Farmers+m.Farmers == 0 &&
		there.Wolves+m.Wolves > 0 &&
		there.Goats+m.Goats > 0 {
		return false
	}

	if here.Farmers-m.Farmers == 0 &&
		here.Goats-m.Goats > 0 &&
		here.Cabbages-m.Cabbages > 0 {
		return false
	}
	if there.Farmers+m.Farmers == 0 &&
		there.Goats+m.Goats > 0 &&
		there.Cabbages+m.Cabbages > 0 {
		return false
	}

	return true
}

// Apply ferries the party across, advances the crossing counter, and
// docks the boat on the opposite bank. The given configuration is left
// unchanged.
func (m Move) Apply(s WorldState) WorldState {
	if s.Boat.Bank == Left {
		s.Left = s.Left.remove(m)
		s.Right = s.Right.add(m)
	} else {
		s.Right = s.Right.remove(m)
		s.Left = s.Left.add(m)
	}
	s.Depth++
	s.Boat.Bank = s.Boat.Bank.Opposite()
	return s
}

func (b BankState) remove(m Move) BankState {
	b.Farmers -= m.Farmers
	b.Wolves -= m.Wolves
	b.Goats -= m.Goats
	b.Cabbages -= m.Cabbages
	return b
}

func (b BankState) add(m Move) BankState {
	b.Farmers += m.Farmers
	b.Wolves += m.Wolves
	b.Goats += m.Goats
	b.Cabbages += m.Cabbages
	return b
}

// Config describes a puzzle instance: everyone starts on the left
// bank and must reach the right one.
type Config struct {
	Farmers      int `json:"farmers"`
	Wolves       int `json:"wolves"`
	Goats        int `json:"goats"`
	Cabbages     int `json:"cabbages"`
	BoatCapacity int `json:"boat_capacity"`
}

// DefaultConfig is the classic puzzle: one of each, two-seat boat.
func DefaultConfig() Config {
	return Config{Farmers: 1, Wolves: 1, Goats: 1, Cabbages: 1, BoatCapacity: 2}
}

// Validate checks the configuration bounds. A boat capacity of zero is
// valid and simply makes the puzzle unsolvable.
func (c Config) Validate() error {
	if c.Farmers < 0 || c.Farmers > maxCount {
		return fmt.Errorf("farmers must be between 0 and %d, got %d", maxCount, c.Farmers)
	}
	if c.Wolves < 0 || c.Wolves > maxCount {
		return fmt.Errorf("wolves must be between 0 and %d, got %d", maxCount, c.Wolves)
	}
	if c.Goats < 0 || c.Goats > maxCount {
		return fmt.Errorf("goats must be between 0 and %d, got %d", maxCount, c.Goats)
	}
	if c.Cabbages < 0 || c.Cabbages > maxCount {
		return fmt.Errorf("cabbages must be between 0 and %d, got %d", maxCount, c.Cabbages)
	}
	if c.BoatCapacity < 0 || c.BoatCapacity > maxCount {
		return fmt.Errorf("boat_capacity must be between 0 and %d, got %d", maxCount, c.BoatCapacity)
	}
	return nil
}

// Initial builds the starting configuration.
func (c Config) Initial() WorldState {
	return WorldState{
		Left: BankState{
			Farmers:  c.Farmers,
			Wolves:   c.Wolves,
			Goats:    c.Goats,
			Cabbages: c.Cabbages,
		},
		Right: BankState{},
		Boat:  Boat{Capacity: c.BoatCapacity, Bank: Left},
	}
}

// Solve validates the configuration and searches for a crossing plan.
func Solve(ctx context.Context, cfg Config, opts search.Options[WorldState, Move]) (*search.Result[WorldState, Move], error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return search.Run[WorldState, Move, uint64](ctx, cfg.Initial(), opts)
}

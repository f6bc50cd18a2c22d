package humanszombies

import (
	"context"
	"fmt"

	"github.com/rivercrossing/ferryman/search"
)

// maxCount bounds population counts so fingerprints pack into eight
// bits per field.
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

// BankState counts who stands on one bank.
type BankState struct {
	Humans  int `json:"humans"`
	Zombies int `json:"zombies"`
}

// Empty reports whether nobody is on the bank.
func (b BankState) Empty() bool {
	return b.Humans == 0 && b.Zombies == 0
}

func (b BankState) String() string {
	return fmt.Sprintf("{ %d×H, %d×Z }", b.Humans, b.Zombies)
}

// Boat ferries parties between the banks.
type Boat struct {
	Capacity int  `json:"capacity"`
	Bank     Bank `json:"bank"`
}

// WorldState is one configuration of the puzzle.
type WorldState struct {
	Left  BankState `json:"left"`
	Right BankState `json:"right"`
	Boat  Boat      `json:"boat"`
}

func (s WorldState) String() string {
	return fmt.Sprintf("{ left: %v, right: %v, boat: %v }", s.Left, s.Right, s.Boat.Bank)
}

// hereThere returns the bank the boat is at and the opposite bank.
func (s WorldState) hereThere() (BankState, BankState) {
	if s.Boat.Bank == Left {
		return s.Left, s.Right
	}
	return s.Right, s.Left
}

// boatBank returns the bank the boat is at.
func (s WorldState) boatBank() BankState {
	if s.Boat.Bank == Left {
		return s.Left
	}
	return s.Right
}

// IsGoal reports whether everyone reached the right bank.
func (s WorldState) IsGoal() bool {
	return s.Left.Empty()
}

// Actions enumerates every applicable party for the boat's bank, in a
// fixed zombies-then-humans order.
func (s WorldState) Actions() []Move {
	bank := s.boatBank()
	actions := make([]Move, 0, 5)

	maxZombies := min(bank.Zombies, s.Boat.Capacity)
	maxHumans := min(bank.Humans, s.Boat.Capacity)
	for z := 0; z <= maxZombies; z++ {
		for h := 0; h <= maxHumans; h++ {
			if h+z == 0 {
				continue
			}
			if h+z > s.Boat.Capacity {
				break
			}
			move := Move{Humans: h, Zombies: z}
			if move.IsApplicable(s) {
				actions = append(actions, move)
			}
		}
	}

	return actions
}

// Fingerprint packs the left bank counts and the boat position. The
// right bank is implied by the fixed total population.
func (s WorldState) Fingerprint() uint32 {
	boat := uint32(0)
	if s.Boat.Bank == Right {
		boat = 1
	}
	return uint32(s.Left.Zombies)<<16 | uint32(s.Left.Humans)<<8 | boat
}

// Move ferries a party of humans and zombies to the opposite bank.
type Move struct {
	Humans  int `json:"humans"`
	Zombies int `json:"zombies"`
}

func (m Move) String() string {
	return fmt.Sprintf("{ %d×H, %d×Z }", m.Humans, m.Zombies)
}

// IsApplicable reports whether the move is legal: the party must fit
// the boat, exist on the departure bank, keep humans in the majority
// on a mixed boat, and leave no bank where zombies outnumber the
// humans still present.
func (m Move) IsApplicable(s WorldState) bool {
	if m.Humans < 0 || m.Zombies < 0 {
		return false
	}
	total := m.Humans + m.Zombies
	if total == 0 || total > s.Boat.Capacity {
		return false
	}

	if m.Humans > 0 && m.Zombies > m.Humans {
		return false
	}

	here, there := s.hereThere()
	if here.Humans < m.Humans || here.Zombies < m.Zombies {
		return false
	}

	humansHere := here.Humans - m.Humans
	zombiesHere := here.Zombies - m.Zombies
	if humansHere > 0 && zombiesHere > humansHere {
		return false
	}

	humansThere := there.Humans + m.Humans
	zombiesThere := there.Zombies + m.Zombies
	if humansThere > 0 && zombiesThere > humansThere {
		return false
	}

	return true
}

// Apply ferries the party across and docks the boat on the opposite
// bank. The given configuration is left unchanged.
func (m Move) Apply(s WorldState) WorldState {
	if s.Boat.Bank == Left {
		s.Left.Humans -= m.Humans
		s.Left.Zombies -= m.Zombies
		s.Right.Humans += m.Humans
		s.Right.Zombies += m.Zombies
	} else {
		s.Right.Humans -= m.Humans
		s.Right.Zombies -= m.Zombies
		s.Left.Humans += m.Humans
		s.Left.Zombies += m.Zombies
	}
	s.Boat.Bank = s.Boat.Bank.Opposite()
	return s
}

// Config describes a puzzle instance: everyone starts on the left
// bank and must reach the right one.
type Config struct {
	Humans       int `json:"humans"`
	Zombies      int `json:"zombies"`
	BoatCapacity int `json:"boat_capacity"`
}

// DefaultConfig is the classic three-of-each puzzle with a two-seat
// boat.
func DefaultConfig() Config {
	return Config{Humans: 3, Zombies: 3, BoatCapacity: 2}
}

// Validate checks the configuration bounds. A boat capacity of zero is
// valid and simply makes the puzzle unsolvable.
func (c Config) Validate() error {
	if c.Humans < 0 || c.Humans > maxCount {
		return fmt.Errorf("humans must be between 0 and %d, got %d", maxCount, c.Humans)
	}
	if c.Zombies < 0 || c.Zombies > maxCount {
		return fmt.Errorf("zombies must be between 0 and %d, got %d", maxCount, c.Zombies)
	}
	if c.BoatCapacity < 0 || c.BoatCapacity > maxCount {
		return fmt.Errorf("boat_capacity must be between 0 and %d, got %d", maxCount, c.BoatCapacity)
	}
	return nil
}

// Initial builds the starting configuration.
func (c Config) Initial() WorldState {
	return WorldState{
		Left:  BankState{Humans: c.Humans, Zombies: c.Zombies},
		Right: BankState{},
		Boat:  Boat{Capacity: c.BoatCapacity, Bank: Left},
	}
}

// Solve validates the configuration and searches for a crossing plan.
func Solve(ctx context.Context, cfg Config, opts search.Options[WorldState, Move]) (*search.Result[WorldState, Move], error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return search.Run[WorldState, Move, uint32](ctx, cfg.Initial(), opts)
}

package humanszombies

import "strings"

// RenderState draws the river as ASCII art: left bank population,
// the boat on its current side, right bank population.
func RenderState(s WorldState) string {
	atMost := s.Left.Humans + s.Right.Humans

	var b strings.Builder

	bank := strings.TrimSpace(strings.Repeat("H", s.Left.Humans) + " " + strings.Repeat("Z", s.Left.Zombies))
	padding := 0
	if s.Left.Humans == 0 || s.Left.Zombies == 0 {
		padding = 1
	}
	pad := 2*atMost - s.Left.Humans - s.Left.Zombies + padding
	if pad < 0 {
		pad = 0
	}
	b.WriteString(strings.Repeat(" ", pad))
	b.WriteString(bank)

	if s.Boat.Bank == Left {
		b.WriteString(" |B~~~| ")
	} else {
		b.WriteString(" |~~~B| ")
	}

	b.WriteString(strings.TrimSpace(strings.Repeat("H", s.Right.Humans) + " " + strings.Repeat("Z", s.Right.Zombies)))

	return strings.TrimRight(b.String(), " ")
}

// RenderAction describes the crossing that produced the given
// configuration, with the arrow pointing in the direction of travel.
// The state passed in is the one after the move.
func RenderAction(m Move, after WorldState) string {
	atMost := after.Left.Humans + after.Right.Humans

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", atMost*2+3))
	if after.Boat.Bank == Left {
		b.WriteString("← ")
	}
	b.WriteString(strings.Repeat("H", m.Humans))
	if m.Humans > 0 && m.Zombies > 0 {
		b.WriteString(" ")
	}
	b.WriteString(strings.Repeat("Z", m.Zombies))
	if after.Boat.Bank == Right {
		b.WriteString(" →")
	}
	return b.String()
}

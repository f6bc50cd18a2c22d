package wolfgoatcabbage

import (
	"fmt"
	"strings"
)

// RenderState describes the configuration as an English sentence.
func RenderState(s WorldState) string {
	return fmt.Sprintf("At t=%d; left bank: %s; right bank: %s",
		s.Depth, readableBank(s.Left), readableBank(s.Right))
}

// RenderAction describes the crossing that produced the given
// configuration. The state passed in is the one after the move.
func RenderAction(m Move, after WorldState) string {
	if after.Boat.Bank == Right {
		suffix := ""
		if m.Size() == 1 {
			suffix = "es"
		}
		return fmt.Sprintf(" → %s cross%s forward", readableMove(m), suffix)
	}
	suffix := ""
	if m.Size() == 1 {
		suffix = "s alone"
	}
	return fmt.Sprintf(" ← %s return%s", readableMove(m), suffix)
}

func readableBank(b BankState) string {
	return readableList(b.Farmers, b.Wolves, b.Goats, b.Cabbages)
}

func readableMove(m Move) string {
	return readableList(m.Farmers, m.Wolves, m.Goats, m.Cabbages)
}

// readableList joins the non-zero counts into "farmer, wolf and goat"
// form, or "empty" when all are zero.
func readableList(farmers, wolves, goats, cabbages int) string {
	var parts []string

	switch {
	case farmers == 1:
		parts = append(parts, "farmer")
	case farmers > 0:
		parts = append(parts, fmt.Sprintf("%d farmers", farmers))
	}
	switch {
	case wolves == 1:
		parts = append(parts, "wolf")
	case wolves > 0:
		parts = append(parts, fmt.Sprintf("%d wolves", wolves))
	}
	switch {
	case goats == 1:
		parts = append(parts, "goat")
	case goats > 0:
		parts = append(parts, fmt.Sprintf("%d goats", goats))
	}
	switch {
	case cabbages == 1:
		parts = append(parts, "cabbage")
	case cabbages > 0:
		parts = append(parts, fmt.Sprintf("%d cabbages", cabbages))
	}

	if len(parts) == 0 {
		return "empty"
	}

	var b strings.Builder
	for i, part := range parts {
		switch {
		case i == 0:
		case i == len(parts)-1:
			b.WriteString(" and ")
		default:
			b.WriteString(", ")
		}
		b.WriteString(part)
	}
	return b.String()
}

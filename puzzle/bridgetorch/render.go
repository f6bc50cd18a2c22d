package bridgetorch

import (
	"fmt"
	"strings"
)

// renderPeople formats walking times as "[<1>, <2>]".
func renderPeople(times []int) string {
	parts := make([]string, len(times))
	for i, t := range times {
		parts[i] = fmt.Sprintf("<%d>", t)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// renderSide formats one side of the bridge, or "nobody" when it is
// empty.
func renderSide(times []int) string {
	if len(times) == 0 {
		return "nobody"
	}
	return renderPeople(times)
}

// RenderState formats a configuration for plan output, for example
// "At 3 minutes: [<5>, <8>] on the left, [<1>, <2>] on the right".
func RenderState(s WorldState) string {
	return fmt.Sprintf("At %d minute%s: %s on the left, %s on the right",
		s.Time, plural(s.Time), renderSide(s.Left), renderSide(s.Right))
}

// RenderAction formats a crossing for plan output. The state is the
// one after the party crossed, so the torch already sits on the
// party's destination side.
func RenderAction(m Move, after WorldState) string {
	walkingTime := m.WalkingTime()
	if after.Torch.Side == Right {
		return fmt.Sprintf(" → %s cross forward, taking %d minute%s",
			renderPeople(m.Party), walkingTime, plural(walkingTime))
	}
	verb := "return"
	if len(m.Party) == 1 {
		verb = "returns"
	}
	return fmt.Sprintf(" ← %s %s, taking %d minute%s",
		renderPeople(m.Party), verb, walkingTime, plural(walkingTime))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

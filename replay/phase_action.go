package replay

import (
	"fmt"
	"strings"

	"holdem-engine/holdem"
)

func parsePhaseName(raw string) (holdem.Phase, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "PREFLOP":
		return holdem.PhasePreflop, nil
	case "FLOP":
		return holdem.PhaseFlop, nil
	case "TURN":
		return holdem.PhaseTurn, nil
	case "RIVER":
		return holdem.PhaseRiver, nil
	default:
		return 0, fmt.Errorf("unsupported phase %q", raw)
	}
}

func phaseName(phase holdem.Phase) string {
	switch phase {
	case holdem.PhasePreflop:
		return "PREFLOP"
	case holdem.PhaseFlop:
		return "FLOP"
	case holdem.PhaseTurn:
		return "TURN"
	case holdem.PhaseRiver:
		return "RIVER"
	case holdem.PhaseShowdown:
		return "SHOWDOWN"
	default:
		return "UNSPECIFIED"
	}
}

func parseActionName(raw string) (holdem.ActionKind, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "CHECK":
		return holdem.ActionCheck, nil
	case "BET":
		return holdem.ActionBet, nil
	case "CALL":
		return holdem.ActionCall, nil
	case "RAISE":
		return holdem.ActionRaise, nil
	case "FOLD":
		return holdem.ActionFold, nil
	case "ALLIN", "ALL_IN":
		return holdem.ActionAllIn, nil
	default:
		return 0, fmt.Errorf("unsupported action type %q", raw)
	}
}

func actionName(a holdem.ActionKind) string {
	return a.String()
}

// isNoiseKind reports whether raw is a non-betting log entry (spec §4.8
// step 3) that the replay adapter skips rather than translates.
func isNoiseKind(raw string) bool {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "SHOW", "MUCK", "COLLECT", "SUMMARY":
		return true
	default:
		return false
	}
}

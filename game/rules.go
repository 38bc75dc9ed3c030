package game

import "fmt"

// CheckAction confirms that action is structurally valid for the current phase on a grid
// of columns x rows. Legality that depends on the round (draw source, visibility of the
// target) is enforced by the engine when the action is applied.
func CheckAction(action Action, columns, rows int, startOfRound bool) error {
	inBounds := func(loc Location) bool {
		return loc.X >= 0 && loc.Y >= 0 && loc.X < columns && loc.Y < rows
	}

	if startOfRound {
		if action.Type != FlipTwoCards {
			return fmt.Errorf("%w: wrong action %q for start of round, 'flip_two_cards' was expected",
				ErrProtocolViolation, action.Type)
		}
		if len(action.Locations) != 2 {
			return fmt.Errorf("%w: 'flip_two_cards' needs exactly two locations, got %d",
				ErrProtocolViolation, len(action.Locations))
		}
		for _, loc := range action.Locations {
			if !inBounds(loc) {
				return fmt.Errorf("%w: location %v outside of the %dx%d grid", ErrProtocolViolation, loc, columns, rows)
			}
		}
		if action.Locations[0] == action.Locations[1] {
			return fmt.Errorf("%w: cannot flip the same card twice at %v", ErrProtocolViolation, action.Locations[0])
		}
		return nil
	}

	if action.Type != Swap && action.Type != DiscardAndFlip {
		return fmt.Errorf("%w: wrong action %q, 'swap' or 'discard_and_flip' was expected",
			ErrProtocolViolation, action.Type)
	}
	if len(action.Locations) != 1 {
		return fmt.Errorf("%w: '%s' needs exactly one location, got %d",
			ErrProtocolViolation, action.Type, len(action.Locations))
	}
	if loc := action.Locations[0]; !inBounds(loc) {
		return fmt.Errorf("%w: location %v outside of the %dx%d grid", ErrProtocolViolation, loc, columns, rows)
	}
	return nil
}

package game

import "fmt"

// ActionType tags the move a strategy returns.
type ActionType int

const (
	// FlipTwoCards is only valid at the start of a round.
	FlipTwoCards ActionType = iota + 1
	// Swap replaces a cell's card with the drawn card.
	Swap
	// DiscardAndFlip discards the drawn card and reveals a hidden cell.
	DiscardAndFlip
)

var actionNames = map[ActionType]string{
	FlipTwoCards:   "flip_two_cards",
	Swap:           "swap",
	DiscardAndFlip: "discard_and_flip",
}

func (t ActionType) String() string {
	if name, ok := actionNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ActionType(%d)", int(t))
}

// ParseActionType maps a wire name back to its ActionType.
func ParseActionType(name string) (ActionType, bool) {
	for t, n := range actionNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// Source is the pile a card was drawn from.
type Source int

const (
	NoSource Source = iota
	Stock
	Discard
)

func (s Source) String() string {
	switch s {
	case Stock:
		return "stock"
	case Discard:
		return "discard"
	default:
		return "none"
	}
}

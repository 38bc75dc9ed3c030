package game

import "fmt"

// Location addresses a cell by column (X) and row (Y).
type Location struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (l Location) String() string {
	return fmt.Sprintf("{%d,%d}", l.X, l.Y)
}

// Action is the move a strategy returns. FlipTwoCards carries two locations,
// Swap and DiscardAndFlip carry one.
type Action struct {
	Type      ActionType
	Locations []Location
}

func NewFlipTwoCards(first, second Location) Action {
	return Action{Type: FlipTwoCards, Locations: []Location{first, second}}
}

func NewSwap(loc Location) Action {
	return Action{Type: Swap, Locations: []Location{loc}}
}

func NewDiscardAndFlip(loc Location) Action {
	return Action{Type: DiscardAndFlip, Locations: []Location{loc}}
}

// Location returns the single target of a Swap or DiscardAndFlip.
func (a Action) Location() Location {
	if len(a.Locations) == 0 {
		return Location{}
	}
	return a.Locations[0]
}

func (a Action) String() string {
	if a.Type == FlipTwoCards {
		return fmt.Sprintf("%s %v", a.Type, a.Locations)
	}
	return fmt.Sprintf("%s %v", a.Type, a.Location())
}

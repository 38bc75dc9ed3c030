package game

// Card is the value printed on a card; it never changes once drawn.
type Card int

// Denominations lists every card value found in the deck.
var Denominations = []Card{-2, -1, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

// Multiplicity returns how many copies of card the deck holds.
func Multiplicity(card Card) int {
	switch card {
	case -2:
		return 5
	case 0:
		return 15
	default:
		return 10
	}
}

// NewDeck returns the full unshuffled deck (150 cards).
func NewDeck() []Card {
	deck := []Card{}
	for _, card := range Denominations {
		for i := 0; i < Multiplicity(card); i++ {
			deck = append(deck, card)
		}
	}
	return deck
}

// Pop removes and returns the top (last) card of pile.
func Pop(pile *[]Card) (Card, bool) {
	n := len(*pile)
	if n == 0 {
		return 0, false
	}
	card := (*pile)[n-1]
	*pile = (*pile)[:n-1]
	return card, true
}

// Top returns the top (last) card of pile without removing it.
func Top(pile []Card) (Card, bool) {
	if len(pile) == 0 {
		return 0, false
	}
	return pile[len(pile)-1], true
}

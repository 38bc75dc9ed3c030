package game

// AllColumns makes RemoveTriplets sweep the whole grid.
const AllColumns = -1

// IsTriplet reports whether every cell of column is visible and holds the same card.
func IsTriplet(column Column) bool {
	if len(column) == 0 {
		return false
	}
	for _, cell := range column {
		if !cell.Visible || cell.Card != column[0].Card {
			return false
		}
	}
	return true
}

// RemoveTriplets removes the qualifying columns of the grid, either the single column x
// or every column when x is AllColumns. The remaining columns are renumbered from 0.
// It returns the cards of the removed columns, in column order, and the number of triplets.
func (g *Grid) RemoveTriplets(x int) ([]Card, int) {
	removedCards := []Card{}
	removed := 0

	kept := (*g)[:0]
	for i, column := range *g {
		if (x == AllColumns || x == i) && IsTriplet(column) {
			for _, cell := range column {
				removedCards = append(removedCards, cell.Card)
			}
			removed++
			continue
		}
		kept = append(kept, column)
	}

	if removed > 0 {
		// release removed columns still referenced by the backing array
		for i := len(kept); i < len(*g); i++ {
			(*g)[i] = nil
		}
		*g = kept
		for nx := range *g {
			for y := range (*g)[nx] {
				(*g)[nx][y].X = nx
			}
		}
	}

	return removedCards, removed
}

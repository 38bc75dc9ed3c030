package game

import (
	"fmt"
	"strings"
)

// Cell is one position of a player's grid. Card is meaningless while the cell is hidden.
type Cell struct {
	X       int  `json:"x" yaml:"x"`
	Y       int  `json:"y" yaml:"y"`
	Card    Card `json:"card" yaml:"card"`
	Visible bool `json:"visible" yaml:"visible"`
}

// Column holds the cells sharing an x coordinate, top row first.
type Column []Cell

// Grid is a player's layout: an ordered list of columns of equal height.
// Columns are only ever removed (triplets), never added.
type Grid []Column

// NewGrid returns a grid of hidden cells holding card 0.
func NewGrid(columns, rows int) Grid {
	grid := make(Grid, columns)
	for x := range grid {
		grid[x] = make(Column, rows)
		for y := range grid[x] {
			grid[x][y] = Cell{X: x, Y: y}
		}
	}
	return grid
}

// Rows returns the height of the grid, 0 once every column has been removed.
func (g Grid) Rows() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Contains reports whether loc lies within the grid's current bounds.
func (g Grid) Contains(loc Location) bool {
	return loc.X >= 0 && loc.X < len(g) && loc.Y >= 0 && loc.Y < len(g[loc.X])
}

func (g Grid) filterCells(visible bool) []Cell {
	cells := []Cell{}
	for _, column := range g {
		for _, cell := range column {
			if cell.Visible == visible {
				cells = append(cells, cell)
			}
		}
	}
	return cells
}

func (g Grid) VisibleCells() []Cell { return g.filterCells(true) }

func (g Grid) HiddenCells() []Cell { return g.filterCells(false) }

func (g Grid) CountVisible() int {
	count := 0
	for _, column := range g {
		for _, cell := range column {
			if cell.Visible {
				count++
			}
		}
	}
	return count
}

func (g Grid) CountHidden() int {
	count := 0
	for _, column := range g {
		count += len(column)
	}
	return count - g.CountVisible()
}

// AllVisible is true when no cell is face down; an empty grid is all visible.
func (g Grid) AllVisible() bool {
	for _, column := range g {
		for _, cell := range column {
			if !cell.Visible {
				return false
			}
		}
	}
	return true
}

// SumVisible sums the cards of visible cells; hidden cells never count.
func (g Grid) SumVisible() int {
	sum := 0
	for _, column := range g {
		for _, cell := range column {
			if cell.Visible {
				sum += int(cell.Card)
			}
		}
	}
	return sum
}

// Clone returns a deep copy sharing no memory with g.
func (g Grid) Clone() Grid {
	clone := make(Grid, len(g))
	for x, column := range g {
		clone[x] = make(Column, len(column))
		copy(clone[x], column)
	}
	return clone
}

// CloneGrids deep copies every player's grid.
func CloneGrids(grids []Grid) []Grid {
	clones := make([]Grid, len(grids))
	for i, grid := range grids {
		clones[i] = grid.Clone()
	}
	return clones
}

// String renders the grid row by row; hidden cells are shown as a dot.
func (g Grid) String() string {
	var b strings.Builder
	for y := 0; y < g.Rows(); y++ {
		for x, column := range g {
			if x > 0 {
				b.WriteString(" ")
			}
			if column[y].Visible {
				fmt.Fprintf(&b, "%3d", column[y].Card)
			} else {
				b.WriteString("  ·")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

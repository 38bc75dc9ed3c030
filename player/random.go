package player

import (
	"context"

	"skyjo/engine"
	"skyjo/game"
	"skyjo/utils"

	"golang.org/x/exp/rand"
)

// Random plays uniformly random legal moves. It is the control strategy of a run.
type Random struct {
	rng *rand.Rand
}

func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (r *Random) ChooseAction(_ context.Context, turn engine.Turn) (game.Action, error) {
	grid := turn.Grid()
	columns, rows := len(grid), grid.Rows()

	if turn.StartOfRound {
		var first, second game.Location
		for first == second {
			first = game.Location{X: utils.Draw(r.rng, columns), Y: utils.Draw(r.rng, rows)}
			second = game.Location{X: utils.Draw(r.rng, columns), Y: utils.Draw(r.rng, rows)}
		}
		return game.NewFlipTwoCards(first, second), nil
	}

	source := game.Stock
	draw := turn.DrawFromStock
	if utils.Draw(r.rng, 10) < 5 {
		source = game.Discard
		draw = turn.DrawFromDiscard
	}
	if _, err := draw(); err != nil {
		return game.Action{}, err
	}

	loc := game.Location{X: utils.Draw(r.rng, columns), Y: utils.Draw(r.rng, rows)}
	if grid[loc.X][loc.Y].Visible || source == game.Discard || utils.Draw(r.rng, 10) >= 5 {
		return game.NewSwap(loc), nil
	}
	return game.NewDiscardAndFlip(loc), nil
}

package engine

import (
	"context"
	"fmt"

	"skyjo/experiments/metrics"
	"skyjo/game"
	"skyjo/meta"
	"skyjo/utils"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const noTrigger = -1

// round owns the piles and grids of a single round.
type round struct {
	e          *Engine
	gameIndex  int
	index      int
	gameScores []int

	stock     []game.Card
	discard   []game.Card
	gridStock []game.Card // supplies the value of a cell the moment it is revealed
	grids     []game.Grid
	triplets  []int

	first   int
	player  int
	turn    int
	trigger int
}

// PlayRound plays one round from the initial flips to scoring. gameScores are the scores
// accumulated so far in the game; they are only shown to the strategies.
func (e *Engine) PlayRound(ctx context.Context, gameIndex, roundIndex int, gameScores []int) (metrics.RoundMetric, error) {
	r := e.newRound(gameIndex, roundIndex, gameScores)

	if err := r.setup(ctx); err != nil {
		return metrics.RoundMetric{}, err
	}
	if err := r.playTurns(ctx); err != nil {
		return metrics.RoundMetric{}, err
	}
	return r.score()
}

func (e *Engine) newRound(gameIndex, roundIndex int, gameScores []int) *round {
	deck := e.deck
	if !e.fixedDeck {
		deck = utils.Shuffle(e.rng, e.deck)
	}

	n := len(deck)
	gridStockStart := n - e.rules.GridStockLength()

	r := &round{
		e:          e,
		gameIndex:  gameIndex,
		index:      roundIndex,
		gameScores: append([]int(nil), gameScores...),
		stock:      append([]game.Card(nil), deck[:gridStockStart-1]...),
		discard:    []game.Card{deck[gridStockStart-1]},
		gridStock:  append([]game.Card(nil), deck[gridStockStart:]...),
		grids:      make([]game.Grid, e.rules.Players),
		triplets:   make([]int, e.rules.Players),
		trigger:    noTrigger,
	}
	for i := range r.grids {
		r.grids[i] = game.NewGrid(e.rules.Columns, e.rules.Rows)
	}
	return r
}

// setup asks every player to flip two cards and picks the first player.
func (r *round) setup(ctx context.Context) error {
	sums := make([]int, len(r.grids))

	for i := range r.grids {
		var drawErr error
		noDraw := func() (game.Card, error) {
			drawErr = fmt.Errorf("%w: shouldn't try to draw a card at the start of the round", game.ErrProtocolViolation)
			return 0, drawErr
		}

		action, err := r.e.strategies[i].ChooseAction(ctx, r.view(i, true, noDraw, noDraw))
		if drawErr != nil {
			return r.e.playerError(i, drawErr)
		}
		if err != nil {
			return r.e.playerError(i, err)
		}
		if err := game.CheckAction(action, len(r.grids[i]), r.e.rules.Rows, true); err != nil {
			return r.e.playerError(i, err)
		}

		for _, loc := range action.Locations {
			card, err := r.reveal(r.grids[i], loc)
			if err != nil {
				return r.e.playerError(i, err)
			}
			sums[i] += int(card)
		}
	}

	r.first = pickFirstPlayer(r.e.rng, sums)
	r.player = r.first

	log.Trace().Int("game", r.gameIndex).Int("round", r.index).Ints("sums", sums).
		Msgf("player %d plays first", r.first)
	r.traceGrids()
	return nil
}

// pickFirstPlayer draws uniformly among the players with the highest sum.
func pickFirstPlayer(rng *rand.Rand, sums []int) int {
	candidates := utils.IndexesOf(sums, utils.Max(sums))
	return candidates[utils.Draw(rng, len(candidates))]
}

// playTurns runs turns in round-robin order until play comes back to the player who
// revealed their whole grid first.
func (r *round) playTurns(ctx context.Context) error {
	players := len(r.grids)
	for r.player != r.trigger {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.turn >= meta.MAX_TURNS_PER_ROUND {
			return fmt.Errorf("round %d of game %d did not end after %d turns", r.index, r.gameIndex, r.turn)
		}

		r.turn++
		if err := r.playTurn(ctx); err != nil {
			return err
		}
		r.player = (r.player + 1) % players
	}
	return nil
}

func (r *round) playTurn(ctx context.Context) error {
	grid := &r.grids[r.player]
	if len(*grid) == 0 {
		log.Trace().Int("turn", r.turn).Msgf("player %d has no cards left, skipping", r.player)
		return nil
	}

	var (
		source  game.Source
		drawn   game.Card
		drawErr error
	)
	draw := func(from game.Source) (game.Card, error) {
		if source != game.NoSource {
			drawErr = fmt.Errorf("%w: shouldn't try to draw more than once", game.ErrProtocolViolation)
			return 0, drawErr
		}
		source = from

		if from == game.Stock && len(r.stock) == 0 {
			if err := r.refillStock(); err != nil {
				drawErr = err
				return 0, err
			}
		}
		pile := &r.stock
		if from == game.Discard {
			pile = &r.discard
		}
		card, ok := game.Pop(pile)
		if !ok {
			drawErr = fmt.Errorf("%w: empty %s, should not happen", game.ErrInvariantViolation, from)
			return 0, drawErr
		}
		drawn = card
		return card, nil
	}

	action, err := r.e.strategies[r.player].ChooseAction(ctx, r.view(r.player, false,
		func() (game.Card, error) { return draw(game.Stock) },
		func() (game.Card, error) { return draw(game.Discard) },
	))
	if drawErr != nil {
		return r.e.playerError(r.player, drawErr)
	}
	if err != nil {
		return r.e.playerError(r.player, err)
	}
	if source == game.NoSource {
		return r.e.playerError(r.player, fmt.Errorf("%w: should have drawn a card", game.ErrProtocolViolation))
	}
	if err := game.CheckAction(action, len(*grid), r.e.rules.Rows, false); err != nil {
		return r.e.playerError(r.player, err)
	}

	loc := action.Location()
	cell := &(*grid)[loc.X][loc.Y]

	switch action.Type {
	case game.DiscardAndFlip:
		if source == game.Discard {
			return r.e.playerError(r.player,
				fmt.Errorf("%w: cannot discard a card drawn from the discard pile", game.ErrProtocolViolation))
		}
		if cell.Visible {
			return r.e.playerError(r.player,
				fmt.Errorf("%w: cannot flip a card that is already face up at %v", game.ErrProtocolViolation, loc))
		}
		r.discard = append(r.discard, drawn)
		if _, err := r.reveal(*grid, loc); err != nil {
			return r.e.playerError(r.player, err)
		}
	case game.Swap:
		if cell.Visible {
			r.discard = append(r.discard, cell.Card)
		} else {
			// the card that was really face down goes to the discard
			hidden, ok := game.Pop(&r.gridStock)
			if !ok {
				return r.e.playerError(r.player, fmt.Errorf("%w: empty grid stock", game.ErrInvariantViolation))
			}
			r.discard = append(r.discard, hidden)
			cell.Visible = true
		}
		cell.Card = drawn
	}

	removed := r.removeTriplets(r.player, loc.X)

	log.Trace().Int("turn", r.turn).Int("player", r.player).Stringer("source", source).
		Int("drawn", int(drawn)).Stringer("action", action).Int("triplets", removed).Msg("turn played")

	if r.trigger == noTrigger && grid.AllVisible() {
		r.trigger = r.player
		log.Trace().Int("turn", r.turn).Msgf("end of round triggered by player %d", r.player)
	}

	r.traceGrids()
	return nil
}

// refillStock turns the discard pile, except its top card, into a new shuffled stock.
func (r *round) refillStock() error {
	if len(r.stock) > 0 {
		return fmt.Errorf("%w: stock not empty, shouldn't refill it", game.ErrInvariantViolation)
	}
	top, ok := game.Pop(&r.discard)
	if !ok {
		return fmt.Errorf("%w: empty discard, cannot refill the stock", game.ErrInvariantViolation)
	}
	r.stock = utils.Shuffle(r.e.rng, r.discard)
	r.discard = []game.Card{top}

	log.Trace().Int("turn", r.turn).Int("stock", len(r.stock)).Msg("discard shuffled into stock")
	return nil
}

// reveal gives a hidden cell its card from the grid stock.
func (r *round) reveal(grid game.Grid, loc game.Location) (game.Card, error) {
	card, ok := game.Pop(&r.gridStock)
	if !ok {
		return 0, fmt.Errorf("%w: empty grid stock", game.ErrInvariantViolation)
	}
	grid[loc.X][loc.Y].Card = card
	grid[loc.X][loc.Y].Visible = true
	return card, nil
}

func (r *round) removeTriplets(player, x int) int {
	cards, removed := r.grids[player].RemoveTriplets(x)
	r.discard = append(r.discard, cards...)
	r.triplets[player] += removed
	return removed
}

// score reveals the remaining cells, sweeps the triplets and applies the double penalty.
func (r *round) score() (metrics.RoundMetric, error) {
	for i, grid := range r.grids {
		for x := range grid {
			for y := range grid[x] {
				if grid[x][y].Visible {
					continue
				}
				if _, err := r.reveal(grid, game.Location{X: x, Y: y}); err != nil {
					return metrics.RoundMetric{}, r.e.playerError(i, err)
				}
			}
		}
	}

	scores := make([]int, len(r.grids))
	for i := range r.grids {
		r.removeTriplets(i, game.AllColumns)
		scores[i] = r.grids[i].SumVisible()
	}

	minimum := utils.Min(scores)
	doubled := game.ApplyDoublePenalty(scores, r.trigger)

	log.Debug().Int("game", r.gameIndex).Int("round", r.index).Int("turns", r.turn).
		Int("first", r.first).Int("trigger", r.trigger).Bool("doubled", doubled).Ints("scores", scores).
		Msg("round finished")
	r.traceGrids()

	return metrics.RoundMetric{
		Game:          r.gameIndex,
		Round:         r.index,
		FirstPlayer:   r.first,
		Trigger:       r.trigger,
		Turns:         r.turn,
		Doubled:       doubled,
		Scores:        scores,
		Winners:       utils.IndexesOf(scores, minimum),
		Triplets:      r.triplets,
		DiscardLength: len(r.discard),
		StockLength:   len(r.stock),
	}, nil
}

// view builds the strategy's copy of the round.
func (r *round) view(player int, startOfRound bool, drawFromStock, drawFromDiscard func() (game.Card, error)) Turn {
	return Turn{
		Grids:           game.CloneGrids(r.grids),
		StartOfRound:    startOfRound,
		Discard:         append([]game.Card(nil), r.discard...),
		DrawFromStock:   drawFromStock,
		DrawFromDiscard: drawFromDiscard,
		GameIndex:       r.gameIndex,
		RoundIndex:      r.index,
		TurnIndex:       r.turn,
		LastTurn:        r.trigger != noTrigger,
		GameScores:      append([]int(nil), r.gameScores...),
		PlayerIndex:     player,
	}
}

func (r *round) traceGrids() {
	if zerolog.GlobalLevel() > zerolog.TraceLevel {
		return
	}
	for i, grid := range r.grids {
		log.Trace().Msgf("player %d | visible: %d | sum: %d\n%s", i, grid.CountVisible(), grid.SumVisible(), grid)
	}
	top, _ := game.Top(r.discard)
	log.Trace().Msgf("stock: %d cards | discard: %d cards with %d on top", len(r.stock), len(r.discard), top)
}

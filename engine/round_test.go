package engine

import (
	"context"
	"errors"
	"testing"

	"skyjo/game"
	"skyjo/meta"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func testRules(scoreEndingGame int) meta.Rules {
	return meta.Rules{Players: 2, Columns: 4, Rows: 3, ScoreEndingGame: scoreEndingGame}
}

// fixedDeck stacks 30 twelves in the stock, a 0 as first discard, and a grid stock whose
// first two pops are sixes (player 0 flips them) followed by fives.
func fixedDeck() []game.Card {
	deck := []game.Card{}
	for i := 0; i < 30; i++ {
		deck = append(deck, 12)
	}
	deck = append(deck, 0)
	for i := 0; i < 22; i++ {
		deck = append(deck, 5)
	}
	return append(deck, 6, 6)
}

// fillColumns flips the top of the first column, then swaps drawn stock cards into the
// first hidden cell.
func fillColumns(_ context.Context, turn Turn) (game.Action, error) {
	if turn.StartOfRound {
		return game.NewFlipTwoCards(game.Location{X: 0, Y: 0}, game.Location{X: 0, Y: 1}), nil
	}
	if _, err := turn.DrawFromStock(); err != nil {
		return game.Action{}, err
	}
	hidden := turn.Grid().HiddenCells()
	return game.NewSwap(game.Location{X: hidden[0].X, Y: hidden[0].Y}), nil
}

func newTestEngine(t *testing.T, rules meta.Rules, strategies []Strategy, options ...Option) *Engine {
	t.Helper()
	options = append([]Option{WithDeck(fixedDeck())}, options...)
	e, err := New(rules, strategies, rand.New(rand.NewSource(1)), options...)
	require.NoError(t, err)
	return e
}

func TestPlayRound(t *testing.T) {
	e := newTestEngine(t, testRules(100), []Strategy{StrategyFunc(fillColumns), StrategyFunc(fillColumns)})

	rm, err := e.PlayRound(context.Background(), 0, 0, []int{0, 0})
	require.NoError(t, err)

	require.Equal(t, 0, rm.FirstPlayer, "Higher start flips should play first")
	require.Equal(t, 0, rm.Trigger)
	require.Equal(t, 20, rm.Turns, "Ten swaps each should reveal every grid")
	require.Equal(t, []int{3, 3}, rm.Triplets, "Three columns of twelves should be removed per player")
	require.True(t, rm.Doubled, "Trigger above the minimum should be doubled")
	require.Equal(t, []int{48, 22}, rm.Scores)
	require.Equal(t, []int{1}, rm.Winners)
	require.Equal(t, 10, rm.StockLength)
	require.Equal(t, 1+20+18, rm.DiscardLength, "Discard should hold the first card, the swapped hidden cards and the triplets")
}

func TestPlayRoundTurnView(t *testing.T) {
	var turns []Turn
	recorder := func(ctx context.Context, turn Turn) (game.Action, error) {
		turns = append(turns, turn)
		return fillColumns(ctx, turn)
	}
	e := newTestEngine(t, testRules(100), []Strategy{StrategyFunc(recorder), StrategyFunc(fillColumns)})

	_, err := e.PlayRound(context.Background(), 3, 2, []int{10, 20})
	require.NoError(t, err)
	require.Len(t, turns, 11)

	t.Run("start of round", func(t *testing.T) {
		first := turns[0]
		require.True(t, first.StartOfRound)
		require.Zero(t, first.TurnIndex)
		require.Equal(t, 3, first.GameIndex)
		require.Equal(t, 2, first.RoundIndex)
		require.Equal(t, []int{10, 20}, first.GameScores)
		require.Equal(t, []game.Card{0}, first.Discard)
		require.Equal(t, 12, first.Grid().CountHidden())
	})

	t.Run("first turn", func(t *testing.T) {
		turn := turns[1]
		require.False(t, turn.StartOfRound)
		require.Equal(t, 1, turn.TurnIndex)
		require.False(t, turn.LastTurn)
		require.Equal(t, 2, turn.Grid().CountVisible())
		top, ok := turn.DiscardTop()
		require.True(t, ok)
		require.Equal(t, game.Card(0), top)
	})

	t.Run("turn indexes", func(t *testing.T) {
		for i, turn := range turns[1:] {
			require.Equal(t, 2*i+1, turn.TurnIndex)
		}
	})

	t.Run("views are copies", func(t *testing.T) {
		turns[1].Grids[0][0][0].Card = -2
		turns[1].Discard[0] = -2
		require.Equal(t, game.Card(6), turns[2].Grids[0][0][0].Card)
		require.Equal(t, game.Card(0), turns[2].Discard[0])
	})
}

func TestPlayRoundLastTurn(t *testing.T) {
	var last []bool
	recorder := func(ctx context.Context, turn Turn) (game.Action, error) {
		if !turn.StartOfRound {
			last = append(last, turn.LastTurn)
		}
		return fillColumns(ctx, turn)
	}
	e := newTestEngine(t, testRules(100), []Strategy{StrategyFunc(fillColumns), StrategyFunc(recorder)})

	_, err := e.PlayRound(context.Background(), 0, 0, []int{0, 0})
	require.NoError(t, err)
	require.Len(t, last, 10)
	for _, l := range last[:9] {
		require.False(t, l)
	}
	require.True(t, last[9], "Player after the trigger should know it plays its last turn")
}

func TestPlayRoundViolations(t *testing.T) {
	errStrategy := errors.New("strategy failed")

	tests := []struct {
		name     string
		strategy StrategyFunc
		target   error
	}{
		{
			name: "draw at start of round",
			strategy: func(ctx context.Context, turn Turn) (game.Action, error) {
				if turn.StartOfRound {
					_, _ = turn.DrawFromStock()
				}
				return fillColumns(ctx, turn)
			},
			target: game.ErrProtocolViolation,
		},
		{
			name: "swap at start of round",
			strategy: func(ctx context.Context, turn Turn) (game.Action, error) {
				return game.NewSwap(game.Location{}), nil
			},
			target: game.ErrProtocolViolation,
		},
		{
			name: "same cell flipped twice",
			strategy: func(ctx context.Context, turn Turn) (game.Action, error) {
				return game.NewFlipTwoCards(game.Location{X: 1, Y: 1}, game.Location{X: 1, Y: 1}), nil
			},
			target: game.ErrProtocolViolation,
		},
		{
			name: "no draw",
			strategy: func(ctx context.Context, turn Turn) (game.Action, error) {
				if turn.StartOfRound {
					return fillColumns(ctx, turn)
				}
				return game.NewSwap(game.Location{X: 0, Y: 2}), nil
			},
			target: game.ErrProtocolViolation,
		},
		{
			name: "draw from both piles",
			strategy: func(ctx context.Context, turn Turn) (game.Action, error) {
				if turn.StartOfRound {
					return fillColumns(ctx, turn)
				}
				_, _ = turn.DrawFromStock()
				_, _ = turn.DrawFromDiscard()
				return game.NewSwap(game.Location{X: 0, Y: 2}), nil
			},
			target: game.ErrProtocolViolation,
		},
		{
			name: "draw twice from stock",
			strategy: func(ctx context.Context, turn Turn) (game.Action, error) {
				if turn.StartOfRound {
					return fillColumns(ctx, turn)
				}
				_, _ = turn.DrawFromStock()
				_, _ = turn.DrawFromStock()
				return game.NewSwap(game.Location{X: 0, Y: 2}), nil
			},
			target: game.ErrProtocolViolation,
		},
		{
			name: "discard a card drawn from the discard",
			strategy: func(ctx context.Context, turn Turn) (game.Action, error) {
				if turn.StartOfRound {
					return fillColumns(ctx, turn)
				}
				_, _ = turn.DrawFromDiscard()
				return game.NewDiscardAndFlip(game.Location{X: 0, Y: 2}), nil
			},
			target: game.ErrProtocolViolation,
		},
		{
			name: "flip a visible card",
			strategy: func(ctx context.Context, turn Turn) (game.Action, error) {
				if turn.StartOfRound {
					return fillColumns(ctx, turn)
				}
				_, _ = turn.DrawFromStock()
				return game.NewDiscardAndFlip(game.Location{X: 0, Y: 0}), nil
			},
			target: game.ErrProtocolViolation,
		},
		{
			name: "out of bounds",
			strategy: func(ctx context.Context, turn Turn) (game.Action, error) {
				if turn.StartOfRound {
					return fillColumns(ctx, turn)
				}
				_, _ = turn.DrawFromStock()
				return game.NewSwap(game.Location{X: 4, Y: 0}), nil
			},
			target: game.ErrProtocolViolation,
		},
		{
			name: "flip two cards during the round",
			strategy: func(ctx context.Context, turn Turn) (game.Action, error) {
				if turn.StartOfRound {
					return fillColumns(ctx, turn)
				}
				_, _ = turn.DrawFromStock()
				return game.NewFlipTwoCards(game.Location{X: 1, Y: 0}, game.Location{X: 1, Y: 1}), nil
			},
			target: game.ErrProtocolViolation,
		},
		{
			name: "strategy error",
			strategy: func(ctx context.Context, turn Turn) (game.Action, error) {
				return game.Action{}, errStrategy
			},
			target: errStrategy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, testRules(100), []Strategy{tt.strategy, StrategyFunc(fillColumns)})

			_, err := e.PlayRound(context.Background(), 0, 0, []int{0, 0})
			require.ErrorIs(t, err, tt.target)

			var playerErr *game.PlayerError
			require.ErrorAs(t, err, &playerErr)
			require.Equal(t, 0, playerErr.Player)
			require.True(t, playerErr.Primary)
		})
	}
}

func TestPlayRoundControlStrategyError(t *testing.T) {
	bad := func(ctx context.Context, turn Turn) (game.Action, error) {
		return game.NewSwap(game.Location{}), nil
	}
	e := newTestEngine(t, testRules(100), []Strategy{StrategyFunc(fillColumns), StrategyFunc(bad)})

	_, err := e.PlayRound(context.Background(), 0, 0, []int{0, 0})
	require.ErrorIs(t, err, game.ErrProtocolViolation)

	var playerErr *game.PlayerError
	require.ErrorAs(t, err, &playerErr)
	require.Equal(t, 1, playerErr.Player)
	require.False(t, playerErr.Primary)
	require.Contains(t, err.Error(), "[error from control strategy, please report] player 1")
}

func TestPlayRoundCancelled(t *testing.T) {
	e := newTestEngine(t, testRules(100), []Strategy{StrategyFunc(fillColumns), StrategyFunc(fillColumns)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.PlayRound(ctx, 0, 0, []int{0, 0})
	require.ErrorIs(t, err, context.Canceled)
}

func TestPlayRoundShuffledDeck(t *testing.T) {
	e, err := New(meta.DefaultRules(), []Strategy{
		StrategyFunc(fillColumns), StrategyFunc(fillColumns), StrategyFunc(fillColumns),
		StrategyFunc(fillColumns), StrategyFunc(fillColumns),
	}, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	for round := 0; round < 20; round++ {
		rm, err := e.PlayRound(context.Background(), 0, round, make([]int, 5))
		require.NoError(t, err)
		require.NotEqual(t, noTrigger, rm.Trigger)
		require.LessOrEqual(t, rm.Turns, 5*10, "Every turn reveals a cell")
		require.NotEmpty(t, rm.Winners)
	}
}

func TestRefillStock(t *testing.T) {
	e := newTestEngine(t, testRules(100), []Strategy{StrategyFunc(fillColumns), StrategyFunc(fillColumns)})

	t.Run("keeps the top of the discard", func(t *testing.T) {
		r := e.newRound(0, 0, []int{0, 0})
		r.stock = nil
		r.discard = []game.Card{1, 2, 3, 4}

		require.NoError(t, r.refillStock())
		require.Equal(t, []game.Card{4}, r.discard)
		require.ElementsMatch(t, []game.Card{1, 2, 3}, r.stock)
	})

	t.Run("empty discard", func(t *testing.T) {
		r := e.newRound(0, 0, []int{0, 0})
		r.stock = nil
		r.discard = nil

		require.ErrorIs(t, r.refillStock(), game.ErrInvariantViolation)
	})

	t.Run("stock not empty", func(t *testing.T) {
		r := e.newRound(0, 0, []int{0, 0})
		require.ErrorIs(t, r.refillStock(), game.ErrInvariantViolation)
	})
}

func TestPlayRoundRefillsStock(t *testing.T) {
	deck := []game.Card{12, 0}
	for i := 0; i < 24; i++ {
		deck = append(deck, 5)
	}
	e, err := New(testRules(100), []Strategy{StrategyFunc(fillColumns), StrategyFunc(fillColumns)},
		rand.New(rand.NewSource(1)), WithDeck(deck))
	require.NoError(t, err)

	rm, err := e.PlayRound(context.Background(), 0, 0, []int{0, 0})
	require.NoError(t, err)
	require.Greater(t, rm.Turns, 2, "Round should go on after the single stock card is drawn")
}

func TestPickFirstPlayer(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("single maximum", func(t *testing.T) {
		require.Equal(t, 2, pickFirstPlayer(rng, []int{3, -1, 8, 7}))
	})

	t.Run("ties are drawn uniformly", func(t *testing.T) {
		const draws = 10000
		counts := make([]int, 4)
		for i := 0; i < draws; i++ {
			counts[pickFirstPlayer(rng, []int{3, 7, 7, 2})]++
		}
		require.Zero(t, counts[0])
		require.Zero(t, counts[3])
		require.InDelta(t, draws/2, counts[1], draws*0.05)
		require.InDelta(t, draws/2, counts[2], draws*0.05)
	})
}

func TestNew(t *testing.T) {
	strategies := []Strategy{StrategyFunc(fillColumns), StrategyFunc(fillColumns)}
	rng := rand.New(rand.NewSource(1))

	t.Run("strategy count", func(t *testing.T) {
		_, err := New(testRules(100), strategies[:1], rng)
		require.Error(t, err)
	})

	t.Run("primary not seated", func(t *testing.T) {
		_, err := New(testRules(100), strategies, rng, WithPrimary(2))
		require.Error(t, err)
	})

	t.Run("deck too small", func(t *testing.T) {
		_, err := New(testRules(100), strategies, rng, WithDeck(make([]game.Card, 25)))
		require.Error(t, err)
	})

	t.Run("invalid rules", func(t *testing.T) {
		_, err := New(meta.Rules{Players: 1, Columns: 4, Rows: 3, ScoreEndingGame: 100}, strategies[:1], rng)
		require.Error(t, err)
	})
}

package engine

import (
	"context"
	"fmt"

	"skyjo/game"
	"skyjo/meta"

	"golang.org/x/exp/rand"
)

// Turn is everything a strategy may look at before choosing its action.
type Turn struct {
	Grids        []game.Grid // clone of every player's grid
	StartOfRound bool
	Discard      []game.Card // copy; the top card is the last one
	// Exactly one of the draw functions must be called exactly once on every turn but the
	// start of round, before returning the action.
	DrawFromStock   func() (game.Card, error)
	DrawFromDiscard func() (game.Card, error)
	GameIndex       int
	RoundIndex      int
	TurnIndex       int
	LastTurn        bool  // the end of round has been triggered
	GameScores      []int // copy
	PlayerIndex     int
}

// Grid returns the grid of the acting player.
func (t Turn) Grid() game.Grid {
	return t.Grids[t.PlayerIndex]
}

// DiscardTop returns the card on top of the discard pile.
func (t Turn) DiscardTop() (game.Card, bool) {
	return game.Top(t.Discard)
}

// Strategy chooses the moves of one player. It may block (interactive play); the engine
// waits for it before advancing.
type Strategy interface {
	ChooseAction(ctx context.Context, turn Turn) (game.Action, error)
}

// StrategyFunc adapts a function to the Strategy interface.
type StrategyFunc func(ctx context.Context, turn Turn) (game.Action, error)

func (f StrategyFunc) ChooseAction(ctx context.Context, turn Turn) (game.Action, error) {
	return f(ctx, turn)
}

type Option func(e *Engine)

// WithDeck plays every round with deck in the given order instead of a shuffled full deck.
// The last cards of the deck form the grid stock, the one before them the first discard.
func WithDeck(deck []game.Card) Option {
	return func(e *Engine) {
		e.deck = append([]game.Card(nil), deck...)
		e.fixedDeck = true
	}
}

// WithPrimary sets the seat of the strategy under test (0 by default).
func WithPrimary(player int) Option {
	return func(e *Engine) {
		e.primary = player
	}
}

// Engine plays rounds and games of one table. It is not safe for concurrent use; run one
// Engine per goroutine.
type Engine struct {
	rules      meta.Rules
	strategies []Strategy
	rng        *rand.Rand
	deck       []game.Card
	fixedDeck  bool
	primary    int
}

func New(rules meta.Rules, strategies []Strategy, rng *rand.Rand, options ...Option) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if len(strategies) != rules.Players {
		return nil, fmt.Errorf("number of strategies %d does not match number of players %d", len(strategies), rules.Players)
	}

	e := &Engine{
		rules:      rules,
		strategies: strategies,
		rng:        rng,
		deck:       game.NewDeck(),
		primary:    meta.PRIMARY_PLAYER,
	}
	for _, option := range options {
		option(e)
	}

	if e.primary < 0 || e.primary >= rules.Players {
		return nil, fmt.Errorf("primary player %d is not seated", e.primary)
	}
	// the grid stock, the first discard and at least one card to draw
	if needed := rules.GridStockLength() + 2; len(e.deck) < needed {
		return nil, fmt.Errorf("deck of %d cards is too small, need at least %d", len(e.deck), needed)
	}
	return e, nil
}

func (e *Engine) Rules() meta.Rules {
	return e.rules
}

func (e *Engine) playerError(player int, err error) error {
	return &game.PlayerError{Player: player, Primary: player == e.primary, Err: err}
}

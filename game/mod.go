package game

import (
	"errors"
	"fmt"
)

var (
	// ErrProtocolViolation marks a strategy that broke the rules of the game or of the
	// draw contract.
	ErrProtocolViolation = errors.New("protocol violation")
	// ErrInvariantViolation marks an engine state the rules guarantee cannot happen.
	ErrInvariantViolation = errors.New("internal invariant violation")
)

// PlayerError attributes a fatal error to the strategy of one player.
type PlayerError struct {
	Player  int
	Primary bool // the strategy under test, as opposed to a control strategy
	Err     error
}

func (e *PlayerError) Error() string {
	switch {
	case errors.Is(e.Err, ErrInvariantViolation):
		return fmt.Sprintf("[please report] player %d: %v", e.Player, e.Err)
	case !e.Primary:
		return fmt.Sprintf("[error from control strategy, please report] player %d: %v", e.Player, e.Err)
	default:
		return fmt.Sprintf("player %d: %v", e.Player, e.Err)
	}
}

func (e *PlayerError) Unwrap() error {
	return e.Err
}

// Player is the persistent record of one seat across every round and game of a run.
type Player struct {
	Name          string `yaml:"name"`
	TotalScore    int    `yaml:"totalScore"`
	Victories     int    `yaml:"victories"`
	TotalTriplets int    `yaml:"totalTriplets"`
}

func NewPlayers(count int) []Player {
	players := make([]Player, count)
	for i := range players {
		players[i].Name = fmt.Sprintf("Player %d", i)
	}
	return players
}

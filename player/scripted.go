package player

import (
	"context"
	"errors"
	"fmt"
	"os"

	"skyjo/engine"
	"skyjo/game"

	"gopkg.in/yaml.v3"
)

var ErrScriptExhausted = errors.New("script exhausted")

// Step is one scripted move: the pile to draw from (empty at the start of a round) and the
// action played with the drawn card.
type Step struct {
	Draw      string          `yaml:"draw,omitempty"` // stock or discard
	Action    string          `yaml:"action"`
	Locations []game.Location `yaml:"locations"`
}

type Script struct {
	Steps []Step `yaml:"steps"`
}

// LoadScript reads a YAML script file:
//
//	steps:
//	  - action: flip_two_cards
//	    locations: [{x: 0, y: 0}, {x: 0, y: 1}]
//	  - draw: stock
//	    action: swap
//	    locations: [{x: 0, y: 2}]
func LoadScript(path string) (Script, error) {
	var script Script

	data, err := os.ReadFile(path)
	if err != nil {
		return script, fmt.Errorf("failed to read script file: %w", err)
	}
	if err := yaml.Unmarshal(data, &script); err != nil {
		return script, fmt.Errorf("failed to parse script file %s: %w", path, err)
	}
	for i, step := range script.Steps {
		if _, err := step.action(); err != nil {
			return script, fmt.Errorf("step %d of %s: %w", i, path, err)
		}
	}
	return script, nil
}

func (s Step) action() (game.Action, error) {
	actionType, ok := game.ParseActionType(s.Action)
	if !ok {
		return game.Action{}, fmt.Errorf("unknown action %q", s.Action)
	}
	switch s.Draw {
	case "", "stock", "discard":
	default:
		return game.Action{}, fmt.Errorf("unknown draw source %q", s.Draw)
	}
	return game.Action{Type: actionType, Locations: s.Locations}, nil
}

// Scripted replays its steps in order, one per call. The engine validates the moves.
type Scripted struct {
	script Script
	next   int
}

func NewScripted(script Script) *Scripted {
	return &Scripted{script: script}
}

func (s *Scripted) ChooseAction(_ context.Context, turn engine.Turn) (game.Action, error) {
	if s.next >= len(s.script.Steps) {
		return game.Action{}, fmt.Errorf("%w after %d steps", ErrScriptExhausted, s.next)
	}
	step := s.script.Steps[s.next]
	s.next++

	switch step.Draw {
	case "stock":
		if _, err := turn.DrawFromStock(); err != nil {
			return game.Action{}, err
		}
	case "discard":
		if _, err := turn.DrawFromDiscard(); err != nil {
			return game.Action{}, err
		}
	}
	return step.action()
}

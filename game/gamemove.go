package game

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// wireAction is the JSON shape of an action:
// {"action":"flip_two_cards","locations":[{"x":0,"y":1},{"x":2,"y":0}]}
// {"action":"swap","location":{"x":1,"y":2}}
type wireAction struct {
	Action    *string     `json:"action"`
	Location  *Location   `json:"location,omitempty"`
	Locations []*Location `json:"locations,omitempty"`
}

// ParseAction decodes an action of unknown shape into the typed Action. Any shape error
// is a protocol violation; bounds are left to CheckAction.
func ParseAction(data []byte) (Action, error) {
	var wire wireAction
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&wire); err != nil {
		return Action{}, fmt.Errorf("%w: should return an object of type 'Action': %v", ErrProtocolViolation, err)
	}
	if wire.Action == nil {
		return Action{}, fmt.Errorf("%w: missing 'action'", ErrProtocolViolation)
	}

	actionType, ok := ParseActionType(*wire.Action)
	if !ok {
		return Action{}, fmt.Errorf("%w: unknown action %q", ErrProtocolViolation, *wire.Action)
	}

	switch actionType {
	case FlipTwoCards:
		if wire.Location != nil || len(wire.Locations) != 2 {
			return Action{}, fmt.Errorf("%w: 'flip_two_cards' needs exactly two 'locations'", ErrProtocolViolation)
		}
		locations := make([]Location, 0, 2)
		for _, loc := range wire.Locations {
			if loc == nil {
				return Action{}, fmt.Errorf("%w: null location", ErrProtocolViolation)
			}
			locations = append(locations, *loc)
		}
		return Action{Type: actionType, Locations: locations}, nil
	default:
		if wire.Location == nil || len(wire.Locations) != 0 {
			return Action{}, fmt.Errorf("%w: '%s' needs exactly one 'location'", ErrProtocolViolation, actionType)
		}
		return Action{Type: actionType, Locations: []Location{*wire.Location}}, nil
	}
}

func (a Action) MarshalJSON() ([]byte, error) {
	name := a.Type.String()
	wire := wireAction{Action: &name}
	if a.Type == FlipTwoCards {
		for i := range a.Locations {
			wire.Locations = append(wire.Locations, &a.Locations[i])
		}
	} else if len(a.Locations) > 0 {
		wire.Location = &a.Locations[0]
	}
	return json.Marshal(wire)
}

func (a *Action) UnmarshalJSON(data []byte) error {
	parsed, err := ParseAction(data)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

package player

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"skyjo/engine"
	"skyjo/game"
)

// Interactive asks a human for every move, one line per answer. Coordinates are typed as
// two 1-based digits, column then row: "12" is column 1, row 2.
type Interactive struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewInteractive(in io.Reader, out io.Writer) *Interactive {
	return &Interactive{in: bufio.NewScanner(in), out: out}
}

func (p *Interactive) ChooseAction(ctx context.Context, turn engine.Turn) (game.Action, error) {
	grid := turn.Grid()
	columns, rows := len(grid), grid.Rows()

	fmt.Fprintf(p.out, "\nGame %d, round %d, turn %d. Scores: %v\n", turn.GameIndex+1, turn.RoundIndex+1,
		turn.TurnIndex, turn.GameScores)
	for i, g := range turn.Grids {
		if i == turn.PlayerIndex {
			continue
		}
		fmt.Fprintf(p.out, "Player %d:\n%s", i, g)
	}
	fmt.Fprintf(p.out, "Your grid:\n%s", grid)

	if turn.StartOfRound {
		fmt.Fprintln(p.out, "Start of round: flip two cards.")
		first, err := p.askLocation(ctx, "First card's xy?", columns, rows, nil)
		if err != nil {
			return game.Action{}, err
		}
		second, err := p.askLocation(ctx, "Second card's xy?", columns, rows, &first)
		if err != nil {
			return game.Action{}, err
		}
		return game.NewFlipTwoCards(first, second), nil
	}

	if turn.LastTurn {
		fmt.Fprintln(p.out, "Last turn!")
	}
	top, _ := turn.DiscardTop()
	source, err := p.askChoice(ctx, fmt.Sprintf("Draw from (d)iscard: %d or (s)tock?", top), "d", "s")
	if err != nil {
		return game.Action{}, err
	}

	if source == "d" {
		if _, err := turn.DrawFromDiscard(); err != nil {
			return game.Action{}, err
		}
		loc, err := p.askLocation(ctx, "Swap location's xy?", columns, rows, nil)
		if err != nil {
			return game.Action{}, err
		}
		return game.NewSwap(loc), nil
	}

	card, err := turn.DrawFromStock()
	if err != nil {
		return game.Action{}, err
	}
	action, err := p.askChoice(ctx, fmt.Sprintf("Drew %d. (s)wap or (d)iscard and flip?", card), "s", "d")
	if err != nil {
		return game.Action{}, err
	}
	if action == "s" {
		loc, err := p.askLocation(ctx, "Swap location's xy?", columns, rows, nil)
		if err != nil {
			return game.Action{}, err
		}
		return game.NewSwap(loc), nil
	}
	loc, err := p.askLocation(ctx, "Flip location's xy?", columns, rows, nil)
	if err != nil {
		return game.Action{}, err
	}
	return game.NewDiscardAndFlip(loc), nil
}

// readLine blocks until the next line of input.
func (p *Interactive) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *Interactive) askChoice(ctx context.Context, prompt string, choices ...string) (string, error) {
	for {
		fmt.Fprintf(p.out, "%s ", prompt)
		answer, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		for _, choice := range choices {
			if strings.EqualFold(answer, choice) {
				return choice, nil
			}
		}
		fmt.Fprintf(p.out, "Enter one of %v\n", choices)
	}
}

// askLocation prompts until a valid two-digit location is entered, other than excluded.
func (p *Interactive) askLocation(ctx context.Context, prompt string, columns, rows int, excluded *game.Location) (game.Location, error) {
	hint := fmt.Sprintf("<1-%d><1-%d>", columns, rows)
	for {
		fmt.Fprintf(p.out, "%s %s ", prompt, hint)
		answer, err := p.readLine(ctx)
		if err != nil {
			return game.Location{}, err
		}
		loc, ok := parseLocation(answer, columns, rows)
		switch {
		case !ok:
			fmt.Fprintf(p.out, "Enter two numbers: %s\n", hint)
		case excluded != nil && loc == *excluded:
			fmt.Fprintln(p.out, "Cannot be the same coordinates as the first card.")
		default:
			return loc, nil
		}
	}
}

// parseLocation turns "xy" (1-based) into a 0-based location.
func parseLocation(text string, columns, rows int) (game.Location, bool) {
	if len(text) != 2 {
		return game.Location{}, false
	}
	value, err := strconv.Atoi(text)
	if err != nil || value < 0 {
		return game.Location{}, false
	}
	x, y := value/10, value%10
	if x < 1 || x > columns || y < 1 || y > rows {
		return game.Location{}, false
	}
	return game.Location{X: x - 1, Y: y - 1}, true
}

package experiments

import (
	"fmt"
	"io"
	"math"
	"time"

	"skyjo/experiments/metrics"
	"skyjo/game"
	"skyjo/utils"
)

// Report is the outcome of a run, seen from the primary player.
type Report struct {
	RunID              string
	Seed               uint64
	Games              int
	Rounds             int
	Elapsed            time.Duration
	Players            []game.Player
	Victories          []int
	Primary            int
	PrimaryWon         bool // the primary has the most victories, ties included
	PercentAboveOthers float64
	Required           float64
	Run                metrics.RunMetric
}

func NewReport(players []game.Player, primary int, required float64, run metrics.RunMetric) Report {
	victories := make([]int, len(players))
	for i, p := range players {
		victories[i] = p.Victories
	}

	return Report{
		Games:              run.Games,
		Rounds:             run.Rounds,
		Elapsed:            run.Duration,
		Players:            players,
		Victories:          victories,
		Primary:            primary,
		PrimaryWon:         victories[primary] == utils.Max(victories),
		PercentAboveOthers: PercentAboveOthers(victories, primary),
		Required:           required,
		Run:                run,
	}
}

// Passed reports whether the primary won the run by at least the required margin.
func (r Report) Passed() bool {
	return r.PrimaryWon && r.PercentAboveOthers >= r.Required
}

// PercentAboveOthers is how many percent more victories the primary has than the average
// of the other players, rounded to two decimals. Without any victory among the others it
// is +Inf when the primary won at least once, 0 otherwise.
func PercentAboveOthers(victories []int, primary int) float64 {
	others, sum := 0, 0
	for i, v := range victories {
		if i != primary {
			others++
			sum += v
		}
	}
	average := float64(sum) / float64(others)
	if average == 0 {
		if victories[primary] > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return math.Floor((float64(victories[primary])*100/average-100)*100+0.5) / 100
}

func (r Report) Print(w io.Writer) {
	plural := func(n int, word string) string {
		if n == 1 {
			return fmt.Sprintf("%d %s", n, word)
		}
		return fmt.Sprintf("%d %ss", n, word)
	}

	fmt.Fprintf(w, "%s (%s) played in %.2f s\n", plural(r.Games, "game"), plural(r.Rounds, "round"), r.Elapsed.Seconds())
	fmt.Fprintf(w, "Average turns per round: %.2f\n\n", r.Run.AverageTurns())

	for i, p := range r.Players {
		winner := ""
		if i == r.Primary && r.PrimaryWon {
			winner = " - Winner"
		}
		fmt.Fprintf(w, "  %s | Victories: %d%s | Total score: %d | Triplets: %d", p.Name, p.Victories, winner,
			p.TotalScore, p.TotalTriplets)
		if len(r.Run.PlayedFirst) > i {
			fmt.Fprintf(w, " | Played first: %d | Ended rounds: %d | Doubled: %d",
				r.Run.PlayedFirst[i], r.Run.TriggeredEnd[i], r.Run.Doubled[i])
		}
		fmt.Fprintln(w)
	}

	if r.PrimaryWon {
		fmt.Fprintf(w, "\n  Player %d wins %.2f %% more than the average of the other players", r.Primary, r.PercentAboveOthers)
		if r.Passed() {
			fmt.Fprintf(w, " (required %.2f %%)", r.Required)
		}
		fmt.Fprintln(w)
	}
}

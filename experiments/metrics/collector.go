package metrics

import (
	"sync"
	"time"
)

type RoundMetric struct {
	Game          int
	Round         int
	FirstPlayer   int
	Trigger       int
	Turns         int
	Doubled       bool  // trigger's score was doubled
	Scores        []int // after doubling
	Winners       []int
	Triplets      []int // per player
	DiscardLength int
	StockLength   int
}

type GameMetric struct {
	Game      int
	Rounds    []RoundMetric
	Scores    []int
	Winners   []int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

type RunMetric struct {
	Games        int
	Rounds       int
	Turns        int
	PlayedFirst  []int
	TriggeredEnd []int
	Doubled      []int
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
}

// AverageTurns is the mean round length of the run.
func (m RunMetric) AverageTurns() float64 {
	if m.Rounds == 0 {
		return 0
	}
	return float64(m.Turns) / float64(m.Rounds)
}

type Collector interface {
	Start(players int)
	AddGame(game GameMetric)
	Games() []GameMetric
	Complete() RunMetric
}

type collector struct {
	mu          sync.Mutex
	keepRecords bool
	metric      RunMetric
	games       []GameMetric
}

// NewCollector counts rounds and turns; with keepRecords it also retains every game for a Writer.
func NewCollector(keepRecords bool) Collector {
	return &collector{keepRecords: keepRecords}
}

func (c *collector) Start(players int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.metric = RunMetric{
		PlayedFirst:  make([]int, players),
		TriggeredEnd: make([]int, players),
		Doubled:      make([]int, players),
		StartTime:    time.Now(),
	}
	c.games = nil
}

func (c *collector) AddGame(game GameMetric) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.metric.Games++
	for _, round := range game.Rounds {
		c.metric.Rounds++
		c.metric.Turns += round.Turns
		c.metric.PlayedFirst[round.FirstPlayer]++
		c.metric.TriggeredEnd[round.Trigger]++
		if round.Doubled {
			c.metric.Doubled[round.Trigger]++
		}
	}
	if c.keepRecords {
		c.games = append(c.games, game)
	}
}

func (c *collector) Games() []GameMetric {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.games
}

func (c *collector) Complete() RunMetric {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.metric.EndTime = time.Now()
	c.metric.Duration = c.metric.EndTime.Sub(c.metric.StartTime)
	return c.metric
}

// Package engine provides the interaction rules, pairing policy, community
// rounds and the round loop that turns them into a convergence series.
package engine

import (
	"fmt"
	"log/slog"
)

// Engine drives a community forward one round at a time.
type Engine struct {
	Community *Community
	Rule      Rule
	Round     int    // Rounds completed so far
	Filter    Filter // Selection summarized each round; nil for everyone

	// OnRound is called after the baseline (round 0) and after every round.
	OnRound func(round int, summary Summary, result RoundResult)
}

// NewEngine creates an engine for c using rule.
func NewEngine(c *Community, rule Rule) *Engine {
	return &Engine{
		Community: c,
		Rule:      rule,
	}
}

// Run samples the baseline summary, then runs iterations rounds and samples
// after each. It returns iterations+1 summaries.
func (e *Engine) Run(iterations int) ([]Summary, error) {
	if iterations < 0 {
		return nil, fmt.Errorf("iterations must be non-negative, got %d", iterations)
	}

	summaries := make([]Summary, 0, iterations+1)

	baseline, err := e.sample(RoundResult{})
	if err != nil {
		return nil, err
	}
	summaries = append(summaries, baseline)

	slog.Info("simulation started",
		"population", e.Community.Size(),
		"iterations", iterations,
		"baseline", fmt.Sprintf("%.4f", baseline.Mean),
	)

	for i := 0; i < iterations; i++ {
		res := e.step()
		s, err := e.sample(res)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}

	last := summaries[len(summaries)-1]
	slog.Info("simulation finished",
		"rounds", e.Round,
		"mean", fmt.Sprintf("%.4f", last.Mean),
		"std_dev", fmt.Sprintf("%.4f", last.StdDev),
	)
	return summaries, nil
}

// step advances the community by one round.
func (e *Engine) step() RoundResult {
	res := e.Community.RunRound(e.Rule)
	e.Round++
	return res
}

func (e *Engine) sample(res RoundResult) (Summary, error) {
	s, err := e.Community.Summary(e.Filter)
	if err != nil {
		return Summary{}, fmt.Errorf("round %d: %w", e.Round, err)
	}

	slog.Debug("round complete",
		"round", e.Round,
		"pairs", res.Pairs,
		"interactions", res.Interactions,
		"mean", fmt.Sprintf("%.4f", s.Mean),
		"std_dev", fmt.Sprintf("%.4f", s.StdDev),
	)
	if e.OnRound != nil {
		e.OnRound(e.Round, s, res)
	}
	return s, nil
}

// Series extracts the mean attachment of each summary.
func Series(summaries []Summary) []float64 {
	out := make([]float64, len(summaries))
	for i, s := range summaries {
		out[i] = s.Mean
	}
	return out
}

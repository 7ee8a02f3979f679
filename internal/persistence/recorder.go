package persistence

import "github.com/talgya/socialsim/internal/engine"

// Recorder collects per-round summaries from an engine's OnRound callback.
type Recorder struct {
	rounds []Round
}

// Observe matches engine.Engine.OnRound.
func (r *Recorder) Observe(round int, s engine.Summary, res engine.RoundResult) {
	r.rounds = append(r.rounds, Round{
		Round:        round,
		Count:        s.Count,
		Mean:         s.Mean,
		StdDev:       s.StdDev,
		Min:          s.Min,
		Max:          s.Max,
		Interactions: res.Interactions,
	})
}

// Rounds returns everything observed so far.
func (r *Recorder) Rounds() []Round {
	return r.rounds
}

package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/socialsim/internal/agents"
	"github.com/talgya/socialsim/internal/engine"
	"github.com/talgya/socialsim/internal/entropy"
)

// TestEngine_ReferenceRun covers the reference setup: 1000 agents, 250 rounds,
// default pull. The series has a baseline plus one value per round.
func TestEngine_ReferenceRun(t *testing.T) {
	p := engine.DefaultParams()
	p.Seed = 42
	sim, err := engine.NewSimulation(p)
	require.NoError(t, err)

	summaries, err := sim.Engine.Run(250)
	require.NoError(t, err)

	series := engine.Series(summaries)
	require.Len(t, series, 251)
	for i, v := range series {
		require.GreaterOrEqual(t, v, 0.0, "round %d", i)
		require.LessOrEqual(t, v, 1.0, "round %d", i)
	}
	assert.Equal(t, 1000, sim.Community.Size())
	assert.Equal(t, 250, sim.Engine.Round)
}

// TestEngine_Deterministic checks equal seeds produce equal series.
func TestEngine_Deterministic(t *testing.T) {
	run := func() []float64 {
		p := engine.DefaultParams()
		p.Size = 200
		p.Seed = 99
		sim, err := engine.NewSimulation(p)
		require.NoError(t, err)
		s, err := sim.Engine.Run(30)
		require.NoError(t, err)
		return engine.Series(s)
	}
	assert.Equal(t, run(), run())
}

func TestEngine_OnRound(t *testing.T) {
	src := entropy.New(10)
	c := engine.Build(agents.NewSpawner(src), src, 50)
	e := engine.NewEngine(c, engine.OpinionPull(engine.DefaultPull))

	var rounds []int
	pairs := 0
	e.OnRound = func(round int, s engine.Summary, res engine.RoundResult) {
		rounds = append(rounds, round)
		pairs += res.Pairs
		assert.Equal(t, 50, s.Count)
	}

	summaries, err := e.Run(5)
	require.NoError(t, err)
	assert.Len(t, summaries, 6)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, rounds)
	assert.Equal(t, 5*25, pairs)
}

func TestEngine_ZeroIterations(t *testing.T) {
	src := entropy.New(10)
	c := engine.Build(agents.NewSpawner(src), src, 10)
	summaries, err := engine.NewEngine(c, engine.OpinionPull(engine.DefaultPull)).Run(0)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	want, err := c.AverageAttachment(nil)
	require.NoError(t, err)
	assert.Equal(t, want, summaries[0].Mean)
}

func TestEngine_Errors(t *testing.T) {
	src := entropy.New(1)
	empty := engine.Build(agents.NewSpawner(src), src, 0)

	_, err := engine.NewEngine(empty, engine.OpinionPull(engine.DefaultPull)).Run(3)
	require.ErrorIs(t, err, engine.ErrEmptySelection)

	c := engine.Build(agents.NewSpawner(src), src, 4)
	_, err = engine.NewEngine(c, engine.OpinionPull(engine.DefaultPull)).Run(-1)
	require.Error(t, err)
}

// TestEngine_Filter checks the summarized selection follows Filter.
func TestEngine_Filter(t *testing.T) {
	src := entropy.New(12)
	c := engine.Build(agents.NewSpawner(src), src, 300)
	e := engine.NewEngine(c, engine.OpinionPull(engine.DefaultPull))
	e.Filter = engine.ByGender(agents.GenderFemale)

	summaries, err := e.Run(3)
	require.NoError(t, err)

	females := len(c.Attachments(e.Filter))
	for _, s := range summaries {
		assert.Equal(t, females, s.Count)
	}
	assert.Less(t, females, 300)
}

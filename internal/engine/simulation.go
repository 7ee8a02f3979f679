// Simulation ties the random source, spawner, community and engine together
// for one run.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/socialsim/internal/agents"
	"github.com/talgya/socialsim/internal/entropy"
)

// Params controls one simulation run.
type Params struct {
	Size      int
	Pull      float64
	Seed      int64 // 0 seeds from the clock
	BaseRange agents.BaseRange
}

// DefaultParams returns the reference setup: 1000 agents, default pull.
func DefaultParams() Params {
	return Params{
		Size:      1000,
		Pull:      DefaultPull,
		BaseRange: agents.DefaultBaseRange,
	}
}

// Validate checks the params describe a runnable simulation.
func (p Params) Validate() error {
	if p.Size < 0 {
		return fmt.Errorf("size must be non-negative, got %d", p.Size)
	}
	if p.Pull < 0 || p.Pull > MaxPull {
		return fmt.Errorf("pull must be in [0, %.1f], got %v", MaxPull, p.Pull)
	}
	return p.BaseRange.Validate()
}

// Simulation holds everything one run needs.
type Simulation struct {
	Source    *entropy.Source
	Spawner   *agents.Spawner
	Community *Community
	Engine    *Engine
}

// NewSimulation builds the population described by p and an engine running
// the opinion-pull rule over it.
func NewSimulation(p Params) (*Simulation, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	src := entropy.NewFromTime()
	if p.Seed != 0 {
		src = entropy.New(p.Seed)
	}

	spawner := agents.NewSpawner(src)
	if err := spawner.SetBaseRange(p.BaseRange); err != nil {
		return nil, err
	}

	community := Build(spawner, src, p.Size)
	slog.Info("community built",
		"population", community.Size(),
		"seed", src.Seed(),
		"pull", p.Pull,
	)

	return &Simulation{
		Source:    src,
		Spawner:   spawner,
		Community: community,
		Engine:    NewEngine(community, OpinionPull(p.Pull)),
	}, nil
}

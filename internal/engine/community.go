// Community: the population of one run and the pairing rounds that evolve it.
package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/talgya/socialsim/internal/agents"
	"github.com/talgya/socialsim/internal/entropy"
)

// ErrEmptySelection is returned when a statistic is requested over no agents.
var ErrEmptySelection = errors.New("no agents match selection")

// Community owns the agents of one simulation run. The slice order is
// working state and is reshuffled every round.
type Community struct {
	agents []*agents.Agent
	src    *entropy.Source
}

// RoundResult reports what happened during one round.
type RoundResult struct {
	Pairs        int `json:"pairs"`
	Interactions int `json:"interactions"`
}

// Summary describes the attachment of a selection of agents.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// NewCommunity wraps an existing population. src drives shuffling and the
// interaction draws and should be the same source the agents were spawned from.
func NewCommunity(src *entropy.Source, population []*agents.Agent) *Community {
	return &Community{
		agents: population,
		src:    src,
	}
}

// Build creates a community of size randomized agents.
func Build(spawner *agents.Spawner, src *entropy.Source, size int) *Community {
	return NewCommunity(src, spawner.Population(size))
}

// Size returns the population size.
func (c *Community) Size() int {
	return len(c.agents)
}

// Agents returns a copy of the current agent ordering.
func (c *Community) Agents() []*agents.Agent {
	out := make([]*agents.Agent, len(c.agents))
	copy(out, c.agents)
	return out
}

// RunRound shuffles the population and walks it in disjoint pairs (0,1),
// (2,3), … Each pair interacts under rule with probability
// InteractionProbability. With an odd population the last agent sits the
// round out.
func (c *Community) RunRound(rule Rule) RoundResult {
	c.src.Shuffle(len(c.agents), func(i, j int) {
		c.agents[i], c.agents[j] = c.agents[j], c.agents[i]
	})

	var res RoundResult
	for i := 0; i+1 < len(c.agents); i += 2 {
		a, b := c.agents[i], c.agents[i+1]
		res.Pairs++

		if c.src.Float() >= InteractionProbability(a, b) {
			continue
		}

		rule(a, b)
		a.Attachment = agents.Round2(a.Attachment)
		b.Attachment = agents.Round2(b.Attachment)
		agents.MustValidAttachment(a.Attachment)
		agents.MustValidAttachment(b.Attachment)
		res.Interactions++
	}
	return res
}

// Run applies RunRound iterations times.
func (c *Community) Run(iterations int, rule Rule) {
	for i := 0; i < iterations; i++ {
		c.RunRound(rule)
	}
}

// Attachments returns the attachment of every agent matching filter.
// A nil filter matches everyone.
func (c *Community) Attachments(filter Filter) []float64 {
	var out []float64
	for _, a := range c.agents {
		if filter == nil || filter(a) {
			out = append(out, a.Attachment)
		}
	}
	return out
}

// AverageAttachment returns the mean attachment of the agents matching filter.
func (c *Community) AverageAttachment(filter Filter) (float64, error) {
	s, err := c.Summary(filter)
	if err != nil {
		return 0, err
	}
	return s.Mean, nil
}

// Summary computes attachment statistics over the agents matching filter.
func (c *Community) Summary(filter Filter) (Summary, error) {
	values := c.Attachments(filter)
	if len(values) == 0 {
		return Summary{}, ErrEmptySelection
	}

	s := Summary{Count: len(values), Min: math.Inf(1), Max: math.Inf(-1)}
	total := 0.0
	for _, v := range values {
		total += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Mean = total / float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := v - s.Mean
		variance += d * d
	}
	s.StdDev = math.Sqrt(variance / float64(len(values)))
	return s, nil
}

func (s Summary) String() string {
	return fmt.Sprintf("n=%d mean=%.4f sd=%.4f min=%.2f max=%.2f",
		s.Count, s.Mean, s.StdDev, s.Min, s.Max)
}

package engine

import "github.com/talgya/socialsim/internal/agents"

// TraitCount is the number of demographic traits compared when pairing.
const TraitCount = 4

// SharedTraits counts the traits (age, gender, area, education) on which a
// and b agree.
func SharedTraits(a, b *agents.Agent) int {
	shared := 0
	if a.Age == b.Age {
		shared++
	}
	if a.Gender == b.Gender {
		shared++
	}
	if a.Area == b.Area {
		shared++
	}
	if a.Education == b.Education {
		shared++
	}
	return shared
}

// InteractionProbability is the chance that a proposed pairing of a and b
// actually interacts: 0 with nothing in common, 1 when all traits match.
func InteractionProbability(a, b *agents.Agent) float64 {
	return float64(SharedTraits(a, b)) / TraitCount
}

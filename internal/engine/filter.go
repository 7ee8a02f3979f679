package engine

import "github.com/talgya/socialsim/internal/agents"

// Filter selects agents for a statistic. A nil Filter selects everyone.
type Filter func(a *agents.Agent) bool

// ByGender selects agents of gender g.
func ByGender(g agents.Gender) Filter {
	return func(a *agents.Agent) bool { return a.Gender == g }
}

// ByArea selects agents living in area r.
func ByArea(r agents.Area) Filter {
	return func(a *agents.Agent) bool { return a.Area == r }
}

// ByAge selects agents in age bracket g.
func ByAge(g agents.AgeGroup) Filter {
	return func(a *agents.Agent) bool { return a.Age == g }
}

// ByEducation selects agents with education level e.
func ByEducation(e agents.Education) Filter {
	return func(a *agents.Agent) bool { return a.Education == e }
}

// All selects agents matched by every filter. Nil filters are skipped.
func All(filters ...Filter) Filter {
	return func(a *agents.Agent) bool {
		for _, f := range filters {
			if f != nil && !f(a) {
				return false
			}
		}
		return true
	}
}

// Agent spawning: draws demographic traits from fixed distributions and
// derives each agent's starting attachment from them.
package agents

import (
	"fmt"

	"github.com/talgya/socialsim/internal/entropy"
)

// Trait distributions. Illustrative constants, not calibrated to census data.
var (
	AgeDistribution = MustDistribution(
		Weighted[AgeGroup]{Age25to34, 0.12},
		Weighted[AgeGroup]{Age35to44, 0.14},
		Weighted[AgeGroup]{Age45to54, 0.16},
		Weighted[AgeGroup]{Age55to64, 0.18},
		Weighted[AgeGroup]{Age65to74, 0.20},
		Weighted[AgeGroup]{Age75Plus, 0.20},
	)

	AreaDistribution = MustDistribution(
		Weighted[Area]{AreaUrban, 0.5},
		Weighted[Area]{AreaSemiUrban, 0.3},
		Weighted[Area]{AreaRural, 0.2},
	)

	EducationDistribution = MustDistribution(
		Weighted[Education]{EducationPrimary, 0.02},
		Weighted[Education]{EducationHighSchool, 0.48},
		Weighted[Education]{EducationVocational, 0.2},
		Weighted[Education]{EducationBachelor, 0.2},
		Weighted[Education]{EducationMaster, 0.1},
	)
)

// FemaleThreshold splits a uniform draw: at or above it the agent is female
// (51.5% female, 48.5% male).
const FemaleThreshold = 0.485

// TraitBonus is added to the base draw for each attachment-raising trait:
// older than 35-44, female, master's degree, rural.
const TraitBonus = 0.1

// BaseRange bounds the uniform draw that seeds a derived attachment.
type BaseRange struct {
	Low  float64 `json:"low" yaml:"low"`
	High float64 `json:"high" yaml:"high"`
}

// DefaultBaseRange leaves room for all four trait bonuses below 1.0.
var DefaultBaseRange = BaseRange{Low: 0.1, High: 0.6}

// Validate checks the range can never push a derived attachment past [0, 1].
func (r BaseRange) Validate() error {
	if r.Low < 0 || r.High > 1-4*TraitBonus || r.Low > r.High {
		return fmt.Errorf("base range [%v, %v] must satisfy 0 <= low <= high <= %.1f",
			r.Low, r.High, 1-4*TraitBonus)
	}
	return nil
}

// Spawner creates agents for the simulation.
type Spawner struct {
	src    *entropy.Source
	base   BaseRange
	nextID AgentID
}

// NewSpawner creates a spawner drawing from src with the default base range.
func NewSpawner(src *entropy.Source) *Spawner {
	return &Spawner{
		src:    src,
		base:   DefaultBaseRange,
		nextID: 1,
	}
}

// SetBaseRange replaces the range used for derived attachments.
func (s *Spawner) SetBaseRange(r BaseRange) error {
	if err := r.Validate(); err != nil {
		return err
	}
	s.base = r
	return nil
}

// Population creates count randomized agents.
func (s *Spawner) Population(count int) []*Agent {
	agents := make([]*Agent, 0, count)
	for i := 0; i < count; i++ {
		agents = append(agents, s.Random())
	}
	return agents
}

// Random creates an agent with every trait drawn and a derived attachment.
func (s *Spawner) Random() *Agent {
	return s.Explicit(Traits{
		Age:       s.Age(),
		Gender:    s.Gender(),
		Area:      s.Area(),
		Education: s.Education(),
	})
}

// Explicit creates an agent with the given traits and derives its attachment
// from them.
func (s *Spawner) Explicit(t Traits) *Agent {
	a := &Agent{ID: s.issueID(), Traits: t}
	draw, value := s.Attachment(a.Traits, s.base)
	a.Attachment = value
	a.origin = Origin{Derived: true, Draw: draw}
	return a
}

// Supplied creates an agent with the given traits and attachment. The
// attachment is taken as-is; it panics if outside [0, 1].
func (s *Spawner) Supplied(t Traits, attachment float64) *Agent {
	MustValidAttachment(attachment)
	return &Agent{
		ID:         s.issueID(),
		Traits:     t,
		Attachment: attachment,
	}
}

// Age draws an age bracket.
func (s *Spawner) Age() AgeGroup {
	return AgeDistribution.Draw(s.src.Float())
}

// Gender draws a gender.
func (s *Spawner) Gender() Gender {
	if s.src.Float() >= FemaleThreshold {
		return GenderFemale
	}
	return GenderMale
}

// Area draws an area.
func (s *Spawner) Area() Area {
	return AreaDistribution.Draw(s.src.Float())
}

// Education draws an education level.
func (s *Spawner) Education() Education {
	return EducationDistribution.Draw(s.src.Float())
}

// Attachment draws a base value from r and raises it by TraitBonus for each
// of: age above 35-44, female, master's degree, rural. It returns the base
// draw and the final value, both rounded to two decimals.
func (s *Spawner) Attachment(t Traits, r BaseRange) (origin, value float64) {
	origin = s.src.Uniform(r.Low, r.High)
	return Round2(origin), Round2(DeriveAttachment(origin, t))
}

// DeriveAttachment applies the trait bonuses to a base draw. It panics if the
// result leaves [0, 1].
func DeriveAttachment(base float64, t Traits) float64 {
	value := base
	if t.Age.Above(Age35to44) {
		value += TraitBonus
	}
	if t.Gender == GenderFemale {
		value += TraitBonus
	}
	if t.Education == EducationMaster {
		value += TraitBonus
	}
	if t.Area == AreaRural {
		value += TraitBonus
	}
	// 0.6 + 4×0.1 can land a hair above 1 in floating point.
	MustValidAttachment(Round2(value))
	return value
}

func (s *Spawner) issueID() AgentID {
	id := s.nextID
	s.nextID++
	return id
}

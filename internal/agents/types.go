// Package agents provides the agent data model: demographic traits, the
// attachment value, and the spawner that draws both from fixed distributions.
package agents

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrAttachmentOutOfRange is wrapped by the panic raised when an attachment
// leaves [0, 1]. It always signals a bug in constants or update arithmetic.
var ErrAttachmentOutOfRange = errors.New("attachment out of range [0, 1]")

// AgentID is a unique identifier for an agent within one run.
type AgentID uint64

// AgeGroup is an ordinal age bracket.
type AgeGroup uint8

const (
	Age25to34 AgeGroup = iota
	Age35to44
	Age45to54
	Age55to64
	Age65to74
	Age75Plus
)

// NumAgeGroups is the number of age brackets.
const NumAgeGroups = 6

// Above reports whether g is a strictly older bracket than other.
func (g AgeGroup) Above(other AgeGroup) bool {
	return g > other
}

func (g AgeGroup) String() string {
	switch g {
	case Age25to34:
		return "25-34"
	case Age35to44:
		return "35-44"
	case Age45to54:
		return "45-54"
	case Age55to64:
		return "55-64"
	case Age65to74:
		return "65-74"
	case Age75Plus:
		return "75+"
	}
	return fmt.Sprintf("AgeGroup(%d)", uint8(g))
}

// Gender of an agent.
type Gender uint8

const (
	GenderMale Gender = iota
	GenderFemale
)

// NumGenders is the number of genders.
const NumGenders = 2

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	}
	return fmt.Sprintf("Gender(%d)", uint8(g))
}

// Area is the kind of place an agent lives in.
type Area uint8

const (
	AreaUrban Area = iota
	AreaSemiUrban
	AreaRural
)

// NumAreas is the number of area kinds.
const NumAreas = 3

func (a Area) String() string {
	switch a {
	case AreaUrban:
		return "Urban"
	case AreaSemiUrban:
		return "Semi-Urban"
	case AreaRural:
		return "Rural"
	}
	return fmt.Sprintf("Area(%d)", uint8(a))
}

// Education is the highest completed education level.
type Education uint8

const (
	EducationPrimary Education = iota
	EducationHighSchool
	EducationVocational
	EducationBachelor
	EducationMaster
)

// NumEducations is the number of education levels.
const NumEducations = 5

func (e Education) String() string {
	switch e {
	case EducationPrimary:
		return "Primary"
	case EducationHighSchool:
		return "High-school"
	case EducationVocational:
		return "Vocational"
	case EducationBachelor:
		return "Bachelor"
	case EducationMaster:
		return "Master"
	}
	return fmt.Sprintf("Education(%d)", uint8(e))
}

// Traits holds the four demographic attributes of an agent.
type Traits struct {
	Age       AgeGroup  `json:"age"`
	Gender    Gender    `json:"gender"`
	Area      Area      `json:"area"`
	Education Education `json:"education"`
}

// Origin records how an agent's starting attachment came about.
type Origin struct {
	Derived bool    `json:"derived"` // false when the caller supplied the attachment
	Draw    float64 `json:"draw"`    // pre-bonus uniform draw; zero unless Derived
}

// Agent is a member of the simulated population.
type Agent struct {
	ID AgentID `json:"id"`
	Traits

	// Attachment is the strength of the agent's opinion, 0.0 to 1.0.
	// Values near 0.5 are the most malleable.
	Attachment float64 `json:"attachment"`

	origin Origin
}

// Origin returns the immutable record of how the starting attachment was set.
func (a *Agent) Origin() Origin {
	return a.origin
}

// String renders the agent's traits and attachment for display.
func (a *Agent) String() string {
	origin := "supplied"
	if a.origin.Derived {
		origin = fmt.Sprintf("%.2f", a.origin.Draw)
	}
	return fmt.Sprintf("#%d %s :: %s :: %s :: %s :: %.2f :: %s",
		a.ID, a.Age, a.Gender, a.Area, a.Education, a.Attachment, origin)
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// MustValidAttachment panics if v is outside [0, 1].
func MustValidAttachment(v float64) {
	if v < 0 || v > 1 || math.IsNaN(v) {
		panic(fmt.Errorf("%w: %v", ErrAttachmentOutOfRange, v))
	}
}

// ParseGender parses a gender label, ignoring case.
func ParseGender(s string) (Gender, error) {
	for g := Gender(0); g < NumGenders; g++ {
		if strings.EqualFold(s, g.String()) {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unknown gender %q", s)
}

// ParseArea parses an area label, ignoring case.
func ParseArea(s string) (Area, error) {
	for a := Area(0); a < NumAreas; a++ {
		if strings.EqualFold(s, a.String()) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown area %q", s)
}

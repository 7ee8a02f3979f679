package agents_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/socialsim/internal/agents"
	"github.com/talgya/socialsim/internal/entropy"
)

// panicErr runs f and returns the error it panicked with, if any.
func panicErr(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()
	f()
	return nil
}

// allTraits enumerates every trait combination (6×2×3×5 = 180).
func allTraits() []agents.Traits {
	var out []agents.Traits
	for age := agents.AgeGroup(0); age < agents.NumAgeGroups; age++ {
		for g := agents.Gender(0); g < agents.NumGenders; g++ {
			for area := agents.Area(0); area < agents.NumAreas; area++ {
				for e := agents.Education(0); e < agents.NumEducations; e++ {
					out = append(out, agents.Traits{Age: age, Gender: g, Area: area, Education: e})
				}
			}
		}
	}
	return out
}

func bonuses(t agents.Traits) int {
	n := 0
	if t.Age >= agents.Age45to54 {
		n++
	}
	if t.Gender == agents.GenderFemale {
		n++
	}
	if t.Education == agents.EducationMaster {
		n++
	}
	if t.Area == agents.AreaRural {
		n++
	}
	return n
}

//----------------------------------------------------------------------------//
// Attachment derivation
//----------------------------------------------------------------------------//

// TestDeriveAttachment_AllCombinations verifies that every trait combination at
// both extremes of the default base range stays inside [0.1, 1.0].
func TestDeriveAttachment_AllCombinations(t *testing.T) {
	combos := allTraits()
	require.Len(t, combos, 180)

	for _, tr := range combos {
		for _, base := range []float64{agents.DefaultBaseRange.Low, agents.DefaultBaseRange.High} {
			v := agents.Round2(agents.DeriveAttachment(base, tr))
			require.GreaterOrEqual(t, v, 0.1, "traits %+v base %v", tr, base)
			require.LessOrEqual(t, v, 1.0, "traits %+v base %v", tr, base)
			require.InDelta(t, base+0.1*float64(bonuses(tr)), v, 1e-9, "traits %+v base %v", tr, base)
		}
	}
}

// TestDeriveAttachment_Overflow verifies that a base draw too high for the
// bonuses panics instead of clamping.
func TestDeriveAttachment_Overflow(t *testing.T) {
	tr := agents.Traits{Age: agents.Age75Plus, Gender: agents.GenderFemale, Area: agents.AreaRural, Education: agents.EducationMaster}
	err := panicErr(func() { agents.DeriveAttachment(0.7, tr) })
	require.True(t, errors.Is(err, agents.ErrAttachmentOutOfRange), "got %v", err)
}

// TestAgeAbove checks the "older than 35-44" bracket comparison.
func TestAgeAbove(t *testing.T) {
	assert.False(t, agents.Age25to34.Above(agents.Age35to44))
	assert.False(t, agents.Age35to44.Above(agents.Age35to44))
	assert.True(t, agents.Age45to54.Above(agents.Age35to44))
	assert.True(t, agents.Age75Plus.Above(agents.Age35to44))
}

//----------------------------------------------------------------------------//
// Construction modes
//----------------------------------------------------------------------------//

// TestSpawner_Random checks that random agents carry a derived origin consistent
// with their traits.
func TestSpawner_Random(t *testing.T) {
	s := agents.NewSpawner(entropy.New(42))
	for i := 0; i < 500; i++ {
		a := s.Random()
		o := a.Origin()
		require.True(t, o.Derived)
		require.GreaterOrEqual(t, o.Draw, 0.1)
		require.LessOrEqual(t, o.Draw, 0.6)
		require.GreaterOrEqual(t, a.Attachment, 0.0)
		require.LessOrEqual(t, a.Attachment, 1.0)
		// Draw and value are rounded independently.
		require.InDelta(t, o.Draw+0.1*float64(bonuses(a.Traits)), a.Attachment, 0.0100001)
	}
}

// TestSpawner_Explicit checks the derivation uses the supplied traits.
func TestSpawner_Explicit(t *testing.T) {
	s := agents.NewSpawner(entropy.New(1))
	tr := agents.Traits{Age: agents.Age65to74, Gender: agents.GenderFemale, Area: agents.AreaRural, Education: agents.EducationMaster}
	a := s.Explicit(tr)

	assert.Equal(t, tr, a.Traits)
	assert.True(t, a.Origin().Derived)
	assert.GreaterOrEqual(t, a.Attachment, 0.5)
	assert.LessOrEqual(t, a.Attachment, 1.0)
}

// TestSpawner_Supplied checks explicit attachments bypass derivation.
func TestSpawner_Supplied(t *testing.T) {
	s := agents.NewSpawner(entropy.New(1))
	tr := agents.Traits{Age: agents.Age25to34, Gender: agents.GenderMale, Area: agents.AreaUrban, Education: agents.EducationPrimary}
	a := s.Supplied(tr, 0.95)

	assert.Equal(t, 0.95, a.Attachment)
	assert.Equal(t, agents.Origin{}, a.Origin())

	err := panicErr(func() { s.Supplied(tr, 1.2) })
	assert.True(t, errors.Is(err, agents.ErrAttachmentOutOfRange), "got %v", err)
	err = panicErr(func() { s.Supplied(tr, -0.01) })
	assert.True(t, errors.Is(err, agents.ErrAttachmentOutOfRange), "got %v", err)
}

// TestSpawner_IDs checks IDs are issued sequentially across construction modes.
func TestSpawner_IDs(t *testing.T) {
	s := agents.NewSpawner(entropy.New(1))
	pop := s.Population(3)
	require.Len(t, pop, 3)
	extra := s.Supplied(agents.Traits{}, 0.5)

	assert.Equal(t, agents.AgentID(1), pop[0].ID)
	assert.Equal(t, agents.AgentID(3), pop[2].ID)
	assert.Equal(t, agents.AgentID(4), extra.ID)
}

// TestSpawner_GenderShare checks the female share is near 51.5%.
func TestSpawner_GenderShare(t *testing.T) {
	s := agents.NewSpawner(entropy.New(9))
	const n = 20000
	female := 0
	for i := 0; i < n; i++ {
		if s.Gender() == agents.GenderFemale {
			female++
		}
	}
	assert.InDelta(t, 0.515, float64(female)/n, 0.02)
}

// TestSpawner_Deterministic checks equal seeds spawn equal populations.
func TestSpawner_Deterministic(t *testing.T) {
	a := agents.NewSpawner(entropy.New(5)).Population(50)
	b := agents.NewSpawner(entropy.New(5)).Population(50)
	for i := range a {
		require.Equal(t, a[i].Traits, b[i].Traits)
		require.Equal(t, a[i].Attachment, b[i].Attachment)
	}
}

//----------------------------------------------------------------------------//
// Base range
//----------------------------------------------------------------------------//

func TestBaseRange_Validate(t *testing.T) {
	cases := []struct {
		name string
		r    agents.BaseRange
		ok   bool
	}{
		{"Default", agents.DefaultBaseRange, true},
		{"Point", agents.BaseRange{Low: 0.3, High: 0.3}, true},
		{"NegativeLow", agents.BaseRange{Low: -0.1, High: 0.5}, false},
		{"HighTooHigh", agents.BaseRange{Low: 0.1, High: 0.7}, false},
		{"Inverted", agents.BaseRange{Low: 0.5, High: 0.2}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.r.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}

	s := agents.NewSpawner(entropy.New(1))
	require.Error(t, s.SetBaseRange(agents.BaseRange{Low: 0.5, High: 0.9}))
	require.NoError(t, s.SetBaseRange(agents.BaseRange{Low: 0.2, High: 0.2}))
	a := s.Explicit(agents.Traits{})
	assert.Equal(t, agents.Origin{Derived: true, Draw: 0.2}, a.Origin())
	assert.Equal(t, 0.2, a.Attachment)
}

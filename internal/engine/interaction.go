// Interaction rules: how two paired agents change each other's attachment.
package engine

import (
	"math"

	"github.com/talgya/socialsim/internal/agents"
)

// DefaultPull is the default opinion-pull constant.
const DefaultPull = 0.05

// MaxPull is the largest pull constant that keeps opinion-pull updates inside
// [0, 1] for every pair of valid attachments.
const MaxPull = 0.5

// Rule mutates the attachment of two paired agents in place. Exactly one rule
// runs per simulation.
type Rule func(a, b *agents.Agent)

// Influence is how far an attachment v moves under pull constant c. It peaks
// at c for v = 0.5 and falls linearly to 0 at either extreme.
func Influence(v, c float64) float64 {
	return (0.5 - math.Abs(0.5-v)) / 0.5 * c
}

// OpinionPull returns a rule that draws the two attachments toward each
// other: the higher one moves down, the lower one moves up, each by its own
// influence. Extreme opinions barely move. Equal attachments are left alone.
func OpinionPull(c float64) Rule {
	return func(a, b *agents.Agent) {
		if a.Attachment == b.Attachment {
			return
		}
		ia := Influence(a.Attachment, c)
		ib := Influence(b.Attachment, c)

		if a.Attachment > b.Attachment {
			a.Attachment -= ia
			b.Attachment += ib
		} else {
			a.Attachment += ia
			b.Attachment -= ib
		}
	}
}

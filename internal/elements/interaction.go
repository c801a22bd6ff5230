// Pairwise element interaction classification.
package elements

import "fmt"

// InteractionKind classifies the relationship between an ordered pair of elements.
type InteractionKind uint8

const (
	// Harmonious: identical elements resonate.
	Harmonious InteractionKind = iota
	// Generative: the first element feeds the second.
	Generative
	// Neutral: the first element is fed by the second (receiving, passive support).
	Neutral
	// Controlling: the first element restrains the second.
	Controlling
	// Conflicting: the first element is restrained by the second.
	Conflicting
)

// Name returns a human-readable interaction kind.
func (k InteractionKind) Name() string {
	switch k {
	case Harmonious:
		return "Harmonious"
	case Generative:
		return "Generative"
	case Neutral:
		return "Neutral"
	case Controlling:
		return "Controlling"
	case Conflicting:
		return "Conflicting"
	default:
		return "Unknown"
	}
}

// Interaction describes how element a relates to element b, from a's perspective.
// Only Kind is contractual; Description is display text and must not be parsed.
type Interaction struct {
	Kind        InteractionKind `json:"kind"`
	Description string          `json:"description"`
}

// Classify returns the interaction between a and b from a's perspective.
// For any two distinct elements exactly one of the four directed relations
// holds, so the result is total over valid inputs.
func Classify(a, b Element) Interaction {
	switch {
	case a == b:
		return Interaction{
			Kind:        Harmonious,
			Description: fmt.Sprintf("%s meets %s: the same essence, amplified in resonance", a.Name(), b.Name()),
		}
	case a.Generates() == b:
		return Interaction{
			Kind:        Generative,
			Description: fmt.Sprintf("%s nourishes %s, giving freely of its strength", a.Name(), b.Name()),
		}
	case b.Generates() == a:
		return Interaction{
			Kind:        Neutral,
			Description: fmt.Sprintf("%s is sustained by %s, receiving quiet support", a.Name(), b.Name()),
		}
	case a.Controls() == b:
		return Interaction{
			Kind:        Controlling,
			Description: fmt.Sprintf("%s restrains %s, imposing shape and discipline", a.Name(), b.Name()),
		}
	default:
		return Interaction{
			Kind:        Conflicting,
			Description: fmt.Sprintf("%s is pressed by %s, a friction of opposed natures", a.Name(), b.Name()),
		}
	}
}

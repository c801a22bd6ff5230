// Package elements provides the five-element (wu xing) cycle model:
// the generative and controlling cycles and pairwise interaction
// classification between any two elements.
package elements

// Element is one of the five traditional elements.
type Element uint8

const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

// NumElements is the total number of elements.
const NumElements = 5

// Name returns the English element name.
func (e Element) Name() string {
	switch e {
	case Wood:
		return "Wood"
	case Fire:
		return "Fire"
	case Earth:
		return "Earth"
	case Metal:
		return "Metal"
	case Water:
		return "Water"
	default:
		return "Unknown"
	}
}

// Valid reports whether e is one of the five elements.
func (e Element) Valid() bool {
	return e < NumElements
}

// Polarity is the yin/yang quality of a stem.
type Polarity uint8

const (
	Yang Polarity = 0
	Yin  Polarity = 1
)

// Name returns the polarity name.
func (p Polarity) Name() string {
	if p == Yang {
		return "Yang"
	}
	return "Yin"
}

// Generates returns the element e produces in the generative cycle:
// Wood→Fire→Earth→Metal→Water→Wood.
func (e Element) Generates() Element {
	switch e {
	case Wood:
		return Fire
	case Fire:
		return Earth
	case Earth:
		return Metal
	case Metal:
		return Water
	default:
		return Wood
	}
}

// Controls returns the element e restrains in the controlling cycle:
// Wood→Earth, Earth→Water, Water→Fire, Fire→Metal, Metal→Wood.
func (e Element) Controls() Element {
	switch e {
	case Wood:
		return Earth
	case Earth:
		return Water
	case Water:
		return Fire
	case Fire:
		return Metal
	default:
		return Wood
	}
}

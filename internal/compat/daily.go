// Daily adjustment engine — a day-specific compatibility delta, not a new
// absolute score. A baseline-Challenging pair can still have an A+ day.
package compat

import (
	"github.com/liunara/fourpillars/internal/chart"
	"github.com/liunara/fourpillars/internal/elements"
)

// Grade is the letter grade for how favorable today is for the pair.
type Grade string

// Favorability flags how today's elements land in each subject's sets.
type Favorability struct {
	AFavorable   bool
	AUnfavorable bool
	BFavorable   bool
	BUnfavorable bool
}

// DailyResult carries the adjustment points and grade.
type DailyResult struct {
	Adjustment  int                  `json:"adjustment"`
	Grade       Grade                `json:"grade"`
	Interaction elements.Interaction `json:"interaction"`
}

// DailyAdjustment computes the additive delta for today from three factors:
// per-subject favorability (±3 each side), today's cross-element interaction
// quality (±4 generative/conflicting, ±2 harmonious/controlling), and
// alignment between today's interaction and the pair's baseline.
func DailyAdjustment(todayA, todayB elements.Element, baseline elements.InteractionKind, f Favorability) DailyResult {
	points := 0

	if f.AFavorable {
		points += 3
	}
	if f.AUnfavorable {
		points -= 3
	}
	if f.BFavorable {
		points += 3
	}
	if f.BUnfavorable {
		points -= 3
	}

	today := elements.Classify(todayA, todayB)
	switch today.Kind {
	case elements.Generative:
		points += 4
	case elements.Harmonious:
		points += 2
	case elements.Controlling:
		points -= 2
	case elements.Conflicting:
		points -= 4
	}

	points += alignmentPoints(today.Kind, baseline)

	return DailyResult{
		Adjustment:  points,
		Grade:       gradeFor(points),
		Interaction: today,
	}
}

// alignmentPoints compares today's interaction against the baseline:
// +3 exact match, +2 when both sit on the supportive side, −2 when they sit
// on opposite sides.
func alignmentPoints(today, baseline elements.InteractionKind) int {
	if today == baseline {
		return 3
	}
	ts, bs := supportive(today), supportive(baseline)
	switch {
	case ts && bs:
		return 2
	case ts != bs:
		return -2
	default:
		return 0
	}
}

func supportive(k elements.InteractionKind) bool {
	return k == elements.Generative || k == elements.Harmonious || k == elements.Neutral
}

// gradeFor maps the adjustment sum to a letter grade.
func gradeFor(points int) Grade {
	switch {
	case points >= 10:
		return "A+"
	case points >= 7:
		return "A"
	case points >= 4:
		return "B+"
	case points >= 1:
		return "B"
	case points >= -1:
		return "C"
	case points >= -4:
		return "D+"
	case points >= -7:
		return "D"
	default:
		return "F"
	}
}

// FavorabilityFor derives the per-subject flags from today's elements and
// each subject's favorable sets. todayA is checked against subject A's sets,
// todayB against B's.
func FavorabilityFor(a, b *chart.UserContext, todayA, todayB elements.Element) Favorability {
	return Favorability{
		AFavorable:   containsElement(a.Favorable.Primary, todayA) || containsElement(a.Favorable.Secondary, todayA),
		AUnfavorable: containsElement(a.Favorable.Unfavorable, todayA),
		BFavorable:   containsElement(b.Favorable.Primary, todayB) || containsElement(b.Favorable.Secondary, todayB),
		BUnfavorable: containsElement(b.Favorable.Unfavorable, todayB),
	}
}

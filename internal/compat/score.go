// Package compat scores two-person chart compatibility: five weighted
// sub-scores combined into a calibrated 0–100 rating, plus a day-specific
// adjustment grade.
package compat

import (
	"github.com/liunara/fourpillars/internal/chart"
	"github.com/liunara/fourpillars/internal/elements"
)

// RelationshipType selects the weight profile.
type RelationshipType string

const (
	Romantic  RelationshipType = "romantic"
	Colleague RelationshipType = "colleague"
	Family    RelationshipType = "family"
	Friend    RelationshipType = "friend"
	Other     RelationshipType = "other"
)

// Factor identifies one of the five sub-scores.
type Factor string

const (
	FactorTenGods         Factor = "ten_gods"
	FactorMarriagePalace  Factor = "marriage_palace"
	FactorFavorable       Factor = "favorable_elements"
	FactorElementCycle    Factor = "element_cycle"
	FactorStrengthBalance Factor = "strength_balance"
)

// factorMax is the fixed maximum of each sub-score; the maxima sum to 100.
var factorMax = map[Factor]int{
	FactorTenGods:         40,
	FactorMarriagePalace:  25,
	FactorFavorable:       20,
	FactorElementCycle:    10,
	FactorStrengthBalance: 5,
}

// factorOrder fixes presentation order.
var factorOrder = []Factor{
	FactorTenGods, FactorMarriagePalace, FactorFavorable,
	FactorElementCycle, FactorStrengthBalance,
}

// weightProfiles maps each relationship type to its five weights. Every
// profile sums to exactly 100. Romantic leans on the marriage palace;
// colleague trades it for Ten God and favorable-element harmony.
var weightProfiles = map[RelationshipType]map[Factor]int{
	Romantic: {
		FactorTenGods: 40, FactorMarriagePalace: 25, FactorFavorable: 20,
		FactorElementCycle: 10, FactorStrengthBalance: 5,
	},
	Colleague: {
		FactorTenGods: 50, FactorMarriagePalace: 5, FactorFavorable: 30,
		FactorElementCycle: 10, FactorStrengthBalance: 5,
	},
	Family: {
		FactorTenGods: 45, FactorMarriagePalace: 15, FactorFavorable: 25,
		FactorElementCycle: 10, FactorStrengthBalance: 5,
	},
	Friend: {
		FactorTenGods: 45, FactorMarriagePalace: 15, FactorFavorable: 25,
		FactorElementCycle: 10, FactorStrengthBalance: 5,
	},
	Other: {
		FactorTenGods: 45, FactorMarriagePalace: 15, FactorFavorable: 25,
		FactorElementCycle: 10, FactorStrengthBalance: 5,
	},
}

// WeightsFor returns the weight profile for a relationship type, defaulting
// to the mid-point profile for unknown types.
func WeightsFor(rel RelationshipType) map[Factor]int {
	if w, ok := weightProfiles[rel]; ok {
		return w
	}
	return weightProfiles[Other]
}

// Rating is the categorical compatibility band.
type Rating string

const (
	HighlyCompatible     Rating = "Highly Compatible"
	Compatible           Rating = "Compatible"
	ModeratelyCompatible Rating = "Moderately Compatible"
	Challenging          Rating = "Challenging"
	VeryChallenging      Rating = "Very Challenging"
)

// FactorScore is one computed sub-score.
type FactorScore struct {
	Factor   Factor  `json:"factor"`
	Raw      int     `json:"raw"`
	Max      int     `json:"max"`
	Weight   int     `json:"weight"`
	Weighted float64 `json:"weighted"`
}

// Report is the deterministic compatibility result.
type Report struct {
	Overall     float64              `json:"overall"` // 0–100
	Rating      Rating               `json:"rating"`
	Headline    string               `json:"headline"`
	Interaction elements.Interaction `json:"interaction"`
	Factors     []FactorScore        `json:"factors"`
}

// PairInteraction classifies the element relation between the two subjects'
// day masters, from A's perspective.
func PairInteraction(a, b *chart.UserContext) elements.Interaction {
	return elements.Classify(a.DayMaster().Element, b.DayMaster().Element)
}

// Score combines the five sub-scores under the relationship type's weight
// profile. The result is always within [0, 100].
func Score(a, b *chart.UserContext, interaction elements.Interaction, rel RelationshipType) *Report {
	raw := map[Factor]int{
		FactorTenGods:         tenGodsScore(a, b),
		FactorMarriagePalace:  palaceScore(a.Personal.Branch.Ordinal, b.Personal.Branch.Ordinal),
		FactorFavorable:       favorableScore(a, b),
		FactorElementCycle:    cycleScore(interaction.Kind),
		FactorStrengthBalance: strengthScore(a.Strength, b.Strength),
	}

	weights := WeightsFor(rel)
	var overall float64
	factors := make([]FactorScore, 0, len(factorOrder))
	for _, f := range factorOrder {
		fs := FactorScore{
			Factor: f,
			Raw:    raw[f],
			Max:    factorMax[f],
			Weight: weights[f],
		}
		fs.Weighted = float64(fs.Raw) / float64(fs.Max) * float64(fs.Weight)
		overall += fs.Weighted
		factors = append(factors, fs)
	}
	overall = clampF(overall, 0, 100)

	return &Report{
		Overall:     overall,
		Rating:      ratingFor(overall),
		Headline:    headlines[interaction.Kind],
		Interaction: interaction,
		Factors:     factors,
	}
}

// tenGodsScore: neutral baseline 20, shifted by how each day master's element
// lands in the other's favorable and unfavorable sets.
func tenGodsScore(a, b *chart.UserContext) int {
	score := 20
	aDom := a.DayMaster().Element
	bDom := b.DayMaster().Element

	if containsElement(b.Favorable.Primary, aDom) {
		score += 10
	}
	if containsElement(a.Favorable.Primary, bDom) {
		score += 10
	}
	if containsElement(b.Favorable.Unfavorable, aDom) {
		score -= 10
	}
	if containsElement(a.Favorable.Unfavorable, bDom) {
		score -= 10
	}
	return clampI(score, 0, 40)
}

// favorableScore: baseline 10, +5 per shared favorable-primary element
// (capped at +10), −5 per cross-conflict.
func favorableScore(a, b *chart.UserContext) int {
	score := 10

	shared := 0
	for _, e := range a.Favorable.Primary {
		if containsElement(b.Favorable.Primary, e) {
			shared++
		}
	}
	if shared > 2 {
		shared = 2
	}
	score += shared * 5

	for _, e := range a.Favorable.Primary {
		if containsElement(b.Favorable.Unfavorable, e) {
			score -= 5
		}
	}
	for _, e := range b.Favorable.Primary {
		if containsElement(a.Favorable.Unfavorable, e) {
			score -= 5
		}
	}
	return clampI(score, 0, 20)
}

// cycleScore maps the day-master interaction kind to its fixed quality.
func cycleScore(kind elements.InteractionKind) int {
	switch kind {
	case elements.Generative:
		return 10
	case elements.Harmonious:
		return 8
	case elements.Neutral:
		return 5
	case elements.Controlling:
		return 3
	default:
		return 0
	}
}

// strengthScore: Strong+Weak is the traditional complementary ideal.
func strengthScore(a, b chart.Strength) int {
	switch {
	case (a == chart.StrengthStrong && b == chart.StrengthWeak) ||
		(a == chart.StrengthWeak && b == chart.StrengthStrong):
		return 5
	case a == chart.StrengthBalanced && b == chart.StrengthBalanced:
		return 4
	case a == chart.StrengthBalanced || b == chart.StrengthBalanced:
		return 3
	default:
		return 2
	}
}

func ratingFor(overall float64) Rating {
	switch {
	case overall >= 80:
		return HighlyCompatible
	case overall >= 65:
		return Compatible
	case overall >= 50:
		return ModeratelyCompatible
	case overall >= 35:
		return Challenging
	default:
		return VeryChallenging
	}
}

// headlines are fixed per interaction kind; narrative generation elaborates
// on them but never replaces them.
var headlines = map[elements.InteractionKind]string{
	elements.Generative:  "A nourishing bond: one of you feeds the other's fire",
	elements.Harmonious:  "Kindred essences: you amplify what you share",
	elements.Neutral:     "A quiet alliance: support flows without friction",
	elements.Controlling: "A shaping bond: structure and will in tension",
	elements.Conflicting: "A tempering bond: friction that demands growth",
}

func containsElement(list []elements.Element, e elements.Element) bool {
	for _, x := range list {
		if x == e {
			return true
		}
	}
	return false
}

func clampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

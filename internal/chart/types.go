// Package chart provides the natal chart data model: heavenly stems, earthly
// branches, the four pillars, luck-cycle records, and the normalized subject
// context consumed by every downstream engine.
package chart

import (
	"time"

	"github.com/liunara/fourpillars/internal/elements"
)

// Sex is the subject's sex, which determines luck-cycle direction.
type Sex uint8

const (
	SexMale   Sex = 0
	SexFemale Sex = 1
)

// StemDescriptor describes one of the ten heavenly stems.
type StemDescriptor struct {
	Character string            `json:"character"`
	Element   elements.Element  `json:"element"`
	Polarity  elements.Polarity `json:"polarity"`
	Ordinal   int               `json:"ordinal"` // 0–9 position in the stem cycle
}

// BranchDescriptor describes one of the twelve earthly branches.
type BranchDescriptor struct {
	Character string           `json:"character"`
	Element   elements.Element `json:"element"`
	Animal    string           `json:"animal"`
	Ordinal   int              `json:"ordinal"` // 0–11 position in the branch cycle
}

// Pillar is one stem/branch pair of the natal chart.
type Pillar struct {
	Stem   StemDescriptor   `json:"stem"`
	Branch BranchDescriptor `json:"branch"`
}

// Strength classifies the day master's support level in the chart.
type Strength uint8

const (
	StrengthBalanced Strength = iota
	StrengthStrong
	StrengthWeak
)

// Name returns the strength classification name.
func (s Strength) Name() string {
	switch s {
	case StrengthStrong:
		return "Strong"
	case StrengthWeak:
		return "Weak"
	default:
		return "Balanced"
	}
}

// FavorableElements groups the elements that support or weaken the day master.
type FavorableElements struct {
	Primary     []elements.Element `json:"primary"`
	Secondary   []elements.Element `json:"secondary"`
	Unfavorable []elements.Element `json:"unfavorable"`
}

// Pattern is a detected natal chart pattern.
type Pattern struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Element elements.Element `json:"element"`
}

// SpecialStar is a detected auspicious star in the chart.
type SpecialStar struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// LuckCycleRecord is one 10-year governance period. Index 0 is the pre-luck
// era (no governing stem/branch, age 0 up to the first real cycle).
// Bound fields are nil when the upstream calculation could not fix them;
// the period locator estimates missing bounds on copies.
type LuckCycleRecord struct {
	Stem      *StemDescriptor   `json:"stem,omitempty"`
	Branch    *BranchDescriptor `json:"branch,omitempty"`
	AgeStart  *int              `json:"age_start,omitempty"`
	YearStart *int              `json:"year_start,omitempty"`
	YearEnd   *int              `json:"year_end,omitempty"`
	TenGod    *string           `json:"ten_god,omitempty"` // often missing; derived on demand
}

// PreLuckEra reports whether the record is the pre-luck era record.
func (r *LuckCycleRecord) PreLuckEra() bool {
	return r.Stem == nil && r.Branch == nil
}

// UserContext is the normalized chart snapshot consumed by the scoring and
// narrative engines. Immutable after construction.
type UserContext struct {
	Social     Pillar  `json:"social"`     // year pillar
	Career     Pillar  `json:"career"`     // month pillar
	Personal   Pillar  `json:"personal"`   // day pillar
	Innovation *Pillar `json:"innovation"` // hour pillar, nil when birth time unknown

	Favorable    FavorableElements `json:"favorable_elements"`
	Strength     Strength          `json:"chart_strength"`
	Patterns     []Pattern         `json:"natal_patterns"`
	SpecialStars []SpecialStar     `json:"special_stars"`

	Birth         time.Time `json:"birth"`
	Sex           Sex       `json:"sex"`
	BirthTimeSet  bool      `json:"birth_time_known"`
}

// DayMaster returns the day pillar's stem, the chart's core identity.
func (c *UserContext) DayMaster() StemDescriptor {
	return c.Personal.Stem
}

// ActiveStarCount returns the number of active special stars.
func (c *UserContext) ActiveStarCount() int {
	n := 0
	for _, s := range c.SpecialStars {
		if s.Active {
			n++
		}
	}
	return n
}

// Package luck resolves which 10-year luck cycle governs a subject at a
// reference instant. Upstream cycle records carry unreliable or missing
// age/year bounds, so resolution runs an explicit ordered list of strategies
// with the upstream's own guess double-checked rather than trusted.
package luck

import (
	"fmt"
	"time"

	"github.com/liunara/fourpillars/internal/chart"
	"github.com/liunara/fourpillars/internal/tengod"
)

const (
	// yearsPerCycle is the fixed luck-cycle length.
	yearsPerCycle = 10
	// estimatedFirstCycleAge is the domain-standard start age assumed for
	// the first real cycle when exact solar-term timing is unavailable.
	estimatedFirstCycleAge = 8
	// estimatedPreLuckEnd is the assumed last pre-luck age when even the
	// first cycle's start is unknown.
	estimatedPreLuckEnd = 7
)

// ResolvedCycle is a luck-cycle record with bounds filled in, never written
// back to the caller's records. Estimated flags mark inferred bounds so
// consumers can distinguish fact from inference.
type ResolvedCycle struct {
	Index  int                     `json:"index"`
	Stem   *chart.StemDescriptor   `json:"stem,omitempty"`
	Branch *chart.BranchDescriptor `json:"branch,omitempty"`

	AgeStart  int `json:"age_start"`
	AgeEnd    int `json:"age_end"`
	YearStart int `json:"year_start"`
	YearEnd   int `json:"year_end"`

	AgeEstimated  bool `json:"age_estimated"`
	YearEstimated bool `json:"year_estimated"`

	PreLuckEra bool           `json:"pre_luck_era"`
	TenGod     *tengod.TenGod `json:"ten_god,omitempty"` // nil for the pre-luck era
}

// Remaining is calendar-precise time left in the current cycle.
type Remaining struct {
	Years   int `json:"years"`
	Months  int `json:"months"`
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// Result is the outcome of period location.
type Result struct {
	Current    ResolvedCycle  `json:"current"`
	Next       *ResolvedCycle `json:"next,omitempty"`
	Remaining  Remaining      `json:"remaining"`
	CurrentAge int            `json:"current_age"`
}

// strategyFunc is one resolution attempt. It returns the index of the
// matching resolved cycle, or -1 when it cannot decide.
type strategyFunc func(cycles []ResolvedCycle, hint *chart.LuckCycleRecord, age, refYear int) int

// Locate resolves the active luck cycle for the reference instant.
// The caller's records are never mutated; estimation happens on copies.
// birthTimeKnown documents whether records are expected to carry real
// bounds; missing bounds are estimated either way, flagged as such.
func Locate(cycles []chart.LuckCycleRecord, hint *chart.LuckCycleRecord, dayMaster chart.StemDescriptor,
	birth, reference time.Time, birthTimeKnown bool) (*Result, error) {

	if len(cycles) == 0 {
		return nil, fmt.Errorf("luck: no cycle records")
	}

	resolved := resolveBounds(cycles, birth)
	age := ageAt(birth, reference)
	refYear := reference.Year()

	strategies := []strategyFunc{
		hintStrategy,
		ageRangeStrategy,
		calendarYearStrategy,
		preLuckStrategy,
		lastRecordStrategy,
	}

	idx := -1
	for _, s := range strategies {
		if idx = s(resolved, hint, age, refYear); idx >= 0 {
			break
		}
	}
	if idx < 0 {
		idx = len(resolved) - 1
	}

	// Final guard: a pre-luck result for anyone past early childhood means
	// the upstream bounds were inconsistent; retry the age scan directly.
	if resolved[idx].PreLuckEra && age > 10 {
		if retry := ageRangeStrategy(resolved, nil, age, refYear); retry >= 0 {
			idx = retry
		}
	}

	current := resolved[idx]
	if err := attachTenGod(&current, cycles[idx], dayMaster); err != nil {
		return nil, err
	}

	result := &Result{
		Current:    current,
		CurrentAge: age,
	}
	if idx+1 < len(resolved) {
		next := resolved[idx+1]
		if err := attachTenGod(&next, cycles[idx+1], dayMaster); err != nil {
			return nil, err
		}
		result.Next = &next
	}

	end := birth.AddDate(current.AgeEnd+1, 0, 0)
	result.Remaining = remainingBetween(reference, end)
	return result, nil
}

// LocateFromAnalysis resolves against a chart analysis, using the oracle's
// own current-pillar guess as the first (double-checked) strategy.
func LocateFromAnalysis(a *chart.Analysis, reference time.Time) (*Result, error) {
	return Locate(a.LuckCycles, a.CurrentLuckPillar(reference), a.Day.Stem,
		a.Birth, reference, a.TimeKnown)
}

// ageAt computes current age in whole years from the mean solar-year length.
func ageAt(birth, reference time.Time) int {
	days := reference.Sub(birth).Hours() / 24
	age := int(days / 365.25)
	if age < 0 {
		age = 0
	}
	return age
}

// resolveBounds copies every record into a ResolvedCycle, estimating missing
// bounds: first real cycle at the standard start age, each subsequent cycle
// ten years later. Present bounds are kept as fact. Missing bounds are the
// expected condition when the birth time is unknown; with a known birth time
// they signal an upstream defect but are recovered the same way, which is
// why estimation keys on the bounds themselves rather than on the caller's
// time-known flag.
func resolveBounds(cycles []chart.LuckCycleRecord, birth time.Time) []ResolvedCycle {
	resolved := make([]ResolvedCycle, len(cycles))
	birthYear := birth.Year()

	realIdx := 0 // position among non-pre-luck records
	for i, rec := range cycles {
		rc := ResolvedCycle{
			Index:      i,
			Stem:       rec.Stem,
			Branch:     rec.Branch,
			PreLuckEra: rec.PreLuckEra(),
		}

		if rc.PreLuckEra {
			rc.AgeStart = 0
			resolved[i] = rc
			continue
		}

		if rec.AgeStart != nil {
			rc.AgeStart = *rec.AgeStart
		} else {
			rc.AgeStart = estimatedFirstCycleAge + yearsPerCycle*realIdx
			rc.AgeEstimated = true
		}
		rc.AgeEnd = rc.AgeStart + yearsPerCycle - 1

		if rec.YearStart != nil {
			rc.YearStart = *rec.YearStart
		} else {
			rc.YearStart = birthYear + rc.AgeStart
			rc.YearEstimated = true
		}
		if rec.YearEnd != nil {
			rc.YearEnd = *rec.YearEnd
		} else {
			rc.YearEnd = rc.YearStart + yearsPerCycle - 1
			rc.YearEstimated = true
		}

		resolved[i] = rc
		realIdx++
	}

	// The pre-luck era ends where the first real cycle begins.
	for i := range resolved {
		if !resolved[i].PreLuckEra {
			continue
		}
		end := estimatedPreLuckEnd
		if first := firstReal(resolved); first >= 0 {
			end = resolved[first].AgeStart - 1
		}
		resolved[i].AgeEnd = end
		resolved[i].YearStart = birthYear
		resolved[i].YearEnd = birthYear + end
	}
	return resolved
}

func firstReal(cycles []ResolvedCycle) int {
	for i := range cycles {
		if !cycles[i].PreLuckEra {
			return i
		}
	}
	return -1
}

// hintStrategy accepts the oracle's guess only when a real record matches its
// stem, branch, and year start, and that record's age range actually contains
// the computed age. The oracle compares cycle ends against January 1st rather
// than exact anniversaries, so an unverified guess is wrong for part of every
// boundary year.
func hintStrategy(cycles []ResolvedCycle, hint *chart.LuckCycleRecord, age, refYear int) int {
	// Stem and branch are independently nullable upstream; a half-populated
	// hint cannot be matched against anything.
	if hint == nil || hint.Stem == nil || hint.Branch == nil || hint.YearStart == nil {
		return -1
	}
	for i := range cycles {
		c := &cycles[i]
		if c.PreLuckEra || c.Stem == nil || c.Branch == nil {
			continue
		}
		if c.Stem.Character != hint.Stem.Character || c.Branch.Character != hint.Branch.Character {
			continue
		}
		if c.YearStart != *hint.YearStart {
			continue
		}
		if age >= c.AgeStart && age <= c.AgeEnd {
			return i
		}
	}
	return -1
}

// ageRangeStrategy scans real cycles for one whose age range contains the
// current age.
func ageRangeStrategy(cycles []ResolvedCycle, _ *chart.LuckCycleRecord, age, _ int) int {
	for i := range cycles {
		if cycles[i].PreLuckEra {
			continue
		}
		if age >= cycles[i].AgeStart && age <= cycles[i].AgeEnd {
			return i
		}
	}
	return -1
}

// calendarYearStrategy scans real cycles for one whose year range contains
// the reference calendar year.
func calendarYearStrategy(cycles []ResolvedCycle, _ *chart.LuckCycleRecord, _, refYear int) int {
	for i := range cycles {
		if cycles[i].PreLuckEra {
			continue
		}
		if refYear >= cycles[i].YearStart && refYear <= cycles[i].YearEnd {
			return i
		}
	}
	return -1
}

// preLuckStrategy selects the pre-luck era when the reference year precedes
// the first real cycle.
func preLuckStrategy(cycles []ResolvedCycle, _ *chart.LuckCycleRecord, _, refYear int) int {
	first := firstReal(cycles)
	if first < 0 || refYear >= cycles[first].YearStart {
		return -1
	}
	for i := range cycles {
		if cycles[i].PreLuckEra {
			return i
		}
	}
	return -1
}

// lastRecordStrategy falls back to the final record, skipping back to the
// last real record if the final one is the pre-luck era (a contradiction for
// anyone past early childhood).
func lastRecordStrategy(cycles []ResolvedCycle, _ *chart.LuckCycleRecord, _, _ int) int {
	idx := len(cycles) - 1
	if !cycles[idx].PreLuckEra {
		return idx
	}
	for i := idx; i >= 0; i-- {
		if !cycles[i].PreLuckEra {
			return i
		}
	}
	return idx
}

// attachTenGod fills the resolved cycle's Ten God: the record's own value if
// present, else derived from the day master. The pre-luck era has none.
func attachTenGod(rc *ResolvedCycle, rec chart.LuckCycleRecord, dayMaster chart.StemDescriptor) error {
	if rc.PreLuckEra || rc.Stem == nil {
		return nil
	}
	if rec.TenGod != nil {
		if g, ok := parseTenGod(*rec.TenGod); ok {
			rc.TenGod = &g
			return nil
		}
	}
	g, err := tengod.Resolve(dayMaster, *rc.Stem)
	if err != nil {
		return fmt.Errorf("luck: derive ten god for cycle %d: %w", rc.Index, err)
	}
	rc.TenGod = &g
	return nil
}

func parseTenGod(name string) (tengod.TenGod, bool) {
	for g := tengod.TenGod(0); g <= 9; g++ {
		if g.Name() == name || g.English() == name {
			return g, true
		}
	}
	return 0, false
}

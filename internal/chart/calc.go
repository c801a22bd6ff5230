// Sexagenary chart computation — the chart oracle boundary.
//
// Pillars are derived arithmetically from the sexagenary cycle: the year
// pillar from the 60-year cycle anchored at 1984 (甲子), the month pillar via
// the five-tigers rule, the day pillar from the day count since a fixed
// anchor, and the hour pillar via the five-rats rule. Solar-term boundaries
// are approximated by fixed calendar days; solar-term-precise conversion is
// deliberately out of scope.
package chart

import (
	"fmt"
	"time"

	"github.com/liunara/fourpillars/internal/elements"
)

const (
	// Supported birth year range. Outside it the fixed-day solar-term
	// approximation drifts too far to be meaningful.
	minYear = 1700
	maxYear = 2200

	// Luck cycles generated after the pre-luck era record.
	realLuckCycles = 8
)

// dayAnchor is 2000-01-01, a 戊午 day (sexagenary position 54).
var dayAnchor = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

const dayAnchorSexagenary = 54

// solarTermDay approximates the day of month on which each sexagenary month
// begins (index 0 = January).
var solarTermDay = [12]int{6, 4, 6, 5, 6, 6, 7, 8, 8, 8, 7, 7}

// Analysis is the chart oracle's output: the four natal pillars and the
// luck-cycle records. Helper methods compute pillars for arbitrary instants.
type Analysis struct {
	Birth     time.Time `json:"birth"`
	Sex       Sex       `json:"sex"`
	TimeKnown bool      `json:"time_known"`

	Year  Pillar  `json:"year"`
	Month Pillar  `json:"month"`
	Day   Pillar  `json:"day"`
	Hour  *Pillar `json:"hour,omitempty"`

	LuckCycles []LuckCycleRecord `json:"luck_cycles"`
}

// Compute builds a chart analysis for the given birth instant. It validates
// its own output and returns an error rather than partial data.
func Compute(birth time.Time, sex Sex, timeKnown bool) (*Analysis, error) {
	if birth.IsZero() {
		return nil, fmt.Errorf("chart: zero birth instant")
	}
	if y := birth.Year(); y < minYear || y > maxYear {
		return nil, fmt.Errorf("chart: birth year %d outside supported range [%d, %d]", y, minYear, maxYear)
	}

	a := &Analysis{
		Birth:     birth,
		Sex:       sex,
		TimeKnown: timeKnown,
	}

	a.Year = yearPillar(birth)
	a.Month = monthPillar(birth)
	a.Day = dayPillar(birth)
	if timeKnown {
		hp := hourPillar(a.Day.Stem, birth.Hour())
		a.Hour = &hp
	}

	a.LuckCycles = buildLuckCycles(a)

	if len(a.LuckCycles) != realLuckCycles+1 {
		return nil, fmt.Errorf("chart: built %d luck cycles, want %d", len(a.LuckCycles), realLuckCycles+1)
	}
	return a, nil
}

// PillarForYear returns the governing pillar of an arbitrary calendar year.
func (a *Analysis) PillarForYear(year int) Pillar {
	return PillarAt(year - 1984)
}

// DayPillarFor returns the governing pillar of an arbitrary calendar day.
func (a *Analysis) DayPillarFor(date time.Time) Pillar {
	return dayPillar(date)
}

// CurrentLuckPillar is the oracle's own guess at the active luck cycle for
// the reference instant. It compares whole calendar years only, so a cycle
// that ends mid-year is misattributed until January 1st — callers are
// expected to double-check the guess against the age range.
func (a *Analysis) CurrentLuckPillar(reference time.Time) *LuckCycleRecord {
	year := reference.Year()
	for i := range a.LuckCycles {
		rec := &a.LuckCycles[i]
		if rec.PreLuckEra() || rec.YearStart == nil || rec.YearEnd == nil {
			continue
		}
		if year >= *rec.YearStart && year <= *rec.YearEnd {
			return rec
		}
	}
	return nil
}

// effectiveSexagenaryYear returns the sexagenary year in effect at the given
// instant, treating the year as beginning on the February solar term.
func effectiveSexagenaryYear(t time.Time) int {
	year := t.Year()
	if int(t.Month()) < 2 || (int(t.Month()) == 2 && t.Day() < solarTermDay[1]) {
		year--
	}
	return year
}

func yearPillar(t time.Time) Pillar {
	return PillarAt(effectiveSexagenaryYear(t) - 1984)
}

// sexagenaryMonthIndex returns the month index (0 = first month, the Tiger
// month beginning in early February) in effect at t.
func sexagenaryMonthIndex(t time.Time) int {
	m := int(t.Month()) // 1–12
	if t.Day() < solarTermDay[m-1] {
		m--
		if m == 0 {
			m = 12
		}
	}
	// February (m=2) is the first sexagenary month.
	return ((m - 2) + 12) % 12
}

func monthPillar(t time.Time) Pillar {
	yearStem := yearPillar(t).Stem
	idx := sexagenaryMonthIndex(t)
	// Five-tigers rule: the first month's stem is fixed by the year stem.
	stemOrd := (yearStem.Ordinal%5)*2 + 2 + idx
	branchOrd := 2 + idx // first month is the Tiger branch
	return Pillar{Stem: StemAt(stemOrd), Branch: BranchAt(branchOrd)}
}

func dayPillar(t time.Time) Pillar {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	days := int(day.Sub(dayAnchor).Hours() / 24)
	return PillarAt(dayAnchorSexagenary + days)
}

func hourPillar(dayStem StemDescriptor, hour int) Pillar {
	branchOrd := ((hour + 1) / 2) % 12
	// Five-rats rule: the Rat hour's stem is fixed by the day stem.
	stemOrd := (dayStem.Ordinal%5)*2 + branchOrd
	return Pillar{Stem: StemAt(stemOrd), Branch: BranchAt(branchOrd)}
}

// sexagenaryIndex returns the 0–59 cycle position of a pillar.
func sexagenaryIndex(p Pillar) int {
	for n := 0; n < 60; n++ {
		if n%10 == p.Stem.Ordinal && n%12 == p.Branch.Ordinal {
			return n
		}
	}
	return 0 // unreachable for well-formed pillars
}

// buildLuckCycles derives the luck-cycle records from the month pillar.
// Cycles step forward through the sexagenary cycle for yang-year males and
// yin-year females, backward otherwise. When the birth time is unknown the
// start age cannot be fixed and bounds after the pre-luck era are left nil,
// matching the upstream data-quality defect downstream code must absorb.
func buildLuckCycles(a *Analysis) []LuckCycleRecord {
	forward := (a.Sex == SexMale) == (a.Year.Stem.Polarity == elements.Yang)

	records := make([]LuckCycleRecord, 0, realLuckCycles+1)

	zero := 0
	records = append(records, LuckCycleRecord{AgeStart: &zero})

	var startAge int
	if a.TimeKnown {
		startAge = luckStartAge(a.Birth, forward)
	}

	monthIdx := sexagenaryIndex(a.Month)
	step := 1
	if !forward {
		step = -1
	}

	for i := 1; i <= realLuckCycles; i++ {
		p := PillarAt(monthIdx + step*i)
		stem := p.Stem
		branch := p.Branch
		rec := LuckCycleRecord{Stem: &stem, Branch: &branch}

		if a.TimeKnown {
			age := startAge + 10*(i-1)
			ys := a.Birth.Year() + age
			ye := ys + 9
			rec.AgeStart = &age
			rec.YearStart = &ys
			rec.YearEnd = &ye
		}
		records = append(records, rec)
	}
	return records
}

// luckStartAge approximates the first cycle's start age from the distance to
// the nearest solar-term boundary: three days of separation per year of age,
// clamped to [1, 10].
func luckStartAge(birth time.Time, forward bool) int {
	var days int
	if forward {
		next := nextTermBoundary(birth)
		days = int(next.Sub(birth).Hours() / 24)
	} else {
		prev := prevTermBoundary(birth)
		days = int(birth.Sub(prev).Hours() / 24)
	}
	age := days / 3
	if age < 1 {
		age = 1
	}
	if age > 10 {
		age = 10
	}
	return age
}

func nextTermBoundary(t time.Time) time.Time {
	year, month := t.Year(), int(t.Month())
	if t.Day() >= solarTermDay[month-1] {
		month++
		if month > 12 {
			month = 1
			year++
		}
	}
	return time.Date(year, time.Month(month), solarTermDay[month-1], 0, 0, 0, 0, t.Location())
}

func prevTermBoundary(t time.Time) time.Time {
	year, month := t.Year(), int(t.Month())
	if t.Day() < solarTermDay[month-1] {
		month--
		if month < 1 {
			month = 12
			year--
		}
	}
	return time.Date(year, time.Month(month), solarTermDay[month-1], 0, 0, 0, 0, t.Location())
}

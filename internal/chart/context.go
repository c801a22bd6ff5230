// UserContext extraction — reduces a chart analysis to the normalized
// snapshot every scoring and narrative engine consumes.
package chart

import "github.com/liunara/fourpillars/internal/elements"

// NewUserContext builds the normalized subject context from an analysis.
// The returned value is a snapshot; callers must not mutate it.
func NewUserContext(a *Analysis) *UserContext {
	ctx := &UserContext{
		Social:       a.Year,
		Career:       a.Month,
		Personal:     a.Day,
		Birth:        a.Birth,
		Sex:          a.Sex,
		BirthTimeSet: a.TimeKnown,
	}
	if a.Hour != nil {
		hp := *a.Hour
		ctx.Innovation = &hp
	}

	counts := elementCounts(ctx)
	ctx.Strength = classifyStrength(ctx.DayMaster().Element, counts)
	ctx.Favorable = favorableFor(ctx.DayMaster().Element, ctx.Strength)
	ctx.Patterns = detectPatterns(ctx.DayMaster().Element, counts)
	ctx.SpecialStars = detectStars(a)
	return ctx
}

// elementCounts tallies every stem and branch element in the chart.
func elementCounts(ctx *UserContext) [elements.NumElements]int {
	var counts [elements.NumElements]int
	add := func(p Pillar) {
		counts[p.Stem.Element]++
		counts[p.Branch.Element]++
	}
	add(ctx.Social)
	add(ctx.Career)
	add(ctx.Personal)
	if ctx.Innovation != nil {
		add(*ctx.Innovation)
	}
	return counts
}

// classifyStrength weighs supporters (same element plus the element that
// generates the day master) against the rest of the chart. The day master
// itself is excluded from its own support.
func classifyStrength(dm elements.Element, counts [elements.NumElements]int) Strength {
	var producer elements.Element
	for e := elements.Element(0); e < elements.NumElements; e++ {
		if e.Generates() == dm {
			producer = e
		}
	}
	support := counts[dm] - 1 + counts[producer]
	switch {
	case support >= 4:
		return StrengthStrong
	case support <= 1:
		return StrengthWeak
	default:
		return StrengthBalanced
	}
}

// favorableFor derives the favorable-element sets from day master and
// strength using the traditional balancing principle: a strong day master
// favors what drains it, a weak one favors what feeds it.
func favorableFor(dm elements.Element, s Strength) FavorableElements {
	var producer, controller elements.Element
	for e := elements.Element(0); e < elements.NumElements; e++ {
		if e.Generates() == dm {
			producer = e
		}
		if e.Controls() == dm {
			controller = e
		}
	}
	child := dm.Generates()
	wealth := dm.Controls()

	switch s {
	case StrengthStrong:
		return FavorableElements{
			Primary:     []elements.Element{child, controller},
			Secondary:   []elements.Element{wealth},
			Unfavorable: []elements.Element{dm, producer},
		}
	case StrengthWeak:
		return FavorableElements{
			Primary:     []elements.Element{producer, dm},
			Secondary:   []elements.Element{},
			Unfavorable: []elements.Element{controller, child},
		}
	default:
		return FavorableElements{
			Primary:     []elements.Element{producer},
			Secondary:   []elements.Element{dm},
			Unfavorable: []elements.Element{controller},
		}
	}
}

// detectPatterns finds dominant-element structures: three or more chart
// characters of one element relative to the day master.
func detectPatterns(dm elements.Element, counts [elements.NumElements]int) []Pattern {
	var patterns []Pattern
	for e := elements.Element(0); e < elements.NumElements; e++ {
		if counts[e] < 3 {
			continue
		}
		switch {
		case e == dm:
			patterns = append(patterns, Pattern{ID: "companion_dominant", Name: "Companion Forest", Element: e})
		case e == dm.Generates():
			patterns = append(patterns, Pattern{ID: "output_dominant", Name: "Flowing Expression", Element: e})
		case e == dm.Controls():
			patterns = append(patterns, Pattern{ID: "wealth_dominant", Name: "Gathered Wealth", Element: e})
		case e.Generates() == dm:
			patterns = append(patterns, Pattern{ID: "resource_dominant", Name: "Deep Roots", Element: e})
		case e.Controls() == dm:
			patterns = append(patterns, Pattern{ID: "authority_dominant", Name: "Seat of Authority", Element: e})
		}
	}
	return patterns
}

// peachBlossom maps the day-branch trine to its romance-star branch.
var peachBlossom = map[int]int{
	// 申子辰 → 酉, 寅午戌 → 卯, 巳酉丑 → 午, 亥卯未 → 子
	8: 9, 0: 9, 4: 9,
	2: 3, 6: 3, 10: 3,
	5: 6, 9: 6, 1: 6,
	11: 0, 3: 0, 7: 0,
}

// travelingHorse maps the day-branch trine to its movement-star branch.
var travelingHorse = map[int]int{
	8: 2, 0: 2, 4: 2,
	2: 8, 6: 8, 10: 8,
	5: 11, 9: 11, 1: 11,
	11: 5, 3: 5, 7: 5,
}

// noblemanBranches maps a day-stem ordinal to its two nobleman branches.
var noblemanBranches = [10][2]int{
	{1, 7}, {0, 8}, {11, 9}, {11, 9}, {1, 7},
	{0, 8}, {1, 7}, {6, 2}, {3, 5}, {3, 5},
}

// detectStars runs the four supported special-star lookups against the
// chart's branches. A star is reported active when its trigger branch
// appears anywhere in the chart.
func detectStars(a *Analysis) []SpecialStar {
	present := map[int]bool{
		a.Year.Branch.Ordinal:  true,
		a.Month.Branch.Ordinal: true,
		a.Day.Branch.Ordinal:   true,
	}
	if a.Hour != nil {
		present[a.Hour.Branch.Ordinal] = true
	}
	dayBranch := a.Day.Branch.Ordinal
	dayStem := a.Day.Stem.Ordinal

	nb := noblemanBranches[dayStem]
	stars := []SpecialStar{
		{ID: "peach_blossom", Name: "Peach Blossom", Active: present[peachBlossom[dayBranch]]},
		{ID: "traveling_horse", Name: "Traveling Horse", Active: present[travelingHorse[dayBranch]]},
		{ID: "nobleman", Name: "Heavenly Nobleman", Active: present[nb[0]] || present[nb[1]]},
		{ID: "academic", Name: "Academic Star", Active: present[(dayStem+4)%12]},
	}
	return stars
}

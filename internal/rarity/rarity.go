// Package rarity estimates how uncommon a chart is by multiplying
// independent empirical frequency factors. This is presentational flavor,
// not a calibrated statistic: the factors are assumed independent even
// though real correlations likely exist.
package rarity

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/liunara/fourpillars/internal/chart"
	"github.com/liunara/fourpillars/internal/elements"
)

// Estimate is the combined uniqueness figure.
type Estimate struct {
	OneIn      int64   `json:"one_in"`
	Percentile float64 `json:"percentile"` // share of charts at least this common, 0–100
	Display    string  `json:"display"`    // e.g. "1 in 12,400"
}

// typeFrequency maps a day-master stem character to its observed share of
// charts. The ten types are near-uniform; yang stems run slightly higher.
var typeFrequency = map[string]float64{
	"甲": 0.025, "乙": 0.022, "丙": 0.024, "丁": 0.021, "戊": 0.025,
	"己": 0.022, "庚": 0.024, "辛": 0.021, "壬": 0.023, "癸": 0.020,
}

// patternFrequency maps a pattern id to its observed share.
var patternFrequency = map[string]float64{
	"companion_dominant": 0.008,
	"output_dominant":    0.006,
	"wealth_dominant":    0.005,
	"resource_dominant":  0.006,
	"authority_dominant": 0.003,
}

// starCountFrequency indexes by the number of active special stars.
var starCountFrequency = [5]float64{1.0, 0.5, 0.35, 0.25, 0.15}

// distributionFrequency by element-spread shape.
const (
	distBalanced     = 0.35 // all five elements present
	distSkewed       = 0.40 // one element missing
	distConcentrated = 0.25 // two or more elements missing
)

// EstimateFor computes the rarity estimate for a subject's chart.
func EstimateFor(ctx *chart.UserContext) Estimate {
	return estimate(
		ctx.DayMaster().Character,
		ctx.Patterns,
		distributionShape(ctx),
		ctx.ActiveStarCount(),
	)
}

// estimate multiplies the four factor probabilities.
// P = P(type) × P(pattern | present, else 1) × P(distribution) × P(starCount).
func estimate(typeCode string, patterns []chart.Pattern, distP float64, starCount int) Estimate {
	p := 1.0

	if tp, ok := typeFrequency[typeCode]; ok {
		p *= tp
	} else {
		p *= 0.025
	}

	// Only the rarest detected pattern contributes; stacking all of them
	// would overstate rarity badly for busy charts.
	best := 1.0
	for _, pat := range patterns {
		if f, ok := patternFrequency[pat.ID]; ok && f < best {
			best = f
		}
	}
	p *= best

	p *= distP

	idx := starCount
	if idx < 0 {
		idx = 0
	}
	if idx >= len(starCountFrequency) {
		idx = len(starCountFrequency) - 1
	}
	p *= starCountFrequency[idx]

	oneIn := int64(math.Round(1 / p))
	if oneIn < 1 {
		oneIn = 1
	}

	percentile := 100 * (1 - p)
	if percentile < 0 {
		percentile = 0
	}

	return Estimate{
		OneIn:      oneIn,
		Percentile: percentile,
		Display:    fmt.Sprintf("1 in %s", humanize.Comma(oneIn)),
	}
}

// distributionShape classifies the chart's element spread.
func distributionShape(ctx *chart.UserContext) float64 {
	var present [elements.NumElements]bool
	mark := func(p chart.Pillar) {
		present[p.Stem.Element] = true
		present[p.Branch.Element] = true
	}
	mark(ctx.Social)
	mark(ctx.Career)
	mark(ctx.Personal)
	if ctx.Innovation != nil {
		mark(*ctx.Innovation)
	}

	missing := 0
	for _, ok := range present {
		if !ok {
			missing++
		}
	}
	switch {
	case missing == 0:
		return distBalanced
	case missing == 1:
		return distSkewed
	default:
		return distConcentrated
	}
}

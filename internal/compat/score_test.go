package compat

import (
	"testing"
	"time"

	"github.com/liunara/fourpillars/internal/chart"
	"github.com/liunara/fourpillars/internal/elements"
)

func contextFor(t *testing.T, birth time.Time, sex chart.Sex) *chart.UserContext {
	t.Helper()
	a, err := chart.Compute(birth, sex, true)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	return chart.NewUserContext(a)
}

func TestWeightProfilesSumTo100(t *testing.T) {
	for rel, weights := range weightProfiles {
		sum := 0
		for _, w := range weights {
			sum += w
		}
		if sum != 100 {
			t.Errorf("%s weights sum to %d, want 100", rel, sum)
		}
	}
}

func TestFactorMaximaSumTo100(t *testing.T) {
	sum := 0
	for _, m := range factorMax {
		sum += m
	}
	if sum != 100 {
		t.Errorf("factor maxima sum to %d, want 100", sum)
	}
}

func TestScoreBounds(t *testing.T) {
	births := []time.Time{
		time.Date(1978, 3, 10, 12, 0, 0, 0, time.UTC),
		time.Date(1984, 6, 1, 8, 0, 0, 0, time.UTC),
		time.Date(1990, 5, 20, 14, 0, 0, 0, time.UTC),
		time.Date(2001, 11, 3, 22, 0, 0, 0, time.UTC),
	}
	rels := []RelationshipType{Romantic, Colleague, Family, Friend, Other}

	for _, ba := range births {
		for _, bb := range births {
			a := contextFor(t, ba, chart.SexMale)
			b := contextFor(t, bb, chart.SexFemale)
			interaction := PairInteraction(a, b)
			for _, rel := range rels {
				report := Score(a, b, interaction, rel)
				if report.Overall < 0 || report.Overall > 100 {
					t.Errorf("overall %f out of range for %s/%s %s",
						report.Overall, ba.Format("2006-01-02"), bb.Format("2006-01-02"), rel)
				}
				if len(report.Factors) != 5 {
					t.Errorf("got %d factors, want 5", len(report.Factors))
				}
				for _, f := range report.Factors {
					if f.Raw < 0 || f.Raw > f.Max {
						t.Errorf("factor %s raw %d outside [0, %d]", f.Factor, f.Raw, f.Max)
					}
				}
				if report.Headline == "" {
					t.Error("empty headline")
				}
			}
		}
	}
}

func TestPairInteractionSameDayMaster(t *testing.T) {
	birth := time.Date(1990, 5, 20, 14, 0, 0, 0, time.UTC)
	a := contextFor(t, birth, chart.SexMale)
	b := contextFor(t, birth, chart.SexFemale)
	if got := PairInteraction(a, b); got.Kind != elements.Harmonious {
		t.Errorf("identical day masters classify as %s, want Harmonious", got.Kind.Name())
	}
}

func TestPalaceScore(t *testing.T) {
	tests := []struct {
		name string
		a, b int
		want int
	}{
		{"identical", 6, 6, 20},
		{"combination 子丑", 0, 1, 25},
		{"clash 子午", 0, 6, 5},
		{"harm 子未", 0, 7, 10},
		{"trinity 申子", 8, 0, 22},
		{"plain 子寅", 0, 2, 15},
	}
	for _, tt := range tests {
		if got := palaceScore(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: palaceScore(%d, %d) = %d, want %d", tt.name, tt.a, tt.b, got, tt.want)
		}
		// Unordered: swapping arguments never changes the score.
		if got := palaceScore(tt.b, tt.a); got != palaceScore(tt.a, tt.b) {
			t.Errorf("%s: palaceScore asymmetric", tt.name)
		}
	}
}

func TestCycleScore(t *testing.T) {
	tests := []struct {
		kind elements.InteractionKind
		want int
	}{
		{elements.Generative, 10},
		{elements.Harmonious, 8},
		{elements.Neutral, 5},
		{elements.Controlling, 3},
		{elements.Conflicting, 0},
	}
	for _, tt := range tests {
		if got := cycleScore(tt.kind); got != tt.want {
			t.Errorf("cycleScore(%s) = %d, want %d", tt.kind.Name(), got, tt.want)
		}
	}
}

func TestStrengthScore(t *testing.T) {
	tests := []struct {
		a, b chart.Strength
		want int
	}{
		{chart.StrengthStrong, chart.StrengthWeak, 5},
		{chart.StrengthWeak, chart.StrengthStrong, 5},
		{chart.StrengthBalanced, chart.StrengthBalanced, 4},
		{chart.StrengthBalanced, chart.StrengthStrong, 3},
		{chart.StrengthStrong, chart.StrengthStrong, 2},
		{chart.StrengthWeak, chart.StrengthWeak, 2},
	}
	for _, tt := range tests {
		if got := strengthScore(tt.a, tt.b); got != tt.want {
			t.Errorf("strengthScore(%s, %s) = %d, want %d", tt.a.Name(), tt.b.Name(), got, tt.want)
		}
	}
}

func TestRatingBands(t *testing.T) {
	tests := []struct {
		overall float64
		want    Rating
	}{
		{92, HighlyCompatible},
		{80, HighlyCompatible},
		{79.9, Compatible},
		{65, Compatible},
		{50, ModeratelyCompatible},
		{35, Challenging},
		{34.9, VeryChallenging},
		{0, VeryChallenging},
	}
	for _, tt := range tests {
		if got := ratingFor(tt.overall); got != tt.want {
			t.Errorf("ratingFor(%.1f) = %s, want %s", tt.overall, got, tt.want)
		}
	}
}

func TestWeightsForUnknownType(t *testing.T) {
	got := WeightsFor(RelationshipType("sibling"))
	want := weightProfiles[Other]
	for f, w := range want {
		if got[f] != w {
			t.Errorf("unknown type weight for %s = %d, want Other's %d", f, got[f], w)
		}
	}
}

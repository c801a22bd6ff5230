package compat

import (
	"testing"

	"github.com/liunara/fourpillars/internal/chart"
	"github.com/liunara/fourpillars/internal/elements"
)

func TestDailyAdjustmentBestDay(t *testing.T) {
	// Both sides favorable (+6), generative cross interaction (+4), exact
	// baseline match (+3): the ceiling of 13 points, grade A+.
	f := Favorability{AFavorable: true, BFavorable: true}
	result := DailyAdjustment(elements.Wood, elements.Fire, elements.Generative, f)

	if result.Adjustment != 13 {
		t.Errorf("adjustment = %d, want 13", result.Adjustment)
	}
	if result.Grade != "A+" {
		t.Errorf("grade = %s, want A+", result.Grade)
	}
	if result.Interaction.Kind != elements.Generative {
		t.Errorf("interaction = %s, want Generative", result.Interaction.Kind.Name())
	}
}

func TestDailyAdjustmentWorstDay(t *testing.T) {
	// Both sides unfavorable (−6), conflicting cross interaction (−4),
	// opposite of a supportive baseline (−2): the floor of −12, grade F.
	f := Favorability{AUnfavorable: true, BUnfavorable: true}
	result := DailyAdjustment(elements.Earth, elements.Wood, elements.Generative, f)

	if result.Adjustment != -12 {
		t.Errorf("adjustment = %d, want -12", result.Adjustment)
	}
	if result.Grade != "F" {
		t.Errorf("grade = %s, want F", result.Grade)
	}
}

func TestDailyAdjustmentNeutralDay(t *testing.T) {
	// No favorability flags, neutral cross interaction (0), both supportive
	// but not identical (+2).
	result := DailyAdjustment(elements.Fire, elements.Wood, elements.Harmonious, Favorability{})
	if result.Adjustment != 2 {
		t.Errorf("adjustment = %d, want 2", result.Adjustment)
	}
	if result.Grade != "B" {
		t.Errorf("grade = %s, want B", result.Grade)
	}
}

func TestAlignmentPoints(t *testing.T) {
	tests := []struct {
		name            string
		today, baseline elements.InteractionKind
		want            int
	}{
		{"exact match", elements.Controlling, elements.Controlling, 3},
		{"both supportive", elements.Generative, elements.Harmonious, 2},
		{"opposite sides", elements.Conflicting, elements.Generative, -2},
		{"both adverse, different", elements.Controlling, elements.Conflicting, 0},
	}
	for _, tt := range tests {
		if got := alignmentPoints(tt.today, tt.baseline); got != tt.want {
			t.Errorf("%s: alignmentPoints = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestGradeBands(t *testing.T) {
	tests := []struct {
		points int
		want   Grade
	}{
		{13, "A+"}, {10, "A+"},
		{9, "A"}, {7, "A"},
		{6, "B+"}, {4, "B+"},
		{3, "B"}, {1, "B"},
		{0, "C"}, {-1, "C"},
		{-2, "D+"}, {-4, "D+"},
		{-5, "D"}, {-7, "D"},
		{-8, "F"}, {-12, "F"},
	}
	for _, tt := range tests {
		if got := gradeFor(tt.points); got != tt.want {
			t.Errorf("gradeFor(%d) = %s, want %s", tt.points, got, tt.want)
		}
	}
}

func TestFavorabilityFor(t *testing.T) {
	a := &chart.UserContext{Favorable: chart.FavorableElements{
		Primary:     []elements.Element{elements.Fire},
		Secondary:   []elements.Element{elements.Earth},
		Unfavorable: []elements.Element{elements.Water},
	}}
	b := &chart.UserContext{Favorable: chart.FavorableElements{
		Primary:     []elements.Element{elements.Metal},
		Unfavorable: []elements.Element{elements.Wood},
	}}

	f := FavorabilityFor(a, b, elements.Fire, elements.Wood)
	if !f.AFavorable || f.AUnfavorable {
		t.Errorf("fire against A: got %+v, want favorable only", f)
	}
	if f.BFavorable || !f.BUnfavorable {
		t.Errorf("wood against B: got %+v, want unfavorable only", f)
	}

	// Secondary elements count as favorable too.
	f = FavorabilityFor(a, b, elements.Earth, elements.Metal)
	if !f.AFavorable || !f.BFavorable {
		t.Errorf("secondary/primary favorables not recognized: %+v", f)
	}
}

package tengod

import (
	"testing"

	"github.com/liunara/fourpillars/internal/chart"
)

func TestResolveTotal(t *testing.T) {
	// Every ordered stem pair must resolve, and over the full 10×10 grid
	// each of the ten gods appears exactly ten times.
	counts := map[TenGod]int{}
	for dm := 0; dm < 10; dm++ {
		for o := 0; o < 10; o++ {
			g, err := Resolve(chart.StemAt(dm), chart.StemAt(o))
			if err != nil {
				t.Fatalf("Resolve(%d, %d): %v", dm, o, err)
			}
			counts[g]++
		}
	}
	for g := BiJian; g <= PianYin; g++ {
		if counts[g] != 10 {
			t.Errorf("%s appears %d times over the stem grid, want 10", g.Name(), counts[g])
		}
	}
}

func TestResolveKnownPairs(t *testing.T) {
	// Day master 甲 (Yang Wood) against each stem.
	jia := chart.StemAt(0)
	tests := []struct {
		other int
		want  TenGod
	}{
		{0, BiJian},    // 甲: same element, same polarity
		{1, JieCai},    // 乙: same element, opposite polarity
		{2, ShangGuan}, // 丙: wood feeds fire, same polarity
		{3, ShiShen},   // 丁: wood feeds fire, opposite polarity
		{4, PianCai},   // 戊: wood controls earth, same polarity
		{5, ZhengCai},  // 己
		{6, QiSha},     // 庚: metal controls wood, same polarity
		{7, ZhengGuan}, // 辛
		{8, PianYin},   // 壬: water feeds wood, same polarity
		{9, ZhengYin},  // 癸
	}
	for _, tt := range tests {
		other := chart.StemAt(tt.other)
		got, err := Resolve(jia, other)
		if err != nil {
			t.Fatalf("Resolve(甲, %s): %v", other.Character, err)
		}
		if got != tt.want {
			t.Errorf("Resolve(甲, %s) = %s, want %s", other.Character, got.Name(), tt.want.Name())
		}
	}
}

func TestResolveInvalidElement(t *testing.T) {
	bad := chart.StemDescriptor{Character: "?", Element: 99}
	if _, err := Resolve(bad, chart.StemAt(0)); err == nil {
		t.Error("Resolve with invalid day-master element: want error, got nil")
	}
	if _, err := Resolve(chart.StemAt(0), bad); err == nil {
		t.Error("Resolve with invalid other element: want error, got nil")
	}
}

func TestNamesCovered(t *testing.T) {
	for g := BiJian; g <= PianYin; g++ {
		if g.Name() == "Unknown" || g.English() == "Unknown" {
			t.Errorf("god %d has no name", g)
		}
	}
}

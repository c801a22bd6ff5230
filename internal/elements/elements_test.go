package elements

import "testing"

func TestGenerativeCycleClosure(t *testing.T) {
	// Five applications of Generates must walk the full cycle back to start.
	for e := Element(0); e < NumElements; e++ {
		cur := e
		seen := map[Element]bool{e: true}
		for i := 0; i < NumElements-1; i++ {
			cur = cur.Generates()
			if seen[cur] {
				t.Fatalf("%s: generative cycle revisits %s before closing", e.Name(), cur.Name())
			}
			seen[cur] = true
		}
		if cur.Generates() != e {
			t.Errorf("%s: cycle does not close, ended at %s", e.Name(), cur.Generates().Name())
		}
	}
}

func TestControlsSkipsOne(t *testing.T) {
	// The controlling cycle is the generative cycle with one step skipped.
	for e := Element(0); e < NumElements; e++ {
		want := e.Generates().Generates()
		if got := e.Controls(); got != want {
			t.Errorf("%s.Controls() = %s, want %s", e.Name(), got.Name(), want.Name())
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		a, b Element
		want InteractionKind
	}{
		{Fire, Fire, Harmonious},
		{Wood, Fire, Generative},
		{Fire, Wood, Neutral},
		{Wood, Earth, Controlling},
		{Earth, Wood, Conflicting},
		{Water, Wood, Generative},
		{Metal, Fire, Conflicting},
		{Water, Fire, Controlling},
	}
	for _, tt := range tests {
		got := Classify(tt.a, tt.b)
		if got.Kind != tt.want {
			t.Errorf("Classify(%s, %s) = %s, want %s",
				tt.a.Name(), tt.b.Name(), got.Kind.Name(), tt.want.Name())
		}
		if got.Description == "" {
			t.Errorf("Classify(%s, %s): empty description", tt.a.Name(), tt.b.Name())
		}
	}
}

func TestClassifyTotal(t *testing.T) {
	// From any element's perspective, the other four elements split exactly
	// one per directed relation, plus itself as harmonious.
	for a := Element(0); a < NumElements; a++ {
		counts := map[InteractionKind]int{}
		for b := Element(0); b < NumElements; b++ {
			counts[Classify(a, b).Kind]++
		}
		for k := Harmonious; k <= Conflicting; k++ {
			if counts[k] != 1 {
				t.Errorf("%s: %s occurs %d times, want 1", a.Name(), k.Name(), counts[k])
			}
		}
	}
}

func TestPolarityName(t *testing.T) {
	if Yang.Name() != "Yang" || Yin.Name() != "Yin" {
		t.Errorf("polarity names: got %q, %q", Yang.Name(), Yin.Name())
	}
}

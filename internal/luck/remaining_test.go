package luck

import (
	"math/rand"
	"testing"
	"time"
)

func TestRemainingBetween(t *testing.T) {
	from := time.Date(2023, 9, 10, 6, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		to   time.Time
		want Remaining
	}{
		{
			name: "exact calendar offset",
			to:   from.AddDate(2, 3, 10),
			want: Remaining{Years: 2, Months: 3, Days: 10},
		},
		{
			name: "sub-day remainder",
			to:   from.AddDate(0, 0, 1).Add(5*time.Hour + 45*time.Minute),
			want: Remaining{Days: 1, Hours: 5, Minutes: 45},
		},
		{
			name: "not before",
			to:   from.AddDate(0, 0, -1),
			want: Remaining{},
		},
		{
			name: "equal instants",
			to:   from,
			want: Remaining{},
		},
		{
			name: "full cycle clamp",
			to:   from.AddDate(12, 4, 0),
			want: Remaining{Years: yearsPerCycle},
		},
	}
	for _, tt := range tests {
		if got := remainingBetween(from, tt.to); got != tt.want {
			t.Errorf("%s: remainingBetween = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestRemainingRoundTrip(t *testing.T) {
	// Re-applying the decomposition step by step (years, then months, then
	// days, then the sub-day remainder) must land exactly on the target,
	// whatever the span's mix of leap years and month lengths.
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		from := time.Date(1960+rng.Intn(80), time.Month(1+rng.Intn(12)),
			1+rng.Intn(28), rng.Intn(24), rng.Intn(60), 0, 0, time.UTC)
		to := from.AddDate(rng.Intn(yearsPerCycle), rng.Intn(12), rng.Intn(28)).
			Add(time.Duration(rng.Intn(24))*time.Hour + time.Duration(rng.Intn(60))*time.Minute)

		got := remainingBetween(from, to)
		back := from.AddDate(got.Years, 0, 0).
			AddDate(0, got.Months, 0).
			AddDate(0, 0, got.Days).
			Add(time.Duration(got.Hours)*time.Hour + time.Duration(got.Minutes)*time.Minute)
		if !back.Equal(to) {
			t.Fatalf("round trip failed for %s -> %s: got %+v, reconstructed %s",
				from, to, got, back)
		}
	}
}

func TestRemainingAcrossLeapDay(t *testing.T) {
	// Calendar subtraction, not millisecond division: a span containing a
	// leap day still reads as whole calendar months.
	from := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	got := remainingBetween(from, to)
	want := Remaining{Months: 2}
	if got != want {
		t.Errorf("remainingBetween across leap day = %+v, want %+v", got, want)
	}
}

func TestRemainingZero(t *testing.T) {
	if !(Remaining{}).Zero() {
		t.Error("empty Remaining not reported as zero")
	}
	if (Remaining{Minutes: 1}).Zero() {
		t.Error("non-empty Remaining reported as zero")
	}
}

// Daily compatibility insight generation.
package narrative

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/liunara/fourpillars/internal/chart"
	"github.com/liunara/fourpillars/internal/compat"
	"github.com/liunara/fourpillars/internal/elements"
)

const dailySystem = `You are a thoughtful Four Pillars (BaZi) reader. You receive today's letter grade for a pair and the element facts behind it. Write 2-3 sentences about how today specifically colors the pairing — the grade reflects today, not the relationship's baseline. Never invent facts, never predict specific events, and never mention the computation.`

// DailyCompatibility is the day-specific result plus its narrative.
type DailyCompatibility struct {
	Date       string             `json:"date"`
	Grade      compat.Grade       `json:"grade"`
	Adjustment int                `json:"adjustment"`
	Insight    string             `json:"insight"`
	Result     compat.DailyResult `json:"result"`
}

// BuildDailyInsight computes today's adjustment for the pair and narrates it.
// Today's stem element is read against subject A, today's branch element
// against subject B.
func BuildDailyInsight(client *Client, analysis *chart.Analysis,
	a, b *chart.UserContext, date time.Time) *DailyCompatibility {

	today := analysis.DayPillarFor(date)
	todayA := today.Stem.Element
	todayB := today.Branch.Element

	baseline := compat.PairInteraction(a, b)
	flags := compat.FavorabilityFor(a, b, todayA, todayB)
	result := compat.DailyAdjustment(todayA, todayB, baseline.Kind, flags)

	dc := &DailyCompatibility{
		Date:       date.Format("2006-01-02"),
		Grade:      result.Grade,
		Adjustment: result.Adjustment,
		Result:     result,
	}

	insight, err := generateDailyInsight(client, dc, today, baseline)
	if err != nil {
		slog.Warn("daily narrative failed, using fallback", "error", err)
		insight = fallbackDailyInsight(result, today)
	}
	dc.Insight = insight
	return dc
}

func generateDailyInsight(client *Client, dc *DailyCompatibility, today chart.Pillar,
	baseline elements.Interaction) (string, error) {

	if !client.Enabled() {
		return "", fmt.Errorf("narrative client not configured")
	}

	prompt := fmt.Sprintf(
		"Date: %s\nToday's pillar: %s%s (stem %s, branch %s)\nToday's interaction: %s\nBaseline pair interaction: %s\nGrade for today: %s (adjustment %+d)\n\nWrite the daily insight.",
		dc.Date, today.Stem.Character, today.Branch.Character,
		today.Stem.Element.Name(), today.Branch.Element.Name(),
		dc.Result.Interaction.Kind.Name(), baseline.Kind.Name(),
		dc.Grade, dc.Adjustment)

	return client.Complete(dailySystem, prompt, 200)
}

func fallbackDailyInsight(result compat.DailyResult, today chart.Pillar) string {
	return fmt.Sprintf(
		"Today runs under %s%s, a %s day for this pairing — grade %s. The day's current is %s; take it as weather, not verdict.",
		today.Stem.Character, today.Branch.Character,
		today.Stem.Element.Name(), result.Grade, result.Interaction.Kind.Name())
}

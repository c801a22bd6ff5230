// Luck-cycle reading generation.
package narrative

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/liunara/fourpillars/internal/chart"
	"github.com/liunara/fourpillars/internal/luck"
)

const luckSystem = `You are a thoughtful Four Pillars (BaZi) reader. You receive the subject's resolved luck-cycle timing — which 10-year cycle governs now, its stem and element, the Ten God relationship, and precisely how much time remains. Write grounded prose about the themes of this period. Never invent timing beyond the given facts, never predict specific events, and never mention the computation.

Write 100-180 words of flowing prose. No headings.`

// LuckCyclesView is the resolved timing plus its narrative.
type LuckCyclesView struct {
	Current   luck.ResolvedCycle  `json:"current"`
	Next      *luck.ResolvedCycle `json:"next,omitempty"`
	Remaining luck.Remaining      `json:"remaining"`
	Narrative string              `json:"narrative"`
}

// BuildLuckReading composes the luck-cycle view with narrative.
func BuildLuckReading(client *Client, ctx *chart.UserContext, result *luck.Result) *LuckCyclesView {
	view := &LuckCyclesView{
		Current:   result.Current,
		Next:      result.Next,
		Remaining: result.Remaining,
	}

	text, err := generateLuckText(client, ctx, result)
	if err != nil {
		slog.Warn("luck narrative failed, using fallback", "error", err)
		text = fallbackLuckReading(result)
	}
	view.Narrative = text
	return view
}

func generateLuckText(client *Client, ctx *chart.UserContext, result *luck.Result) (string, error) {
	if !client.Enabled() {
		return "", fmt.Errorf("narrative client not configured")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Subject's day master: %s (%s)\n", ctx.DayMaster().Character, ctx.DayMaster().Element.Name())
	fmt.Fprintf(&b, "Current age: %d\n", result.CurrentAge)

	cur := result.Current
	if cur.PreLuckEra {
		fmt.Fprintf(&b, "Current period: the pre-luck era, before the first cycle begins (ages %d-%d)\n",
			cur.AgeStart, cur.AgeEnd)
	} else {
		fmt.Fprintf(&b, "Current cycle: %s%s, ages %d-%d (%d-%d)\n",
			cur.Stem.Character, cur.Branch.Character, cur.AgeStart, cur.AgeEnd, cur.YearStart, cur.YearEnd)
		fmt.Fprintf(&b, "Cycle element: %s\n", cur.Stem.Element.Name())
		if cur.TenGod != nil {
			fmt.Fprintf(&b, "Ten God of this cycle: %s (%s)\n", cur.TenGod.Name(), cur.TenGod.English())
		}
		if cur.AgeEstimated {
			b.WriteString("Note: cycle timing is estimated (birth time not recorded)\n")
		}
	}

	r := result.Remaining
	fmt.Fprintf(&b, "Time remaining in this period: %d years, %d months, %d days\n", r.Years, r.Months, r.Days)

	if result.Next != nil && !result.Next.PreLuckEra {
		fmt.Fprintf(&b, "Next cycle: %s%s (%s)\n",
			result.Next.Stem.Character, result.Next.Branch.Character, result.Next.Stem.Element.Name())
	}

	prompt := "Write a reading of this luck-cycle position:\n\n" + b.String()
	return client.Complete(luckSystem, prompt, 320)
}

func fallbackLuckReading(result *luck.Result) string {
	cur := result.Current
	r := result.Remaining
	if cur.PreLuckEra {
		return fmt.Sprintf(
			"You are in the pre-luck era, the formative years before your first 10-year cycle begins at age %d.",
			cur.AgeEnd+1)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Your current 10-year cycle is %s%s, governed by %s, running from age %d to %d.",
		cur.Stem.Character, cur.Branch.Character, cur.Stem.Element.Name(), cur.AgeStart, cur.AgeEnd)
	if cur.TenGod != nil {
		fmt.Fprintf(&b, " Its Ten God is %s (%s).", cur.TenGod.Name(), cur.TenGod.English())
	}
	fmt.Fprintf(&b, " About %d years, %d months and %d days remain before the next cycle turns.",
		r.Years, r.Months, r.Days)
	return b.String()
}

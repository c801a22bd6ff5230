// Personality profile generation grounded in the deterministic chart facts.
package narrative

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/liunara/fourpillars/internal/chart"
	"github.com/liunara/fourpillars/internal/rarity"
)

const profileSystem = `You are a thoughtful Four Pillars (BaZi) reader. You receive a chart's deterministic facts — pillars, day master, favorable elements, strength, patterns, stars — and write warm, grounded prose about the person's temperament and tendencies. Never invent chart facts beyond what is given, never predict specific events, and never mention that the facts were computed for you.

Write 150-250 words of flowing prose. No headings, no bullet lists.`

// BasicProfile is the deterministic profile record plus its narrative.
type BasicProfile struct {
	Context   *chart.UserContext `json:"context"`
	Rarity    rarity.Estimate    `json:"rarity"`
	Narrative string             `json:"narrative"`
}

// BuildProfile composes the profile: deterministic facts always, narrative
// from the model when available, canned text otherwise.
func BuildProfile(client *Client, ctx *chart.UserContext) *BasicProfile {
	p := &BasicProfile{
		Context: ctx,
		Rarity:  rarity.EstimateFor(ctx),
	}

	text, err := generateProfileText(client, ctx, p.Rarity)
	if err != nil {
		slog.Warn("profile narrative failed, using fallback", "error", err)
		text = fallbackProfile(ctx, p.Rarity)
	}
	p.Narrative = text
	return p
}

func generateProfileText(client *Client, ctx *chart.UserContext, r rarity.Estimate) (string, error) {
	if !client.Enabled() {
		return "", fmt.Errorf("narrative client not configured")
	}

	var b strings.Builder
	dm := ctx.DayMaster()
	fmt.Fprintf(&b, "Day master: %s (%s %s)\n", dm.Character, dm.Polarity.Name(), dm.Element.Name())
	fmt.Fprintf(&b, "Chart strength: %s\n", ctx.Strength.Name())
	fmt.Fprintf(&b, "Year pillar: %s%s, month pillar: %s%s, day pillar: %s%s\n",
		ctx.Social.Stem.Character, ctx.Social.Branch.Character,
		ctx.Career.Stem.Character, ctx.Career.Branch.Character,
		ctx.Personal.Stem.Character, ctx.Personal.Branch.Character)
	if ctx.Innovation != nil {
		fmt.Fprintf(&b, "Hour pillar: %s%s\n", ctx.Innovation.Stem.Character, ctx.Innovation.Branch.Character)
	} else {
		b.WriteString("Hour pillar: unknown (birth time not recorded)\n")
	}

	if len(ctx.Favorable.Primary) > 0 {
		names := make([]string, 0, len(ctx.Favorable.Primary))
		for _, e := range ctx.Favorable.Primary {
			names = append(names, e.Name())
		}
		fmt.Fprintf(&b, "Favorable elements: %s\n", strings.Join(names, ", "))
	}
	for _, pat := range ctx.Patterns {
		fmt.Fprintf(&b, "Pattern: %s (%s)\n", pat.Name, pat.Element.Name())
	}
	for _, star := range ctx.SpecialStars {
		if star.Active {
			fmt.Fprintf(&b, "Active star: %s\n", star.Name)
		}
	}
	fmt.Fprintf(&b, "Chart rarity: %s\n", r.Display)

	prompt := "Write a personality profile for this chart:\n\n" + b.String()
	return client.Complete(profileSystem, prompt, 400)
}

// fallbackProfile is deterministic prose used verbatim when generation fails.
func fallbackProfile(ctx *chart.UserContext, r rarity.Estimate) string {
	dm := ctx.DayMaster()
	var b strings.Builder
	fmt.Fprintf(&b, "Your day master is %s, a %s %s nature, and your chart reads as %s.\n",
		dm.Character, strings.ToLower(dm.Polarity.Name()), dm.Element.Name(), strings.ToLower(ctx.Strength.Name()))
	if len(ctx.Favorable.Primary) > 0 {
		fmt.Fprintf(&b, "The elements that serve you best are led by %s.\n", ctx.Favorable.Primary[0].Name())
	}
	if n := ctx.ActiveStarCount(); n > 0 {
		fmt.Fprintf(&b, "%d special stars are active in your chart.\n", n)
	}
	fmt.Fprintf(&b, "A chart with this combination appears about %s.", r.Display)
	return b.String()
}

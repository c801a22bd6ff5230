// Compatibility report composition — four narrative categories fanned out
// concurrently and joined before the response is assembled.
package narrative

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/liunara/fourpillars/internal/chart"
	"github.com/liunara/fourpillars/internal/compat"
	"github.com/liunara/fourpillars/internal/rarity"
)

const categorySystem = `You are a thoughtful Four Pillars (BaZi) compatibility reader. You receive the deterministic pairing facts — sub-scores, day masters, the element interaction, the relationship type — and write grounded prose for one requested category. Never invent chart facts, never predict specific events, and never mention the computation.

Write 60-120 words of flowing prose for the requested category only. No headings.`

// reportCategories are generated for every compatibility report, in order.
var reportCategories = []string{
	"Emotional Connection",
	"Communication",
	"Values & Life Direction",
	"Growth & Challenge",
}

// categoryFallbacks are used verbatim when a category's generation fails.
var categoryFallbacks = map[string]string{
	"Emotional Connection":    "The element bond between your day masters sets the emotional tone of this pairing; lean on the stronger sub-scores above when the mood wavers.",
	"Communication":           "How your favorable elements overlap shapes how easily words land between you; shared elements make for shared language.",
	"Values & Life Direction": "Your chart strengths complement or mirror each other, and that balance colors what each of you calls a good life.",
	"Growth & Challenge":      "Where the scores run low is where this pairing asks for patience; the friction named above is also the direction of growth.",
}

// CategorySection is one generated report section.
type CategorySection struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// CompatibilityReport is the full pairing report.
type CompatibilityReport struct {
	PairingTitle   string            `json:"pairing_title"`
	Score          *compat.Report    `json:"score"`
	Categories     []CategorySection `json:"categories"`
	Rarity         rarity.Estimate   `json:"rarity"` // combined pairing rarity
	ChartDisplay   string            `json:"chart_display"`
	TechnicalBasis string            `json:"technical_basis"`
}

// BuildCompatibilityReport scores the pair and generates the narrative
// categories concurrently. Category generation failures fall back to canned
// text; the deterministic report is never blocked on narrative.
func BuildCompatibilityReport(ctx context.Context, client *Client,
	a, b *chart.UserContext, rel compat.RelationshipType) *CompatibilityReport {

	interaction := compat.PairInteraction(a, b)
	score := compat.Score(a, b, interaction, rel)

	rarityA := rarity.EstimateFor(a)
	rarityB := rarity.EstimateFor(b)
	combined := rarityA
	if rarityB.OneIn > combined.OneIn {
		combined = rarityB
	}

	report := &CompatibilityReport{
		PairingTitle:   pairingTitle(a, b),
		Score:          score,
		Rarity:         combined,
		ChartDisplay:   chartDisplay(a, b),
		TechnicalBasis: technicalBasis(score),
	}

	facts := pairingFacts(a, b, score, rel)
	sections := make([]CategorySection, len(reportCategories))

	g, gctx := errgroup.WithContext(ctx)
	for i, title := range reportCategories {
		g.Go(func() error {
			body, err := generateCategory(gctx, client, title, facts)
			if err != nil {
				slog.Warn("category narrative failed, using fallback", "category", title, "error", err)
				body = categoryFallbacks[title]
			}
			sections[i] = CategorySection{Title: title, Body: body}
			return nil
		})
	}
	// Generation errors are absorbed by fallbacks; Wait only joins.
	_ = g.Wait()

	report.Categories = sections
	return report
}

func generateCategory(ctx context.Context, client *Client, title, facts string) (string, error) {
	if !client.Enabled() {
		return "", fmt.Errorf("narrative client not configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	prompt := fmt.Sprintf("Pairing facts:\n\n%s\nWrite the %q section.", facts, title)
	return client.Complete(categorySystem, prompt, 260)
}

func pairingFacts(a, b *chart.UserContext, score *compat.Report, rel compat.RelationshipType) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Relationship type: %s\n", rel)
	fmt.Fprintf(&sb, "Day masters: %s (%s) and %s (%s)\n",
		a.DayMaster().Character, a.DayMaster().Element.Name(),
		b.DayMaster().Character, b.DayMaster().Element.Name())
	fmt.Fprintf(&sb, "Element interaction: %s — %s\n", score.Interaction.Kind.Name(), score.Interaction.Description)
	fmt.Fprintf(&sb, "Overall: %.0f/100 (%s)\n", score.Overall, score.Rating)
	for _, f := range score.Factors {
		fmt.Fprintf(&sb, "Sub-score %s: %d/%d (weight %d)\n", f.Factor, f.Raw, f.Max, f.Weight)
	}
	fmt.Fprintf(&sb, "Chart strengths: %s and %s\n", a.Strength.Name(), b.Strength.Name())
	return sb.String()
}

func pairingTitle(a, b *chart.UserContext) string {
	ia := compat.PairInteraction(a, b)
	return fmt.Sprintf("%s %s meets %s %s — %s",
		a.DayMaster().Polarity.Name(), a.DayMaster().Element.Name(),
		b.DayMaster().Polarity.Name(), b.DayMaster().Element.Name(),
		ia.Kind.Name())
}

// chartDisplay renders both charts' pillars side by side as plain text.
func chartDisplay(a, b *chart.UserContext) string {
	row := func(label string, pa, pb *chart.Pillar) string {
		left, right := "--", "--"
		if pa != nil {
			left = pa.Stem.Character + pa.Branch.Character
		}
		if pb != nil {
			right = pb.Stem.Character + pb.Branch.Character
		}
		return fmt.Sprintf("%-8s %s | %s", label, left, right)
	}
	lines := []string{
		"           A  |  B",
		row("Year", &a.Social, &b.Social),
		row("Month", &a.Career, &b.Career),
		row("Day", &a.Personal, &b.Personal),
		row("Hour", a.Innovation, b.Innovation),
	}
	return strings.Join(lines, "\n")
}

// technicalBasis summarizes the deterministic inputs for readers who want
// to see the arithmetic behind the prose.
func technicalBasis(score *compat.Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Overall %.1f/100 (%s). Factors: ", score.Overall, score.Rating)
	parts := make([]string, 0, len(score.Factors))
	for _, f := range score.Factors {
		parts = append(parts, fmt.Sprintf("%s %d/%d ×%d%%", f.Factor, f.Raw, f.Max, f.Weight))
	}
	sb.WriteString(strings.Join(parts, ", "))
	sb.WriteString(".")
	return sb.String()
}

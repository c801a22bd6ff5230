// Command fortunecli prints chart readings to stdout.
// With one subject it prints the chart, profile and luck-cycle reading;
// with a second subject it adds the compatibility report and today's grade.
// Narrative text requires ANTHROPIC_API_KEY; without it the deterministic
// fallback prose is printed.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/liunara/fourpillars/internal/chart"
	"github.com/liunara/fourpillars/internal/compat"
	"github.com/liunara/fourpillars/internal/luck"
	"github.com/liunara/fourpillars/internal/narrative"
)

func main() {
	var (
		birthFlag  = flag.String("birth", "", "birth instant, 2006-01-02T15:04 or 2006-01-02 (required)")
		sexFlag    = flag.String("sex", "", "male or female (required)")
		birthBFlag = flag.String("birth-b", "", "second subject's birth instant (enables compatibility)")
		sexBFlag   = flag.String("sex-b", "", "second subject's sex")
		relFlag    = flag.String("relationship", "romantic", "romantic, colleague, family, friend or other")
		dateFlag   = flag.String("date", "", "date for the daily grade, 2006-01-02 (default today)")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	subA, err := parseSubject(*birthFlag, *sexFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	client := narrative.NewClient(os.Getenv("ANTHROPIC_API_KEY"))

	printChart("Subject", subA.ctx)

	profile := narrative.BuildProfile(client, subA.ctx)
	fmt.Printf("── Profile ──\n%s\n\n", profile.Narrative)
	fmt.Printf("Chart rarity: %s\n\n", profile.Rarity.Display)

	result, err := luck.LocateFromAnalysis(subA.analysis, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: luck cycle resolution: %v\n", err)
		os.Exit(1)
	}
	reading := narrative.BuildLuckReading(client, subA.ctx, result)
	fmt.Printf("── Luck Cycles ──\n%s\n\n", reading.Narrative)

	if *birthBFlag == "" {
		return
	}

	subB, err := parseSubject(*birthBFlag, *sexBFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: second subject: %v\n", err)
		os.Exit(1)
	}
	printChart("Partner", subB.ctx)

	rel := compat.RelationshipType(*relFlag)
	report := narrative.BuildCompatibilityReport(context.Background(), client, subA.ctx, subB.ctx, rel)

	fmt.Printf("── Compatibility: %s ──\n", report.PairingTitle)
	fmt.Printf("Overall: %.1f/100 (%s)\n", report.Score.Overall, report.Score.Rating)
	fmt.Printf("%s\n\n", report.Score.Headline)
	fmt.Println(report.ChartDisplay)
	for _, section := range report.Categories {
		fmt.Printf("%s\n%s\n\n", section.Title, section.Body)
	}
	fmt.Println(report.TechnicalBasis)
	fmt.Println()

	date := time.Now()
	if *dateFlag != "" {
		date, err = time.Parse("2006-01-02", *dateFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: date must be 2006-01-02\n")
			os.Exit(1)
		}
	}
	daily := narrative.BuildDailyInsight(client, subA.analysis, subA.ctx, subB.ctx, date)
	fmt.Printf("── %s: grade %s (%+d) ──\n%s\n", daily.Date, daily.Grade, daily.Adjustment, daily.Insight)
}

type subject struct {
	analysis *chart.Analysis
	ctx      *chart.UserContext
}

func parseSubject(birthRaw, sexRaw string) (*subject, error) {
	if birthRaw == "" {
		return nil, fmt.Errorf("-birth is required")
	}

	var birth time.Time
	var timeKnown bool
	var err error
	if birth, err = time.Parse("2006-01-02T15:04", birthRaw); err == nil {
		timeKnown = true
	} else if birth, err = time.Parse("2006-01-02", birthRaw); err == nil {
		timeKnown = false
	} else {
		return nil, fmt.Errorf("birth must be 2006-01-02T15:04 or 2006-01-02, got %q", birthRaw)
	}

	var sex chart.Sex
	switch sexRaw {
	case "male", "m":
		sex = chart.SexMale
	case "female", "f":
		sex = chart.SexFemale
	default:
		return nil, fmt.Errorf("sex must be male or female")
	}

	analysis, err := chart.Compute(birth, sex, timeKnown)
	if err != nil {
		return nil, err
	}
	return &subject{analysis: analysis, ctx: chart.NewUserContext(analysis)}, nil
}

func printChart(label string, ctx *chart.UserContext) {
	fmt.Printf("── %s ──\n", label)
	fmt.Printf("Year  %s%s   Month %s%s   Day %s%s",
		ctx.Social.Stem.Character, ctx.Social.Branch.Character,
		ctx.Career.Stem.Character, ctx.Career.Branch.Character,
		ctx.Personal.Stem.Character, ctx.Personal.Branch.Character)
	if ctx.Innovation != nil {
		fmt.Printf("   Hour %s%s", ctx.Innovation.Stem.Character, ctx.Innovation.Branch.Character)
	}
	fmt.Println()
	dm := ctx.DayMaster()
	fmt.Printf("Day master %s (%s %s), chart %s\n",
		dm.Character, dm.Polarity.Name(), dm.Element.Name(), ctx.Strength.Name())
	for _, star := range ctx.SpecialStars {
		if star.Active {
			fmt.Printf("Star: %s\n", star.Name)
		}
	}
	fmt.Println()
}

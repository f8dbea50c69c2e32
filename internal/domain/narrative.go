package domain

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// UnresolvedPlaceMessage is returned by Compose when there is no record to describe.
const UnresolvedPlaceMessage = "Pick a city and state first, and I'll summarize what it's like to live there."

const closingPrompt = "Tell me your budget and how many years you plan to stay, and I can help you weigh these trade-offs."

// Compose renders a deterministic multi-line summary of a place. A nil record
// yields UnresolvedPlaceMessage. The same record always yields the same text.
func Compose(label string, r *MetricsRecord) string {
	if r == nil {
		return UnresolvedPlaceMessage
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here's a quick read on %s:\n", label)
	fmt.Fprintf(&b, "- Walkability %d/100: %s.\n", r.Walkability, walkabilityVerdict(r.Walkability))
	fmt.Fprintf(&b, "- Schools %g/10: %s.\n", r.SchoolScore, schoolVerdict(r.SchoolScore))
	fmt.Fprintf(&b, "- Crime index %d: %s.\n", r.CrimeIndex, crimeVerdict(r.CrimeIndex))
	fmt.Fprintf(&b, "- Median household income $%s: %s.\n", humanize.Comma(int64(r.MedianIncome)), incomeVerdict(r.MedianIncome))
	fmt.Fprintf(&b, "- 5-year price growth %g%%: %s.\n", r.PriceGrowth5y, growthVerdict(r.PriceGrowth5y))
	b.WriteString(closingPrompt)
	return b.String()
}

func walkabilityVerdict(score int) string {
	switch {
	case score >= 70:
		return "good for errands on foot"
	case score >= 60:
		return "decent, some errands on foot"
	default:
		return "car-dependent"
	}
}

func schoolVerdict(score float64) string {
	switch {
	case score >= 8:
		return "strong schools"
	case score >= 7:
		return "solid schools"
	default:
		return "below-average schools"
	}
}

func crimeVerdict(index int) string {
	switch {
	case index <= 40:
		return "lower than average"
	case index <= 50:
		return "moderate"
	default:
		return "higher than average"
	}
}

func incomeVerdict(income int) string {
	switch {
	case income >= 100_000:
		return "high-income area"
	case income < 85_000:
		return "lower-income area"
	default:
		return "middle-income area"
	}
}

func growthVerdict(pct float64) string {
	switch {
	case pct >= 7:
		return "healthy appreciation"
	case pct < 5:
		return "slower appreciation"
	default:
		return "steady appreciation"
	}
}

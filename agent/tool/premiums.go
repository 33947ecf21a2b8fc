package tool

import (
	"math"
	"sort"
	"strings"

	"github.com/coverwise/advisor-agent/agent/contract"
)

// EstimatePremiums prices coverageAmount against the rate table for the
// resolved policy category ("term" when policyType contains "term", else
// "whole") at the bracket closest to age. Equidistant ages resolve to the
// lower bracket: brackets are scanned in ascending order and a bracket only
// replaces the current best when strictly closer.
func EstimatePremiums(age, coverageAmount int, policyType string) contract.PremiumEstimate {
	category := "whole"
	if strings.Contains(strings.ToLower(policyType), "term") {
		category = "term"
	}

	table := catalog.Rates[category]
	bracket := closestBracket(table, age)

	units := float64(coverageAmount) / 1000

	estimates := make(map[string]contract.PremiumQuote, len(table[bracket]))
	for class, rate := range table[bracket] {
		monthly := round2(units * rate)
		estimates[class] = contract.PremiumQuote{
			Monthly: monthly,
			Annual:  round2(monthly * 12),
		}
	}

	return contract.PremiumEstimate{
		PolicyType:             category,
		AgeUsedForRate:         bracket,
		CoverageAmount:         coverageAmount,
		EstimatesByHealthClass: estimates,
		Notes:                  "Monthly premium is coverage per 1000 times the bracket rate; annual is monthly times 12.",
	}
}

func closestBracket(table map[int]map[string]float64, age int) int {
	brackets := make([]int, 0, len(table))
	for b := range table {
		brackets = append(brackets, b)
	}
	sort.Ints(brackets)

	best := brackets[0]
	for _, b := range brackets[1:] {
		if abs(age-b) < abs(age-best) {
			best = b
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

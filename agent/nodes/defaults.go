package nodes

import (
	"github.com/coverwise/advisor-agent/agent/contract"
	toolx "github.com/coverwise/advisor-agent/agent/tool"
)

// FallbackCoverageAmount is priced when the coverage stage produced no
// usable recommendation.
const FallbackCoverageAmount = 500000

// FallbackRecommendation is returned when the advisor stage yields no
// content. There is no meaningful default recommendation to substitute.
const FallbackRecommendation = "I could not produce a recommendation this turn. Please try again."

const fallbackPolicyType = "term"

func defaultPolicyOptions(age int) contract.PolicyOptions {
	return contract.PolicyOptions{
		Category: "life",
		Criteria: contract.PolicyCriteria{Age: age},
		Found:    0,
		Policies: []contract.PolicyRecord{},
	}
}

func defaultCoverageAnalysis(profile contract.ResolvedProfile) contract.CoverageAnalysis {
	return contract.CoverageAnalysis{
		Inputs: contract.CoverageInputs{
			AnnualIncome: profile.Income,
			Dependents:   profile.Dependents,
			Debts:        profile.Debts,
			Mortgage:     profile.Mortgage,
		},
		RecommendedCoverage: FallbackCoverageAmount,
		Notes:               "Coverage analysis unavailable; fixed fallback coverage applied.",
	}
}

// defaultPremiumEstimate prices the fallback locally through the pure
// calculator: same numbers the agent would have obtained, no I/O.
func defaultPremiumEstimate(age, coverageAmount int) contract.PremiumEstimate {
	return toolx.EstimatePremiums(age, coverageAmount, fallbackPolicyType)
}

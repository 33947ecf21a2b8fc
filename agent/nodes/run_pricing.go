package nodes

import (
	"context"

	"github.com/coverwise/advisor-agent/agent/contract"
)

// RunPricing prices the coverage amount resolved from the coverage stage,
// falling back to the documented fixed amount when that stage produced no
// usable recommendation. It always runs, even when the coverage stage was
// defaulted.
func RunPricing(ctx context.Context, in *TurnState, agent contract.StageAgent) (*TurnState, error) {
	coverageAmount := in.Team.Coverage.Value.RecommendedCoverage
	if coverageAmount <= 0 {
		coverageAmount = FallbackCoverageAmount
	}

	result, err := runExtracted(ctx, contract.StagePricing, agent, map[string]any{
		"age":             in.Team.Profile.Age,
		"coverage_amount": coverageAmount,
		"policy_type":     fallbackPolicyType,
	}, defaultPremiumEstimate(in.Team.Profile.Age, coverageAmount))
	if err != nil {
		return nil, err
	}

	in.Team.Pricing = result
	return in, nil
}

package tool

import (
	"math"

	"github.com/coverwise/advisor-agent/agent/contract"
)

// CalculateCoverageNeeds computes three independent coverage estimates and
// recommends their arithmetic mean rounded to the nearest 50000:
//   - income replacement: annual income x10 with dependents, x5 without
//   - DIME: debts + income x5 + mortgage + 100000 per dependent for education
//   - human life value proxy: income x20 x0.75, truncated
func CalculateCoverageNeeds(annualIncome, dependents, debts, mortgage int) contract.CoverageAnalysis {
	incomeMultiplier := 5
	if dependents > 0 {
		incomeMultiplier = 10
	}
	incomeReplacement := annualIncome * incomeMultiplier

	dime := debts + annualIncome*5 + mortgage + dependents*100000

	humanLifeValue := int(float64(annualIncome) * 20 * 0.75)

	mean := float64(incomeReplacement+dime+humanLifeValue) / 3
	recommended := int(math.Round(mean/50000)) * 50000

	return contract.CoverageAnalysis{
		Inputs: contract.CoverageInputs{
			AnnualIncome: annualIncome,
			Dependents:   dependents,
			Debts:        debts,
			Mortgage:     mortgage,
		},
		Methods: contract.CoverageMethods{
			IncomeReplacement: incomeReplacement,
			DIME:              dime,
			HumanLifeValue:    humanLifeValue,
		},
		RecommendedCoverage: recommended,
		Notes:               "Mean of income replacement, DIME, and human life value, rounded to the nearest 50000.",
	}
}

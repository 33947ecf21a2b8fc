package tool

import (
	"context"
	"testing"

	"github.com/coverwise/advisor-agent/agent/contract"
)

func TestBuildForStageDeclarations(t *testing.T) {
	t.Parallel()

	cases := []struct {
		stage contract.Stage
		tools []string
	}{
		{contract.StageIntake, nil},
		{contract.StageOptions, []string{ToolSearchPolicies}},
		{contract.StageCoverage, []string{ToolCoverageNeeds}},
		{contract.StagePricing, []string{ToolEstimatePremium}},
		{contract.StageAdvisor, nil},
	}

	for _, tc := range cases {
		infos, executor := BuildForStage(tc.stage)
		if executor == nil {
			t.Fatalf("stage %s: executor must not be nil", tc.stage)
		}
		if len(infos) != len(tc.tools) {
			t.Fatalf("stage %s: expected %d tools, got %d", tc.stage, len(tc.tools), len(infos))
		}
		for i, name := range tc.tools {
			if infos[i].Name != name {
				t.Fatalf("stage %s: unexpected tool %s", tc.stage, infos[i].Name)
			}
		}
	}
}

func TestExecutorCoercesFloatArguments(t *testing.T) {
	t.Parallel()

	// JSON-decoded tool arguments arrive as float64.
	executor := NewExecutor(contract.StagePricing)
	out, err := executor(context.Background(), ToolEstimatePremium, map[string]any{
		"age":             float64(37),
		"coverage_amount": float64(800000),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Error != "" {
		t.Fatalf("unexpected tool error: %s", out.Error)
	}

	est, ok := out.Result.(contract.PremiumEstimate)
	if !ok {
		t.Fatalf("unexpected result type: %T", out.Result)
	}
	if est.EstimatesByHealthClass["standard"].Monthly != 240.0 {
		t.Fatalf("unexpected standard monthly: %v", est.EstimatesByHealthClass["standard"].Monthly)
	}
	if est.PolicyType != "term" {
		t.Fatalf("policy_type must default to term, got %s", est.PolicyType)
	}
}

func TestExecutorMissingRequiredArgument(t *testing.T) {
	t.Parallel()

	executor := NewExecutor(contract.StageCoverage)
	out, err := executor(context.Background(), ToolCoverageNeeds, map[string]any{
		"dependents": 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Error == "" {
		t.Fatal("expected error for missing annual_income")
	}
}

func TestExecutorUnknownTool(t *testing.T) {
	t.Parallel()

	executor := NewExecutor(contract.StageOptions)
	out, err := executor(context.Background(), "estimate_taxes", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Error == "" {
		t.Fatal("expected unavailable-tool error")
	}
}

func TestExecutorOptionalDefaults(t *testing.T) {
	t.Parallel()

	executor := NewExecutor(contract.StageCoverage)
	out, err := executor(context.Background(), ToolCoverageNeeds, map[string]any{
		"annual_income": "60000",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	analysis, ok := out.Result.(contract.CoverageAnalysis)
	if !ok {
		t.Fatalf("unexpected result type: %T", out.Result)
	}
	if analysis.Inputs.Dependents != 0 || analysis.Inputs.Debts != 0 || analysis.Inputs.Mortgage != 0 {
		t.Fatalf("optional inputs must default to 0: %+v", analysis.Inputs)
	}
	if analysis.Inputs.AnnualIncome != 60000 {
		t.Fatalf("string income must coerce to 60000, got %d", analysis.Inputs.AnnualIncome)
	}
}

// Package tool implements the deterministic calculation tools stage agents
// may invoke during generation. Each tool is a pure function over the
// embedded catalog: no hidden state, no I/O, same output for same input.
package tool

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/coverwise/advisor-agent/agent/contract"
)

const (
	ToolSearchPolicies  = "search_available_policies"
	ToolCoverageNeeds   = "calculate_coverage_needs"
	ToolEstimatePremium = "estimate_premiums"
)

//go:embed catalog.yaml
var catalogRaw []byte

type catalogEntry struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	MinAge      *int   `yaml:"min_age"`
	MaxAge      *int   `yaml:"max_age"`
	Description string `yaml:"description"`
}

type catalogFile struct {
	Policies map[string][]catalogEntry             `yaml:"policies"`
	Rates    map[string]map[int]map[string]float64 `yaml:"rates"`
}

var catalog catalogFile

func init() {
	if err := yaml.Unmarshal(catalogRaw, &catalog); err != nil {
		panic(fmt.Sprintf("tool: parse embedded catalog: %v", err))
	}
}

type Executor func(ctx context.Context, tool string, args map[string]any) (contract.ToolResult, error)

// BuildForStage returns the declared tool set and executor for one stage.
// Intake and advisor stages carry no tools.
func BuildForStage(stage contract.Stage) ([]*schema.ToolInfo, Executor) {
	return infosForStage(stage), NewExecutor(stage)
}

// NewExecutor dispatches by tool name, coercing loosely-typed inferred
// arguments at the boundary. Malformed arguments are reported through
// ToolResult.Error rather than the error return so the agent can recover
// in its next generation round.
func NewExecutor(stage contract.Stage) Executor {
	return func(ctx context.Context, tool string, args map[string]any) (contract.ToolResult, error) {
		switch tool {
		case ToolSearchPolicies:
			return executeSearchPolicies(args)
		case ToolCoverageNeeds:
			return executeCoverageNeeds(args)
		case ToolEstimatePremium:
			return executeEstimatePremiums(args)
		default:
			return contract.ToolResult{
				Tool:  tool,
				Error: fmt.Sprintf("tool=%s is unavailable for stage=%s", tool, stage),
			}, nil
		}
	}
}

func infosForStage(stage contract.Stage) []*schema.ToolInfo {
	switch stage {
	case contract.StageOptions:
		return []*schema.ToolInfo{
			{
				Name: ToolSearchPolicies,
				Desc: "Search the policy catalog for products available at a given age.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"age":      {Type: schema.Integer, Desc: "Applicant age in years", Required: true},
					"category": {Type: schema.String, Desc: "Catalog category, defaults to life"},
				}),
			},
		}
	case contract.StageCoverage:
		return []*schema.ToolInfo{
			{
				Name: ToolCoverageNeeds,
				Desc: "Compute recommended life coverage from income, dependents, debts, and mortgage.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"annual_income": {Type: schema.Integer, Desc: "Annual income", Required: true},
					"dependents":    {Type: schema.Integer, Desc: "Number of dependents, defaults to 0"},
					"debts":         {Type: schema.Integer, Desc: "Outstanding non-mortgage debt, defaults to 0"},
					"mortgage":      {Type: schema.Integer, Desc: "Outstanding mortgage balance, defaults to 0"},
				}),
			},
		}
	case contract.StagePricing:
		return []*schema.ToolInfo{
			{
				Name: ToolEstimatePremium,
				Desc: "Estimate monthly and annual premiums per health class for a coverage amount.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"age":             {Type: schema.Integer, Desc: "Applicant age in years", Required: true},
					"coverage_amount": {Type: schema.Integer, Desc: "Coverage amount in whole currency units", Required: true},
					"policy_type":     {Type: schema.String, Desc: "Policy type, defaults to term"},
				}),
			},
		}
	default:
		return nil
	}
}

func executeSearchPolicies(args map[string]any) (contract.ToolResult, error) {
	age, err := requiredInt(args, "age")
	if err != nil {
		return contract.ToolResult{Tool: ToolSearchPolicies, Error: err.Error()}, nil
	}
	category := optionalString(args, "category", "life")

	return contract.ToolResult{
		Tool:   ToolSearchPolicies,
		Result: SearchAvailablePolicies(age, category),
	}, nil
}

func executeCoverageNeeds(args map[string]any) (contract.ToolResult, error) {
	income, err := requiredInt(args, "annual_income")
	if err != nil {
		return contract.ToolResult{Tool: ToolCoverageNeeds, Error: err.Error()}, nil
	}

	return contract.ToolResult{
		Tool: ToolCoverageNeeds,
		Result: CalculateCoverageNeeds(
			income,
			optionalInt(args, "dependents", 0),
			optionalInt(args, "debts", 0),
			optionalInt(args, "mortgage", 0),
		),
	}, nil
}

func executeEstimatePremiums(args map[string]any) (contract.ToolResult, error) {
	age, err := requiredInt(args, "age")
	if err != nil {
		return contract.ToolResult{Tool: ToolEstimatePremium, Error: err.Error()}, nil
	}
	coverage, err := requiredInt(args, "coverage_amount")
	if err != nil {
		return contract.ToolResult{Tool: ToolEstimatePremium, Error: err.Error()}, nil
	}

	return contract.ToolResult{
		Tool:   ToolEstimatePremium,
		Result: EstimatePremiums(age, coverage, optionalString(args, "policy_type", "term")),
	}, nil
}

func requiredInt(args map[string]any, key string) (int, error) {
	raw, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("%s is required", key)
	}
	v, err := cast.ToIntE(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return v, nil
}

func optionalInt(args map[string]any, key string, def int) int {
	raw, ok := args[key]
	if !ok || raw == nil {
		return def
	}
	v, err := cast.ToIntE(raw)
	if err != nil {
		return def
	}
	return v
}

func optionalString(args map[string]any, key, def string) string {
	raw, ok := args[key]
	if !ok || raw == nil {
		return def
	}
	v, err := cast.ToStringE(raw)
	if err != nil || strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}

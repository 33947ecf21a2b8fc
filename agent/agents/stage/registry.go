package stage

import (
	"context"
	"fmt"

	"github.com/coverwise/advisor-agent/agent/contract"
	llmx "github.com/coverwise/advisor-agent/agent/llm"
	promptx "github.com/coverwise/advisor-agent/agent/prompt"
)

type registryImpl struct {
	intake   contract.StageAgent
	options  contract.StageAgent
	coverage contract.StageAgent
	pricing  contract.StageAgent
	advisor  contract.StageAgent
}

func (r *registryImpl) Intake() contract.StageAgent   { return r.intake }
func (r *registryImpl) Options() contract.StageAgent  { return r.options }
func (r *registryImpl) Coverage() contract.StageAgent { return r.coverage }
func (r *registryImpl) Pricing() contract.StageAgent  { return r.pricing }
func (r *registryImpl) Advisor() contract.StageAgent  { return r.advisor }

// NewRegistry builds the five configured stage agents.
func NewRegistry(ctx context.Context, cfg llmx.Config) (contract.Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	prompts := promptx.LoadPromptSet()

	build := func(stg contract.Stage, systemPrompt string) (contract.StageAgent, error) {
		modelCfg := cfg.OpenRouterFor(stg)
		chatModel, err := modelCfg.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: create model for stage=%s: %v", contract.ErrStageCall, stg, err)
		}
		return New(stg, chatModel, systemPrompt)
	}

	intake, err := build(contract.StageIntake, prompts.Intake)
	if err != nil {
		return nil, err
	}
	options, err := build(contract.StageOptions, prompts.Options)
	if err != nil {
		return nil, err
	}
	coverage, err := build(contract.StageCoverage, prompts.Coverage)
	if err != nil {
		return nil, err
	}
	pricing, err := build(contract.StagePricing, prompts.Pricing)
	if err != nil {
		return nil, err
	}
	advisor, err := build(contract.StageAdvisor, prompts.Advisor)
	if err != nil {
		return nil, err
	}

	return &registryImpl{
		intake:   intake,
		options:  options,
		coverage: coverage,
		pricing:  pricing,
		advisor:  advisor,
	}, nil
}

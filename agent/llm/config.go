package llm

import (
	"fmt"
	"strings"
	"time"

	"github.com/coverwise/advisor-agent/agent/contract"
	openrouterx "github.com/coverwise/advisor-agent/pkg/openrouter"
)

// Config carries the shared completion settings plus optional per-stage
// model and temperature overrides.
type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" required:"true"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.4"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`

	IntakeModel   string `envconfig:"INTAKE_MODEL" split_words:"true"`
	OptionsModel  string `envconfig:"OPTIONS_MODEL" split_words:"true"`
	CoverageModel string `envconfig:"COVERAGE_MODEL" split_words:"true"`
	PricingModel  string `envconfig:"PRICING_MODEL" split_words:"true"`
	AdvisorModel  string `envconfig:"ADVISOR_MODEL" split_words:"true"`

	IntakeTemperature   float32 `envconfig:"INTAKE_TEMPERATURE" split_words:"true" default:"-1"`
	OptionsTemperature  float32 `envconfig:"OPTIONS_TEMPERATURE" split_words:"true" default:"-1"`
	CoverageTemperature float32 `envconfig:"COVERAGE_TEMPERATURE" split_words:"true" default:"-1"`
	PricingTemperature  float32 `envconfig:"PRICING_TEMPERATURE" split_words:"true" default:"-1"`
	AdvisorTemperature  float32 `envconfig:"ADVISOR_TEMPERATURE" split_words:"true" default:"-1"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: completion api key is required", contract.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contract.ErrValidation)
	}
	return nil
}

// OpenRouterFor resolves the effective endpoint config for one stage.
func (c Config) OpenRouterFor(stage contract.Stage) openrouterx.Config {
	modelName := strings.TrimSpace(c.Model)
	temp := c.Temperature

	override := func(model string, temperature float32) {
		if v := strings.TrimSpace(model); v != "" {
			modelName = v
		}
		if temperature >= 0 {
			temp = temperature
		}
	}

	switch stage {
	case contract.StageIntake:
		override(c.IntakeModel, c.IntakeTemperature)
	case contract.StageOptions:
		override(c.OptionsModel, c.OptionsTemperature)
	case contract.StageCoverage:
		override(c.CoverageModel, c.CoverageTemperature)
	case contract.StagePricing:
		override(c.PricingModel, c.PricingTemperature)
	case contract.StageAdvisor:
		override(c.AdvisorModel, c.AdvisorTemperature)
	}

	maxCompletionToken := c.MaxCompletionToken
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        temp,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}

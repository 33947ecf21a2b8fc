package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/intake.txt
	intakeRaw string

	//go:embed template/options.txt
	optionsRaw string

	//go:embed template/coverage.txt
	coverageRaw string

	//go:embed template/pricing.txt
	pricingRaw string

	//go:embed template/advisor.txt
	advisorRaw string
)

// PromptSet holds the per-stage instruction content.
type PromptSet struct {
	Intake   string
	Options  string
	Coverage string
	Pricing  string
	Advisor  string
}

// LoadPromptSet returns the embedded stage prompts, trimmed.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Intake:   strings.TrimSpace(intakeRaw),
		Options:  strings.TrimSpace(optionsRaw),
		Coverage: strings.TrimSpace(coverageRaw),
		Pricing:  strings.TrimSpace(pricingRaw),
		Advisor:  strings.TrimSpace(advisorRaw),
	}
}

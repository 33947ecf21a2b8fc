package contract

// Stage identifies one of the five fixed pipeline steps.
type Stage string

const (
	StageIntake   Stage = "intake"
	StageOptions  Stage = "options"
	StageCoverage Stage = "coverage"
	StagePricing  Stage = "pricing"
	StageAdvisor  Stage = "advisor"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type CompletionRequest struct {
	Messages []ChatMessage `json:"messages"`
}

type CompletionResponse struct {
	Content       string   `json:"content"`
	ToolsInvoked  []string `json:"tools_invoked,omitempty"`
	FinishedEmpty bool     `json:"finished_empty,omitempty"`
}

type ToolRequest struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args,omitempty"`
}

type ToolResult struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// CustomerProfile is the evolving record of known customer attributes.
// Pointer fields distinguish "never extracted" from zero values: a field
// set by a successful intake extraction is never reverted to a default by
// a later turn, and defaults only fill genuinely absent fields.
type CustomerProfile struct {
	Age           *int    `json:"age,omitempty"`
	Income        *int    `json:"income,omitempty"`
	Dependents    *int    `json:"dependents,omitempty"`
	Debts         *int    `json:"debts,omitempty"`
	Mortgage      *int    `json:"mortgage,omitempty"`
	Goals         *string `json:"goals,omitempty"`
	HealthClass   *string `json:"health_class,omitempty"`
	PreferredTerm *int    `json:"preferred_term,omitempty"`
}

// ResolvedProfile is the immutable per-turn snapshot passed by value into
// each stage context, with documented defaults filling unset fields.
type ResolvedProfile struct {
	Age           int    `json:"age"`
	Income        int    `json:"income"`
	Dependents    int    `json:"dependents"`
	Debts         int    `json:"debts"`
	Mortgage      int    `json:"mortgage"`
	Goals         string `json:"goals"`
	HealthClass   string `json:"health_class"`
	PreferredTerm int    `json:"preferred_term"`
}

type PolicyCriteria struct {
	Age int `json:"age"`
}

type PolicyRecord struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	MinAge      *int   `json:"min_age,omitempty"`
	MaxAge      *int   `json:"max_age,omitempty"`
	Description string `json:"description,omitempty"`
}

type PolicyOptions struct {
	Category string         `json:"category"`
	Criteria PolicyCriteria `json:"criteria"`
	Found    int            `json:"found"`
	Policies []PolicyRecord `json:"policies"`
}

type CoverageInputs struct {
	AnnualIncome int `json:"annual_income"`
	Dependents   int `json:"dependents"`
	Debts        int `json:"debts"`
	Mortgage     int `json:"mortgage"`
}

type CoverageMethods struct {
	IncomeReplacement int `json:"income_replacement"`
	DIME              int `json:"dime"`
	HumanLifeValue    int `json:"human_life_value"`
}

type CoverageAnalysis struct {
	Inputs              CoverageInputs  `json:"inputs"`
	Methods             CoverageMethods `json:"methods"`
	RecommendedCoverage int             `json:"recommended_coverage"`
	Notes               string          `json:"notes,omitempty"`
}

type PremiumQuote struct {
	Monthly float64 `json:"monthly"`
	Annual  float64 `json:"annual"`
}

type PremiumEstimate struct {
	PolicyType             string                  `json:"policy_type"`
	AgeUsedForRate         int                     `json:"age_used_for_rate"`
	CoverageAmount         int                     `json:"coverage_amount"`
	EstimatesByHealthClass map[string]PremiumQuote `json:"estimates_by_health_class"`
	Notes                  string                  `json:"notes,omitempty"`
}

// Provenance records whether a stage result came from a successful
// extraction or from the stage's documented fallback default.
type Provenance string

const (
	ProvenanceParsed    Provenance = "parsed"
	ProvenanceDefaulted Provenance = "defaulted"
)

// StageResult wraps one stage's structured record together with its
// provenance and the raw agent text it was extracted from.
type StageResult[T any] struct {
	Value      T          `json:"value"`
	Provenance Provenance `json:"provenance"`
	Raw        string     `json:"raw,omitempty"`
}

func Parsed[T any](v T, raw string) StageResult[T] {
	return StageResult[T]{Value: v, Provenance: ProvenanceParsed, Raw: raw}
}

func Defaulted[T any](v T, raw string) StageResult[T] {
	return StageResult[T]{Value: v, Provenance: ProvenanceDefaulted, Raw: raw}
}

func (r StageResult[T]) Defaulted() bool {
	return r.Provenance == ProvenanceDefaulted
}

// TeamState is the per-turn aggregate handed to the advisor stage. It is
/// owned by the orchestrator and never mutated concurrently: fan-out stage
// results are written back only after their tasks complete.
type TeamState struct {
	Profile  ResolvedProfile               `json:"profile"`
	Options  StageResult[PolicyOptions]    `json:"options"`
	Coverage StageResult[CoverageAnalysis] `json:"coverage"`
	Pricing  StageResult[PremiumEstimate]  `json:"pricing"`
}

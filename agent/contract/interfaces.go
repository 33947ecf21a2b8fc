package contract

import "context"

// StageAgent is the completion capability configured for one stage: given a
// short ordered conversational context it returns free-form text, optionally
// having invoked calculation tools during generation.
type StageAgent interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)
}

// Registry exposes the five configured stage agents.
type Registry interface {
	Intake() StageAgent
	Options() StageAgent
	Coverage() StageAgent
	Pricing() StageAgent
	Advisor() StageAgent
}

package nodes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/coverwise/advisor-agent/agent/contract"
	"github.com/coverwise/advisor-agent/agent/extract"
)

// runExtracted dispatches one stage-scoped context and extracts the typed
// result. Call and extraction failures degrade to the supplied fallback;
// only a transport failure propagates as an error.
func runExtracted[T any](
	ctx context.Context,
	stg contract.Stage,
	agent contract.StageAgent,
	payload map[string]any,
	fallback T,
) (contract.StageResult[T], error) {
	req, err := stageRequest(payload)
	if err != nil {
		return contract.StageResult[T]{}, err
	}

	resp, err := agent.Complete(ctx, req)
	if errors.Is(err, contract.ErrTransport) {
		return contract.StageResult[T]{}, err
	}
	if err != nil {
		log.Warn().Err(err).Str("stage", string(stg)).Msg("stage call failed, applying default")
		return contract.Defaulted(fallback, ""), nil
	}

	value, err := extract.Record[T](resp.Content)
	if err != nil {
		log.Debug().Err(err).Str("stage", string(stg)).Msg("stage extraction failed, applying default")
		return contract.Defaulted(fallback, resp.Content), nil
	}
	return contract.Parsed(value, resp.Content), nil
}

// stageRequest builds an independent, stage-scoped conversational context
// (not the shared transcript) carrying the payload as one user message.
func stageRequest(payload map[string]any) (contract.CompletionRequest, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return contract.CompletionRequest{}, fmt.Errorf("%w: marshal stage payload: %v", contract.ErrValidation, err)
	}
	return contract.CompletionRequest{
		Messages: []contract.ChatMessage{
			{Role: contract.RoleUser, Content: string(body)},
		},
	}, nil
}

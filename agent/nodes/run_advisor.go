package nodes

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/coverwise/advisor-agent/agent/contract"
)

// RunAdvisor hands the advisor stage the complete, well-typed TeamState
// (defaults already substituted wherever extraction failed) and takes its
// raw text as the turn's recommendation. A failed call or empty content
// yields the fixed fallback message rather than failing the turn.
func RunAdvisor(ctx context.Context, in *TurnState, agent contract.StageAgent) (*TurnState, error) {
	req, err := stageRequest(map[string]any{
		"profile":  in.Team.Profile,
		"options":  in.Team.Options,
		"coverage": in.Team.Coverage,
		"pricing":  in.Team.Pricing,
	})
	if err != nil {
		return nil, err
	}

	resp, err := agent.Complete(ctx, req)
	switch {
	case errors.Is(err, contract.ErrTransport):
		return nil, err
	case err != nil:
		log.Warn().Err(err).Str("session_id", in.SessionID).Msg("advisor call failed")
		in.Recommendation = FallbackRecommendation
	default:
		in.Recommendation = strings.TrimSpace(resp.Content)
		if in.Recommendation == "" {
			in.Recommendation = FallbackRecommendation
		}
	}

	return in, nil
}

package nodes

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/coverwise/advisor-agent/agent/contract"
	"github.com/coverwise/advisor-agent/agent/extract"
)

// RunIntake invokes the intake agent once over the shared transcript and
// merges the extracted profile patch. It is never re-invoked later in the
// turn. On call or extraction failure the previous profile is retained;
// unset fields resolve to documented defaults in the snapshot.
func RunIntake(ctx context.Context, in *TurnState, agent contract.StageAgent) (*TurnState, error) {
	resp, err := agent.Complete(ctx, contract.CompletionRequest{
		Messages: in.Session.Transcript,
	})
	switch {
	case errors.Is(err, contract.ErrTransport):
		return nil, err
	case err != nil:
		log.Warn().Err(err).Str("session_id", in.SessionID).Msg("intake call failed, keeping profile")
	default:
		patch, perr := extract.Record[contract.CustomerProfile](resp.Content)
		if perr != nil {
			log.Debug().Err(perr).Str("session_id", in.SessionID).Msg("intake extraction failed, keeping profile")
		} else {
			in.Session.MergeProfile(patch)
		}
	}

	in.Team.Profile = in.Session.ResolveProfile()
	return in, nil
}

package nodes

import (
	"context"

	"github.com/rs/zerolog/log"

	statex "github.com/coverwise/advisor-agent/agent/state"
)

// SaveSession commits the turn to the durable session: recommendation
// appended to the transcript, turn recorded in history. A store failure is
// logged but does not discard the recommendation already produced.
func SaveSession(ctx context.Context, in *TurnState, store statex.Store) (*TurnState, error) {
	in.Session.AppendAssistant(in.Recommendation)
	in.Session.RecordTurn(statex.TurnRecord{
		UserMessage:     in.Text,
		Recommendation:  in.Recommendation,
		DefaultedStages: defaultedStages(in),
		At:              in.Now,
	})
	in.Session.Touch(in.Now)

	if err := store.Save(ctx, in.Session); err != nil {
		log.Error().Err(err).Str("session_id", in.SessionID).Msg("save session failed")
	}
	return in, nil
}

func defaultedStages(in *TurnState) []string {
	var out []string
	if in.Team.Options.Defaulted() {
		out = append(out, "options")
	}
	if in.Team.Coverage.Defaulted() {
		out = append(out, "coverage")
	}
	if in.Team.Pricing.Defaulted() {
		out = append(out, "pricing")
	}
	return out
}

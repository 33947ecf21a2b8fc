package nodes

import (
	"context"
	"errors"
	"fmt"

	statex "github.com/coverwise/advisor-agent/agent/state"
)

// LoadOrCreateSession loads the durable session and appends the user
// message to the working copy. The durable record only changes when the
// save node commits, so a fatal turn leaves transcript and profile intact.
func LoadOrCreateSession(
	ctx context.Context,
	in *TurnState,
	store statex.Store,
	customerID string,
	channelType string,
) (*TurnState, error) {
	st, err := store.Load(ctx, in.SessionID)
	switch {
	case err == nil:
	case errors.Is(err, statex.ErrStateNotFound):
		st = statex.NewSessionState(in.SessionID, customerID, channelType, in.Now)
	default:
		return nil, fmt.Errorf("load session: %w", err)
	}

	st.AppendUser(in.Text)
	in.Session = st
	return in, nil
}

package nodes

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidMessage = errors.New("user message is empty")
	ErrInvalidSession = errors.New("session id is empty")
)

func ValidateRequest(in GraphInput, now func() time.Time) (*TurnState, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		return nil, ErrInvalidSession
	}
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrInvalidMessage
	}

	return &TurnState{
		SessionID: sessionID,
		Text:      text,
		Now:       now(),
	}, nil
}

package state

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/coverwise/advisor-agent/agent/contract"
)

const maxTurnHistory = 20

// Documented profile defaults. They only fill genuinely absent fields; a
// field set by a successful intake extraction is never reverted to these.
const (
	DefaultAge           = 35
	DefaultIncome        = 65000
	DefaultDependents    = 0
	DefaultDebts         = 0
	DefaultMortgage      = 0
	DefaultGoals         = "income replacement"
	DefaultHealthClass   = "standard"
	DefaultPreferredTerm = 20
)

var (
	ErrNilSessionState = errors.New("session state is nil")
	ErrInvalidSession  = errors.New("session id is empty")
)

// TurnRecord is one completed turn kept for diagnostics.
type TurnRecord struct {
	UserMessage     string    `json:"user_message"`
	Recommendation  string    `json:"recommendation"`
	DefaultedStages []string  `json:"defaulted_stages,omitempty"`
	At              time.Time `json:"at"`
}

// SessionState is the durable per-conversation record: the shared
// transcript the intake stage reads, the evolving customer profile, and
// bounded turn history. Owned by the orchestrator; mutated only between
// stage runs, never concurrently within a turn.
type SessionState struct {
	SessionID   string `json:"session_id"`
	CustomerID  string `json:"customer_id,omitempty"`
	ChannelType string `json:"channel_type,omitempty"`

	Transcript []contract.ChatMessage   `json:"transcript,omitempty"`
	Profile    contract.CustomerProfile `json:"profile"`
	History    []TurnRecord             `json:"history,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

func NewSessionState(sessionID, customerID, channelType string, now time.Time) *SessionState {
	return &SessionState{
		SessionID:   sessionID,
		CustomerID:  customerID,
		ChannelType: channelType,
		UpdatedAt:   now.UTC(),
	}
}

func (s *SessionState) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}

func (s *SessionState) AppendUser(text string) {
	s.Transcript = append(s.Transcript, contract.ChatMessage{Role: contract.RoleUser, Content: text})
}

func (s *SessionState) AppendAssistant(text string) {
	s.Transcript = append(s.Transcript, contract.ChatMessage{Role: contract.RoleAssistant, Content: text})
}

// RecordTurn appends to the bounded turn history.
func (s *SessionState) RecordTurn(rec TurnRecord) {
	s.History = append(s.History, rec)
	if len(s.History) > maxTurnHistory {
		s.History = s.History[len(s.History)-maxTurnHistory:]
	}
}

// MergeProfile folds an extracted patch into the profile. Only fields
// present in the patch and passing validation are taken; fields already set
// are overwritten only by a new extracted value, never cleared.
func (s *SessionState) MergeProfile(patch contract.CustomerProfile) {
	if patch.Age != nil && *patch.Age >= 0 && *patch.Age <= 120 {
		s.Profile.Age = intPtr(*patch.Age)
	}
	if patch.Income != nil && *patch.Income >= 0 {
		s.Profile.Income = intPtr(*patch.Income)
	}
	if patch.Dependents != nil && *patch.Dependents >= 0 {
		s.Profile.Dependents = intPtr(*patch.Dependents)
	}
	if patch.Debts != nil && *patch.Debts >= 0 {
		s.Profile.Debts = intPtr(*patch.Debts)
	}
	if patch.Mortgage != nil && *patch.Mortgage >= 0 {
		s.Profile.Mortgage = intPtr(*patch.Mortgage)
	}
	if patch.Goals != nil && strings.TrimSpace(*patch.Goals) != "" {
		goals := strings.TrimSpace(*patch.Goals)
		s.Profile.Goals = &goals
	}
	if patch.HealthClass != nil {
		if class, ok := normalizeHealthClass(*patch.HealthClass); ok {
			s.Profile.HealthClass = &class
		}
	}
	if patch.PreferredTerm != nil && *patch.PreferredTerm > 0 {
		s.Profile.PreferredTerm = intPtr(*patch.PreferredTerm)
	}
}

// ResolveProfile snapshots the profile with documented defaults filling
// unset fields. The snapshot is passed by value into stage contexts.
func (s *SessionState) ResolveProfile() contract.ResolvedProfile {
	return contract.ResolvedProfile{
		Age:           intOr(s.Profile.Age, DefaultAge),
		Income:        intOr(s.Profile.Income, DefaultIncome),
		Dependents:    intOr(s.Profile.Dependents, DefaultDependents),
		Debts:         intOr(s.Profile.Debts, DefaultDebts),
		Mortgage:      intOr(s.Profile.Mortgage, DefaultMortgage),
		Goals:         strOr(s.Profile.Goals, DefaultGoals),
		HealthClass:   strOr(s.Profile.HealthClass, DefaultHealthClass),
		PreferredTerm: intOr(s.Profile.PreferredTerm, DefaultPreferredTerm),
	}
}

func (s *SessionState) Validate() error {
	if s == nil {
		return ErrNilSessionState
	}
	if strings.TrimSpace(s.SessionID) == "" {
		return ErrInvalidSession
	}
	if s.Profile.Age != nil && (*s.Profile.Age < 0 || *s.Profile.Age > 120) {
		return fmt.Errorf("profile age out of range: %d", *s.Profile.Age)
	}
	return nil
}

// Clone deep-copies the state so stores and tests never share slices with
// the orchestrator's working copy.
func (s *SessionState) Clone() *SessionState {
	if s == nil {
		return nil
	}
	out := *s
	out.Transcript = append([]contract.ChatMessage(nil), s.Transcript...)
	out.History = append([]TurnRecord(nil), s.History...)
	out.Profile = cloneProfile(s.Profile)
	return &out
}

func cloneProfile(p contract.CustomerProfile) contract.CustomerProfile {
	out := contract.CustomerProfile{}
	if p.Age != nil {
		out.Age = intPtr(*p.Age)
	}
	if p.Income != nil {
		out.Income = intPtr(*p.Income)
	}
	if p.Dependents != nil {
		out.Dependents = intPtr(*p.Dependents)
	}
	if p.Debts != nil {
		out.Debts = intPtr(*p.Debts)
	}
	if p.Mortgage != nil {
		out.Mortgage = intPtr(*p.Mortgage)
	}
	if p.Goals != nil {
		goals := *p.Goals
		out.Goals = &goals
	}
	if p.HealthClass != nil {
		class := *p.HealthClass
		out.HealthClass = &class
	}
	if p.PreferredTerm != nil {
		out.PreferredTerm = intPtr(*p.PreferredTerm)
	}
	return out
}

func normalizeHealthClass(raw string) (string, bool) {
	class := strings.ToLower(strings.TrimSpace(raw))
	switch class {
	case "preferred", "standard", "substandard":
		return class, true
	default:
		return "", false
	}
}

func intPtr(v int) *int { return &v }

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func strOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

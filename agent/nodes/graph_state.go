// Package nodes holds the per-turn pipeline node functions the advisor
// orchestrator composes into its graph, plus the fallback-default policy
// applied when a stage call or extraction fails.
package nodes

import (
	"time"

	"github.com/coverwise/advisor-agent/agent/contract"
	statex "github.com/coverwise/advisor-agent/agent/state"
)

type GraphInput struct {
	SessionID string
	Text      string
}

type GraphOutput struct {
	Recommendation string
}

// TurnState is threaded through the pipeline nodes. It is owned by one
// turn: concurrent stage results are written back only after the join
// barrier, never while tasks are in flight.
type TurnState struct {
	SessionID string
	Text      string
	Now       time.Time

	Session *statex.SessionState
	Team    contract.TeamState

	Recommendation string
}

// Package advisor drives the fixed five-stage advisory pipeline: intake,
// then options and coverage in parallel, then pricing, then the final
// recommendation. It owns the session state and all fallback-default
// policy; no individual stage failure aborts a turn.
package advisor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"

	"github.com/coverwise/advisor-agent/agent/contract"
	nodex "github.com/coverwise/advisor-agent/agent/nodes"
	statex "github.com/coverwise/advisor-agent/agent/state"
)

var (
	ErrInvalidMessage = nodex.ErrInvalidMessage
	ErrInvalidSession = nodex.ErrInvalidSession
)

type Config struct {
	CustomerID  string
	ChannelType string
}

type Orchestrator struct {
	store  statex.Store
	models contract.Registry

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	customerID  string
	channelType string

	now func() time.Time
}

func New(store statex.Store, models contract.Registry, cfg Config) (*Orchestrator, error) {
	if store == nil {
		return nil, errors.New("session store is required")
	}
	if models == nil {
		return nil, errors.New("stage registry is required")
	}

	customerID := strings.TrimSpace(cfg.CustomerID)
	if customerID == "" {
		customerID = "default-customer"
	}
	channelType := strings.TrimSpace(cfg.ChannelType)
	if channelType == "" {
		channelType = "chat"
	}

	o := &Orchestrator{
		store:       store,
		models:      models,
		customerID:  customerID,
		channelType: channelType,
		now:         time.Now,
	}

	graphRunner, err := o.compileTurnGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

// RunTurn runs one full pipeline turn for the session and returns the
// synthesized recommendation. Synchronous from the caller's perspective,
// internally concurrent across the options and coverage stages.
func (o *Orchestrator) RunTurn(ctx context.Context, sessionID string, userMessage string) (string, error) {
	out, err := o.graphRunner.Invoke(ctx, nodex.GraphInput{
		SessionID: sessionID,
		Text:      userMessage,
	})
	if err != nil {
		return "", err
	}
	return out.Recommendation, nil
}

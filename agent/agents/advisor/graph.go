package advisor

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	nodex "github.com/coverwise/advisor-agent/agent/nodes"
)

// compileTurnGraph wires the turn pipeline. Stage ordering is fixed: intake
// gates everything, the fan-out node runs options and coverage concurrently
// behind a join barrier, pricing consumes the coverage result, and the
// advisor consumes the full team state.
func (o *Orchestrator) compileTurnGraph(
	ctx context.Context,
) (compose.Runnable[nodex.GraphInput, nodex.GraphOutput], error) {
	graph := compose.NewGraph[nodex.GraphInput, nodex.GraphOutput]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.TurnState, error) {
			return nodex.ValidateRequest(in, o.now)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("load_or_create_session",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.TurnState) (*nodex.TurnState, error) {
			return nodex.LoadOrCreateSession(ctx, in, o.store, o.customerID, o.channelType)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node load_or_create_session: %w", err)
	}

	if err := graph.AddLambdaNode("run_intake",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.TurnState) (*nodex.TurnState, error) {
			return nodex.RunIntake(ctx, in, o.models.Intake())
		}),
	); err != nil {
		return nil, fmt.Errorf("add node run_intake: %w", err)
	}

	if err := graph.AddLambdaNode("fanout_research",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.TurnState) (*nodex.TurnState, error) {
			return nodex.FanOutResearch(ctx, in, o.models)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node fanout_research: %w", err)
	}

	if err := graph.AddLambdaNode("run_pricing",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.TurnState) (*nodex.TurnState, error) {
			return nodex.RunPricing(ctx, in, o.models.Pricing())
		}),
	); err != nil {
		return nil, fmt.Errorf("add node run_pricing: %w", err)
	}

	if err := graph.AddLambdaNode("run_advisor",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.TurnState) (*nodex.TurnState, error) {
			return nodex.RunAdvisor(ctx, in, o.models.Advisor())
		}),
	); err != nil {
		return nil, fmt.Errorf("add node run_advisor: %w", err)
	}

	if err := graph.AddLambdaNode("save_session",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.TurnState) (*nodex.TurnState, error) {
			return nodex.SaveSession(ctx, in, o.store)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node save_session: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_reply",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.TurnState) (nodex.GraphOutput, error) {
			return nodex.FinalizeReply(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_reply: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "load_or_create_session"},
		{"load_or_create_session", "run_intake"},
		{"run_intake", "fanout_research"},
		{"fanout_research", "run_pricing"},
		{"run_pricing", "run_advisor"},
		{"run_advisor", "save_session"},
		{"save_session", "finalize_reply"},
		{"finalize_reply", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("advisor.run_turn"))
	if err != nil {
		return nil, fmt.Errorf("compile advisor graph: %w", err)
	}
	return runner, nil
}

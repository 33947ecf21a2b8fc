package nodes

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/coverwise/advisor-agent/agent/contract"
)

// FanOutResearch dispatches the options and coverage stages concurrently
// and suspends at the join barrier until both complete. The two tasks share
// no mutable state: each reads immutable profile values from its own
// payload, and results are written to TurnState only after the join. A
// failure in one stage never blocks or invalidates the other; only a
// transport failure aborts the turn.
func FanOutResearch(ctx context.Context, in *TurnState, models contract.Registry) (*TurnState, error) {
	profile := in.Team.Profile

	var (
		options  contract.StageResult[contract.PolicyOptions]
		coverage contract.StageResult[contract.CoverageAnalysis]
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		res, err := runExtracted(gctx, contract.StageOptions, models.Options(), map[string]any{
			"age":      profile.Age,
			"category": "life",
			"goals":    profile.Goals,
		}, defaultPolicyOptions(profile.Age))
		if err != nil {
			return err
		}
		options = res
		return nil
	})

	g.Go(func() error {
		res, err := runExtracted(gctx, contract.StageCoverage, models.Coverage(), map[string]any{
			"annual_income": profile.Income,
			"dependents":    profile.Dependents,
			"debts":         profile.Debts,
			"mortgage":      profile.Mortgage,
		}, defaultCoverageAnalysis(profile))
		if err != nil {
			return err
		}
		coverage = res
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	in.Team.Options = options
	in.Team.Coverage = coverage
	return in, nil
}

package nodes

import (
	"fmt"
	"strings"

	"github.com/coverwise/advisor-agent/agent/contract"
)

func FinalizeReply(in *TurnState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: turn state is nil", contract.ErrValidation)
	}

	reply := strings.TrimSpace(in.Recommendation)
	if reply == "" {
		reply = FallbackRecommendation
	}
	return GraphOutput{Recommendation: reply}, nil
}

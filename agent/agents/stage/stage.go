// Package stage adapts one configured chat model into the completion
// capability a pipeline stage invokes: a short conversational context in,
// free-form text out, with calculation tools optionally executed during
// generation.
package stage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	"github.com/coverwise/advisor-agent/agent/contract"
	toolx "github.com/coverwise/advisor-agent/agent/tool"
)

// maxToolRounds bounds the generate/execute loop; a stage needs at most one
// tool round in practice.
const maxToolRounds = 3

type Agent struct {
	stage        contract.Stage
	chatModel    einomodel.BaseChatModel
	systemPrompt string
	executor     toolx.Executor
	allowedTools map[string]struct{}
}

func New(
	stg contract.Stage,
	chatModel einomodel.ToolCallingChatModel,
	systemPrompt string,
) (*Agent, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("%w: chat model is required for stage=%s", contract.ErrValidation, stg)
	}
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: system prompt is required for stage=%s", contract.ErrValidation, stg)
	}

	infos, executor := toolx.BuildForStage(stg)

	var boundModel einomodel.BaseChatModel = chatModel
	allowed := make(map[string]struct{}, len(infos))
	if len(infos) > 0 {
		withTools, err := chatModel.WithTools(infos)
		if err != nil {
			return nil, fmt.Errorf("%w: bind tools for stage=%s: %v", contract.ErrStageCall, stg, err)
		}
		boundModel = withTools
		for _, info := range infos {
			allowed[info.Name] = struct{}{}
		}
	}

	return &Agent{
		stage:        stg,
		chatModel:    boundModel,
		systemPrompt: systemPrompt,
		executor:     executor,
		allowedTools: allowed,
	}, nil
}

// Complete runs the generation loop: invoke the model, execute any tool
// calls it makes, feed results back, and return the final text. Tool
// execution errors are surfaced to the model through the tool message, not
// to the caller.
func (a *Agent) Complete(ctx context.Context, req contract.CompletionRequest) (contract.CompletionResponse, error) {
	msgs := make([]*schema.Message, 0, len(req.Messages)+1)
	msgs = append(msgs, schema.SystemMessage(a.systemPrompt))
	for _, m := range req.Messages {
		switch m.Role {
		case contract.RoleAssistant:
			msgs = append(msgs, schema.AssistantMessage(m.Content, nil))
		default:
			msgs = append(msgs, schema.UserMessage(m.Content))
		}
	}

	var invoked []string
	for round := 0; round <= maxToolRounds; round++ {
		out, err := a.chatModel.Generate(ctx, msgs)
		if err != nil {
			return contract.CompletionResponse{}, a.classify(err)
		}
		if out == nil {
			return contract.CompletionResponse{FinishedEmpty: true},
				fmt.Errorf("%w: stage=%s returned nil message", contract.ErrStageCall, a.stage)
		}

		if len(out.ToolCalls) == 0 {
			content := strings.TrimSpace(out.Content)
			if content == "" {
				return contract.CompletionResponse{FinishedEmpty: true},
					fmt.Errorf("%w: stage=%s returned empty content", contract.ErrStageCall, a.stage)
			}
			return contract.CompletionResponse{Content: content, ToolsInvoked: invoked}, nil
		}

		msgs = append(msgs, out)
		for _, call := range out.ToolCalls {
			result := a.executeCall(ctx, call)
			invoked = append(invoked, result.Tool)

			payload, err := json.Marshal(result)
			if err != nil {
				payload = []byte(fmt.Sprintf(`{"tool":%q,"error":"marshal tool result"}`, result.Tool))
			}
			msgs = append(msgs, schema.ToolMessage(string(payload), call.ID))
		}
	}

	return contract.CompletionResponse{},
		fmt.Errorf("%w: stage=%s exhausted tool rounds", contract.ErrStageCall, a.stage)
}

func (a *Agent) executeCall(ctx context.Context, call schema.ToolCall) contract.ToolResult {
	name := strings.TrimSpace(call.Function.Name)
	if name == "" {
		return contract.ToolResult{Error: "tool call name is empty"}
	}
	if _, ok := a.allowedTools[name]; !ok {
		return contract.ToolResult{
			Tool:  name,
			Error: fmt.Sprintf("tool=%s is not declared for stage=%s", name, a.stage),
		}
	}

	args := map[string]any{}
	if raw := strings.TrimSpace(call.Function.Arguments); raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			return contract.ToolResult{
				Tool:  name,
				Error: fmt.Sprintf("invalid tool arguments: %v", err),
			}
		}
	}

	result, err := a.executor(ctx, name, args)
	if err != nil {
		return contract.ToolResult{Tool: name, Error: err.Error()}
	}
	if result.Error != "" {
		log.Debug().Str("stage", string(a.stage)).Str("tool", name).Str("tool_error", result.Error).
			Msg("tool call rejected")
	}
	return result
}

// classify separates an unreachable completion service (fatal for the
// turn) from a failed call (degrades to stage defaults). Timeouts count as
// failed calls.
func (a *Agent) classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: stage=%s deadline exceeded: %v", contract.ErrStageCall, a.stage, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return fmt.Errorf("%w: stage=%s timed out: %v", contract.ErrStageCall, a.stage, err)
		}
		return fmt.Errorf("%w: stage=%s: %v", contract.ErrTransport, a.stage, err)
	}

	return fmt.Errorf("%w: stage=%s: %v", contract.ErrStageCall, a.stage, err)
}

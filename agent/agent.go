package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/EfeSenerr/demo-ghcp-cli/core"
	"github.com/EfeSenerr/demo-ghcp-cli/logging"
	"github.com/EfeSenerr/demo-ghcp-cli/model"
	"github.com/EfeSenerr/demo-ghcp-cli/tool"
)

// Options configure an Agent instance. Use functional options with New to
// override defaults.
type Options struct {
	Instruction   Instruction
	Tools         []tool.Tool
	MaxToolRounds int
	Logger        logging.Logger
}

// Agent is a named persona wrapping a chat backend. It holds a fixed
// instruction string (the persona) and produces exactly one reply per
// invocation given the incoming transcript.
//
// Agents are stateless between invocations: no memory of prior runs exists
// beyond the transcript explicitly passed in. A single Agent may therefore
// serve concurrent pipeline runs.
type Agent struct {
	name          string
	backend       model.Backend
	instruction   Instruction
	tools         map[string]tool.Tool
	maxToolRounds int
	logger        logging.Logger
}

// New creates an agent with the given name and backend. The default
// instruction is a generic assistant persona; override it via Options.
func New(name string, backend model.Backend, optFns ...func(o *Options)) *Agent {
	opts := Options{
		Instruction:   NewInstructionFromText(fmt.Sprintf("You are %s, a helpful assistant.", name)),
		MaxToolRounds: 5,
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	tools := make(map[string]tool.Tool, len(opts.Tools))
	for _, t := range opts.Tools {
		tools[t.Name()] = t
	}

	return &Agent{
		name:          name,
		backend:       backend,
		instruction:   opts.Instruction,
		tools:         tools,
		maxToolRounds: opts.MaxToolRounds,
		logger:        opts.Logger,
	}
}

// Name returns the agent's name, used for message attribution.
func (a *Agent) Name() string { return a.name }

// RegisterTool adds a capability to the agent's tool set. Must be called
// before the agent serves any run.
func (a *Agent) RegisterTool(t tool.Tool) { a.tools[t.Name()] = t }

// HasTool reports whether a tool is registered with the agent.
func (a *Agent) HasTool(name string) bool {
	_, exists := a.tools[name]
	return exists
}

// Respond produces this agent's single reply to the transcript. The agent's
// instructions are prepended as a system directive; the returned message is
// tagged with the agent's name and the next sequence index.
//
// When the backend requests tool calls and the agent has matching tools
// registered, the calls are executed and their results fed back for another
// round, bounded by MaxToolRounds. Errors are surfaced unretried; retry
// policy belongs to the caller.
func (a *Agent) Respond(ctx context.Context, transcript core.Transcript) (core.Message, error) {
	instructions, err := a.instruction.Resolve(ctx)
	if err != nil {
		return core.Message{}, fmt.Errorf("failed to resolve instructions: %w", err)
	}

	messages := buildConversation(transcript)

	var defs []model.ToolDefinition
	for _, t := range a.tools {
		defs = append(defs, model.ToolDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}

	for round := 0; ; round++ {
		start := time.Now()
		resp, err := a.backend.Generate(ctx, model.Request{
			Instructions: instructions,
			Messages:     messages,
			Tools:        defs,
		})
		if err != nil {
			a.logger.Error("agent.generate.failed", "agent", a.name, "error", err.Error())
			return core.Message{}, err
		}

		a.logger.Debug(
			"agent.generate.done",
			"agent", a.name,
			"round", round,
			"duration_ms", time.Since(start).Milliseconds(),
			"tool_calls", len(resp.ToolCalls),
		)

		if len(resp.ToolCalls) == 0 {
			if resp.Content == "" {
				return core.Message{}, core.NewBackendError(core.ErrMalformedResponse, nil)
			}
			return core.NewMessage(a.name, resp.Content, transcript.Len()), nil
		}

		if round >= a.maxToolRounds {
			return core.Message{}, fmt.Errorf("tool call limit exceeded after %d rounds", round)
		}

		messages = append(messages, model.ChatMessage{
			Role:      model.RoleAssistant,
			Name:      a.name,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		for _, call := range resp.ToolCalls {
			result, err := a.executeTool(ctx, call)
			if err != nil {
				return core.Message{}, err
			}
			messages = append(messages, model.ChatMessage{
				Role:       model.RoleTool,
				Content:    result,
				ToolCallID: call.ID,
			})
		}
	}
}

// executeTool resolves and invokes a requested tool, serializing the result
// for the follow-up round.
func (a *Agent) executeTool(ctx context.Context, call model.ToolCall) (string, error) {
	t, exists := a.tools[call.Name]
	if !exists {
		return "", fmt.Errorf("backend requested unknown tool %q", call.Name)
	}

	args := map[string]any{}
	if call.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return "", fmt.Errorf("failed to unmarshal arguments for tool %q: %w", call.Name, err)
		}
	}

	start := time.Now()
	result, err := t.Call(ctx, args)
	if err != nil {
		a.logger.Error("agent.tool.failed", "agent", a.name, "tool", call.Name, "error", err.Error())
		return "", err
	}

	a.logger.Info(
		"agent.tool.done",
		"agent", a.name,
		"tool", call.Name,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if s, ok := result.(string); ok {
		return s, nil
	}
	encoded, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to serialize result of tool %q: %w", call.Name, err)
	}
	return string(encoded), nil
}

// buildConversation converts a transcript into backend chat messages: the
// prompt as the user turn, each prior agent output as an assistant turn
// attributed to its author.
func buildConversation(t core.Transcript) []model.ChatMessage {
	messages := make([]model.ChatMessage, 0, len(t.Messages)+1)
	messages = append(messages, model.ChatMessage{Role: model.RoleUser, Content: t.Prompt})
	for _, msg := range t.Messages {
		messages = append(messages, model.ChatMessage{
			Role:    model.RoleAssistant,
			Name:    msg.Author,
			Content: msg.Content,
		})
	}
	return messages
}

// Package model defines the provider-agnostic chat backend abstraction the
// agent layer delegates text generation to.
//
// Core goals:
//   - Keep request/response shapes minimal and transport independent
//   - Normalize tool / function call representation (ToolDefinition, ToolCall)
//   - Facilitate deterministic stubbing for tests (StubBackend)
//
// Providers (OpenAI, Anthropic) implement the Backend interface from this
// package so agents remain decoupled from vendor SDKs.
package model

import (
	"context"
	"fmt"
	"sync"
)

// Role constants for chat messages.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ChatMessage is a single entry in the conversation sent to a backend.
// Name carries the authoring agent's identity on assistant messages.
// ToolCalls / ToolCallID are populated only on the tool-calling round trips.
type ChatMessage struct {
	Role       string     `json:"role"`
	Name       string     `json:"name,omitempty"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ToolCall represents a function call request surfaced by a model provider.
// Unified across vendors so downstream logic does not need per-provider
// branching.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // JSON string of arguments
}

// ToolDefinition declaratively exposes a callable function to the model.
// Parameters is a JSON Schema object (minimal subset expected).
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Request captures the normalized backend input produced by an agent:
// the resolved persona instructions plus the conversation so far.
type Request struct {
	Instructions string           `json:"instructions"`
	Messages     []ChatMessage    `json:"messages"`
	Tools        []ToolDefinition `json:"tools,omitempty"`
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the completed generation for one backend call.
type Response struct {
	Content      string      `json:"content"`
	ToolCalls    []ToolCall  `json:"tool_calls,omitempty"`
	FinishReason string      `json:"finish_reason"`
	Usage        *TokenUsage `json:"usage,omitempty"`
}

// Info contains metadata about a backend implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"` // "openai", "anthropic", "stub", etc.
	SupportsTools bool   `json:"supports_tools"`
}

// Backend is the minimal interface agents require to drive generation.
// Implementations classify transport failures into the core error taxonomy
// and must respect context cancellation.
type Backend interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the backend implementation.
	Info() Info
}

// StubBackend is a deterministic in-memory Backend for tests and examples.
// Responses are served in scripted order; when the script is exhausted a
// synthesized echo of the last message is returned so ad-hoc usage still
// works. Safe for concurrent use.
type StubBackend struct {
	mu       sync.Mutex
	info     Info
	script   []stubStep
	cursor   int
	requests []Request
}

type stubStep struct {
	resp *Response
	err  error
}

// NewStubBackend constructs an empty stub.
func NewStubBackend() *StubBackend {
	return &StubBackend{
		info: Info{Name: "stub", Provider: "stub", SupportsTools: true},
	}
}

// AddResponse appends a scripted text completion.
func (s *StubBackend) AddResponse(content string) *StubBackend {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.script = append(s.script, stubStep{resp: &Response{Content: content, FinishReason: "stop"}})
	return s
}

// AddToolCall appends a scripted response requesting a tool invocation.
func (s *StubBackend) AddToolCall(id, name, arguments string) *StubBackend {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.script = append(s.script, stubStep{resp: &Response{
		ToolCalls:    []ToolCall{{ID: id, Name: name, Arguments: arguments}},
		FinishReason: "tool_calls",
	}})
	return s
}

// AddError appends a scripted failure.
func (s *StubBackend) AddError(err error) *StubBackend {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.script = append(s.script, stubStep{err: err})
	return s
}

// Reset rewinds the script and clears recorded requests so the same stub
// can serve a second identical run.
func (s *StubBackend) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = 0
	s.requests = nil
}

// Requests returns a copy of every request seen so far, in order.
func (s *StubBackend) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	reqs := make([]Request, len(s.requests))
	copy(reqs, s.requests)
	return reqs
}

// Generate implements Backend.
func (s *StubBackend) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, req)

	if s.cursor < len(s.script) {
		step := s.script[s.cursor]
		s.cursor++
		if step.err != nil {
			return nil, step.err
		}
		resp := *step.resp
		return &resp, nil
	}

	var last string
	if n := len(req.Messages); n > 0 {
		last = req.Messages[n-1].Content
	}
	return &Response{
		Content:      fmt.Sprintf("Stub response to: %s", last),
		FinishReason: "stop",
	}, nil
}

// Info implements Backend.
func (s *StubBackend) Info() Info { return s.info }

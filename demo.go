// Package demo provides a high-level façade over the agent, model and tool
// packages for the writer/reviewer sequential orchestration demo. Most
// applications interact with this package by:
//  1. Constructing a backend (model/openai against GitHub Models, or
//     model/anthropic)
//  2. Building the canonical writer → reviewer pipeline via
//     NewWriterReviewerPipeline
//  3. Running it with Run or RunStream, observing output via collectors or
//     the message channel
package demo

import (
	"github.com/EfeSenerr/demo-ghcp-cli/agent"
	"github.com/EfeSenerr/demo-ghcp-cli/model"
)

// DefaultPrompt is the task used when the CLI is given no prompt override.
const DefaultPrompt = "Write a tagline for a budget-friendly eBike."

// Canonical personas for the two-stage pipeline.
const (
	WriterInstructions   = "You are a concise copywriter. Provide a single, punchy marketing sentence based on the prompt."
	ReviewerInstructions = "You are a thoughtful reviewer. Give brief feedback on the previous assistant message."
)

// NewWriterReviewerPipeline builds the canonical two-stage pipeline: a
// Writer drafting a tagline, then a Reviewer critiquing the Writer's full
// output.
func NewWriterReviewerPipeline(backend model.Backend, optFns ...func(o *agent.PipelineOptions)) (*agent.Pipeline, error) {
	writer := agent.New("Writer", backend, func(o *agent.Options) {
		o.Instruction = agent.NewInstructionFromText(WriterInstructions)
	})
	reviewer := agent.New("Reviewer", backend, func(o *agent.Options) {
		o.Instruction = agent.NewInstructionFromText(ReviewerInstructions)
	})

	return agent.NewPipeline("writer-reviewer", []*agent.Agent{writer, reviewer}, optFns...)
}

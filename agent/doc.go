// Package agent contains the agent and pipeline implementations for
// sequential orchestration.
//
//  1. Agent: a named persona wrapping a chat backend with fixed instructions
//     and an optional tool set
//  2. Instruction: static or dynamically provided system prompt text
//  3. Pipeline: ordered execution of agents where each agent consumes the
//     prior agent's full output, with observer notification and a streaming
//     variant
//
// Design principles:
//   - Minimal hidden state: agents are stateless between invocations
//   - Strict sequencing: agent i+1 always sees agent i's complete output
//   - Observability: collectors see every message, in order, as produced
//
// The package intentionally keeps backend specifics in the model package and
// tool implementations in the tool package to avoid cyclic deps.
package agent

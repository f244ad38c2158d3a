// Package core provides the foundational domain types shared by the
// orchestration layer. It defines:
//
//   - Messages (immutable per-turn records attributed to an agent)
//   - Transcripts (the ordered accumulation of prompt + agent outputs)
//   - Runs (the record of a completed or aborted pipeline invocation)
//   - The error taxonomy surfaced by backends and the pipeline
//
// The package intentionally keeps orchestration and provider concerns out of
// scope; agents and backends live in their own packages and depend on these
// types only.
package core

package agent

import (
	"context"

	"github.com/EfeSenerr/demo-ghcp-cli/core"
	"github.com/EfeSenerr/demo-ghcp-cli/logging"
)

// Collector observes messages as the pipeline produces them. OnMessage is
// invoked synchronously, once per turn, in pipeline order, before Run (or
// the stream) moves on. Collectors are strictly observers; nothing they do
// influences control flow.
type Collector interface {
	OnMessage(msg core.Message)
}

// CollectorFunc adapts an ordinary function to the Collector interface.
type CollectorFunc func(msg core.Message)

// OnMessage implements Collector.
func (f CollectorFunc) OnMessage(msg core.Message) { f(msg) }

// PipelineOptions configure a Pipeline instance.
type PipelineOptions struct {
	Collectors []Collector
	Logger     logging.Logger
}

// Pipeline coordinates the execution of agents in a fixed sequence.
//
// Each agent's output becomes part of the transcript the next agent
// consumes, so agent i+1 always sees agent i's complete output, never
// partial or concurrent text. The sequencing is a correctness requirement:
// each step's prompt textually depends on the previous step's full output.
//
// A Pipeline is immutable after construction and safe for concurrent runs;
// each run owns its transcript exclusively.
type Pipeline struct {
	name       string
	agents     []*Agent
	collectors []Collector
	logger     logging.Logger
}

// NewPipeline creates a sequential pipeline over the given agents.
//
// The agent sequence must be non-empty (core.ErrEmptyPipeline) and agent
// names must be unique (core.ErrDuplicateAgent); names attribute output
// deterministically.
func NewPipeline(name string, agents []*Agent, optFns ...func(o *PipelineOptions)) (*Pipeline, error) {
	if len(agents) == 0 {
		return nil, core.ErrEmptyPipeline
	}

	seen := make(map[string]struct{}, len(agents))
	for _, a := range agents {
		if _, dup := seen[a.Name()]; dup {
			return nil, core.ErrDuplicateAgent
		}
		seen[a.Name()] = struct{}{}
	}

	opts := PipelineOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Pipeline{
		name:       name,
		agents:     agents,
		collectors: opts.Collectors,
		logger:     opts.Logger,
	}, nil
}

// Name returns the pipeline's name.
func (p *Pipeline) Name() string { return p.name }

// Agents returns a copy of the agent sequence for safe iteration.
func (p *Pipeline) Agents() []*Agent {
	agents := make([]*Agent, len(p.agents))
	copy(agents, p.agents)
	return agents
}

// Run executes every agent in order against the growing transcript and
// returns the completed run record.
//
// Registered collectors observe each message strictly before the next agent
// is invoked and before Run returns. If any agent fails the run aborts
// immediately; the error is a *core.TurnError naming the offending agent
// and position, and no further message is produced.
func (p *Pipeline) Run(ctx context.Context, prompt string) (*core.Run, error) {
	run := core.NewRun(prompt)

	err := p.execute(ctx, prompt, func(msg core.Message) error {
		run.Append(msg)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return run, nil
}

// RunStream executes the pipeline like Run but emits each message to the
// returned channel immediately after it is produced, before the next agent
// is invoked. The message channel is closed when the run terminates; a
// terminal failure is delivered on the error channel. The stream is finite
// and not restartable.
//
// Emission is unbuffered: at most one message is in flight, so a slow
// consumer backpressures the pipeline rather than observing reordered or
// batched output.
func (p *Pipeline) RunStream(ctx context.Context, prompt string) (<-chan core.Message, <-chan error) {
	msgCh := make(chan core.Message)
	errCh := make(chan error, 1)

	go func() {
		defer close(msgCh)
		defer close(errCh)

		err := p.execute(ctx, prompt, func(msg core.Message) error {
			select {
			case msgCh <- msg:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if err != nil {
			errCh <- err
		}
	}()

	return msgCh, errCh
}

// execute drives the shared turn loop. deliver is called once per produced
// message after collectors have observed it; a non-nil return aborts the run.
func (p *Pipeline) execute(ctx context.Context, prompt string, deliver func(core.Message) error) error {
	transcript := core.NewTranscript(prompt)

	p.logger.Debug("pipeline.run.start", "pipeline", p.name, "agents", len(p.agents))

	for i, ag := range p.agents {
		// Honor cancellation between turns; an in-flight backend call is
		// bounded by the same ctx inside Respond.
		if err := ctx.Err(); err != nil {
			return err
		}

		msg, err := ag.Respond(ctx, transcript)
		if err != nil {
			p.logger.Error(
				"pipeline.turn.failed",
				"pipeline", p.name,
				"agent", ag.Name(),
				"position", i,
				"error", err.Error(),
			)
			return &core.TurnError{Agent: ag.Name(), Index: i, Err: err}
		}

		transcript = transcript.Append(msg)

		for _, c := range p.collectors {
			c.OnMessage(msg)
		}

		if err := deliver(msg); err != nil {
			return err
		}

		p.logger.Debug(
			"pipeline.turn.done",
			"pipeline", p.name,
			"agent", ag.Name(),
			"position", i,
		)
	}

	p.logger.Debug("pipeline.run.done", "pipeline", p.name)

	return nil
}

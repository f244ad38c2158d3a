// Command taglines runs the writer → reviewer sequential orchestration demo
// against the GitHub Models endpoint. Each agent's message is printed as it
// is produced; the reviewer's message is the final result.
//
// Usage:
//
//	GITHUB_TOKEN=... taglines [-prompt "..."] [-config demo.yml] [-v]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	demo "github.com/EfeSenerr/demo-ghcp-cli"
	"github.com/EfeSenerr/demo-ghcp-cli/agent"
	"github.com/EfeSenerr/demo-ghcp-cli/config"
	"github.com/EfeSenerr/demo-ghcp-cli/core"
	"github.com/EfeSenerr/demo-ghcp-cli/logging"
	"github.com/EfeSenerr/demo-ghcp-cli/model/openai"
	"github.com/EfeSenerr/demo-ghcp-cli/quote"
	"github.com/EfeSenerr/demo-ghcp-cli/tool"
)

func main() {
	prompt := flag.String("prompt", demo.DefaultPrompt, "task prompt for the pipeline")
	configPath := flag.String("config", "", "optional YAML config file")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if err := run(*prompt, *configPath, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(prompt, configPath string, verbose bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := logging.Logger(logging.NoOpLogger{})
	if verbose {
		logger = logging.NewTextLogger(os.Stderr, slog.LevelDebug)
	}

	backend := openai.New(func(o *openai.Options) {
		o.APIKey = cfg.Chat.Token
		o.BaseURL = cfg.Chat.BaseURL
		o.Model = cfg.Chat.Model
		o.RequestTimeout = cfg.Chat.Timeout
	})

	pipeline, err := buildPipeline(cfg, backend, logger)
	if err != nil {
		return err
	}

	// When a quote service is configured, the first agent gets the lookup
	// tool so the model can fold a quote into its draft.
	if cfg.Quotes.BaseURL != "" {
		quoteTool := tool.NewQuoteTool(quote.NewClient(cfg.Quotes.BaseURL, cfg.Quotes.Token))
		pipeline.Agents()[0].RegisterTool(quoteTool)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	fmt.Println("===== Conversation Flow =====")
	run, err := pipeline.Run(ctx, prompt)
	if err != nil {
		return err
	}

	final, _ := run.Final()
	fmt.Println("===== Final Result =====")
	fmt.Println(final.Content)

	return nil
}

// buildPipeline assembles agents from the config file when present, falling
// back to the canonical writer/reviewer pair. Messages are rendered as they
// are produced via a collector.
func buildPipeline(cfg config.Config, backend *openai.Backend, logger logging.Logger) (*agent.Pipeline, error) {
	printer := agent.CollectorFunc(func(msg core.Message) {
		fmt.Printf("# %s\n%s\n\n", msg.Author, msg.Content)
	})

	withOptions := func(o *agent.PipelineOptions) {
		o.Collectors = []agent.Collector{printer}
		o.Logger = logger
	}

	if len(cfg.Agents) == 0 {
		return demo.NewWriterReviewerPipeline(backend, withOptions)
	}

	agents := make([]*agent.Agent, len(cfg.Agents))
	for i, ac := range cfg.Agents {
		instructions := ac.Instructions
		agents[i] = agent.New(ac.Name, backend, func(o *agent.Options) {
			o.Instruction = agent.NewInstructionFromText(instructions)
			o.Logger = logger
		})
	}
	return agent.NewPipeline("configured", agents, withOptions)
}

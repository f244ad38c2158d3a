package tool

import (
	"context"

	"github.com/EfeSenerr/demo-ghcp-cli/quote"
)

// NewQuoteTool exposes the quote-lookup service as an agent capability. The
// model can call it mid-turn to fetch an inspirational quote to weave into
// its reply.
func NewQuoteTool(client *quote.Client) *FunctionTool {
	return NewFunctionTool(
		"get_quote",
		"Fetch an inspirational quote from the quote service",
		map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		func(ctx context.Context, _ map[string]any) (any, error) {
			q, err := client.Random(ctx)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"text":   q.Text,
				"author": q.Author,
			}, nil
		},
	)
}

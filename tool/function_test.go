package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sumSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"a": map[string]any{"type": "number"},
			"b": map[string]any{"type": "number"},
		},
		"required": []string{"a", "b"},
	}
}

func TestFunctionTool_Call(t *testing.T) {
	sum := NewFunctionTool("calculate_sum", "Calculate the sum of two numbers", sumSchema(),
		func(_ context.Context, args map[string]any) (any, error) {
			return args["a"].(float64) + args["b"].(float64), nil
		},
	)

	assert.Equal(t, "calculate_sum", sum.Name())
	assert.Equal(t, "Calculate the sum of two numbers", sum.Description())

	result, err := sum.Call(context.Background(), map[string]any{"a": float64(2), "b": float64(3)})
	assert.NoError(t, err)
	assert.Equal(t, float64(5), result)
}

func TestFunctionTool_MissingRequiredArgument(t *testing.T) {
	sum := NewFunctionTool("calculate_sum", "sum", sumSchema(),
		func(_ context.Context, args map[string]any) (any, error) {
			return args["a"].(float64) + args["b"].(float64), nil
		},
	)

	_, err := sum.Call(context.Background(), map[string]any{"a": float64(2)})
	assert.Error(t, err)

	var toolErr *ToolError
	assert.True(t, errors.As(err, &toolErr))
	assert.Equal(t, "VALIDATION_ERROR", toolErr.Code)
	assert.Equal(t, "calculate_sum", toolErr.Tool)
}

func TestFunctionTool_ExecutionErrorWrapped(t *testing.T) {
	failing := NewFunctionTool("boom", "always fails",
		map[string]any{"type": "object", "properties": map[string]any{}},
		func(_ context.Context, _ map[string]any) (any, error) {
			return nil, errors.New("database offline")
		},
	)

	_, err := failing.Call(context.Background(), map[string]any{})
	var toolErr *ToolError
	assert.True(t, errors.As(err, &toolErr))
	assert.Equal(t, "EXECUTION_ERROR", toolErr.Code)
	assert.Equal(t, "database offline", toolErr.Message)
}

func TestFunctionTool_ToolErrorPassesThrough(t *testing.T) {
	custom := NewToolError("lookup", "record not found", "NOT_FOUND")

	failing := NewFunctionTool("lookup", "lookup",
		map[string]any{"type": "object", "properties": map[string]any{}},
		func(_ context.Context, _ map[string]any) (any, error) {
			return nil, custom
		},
	)

	_, err := failing.Call(context.Background(), map[string]any{})
	var toolErr *ToolError
	assert.True(t, errors.As(err, &toolErr))
	assert.Equal(t, "NOT_FOUND", toolErr.Code)
}

func TestNewFunctionToolFromStruct(t *testing.T) {
	type greetArgs struct {
		Name string `json:"name" description:"who to greet"`
	}

	greet := NewFunctionToolFromStruct("greet", "Greet a person", greetArgs{},
		func(_ context.Context, args map[string]any) (any, error) {
			return "hello " + args["name"].(string), nil
		},
	)

	params := greet.Parameters()
	assert.Equal(t, "object", params["type"])

	result, err := greet.Call(context.Background(), map[string]any{"name": "Ada"})
	assert.NoError(t, err)
	assert.Equal(t, "hello Ada", result)
}

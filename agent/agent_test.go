package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/EfeSenerr/demo-ghcp-cli/core"
	"github.com/EfeSenerr/demo-ghcp-cli/model"
	"github.com/EfeSenerr/demo-ghcp-cli/tool"
)

// MockBackend for asserting on exact backend interactions.
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Generate(ctx context.Context, req model.Request) (*model.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Response), args.Error(1)
}

func (m *MockBackend) Info() model.Info {
	return model.Info{Name: "mock", Provider: "mock", SupportsTools: true}
}

func TestAgent_Respond_TagsAuthorAndIndex(t *testing.T) {
	stub := model.NewStubBackend().AddResponse("An affordable ride.")
	ag := New("Writer", stub, func(o *Options) {
		o.Instruction = NewInstructionFromText("write one tagline")
	})

	transcript := core.NewTranscript("Write a tagline for a budget-friendly eBike.")
	msg, err := ag.Respond(context.Background(), transcript)

	assert.NoError(t, err)
	assert.Equal(t, "Writer", msg.Author)
	assert.Equal(t, "An affordable ride.", msg.Content)
	assert.Equal(t, 0, msg.SequenceIndex)
}

func TestAgent_Respond_ForwardsInstructionsAndTranscript(t *testing.T) {
	stub := model.NewStubBackend().AddResponse("Good tagline.")
	ag := New("Reviewer", stub, func(o *Options) {
		o.Instruction = NewInstructionFromText("critique the tagline")
	})

	transcript := core.NewTranscript("Write a tagline.").
		Append(core.NewMessage("Writer", "An affordable ride.", 0))

	msg, err := ag.Respond(context.Background(), transcript)
	assert.NoError(t, err)
	assert.Equal(t, 1, msg.SequenceIndex)

	reqs := stub.Requests()
	assert.Len(t, reqs, 1)
	assert.Equal(t, "critique the tagline", reqs[0].Instructions)
	assert.Len(t, reqs[0].Messages, 2)
	assert.Equal(t, model.RoleUser, reqs[0].Messages[0].Role)
	assert.Equal(t, "Write a tagline.", reqs[0].Messages[0].Content)
	assert.Equal(t, model.RoleAssistant, reqs[0].Messages[1].Role)
	assert.Equal(t, "Writer", reqs[0].Messages[1].Name)
	assert.Equal(t, "An affordable ride.", reqs[0].Messages[1].Content)
}

func TestAgent_Respond_BackendErrorNotRetried(t *testing.T) {
	backend := new(MockBackend)
	boom := core.NewBackendError(core.ErrBackendUnavailable, errors.New("connection refused"))
	backend.On("Generate", mock.Anything, mock.Anything).Return(nil, boom).Once()

	ag := New("Writer", backend)

	_, err := ag.Respond(context.Background(), core.NewTranscript("prompt"))
	assert.ErrorIs(t, err, core.ErrBackendUnavailable)
	backend.AssertExpectations(t)
	backend.AssertNumberOfCalls(t, "Generate", 1)
}

func TestAgent_Respond_EmptyContentIsMalformed(t *testing.T) {
	backend := new(MockBackend)
	backend.On("Generate", mock.Anything, mock.Anything).
		Return(&model.Response{Content: "", FinishReason: "stop"}, nil).Once()

	ag := New("Writer", backend)

	_, err := ag.Respond(context.Background(), core.NewTranscript("prompt"))
	assert.ErrorIs(t, err, core.ErrMalformedResponse)
}

func TestAgent_Respond_ToolLoop(t *testing.T) {
	stub := model.NewStubBackend().
		AddToolCall("call-1", "get_motto", `{}`).
		AddResponse("Ride free, spend less.")

	motto := tool.NewFunctionTool(
		"get_motto",
		"Return the house motto",
		map[string]any{"type": "object", "properties": map[string]any{}},
		func(ctx context.Context, _ map[string]any) (any, error) {
			return "ride free", nil
		},
	)

	ag := New("Writer", stub, func(o *Options) {
		o.Tools = []tool.Tool{motto}
	})

	msg, err := ag.Respond(context.Background(), core.NewTranscript("prompt"))
	assert.NoError(t, err)
	assert.Equal(t, "Ride free, spend less.", msg.Content)

	// Second round carries the tool call and its result back to the backend.
	reqs := stub.Requests()
	assert.Len(t, reqs, 2)
	assert.Len(t, reqs[0].Tools, 1)
	assert.Equal(t, "get_motto", reqs[0].Tools[0].Name)

	second := reqs[1].Messages
	assert.Equal(t, model.RoleAssistant, second[len(second)-2].Role)
	assert.Len(t, second[len(second)-2].ToolCalls, 1)
	assert.Equal(t, model.RoleTool, second[len(second)-1].Role)
	assert.Equal(t, "call-1", second[len(second)-1].ToolCallID)
	assert.Equal(t, "ride free", second[len(second)-1].Content)
}

func TestAgent_Respond_UnknownToolFails(t *testing.T) {
	stub := model.NewStubBackend().AddToolCall("call-1", "missing_tool", `{}`)

	ag := New("Writer", stub)

	_, err := ag.Respond(context.Background(), core.NewTranscript("prompt"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing_tool")
}

func TestAgent_Respond_ToolRoundLimit(t *testing.T) {
	stub := model.NewStubBackend()
	for range 3 {
		stub.AddToolCall("call", "get_motto", `{}`)
	}

	motto := tool.NewFunctionTool(
		"get_motto",
		"Return the house motto",
		map[string]any{"type": "object", "properties": map[string]any{}},
		func(ctx context.Context, _ map[string]any) (any, error) { return "m", nil },
	)

	ag := New("Writer", stub, func(o *Options) {
		o.Tools = []tool.Tool{motto}
		o.MaxToolRounds = 2
	})

	_, err := ag.Respond(context.Background(), core.NewTranscript("prompt"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "tool call limit")
}

func TestAgent_Respond_InstructionProviderError(t *testing.T) {
	boom := errors.New("state unavailable")
	ag := New("Writer", model.NewStubBackend(), func(o *Options) {
		o.Instruction = NewInstructionFromFunc(func(ctx context.Context) (string, error) {
			return "", boom
		})
	})

	_, err := ag.Respond(context.Background(), core.NewTranscript("prompt"))
	assert.ErrorIs(t, err, boom)
}

func TestAgent_HasTool(t *testing.T) {
	ag := New("Writer", model.NewStubBackend())
	assert.False(t, ag.HasTool("get_motto"))

	ag.RegisterTool(tool.NewFunctionTool("get_motto", "motto", map[string]any{"type": "object"}, nil))
	assert.True(t, ag.HasTool("get_motto"))
}

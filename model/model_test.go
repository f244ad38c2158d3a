package model

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStubBackend_ScriptedOrder(t *testing.T) {
	stub := NewStubBackend().
		AddResponse("first").
		AddResponse("second")

	ctx := context.Background()

	resp, err := stub.Generate(ctx, Request{Messages: []ChatMessage{{Role: RoleUser, Content: "hi"}}})
	assert.NoError(t, err)
	assert.Equal(t, "first", resp.Content)

	resp, err = stub.Generate(ctx, Request{Messages: []ChatMessage{{Role: RoleUser, Content: "hi"}}})
	assert.NoError(t, err)
	assert.Equal(t, "second", resp.Content)

	// Exhausted script falls back to an echo.
	resp, err = stub.Generate(ctx, Request{Messages: []ChatMessage{{Role: RoleUser, Content: "hi"}}})
	assert.NoError(t, err)
	assert.Equal(t, "Stub response to: hi", resp.Content)
}

func TestStubBackend_ErrorInjection(t *testing.T) {
	boom := errors.New("boom")
	stub := NewStubBackend().AddError(boom)

	_, err := stub.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, boom)
}

func TestStubBackend_RecordsRequests(t *testing.T) {
	stub := NewStubBackend().AddResponse("ok")

	_, err := stub.Generate(context.Background(), Request{
		Instructions: "be brief",
		Messages:     []ChatMessage{{Role: RoleUser, Content: "hi"}},
	})
	assert.NoError(t, err)

	reqs := stub.Requests()
	assert.Len(t, reqs, 1)
	assert.Equal(t, "be brief", reqs[0].Instructions)
}

func TestStubBackend_Reset(t *testing.T) {
	stub := NewStubBackend().AddResponse("only")

	resp, err := stub.Generate(context.Background(), Request{})
	assert.NoError(t, err)
	assert.Equal(t, "only", resp.Content)

	stub.Reset()

	resp, err = stub.Generate(context.Background(), Request{})
	assert.NoError(t, err)
	assert.Equal(t, "only", resp.Content)
	assert.Len(t, stub.Requests(), 1)
}

func TestStubBackend_ContextCancelled(t *testing.T) {
	stub := NewStubBackend().AddResponse("never served")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := stub.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStubBackend_Info(t *testing.T) {
	info := NewStubBackend().Info()
	assert.Equal(t, "stub", info.Provider)
	assert.True(t, info.SupportsTools)
}

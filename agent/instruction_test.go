package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstruction_Static(t *testing.T) {
	instr := NewInstructionFromText("You are a concise copywriter.")

	assert.True(t, instr.IsStatic())

	text, err := instr.Resolve(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "You are a concise copywriter.", text)
}

func TestInstruction_FromFunc(t *testing.T) {
	instr := NewInstructionFromFunc(func(ctx context.Context) (string, error) {
		return "dynamic persona", nil
	})

	assert.False(t, instr.IsStatic())

	text, err := instr.Resolve(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "dynamic persona", text)
}

type staticProvider struct{ text string }

func (p staticProvider) Instruction(context.Context) (string, error) { return p.text, nil }

func TestInstruction_FromProvider(t *testing.T) {
	instr := NewInstructionFromProvider(staticProvider{text: "from provider"})

	text, err := instr.Resolve(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "from provider", text)
}

func TestInstruction_ProviderError(t *testing.T) {
	boom := errors.New("no instructions available")
	instr := NewInstructionFromFunc(func(ctx context.Context) (string, error) {
		return "", boom
	})

	_, err := instr.Resolve(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestInstruction_ZeroValue(t *testing.T) {
	var instr Instruction

	assert.True(t, instr.IsStatic())

	text, err := instr.Resolve(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, text)
}

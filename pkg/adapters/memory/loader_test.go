package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	contract "github.com/aretw0/turing/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryLoader_Contract(t *testing.T) {
	data := map[string]string{
		"even": `{"tapes": 1, "accept": [0], "transitions": [
			{"from": 0, "next": 1, "read": "a", "write": "a", "direction": "R"},
			{"from": 1, "next": 0, "read": "a", "write": "a", "direction": "R"}]}`,
		"copy": `{"ntapes": 2, "accept": [1], "transition": []}`,
	}

	loader := memory.NewLoader(data)

	contract.DefinitionLoaderContractTest(t, loader, map[string]int{"even": 1, "copy": 2})
}

func TestInMemoryLoader_FromDefinitions(t *testing.T) {
	def := &domain.Definition{
		Name:   "flip",
		Tapes:  1,
		Accept: []domain.StateID{1},
		Transitions: []domain.TransitionDef{
			{From: 0, Next: 1, Read: []string{"a"}, Write: []string{"b"}, Direction: []string{"S"}},
		},
	}
	loader, err := memory.NewFromDefinitions(def)
	require.NoError(t, err)

	got, err := loader.Load(context.Background(), "flip")
	require.NoError(t, err)
	assert.Equal(t, def, got)

	got.Transitions[0].Write[0] = "z"
	again, err := loader.Load(context.Background(), "flip")
	require.NoError(t, err)
	assert.Equal(t, "b", again.Transitions[0].Write[0], "loads must be isolated")

	_, err = memory.NewFromDefinitions(&domain.Definition{Tapes: 1})
	assert.Error(t, err)
}

func TestInMemoryLoader_InvalidDocument(t *testing.T) {
	loader := memory.NewLoader(map[string]string{"bad": `{"tapes": "x"}`})
	_, err := loader.Load(context.Background(), "bad")
	assert.ErrorIs(t, err, domain.ErrInvalidDefinition)
}

package machine

import (
	"errors"
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func palindromeDefinition() *domain.Definition {
	return &domain.Definition{
		Name:    "palindrome",
		Tapes:   2,
		Initial: 0,
		Accept:  []domain.StateID{3},
		Transitions: []domain.TransitionDef{
			// copy input to tape 1
			{From: 0, Next: 0, Read: []string{"a", "β"}, Write: []string{"a", "a"}, Direction: []string{"R", "R"}},
			{From: 0, Next: 0, Read: []string{"b", "β"}, Write: []string{"b", "b"}, Direction: []string{"R", "R"}},
			{From: 0, Next: 1, Read: []string{"β", "β"}, Write: []string{"β", "β"}, Direction: []string{"L", "S"}},
			// rewind tape 0
			{From: 1, Next: 1, Read: []string{"a", "β"}, Write: []string{"a", "β"}, Direction: []string{"L", "S"}},
			{From: 1, Next: 1, Read: []string{"b", "β"}, Write: []string{"b", "β"}, Direction: []string{"L", "S"}},
			{From: 1, Next: 2, Read: []string{"β", "β"}, Write: []string{"β", "β"}, Direction: []string{"R", "L"}},
			// compare forwards against backwards
			{From: 2, Next: 2, Read: []string{"a", "a"}, Write: []string{"a", "a"}, Direction: []string{"R", "L"}},
			{From: 2, Next: 2, Read: []string{"b", "b"}, Write: []string{"b", "b"}, Direction: []string{"R", "L"}},
			{From: 2, Next: 3, Read: []string{"β", "β"}, Write: []string{"β", "β"}, Direction: []string{"S", "S"}},
		},
	}
}

func TestCompile_Palindrome(t *testing.T) {
	m, err := Compile(palindromeDefinition())
	require.NoError(t, err)
	assert.Equal(t, "palindrome", m.Name())
	assert.Len(t, m.Transitions(), 9)

	tests := map[string]bool{
		"":      true,
		"a":     true,
		"abba":  true,
		"aba":   true,
		"ab":    false,
		"abbab": false,
	}
	for input, want := range tests {
		got, err := m.Run(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
}

func TestCompile_Errors(t *testing.T) {
	t.Run("duplicate key", func(t *testing.T) {
		def := palindromeDefinition()
		def.Transitions = append(def.Transitions, def.Transitions[0])
		_, err := Compile(def)
		assert.ErrorIs(t, err, domain.ErrIndeterminancy)
	})

	t.Run("arity", func(t *testing.T) {
		def := palindromeDefinition()
		def.Transitions[4].Write = []string{"a", "b", "c"}
		_, err := Compile(def)
		var sizeErr *domain.SizeError
		require.True(t, errors.As(err, &sizeErr))
		assert.Equal(t, 2, sizeErr.Expected)
		assert.Equal(t, 3, sizeErr.Actual)
	})

	t.Run("direction", func(t *testing.T) {
		def := palindromeDefinition()
		def.Transitions[1].Direction = []string{"up", "R"}
		_, err := Compile(def)
		assert.ErrorIs(t, err, domain.ErrUnknownDirection)
	})

	t.Run("tapes", func(t *testing.T) {
		def := palindromeDefinition()
		def.Tapes = 0
		_, err := Compile(def)
		assert.ErrorIs(t, err, domain.ErrTapeCount)
	})
}

func TestCompile_CustomPlaceholder(t *testing.T) {
	def := &domain.Definition{
		Tapes:  1,
		Accept: []domain.StateID{1},
		Blank:  "_",
		Transitions: []domain.TransitionDef{
			{From: 0, Next: 1, Read: []string{"_"}, Write: []string{"x"}, Direction: []string{"stop"}},
		},
	}
	m, err := Compile(def, WithMaxSteps(3))
	require.NoError(t, err)
	assert.Equal(t, '_', m.Placeholder())
	assert.Equal(t, 3, m.MaxSteps())

	ok, err := m.Run("")
	require.NoError(t, err)
	assert.True(t, ok)
}

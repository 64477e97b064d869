package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/turing/pkg/adapters/file"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	contract "github.com/aretw0/turing/pkg/ports/tests"
	"github.com/aretw0/turing/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const evenYAML = `
name: even
description: strings of a with even length
tapes: 1
accept: [0]
transitions:
  - {from: 0, next: 1, read: [a], write: [a], direction: [right]}
  - {from: 1, next: 0, read: a, write: a, direction: R}
`

const copyTOML = `
ntapes = 2
accept = [1]

[[transition]]
from = 0
next = 0
read = ['a', 'β']
write = ['a', 'a']
direction = ['R', 'R']

[[transition]]
from = 0
next = 1
read = ['β', 'β']
write = ['β', 'β']
direction = ['S', 'S']
`

const flipJSON = `{"tapes": 1, "accept": [1], "blank": "_", "transitions": [
  {"from": 0, "next": 1, "read": ["_"], "write": ["x"], "direction": ["stop"]}
]}`

func setupDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"even.yaml": evenYAML,
		"copy.toml": copyTOML,
		"flip.json": flipJSON,
		"notes.txt": "ignored",
		"README.md": "# not a definition",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0o755))
	return dir
}

func TestLoader_Contract(t *testing.T) {
	loader := file.NewLoader(setupDir(t))
	contract.DefinitionLoaderContractTest(t, loader, map[string]int{
		"even": 1,
		"copy": 2,
		"flip": 1,
	})
}

func TestLoader_FormatsCompileAndRun(t *testing.T) {
	loader := file.NewLoader(setupDir(t))
	ctx := context.Background()

	tests := []struct {
		name   string
		input  string
		accept bool
	}{
		{"even", "aaaa", true},
		{"even", "aaa", false},
		{"copy", "aaa", true},
		{"flip", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.input, func(t *testing.T) {
			def, err := loader.Load(ctx, tt.name)
			require.NoError(t, err)
			m, err := machine.Compile(def)
			require.NoError(t, err)

			ok, err := m.Run(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.accept, ok)
		})
	}
}

func TestLoader_RejectsPaths(t *testing.T) {
	loader := file.NewLoader(setupDir(t))
	_, err := loader.Load(context.Background(), "../even")
	assert.ErrorIs(t, err, domain.ErrMachineNotFound)
}

func TestLoader_MissingDirectory(t *testing.T) {
	loader := file.NewLoader(filepath.Join(t.TempDir(), "missing"))
	names, err := loader.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLoadFile_InvalidShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tapes: two\naccept: 1\n"), 0o644))

	_, err := file.LoadFile(path)
	assert.ErrorIs(t, err, domain.ErrInvalidDefinition)
	assert.Len(t, schema.ValidationErrors(err), 3, "tapes, accept and transitions")
}

func TestLoadFile_Syntax(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("ntapes = = 1"), 0o644))

	_, err := file.LoadFile(path)
	assert.ErrorIs(t, err, domain.ErrInvalidDefinition)
}

func TestDecode_UnsupportedFormat(t *testing.T) {
	_, err := file.Decode(".ini", []byte("a=b"))
	assert.Error(t, err)
	assert.True(t, file.IsDefinitionFile("m.YML"))
	assert.False(t, file.IsDefinitionFile("m.md"))
}

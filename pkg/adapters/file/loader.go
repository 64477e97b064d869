package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/schema"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Extensions lists the supported definition formats, in lookup order.
var Extensions = []string{".yaml", ".yml", ".toml", ".json"}

// Loader implements ports.DefinitionLoader over a directory of definition files.
// A machine's name is its file name without extension.
type Loader struct {
	Dir string
}

// NewLoader creates a Loader reading from dir.
func NewLoader(dir string) *Loader {
	return &Loader{Dir: dir}
}

// Load reads the first "<name><ext>" file found for the supported extensions.
func (l *Loader) Load(ctx context.Context, name string) (*domain.Definition, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("%w: %q", domain.ErrMachineNotFound, name)
	}
	for _, ext := range Extensions {
		path := filepath.Join(l.Dir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, name)
}

// List returns the names of every definition file in the directory, sorted.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list machines: %w", err)
	}

	seen := make(map[string]bool)
	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !supported(entry.Name()) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// LoadFile decodes a single definition file, picking the decoder by extension.
// The file name without extension becomes the default machine name.
func LoadFile(path string) (*domain.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, path)
		}
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}

	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	raw, err := Decode(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", domain.ErrInvalidDefinition, path, err)
	}
	return schema.DecodeMachine(raw, name)
}

// Decode parses data in the format named by ext into a generic document.
func Decode(ext string, data []byte) (map[string]any, error) {
	var raw map[string]any
	var err error
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	case ".json":
		err = json.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("unsupported definition format %q", ext)
	}
	if err != nil {
		return nil, err
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

// IsDefinitionFile reports whether path has a supported extension.
func IsDefinitionFile(path string) bool {
	return supported(path)
}

func supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

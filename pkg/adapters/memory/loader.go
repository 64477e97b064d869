package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/schema"
)

// Loader implements ports.DefinitionLoader using an in-memory map of JSON documents.
// Every Load decodes a fresh Definition, so callers may mutate what they get.
type Loader struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewLoader creates a new Loader with the provided raw JSON documents, keyed by name.
func NewLoader(data map[string]string) *Loader {
	docs := make(map[string][]byte, len(data))
	for k, v := range data {
		docs[k] = []byte(v)
	}
	return &Loader{docs: docs}
}

// NewFromDefinitions creates a Loader from domain objects.
// This handles serialization automatically, improving DX for tests.
func NewFromDefinitions(defs ...*domain.Definition) (*Loader, error) {
	l := &Loader{docs: make(map[string][]byte, len(defs))}
	for _, d := range defs {
		if err := l.Add(d); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Add registers or replaces a definition under its name.
func (l *Loader) Add(def *domain.Definition) error {
	if def.Name == "" {
		return fmt.Errorf("definition missing name")
	}
	bytes, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("failed to marshal definition %s: %w", def.Name, err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.docs[def.Name] = bytes
	return nil
}

// Load decodes the definition stored under name.
func (l *Loader) Load(ctx context.Context, name string) (*domain.Definition, error) {
	l.mu.RLock()
	content, ok := l.docs[name]
	l.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, name)
	}

	var raw map[string]any
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("%w %s: %v", domain.ErrInvalidDefinition, name, err)
	}
	return schema.DecodeMachine(raw, name)
}

// List returns all available definition names.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	keys := make([]string, 0, len(l.docs))
	for k := range l.docs {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}

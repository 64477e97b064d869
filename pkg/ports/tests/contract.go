package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
)

// DefinitionLoaderContractTest is a reusable test suite that verifies if an adapter
// complies with ports.DefinitionLoader. expected maps each seeded name to its tape count.
func DefinitionLoaderContractTest(t *testing.T, loader ports.DefinitionLoader, expected map[string]int) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load_Success", func(t *testing.T) {
		for name, tapes := range expected {
			def, err := loader.Load(ctx, name)
			if err != nil {
				t.Fatalf("unexpected error loading %s: %v", name, err)
			}
			if def.Tapes != tapes {
				t.Errorf("tape count mismatch for %s. got %d, want %d", name, def.Tapes, tapes)
			}
			if def.Name != name {
				t.Errorf("name mismatch. got %q, want %q", def.Name, name)
			}
		}
	})

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := loader.Load(ctx, "non-existent-machine")
		if !errors.Is(err, domain.ErrMachineNotFound) {
			t.Errorf("expected ErrMachineNotFound, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		names, err := loader.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing machines: %v", err)
		}

		if len(names) != len(expected) {
			t.Errorf("expected %d machines, got %d (%v)", len(expected), len(names), names)
		}

		for i := 1; i < len(names); i++ {
			if names[i-1] > names[i] {
				t.Errorf("list is not sorted: %v", names)
				break
			}
		}

		lookup := make(map[string]bool)
		for _, name := range names {
			lookup[name] = true
		}
		for name := range expected {
			if !lookup[name] {
				t.Errorf("machine %s missing from list", name)
			}
		}
	})
}

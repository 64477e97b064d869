package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordsRuns(t *testing.T) {
	m := New()

	tm, err := machine.New(0, 1, []domain.StateID{1},
		machine.WithName("flip"),
		machine.WithMaxSteps(3),
		machine.WithLifecycleHooks(m.Hooks()),
	)
	require.NoError(t, err)
	tr := domain.MustTransition(1, []domain.Symbol{'b'}, []domain.Direction{domain.Right})
	require.NoError(t, tm.InsertTransition(0, domain.ReadVector{'a'}, tr))
	loop := domain.MustTransition(2, []domain.Symbol{domain.DefaultBlank}, []domain.Direction{domain.Stop})
	require.NoError(t, tm.InsertTransition(2, domain.ReadVector{domain.DefaultBlank}, loop))
	toLoop := domain.MustTransition(2, []domain.Symbol{'c'}, []domain.Direction{domain.Right})
	require.NoError(t, tm.InsertTransition(0, domain.ReadVector{'c'}, toLoop))

	_, err = tm.Run("a")
	require.NoError(t, err)
	_, err = tm.Run("b")
	require.NoError(t, err)
	_, err = tm.Run("c")
	require.ErrorIs(t, err, domain.ErrMaxStepsReached)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	out := string(body)

	assert.Contains(t, out, `turing_runs_total{machine="flip",verdict="accept"} 1`)
	assert.Contains(t, out, `turing_runs_total{machine="flip",verdict="reject"} 1`)
	assert.Contains(t, out, `turing_runs_total{machine="flip",verdict="step_bound"} 1`)
	assert.Contains(t, out, `turing_steps_total{machine="flip"} 4`)
	assert.Contains(t, out, "go_goroutines")
}

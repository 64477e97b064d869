package machine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/tape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blank = domain.DefaultBlank

func move(ds ...domain.Direction) []domain.Direction { return ds }
func write(ss ...domain.Symbol) []domain.Symbol      { return ss }

// evenAs accepts strings of 'a' with even length.
func evenAs(t *testing.T, opts ...Option) *Machine {
	t.Helper()
	m, err := New(0, 1, []domain.StateID{0}, opts...)
	require.NoError(t, err)
	require.NoError(t, m.InsertTransition(0, domain.ReadVector{'a'}, domain.MustTransition(1, write('M'), move(domain.Right))))
	require.NoError(t, m.InsertTransition(1, domain.ReadVector{'a'}, domain.MustTransition(0, write('M'), move(domain.Right))))
	return m
}

// copier copies a string of 'a'/'b' from tape 0 onto tape 1, then accepts.
func copier(t *testing.T, opts ...Option) *Machine {
	t.Helper()
	m, err := New(0, 2, []domain.StateID{1}, opts...)
	require.NoError(t, err)
	for _, s := range []domain.Symbol{'a', 'b'} {
		tr := domain.MustTransition(0, write(s, s), move(domain.Right, domain.Right))
		require.NoError(t, m.InsertTransition(0, domain.ReadVector{s, blank}, tr))
	}
	done := domain.MustTransition(1, write(blank, blank), move(domain.Stop, domain.Stop))
	require.NoError(t, m.InsertTransition(0, domain.ReadVector{blank, blank}, done))
	return m
}

// looper never halts on a blank tape.
func looper(t *testing.T, opts ...Option) *Machine {
	t.Helper()
	m, err := New(0, 1, []domain.StateID{0}, opts...)
	require.NoError(t, err)
	require.NoError(t, m.InsertTransition(0, domain.ReadVector{blank}, domain.MustTransition(0, write(blank), move(domain.Stop))))
	return m
}

func TestNew_ZeroTapes(t *testing.T) {
	m, err := New(0, 0, nil)
	assert.ErrorIs(t, err, domain.ErrTapeCount)
	assert.Nil(t, m)
}

func TestNew_InvalidStepBound(t *testing.T) {
	_, err := New(0, 1, nil, WithMaxSteps(0))
	assert.ErrorIs(t, err, domain.ErrInvalidStepBound)
}

func TestNew_Defaults(t *testing.T) {
	m, err := New(4, 3, []domain.StateID{9, 2})
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxSteps, m.MaxSteps())
	assert.Equal(t, domain.StateID(4), m.Initial())
	assert.Equal(t, 3, m.Tapes())
	assert.Equal(t, []domain.StateID{2, 9}, m.Acceptance())
	assert.Equal(t, domain.DefaultPlaceholder, m.Placeholder())
	assert.Empty(t, m.Transitions())
}

func TestRun_EmptyInputHaltsImmediately(t *testing.T) {
	m := evenAs(t)

	accepted, err := m.Run("")
	require.NoError(t, err)
	assert.True(t, accepted, "initial state is accepting and nothing matches a blank")
}

func TestRun_Verdicts(t *testing.T) {
	m := evenAs(t)

	tests := []struct {
		input    string
		accepted bool
		steps    int
		final    domain.StateID
	}{
		{"aa", true, 2, 0},
		{"aaa", false, 3, 1},
		{"aaaa", true, 4, 0},
		{"ab", false, 1, 1},
		{"b", true, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res, err := m.Execute(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.accepted, res.Accepted)
			assert.Equal(t, tt.steps, res.Steps)
			assert.Equal(t, tt.final, res.FinalState)
			assert.False(t, res.Exceeded)

			accepted, err := m.Run(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.accepted, accepted)
		})
	}
}

func TestExecute_Snapshots(t *testing.T) {
	m := copier(t)

	res, err := m.Execute(context.Background(), "ab")
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, 3, res.Steps)
	require.Len(t, res.Tapes, 2)
	assert.Equal(t, "abβ", res.Tapes[0].Content)
	assert.Equal(t, "abβ", res.Tapes[1].Content)
	assert.Equal(t, 2, res.Tapes[1].Head)
}

func TestExecute_Deterministic(t *testing.T) {
	m := copier(t)

	first, err := m.Execute(context.Background(), "abba")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := m.Execute(context.Background(), "abba")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestExecute_StepBound(t *testing.T) {
	m := looper(t, WithMaxSteps(10))

	res, err := m.Execute(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrMaxStepsReached)
	require.NotNil(t, res)
	assert.True(t, res.Exceeded)
	assert.False(t, res.Accepted)
	assert.Equal(t, 10, res.Steps)

	accepted, err := m.Run("")
	assert.ErrorIs(t, err, domain.ErrMaxStepsReached)
	assert.False(t, accepted)
}

func TestExecute_HaltExactlyAtBound(t *testing.T) {
	m := evenAs(t)

	res, err := m.Execute(context.Background(), "aa", WithStepBound(2))
	require.NoError(t, err, "a machine halting on the last allowed step is not cut off")
	assert.True(t, res.Accepted)
	assert.Equal(t, 2, res.Steps)

	_, err = m.Execute(context.Background(), "aa", WithStepBound(1))
	assert.ErrorIs(t, err, domain.ErrMaxStepsReached)
}

func TestExecute_InvalidRunBound(t *testing.T) {
	m := evenAs(t)
	_, err := m.Execute(context.Background(), "aa", WithStepBound(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidStepBound)
}

func TestExecute_ContextCanceled(t *testing.T) {
	m := looper(t, WithMaxSteps(1_000_000))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Execute(ctx, "")
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestExecute_SparseTapeFactory(t *testing.T) {
	sparse := func(b domain.Symbol) ports.Tape { return tape.NewSparse(b) }
	dense := copier(t)
	m := copier(t, WithTapeFactory(sparse))

	for _, input := range []string{"", "a", "abab"} {
		want, err := dense.Execute(context.Background(), input)
		require.NoError(t, err)
		got, err := m.Execute(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, want.Accepted, got.Accepted, input)
		assert.Equal(t, want.Steps, got.Steps, input)
	}
}

func TestExecute_CustomBlank(t *testing.T) {
	m, err := New(0, 1, []domain.StateID{1}, WithBlank('_'))
	require.NoError(t, err)
	require.NoError(t, m.InsertTransition(0, domain.ReadVector{'_'}, domain.MustTransition(1, write('x'), move(domain.Stop))))

	res, err := m.Execute(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, "x", res.Tapes[0].Content)
}

func TestInsertTransition_IndeterminancyShowsMachineBlank(t *testing.T) {
	m, err := New(0, 1, nil, WithBlank('_'), WithPlaceholder('#'))
	require.NoError(t, err)
	tr := domain.MustTransition(1, write('x'), move(domain.Stop))
	require.NoError(t, m.InsertTransition(0, domain.ReadVector{'_'}, tr))

	err = m.InsertTransition(0, domain.ReadVector{'_'}, tr)
	require.ErrorIs(t, err, domain.ErrIndeterminancy)
	assert.Contains(t, err.Error(), "read [#]")
}

func TestExecute_StepEventCarriesBlank(t *testing.T) {
	var reads, actions []string
	hooks := domain.LifecycleHooks{
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			reads = append(reads, e.Read.Format(e.Blank, e.Placeholder))
			actions = append(actions, e.Transition.Format(e.Blank, e.Placeholder))
		},
	}
	m, err := New(0, 1, []domain.StateID{1}, WithBlank('_'), WithPlaceholder('#'), WithLifecycleHooks(hooks))
	require.NoError(t, err)
	require.NoError(t, m.InsertTransition(0, domain.ReadVector{'_'}, domain.MustTransition(1, write('_'), move(domain.Stop))))

	accepted, err := m.Run("")
	require.NoError(t, err)
	assert.True(t, accepted)
	assert.Equal(t, []string{"[#]"}, reads)
	assert.Equal(t, []string{"[1, #, S]"}, actions)
}

func TestRun_PlaceholderInputIsLiteral(t *testing.T) {
	m, err := New(0, 1, []domain.StateID{1})
	require.NoError(t, err)
	require.NoError(t, m.InsertTransition(0, domain.ReadVector{blank}, domain.MustTransition(1, write(blank), move(domain.Stop))))

	accepted, err := m.Run("")
	require.NoError(t, err)
	assert.True(t, accepted)

	accepted, err = m.Run(string(domain.DefaultPlaceholder))
	require.NoError(t, err)
	assert.False(t, accepted, "the placeholder is an ordinary input character")
}

func TestExecute_Hooks(t *testing.T) {
	var mu sync.Mutex
	var starts, steps, halts int
	var halt *domain.HaltEvent

	hooks := domain.LifecycleHooks{
		OnRunStart: func(_ context.Context, e *domain.RunEvent) {
			mu.Lock()
			defer mu.Unlock()
			starts++
			assert.Equal(t, "aa", e.Input)
			assert.Equal(t, "even", e.Machine)
		},
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			mu.Lock()
			defer mu.Unlock()
			steps++
			assert.Equal(t, steps, e.Step)
		},
		OnHalt: func(_ context.Context, e *domain.HaltEvent) {
			mu.Lock()
			defer mu.Unlock()
			halts++
			halt = e
		},
	}

	m := evenAs(t, WithName("even"), WithLifecycleHooks(hooks))
	_, err := m.Run("aa")
	require.NoError(t, err)

	assert.Equal(t, 1, starts)
	assert.Equal(t, 2, steps)
	assert.Equal(t, 1, halts)
	require.NotNil(t, halt)
	assert.True(t, halt.Accepted)
	assert.NoError(t, halt.Err)
}

func TestExecute_ConcurrentRuns(t *testing.T) {
	m := copier(t)

	var wg sync.WaitGroup
	inputs := []string{"a", "ab", "abb", "babab", ""}
	for i := 0; i < 20; i++ {
		input := inputs[i%len(inputs)]
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := m.Execute(context.Background(), input)
			assert.NoError(t, err)
			assert.True(t, res.Accepted)
			assert.Equal(t, len(input)+1, res.Steps)
		}()
	}
	wg.Wait()
}

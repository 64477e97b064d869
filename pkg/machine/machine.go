package machine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/tape"
)

// Machine is a deterministic k-tape Turing machine.
// It is immutable once transitions are inserted; Run never mutates it.
type Machine struct {
	name        string
	initial     domain.StateID
	tapes       int
	accept      map[domain.StateID]struct{}
	table       *TransitionTable
	maxSteps    int
	blank       domain.Symbol
	placeholder rune
	newTape     ports.TapeFactory
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
}

// New creates a machine with an empty transition table.
// It fails with domain.ErrTapeCount when tapes is zero and with
// domain.ErrInvalidStepBound when the configured step bound is not positive.
func New(initial domain.StateID, tapes int, accept []domain.StateID, opts ...Option) (*Machine, error) {
	if tapes < 1 {
		return nil, domain.ErrTapeCount
	}

	m := &Machine{
		initial:     initial,
		tapes:       tapes,
		accept:      make(map[domain.StateID]struct{}, len(accept)),
		table:       NewTable(tapes),
		maxSteps:    DefaultMaxSteps,
		blank:       domain.DefaultBlank,
		placeholder: domain.DefaultPlaceholder,
		newTape:     defaultTape,
	}
	for _, s := range accept {
		m.accept[s] = struct{}{}
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.maxSteps < 1 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidStepBound, m.maxSteps)
	}
	m.table.blank, m.table.placeholder = m.blank, m.placeholder
	if m.logger == nil {
		m.logger = logging.NewNop()
	}
	if m.name != "" {
		m.logger = m.logger.With("machine", m.name)
	}
	return m, nil
}

func defaultTape(blank domain.Symbol) ports.Tape {
	return tape.New(blank)
}

// InsertTransition adds a transition for (state, read).
// It propagates *domain.SizeError and domain.ErrIndeterminancy from the table.
func (m *Machine) InsertTransition(state domain.StateID, read domain.ReadVector, tr domain.Transition) error {
	return m.table.Insert(state, read, tr)
}

// Run loads input onto the first tape and reports whether the machine halts in an
// accepting state within the step bound. Every character of input is written
// literally: the placeholder is a convention of textual symbol lists, so an input
// of "β" is a one-cell word, not the empty word.
func (m *Machine) Run(input string) (bool, error) {
	res, err := m.Execute(context.Background(), input)
	if err != nil {
		return false, err
	}
	return res.Accepted, nil
}

// Execute runs the machine on input and returns the full result.
// Input is loaded literally, as in Run.
//
// The loop reads every head, looks the (state, read vector) pair up and, when a
// transition exists, writes and moves on every tape before switching state. A missing
// transition halts the run. Once the step bound has been spent, a further matching
// transition fails the run with domain.ErrMaxStepsReached; the returned result then
// describes the configuration at the bound. The context is checked between steps.
func (m *Machine) Execute(ctx context.Context, input string, opts ...RunOption) (*domain.RunResult, error) {
	cfg := runConfig{maxSteps: m.maxSteps}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxSteps < 1 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidStepBound, cfg.maxSteps)
	}

	tapes := make([]ports.Tape, m.tapes)
	for i := range tapes {
		tapes[i] = m.newTape(m.blank)
		tapes[i].Load("")
	}
	tapes[0].Load(input)

	m.emitStart(ctx, input, cfg.maxSteps)

	state := m.initial
	steps := 0
	read := make(domain.ReadVector, m.tapes)

	for {
		if err := ctx.Err(); err != nil {
			m.emitHalt(ctx, state, steps, false, err)
			return nil, err
		}

		for i, t := range tapes {
			read[i] = t.Read()
		}
		tr, ok := m.table.Lookup(state, read)
		if !ok {
			break
		}

		if steps >= cfg.maxSteps {
			err := fmt.Errorf("%w (%d)", domain.ErrMaxStepsReached, cfg.maxSteps)
			m.logger.Warn("step bound reached", "steps", steps, "state", state)
			m.emitHalt(ctx, state, steps, false, err)
			res := m.result(state, steps, tapes)
			res.Exceeded = true
			return res, err
		}

		for i, t := range tapes {
			t.Write(tr.Write(i))
			t.Move(tr.Move(i))
		}
		from := state
		state = tr.Next()
		steps++

		if m.hooks.OnStep != nil {
			m.hooks.OnStep(ctx, &domain.StepEvent{
				EventBase:   m.event(domain.EventStep),
				Step:        steps,
				From:        from,
				Read:        append(domain.ReadVector(nil), read...),
				Transition:  tr,
				Blank:       m.blank,
				Placeholder: m.placeholder,
			})
		}
	}

	res := m.result(state, steps, tapes)
	res.Accepted = m.Accepting(state)
	m.logger.Debug("run halted", "state", state, "steps", steps, "accepted", res.Accepted)
	m.emitHalt(ctx, state, steps, res.Accepted, nil)
	return res, nil
}

func (m *Machine) result(state domain.StateID, steps int, tapes []ports.Tape) *domain.RunResult {
	res := &domain.RunResult{
		FinalState: state,
		Steps:      steps,
	}
	for _, t := range tapes {
		st, ok := t.(ports.SnapshotTape)
		if !ok {
			continue
		}
		snap := st.Snapshot()
		snap.Content = tape.Content(snap, m.blank, m.placeholder)
		res.Tapes = append(res.Tapes, snap)
	}
	return res
}

func (m *Machine) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: t, Machine: m.name}
}

func (m *Machine) emitStart(ctx context.Context, input string, maxSteps int) {
	m.logger.Debug("run started", "input", input, "max_steps", maxSteps)
	if m.hooks.OnRunStart != nil {
		m.hooks.OnRunStart(ctx, &domain.RunEvent{
			EventBase: m.event(domain.EventRunStart),
			Input:     input,
			MaxSteps:  maxSteps,
		})
	}
}

func (m *Machine) emitHalt(ctx context.Context, state domain.StateID, steps int, accepted bool, err error) {
	if m.hooks.OnHalt != nil {
		m.hooks.OnHalt(ctx, &domain.HaltEvent{
			EventBase: m.event(domain.EventHalt),
			State:     state,
			Steps:     steps,
			Accepted:  accepted,
			Err:       err,
		})
	}
}

// Name returns the machine label, possibly empty.
func (m *Machine) Name() string { return m.name }

// Initial returns the initial state.
func (m *Machine) Initial() domain.StateID { return m.initial }

// Tapes returns the tape count.
func (m *Machine) Tapes() int { return m.tapes }

// MaxSteps returns the default step bound.
func (m *Machine) MaxSteps() int { return m.maxSteps }

// Blank returns the blank sentinel.
func (m *Machine) Blank() domain.Symbol { return m.blank }

// Placeholder returns the display character of the blank.
func (m *Machine) Placeholder() rune { return m.placeholder }

// Accepting reports whether state belongs to the acceptance set.
func (m *Machine) Accepting(state domain.StateID) bool {
	_, ok := m.accept[state]
	return ok
}

// Acceptance returns the acceptance set in ascending order.
func (m *Machine) Acceptance() []domain.StateID {
	out := make([]domain.StateID, 0, len(m.accept))
	for s := range m.accept {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Transitions returns every stored transition, deterministically ordered.
func (m *Machine) Transitions() []Entry { return m.table.Entries() }

// Lookup exposes a read-only lookup on the transition table.
func (m *Machine) Lookup(state domain.StateID, read domain.ReadVector) (domain.Transition, bool) {
	return m.table.Lookup(state, read)
}

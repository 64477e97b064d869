package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart EventType = "run_start"
	EventStep     EventType = "step"
	EventHalt     EventType = "halt"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Machine   string    `json:"machine,omitempty"`
}

// RunEvent is emitted once when a run begins.
type RunEvent struct {
	EventBase
	Input    string `json:"input"`
	MaxSteps int    `json:"max_steps"`
}

// StepEvent is emitted after each applied transition.
type StepEvent struct {
	EventBase
	Step       int        `json:"step"`
	From       StateID    `json:"from"`
	Read       ReadVector `json:"read"`
	Transition Transition `json:"-"`

	// Blank and Placeholder are the machine's blank symbol and its display form.
	Blank       Symbol `json:"-"`
	Placeholder rune   `json:"-"`
}

// HaltEvent is emitted when a run ends, normally or with an error.
type HaltEvent struct {
	EventBase
	State    StateID `json:"state"`
	Steps    int     `json:"steps"`
	Accepted bool    `json:"accepted"`
	Err      error   `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
// Nil callbacks are skipped.
type LifecycleHooks struct {
	OnRunStart func(context.Context, *RunEvent)
	OnStep     func(context.Context, *StepEvent)
	OnHalt     func(context.Context, *HaltEvent)
}

// Merge returns hooks calling h first and then other, for each event.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnRunStart: chain(h.OnRunStart, other.OnRunStart),
		OnStep:     chain(h.OnStep, other.OnStep),
		OnHalt:     chain(h.OnHalt, other.OnHalt),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}

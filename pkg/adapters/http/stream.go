package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/turing/pkg/domain"
)

// StreamManager fans finished run records out to SSE subscribers.
// A subscriber registered for "" receives records of every machine.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan *domain.RunRecord]struct{} // machine -> set of channels
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan *domain.RunRecord]struct{}),
	}
}

// Subscribe registers a channel for machine and returns it with its cancel function.
func (sm *StreamManager) Subscribe(machine string) (<-chan *domain.RunRecord, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan *domain.RunRecord, 16)
	if _, ok := sm.subscribers[machine]; !ok {
		sm.subscribers[machine] = make(map[chan *domain.RunRecord]struct{})
	}
	sm.subscribers[machine][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[machine]; ok {
			if _, ok := subs[ch]; !ok {
				return
			}
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, machine)
			}
		}
	}
}

// Broadcast delivers rec to the machine's subscribers and to global ones.
// Slow subscribers lose records rather than block the run.
func (sm *StreamManager) Broadcast(rec *domain.RunRecord) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for _, key := range []string{rec.Machine, ""} {
		for ch := range sm.subscribers[key] {
			select {
			case ch <- rec:
			default:
				slog.Warn("SSE: client buffer full, dropping run", "machine", rec.Machine, "run_id", rec.ID)
			}
		}
		if rec.Machine == "" {
			break
		}
	}
}

// SubscribeEvents handles GET /events (SSE). ?machine=name filters the stream.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	ch, cancel := s.Streams.Subscribe(r.URL.Query().Get("machine"))
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case rec, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(rec)
			if err != nil {
				s.Logger.Error("SSE: marshal failed", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: run\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}

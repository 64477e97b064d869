package http_test

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/turing/internal/metrics"
	turinghttp "github.com/aretw0/turing/pkg/adapters/http"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const evenDoc = `{"description": "even number of a", "tapes": 1, "accept": [0], "transitions": [
	{"from": 0, "next": 1, "read": "a", "write": "a", "direction": "R"},
	{"from": 1, "next": 0, "read": "a", "write": "a", "direction": "R"}]}`

const loopDoc = `{"tapes": 1, "accept": [0], "transitions": [
	{"from": 0, "next": 0, "read": "β", "write": "β", "direction": "S"}]}`

func newServer(t *testing.T, opts ...turinghttp.Option) (*httptest.Server, *memory.Store) {
	t.Helper()
	loader := memory.NewLoader(map[string]string{
		"even": evenDoc,
		"loop": loopDoc,
		"dup": `{"tapes": 1, "accept": [], "transitions": [
			{"from": 0, "next": 1, "read": "a", "write": "a", "direction": "R"},
			{"from": 0, "next": 2, "read": "a", "write": "b", "direction": "L"}]}`,
	})
	store := memory.NewStore()
	var n atomic.Int32
	r := runner.New(loader,
		runner.WithStore(store),
		runner.WithIDGenerator(func() string { return fmt.Sprintf("run-%d", n.Add(1)) }),
	)
	srv := httptest.NewServer(turinghttp.NewHandler(r, opts...))
	t.Cleanup(srv.Close)
	return srv, store
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServer_Health(t *testing.T) {
	srv, _ := newServer(t, turinghttp.WithVersion("1.2.3"))

	resp := get(t, srv.URL+"/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "1.2.3", body["version"])
}

func TestServer_Preflight(t *testing.T) {
	srv, _ := newServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/machines/even/runs", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_CreateRun(t *testing.T) {
	srv, store := newServer(t)

	tests := []struct {
		input   string
		verdict string
	}{
		{"", domain.VerdictAccept},
		{"aa", domain.VerdictAccept},
		{"aaa", domain.VerdictReject},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			resp := post(t, srv.URL+"/machines/even/runs", fmt.Sprintf(`{"input": %q}`, tt.input))
			require.Equal(t, http.StatusCreated, resp.StatusCode)

			var rec domain.RunRecord
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
			assert.Equal(t, tt.verdict, rec.Verdict())
			assert.Equal(t, "even", rec.Machine)

			_, err := store.Load(context.Background(), rec.ID)
			assert.NoError(t, err)
		})
	}
}

func TestServer_CreateRun_StepBound(t *testing.T) {
	srv, _ := newServer(t)

	resp := post(t, srv.URL+"/machines/loop/runs", `{"max_steps": 10}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var rec domain.RunRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	assert.Equal(t, domain.VerdictError, rec.Verdict())
	require.NotNil(t, rec.Result)
	assert.Equal(t, 10, rec.Result.Steps)
	assert.True(t, rec.Result.Exceeded)
}

func TestServer_CreateRun_Batch(t *testing.T) {
	srv, _ := newServer(t)

	resp := post(t, srv.URL+"/machines/even/runs", `{"inputs": ["a", "aa", "aaa", "aaaa"]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var recs []domain.RunRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&recs))
	require.Len(t, recs, 4)
	for i, rec := range recs {
		assert.Equal(t, strings.Repeat("a", i+1), rec.Input)
		assert.Equal(t, i%2 == 1, rec.Result.Accepted)
	}
}

func TestServer_CreateRun_Errors(t *testing.T) {
	srv, _ := newServer(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"unknown machine", "/machines/nope/runs", `{}`, http.StatusNotFound},
		{"indeterminate machine", "/machines/dup/runs", `{}`, http.StatusUnprocessableEntity},
		{"negative bound", "/machines/even/runs", `{"max_steps": -1}`, http.StatusBadRequest},
		{"malformed body", "/machines/even/runs", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+tt.path, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestServer_Machines(t *testing.T) {
	srv, _ := newServer(t)

	resp := get(t, srv.URL+"/machines")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []turinghttp.MachineSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 3)
	assert.Equal(t, "dup", list[0].Name)
	assert.NotEmpty(t, list[0].Error)
	assert.Equal(t, "even", list[1].Name)
	assert.Equal(t, "even number of a", list[1].Description)
	assert.Equal(t, 2, list[1].Transitions)
	assert.Empty(t, list[1].Error)

	resp = get(t, srv.URL+"/machines/even")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var def domain.Definition
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&def))
	assert.Equal(t, 1, def.Tapes)

	resp = get(t, srv.URL+"/machines/missing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_Graph(t *testing.T) {
	srv, _ := newServer(t)

	resp := get(t, srv.URL+"/machines/even/graph")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sb strings.Builder
	_, err := bufio.NewReader(resp.Body).WriteTo(&sb)
	require.NoError(t, err)
	assert.Contains(t, sb.String(), "graph TD")
	assert.Contains(t, sb.String(), "q0 -- ")
}

func TestServer_Runs(t *testing.T) {
	srv, _ := newServer(t)

	post(t, srv.URL+"/machines/even/runs", `{"input": "aa"}`)

	resp := get(t, srv.URL+"/runs")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ids []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ids))
	assert.Equal(t, []string{"run-1"}, ids)

	resp = get(t, srv.URL+"/runs/run-1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rec domain.RunRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	assert.Equal(t, "aa", rec.Input)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/runs/run-1", nil)
	require.NoError(t, err)
	del, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	del.Body.Close()
	assert.Equal(t, http.StatusNoContent, del.StatusCode)

	resp = get(t, srv.URL+"/runs/run-1")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_Metrics(t *testing.T) {
	m := metrics.New()
	srv, _ := newServer(t, turinghttp.WithMetrics(m.Handler()))

	resp := get(t, srv.URL+"/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	srv2, _ := newServer(t)
	resp = get(t, srv2.URL+"/metrics")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_Events(t *testing.T) {
	srv, _ := newServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events?machine=even", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	post(t, srv.URL+"/machines/even/runs", `{"input": "aa"}`)

	reader := bufio.NewReader(resp.Body)
	var data string
	for data == "" {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "data: ") {
			data = strings.TrimPrefix(strings.TrimSpace(line), "data: ")
		}
	}
	var rec domain.RunRecord
	require.NoError(t, json.Unmarshal([]byte(data), &rec))
	assert.Equal(t, "aa", rec.Input)
}

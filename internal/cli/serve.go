package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/turing"
	httpAdapter "github.com/aretw0/turing/pkg/adapters/http"
	"github.com/aretw0/turing/pkg/adapters/mcp"
)

// Handler returns the HTTP API of the app, with /metrics mounted.
func (a *App) Handler() http.Handler {
	return httpAdapter.NewHandler(a.Engine.Runner(),
		httpAdapter.WithLogger(a.Logger),
		httpAdapter.WithMetrics(a.Metrics.Handler()),
		httpAdapter.WithVersion(strings.TrimSpace(turing.Version)),
	)
}

// Serve runs the HTTP API on addr until ctx is done, then shuts down gracefully.
func (a *App) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: a.Handler(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		a.Logger.Info("Starting Turing Server", "address", srv.Addr, "machines", a.Config.Machines)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		a.Logger.Info("Start shutdown...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.Logger.Error("Graceful shutdown did not complete", "timeout", 5*time.Second, "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		a.Logger.Info("Turing Server stopped gracefully")
		return nil
	}
}

// ServeMCP runs the MCP server on the given transport ("stdio" or "sse").
func (a *App) ServeMCP(ctx context.Context, transport string, port int) error {
	srv := mcp.NewServer(a.Engine.Runner(), strings.TrimSpace(turing.Version))

	switch transport {
	case "stdio":
		a.Logger.Info("Starting Turing MCP Server (Stdio)...")
		return srv.ServeStdio()
	case "sse":
		a.Logger.Info("Starting Turing MCP Server (SSE)", "port", port)
		err := srv.ServeSSE(ctx, port)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		a.Logger.Info("MCP Server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
	}
}

// Package preview serves the generated pages locally and regenerates them
// when client configurations or the template change.
package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/nineteen58/pitchgen/internal/config"
	"github.com/nineteen58/pitchgen/internal/metrics"
)

// Server serves the base directory over HTTP so the documented preview URL
// (http://localhost:<port>/clients/<slug>/) resolves, plus health and
// metrics endpoints.
type Server struct {
	cfg  *config.Config
	port int
	srv  *http.Server
}

// NewServer creates a preview server. The registry may be nil, which
// disables the /metrics endpoint.
func NewServer(cfg *config.Config, port int, reg *prom.Registry) *Server {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(cfg.BaseDir)))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintln(w, "ok")
	})
	if reg != nil {
		mux.Handle("/metrics", metrics.HTTPHandler(reg))
	}

	return &Server{
		cfg:  cfg,
		port: port,
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start begins listening. It returns once the listener is bound; serving
// continues in a goroutine until Stop.
func (s *Server) Start(_ context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.srv.Addr, err)
	}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Preview server failed", "error", err)
		}
	}()
	slog.Info("Preview server listening", "port", s.port,
		"url", fmt.Sprintf("http://localhost:%d/%s/", s.port, s.cfg.OutputDir))
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

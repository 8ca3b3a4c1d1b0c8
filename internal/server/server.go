// Package server exposes the palette engine over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/jmylchreest/tincture/internal/colour"
	"github.com/jmylchreest/tincture/internal/mix"
)

// Query defaults for /mix.
const (
	DefaultA         = "ff0000"
	DefaultB         = "0000ff"
	DefaultAlgorithm = mix.AlgorithmSRGB
	DefaultSteps     = 21
	DefaultSchedule  = mix.ScheduleLinear
)

const shutdownTimeout = 5 * time.Second

// Server serves palettes from a shared engine.
type Server struct {
	engine *mix.Engine
	logger hclog.Logger
	mux    *http.ServeMux
}

// New creates a Server. A nil logger discards output.
func New(engine *mix.Engine, logger hclog.Logger) *Server {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	s := &Server{
		engine: engine,
		logger: logger,
		mux:    http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /mix", s.handleMix)
	s.mux.HandleFunc("GET /algorithms", s.handleAlgorithms)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	return s
}

// Handler returns the request handler with access logging applied.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		s.mux.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

func (s *Server) handleMix(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	a, err := colour.ParseHex(valueOr(q.Get("a"), DefaultA))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid color: "+err.Error())
		return
	}
	b, err := colour.ParseHex(valueOr(q.Get("b"), DefaultB))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid color: "+err.Error())
		return
	}

	n := DefaultSteps
	if raw := q.Get("n"); raw != "" {
		if n, err = strconv.Atoi(strings.TrimSpace(raw)); err != nil {
			s.writeError(w, http.StatusBadRequest, "n must be an integer")
			return
		}
	}

	alg, err := mix.ParseAlgorithm(valueOr(q.Get("algo"), string(DefaultAlgorithm)))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":     fmt.Sprintf("unknown algorithm '%s'", q.Get("algo")),
			"supported": mix.AlgorithmNames(),
		})
		return
	}

	req := mix.Request{
		A:         a,
		B:         b,
		Steps:     mix.ClampSteps(alg, n),
		Algorithm: alg,
		Method:    mix.Method(q.Get("method")),
		Hue:       mix.HuePolicy(q.Get("hue")),
	}
	if alg == mix.AlgorithmHCTTone {
		req.Schedule = mix.Schedule(valueOr(q.Get("schedule"), string(DefaultSchedule)))
		if raw := q.Get("gamma"); raw != "" {
			if req.Gamma, err = strconv.ParseFloat(strings.TrimSpace(raw), 64); err != nil {
				s.writeError(w, http.StatusBadRequest, "gamma must be a number")
				return
			}
		}
	}

	hexes, err := s.engine.Hex(req)
	switch {
	case err == nil:
		s.writeJSON(w, http.StatusOK, hexes)
	case mix.IsInput(err):
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("palette generation failed", "algorithm", alg, "a", a.Hex(), "b", b.Hex(), "error", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleAlgorithms(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, mix.AlgorithmNames())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to write response", "error", err)
	}
}

func valueOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

// statusRecorder captures the response status for access logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

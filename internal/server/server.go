// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the text-to-video pipeline over HTTP. Jobs are
// started by POST /process_text, run in the background, and are polled via
// GET /status/{id}; finished videos are served for download and preview.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/research-studio/internal/jobs"
	"github.com/pdiddy/research-studio/internal/logger"
	"github.com/pdiddy/research-studio/pkg/types"
)

// Defaults applied to zero-valued ServerConfig fields.
const (
	DefaultAddr           = ":5000"
	DefaultUploadDir      = "static/uploads"
	DefaultVideoDir       = "static/videos"
	DefaultMaxUploadBytes = 16 << 20
	DefaultMinTextLength  = 10

	shutdownTimeout = 10 * time.Second
)

// ErrShuttingDown is returned when a job is started after the server began
// draining its background jobs.
var ErrShuttingDown = errors.New("server is shutting down")

// Runner executes one text-to-video job. *narrate.Pipeline satisfies it.
type Runner interface {
	Run(ctx context.Context, id, text string) (string, error)
}

// Server serves the job API.
type Server struct {
	store  jobs.Store
	runner Runner
	cfg    types.ServerConfig

	// jobCtx bounds background jobs; cancelling it aborts them.
	jobCtx context.Context
	wg     sync.WaitGroup

	mu       sync.Mutex
	draining bool

	newID func() string
}

// New returns a Server whose background jobs run under ctx.
func New(ctx context.Context, store jobs.Store, runner Runner, cfg types.ServerConfig) *Server {
	return &Server{
		store:  store,
		runner: runner,
		cfg:    WithDefaults(cfg),
		jobCtx: ctx,
		newID:  uuid.NewString,
	}
}

// WithDefaults fills zero-valued fields of cfg.
func WithDefaults(cfg types.ServerConfig) types.ServerConfig {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = DefaultUploadDir
	}
	if cfg.VideoDir == "" {
		cfg.VideoDir = DefaultVideoDir
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if cfg.MinTextLength <= 0 {
		cfg.MinTextLength = DefaultMinTextLength
	}
	return cfg
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /process_text", s.handleProcessText)
	mux.HandleFunc("GET /status/{id}", s.handleStatus)
	mux.HandleFunc("GET /download/{filename}", s.handleDownload)
	mux.HandleFunc("GET /preview/{filename}", s.handlePreview)
	return mux
}

// ListenAndServe serves on the configured address until ctx is done, then
// shuts down and waits for running jobs to finish.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown: %v", err)
		}
	}()

	logger.Info("listening on %s", s.cfg.Addr)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		// ListenAndServe returns as soon as Shutdown begins; handlers may
		// still be running until Shutdown itself returns.
		<-shutdownDone
		err = nil
	}
	s.drain()
	if err != nil {
		return fmt.Errorf("serving %s: %w", s.cfg.Addr, err)
	}
	return nil
}

// drain refuses new jobs and waits for running ones.
func (s *Server) drain() {
	s.mu.Lock()
	s.draining = true
	s.mu.Unlock()
	s.wg.Wait()
}

// Wait blocks until all background jobs have returned.
func (s *Server) Wait() {
	s.wg.Wait()
}

// start records a new job and runs it in the background.
func (s *Server) start(ctx context.Context, text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draining {
		return "", ErrShuttingDown
	}

	id := s.newID()
	if _, err := s.store.Create(ctx, id); err != nil {
		return "", fmt.Errorf("creating job: %w", err)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if _, err := s.runner.Run(s.jobCtx, id, text); err != nil {
			logger.Debug("job %s ended with error: %v", id, err)
		}
	}()
	return id, nil
}

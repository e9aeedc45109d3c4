// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package server exposes the configuration generator over HTTP.
//
// Routes:
//
//	POST /api/generate  {"text": "...", "minimal": false}
//	POST /api/extract   {"text": "..."}
//	GET  /api/examples
//	GET  /health
//	GET  /metrics
//
// Failures are reported as {"success": false, "error": "..."}.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/openconfig/vsigen/internal/confgen"
	"github.com/openconfig/vsigen/internal/entity"
	"github.com/openconfig/vsigen/internal/examples"
	"github.com/prometheus/client_golang/prometheus"
)

// ServiceName is reported by the health check.
const ServiceName = "Network Configuration Generator"

// RequestIDHeader carries the ID of a request and its response.
const RequestIDHeader = "X-Request-Id"

var (
	errNoInput    = errors.New("No input text provided")
	errEmptyInput = errors.New("Input text cannot be empty")
)

// Options configures a Server.
type Options struct {
	// Minimal is the default output mode of /api/generate.
	Minimal bool
	// AllowOrigin is sent as Access-Control-Allow-Origin when not empty.
	AllowOrigin string
	// Registerer receives the API metrics. The global registry is used
	// when nil.
	Registerer prometheus.Registerer
}

// Server is the HTTP front end of the generator.
type Server struct {
	opts    Options
	metrics *Metrics
	mux     *http.ServeMux
	routes  map[string]bool
}

// New returns a Server with all routes registered.
func New(opts Options) (*Server, error) {
	m, err := NewMetrics(opts.Registerer)
	if err != nil {
		return nil, fmt.Errorf("cannot register metrics: %w", err)
	}
	s := &Server{
		opts:    opts,
		metrics: m,
		mux:     http.NewServeMux(),
		routes:  map[string]bool{},
	}
	s.handle("/api/generate", http.MethodPost, s.generate)
	s.handle("/api/extract", http.MethodPost, s.extract)
	s.handle("/api/examples", http.MethodGet, s.examples)
	s.handle("/health", http.MethodGet, s.health)
	s.handle("/metrics", http.MethodGet, m.Handler().ServeHTTP)
	return s, nil
}

func (s *Server) handle(path, method string, h http.HandlerFunc) {
	s.routes[path] = true
	s.mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
			return
		}
		h(w, r)
	})
}

// Handler returns the root handler of s.
func (s *Server) Handler() http.Handler {
	return s.middleware(s.mux)
}

// ListenAndServe serves s on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Shutdown error: %v", err)
		}
	}()
	log.Infof("Listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// statusRecorder remembers the status code written to a response.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// middleware adds request IDs, CORS headers, panic recovery and metrics
// around next.
func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}

		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		rec.Header().Set(RequestIDHeader, id)
		if s.opts.AllowOrigin != "" {
			rec.Header().Set("Access-Control-Allow-Origin", s.opts.AllowOrigin)
			rec.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			rec.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		route := r.URL.Path
		if !s.routes[route] {
			route = "other"
		}
		defer func() {
			if p := recover(); p != nil {
				log.Errorf("[%s] panic serving %s: %v", id, r.URL.Path, p)
				writeError(rec, http.StatusInternalServerError, fmt.Errorf("Internal server error: %v", p))
			}
			s.metrics.observe(route, rec.code, time.Since(start))
			switch {
			case rec.code >= 500:
				log.Errorf("[%s] %s %s -> %d", id, r.Method, r.URL.Path, rec.code)
			case rec.code >= 400:
				log.Warningf("[%s] %s %s -> %d", id, r.Method, r.URL.Path, rec.code)
			default:
				log.V(1).Infof("[%s] %s %s -> %d", id, r.Method, r.URL.Path, rec.code)
			}
		}()

		if r.Method == http.MethodOptions {
			rec.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(rec, r)
	})
}

type textRequest struct {
	Text    *string `json:"text"`
	Minimal *bool   `json:"minimal"`
}

type generateResponse struct {
	Success  bool              `json:"success"`
	Input    string            `json:"input"`
	Output   string            `json:"output"`
	Analysis *confgen.Analysis `json:"analysis"`
	Entities *entity.Set       `json:"entities,omitempty"`
}

type extractResponse struct {
	Success  bool        `json:"success"`
	Input    string      `json:"input"`
	Entities *entity.Set `json:"entities"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// decodeText reads a textRequest from r and validates its text.
func decodeText(r *http.Request) (*textRequest, error) {
	req := &textRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errNoInput
		}
		return nil, fmt.Errorf("invalid JSON body: %v", err)
	}
	switch {
	case req.Text == nil:
		return nil, errNoInput
	case strings.TrimSpace(*req.Text) == "":
		return nil, errEmptyInput
	}
	return req, nil
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	req, err := decodeText(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	minimal := s.opts.Minimal
	if req.Minimal != nil {
		minimal = *req.Minimal
	}
	res := confgen.Run(*req.Text, minimal)
	s.metrics.scenario(res.Config.Kind.String())

	resp := &generateResponse{
		Success:  true,
		Input:    res.Input,
		Output:   res.Output,
		Analysis: res.Analysis(),
	}
	if full := r.URL.Query().Get("full"); full == "1" || full == "true" {
		resp.Entities = res.Entities
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) extract(w http.ResponseWriter, r *http.Request) {
	req, err := decodeText(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, &extractResponse{
		Success:  true,
		Input:    *req.Text,
		Entities: confgen.Extract(*req.Text),
	})
}

func (s *Server) examples(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"examples": examples.Texts(),
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": ServiceName,
	})
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, &errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("Cannot encode response: %v", err)
	}
}

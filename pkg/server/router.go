// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package server

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/volkszaehler/vzview/pkg/errors"
	"github.com/volkszaehler/vzview/pkg/serializer"
)

// routes lists the API routes, in the order they are advertised.
var routes = []string{
	"GET /v1/entity/{uuid}",
	"GET /v1/entities",
	"GET /v1/data/{uuid}",
}

func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	// Default handler
	mux.HandleFunc("GET /{$}", s.handleDefault)

	// System endpoints (no rate limiting)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	// API endpoints with middleware
	mux.HandleFunc(routes[0], s.withMiddleware(s.handleEntity))
	mux.HandleFunc(routes[1], s.withMiddleware(s.handleEntities))
	mux.HandleFunc(routes[2], s.withMiddleware(s.handleData))

	// Any other method on an API path
	mux.HandleFunc("/v1/", s.withMiddleware(s.handleNotAllowed))

	return mux
}

func (s *Server) handleNotAllowed(w http.ResponseWriter, r *http.Request) {
	code := errors.ErrCodeNotFound
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		code = errors.ErrCodeMethodNotAllowed
	}
	s.writeError(w, r, errors.NewWithContext(code, "no such route",
		map[string]any{"method": r.Method, "path": r.URL.Path}))
}

func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handling default route",
		"path", r.URL.Path,
		"method", r.Method,
		"remote_addr", r.RemoteAddr,
		"user_agent", r.UserAgent(),
	)

	resp := struct {
		Name      string   `json:"name"`
		Version   string   `json:"version"`
		Ready     bool     `json:"ready"`
		Timestamp string   `json:"timestamp"`
		Formats   []string `json:"formats"`
		Routes    []string `json:"routes"`
	}{
		Name:      s.config.Name,
		Version:   s.config.Version,
		Ready:     s.isReady(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Formats:   serializer.SupportedFormats(),
		Routes:    slices.Concat(routes, []string{"GET /health", "GET /ready", "GET /metrics"}),
	}

	serializer.RespondJSON(w, http.StatusOK, resp)
}

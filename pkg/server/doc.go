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

// Package server serves entity and series documents over HTTP.
//
// Every API response is a document: the requested entities or series, and,
// when something fails, an exception node in the same document. The HTTP
// status follows the error code of the failure.
//
// # Usage
//
//	c, err := catalog.Load(ctx, "catalog.yaml")
//	if err != nil {
//	    return err
//	}
//	s := server.New(
//	    server.WithName("vzviewd"),
//	    server.WithCatalog(c),
//	)
//	return s.Run(ctx)
//
// # API Endpoints
//
// GET /v1/entity/{uuid} - Entity, or aggregator with nested children
//
// GET /v1/entities - All root entities of the catalog
//
// GET /v1/data/{uuid} - Series of a channel
//
//	Query parameters:
//	  - tuples: maximum number of tuples (positive integer)
//	  - group: minute, hour, day, week, month, year
//
// All API endpoints accept a format, in order of precedence:
//
//   - an extension on the uuid: /v1/entity/{uuid}.json
//   - the format query parameter: ?format=yaml
//   - the Accept header: application/json, application/vnd.volkszaehler.v1+xml
//
// XML is the default.
//
// GET /health - Liveness probe, always 200
//
// GET /ready - Readiness probe, 503 until listening with a catalog
//
// GET /metrics - Prometheus metrics
//
// # Debug
//
// With Config.Debug set, exceptions carry file, line and backtrace, and a
// debug node with execution time, log messages and catalog queries is
// appended to every document. Debug is server configuration only, it
// cannot be enabled per request.
//
// # Middleware
//
// API routes pass through metrics,
// API version negotiation, request ID, panic recovery, rate limiting and
// request logging. System endpoints are not rate limited.
//
// # Configuration
//
// NewConfig reads PORT, SHUTDOWN_TIMEOUT_SECONDS, VZ_CATALOG, VZ_DEBUG and
// VZ_RATE_LIMIT on top of the defaults in pkg/defaults.
package server

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
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/volkszaehler/vzview/pkg/defaults"
	"github.com/volkszaehler/vzview/pkg/diagnostics"
	"github.com/volkszaehler/vzview/pkg/errors"
	"github.com/volkszaehler/vzview/pkg/logging"
	"github.com/volkszaehler/vzview/pkg/serializer"
	"github.com/volkszaehler/vzview/pkg/view"
)

// exchange is the per-request rendering state: the document being built,
// the negotiated format and, in debug mode, the diagnostics recorder.
type exchange struct {
	doc    *view.Document
	format serializer.Format
	rec    *diagnostics.Recorder
}

// begin negotiates the output format and prepares the request document.
// id, when non-nil, has any format extension stripped. The returned error
// is to be rendered as the document's only content.
func (s *Server) begin(r *http.Request, id *string, opts ...view.Option) (context.Context, *exchange, error) {
	ctx := r.Context()
	format, err := negotiateFormat(r, id)
	if err != nil {
		format = serializer.FormatXML
		err = errors.Wrap(errors.ErrCodeInvalidRequest, "unsupported format", err)
	}

	if err == nil && s.catalog == nil {
		err = errors.New(errors.ErrCodeUnavailable, "no catalog loaded")
	}

	opts = append([]view.Option{
		view.WithDebug(s.config.Debug),
	}, opts...)

	ex := &exchange{
		doc:    view.NewDocument(opts...),
		format: format,
	}

	if s.config.Debug {
		ex.rec = diagnostics.NewRecorder()
		logger := logging.FromContext(ctx)
		tee := diagnostics.Tee(logger.Handler(), ex.rec.Handler(slog.LevelDebug))
		ctx = logging.NewContext(ctx, slog.New(tee))
	}

	return ctx, ex, err
}

// query records a catalog access in the debug bundle.
func (ex *exchange) query(q string) {
	if ex.rec != nil {
		ex.rec.Query(q)
	}
}

// finish appends err as an exception, then the debug bundle, and writes
// the document. The status is derived from err.
func (ex *exchange) finish(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusOK
	if err != nil {
		status = HTTPStatus(err)
		logging.FromContext(ctx).Debug("request failed", "status", status, "error", err)
		ex.doc.AddFailure(err)
	}

	if ex.rec != nil {
		if berr := ex.doc.Add(ctx, ex.rec.Bundle()); berr != nil {
			slog.Warn("failed to add debug bundle", "error", berr)
		}
	}

	serializer.Respond(w, status, ex.format, ex.doc.Root())
	observeDocument(ex.format, status)
}

func checkUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "invalid uuid",
			map[string]any{"uuid": id})
	}
	return nil
}

// handleEntity serves GET /v1/entity/{uuid}: the entity or aggregator with
// its properties and, for aggregators, its nested children.
func (s *Server) handleEntity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.EntityHandlerTimeout)
	defer cancel()
	r = r.WithContext(ctx)

	id := r.PathValue("uuid")
	ctx, ex, err := s.begin(r, &id)
	if err != nil {
		ex.finish(ctx, w, err)
		return
	}

	ex.finish(ctx, w, s.addEntity(ctx, ex, id))
}

func (s *Server) addEntity(ctx context.Context, ex *exchange, id string) error {
	if err := checkUUID(id); err != nil {
		return err
	}
	ex.query("lookup " + id)
	e, err := s.catalog.Lookup(id)
	if err != nil {
		return err
	}
	return ex.doc.Add(ctx, e)
}

// handleEntities serves GET /v1/entities: every root entity of the catalog.
func (s *Server) handleEntities(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.EntityHandlerTimeout)
	defer cancel()
	r = r.WithContext(ctx)

	ctx, ex, err := s.begin(r, nil)
	if err != nil {
		ex.finish(ctx, w, err)
		return
	}

	ex.query("entities")
	for _, e := range s.catalog.Entities() {
		if err = ex.doc.Add(ctx, e); err != nil {
			break
		}
	}
	ex.finish(ctx, w, err)
}

// handleData serves GET /v1/data/{uuid}?tuples=N&group=G: the series of a
// channel, streamed tuple by tuple into the document.
func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.DataHandlerTimeout)
	defer cancel()
	r = r.WithContext(ctx)

	q := r.URL.Query()
	id := r.PathValue("uuid")
	ctx, ex, err := s.begin(r, &id, view.WithSeriesParams(q.Get("tuples"), q.Get("group")))
	if err != nil {
		ex.finish(ctx, w, err)
		return
	}

	ex.finish(ctx, w, s.addData(ctx, ex, id))
}

func (s *Server) addData(ctx context.Context, ex *exchange, id string) error {
	if err := checkUUID(id); err != nil {
		return err
	}
	ex.query("series " + id)
	h, err := s.catalog.Series(id)
	if err != nil {
		return err
	}
	return ex.doc.Add(ctx, h)
}

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
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/volkszaehler/vzview/pkg/errors"
	"github.com/volkszaehler/vzview/pkg/serializer"
	"github.com/volkszaehler/vzview/pkg/view"
)

// HTTPStatus maps an error to the HTTP status its exception document is
// served with.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}

	switch errors.CodeOf(err) {
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case errors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case errors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case errors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as the only content of a document. It is used
// where no request document exists yet, e.g. in middleware.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	format, ferr := negotiateFormat(r, nil)
	if ferr != nil {
		format = serializer.FormatXML
	}

	doc := view.NewDocument(view.WithDebug(s.config.Debug))
	doc.AddFailure(err)

	status := HTTPStatus(err)
	slog.Debug("request failed",
		"requestID", r.Context().Value(contextKeyRequestID),
		"path", r.URL.Path,
		"status", status,
		"error", err)

	serializer.Respond(w, status, format, doc.Root())
	observeDocument(format, status)
}

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
	"net/http"
	"strings"

	"github.com/volkszaehler/vzview/pkg/serializer"
)

const (
	// DefaultAPIVersion is the default API version if none is negotiated
	DefaultAPIVersion = "v1"

	vendorMediaType = "application/vnd.volkszaehler."
)

// negotiateAPIVersion extracts the API version from the Accept header.
// It supports version negotiation via Accept header like:
// Accept: application/vnd.volkszaehler.v1+xml
// If no version is specified, it returns the default version (v1).
func negotiateAPIVersion(r *http.Request) string {
	accept := r.Header.Get("Accept")
	if !strings.Contains(accept, vendorMediaType+"v") {
		return DefaultAPIVersion
	}

	rest := accept[strings.Index(accept, vendorMediaType)+len(vendorMediaType):]
	version, _, _ := strings.Cut(rest, "+")
	version, _, _ = strings.Cut(version, ",")
	if isValidAPIVersion(version) {
		return version
	}
	return DefaultAPIVersion
}

// isValidAPIVersion checks if the provided version string is a valid API version.
// Currently supports: v1
func isValidAPIVersion(version string) bool {
	validVersions := map[string]bool{
		"v1": true,
	}
	return validVersions[version]
}

// SetAPIVersionHeader sets the API version header in the response.
func SetAPIVersionHeader(w http.ResponseWriter, version string) {
	w.Header().Set("X-API-Version", version)
}

// negotiateFormat picks the output format. In order of precedence: a
// format extension on the path identifier (which is stripped from id), the
// format query parameter, then the Accept header. XML is the default.
func negotiateFormat(r *http.Request, id *string) (serializer.Format, error) {
	if id != nil {
		if base, ext, ok := cutExtension(*id); ok {
			*id = base
			return serializer.ParseFormat(ext)
		}
	}

	if f := r.URL.Query().Get("format"); f != "" {
		return serializer.ParseFormat(f)
	}

	accept := r.Header.Get("Accept")
	switch {
	case strings.Contains(accept, "json"):
		return serializer.FormatJSON, nil
	case strings.Contains(accept, "yaml"):
		return serializer.FormatYAML, nil
	default:
		return serializer.FormatXML, nil
	}
}

// cutExtension splits "uuid.json" into "uuid" and "json".
func cutExtension(id string) (string, string, bool) {
	i := strings.LastIndexByte(id, '.')
	if i <= 0 || i == len(id)-1 {
		return id, "", false
	}
	return id[:i], id[i+1:], true
}

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
	"net/http/httptest"
	"testing"

	"github.com/volkszaehler/vzview/pkg/serializer"
)

func TestNegotiateAPIVersion(t *testing.T) {
	tests := []struct {
		name   string
		accept string
		want   string
	}{
		{"empty accept defaults", "", DefaultAPIVersion},
		{"non-vendor accept defaults", "application/xml", DefaultAPIVersion},
		{"vendor v1", "application/vnd.volkszaehler.v1+xml", "v1"},
		{"vendor v1 in list", "text/html, application/vnd.volkszaehler.v1+json", "v1"},
		{"vendor v2 unsupported defaults", "application/vnd.volkszaehler.v2+xml", DefaultAPIVersion},
		{"vendor malformed defaults", "application/vnd.volkszaehler.vBAD+xml", DefaultAPIVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			if got := negotiateAPIVersion(req); got != tt.want {
				t.Fatalf("negotiateAPIVersion(Accept=%q) = %q, want %q", tt.accept, got, tt.want)
			}
		})
	}
}

func TestSetAPIVersionHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	SetAPIVersionHeader(rec, "v1")

	if got := rec.Header().Get("X-API-Version"); got != "v1" {
		t.Errorf("expected X-API-Version v1, got %q", got)
	}
}

func TestNegotiateFormat(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		accept  string
		id      string
		wantID  string
		want    serializer.Format
		wantErr bool
	}{
		{"default xml", "/", "", "abc", "abc", serializer.FormatXML, false},
		{"extension", "/", "", "abc.json", "abc", serializer.FormatJSON, false},
		{"extension wins over query", "/?format=yaml", "", "abc.xml", "abc", serializer.FormatXML, false},
		{"query", "/?format=yaml", "", "abc", "abc", serializer.FormatYAML, false},
		{"accept json", "/", "application/json", "abc", "abc", serializer.FormatJSON, false},
		{"vendor accept yaml", "/", "application/vnd.volkszaehler.v1+yaml", "abc", "abc", serializer.FormatYAML, false},
		{"unknown extension", "/", "", "abc.csv", "abc", "", true},
		{"unknown query", "/?format=csv", "", "abc", "abc", "", true},
		{"trailing dot is not an extension", "/", "", "abc.", "abc.", serializer.FormatXML, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			id := tt.id
			got, err := negotiateFormat(req, &id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("negotiateFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("negotiateFormat() = %q, want %q", got, tt.want)
			}
			if id != tt.wantID {
				t.Errorf("id = %q, want %q", id, tt.wantID)
			}
		})
	}
}

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

package serializer

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type testConfig struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"catalog.json", FormatJSON},
		{"catalog.JSON", FormatJSON},
		{"catalog.yaml", FormatYAML},
		{"catalog.yml", FormatYAML},
		{"out.xml", FormatXML},
		{"https://example.com/catalog.json", FormatJSON},
		{"catalog", FormatYAML},
		{"catalog.txt", FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := FormatFromPath(tt.path); got != tt.want {
				t.Errorf("FormatFromPath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestNewReader(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"xml is write-only", FormatXML, true},
		{"unknown", Format("csv"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReader(tt.format, strings.NewReader(""))
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewReader() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && r == nil {
				t.Error("expected non-nil reader")
			}
		})
	}
}

func TestReader_Deserialize(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		input   string
		want    testConfig
		wantErr bool
	}{
		{"json", FormatJSON, `{"name":"a","value":1}`, testConfig{Name: "a", Value: 1}, false},
		{"yaml", FormatYAML, "name: b\nvalue: 2\n", testConfig{Name: "b", Value: 2}, false},
		{"bad json", FormatJSON, `{"name":`, testConfig{}, true},
		{"bad yaml", FormatYAML, "name: [", testConfig{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReader(tt.format, strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("NewReader failed: %v", err)
			}

			var got testConfig
			err = r.Deserialize(&got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Deserialize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Deserialize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReader_DeserializeNilChecks(t *testing.T) {
	var r *Reader
	if err := r.Deserialize(&testConfig{}); err == nil {
		t.Error("expected error for nil reader")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil reader should not error: %v", err)
	}

	r = &Reader{format: FormatJSON}
	if err := r.Deserialize(&testConfig{}); err == nil {
		t.Error("expected error for nil input")
	}
}

func TestNewFileReaderWithContext(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"name":"file","value":7}`), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Run("existing file", func(t *testing.T) {
		r, err := NewFileReaderWithContext(ctx, FormatFromPath(path), path)
		if err != nil {
			t.Fatalf("NewFileReaderWithContext failed: %v", err)
		}
		defer r.Close()

		var got testConfig
		if err := r.Deserialize(&got); err != nil {
			t.Fatalf("Deserialize failed: %v", err)
		}
		if got.Name != "file" || got.Value != 7 {
			t.Errorf("unexpected result %+v", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := NewFileReaderWithContext(ctx, FormatJSON, filepath.Join(dir, "missing.json")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("xml rejected", func(t *testing.T) {
		if _, err := NewFileReaderWithContext(ctx, FormatXML, path); err == nil {
			t.Error("expected error for xml format")
		}
	})

	t.Run("invalid content", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		if err := os.WriteFile(bad, []byte("{not json"), 0o600); err != nil {
			t.Fatal(err)
		}
		r, err := NewFileReaderWithContext(ctx, FormatJSON, bad)
		if err != nil {
			t.Fatal(err)
		}
		defer r.Close()
		if err := r.Deserialize(&testConfig{}); err == nil {
			t.Error("expected error for invalid content")
		}
	})
}

func TestNewFileReaderWithContext_Remote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.yaml" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, "name: %s\nvalue: 5\n", r.Header.Get("User-Agent"))
	}))
	defer server.Close()

	ctx := context.Background()

	t.Run("fetched with options", func(t *testing.T) {
		r, err := NewFileReaderWithContext(ctx, FormatYAML, server.URL+"/catalog.yaml",
			WithUserAgent("vz-test"), WithTotalTimeout(5*time.Second))
		if err != nil {
			t.Fatalf("NewFileReaderWithContext failed: %v", err)
		}
		defer r.Close()

		var got testConfig
		if err := r.Deserialize(&got); err != nil {
			t.Fatalf("Deserialize failed: %v", err)
		}
		if got.Name != "vz-test" || got.Value != 5 {
			t.Errorf("unexpected result %+v", got)
		}
	})

	t.Run("not found", func(t *testing.T) {
		if _, err := NewFileReaderWithContext(ctx, FormatYAML, server.URL+"/missing.yaml"); err == nil {
			t.Error("expected error for 404")
		}
	})
}

func TestReader_Close(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("name: x\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	r, err := NewFileReaderWithContext(context.Background(), FormatYAML, path)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("first Close failed: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close should be a no-op: %v", err)
	}
}

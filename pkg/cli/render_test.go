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

package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volkszaehler/vzview/pkg/errors"
	"github.com/volkszaehler/vzview/pkg/view"
)

const (
	houseID   = "6836dd20-00d5-11e0-bab1-856ed5f959ae"
	kitchenID = "82bb6e40-00d5-11e0-9a3f-dd1f3ef8d2a4"
	missingID = "00000000-0000-4000-8000-000000000000"
)

const testCatalog = `
entities:
  - uuid: 6836dd20-00d5-11e0-bab1-856ed5f959ae
    type: group
    properties:
      title: House
    children:
      - uuid: 82bb6e40-00d5-11e0-9a3f-dd1f3ef8d2a4
        type: power
        properties:
          title: Kitchen
        data: kitchen.csv
`

func writeCatalog(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kitchen.csv"),
		[]byte("1000,10,1\n2000,20,1\n3000,30,1\n"), 0o600))
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o600))
	return path
}

// run executes the root command with args and returns the written document.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := filepath.Join(t.TempDir(), "out")
	argv := append([]string{name, "--log-level", "error"}, args...)
	argv = append(argv, "--output", out)

	err := newRootCmd().Run(context.Background(), argv)

	content, rerr := os.ReadFile(out)
	if rerr != nil {
		return "", err
	}
	return string(content), err
}

func TestRenderCmd(t *testing.T) {
	path := writeCatalog(t)

	tests := []struct {
		name     string
		args     []string
		contains []string
		wantErr  bool
	}{
		{
			name:     "all entities",
			args:     []string{"render", "--catalog", path},
			contains: []string{"<uuid>" + houseID + "</uuid>", "<children>", "<title>Kitchen</title>"},
		},
		{
			name:     "single entity",
			args:     []string{"render", "--catalog", path, "--uuid", kitchenID},
			contains: []string{"<entity>", "<uuid>" + kitchenID + "</uuid>"},
		},
		{
			name:     "series",
			args:     []string{"render", "--catalog", path, "--uuid", kitchenID, "--data"},
			contains: []string{"<data>", "<consumption>60</consumption>", `<tuple timestamp="3000" value="30" count="1"></tuple>`},
		},
		{
			name:     "series packed",
			args:     []string{"render", "--catalog", path, "--uuid", kitchenID, "--data", "--tuples", "1"},
			contains: []string{"<data>"},
		},
		{
			name:     "json",
			args:     []string{"render", "--catalog", path, "--uuid", kitchenID, "--format", "json"},
			contains: []string{`"name": "volkszaehler"`, kitchenID},
		},
		{
			name:     "unknown entity",
			args:     []string{"render", "--catalog", path, "--uuid", missingID},
			contains: []string{`<exception code="NOT_FOUND"`},
			wantErr:  true,
		},
		{
			name:     "data on aggregator",
			args:     []string{"render", "--catalog", path, "--uuid", houseID, "--data"},
			contains: []string{`<exception code="INVALID_REQUEST"`},
			wantErr:  true,
		},
		{
			name:     "data without uuid",
			args:     []string{"render", "--catalog", path, "--data"},
			contains: []string{`<exception code="INVALID_REQUEST"`},
			wantErr:  true,
		},
		{
			name:     "missing catalog file",
			args:     []string{"render", "--catalog", filepath.Join(t.TempDir(), "nope.yaml")},
			contains: []string{`<exception code="NOT_FOUND"`},
			wantErr:  true,
		},
		{
			name:     "debug bundle",
			args:     []string{"render", "--catalog", path, "--uuid", kitchenID, "--debug"},
			contains: []string{"<debug>", "<query>lookup " + kitchenID + "</query>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestRenderCmd_UnknownFormat(t *testing.T) {
	path := writeCatalog(t)

	out, err := run(t, "render", "--catalog", path, "--format", "csv")
	require.Error(t, err)
	assert.Empty(t, out, "nothing is written for an unknown format")
}

func TestRenderCmd_CatalogRequired(t *testing.T) {
	t.Setenv("VZ_CATALOG", "")

	_, err := run(t, "render")
	assert.Error(t, err)
}

func TestRenderCmd_CatalogFromEnv(t *testing.T) {
	t.Setenv("VZ_CATALOG", writeCatalog(t))

	out, err := run(t, "render", "--uuid", kitchenID)
	require.NoError(t, err)
	assert.Contains(t, out, kitchenID)
}

func TestRenderer_KeepsContentOnFailure(t *testing.T) {
	r := &renderer{
		catalogPath: writeCatalog(t),
		uuid:        kitchenID,
		data:        true,
		opts:        []view.Option{view.WithSeriesParams("", "fortnight")},
	}

	doc, err := r.render(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))

	assert.Equal(t, []string{"exception"}, doc.Root().Names())
}

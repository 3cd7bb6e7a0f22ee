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

package diagnostics

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vzerrors "github.com/volkszaehler/vzview/pkg/errors"
	"github.com/volkszaehler/vzview/pkg/value"
)

func TestNewFailure(t *testing.T) {
	err := vzerrors.New(vzerrors.ErrCodeNotFound, "channel not found")
	f := NewFailure(err)

	require.NotNil(t, f)
	assert.Equal(t, "NOT_FOUND", f.Code)
	assert.Equal(t, "*errors.StructuredError", f.Type)
	assert.Equal(t, "[NOT_FOUND] channel not found", f.Message)
	assert.Equal(t, "diagnostics_test.go", filepath.Base(f.File))
	assert.Positive(t, f.Line)
	require.NotEmpty(t, f.Trace)
	assert.True(t, strings.HasSuffix(f.Trace[0].Function, "TestNewFailure"), f.Trace[0].Function)
}

func TestNewFailurePlainError(t *testing.T) {
	f := NewFailure(errors.New("boom"))
	assert.Equal(t, "INTERNAL", f.Code)
	assert.Equal(t, "*errors.errorString", f.Type)
	assert.Equal(t, "boom", f.Message)
}

func TestNewFailurePassthrough(t *testing.T) {
	orig := &Failure{Code: "X", Message: "m"}
	assert.Same(t, orig, NewFailure(orig))
	assert.Nil(t, NewFailure(nil))
	assert.Equal(t, "[X] m", orig.Error())
}

func TestSplitFunction(t *testing.T) {
	tests := []struct {
		in       string
		wantType string
		wantFn   string
	}{
		{"github.com/a/b/pkg.(*Doc).Add", "github.com/a/b/pkg.*Doc", "Add"},
		{"github.com/a/b/pkg.Func", "", "github.com/a/b/pkg.Func"},
		{"github.com/a/b/pkg.Func.func1", "", "github.com/a/b/pkg.Func.func1"},
		{"main.main", "", "main.main"},
		{"weird", "", "weird"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			typ, fn := splitFunction(tt.in)
			assert.Equal(t, tt.wantType, typ)
			assert.Equal(t, tt.wantFn, fn)
		})
	}
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder()
	base := rec.start
	rec.now = func() time.Time { return base.Add(1500 * time.Millisecond) }

	rec.Log("loaded", "a", 1)
	rec.Query("SELECT * FROM entities")
	rec.Query("SELECT * FROM data")

	b := rec.Bundle()
	assert.Equal(t, 1500*time.Millisecond, b.ExecutionTime)
	require.Len(t, b.Messages, 1)
	assert.Equal(t, "loaded", b.Messages[0].Text)
	assert.Equal(t, value.Sequence{value.String("a"), value.Int(1)}, b.Messages[0].Args)
	assert.Equal(t, "diagnostics_test.go", filepath.Base(b.Messages[0].File))
	assert.Equal(t, []string{"SELECT * FROM entities", "SELECT * FROM data"}, b.Queries)

	rec.Query("later")
	assert.Len(t, b.Queries, 2, "bundle is a snapshot")
}

func TestRecorderHandler(t *testing.T) {
	rec := NewRecorder()
	logger := slog.New(rec.Handler(slog.LevelInfo)).With("request", "r1").WithGroup("g")

	logger.Debug("hidden")
	logger.Info("visible", "n", 2, "ok", true, slog.Group("sub", "x", 1.5))

	b := rec.Bundle()
	require.Len(t, b.Messages, 1)
	m := b.Messages[0]
	assert.Equal(t, "visible", m.Text)

	args, ok := m.Args.(value.Mapping)
	require.True(t, ok)
	assert.Equal(t, []string{"request", "g.n", "g.ok", "g.sub"}, args.Keys())
	sub, _ := args.Get("g.sub")
	assert.Equal(t, value.Mapping{{Key: "x", Value: value.Float(1.5)}}, sub)
}

func TestTee(t *testing.T) {
	a := NewRecorder()
	b := NewRecorder()
	logger := slog.New(Tee(a.Handler(slog.LevelWarn), b.Handler(slog.LevelInfo)))

	logger.Info("info")
	logger.Warn("warn")

	assert.Len(t, a.Bundle().Messages, 1)
	assert.Len(t, b.Bundle().Messages, 2)
	assert.True(t, Tee(a.Handler(slog.LevelError), b.Handler(slog.LevelError)).Enabled(context.Background(), slog.LevelError))
}

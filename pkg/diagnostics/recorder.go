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
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/volkszaehler/vzview/pkg/value"
)

// Recorder collects the diagnostic state of one request: messages, raw
// queries and the elapsed time since it was created.
type Recorder struct {
	mu       sync.Mutex
	start    time.Time
	now      func() time.Time
	messages []Message
	queries  []string
}

// NewRecorder starts a recorder at the current time.
func NewRecorder() *Recorder {
	return &Recorder{start: time.Now(), now: time.Now}
}

// Log records a message with its caller position, arguments and stack.
func (r *Recorder) Log(text string, args ...any) {
	trace := Capture(1)
	m := Message{Text: text, Args: value.SequenceOf(args...), Trace: trace}
	if len(trace) > 0 {
		m.File = trace[0].File
		m.Line = trace[0].Line
	}
	r.add(m)
}

// Query records a raw query string.
func (r *Recorder) Query(q string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, q)
}

func (r *Recorder) add(m Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, m)
}

// Bundle snapshots the recorded state.
func (r *Recorder) Bundle() *Bundle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return &Bundle{
		ExecutionTime: r.now().Sub(r.start),
		Messages:      append([]Message(nil), r.messages...),
		Queries:       append([]string(nil), r.queries...),
	}
}

// Handler returns a slog.Handler that records every log record at or above
// level as a message, so regular logging feeds the debug bundle.
func (r *Recorder) Handler(level slog.Leveler) slog.Handler {
	return &recordHandler{rec: r, level: level}
}

type recordHandler struct {
	rec   *Recorder
	level slog.Leveler
	attrs []slog.Attr
	group string
}

func (h *recordHandler) Enabled(_ context.Context, l slog.Level) bool {
	min := slog.LevelInfo
	if h.level != nil {
		min = h.level.Level()
	}
	return l >= min
}

func (h *recordHandler) Handle(_ context.Context, rec slog.Record) error {
	args := value.NewMapping()
	for _, a := range h.attrs {
		args.Set(a.Key, attrValue(a.Value))
	}
	rec.Attrs(func(a slog.Attr) bool {
		args.Set(h.key(a.Key), attrValue(a.Value))
		return true
	})

	m := Message{Text: rec.Message, Args: args.Build()}
	if rec.PC != 0 {
		fr, _ := runtime.CallersFrames([]uintptr{rec.PC}).Next()
		m.File = fr.File
		m.Line = fr.Line
		typ, fn := splitFunction(fr.Function)
		m.Trace = StackTrace{{File: fr.File, Line: fr.Line, Function: fn, Type: typ}}
	}
	h.rec.add(m)
	return nil
}

func (h *recordHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		clone.attrs = append(clone.attrs, slog.Attr{Key: h.key(a.Key), Value: a.Value})
	}
	return &clone
}

func (h *recordHandler) WithGroup(name string) slog.Handler {
	clone := *h
	if clone.group != "" {
		name = clone.group + "." + name
	}
	clone.group = name
	return &clone
}

func (h *recordHandler) key(k string) string {
	if h.group == "" {
		return k
	}
	return h.group + "." + k
}

func attrValue(v slog.Value) value.Value {
	v = v.Resolve()
	//nolint:exhaustive // remaining kinds are rendered through their text form
	switch v.Kind() {
	case slog.KindString:
		return value.String(v.String())
	case slog.KindInt64:
		return value.Int(v.Int64())
	case slog.KindUint64:
		return value.From(v.Uint64())
	case slog.KindFloat64:
		return value.Float(v.Float64())
	case slog.KindBool:
		return value.Bool(v.Bool())
	case slog.KindGroup:
		m := value.NewMapping()
		for _, a := range v.Group() {
			m.Set(a.Key, attrValue(a.Value))
		}
		return m.Build()
	default:
		return value.From(v.Any())
	}
}

// Tee returns a handler that forwards records to both handlers.
func Tee(a, b slog.Handler) slog.Handler {
	return teeHandler{a: a, b: b}
}

type teeHandler struct {
	a, b slog.Handler
}

func (t teeHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return t.a.Enabled(ctx, l) || t.b.Enabled(ctx, l)
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errA, errB error
	if t.a.Enabled(ctx, r.Level) {
		errA = t.a.Handle(ctx, r.Clone())
	}
	if t.b.Enabled(ctx, r.Level) {
		errB = t.b.Handle(ctx, r.Clone())
	}
	if errA != nil {
		return errA
	}
	return errB
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return teeHandler{a: t.a.WithAttrs(attrs), b: t.b.WithAttrs(attrs)}
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	return teeHandler{a: t.a.WithGroup(name), b: t.b.WithGroup(name)}
}

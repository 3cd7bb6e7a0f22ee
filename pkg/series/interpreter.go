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

package series

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/volkszaehler/vzview/pkg/errors"
	"github.com/volkszaehler/vzview/pkg/logging"
	"github.com/volkszaehler/vzview/pkg/model"
)

// Group is a calendar period tuples are aggregated over.
type Group string

const (
	GroupNone   Group = ""
	GroupMinute Group = "minute"
	GroupHour   Group = "hour"
	GroupDay    Group = "day"
	GroupWeek   Group = "week"
	GroupMonth  Group = "month"
	GroupYear   Group = "year"
)

// ParseGroup parses the group request parameter.
func ParseGroup(s string) (Group, error) {
	switch g := Group(strings.ToLower(strings.TrimSpace(s))); g {
	case GroupNone, GroupMinute, GroupHour, GroupDay, GroupWeek, GroupMonth, GroupYear:
		return g, nil
	default:
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest, "unknown group",
			map[string]any{"group": s})
	}
}

// ParseTuples parses the tuples request parameter. An empty value means no limit.
func ParseTuples(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "tuples must be a positive integer", err,
			map[string]any{"tuples": s})
	}
	return n, nil
}

// bucket returns the key of the period ts falls into.
func (g Group) bucket(ts int64) int64 {
	t := time.UnixMilli(ts).UTC()
	switch g {
	case GroupMinute:
		return floorDiv(ts, int64(time.Minute/time.Millisecond))
	case GroupHour:
		return floorDiv(ts, int64(time.Hour/time.Millisecond))
	case GroupDay:
		return int64(t.Year())*1000 + int64(t.YearDay())
	case GroupWeek:
		y, w := t.ISOWeek()
		return int64(y)*100 + int64(w)
	case GroupMonth:
		return int64(t.Year())*100 + int64(t.Month())
	case GroupYear:
		return int64(t.Year())
	default:
		return ts
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// accumulator merges consecutive tuples into one. The merged value is the
// count-weighted mean, the merged timestamp is the last one seen.
type accumulator struct {
	ts       int64
	weighted float64
	plain    float64
	count    int64
	n        int64
}

func (a *accumulator) add(t Tuple) {
	a.ts = t.Timestamp
	a.weighted += t.Value * float64(t.Count)
	a.plain += t.Value
	a.count += t.Count
	a.n++
}

func (a *accumulator) empty() bool { return a.n == 0 }

func (a *accumulator) flush() Tuple {
	var v float64
	if a.count > 0 {
		v = a.weighted / float64(a.count)
	} else {
		v = a.plain / float64(a.n)
	}
	t := Tuple{Timestamp: a.ts, Value: v, Count: a.count}
	*a = accumulator{}
	return t
}

// Interpreter implements Handle over a tuple Source. Production streams:
// at most one pending aggregate is held regardless of series length.
type Interpreter struct {
	entity *model.Entity
	open   Opener

	min         float64
	max         float64
	average     float64
	consumption float64
	emitted     int64
}

var _ Handle = (*Interpreter)(nil)

// NewInterpreter binds open to entity.
func NewInterpreter(entity *model.Entity, open Opener) *Interpreter {
	return &Interpreter{entity: entity, open: open}
}

// Entity implements Handle.
func (i *Interpreter) Entity() *model.Entity { return i.entity }

// Min implements Handle.
func (i *Interpreter) Min() float64 { return i.min }

// Max implements Handle.
func (i *Interpreter) Max() float64 { return i.max }

// Average implements Handle. It is the mean of the produced values.
func (i *Interpreter) Average() float64 { return i.average }

// Consumption implements Handle. It is the sum of the produced values.
func (i *Interpreter) Consumption() float64 { return i.consumption }

// Emitted returns the number of tuples produced by the last Process call.
func (i *Interpreter) Emitted() int64 { return i.emitted }

// Process implements Handle. tuples limits the number of produced tuples by
// packing consecutive ones; group aggregates tuples per calendar period.
func (i *Interpreter) Process(ctx context.Context, tuples, group string, sink Sink) error {
	limit, err := ParseTuples(tuples)
	if err != nil {
		return err
	}
	g, err := ParseGroup(group)
	if err != nil {
		return err
	}

	pack := int64(1)
	if limit > 0 {
		total, err := i.count(ctx, g)
		if err != nil {
			return err
		}
		if total > int64(limit) {
			pack = (total + int64(limit) - 1) / int64(limit)
		}
	}

	logging.FromContext(ctx).Debug("processing series",
		"uuid", i.entity.UUID,
		"tuples", limit,
		"group", string(g),
		"pack", pack)

	i.min, i.max, i.average, i.consumption, i.emitted = 0, 0, 0, 0, 0
	var sum float64

	var packed accumulator
	emit := func(t Tuple) error {
		if pack > 1 {
			packed.add(t)
			if packed.n < pack {
				return nil
			}
			t = packed.flush()
		}
		i.observe(t, &sum)
		return sink(t)
	}

	if err := i.run(ctx, g, emit); err != nil {
		return err
	}
	if !packed.empty() {
		t := packed.flush()
		i.observe(t, &sum)
		if err := sink(t); err != nil {
			return err
		}
	}

	i.consumption = sum
	if i.emitted > 0 {
		i.average = sum / float64(i.emitted)
	}
	return nil
}

func (i *Interpreter) observe(t Tuple, sum *float64) {
	if i.emitted == 0 || t.Value < i.min {
		i.min = t.Value
	}
	if i.emitted == 0 || t.Value > i.max {
		i.max = t.Value
	}
	i.emitted++
	*sum += t.Value
}

// count returns the number of tuples the grouping stage produces.
func (i *Interpreter) count(ctx context.Context, g Group) (int64, error) {
	if g == GroupNone {
		src, err := i.open()
		if err != nil {
			return 0, err
		}
		if c, ok := src.(Counter); ok {
			closeSource(src)
			return int64(c.Len()), nil
		}
		closeSource(src)
	}

	var n int64
	err := i.run(ctx, g, func(Tuple) error {
		n++
		return nil
	})
	return n, err
}

// run streams the source through the grouping stage into out.
func (i *Interpreter) run(ctx context.Context, g Group, out Sink) error {
	src, err := i.open()
	if err != nil {
		return err
	}
	defer closeSource(src)

	var (
		acc     accumulator
		current int64
	)
	for {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(errors.ErrCodeTimeout, "series production cancelled", err)
		}

		t, ok, err := src.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}

		if g == GroupNone {
			if err := out(t); err != nil {
				return err
			}
			continue
		}

		key := g.bucket(t.Timestamp)
		if !acc.empty() && key != current {
			if err := out(acc.flush()); err != nil {
				return err
			}
		}
		current = key
		acc.add(t)
	}

	if !acc.empty() {
		return out(acc.flush())
	}
	return nil
}

func closeSource(src Source) {
	if c, ok := src.(io.Closer); ok {
		if err := c.Close(); err != nil {
			slog.Warn("failed to close series source", "error", err)
		}
	}
}

// Static is a Handle with fixed summary values that replays tuples as
// given, ignoring the tuples and group parameters.
type Static struct {
	E        *model.Entity
	Tuples   []Tuple
	MinV     float64
	MaxV     float64
	AverageV float64
	TotalV   float64
}

var _ Handle = (*Static)(nil)

// Entity implements Handle.
func (s *Static) Entity() *model.Entity { return s.E }

// Process implements Handle.
func (s *Static) Process(ctx context.Context, _, _ string, sink Sink) error {
	for _, t := range s.Tuples {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := sink(t); err != nil {
			return err
		}
	}
	return nil
}

// Min implements Handle.
func (s *Static) Min() float64 { return s.MinV }

// Max implements Handle.
func (s *Static) Max() float64 { return s.MaxV }

// Average implements Handle.
func (s *Static) Average() float64 { return s.AverageV }

// Consumption implements Handle.
func (s *Static) Consumption() float64 { return s.TotalV }

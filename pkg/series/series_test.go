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
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vzerrors "github.com/volkszaehler/vzview/pkg/errors"
	"github.com/volkszaehler/vzview/pkg/model"
)

const testUUID = "a6b1e6c0-1b7c-11e0-9f8a-0800200c9a66"

func collect(t *testing.T, h Handle, tuples, group string) []Tuple {
	t.Helper()
	var out []Tuple
	err := h.Process(context.Background(), tuples, group, func(tp Tuple) error {
		out = append(out, tp)
		return nil
	})
	require.NoError(t, err)
	return out
}

func TestInterpreterPassthrough(t *testing.T) {
	raw := []Tuple{{1000, 1.5, 1}, {2000, 2.25, 3}}
	h := NewInterpreter(model.New(testUUID, model.TypePower), MemoryOpener(raw))

	got := collect(t, h, "", "")
	assert.Equal(t, raw, got)
	assert.Equal(t, 1.5, h.Min())
	assert.Equal(t, 2.25, h.Max())
	assert.InDelta(t, 1.875, h.Average(), 1e-12)
	assert.InDelta(t, 3.75, h.Consumption(), 1e-12)
	assert.Equal(t, int64(2), h.Emitted())
	assert.Equal(t, testUUID, h.Entity().UUID)
}

func TestInterpreterGroupHour(t *testing.T) {
	raw := []Tuple{
		{0, 1, 1},
		{1000, 3, 3},
		{3600000, 2, 1},
		{3601000, 4, 1},
	}
	h := NewInterpreter(model.New(testUUID, model.TypePower), MemoryOpener(raw))

	got := collect(t, h, "", "hour")
	require.Len(t, got, 2)
	assert.Equal(t, Tuple{Timestamp: 1000, Value: 2.5, Count: 4}, got[0])
	assert.Equal(t, Tuple{Timestamp: 3601000, Value: 3, Count: 2}, got[1])
}

func TestInterpreterGroupDay(t *testing.T) {
	const day = int64(24 * 3600 * 1000)
	raw := []Tuple{{0, 1, 1}, {day - 1, 1, 1}, {day, 5, 1}}
	h := NewInterpreter(model.New(testUUID, model.TypePower), MemoryOpener(raw))

	got := collect(t, h, "", "DAY")
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].Count)
	assert.Equal(t, 5.0, got[1].Value)
}

func TestInterpreterPacking(t *testing.T) {
	raw := []Tuple{{1, 1, 1}, {2, 2, 1}, {3, 3, 1}, {4, 4, 1}, {5, 5, 1}}
	h := NewInterpreter(model.New(testUUID, model.TypePower), MemoryOpener(raw))

	got := collect(t, h, "2", "")
	require.Len(t, got, 2)
	assert.Equal(t, Tuple{Timestamp: 3, Value: 2, Count: 3}, got[0])
	assert.Equal(t, Tuple{Timestamp: 5, Value: 4.5, Count: 2}, got[1])
	assert.Equal(t, 2.0, h.Min())
	assert.Equal(t, 4.5, h.Max())
	assert.InDelta(t, 3.25, h.Average(), 1e-12)
	assert.InDelta(t, 6.5, h.Consumption(), 1e-12)
}

func TestInterpreterPackingWithoutLen(t *testing.T) {
	csv := "1,1\n2,2\n3,3\n4,4\n"
	open := func() (Source, error) { return NewReaderSource(strings.NewReader(csv)) }
	h := NewInterpreter(model.New(testUUID, model.TypePower), open)

	got := collect(t, h, "2", "")
	require.Len(t, got, 2)
	assert.Equal(t, 1.5, got[0].Value)
	assert.Equal(t, 3.5, got[1].Value)
}

func TestInterpreterLimitAboveCount(t *testing.T) {
	raw := []Tuple{{1, 1, 1}, {2, 2, 1}}
	h := NewInterpreter(model.New(testUUID, model.TypePower), MemoryOpener(raw))
	assert.Len(t, collect(t, h, "10", ""), 2)
}

func TestInterpreterEmpty(t *testing.T) {
	h := NewInterpreter(model.New(testUUID, model.TypePower), MemoryOpener(nil))
	got := collect(t, h, "", "")
	assert.Empty(t, got)
	assert.Zero(t, h.Average())
	assert.Zero(t, h.Consumption())
}

func TestInterpreterInvalidParams(t *testing.T) {
	h := NewInterpreter(model.New(testUUID, model.TypePower), MemoryOpener(nil))
	noop := func(Tuple) error { return nil }

	err := h.Process(context.Background(), "abc", "", noop)
	require.Error(t, err)
	assert.True(t, vzerrors.Is(err, vzerrors.ErrCodeInvalidRequest))

	err = h.Process(context.Background(), "0", "", noop)
	require.Error(t, err)

	err = h.Process(context.Background(), "", "fortnight", noop)
	require.Error(t, err)
	assert.True(t, vzerrors.Is(err, vzerrors.ErrCodeInvalidRequest))
}

func TestInterpreterSinkErrorStops(t *testing.T) {
	raw := []Tuple{{1, 1, 1}, {2, 2, 1}, {3, 3, 1}}
	h := NewInterpreter(model.New(testUUID, model.TypePower), MemoryOpener(raw))

	stop := errors.New("stop")
	calls := 0
	err := h.Process(context.Background(), "", "", func(Tuple) error {
		calls++
		if calls == 2 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, calls)
}

func TestInterpreterCancelled(t *testing.T) {
	raw := []Tuple{{1, 1, 1}}
	h := NewInterpreter(model.New(testUUID, model.TypePower), MemoryOpener(raw))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := h.Process(ctx, "", "", func(Tuple) error { return nil })
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReaderSource(t *testing.T) {
	input := "# timestamp,value,count\n1000,1.5,1\n\n2000, 2.25, 3\n3000,4\n"
	src, err := NewReaderSource(strings.NewReader(input))
	require.NoError(t, err)
	defer src.Close()

	var got []Tuple
	for {
		tp, ok, err := src.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, tp)
	}
	assert.Equal(t, []Tuple{{1000, 1.5, 1}, {2000, 2.25, 3}, {3000, 4, 1}}, got)
}

func TestReaderSourceZstd(t *testing.T) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = enc.Write([]byte("1000,1.5,1\n2000,2.25,3\n"))
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	open := func() (Source, error) { return NewReaderSource(bytes.NewReader(buf.Bytes())) }
	h := NewInterpreter(model.New(testUUID, model.TypePower), open)

	got := collect(t, h, "", "")
	assert.Equal(t, []Tuple{{1000, 1.5, 1}, {2000, 2.25, 3}}, got)
}

func TestReaderSourceMalformed(t *testing.T) {
	tests := []string{"abc,1\n", "1,xyz\n", "1,2,z\n", "1\n", "1,2,3,4\n"}
	for _, input := range tests {
		src, err := NewReaderSource(strings.NewReader(input))
		require.NoError(t, err)
		_, _, err = src.Next()
		require.Error(t, err, "input %q", input)
		assert.True(t, vzerrors.Is(err, vzerrors.ErrCodeInvalidRequest))
	}
}

func TestFileOpenerMissing(t *testing.T) {
	_, err := FileOpener("/nonexistent/series.csv")()
	require.Error(t, err)
	assert.True(t, vzerrors.Is(err, vzerrors.ErrCodeNotFound))
}

func TestStatic(t *testing.T) {
	s := &Static{
		E:        model.New(testUUID, model.TypePower),
		Tuples:   []Tuple{{1, 2, 3}},
		MinV:     1,
		MaxV:     2,
		AverageV: 1.5,
		TotalV:   3,
	}
	got := collect(t, s, "ignored", "ignored")
	assert.Len(t, got, 1)
	assert.Equal(t, 1.0, s.Min())
	assert.Equal(t, 2.0, s.Max())
	assert.Equal(t, 1.5, s.Average())
	assert.Equal(t, 3.0, s.Consumption())
}

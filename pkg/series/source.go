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
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/volkszaehler/vzview/pkg/errors"
)

// MemorySource iterates over a slice of tuples.
type MemorySource struct {
	tuples []Tuple
	pos    int
}

// NewMemorySource returns a source over tuples. The slice is not copied.
func NewMemorySource(tuples []Tuple) *MemorySource {
	return &MemorySource{tuples: tuples}
}

// Next implements Source.
func (s *MemorySource) Next() (Tuple, bool, error) {
	if s.pos >= len(s.tuples) {
		return Tuple{}, false, nil
	}
	t := s.tuples[s.pos]
	s.pos++
	return t, true, nil
}

// Len implements Counter.
func (s *MemorySource) Len() int {
	return len(s.tuples)
}

// MemoryOpener returns an Opener that replays tuples on every call.
func MemoryOpener(tuples []Tuple) Opener {
	return func() (Source, error) {
		return NewMemorySource(tuples), nil
	}
}

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// ReaderSource streams tuples from CSV text with the columns
// timestamp,value[,count]. Blank lines and lines starting with '#' are
// skipped. Zstandard-compressed input is detected and decoded on the fly.
type ReaderSource struct {
	csv     *csv.Reader
	decoder *zstd.Decoder
	closer  io.Closer
	line    int
}

// NewReaderSource wraps r. If r is an io.Closer it is closed by Close.
func NewReaderSource(r io.Reader) (*ReaderSource, error) {
	s := &ReaderSource{}
	if c, ok := r.(io.Closer); ok {
		s.closer = c
	}

	br := bufio.NewReader(r)
	var in io.Reader = br
	if magic, err := br.Peek(len(zstdMagic)); err == nil && bytes.Equal(magic, zstdMagic) {
		dec, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, "failed to create zstd decoder", err)
		}
		s.decoder = dec
		in = dec
	}

	cr := csv.NewReader(in)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	cr.TrimLeadingSpace = true
	s.csv = cr
	return s, nil
}

// Next implements Source.
func (s *ReaderSource) Next() (Tuple, bool, error) {
	record, err := s.csv.Read()
	if err == io.EOF {
		return Tuple{}, false, nil
	}
	if err != nil {
		return Tuple{}, false, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to read tuple", err)
	}
	s.line++
	t, err := ParseRecord(record)
	if err != nil {
		return Tuple{}, false, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "malformed tuple", err,
			map[string]any{"record": s.line})
	}
	return t, true, nil
}

// Close releases the decoder and the underlying reader.
func (s *ReaderSource) Close() error {
	if s.decoder != nil {
		s.decoder.Close()
	}
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// ParseRecord parses the fields timestamp,value[,count] of one tuple. A
// missing count means 1.
func ParseRecord(record []string) (Tuple, error) {
	if len(record) < 2 || len(record) > 3 {
		return Tuple{}, fmt.Errorf("expected 2 or 3 fields, got %d", len(record))
	}
	ts, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
	if err != nil {
		return Tuple{}, fmt.Errorf("timestamp: %w", err)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
	if err != nil {
		return Tuple{}, fmt.Errorf("value: %w", err)
	}
	count := int64(1)
	if len(record) == 3 {
		count, err = strconv.ParseInt(strings.TrimSpace(record[2]), 10, 64)
		if err != nil {
			return Tuple{}, fmt.Errorf("count: %w", err)
		}
	}
	return Tuple{Timestamp: ts, Value: v, Count: count}, nil
}

// FileOpener returns an Opener that streams tuples from the file at path.
func FileOpener(path string) Opener {
	return func() (Source, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeNotFound, "failed to open series file", err,
				map[string]any{"path": path})
		}
		src, err := NewReaderSource(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return src, nil
	}
}

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

// Package number renders numeric values as canonical, locale-independent text.
//
// Output never uses exponent notation, carries at most Precision fractional
// digits, and drops trailing zeros, so formatting is idempotent:
//
//	s, _ := number.Format(1.8750000001) // "1.875"
//	f, _ := strconv.ParseFloat(s, 64)
//	t, _ := number.Format(f)            // "1.875"
package number

import (
	"math"
	"strconv"
	"strings"

	"github.com/volkszaehler/vzview/pkg/errors"
)

// DefaultPrecision is the number of fractional digits kept by Format.
const DefaultPrecision = 5

// Formatter formats floats with a fixed maximum precision.
type Formatter struct {
	Precision int
}

// New returns a Formatter with the given precision. Negative values fall
// back to DefaultPrecision.
func New(precision int) Formatter {
	if precision < 0 {
		precision = DefaultPrecision
	}
	return Formatter{Precision: precision}
}

// Format returns the canonical text for v. Non-finite values are rejected
// with ErrCodeUnformattableNumber.
func (f Formatter) Format(v float64) (string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", errors.NewWithContext(errors.ErrCodeUnformattableNumber,
			"cannot format non-finite number", map[string]any{
				"value": strconv.FormatFloat(v, 'g', -1, 64),
			})
	}

	s := strconv.FormatFloat(v, 'f', f.Precision, 64)
	if strings.IndexByte(s, '.') >= 0 {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s, nil
}

var defaultFormatter = New(DefaultPrecision)

// Format formats v with DefaultPrecision.
func Format(v float64) (string, error) {
	return defaultFormatter.Format(v)
}

// FormatInt returns the decimal text of an integer. Integers are never
// rounded, so there is no error path.
func FormatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

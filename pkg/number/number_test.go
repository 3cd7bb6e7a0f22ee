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

package number

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volkszaehler/vzview/pkg/errors"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"integer", 42, "42"},
		{"zero", 0, "0"},
		{"negative zero", math.Copysign(0, -1), "0"},
		{"tiny negative rounds to zero", -0.000001, "0"},
		{"fraction", 1.875, "1.875"},
		{"trailing zeros dropped", 2.5000, "2.5"},
		{"rounded to precision", 1.234567891, "1.23457"},
		{"negative", -3.25, "-3.25"},
		{"large without exponent", 1e21, "1000000000000000000000"},
		{"small without exponent", 0.00001, "0.00001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := Format(v)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrCodeUnformattableNumber))
	}
}

func TestFormatIdempotent(t *testing.T) {
	inputs := []float64{0.1 + 0.2, 1.0 / 3.0, 123456.789012, -7.000001, 1e-9, 99999.999999}
	for _, in := range inputs {
		first, err := Format(in)
		require.NoError(t, err)

		parsed, err := strconv.ParseFloat(first, 64)
		require.NoError(t, err)

		second, err := Format(parsed)
		require.NoError(t, err)
		assert.Equal(t, first, second, "input %v", in)
	}
}

func TestFormatterPrecision(t *testing.T) {
	f := New(2)
	got, err := f.Format(3.14159)
	require.NoError(t, err)
	assert.Equal(t, "3.14", got)

	f = New(-1)
	assert.Equal(t, DefaultPrecision, f.Precision)
}

func TestFormatInt(t *testing.T) {
	assert.Equal(t, "1000", FormatInt(1000))
	assert.Equal(t, "-5", FormatInt(-5))
}

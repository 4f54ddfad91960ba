/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package waveform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantize(t *testing.T) {
	tests := []struct {
		name   string
		sample float64
		want   int16
	}{
		{"full scale", 1.0, 32767},
		{"negative full scale", -1.0, -32767},
		{"zero", 0.0, 0},
		{"half", 0.5, 16384},
		{"negative half", -0.5, -16384},
		{"clip high", 1.5, 32767},
		{"clip low", -7.0, -32767},
		{"positive infinity", math.Inf(1), 32767},
		{"negative infinity", math.Inf(-1), -32767},
		{"nan", math.NaN(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Quantize(tt.sample))
		})
	}
}

func TestQuantizeMatchesRound(t *testing.T) {
	for amp := -0.999; amp < 1.0; amp += 0.0137 {
		assert.Equal(t, int16(math.Round(amp*Scale)), Quantize(amp), "amp %f", amp)
	}
}

func TestQuantizeNeverMinInt16(t *testing.T) {
	for _, amp := range []float64{-1, -1.0000001, -1e9} {
		assert.NotEqual(t, int16(math.MinInt16), Quantize(amp))
	}
}

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

import "math"

const (
	// Scale is the full-scale value of a quantized sample.
	// The range is symmetric so -32768 is never produced.
	Scale = 32767
)

// Quantize converts a normalized sample into a signed 16 bit hardware sample.
// Values outside [-1, 1] are clipped. Rounding is half away from zero.
// NaN is mapped to 0.
func Quantize(sample float64) int16 {
	if math.IsNaN(sample) {
		return 0
	}
	if sample > 1 {
		sample = 1
	}
	if sample < -1 {
		sample = -1
	}
	return int16(math.Round(sample * Scale))
}

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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Samples is a pair of channel sample lists before encoding
type Samples struct {
	A []float64
	B []float64
}

// ReadCSV parses waveforms from text. Every row is "a" or "a,b",
// blank lines separate waveforms and lines starting with # are skipped.
// An empty column reads as 0. Sample i of channel B always belongs to
// row i of its waveform, rows without a B column leave it zero.
func ReadCSV(r io.Reader) ([]Samples, error) {
	var result []Samples
	var current *Samples
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(text, "#") {
			continue
		}
		if text == "" {
			current = nil
			continue
		}
		if current == nil {
			result = append(result, Samples{})
			current = &result[len(result)-1]
		}
		fields := strings.Split(text, ",")
		if len(fields) > 2 {
			return nil, fmt.Errorf("line %d: expected 1 or 2 columns, got %d", line, len(fields))
		}
		values := make([]float64, len(fields))
		for i, field := range fields {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			values[i] = v
		}
		current.A = append(current.A, values[0])
		if len(values) == 2 {
			for len(current.B) < len(current.A)-1 {
				current.B = append(current.B, 0)
			}
			current.B = append(current.B, values[1])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

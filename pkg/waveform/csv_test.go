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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	input := `# first
0.5, -0.5
1,1
0

# second, channel A only
0.25
-0.25
`
	samples, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, []float64{0.5, 1, 0}, samples[0].A)
	assert.Equal(t, []float64{-0.5, 1}, samples[0].B)
	assert.Equal(t, []float64{0.25, -0.25}, samples[1].A)
	assert.Empty(t, samples[1].B)
}

func TestReadCSVEmptyColumnKeepsChannelsInStep(t *testing.T) {
	input := `0.1
,0.5
0.2,
0.3,0.25
`
	samples, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, []float64{0.1, 0, 0.2, 0.3}, samples[0].A)
	assert.Equal(t, []float64{0, 0.5, 0, 0.25}, samples[0].B)
}

func TestReadCSVInvalid(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("1,2,3\n"))
	assert.Error(t, err)
	_, err = ReadCSV(strings.NewReader("0.1\nabc\n"))
	assert.Error(t, err)
}

func TestReadCSVEmpty(t *testing.T) {
	samples, err := ReadCSV(strings.NewReader("\n\n# nothing\n"))
	require.NoError(t, err)
	assert.Empty(t, samples)
}

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

package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jinr.ru/greenlab/go-awg/pkg/node"
)

func TestLiteral(t *testing.T) {
	assert.Equal(t, int64(1), literal("1"))
	assert.Equal(t, 0.5, literal("0.5"))
	assert.Equal(t, "on", literal("on"))
}

func TestParsePairs(t *testing.T) {
	settings, err := parsePairs(`[["dev8/sigouts/0/on", 1], ["dev8/sigouts/0/range", 0.5]]`)
	require.NoError(t, err)
	require.Len(t, settings, 2)
	assert.Equal(t, node.IntValue(1), settings[0].Value)
	assert.Equal(t, node.DoubleValue(0.5), settings[1].Value)

	_, err = parsePairs(`[["dev8/sigouts/0/on"]]`)
	assert.Error(t, err)
}

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

package log

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(buf, "warning")
	defer Init(os.Stderr, "info")

	Debug("debug %d", 1)
	Info("info %d", 2)
	Warning("warn %d", 3)
	Error("error %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "debug 1")
	assert.NotContains(t, out, "info 2")
	assert.Contains(t, out, WarningPrefix+"warn 3")
	assert.Contains(t, out, ErrorPrefix+"error 4")
	assert.Contains(t, out, LogPrefix)
	assert.Equal(t, buf, Writer())
}

func TestSetLevel(t *testing.T) {
	require.Error(t, SetLevel("verbose"))
	require.NoError(t, SetLevel("debug"))
	require.NoError(t, SetLevel("info"))
	assert.True(t, ValidLevel("error"))
	assert.False(t, ValidLevel(""))
}

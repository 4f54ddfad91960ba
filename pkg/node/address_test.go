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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		want     string
		segments int
		wildcard bool
	}{
		{"leading slash", "/dev8030/sigouts/0/on", "dev8030/sigouts/0/on", 4, false},
		{"no leading slash", "dev8030/sigouts/0/on", "dev8030/sigouts/0/on", 4, false},
		{"trailing slash", "/awgs/0/single/", "awgs/0/single", 3, false},
		{"wildcard", "/awgs/*/single", "awgs/*/single", 3, true},
		{"case preserved", "DEV8030/SigOuts", "DEV8030/SigOuts", 2, false},
		{"single segment", "zi", "zi", 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Parse(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.String())
			assert.Equal(t, tt.segments, a.Len())
			assert.Equal(t, tt.wildcard, a.IsWildcard())
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, path := range []string{"", "/", "//", "a//b", "awgs/**/single", "awgs/0*/single", "*x"} {
		_, err := Parse(path)
		var invalid ErrInvalidAddress
		assert.True(t, errors.As(err, &invalid), "path %q", path)
	}
}

func TestMatches(t *testing.T) {
	pattern := MustParse("/awgs/*/single")
	assert.True(t, pattern.Matches(MustParse("/awgs/0/single")))
	assert.True(t, pattern.Matches(MustParse("awgs/3/single")))
	assert.False(t, pattern.Matches(MustParse("/awgs/0/extra/single")))
	assert.False(t, pattern.Matches(MustParse("/awgs/0/enable")))
	assert.False(t, pattern.Matches(MustParse("/awgs/0")))

	literal := MustParse("awgs/0/single")
	assert.True(t, literal.Matches(MustParse("/awgs/0/single")))
	assert.False(t, literal.Matches(MustParse("/awgs/1/single")))
}

func TestEqual(t *testing.T) {
	assert.True(t, MustParse("/a/b").Equal(MustParse("a/b/")))
	assert.False(t, MustParse("a/*").Equal(MustParse("a/b")))
	assert.True(t, MustParse("a/*").Equal(MustParse("a/*")))
	assert.False(t, MustParse("a/b").Equal(MustParse("a/b/c")))
}

func TestLiteralPrefixAndJoin(t *testing.T) {
	assert.Equal(t, "dev1/awgs", MustParse("dev1/awgs/*/single").LiteralPrefix().String())
	assert.Equal(t, "dev1/awgs/0", MustParse("dev1/awgs/0").LiteralPrefix().String())
	assert.True(t, MustParse("*/awgs").LiteralPrefix().IsZero())

	joined := MustParse("sigouts/0/on").Join(MustParse("dev8030"))
	assert.Equal(t, "dev8030/sigouts/0/on", joined.String())
	assert.True(t, joined.HasPrefix(MustParse("dev8030/sigouts")))
	assert.False(t, joined.HasPrefix(MustParse("dev8031")))
}

func TestSegmentsIsCopy(t *testing.T) {
	a := MustParse("a/b")
	s := a.Segments()
	s[0] = "x"
	assert.Equal(t, "a/b", a.String())
}

func TestParseAll(t *testing.T) {
	_, err := ParseAll(nil)
	require.Error(t, err)
	addrs, err := ParseAll([]string{"a/b", "/c/*"})
	require.NoError(t, err)
	require.Len(t, addrs, 2)
	assert.Equal(t, "c/*", addrs[1].String())
	_, err = ParseAll([]string{"a/b", "c//d"})
	require.Error(t, err)
}

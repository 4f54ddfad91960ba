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

package device

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jinr.ru/greenlab/go-awg/pkg/node"
)

// recorder is a dispatcher that keeps every batch it is asked to write
type recorder struct {
	batches [][]node.Setting
	values  map[string]interface{}
}

func (r *recorder) Get(paths ...string) (map[string]node.Record, error) {
	result := map[string]node.Record{}
	for _, p := range paths {
		v, err := node.EncodeValue(r.values[p])
		if err != nil {
			return nil, err
		}
		result[p] = node.Record{Value: v}
	}
	return result, nil
}

func (r *recorder) GetValue(path string) (interface{}, error) {
	v, ok := r.values[path]
	if !ok {
		return nil, errors.New("no such node: " + path)
	}
	return v, nil
}

func (r *recorder) Set(path string, value interface{}) error {
	s, err := node.NewSetting(path, value)
	if err != nil {
		return err
	}
	return r.SetMany([]node.Setting{s})
}

func (r *recorder) SetMany(settings []node.Setting) error {
	r.batches = append(r.batches, settings)
	return nil
}

func paths(settings []node.Setting) []string {
	var result []string
	for _, s := range settings {
		result = append(result, s.Address.String())
	}
	return result
}

func TestParseType(t *testing.T) {
	for _, tag := range []string{"hdawg", "HDAWG", "HdAwg"} {
		typ, err := ParseType(tag)
		require.NoError(t, err)
		assert.Equal(t, TypeHDAWG, typ)
	}
	for typ := range Descriptions {
		parsed, err := ParseType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, parsed)
	}
	_, err := ParseType("oscilloscope")
	assert.True(t, errors.As(err, &ErrUnknownType{}))
	assert.Equal(t, "UNKNOWN", TypeUnknown.String())
}

func TestNewDevice(t *testing.T) {
	d, err := NewDevice("DEV8123", TypeHDAWG, &recorder{})
	require.NoError(t, err)
	assert.Equal(t, "dev8123", d.Serial)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, d.Channels())
	assert.Len(t, d.Cores(), 4)

	core, err := d.Core(3)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 7}, core.Channels())

	_, err = d.Core(4)
	assert.True(t, errors.As(err, &ErrNoSuchCore{}))

	mf, err := NewDevice("dev5000", TypeMFLI, &recorder{})
	require.NoError(t, err)
	assert.Empty(t, mf.Cores())
	assert.Equal(t, []int{0}, mf.Channels())

	_, err = NewDevice("dev1/sub", TypeHDAWG, &recorder{})
	assert.True(t, errors.As(err, &node.ErrInvalidAddress{}))
	_, err = NewDevice("dev1", TypeUnknown, &recorder{})
	assert.True(t, errors.As(err, &ErrUnknownType{}))
}

func TestDeviceRelativePaths(t *testing.T) {
	r := &recorder{}
	d, err := NewDevice("dev8", TypeUHFQA, r)
	require.NoError(t, err)

	require.NoError(t, d.Set("sigouts/0/on", 1))
	require.NoError(t, d.Set("/dev8/sigouts/1/on", 1))
	require.NoError(t, d.SetMany([]node.Setting{
		{Address: node.MustParse("sigouts/0/range"), Value: node.DoubleValue(0.5)},
		{Address: node.MustParse("dev8/sigouts/1/range"), Value: node.DoubleValue(1)},
	}))
	require.Len(t, r.batches, 3)
	assert.Equal(t, []string{"dev8/sigouts/0/on"}, paths(r.batches[0]))
	assert.Equal(t, []string{"dev8/sigouts/1/on"}, paths(r.batches[1]))
	assert.Equal(t, []string{"dev8/sigouts/0/range", "dev8/sigouts/1/range"}, paths(r.batches[2]))

	assert.Error(t, d.SetMany([]node.Setting{{Value: node.IntValue(1)}}))
	assert.Error(t, d.Set("sigouts/0/on", struct{}{}))
	assert.Len(t, r.batches, 3)
}

func TestEnableOutputsIsOneBatch(t *testing.T) {
	r := &recorder{}
	d, err := NewDevice("dev8", TypeHDAWG, r)
	require.NoError(t, err)
	require.NoError(t, d.EnableOutputs(true))
	require.Len(t, r.batches, 1)
	require.Len(t, r.batches[0], 8)
	for i, s := range r.batches[0] {
		assert.Equal(t, "dev8/"+NodePath(NodeSigoutOn, i), s.Address.String())
		assert.Equal(t, node.IntValue(1), s.Value)
	}
}

func TestDefaultNodes(t *testing.T) {
	d, err := NewDevice("dev8", TypeUHFQA, &recorder{})
	require.NoError(t, err)
	nodes := d.DefaultNodes()
	// devtype + serial, 2 outputs with on/range, 1 core with 3 flags and the wave slots
	assert.Len(t, nodes, 2+2*2+3+WaveSlots)
	seen := map[string]bool{}
	for _, s := range nodes {
		assert.True(t, s.Address.HasPrefix(node.MustParse("dev8")))
		assert.False(t, seen[s.Address.String()], s.Address.String())
		seen[s.Address.String()] = true
	}
	assert.True(t, seen["dev8/awgs/0/waveform/waves/15"])
	assert.True(t, seen["dev8/features/devtype"])
}

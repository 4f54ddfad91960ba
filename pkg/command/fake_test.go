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

package command

import (
	"errors"
	"sort"

	"jinr.ru/greenlab/go-awg/pkg/node"
)

// memTransport keeps nodes in a map and records every batch it receives
type memTransport struct {
	nodes    map[string]node.Record
	batches  [][]node.Setting
	reads    []string
	failNext error
}

func newMemTransport(paths ...string) *memTransport {
	m := &memTransport{nodes: map[string]node.Record{}}
	for _, p := range paths {
		m.nodes[node.MustParse(p).String()] = node.Record{Value: node.IntValue(0)}
	}
	return m
}

func (m *memTransport) Read(addr node.Address) (node.Record, error) {
	m.reads = append(m.reads, addr.String())
	r, ok := m.nodes[addr.String()]
	if !ok {
		return node.Record{}, errors.New("no such node: " + addr.String())
	}
	return r, nil
}

func (m *memTransport) WriteBatch(settings []node.Setting) error {
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	m.batches = append(m.batches, settings)
	for i, s := range settings {
		m.nodes[s.Address.String()] = node.Record{Timestamp: uint64(i + 1), Value: s.Value}
	}
	return nil
}

func (m *memTransport) EnumerateMatching(pattern node.Address) ([]node.Address, error) {
	var keys []string
	for k := range m.nodes {
		if pattern.Matches(node.MustParse(k)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	result := make([]node.Address, 0, len(keys))
	for _, k := range keys {
		result = append(result, node.MustParse(k))
	}
	return result, nil
}

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

package ifc

import (
	"jinr.ru/greenlab/go-awg/pkg/node"
)

// Transport is the connection to a data server that owns the device nodes
type Transport interface {
	// Read returns the current record of a concrete node
	Read(addr node.Address) (node.Record, error)
	// WriteBatch applies all settings in order or none of them
	WriteBatch(settings []node.Setting) error
	// EnumerateMatching resolves a pattern against the nodes the server knows
	EnumerateMatching(pattern node.Address) ([]node.Address, error)
}

// Dispatcher is the get/set surface device helpers are built on
type Dispatcher interface {
	Get(paths ...string) (map[string]node.Record, error)
	GetValue(path string) (interface{}, error)
	Set(path string, value interface{}) error
	SetMany(settings []node.Setting) error
}

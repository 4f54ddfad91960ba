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
	"net/http"

	commandifc "jinr.ru/greenlab/go-awg/pkg/command/ifc"
	"jinr.ru/greenlab/go-awg/pkg/node"
)

type ApiServer interface {
	Run() error
	Handler() http.Handler
}

// NodeStore is the server side node tree the API is served from
type NodeStore interface {
	commandifc.Transport
	Seed(settings []node.Setting) error
	Devices() ([]string, error)
}

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
	"fmt"
)

type NodeAlias int

const (
	NodeDevType NodeAlias = iota
	NodeSerial
	NodeSigoutOn
	NodeSigoutRange
	NodeAwgEnable
	NodeAwgSingle
	NodeAwgReady
	NodeAwgWave
	NodeAliasLimit
)

// NodeMap holds device relative path templates, indexes are filled in with fmt
var NodeMap = map[NodeAlias]string{
	NodeDevType:     "features/devtype",
	NodeSerial:      "features/serial",
	NodeSigoutOn:    "sigouts/%d/on",
	NodeSigoutRange: "sigouts/%d/range",
	NodeAwgEnable:   "awgs/%d/enable",
	NodeAwgSingle:   "awgs/%d/single",
	NodeAwgReady:    "awgs/%d/ready",
	NodeAwgWave:     "awgs/%d/waveform/waves/%d",
}

// NodePath renders the relative path of alias with the given indexes
func NodePath(alias NodeAlias, index ...interface{}) string {
	return fmt.Sprintf(NodeMap[alias], index...)
}

const (
	// WaveSlots is the number of waveform nodes per AWG core
	WaveSlots = 16
	DefaultSigoutRange = 1.0
)

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

package state

import (
	"fmt"
)

// ErrNodeNotFound returned when a concrete node does not exist in the store
type ErrNodeNotFound struct {
	Path string
}

func (e ErrNodeNotFound) Error() string {
	return fmt.Sprintf("Node not found: %s", e.Path)
}

// ErrNoMatch returned when a wildcard write does not match any node
type ErrNoMatch struct {
	Pattern string
}

func (e ErrNoMatch) Error() string {
	return fmt.Sprintf("No node matches: %s", e.Pattern)
}

// ErrNotUnderDevice returned for addresses with a single segment, nodes always live under a device
type ErrNotUnderDevice struct {
	Path string
}

func (e ErrNotUnderDevice) Error() string {
	return fmt.Sprintf("Node must be under a device: %s", e.Path)
}

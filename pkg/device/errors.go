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

// ErrUnknownType returned when a device type tag is not in the device table
type ErrUnknownType struct {
	Type string
}

func (e ErrUnknownType) Error() string {
	return fmt.Sprintf("Unknown device type: %s", e.Type)
}

// ErrNoSuchCore returned when an AWG core index is out of range for the device
type ErrNoSuchCore struct {
	Serial string
	Index  int
}

func (e ErrNoSuchCore) Error() string {
	return fmt.Sprintf("Device %s has no AWG core %d", e.Serial, e.Index)
}

// ErrQueueFull returned when more waveforms are queued than the core has slots
type ErrQueueFull struct {
	Slots int
}

func (e ErrQueueFull) Error() string {
	return fmt.Sprintf("Waveform queue is full: %d slots", e.Slots)
}

// ErrWaitTimeout returned when the AWG does not finish before the context is done
type ErrWaitTimeout struct {
	Path string
	Err  error
}

func (e ErrWaitTimeout) Error() string {
	return fmt.Sprintf("Timeout while waiting for %s: %s", e.Path, e.Err)
}

func (e ErrWaitTimeout) Unwrap() error {
	return e.Err
}

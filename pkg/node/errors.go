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
	"fmt"
)

// ErrNotConnected returned when a get or set is issued without a transport session
type ErrNotConnected struct{}

func (e ErrNotConnected) Error() string {
	return "Not connected to a data server"
}

// ErrInvalidAddress returned for malformed paths and malformed setting lists
type ErrInvalidAddress struct {
	What string
}

func (e ErrInvalidAddress) Error() string {
	return fmt.Sprintf("Invalid node address: %s", e.What)
}

// ErrInvalidValue returned when a value has no node representation
type ErrInvalidValue struct {
	What string
}

func (e ErrInvalidValue) Error() string {
	return fmt.Sprintf("Invalid node value: %s", e.What)
}

// ErrTransactionConflict returned when a transaction is opened while another one is active
type ErrTransactionConflict struct {
	ID string
}

func (e ErrTransactionConflict) Error() string {
	return fmt.Sprintf("Transaction %s is already active", e.ID)
}

// ErrNoTransaction returned when a finished transaction is committed
type ErrNoTransaction struct {
	ID string
}

func (e ErrNoTransaction) Error() string {
	return fmt.Sprintf("Transaction %s is not active", e.ID)
}

// ErrTransportFailure wraps an error returned by the transport
type ErrTransportFailure struct {
	Op  string
	Err error
}

func (e ErrTransportFailure) Error() string {
	return fmt.Sprintf("Transport %s failed: %s", e.Op, e.Err)
}

func (e ErrTransportFailure) Unwrap() error {
	return e.Err
}

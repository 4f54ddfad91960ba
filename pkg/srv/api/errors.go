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

package api

import (
	"errors"
	"fmt"
	"net/http"

	"jinr.ru/greenlab/go-awg/pkg/node"
	"jinr.ru/greenlab/go-awg/pkg/srv/state"
)

// ErrUnknownOperation returned when a request can not be mapped to a node operation
type ErrUnknownOperation struct {
	What string
}

func (e ErrUnknownOperation) Error() string {
	return fmt.Sprintf("Unknown operation: %s", e.What)
}

// statusOf maps store and node errors to HTTP status codes
func statusOf(err error) int {
	switch {
	case errors.As(err, &node.ErrInvalidAddress{}),
		errors.As(err, &node.ErrInvalidValue{}),
		errors.As(err, &state.ErrNotUnderDevice{}),
		errors.As(err, &ErrUnknownOperation{}):
		return http.StatusBadRequest
	case errors.As(err, &state.ErrNodeNotFound{}),
		errors.As(err, &state.ErrNoMatch{}):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

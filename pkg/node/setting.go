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

// Setting is one pending write
type Setting struct {
	Address Address `json:"path"`
	Value   Value   `json:"value"`
}

func NewSetting(path string, value interface{}) (Setting, error) {
	addr, err := Parse(path)
	if err != nil {
		return Setting{}, err
	}
	v, err := EncodeValue(value)
	if err != nil {
		return Setting{}, err
	}
	return Setting{Address: addr, Value: v}, nil
}

func (s Setting) String() string {
	return fmt.Sprintf("%s=%s", s.Address, s.Value)
}

// ParseSettings converts a loosely typed list of pairs, as decoded from
// JSON like [["dev1/sigouts/0/on", 1], ...], into settings.
// Every element must be a two element list starting with a string path.
func ParseSettings(raw []interface{}) ([]Setting, error) {
	if len(raw) == 0 {
		return nil, ErrInvalidAddress{What: "empty setting list"}
	}
	settings := make([]Setting, 0, len(raw))
	for i, item := range raw {
		pair, ok := item.([]interface{})
		if !ok {
			return nil, ErrInvalidAddress{What: fmt.Sprintf("element %d is not a pair", i)}
		}
		if len(pair) != 2 {
			return nil, ErrInvalidAddress{What: fmt.Sprintf("element %d has %d items, expected 2", i, len(pair))}
		}
		path, ok := pair[0].(string)
		if !ok {
			return nil, ErrInvalidAddress{What: fmt.Sprintf("element %d path is %T, expected string", i, pair[0])}
		}
		s, err := NewSetting(path, pair[1])
		if err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, nil
}

// MarshalText lets addresses be used as JSON strings and map keys
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

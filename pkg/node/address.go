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
	"strings"
)

const (
	Separator = "/"
	Wildcard  = "*"
)

// Address is a parsed node path. A segment equal to Wildcard matches
// any single segment at the same depth.
type Address struct {
	segments []string
}

// Parse splits path on Separator. Empty leading and trailing segments are dropped,
// so "/dev1/sigouts/0/on/" and "dev1/sigouts/0/on" are the same address.
func Parse(path string) (Address, error) {
	trimmed := strings.Trim(path, Separator)
	if trimmed == "" {
		return Address{}, ErrInvalidAddress{What: fmt.Sprintf("empty path %q", path)}
	}
	segments := strings.Split(trimmed, Separator)
	for _, s := range segments {
		if s == "" {
			return Address{}, ErrInvalidAddress{What: fmt.Sprintf("empty segment in %q", path)}
		}
		if s != Wildcard && strings.Contains(s, Wildcard) {
			return Address{}, ErrInvalidAddress{What: fmt.Sprintf("wildcard must be a whole segment in %q", path)}
		}
	}
	return Address{segments: segments}, nil
}

// MustParse is like Parse but panics on error
func MustParse(path string) Address {
	a, err := Parse(path)
	if err != nil {
		panic(err)
	}
	return a
}

// ParseAll parses a list of paths and fails on the first malformed one
func ParseAll(paths []string) ([]Address, error) {
	if len(paths) == 0 {
		return nil, ErrInvalidAddress{What: "no paths given"}
	}
	addrs := make([]Address, 0, len(paths))
	for _, p := range paths {
		a, err := Parse(p)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, a)
	}
	return addrs, nil
}

// String renders the canonical form, segments joined without a leading separator
func (a Address) String() string {
	return strings.Join(a.segments, Separator)
}

// Segments returns a copy of the address segments
func (a Address) Segments() []string {
	return append([]string(nil), a.segments...)
}

func (a Address) Len() int {
	return len(a.segments)
}

// IsZero reports whether the address was never parsed
func (a Address) IsZero() bool {
	return len(a.segments) == 0
}

func (a Address) IsWildcard() bool {
	for _, s := range a.segments {
		if s == Wildcard {
			return true
		}
	}
	return false
}

// Equal compares addresses literal for literal, a wildcard only equals a wildcard
func (a Address) Equal(b Address) bool {
	if len(a.segments) != len(b.segments) {
		return false
	}
	for i := range a.segments {
		if a.segments[i] != b.segments[i] {
			return false
		}
	}
	return true
}

// Matches reports whether the concrete address has the same depth and
// equals every literal segment of a.
func (a Address) Matches(concrete Address) bool {
	if len(a.segments) != len(concrete.segments) {
		return false
	}
	for i, s := range a.segments {
		if s != Wildcard && s != concrete.segments[i] {
			return false
		}
	}
	return true
}

// LiteralPrefix returns the segments before the first wildcard
func (a Address) LiteralPrefix() Address {
	for i, s := range a.segments {
		if s == Wildcard {
			return Address{segments: append([]string(nil), a.segments[:i]...)}
		}
	}
	return Address{segments: a.Segments()}
}

// Join returns prefix followed by the segments of a
func (a Address) Join(prefix Address) Address {
	segments := make([]string, 0, len(prefix.segments)+len(a.segments))
	segments = append(segments, prefix.segments...)
	segments = append(segments, a.segments...)
	return Address{segments: segments}
}

// HasPrefix reports whether the first segments of a are equal to prefix
func (a Address) HasPrefix(prefix Address) bool {
	if len(prefix.segments) > len(a.segments) {
		return false
	}
	for i, s := range prefix.segments {
		if a.segments[i] != s {
			return false
		}
	}
	return true
}

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
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"
)

type Kind string

const (
	KindInt    Kind = "int"
	KindDouble Kind = "double"
	KindString Kind = "string"
	KindVector Kind = "vector"
)

// Value is the tagged representation of everything a node can hold.
// The same shape is used on the wire and in the node store.
type Value struct {
	Kind   Kind    `json:"kind"`
	Int    int64   `json:"int,omitempty"`
	Double float64 `json:"double,omitempty"`
	Text   string  `json:"text,omitempty"`
	Vector []byte  `json:"vector,omitempty"`
}

// byteser is implemented by encoded payloads such as waveforms
type byteser interface {
	Bytes() []byte
}

func IntValue(v int64) Value {
	return Value{Kind: KindInt, Int: v}
}

func DoubleValue(v float64) Value {
	return Value{Kind: KindDouble, Double: v}
}

func StringValue(v string) Value {
	return Value{Kind: KindString, Text: v}
}

func VectorValue(v []byte) Value {
	return Value{Kind: KindVector, Vector: append([]byte(nil), v...)}
}

// EncodeValue normalizes a Go value into a Value.
// Integers widen to int64, bool maps to 0/1, floats widen to float64,
// []int16 is packed little endian into a vector.
func EncodeValue(v interface{}) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, x.Validate()
	case *Value:
		if x == nil {
			return Value{}, ErrInvalidValue{What: "nil value"}
		}
		return *x, x.Validate()
	case bool:
		if x {
			return IntValue(1), nil
		}
		return IntValue(0), nil
	case int:
		return IntValue(int64(x)), nil
	case int8:
		return IntValue(int64(x)), nil
	case int16:
		return IntValue(int64(x)), nil
	case int32:
		return IntValue(int64(x)), nil
	case int64:
		return IntValue(x), nil
	case uint:
		return encodeUint(uint64(x))
	case uint8:
		return IntValue(int64(x)), nil
	case uint16:
		return IntValue(int64(x)), nil
	case uint32:
		return IntValue(int64(x)), nil
	case uint64:
		return encodeUint(x)
	case float32:
		return DoubleValue(float64(x)), nil
	case float64:
		return DoubleValue(x), nil
	case json.Number:
		if i, err := strconv.ParseInt(string(x), 10, 64); err == nil {
			return IntValue(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return Value{}, ErrInvalidValue{What: fmt.Sprintf("bad number %q", string(x))}
		}
		return DoubleValue(f), nil
	case string:
		sv := StringValue(x)
		return sv, sv.Validate()
	case []byte:
		return VectorValue(x), nil
	case []int16:
		buf := make([]byte, 2*len(x))
		for i, s := range x {
			binary.LittleEndian.PutUint16(buf[2*i:], uint16(s))
		}
		return Value{Kind: KindVector, Vector: buf}, nil
	case byteser:
		return Value{Kind: KindVector, Vector: x.Bytes()}, nil
	case nil:
		return Value{}, ErrInvalidValue{What: "nil value"}
	}
	return Value{}, ErrInvalidValue{What: fmt.Sprintf("unsupported type %T", v)}
}

func encodeUint(v uint64) (Value, error) {
	if v > math.MaxInt64 {
		return Value{}, ErrInvalidValue{What: fmt.Sprintf("%d overflows int64", v)}
	}
	return IntValue(int64(v)), nil
}

// Validate checks the kind and that string values are valid UTF-8.
// Binary data belongs in vectors.
func (v Value) Validate() error {
	switch v.Kind {
	case KindString:
		if !utf8.ValidString(v.Text) {
			return ErrInvalidValue{What: fmt.Sprintf("string value is not valid UTF-8: %q", v.Text)}
		}
		return nil
	case KindInt, KindDouble, KindVector:
		return nil
	}
	return ErrInvalidValue{What: fmt.Sprintf("unknown kind %q", v.Kind)}
}

// Native returns the bare Go value: int64, float64, string or []byte
func (v Value) Native() interface{} {
	switch v.Kind {
	case KindInt:
		return v.Int
	case KindDouble:
		return v.Double
	case KindString:
		return v.Text
	case KindVector:
		return append([]byte(nil), v.Vector...)
	}
	return nil
}

func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindDouble:
		return strconv.FormatFloat(v.Double, 'g', -1, 64)
	case KindString:
		return v.Text
	case KindVector:
		return fmt.Sprintf("<vector %d bytes>", len(v.Vector))
	}
	return "<invalid>"
}

// Record is a node value together with the time it was last written
type Record struct {
	Timestamp uint64 `json:"timestamp"`
	Value     Value  `json:"value"`
}

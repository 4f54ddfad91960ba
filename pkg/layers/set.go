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

package layers

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"jinr.ru/greenlab/go-awg/pkg/node"
)

const (
	// SetLayerNum identifies the layer
	SetLayerNum = 1991
)

// wire codes of value kinds
const (
	kindInt    uint8 = 1
	kindDouble uint8 = 2
	kindString uint8 = 3
	kindVector uint8 = 4
)

var kindCodes = map[node.Kind]uint8{
	node.KindInt:    kindInt,
	node.KindDouble: kindDouble,
	node.KindString: kindString,
	node.KindVector: kindVector,
}

// SetLayer carries an ordered list of node writes.
// Each operation is: path length (uint16), path, kind (uint8), value.
// Int and double values take 8 bytes, strings and vectors are prefixed
// with their length as uint32. All integers are little endian.
type SetLayer struct {
	layers.BaseLayer
	Settings []node.Setting
}

var SetLayerType = gopacket.RegisterLayerType(SetLayerNum,
	gopacket.LayerTypeMetadata{Name: "SetLayerType", Decoder: gopacket.DecodeFunc(DecodeSetLayer)})

// LayerType returns the type of the set layer in the layer catalog
func (s *SetLayer) LayerType() gopacket.LayerType {
	return SetLayerType
}

func opSize(st node.Setting) int {
	size := 2 + len(st.Address.String()) + 1
	switch st.Value.Kind {
	case node.KindInt, node.KindDouble:
		size += 8
	case node.KindString:
		size += 4 + len(st.Value.Text)
	case node.KindVector:
		size += 4 + len(st.Value.Vector)
	}
	return size
}

// Size returns the number of bytes Serialize writes
func (s *SetLayer) Size() int {
	size := 0
	for _, st := range s.Settings {
		size += opSize(st)
	}
	return size
}

// Serialize writes all operations to buf which must be at least Size() bytes
func (s *SetLayer) Serialize(buf []byte) error {
	offset := 0
	for _, st := range s.Settings {
		path := st.Address.String()
		if len(path) > math.MaxUint16 {
			return fmt.Errorf("path too long: %d bytes", len(path))
		}
		code, ok := kindCodes[st.Value.Kind]
		if !ok {
			return fmt.Errorf("unknown value kind %q for %s", st.Value.Kind, path)
		}
		binary.LittleEndian.PutUint16(buf[offset:], uint16(len(path)))
		offset += 2
		offset += copy(buf[offset:], path)
		buf[offset] = code
		offset++
		switch code {
		case kindInt:
			binary.LittleEndian.PutUint64(buf[offset:], uint64(st.Value.Int))
			offset += 8
		case kindDouble:
			binary.LittleEndian.PutUint64(buf[offset:], math.Float64bits(st.Value.Double))
			offset += 8
		case kindString:
			binary.LittleEndian.PutUint32(buf[offset:], uint32(len(st.Value.Text)))
			offset += 4
			offset += copy(buf[offset:], st.Value.Text)
		case kindVector:
			binary.LittleEndian.PutUint32(buf[offset:], uint32(len(st.Value.Vector)))
			offset += 4
			offset += copy(buf[offset:], st.Value.Vector)
		}
	}
	return nil
}

// SerializeTo serializes the set layer into bytes and writes the bytes to the SerializeBuffer
func (s *SetLayer) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	bytes, err := b.AppendBytes(s.Size())
	if err != nil {
		return err
	}
	return s.Serialize(bytes)
}

func need(data []byte, offset, n int) error {
	if offset+n > len(data) {
		return fmt.Errorf("set layer truncated at byte %d", offset)
	}
	return nil
}

func (s *SetLayer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	s.BaseLayer = layers.BaseLayer{
		Contents: data[:],
		Payload:  []byte{},
	}
	s.Settings = nil
	offset := 0
	for offset < len(data) {
		if err := need(data, offset, 2); err != nil {
			df.SetTruncated()
			return err
		}
		pathLen := int(binary.LittleEndian.Uint16(data[offset:]))
		offset += 2
		if err := need(data, offset, pathLen+1); err != nil {
			df.SetTruncated()
			return err
		}
		addr, err := node.Parse(string(data[offset : offset+pathLen]))
		if err != nil {
			return err
		}
		offset += pathLen
		code := data[offset]
		offset++

		var value node.Value
		switch code {
		case kindInt, kindDouble:
			if err := need(data, offset, 8); err != nil {
				df.SetTruncated()
				return err
			}
			word := binary.LittleEndian.Uint64(data[offset:])
			offset += 8
			if code == kindInt {
				value = node.IntValue(int64(word))
			} else {
				value = node.DoubleValue(math.Float64frombits(word))
			}
		case kindString, kindVector:
			if err := need(data, offset, 4); err != nil {
				df.SetTruncated()
				return err
			}
			size := int(binary.LittleEndian.Uint32(data[offset:]))
			offset += 4
			if err := need(data, offset, size); err != nil {
				df.SetTruncated()
				return err
			}
			if code == kindString {
				value = node.StringValue(string(data[offset : offset+size]))
			} else {
				value = node.VectorValue(data[offset : offset+size])
			}
			offset += size
		default:
			return fmt.Errorf("unknown value kind code %d for %s", code, addr)
		}
		s.Settings = append(s.Settings, node.Setting{Address: addr, Value: value})
	}
	return nil
}

func DecodeSetLayer(data []byte, p gopacket.PacketBuilder) error {
	s := &SetLayer{}
	err := s.DecodeFromBytes(data, p)
	if err != nil {
		return err
	}
	p.AddLayer(s)
	return nil
}

// EncodeSetRequest serializes settings into one set request frame
func EncodeSetRequest(settings []node.Setting, seq uint16) ([]byte, error) {
	if len(settings) > math.MaxUint16 {
		return nil, fmt.Errorf("too many settings in one frame: %d", len(settings))
	}
	frame := &FrameLayer{}
	frame.Type = FrameTypeSetRequest
	frame.Sync = FrameSync
	frame.Seq = seq
	frame.Count = uint16(len(settings))
	frame.Src = FrameHostAddr
	frame.Dst = FrameServerAddr

	set := &SetLayer{Settings: settings}

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{ComputeChecksums: true}
	if err := gopacket.SerializeLayers(buf, opts, frame, set); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeSetRequest parses a set request frame and returns its sequence number and settings
func DecodeSetRequest(data []byte) (uint16, []node.Setting, error) {
	packet := gopacket.NewPacket(data, FrameLayerType, gopacket.Default)
	if errLayer := packet.ErrorLayer(); errLayer != nil {
		return 0, nil, errLayer.Error()
	}
	frameLayer := packet.Layer(FrameLayerType)
	if frameLayer == nil {
		return 0, nil, fmt.Errorf("not a frame")
	}
	frame := frameLayer.(*FrameLayer)
	if frame.Type != FrameTypeSetRequest {
		return 0, nil, fmt.Errorf("unexpected frame type %s", frame.Type)
	}
	setLayer := packet.Layer(SetLayerType)
	if setLayer == nil && frame.Count == 0 {
		return frame.Seq, nil, nil
	}
	if setLayer == nil {
		return 0, nil, fmt.Errorf("frame %d has no set layer", frame.Seq)
	}
	set := setLayer.(*SetLayer)
	if len(set.Settings) != int(frame.Count) {
		return 0, nil, fmt.Errorf("frame %d announces %d settings, carries %d", frame.Seq, frame.Count, len(set.Settings))
	}
	return frame.Seq, set.Settings, nil
}

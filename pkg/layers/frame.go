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
	"hash/crc32"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"jinr.ru/greenlab/go-awg/pkg/log"
)

const (
	// FrameLayerNum identifies the layer
	FrameLayerNum = 1990
	// FrameSync is a magic number that appears in the beginning of each frame
	FrameSync = 0x2A50
	// FrameHeaderSize is the size of the frame header in bytes
	FrameHeaderSize = 12
	// FrameCrcSize is the size of the crc32 trailer in bytes
	FrameCrcSize = 4

	FrameHostAddr   = 1
	FrameServerAddr = 0xfefe
)

type FrameType uint16

const (
	FrameTypeSetRequest FrameType = 0x0201
)

func init() {
	initFrameTypes()
}

type errorDecoderForFrameType FrameType

func (e errorDecoderForFrameType) Decode(data []byte, p gopacket.PacketBuilder) error {
	return e
}

func (e errorDecoderForFrameType) Error() string {
	return fmt.Sprintf("Unable to decode frame type 0x%04x", uint16(e))
}

var FrameMetadata = map[FrameType]layers.EnumMetadata{}

func initFrameTypes() {
	FrameMetadata[FrameTypeSetRequest] = layers.EnumMetadata{
		DecodeWith: gopacket.DecodeFunc(DecodeSetLayer),
		Name:       "SetRequest",
		LayerType:  SetLayerType,
	}
}

func (t FrameType) metadata() layers.EnumMetadata {
	if m, ok := FrameMetadata[t]; ok {
		return m
	}
	return layers.EnumMetadata{DecodeWith: errorDecoderForFrameType(t), Name: "UnknownFrameType"}
}

// LayerType returns FrameMetadata.LayerType
func (t FrameType) LayerType() gopacket.LayerType {
	return t.metadata().LayerType
}

// Decode calls FrameMetadata.DecodeWith's decoder
func (t FrameType) Decode(data []byte, p gopacket.PacketBuilder) error {
	return t.metadata().DecodeWith.Decode(data, p)
}

// String returns FrameMetadata.Name
func (t FrameType) String() string {
	return t.metadata().Name
}

type FrameHeader struct {
	Type  FrameType
	Sync  uint16
	Seq   uint16
	Count uint16 // number of operations in the payload
	Src   uint16
	Dst   uint16
}

// FrameLayer wraps one batch of operations. The trailer is the crc32 of
// the header and the payload.
type FrameLayer struct {
	layers.BaseLayer
	FrameHeader
	Crc uint32
}

var FrameLayerType = gopacket.RegisterLayerType(FrameLayerNum,
	gopacket.LayerTypeMetadata{Name: "FrameLayerType", Decoder: gopacket.DecodeFunc(decodeFrameLayer)})

func (f *FrameLayer) LayerType() gopacket.LayerType {
	return FrameLayerType
}

// SerializeHeader serializes only the frame header to a buffer
func (f *FrameLayer) SerializeHeader(buf []byte) {
	binary.LittleEndian.PutUint16(buf[0:2], uint16(f.Type))
	binary.LittleEndian.PutUint16(buf[2:4], f.Sync)
	binary.LittleEndian.PutUint16(buf[4:6], f.Seq)
	binary.LittleEndian.PutUint16(buf[6:8], f.Count)
	binary.LittleEndian.PutUint16(buf[8:10], f.Src)
	binary.LittleEndian.PutUint16(buf[10:12], f.Dst)
}

// SerializeTo prepends the header and appends the crc trailer.
// With opts.ComputeChecksums the crc is calculated over the header and
// whatever payload was serialized before this layer.
func (f *FrameLayer) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	headerBytes, err := b.PrependBytes(FrameHeaderSize)
	if err != nil {
		return err
	}
	f.SerializeHeader(headerBytes)

	if opts.ComputeChecksums {
		f.Crc = crc32.ChecksumIEEE(b.Bytes())
	}
	tailBytes, err := b.AppendBytes(FrameCrcSize)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(tailBytes, f.Crc)
	return nil
}

// DecodeFromBytes attempts to decode the byte slice as a frame
func (f *FrameLayer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if len(data) < FrameHeaderSize+FrameCrcSize {
		df.SetTruncated()
		return fmt.Errorf("frame too short: %d bytes", len(data))
	}
	if sync := binary.LittleEndian.Uint16(data[2:4]); sync != FrameSync {
		return fmt.Errorf("wrong frame sync 0x%04x, must be 0x%04x", sync, FrameSync)
	}

	f.BaseLayer = layers.BaseLayer{
		Contents: data[:FrameHeaderSize],
		Payload:  data[FrameHeaderSize : len(data)-FrameCrcSize],
	}
	f.Type = FrameType(binary.LittleEndian.Uint16(data[0:2]))
	f.Sync = binary.LittleEndian.Uint16(data[2:4])
	f.Seq = binary.LittleEndian.Uint16(data[4:6])
	f.Count = binary.LittleEndian.Uint16(data[6:8])
	f.Src = binary.LittleEndian.Uint16(data[8:10])
	f.Dst = binary.LittleEndian.Uint16(data[10:12])
	f.Crc = binary.LittleEndian.Uint32(data[len(data)-FrameCrcSize:])

	if crc := crc32.ChecksumIEEE(data[:len(data)-FrameCrcSize]); crc != f.Crc {
		return fmt.Errorf("wrong frame crc 0x%08x, computed 0x%08x", f.Crc, crc)
	}
	return nil
}

func (f *FrameLayer) NextLayerType() gopacket.LayerType {
	return f.Type.LayerType()
}

func decodeFrameLayer(data []byte, p gopacket.PacketBuilder) error {
	f := &FrameLayer{}
	err := f.DecodeFromBytes(data, p)
	if err != nil {
		log.Error("Error while decoding frame layer: %s", err)
		return err
	}
	p.AddLayer(f)
	return p.NextDecoder(f.Type)
}

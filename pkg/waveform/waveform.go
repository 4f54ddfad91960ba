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

package waveform

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

const (
	// Granularity is the sample count every buffer length is a multiple of
	Granularity = 16
	// MinLength is the shortest waveform the sequencer can schedule
	MinLength = 32
)

// BufferLength returns the per channel buffer length for n samples:
// the smallest multiple of Granularity not less than n and not less than MinLength.
func BufferLength(n int) int {
	if n < 0 {
		n = 0
	}
	length := (n + Granularity - 1) / Granularity * Granularity
	if length < MinLength {
		length = MinLength
	}
	return length
}

// Waveform is an encoded pair of channels ready to be written to an AWG waveform node.
// It is immutable once built.
type Waveform struct {
	channelA   []float64
	channelB   []float64
	alignStart bool
	length     int
	data       []int16
}

// New builds a waveform from two channels. Either channel may be empty,
// an empty channel is played as zeros.
// When alignStart is true the samples of each channel occupy the beginning
// of the buffer, otherwise they are shifted to its end.
func New(channelA, channelB []float64, alignStart bool) *Waveform {
	w := &Waveform{
		channelA:   append([]float64(nil), channelA...),
		channelB:   append([]float64(nil), channelB...),
		alignStart: alignStart,
	}
	n := len(w.channelA)
	if len(w.channelB) > n {
		n = len(w.channelB)
	}
	w.length = BufferLength(n)
	w.data = make([]int16, 2*w.length)
	w.fill(w.channelA, 0)
	w.fill(w.channelB, 1)
	return w
}

// fill writes the quantized samples of one channel into its interleaved slots
func (w *Waveform) fill(samples []float64, slot int) {
	offset := 0
	if !w.alignStart {
		offset = w.length - len(samples)
	}
	for i, s := range samples {
		w.data[2*(offset+i)+slot] = Quantize(s)
	}
}

// BufferLength returns the number of samples per channel
func (w *Waveform) BufferLength() int {
	return w.length
}

// Len returns the number of interleaved samples, i.e. 2*BufferLength()
func (w *Waveform) Len() int {
	return len(w.data)
}

// AlignStart ...
func (w *Waveform) AlignStart() bool {
	return w.alignStart
}

// ChannelA returns a copy of the samples the waveform was built from
func (w *Waveform) ChannelA() []float64 {
	return append([]float64(nil), w.channelA...)
}

// ChannelB returns a copy of the samples the waveform was built from
func (w *Waveform) ChannelB() []float64 {
	return append([]float64(nil), w.channelB...)
}

// Data returns a copy of the interleaved quantized samples
func (w *Waveform) Data() []int16 {
	return append([]int16(nil), w.data...)
}

// Bytes returns the interleaved samples as a little endian byte stream
func (w *Waveform) Bytes() []byte {
	buf := make([]byte, 2*len(w.data))
	for i, s := range w.data {
		binary.LittleEndian.PutUint16(buf[2*i:2*i+2], uint16(s))
	}
	return buf
}

// Hash is the xxhash of Bytes, two waveforms with equal encoded data have equal hashes
func (w *Waveform) Hash() uint64 {
	return xxhash.Sum64(w.Bytes())
}

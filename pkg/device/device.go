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
	"strings"

	"jinr.ru/greenlab/go-awg/pkg/command/ifc"
	"jinr.ru/greenlab/go-awg/pkg/node"
)

type Type int

const (
	TypeUnknown Type = iota
	TypeHDAWG
	TypeUHFQA
	TypeUHFLI
	TypeMFLI
	TypeSHFSG
)

var typeNames = map[Type]string{
	TypeHDAWG: "HDAWG",
	TypeUHFQA: "UHFQA",
	TypeUHFLI: "UHFLI",
	TypeMFLI:  "MFLI",
	TypeSHFSG: "SHFSG",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseType maps a device type tag like "hdawg" to a Type, ignoring case
func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if strings.EqualFold(name, s) {
			return t, nil
		}
	}
	return TypeUnknown, ErrUnknownType{Type: s}
}

// Description is what the core needs to know about a device model
type Description struct {
	NumChannels int
	NumCores    int
}

// ChannelsPerCore returns how many signal outputs one AWG core drives
func (d Description) ChannelsPerCore() int {
	if d.NumCores == 0 {
		return 0
	}
	return d.NumChannels / d.NumCores
}

var Descriptions = map[Type]Description{
	TypeHDAWG: {NumChannels: 8, NumCores: 4},
	TypeUHFQA: {NumChannels: 2, NumCores: 1},
	TypeUHFLI: {NumChannels: 2, NumCores: 1},
	TypeMFLI:  {NumChannels: 1, NumCores: 0},
	TypeSHFSG: {NumChannels: 8, NumCores: 8},
}

// Device is one instrument reachable through a dispatcher.
// Paths given to its methods are relative to the device serial.
type Device struct {
	Serial string
	Type   Type
	Description
	dispatcher ifc.Dispatcher
	prefix     node.Address
	cores      []*AWGCore
}

// NewDevice ...
func NewDevice(serial string, t Type, dispatcher ifc.Dispatcher) (*Device, error) {
	description, ok := Descriptions[t]
	if !ok {
		return nil, ErrUnknownType{Type: t.String()}
	}
	prefix, err := node.Parse(strings.ToLower(serial))
	if err != nil {
		return nil, err
	}
	if prefix.Len() != 1 || prefix.IsWildcard() {
		return nil, node.ErrInvalidAddress{What: "device serial must be a single literal segment: " + serial}
	}
	d := &Device{
		Serial:      prefix.String(),
		Type:        t,
		Description: description,
		dispatcher:  dispatcher,
		prefix:      prefix,
	}
	for i := 0; i < description.NumCores; i++ {
		d.cores = append(d.cores, newAWGCore(d, i))
	}
	return d, nil
}

// GetName ...
func (d *Device) GetName() string {
	return d.Serial
}

// GetType ...
func (d *Device) GetType() string {
	return d.Type.String()
}

// Channels returns the ordered logical sub-channel identifiers
func (d *Device) Channels() []int {
	ids := make([]int, d.NumChannels)
	for i := range ids {
		ids[i] = i
	}
	return ids
}

// Cores ...
func (d *Device) Cores() []*AWGCore {
	return append([]*AWGCore(nil), d.cores...)
}

// Core returns AWG core i
func (d *Device) Core(i int) (*AWGCore, error) {
	if i < 0 || i >= len(d.cores) {
		return nil, ErrNoSuchCore{Serial: d.Serial, Index: i}
	}
	return d.cores[i], nil
}

// Address returns the absolute address of a device relative path
func (d *Device) Address(path string) (node.Address, error) {
	rel, err := node.Parse(path)
	if err != nil {
		return node.Address{}, err
	}
	if rel.HasPrefix(d.prefix) {
		return rel, nil
	}
	return rel.Join(d.prefix), nil
}

// Path is like Address but returns the canonical string
func (d *Device) Path(path string) (string, error) {
	addr, err := d.Address(path)
	if err != nil {
		return "", err
	}
	return addr.String(), nil
}

// Set ...
func (d *Device) Set(path string, value interface{}) error {
	s, err := d.Setting(path, value)
	if err != nil {
		return err
	}
	return d.dispatcher.SetMany([]node.Setting{s})
}

// Setting builds an absolute setting from a device relative path
func (d *Device) Setting(path string, value interface{}) (node.Setting, error) {
	addr, err := d.Address(path)
	if err != nil {
		return node.Setting{}, err
	}
	v, err := node.EncodeValue(value)
	if err != nil {
		return node.Setting{}, err
	}
	return node.Setting{Address: addr, Value: v}, nil
}

// SetMany prefixes every setting with the device serial and writes them as one batch
func (d *Device) SetMany(settings []node.Setting) error {
	absolute := make([]node.Setting, 0, len(settings))
	for _, s := range settings {
		if s.Address.IsZero() {
			return node.ErrInvalidAddress{What: "setting without address"}
		}
		if !s.Address.HasPrefix(d.prefix) {
			s.Address = s.Address.Join(d.prefix)
		}
		absolute = append(absolute, s)
	}
	return d.dispatcher.SetMany(absolute)
}

// Get ...
func (d *Device) Get(paths ...string) (map[string]node.Record, error) {
	absolute := make([]string, 0, len(paths))
	for _, p := range paths {
		a, err := d.Path(p)
		if err != nil {
			return nil, err
		}
		absolute = append(absolute, a)
	}
	return d.dispatcher.Get(absolute...)
}

// GetValue ...
func (d *Device) GetValue(path string) (interface{}, error) {
	a, err := d.Path(path)
	if err != nil {
		return nil, err
	}
	return d.dispatcher.GetValue(a)
}

// EnableOutputs switches all signal outputs with one batched write
func (d *Device) EnableOutputs(on bool) error {
	settings := make([]node.Setting, 0, d.NumChannels)
	for _, ch := range d.Channels() {
		s, err := d.Setting(NodePath(NodeSigoutOn, ch), on)
		if err != nil {
			return err
		}
		settings = append(settings, s)
	}
	if len(settings) == 0 {
		return nil
	}
	return d.dispatcher.SetMany(settings)
}

// DefaultNodes returns the nodes a data server exposes for this device with their initial values
func (d *Device) DefaultNodes() []node.Setting {
	var settings []node.Setting
	add := func(path string, value node.Value) {
		settings = append(settings, node.Setting{Address: node.MustParse(path).Join(d.prefix), Value: value})
	}
	add(NodePath(NodeDevType), node.StringValue(d.Type.String()))
	add(NodePath(NodeSerial), node.StringValue(d.Serial))
	for _, ch := range d.Channels() {
		add(NodePath(NodeSigoutOn, ch), node.IntValue(0))
		add(NodePath(NodeSigoutRange, ch), node.DoubleValue(DefaultSigoutRange))
	}
	for i := range d.cores {
		add(NodePath(NodeAwgEnable, i), node.IntValue(0))
		add(NodePath(NodeAwgSingle, i), node.IntValue(0))
		add(NodePath(NodeAwgReady, i), node.IntValue(1))
		for slot := 0; slot < WaveSlots; slot++ {
			add(NodePath(NodeAwgWave, i, slot), node.VectorValue(nil))
		}
	}
	return settings
}

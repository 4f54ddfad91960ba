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

package command

import (
	"sync"

	"jinr.ru/greenlab/go-awg/pkg/command/ifc"
	"jinr.ru/greenlab/go-awg/pkg/log"
	"jinr.ru/greenlab/go-awg/pkg/node"
)

// Dispatcher routes get and set calls to a transport.
// While a transaction is open, sets are accumulated instead of being sent.
// One dispatcher serves one connection, calls are serialized.
type Dispatcher struct {
	mu        sync.Mutex
	transport ifc.Transport
	active    *Transaction
}

var _ ifc.Dispatcher = &Dispatcher{}

// NewDispatcher returns a dispatcher bound to t. A nil t leaves it unconnected.
func NewDispatcher(t ifc.Transport) *Dispatcher {
	return &Dispatcher{transport: t}
}

// Connect ...
func (d *Dispatcher) Connect(t ifc.Transport) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.transport = t
}

// Disconnect drops the transport. An open transaction stays open and
// fails with ErrNotConnected on commit.
func (d *Dispatcher) Disconnect() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.transport = nil
}

func (d *Dispatcher) Connected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.transport != nil
}

// InTransaction reports whether sets are currently being accumulated
func (d *Dispatcher) InTransaction() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active != nil
}

// resolve expands wildcard addresses, concrete ones are passed through
func (d *Dispatcher) resolve(addrs []node.Address) ([]node.Address, error) {
	var result []node.Address
	for _, a := range addrs {
		if !a.IsWildcard() {
			result = append(result, a)
			continue
		}
		matched, err := d.transport.EnumerateMatching(a)
		if err != nil {
			return nil, node.ErrTransportFailure{Op: "enumerate", Err: err}
		}
		result = append(result, matched...)
	}
	return result, nil
}

// read resolves paths and reads every node in enumeration order
func (d *Dispatcher) read(paths []string) ([]node.Address, []node.Record, error) {
	addrs, err := node.ParseAll(paths)
	if err != nil {
		return nil, nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.transport == nil {
		return nil, nil, node.ErrNotConnected{}
	}
	concrete, err := d.resolve(addrs)
	if err != nil {
		return nil, nil, err
	}
	records := make([]node.Record, 0, len(concrete))
	for _, a := range concrete {
		r, err := d.transport.Read(a)
		if err != nil {
			return nil, nil, node.ErrTransportFailure{Op: "read", Err: err}
		}
		records = append(records, r)
	}
	return concrete, records, nil
}

// Get reads the given nodes. Wildcard paths are expanded by the transport.
// The result maps canonical paths to their records.
func (d *Dispatcher) Get(paths ...string) (map[string]node.Record, error) {
	addrs, records, err := d.read(paths)
	if err != nil {
		return nil, err
	}
	result := make(map[string]node.Record, len(addrs))
	for i, a := range addrs {
		result[a.String()] = records[i]
	}
	return result, nil
}

// GetValues is like Get but returns only the bare values,
// in the order the paths were given and the transport enumerated them.
func (d *Dispatcher) GetValues(paths ...string) ([]interface{}, error) {
	_, records, err := d.read(paths)
	if err != nil {
		return nil, err
	}
	values := make([]interface{}, 0, len(records))
	for _, r := range records {
		values = append(values, r.Value.Native())
	}
	return values, nil
}

// GetValue returns the bare value of one concrete node
func (d *Dispatcher) GetValue(path string) (interface{}, error) {
	addr, err := node.Parse(path)
	if err != nil {
		return nil, err
	}
	if addr.IsWildcard() {
		return nil, node.ErrInvalidAddress{What: "wildcard in single value read: " + path}
	}
	values, err := d.GetValues(path)
	if err != nil {
		return nil, err
	}
	return values[0], nil
}

// Set writes one node
func (d *Dispatcher) Set(path string, value interface{}) error {
	s, err := node.NewSetting(path, value)
	if err != nil {
		return err
	}
	return d.SetMany([]node.Setting{s})
}

// SetMany writes all settings with one transport call, or appends them
// to the open transaction.
func (d *Dispatcher) SetMany(settings []node.Setting) error {
	if len(settings) == 0 {
		return node.ErrInvalidAddress{What: "empty setting list"}
	}
	for _, s := range settings {
		if s.Address.IsZero() {
			return node.ErrInvalidAddress{What: "setting without address"}
		}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.transport == nil {
		return node.ErrNotConnected{}
	}
	if d.active != nil {
		d.active.batch.Append(settings...)
		return nil
	}
	log.Debug("Writing %d settings", len(settings))
	if err := d.transport.WriteBatch(append([]node.Setting(nil), settings...)); err != nil {
		return node.ErrTransportFailure{Op: "write", Err: err}
	}
	return nil
}

// Begin opens a transaction. Only one transaction may be open per dispatcher.
func (d *Dispatcher) Begin() (*Transaction, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.transport == nil {
		return nil, node.ErrNotConnected{}
	}
	if d.active != nil {
		return nil, node.ErrTransactionConflict{ID: d.active.ID}
	}
	d.active = newTransaction(d)
	log.Debug("Transaction %s: opened", d.active.ID)
	return d.active, nil
}

// Transaction runs fn with a transaction open. The batch is committed when fn
// returns nil and aborted when fn returns an error or panics.
func (d *Dispatcher) Transaction(fn func() error) error {
	t, err := d.Begin()
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			t.Abort()
		}
	}()
	if err := fn(); err != nil {
		return err
	}
	committed = true
	return t.Commit()
}

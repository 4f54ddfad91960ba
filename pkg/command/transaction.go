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
	"github.com/google/uuid"

	"jinr.ru/greenlab/go-awg/pkg/log"
	"jinr.ru/greenlab/go-awg/pkg/node"
)

// Batch is an ordered list of pending writes. Entries are never merged,
// conflicting writes to the same node are all sent in call order.
type Batch struct {
	settings []node.Setting
}

func (b *Batch) Append(settings ...node.Setting) {
	b.settings = append(b.settings, settings...)
}

func (b *Batch) Len() int {
	return len(b.settings)
}

// Settings returns a copy of the pending writes
func (b *Batch) Settings() []node.Setting {
	return append([]node.Setting(nil), b.settings...)
}

func (b *Batch) reset() {
	b.settings = nil
}

// Transaction is the handle of an open batch.
// It is finished exactly once, either by Commit or by Abort.
type Transaction struct {
	ID         string
	dispatcher *Dispatcher
	batch      *Batch
	done       bool
}

func newTransaction(d *Dispatcher) *Transaction {
	return &Transaction{
		ID:         uuid.New().String(),
		dispatcher: d,
		batch:      &Batch{},
	}
}

// Commit flushes the batch with one WriteBatch call and releases the dispatcher.
// The dispatcher is released even if the transport fails.
func (t *Transaction) Commit() error {
	d := t.dispatcher
	d.mu.Lock()
	defer d.mu.Unlock()
	if t.done {
		return node.ErrNoTransaction{ID: t.ID}
	}
	t.done = true
	d.active = nil
	settings := t.batch.Settings()
	t.batch.reset()

	if len(settings) == 0 {
		log.Debug("Transaction %s: nothing to flush", t.ID)
		return nil
	}
	if d.transport == nil {
		return node.ErrNotConnected{}
	}
	log.Debug("Transaction %s: flushing %d settings", t.ID, len(settings))
	if err := d.transport.WriteBatch(settings); err != nil {
		return node.ErrTransportFailure{Op: "write", Err: err}
	}
	return nil
}

// Abort discards pending writes. It is a no-op on a finished transaction.
func (t *Transaction) Abort() {
	d := t.dispatcher
	d.mu.Lock()
	defer d.mu.Unlock()
	if t.done {
		return
	}
	t.done = true
	d.active = nil
	log.Debug("Transaction %s: aborted, %d settings dropped", t.ID, t.batch.Len())
	t.batch.reset()
}

// Pending returns the writes accumulated so far
func (t *Transaction) Pending() []node.Setting {
	t.dispatcher.mu.Lock()
	defer t.dispatcher.mu.Unlock()
	return t.batch.Settings()
}

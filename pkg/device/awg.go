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
	"context"
	"fmt"
	"sync"
	"time"

	"jinr.ru/greenlab/go-awg/pkg/log"
	"jinr.ru/greenlab/go-awg/pkg/node"
	"jinr.ru/greenlab/go-awg/pkg/waveform"
)

const (
	DefaultPollInterval = 10 * time.Millisecond
)

// AWGCore is one arbitrary waveform generator of a device.
// Waveforms are queued locally and written to the device by Upload.
type AWGCore struct {
	device *Device
	index  int
	mu     sync.Mutex
	queue  []*waveform.Waveform
}

func newAWGCore(d *Device, index int) *AWGCore {
	return &AWGCore{
		device: d,
		index:  index,
	}
}

// Index ...
func (c *AWGCore) Index() int {
	return c.index
}

// Channels returns the signal outputs driven by the core
func (c *AWGCore) Channels() []int {
	n := c.device.ChannelsPerCore()
	ids := make([]int, n)
	for i := range ids {
		ids[i] = c.index*n + i
	}
	return ids
}

// Queue encodes a waveform and appends it to the upload queue
func (c *AWGCore) Queue(channelA, channelB []float64, alignStart bool) (*waveform.Waveform, error) {
	w := waveform.New(channelA, channelB, alignStart)
	if err := c.QueueWaveform(w); err != nil {
		return nil, err
	}
	return w, nil
}

// QueueWaveform appends an already encoded waveform
func (c *AWGCore) QueueWaveform(w *waveform.Waveform) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.queue) >= WaveSlots {
		return ErrQueueFull{Slots: WaveSlots}
	}
	c.queue = append(c.queue, w)
	return nil
}

// Waveforms returns the queued waveforms in upload order
func (c *AWGCore) Waveforms() []*waveform.Waveform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*waveform.Waveform(nil), c.queue...)
}

// Reset drops all queued waveforms
func (c *AWGCore) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queue = nil
}

func (c *AWGCore) path(alias NodeAlias, index ...interface{}) string {
	return NodePath(alias, append([]interface{}{c.index}, index...)...)
}

// Upload writes every queued waveform to its wave slot in one batch.
// The queue is kept so the same set can be uploaded again.
func (c *AWGCore) Upload() error {
	queue := c.Waveforms()
	if len(queue) == 0 {
		return nil
	}
	settings := make([]node.Setting, 0, len(queue))
	for i, w := range queue {
		s, err := c.device.Setting(c.path(NodeAwgWave, i), w)
		if err != nil {
			return err
		}
		settings = append(settings, s)
		log.Debug("Wave slot %d: %d samples hash %016x", i, w.Len(), w.Hash())
	}
	log.Debug("Uploading %d waveforms to %s core %d", len(settings), c.device.Serial, c.index)
	return c.device.dispatcher.SetMany(settings)
}

// Run ...
func (c *AWGCore) Run() error {
	return c.device.Set(c.path(NodeAwgEnable), 1)
}

// Stop ...
func (c *AWGCore) Stop() error {
	return c.device.Set(c.path(NodeAwgEnable), 0)
}

// SetSingle selects single shot (true) or continuous (false) playback
func (c *AWGCore) SetSingle(single bool) error {
	return c.device.Set(c.path(NodeAwgSingle), single)
}

// IsRunning ...
func (c *AWGCore) IsRunning() (bool, error) {
	value, err := c.device.GetValue(c.path(NodeAwgEnable))
	if err != nil {
		return false, err
	}
	switch v := value.(type) {
	case int64:
		return v != 0, nil
	case float64:
		return v != 0, nil
	}
	return false, node.ErrInvalidValue{What: fmt.Sprintf("%s is not numeric: %v", c.path(NodeAwgEnable), value)}
}

// WaitDone polls the enable node every interval until the core stops,
// the timeout elapses or ctx is done. A zero timeout waits for ctx only.
func (c *AWGCore) WaitDone(ctx context.Context, timeout, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		running, err := c.IsRunning()
		if err != nil {
			return err
		}
		if !running {
			return nil
		}
		select {
		case <-ctx.Done():
			return ErrWaitTimeout{Path: c.path(NodeAwgEnable), Err: ctx.Err()}
		case <-ticker.C:
		}
	}
}

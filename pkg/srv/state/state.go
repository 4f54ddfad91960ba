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

package state

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.etcd.io/bbolt"
	"sigs.k8s.io/yaml"

	"jinr.ru/greenlab/go-awg/pkg/command/ifc"
	"jinr.ru/greenlab/go-awg/pkg/log"
	"jinr.ru/greenlab/go-awg/pkg/node"
)

const (
	BucketNamePrefix = "node_"
)

// NodeState keeps the nodes of all devices in a bbolt database.
// Every device has its own bucket, keys are node paths relative to the device.
type NodeState struct {
	context.Context
	DB  *bbolt.DB
	now func() uint64
}

var _ ifc.Transport = &NodeState{}

func NewNodeState(ctx context.Context, dbPath string) (*NodeState, error) {
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	return &NodeState{
		Context: ctx,
		DB:      db,
		now: func() uint64 {
			return uint64(time.Now().UnixNano())
		},
	}, nil
}

func bucketName(device string) string {
	return fmt.Sprintf("%s%s", BucketNamePrefix, device)
}

// split returns the device segment and the key of a node inside the device bucket
func split(addr node.Address) (string, string, error) {
	segments := addr.Segments()
	if len(segments) < 2 {
		return "", "", ErrNotUnderDevice{Path: addr.String()}
	}
	return segments[0], strings.Join(segments[1:], node.Separator), nil
}

// Close ...
func (s *NodeState) Close() {
	s.DB.Close()
}

// Seed creates the given nodes if they do not exist yet, existing values are kept
func (s *NodeState) Seed(settings []node.Setting) error {
	log.Debug("Seeding %d nodes", len(settings))
	return s.DB.Update(func(tx *bbolt.Tx) error {
		for _, st := range settings {
			device, key, err := split(st.Address)
			if err != nil {
				return err
			}
			b, err := tx.CreateBucketIfNotExists([]byte(bucketName(device)))
			if err != nil {
				return err
			}
			if b.Get([]byte(key)) != nil {
				continue
			}
			if err := s.put(b, key, st.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *NodeState) put(b *bbolt.Bucket, key string, value node.Value) error {
	if err := value.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(&node.Record{Timestamp: s.now(), Value: value})
	if err != nil {
		return err
	}
	return b.Put([]byte(key), data)
}

// Read ...
func (s *NodeState) Read(addr node.Address) (node.Record, error) {
	log.Debug("Getting node: %s", addr)
	var record node.Record
	if addr.IsWildcard() {
		return record, node.ErrInvalidAddress{What: "wildcard read: " + addr.String()}
	}
	device, key, err := split(addr)
	if err != nil {
		return record, err
	}
	err = s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName(device)))
		if b == nil {
			return ErrNodeNotFound{Path: addr.String()}
		}
		data := b.Get([]byte(key))
		if data == nil {
			return ErrNodeNotFound{Path: addr.String()}
		}
		return yaml.Unmarshal(data, &record)
	})
	return record, err
}

// WriteBatch applies all settings in one bbolt transaction, so either all of them
// are stored or none. Wildcard settings are expanded against existing nodes and
// fail the batch when nothing matches. Concrete settings create missing nodes.
func (s *NodeState) WriteBatch(settings []node.Setting) error {
	log.Debug("Writing batch of %d settings", len(settings))
	return s.DB.Update(func(tx *bbolt.Tx) error {
		for _, st := range settings {
			targets := []node.Address{st.Address}
			if st.Address.IsWildcard() {
				matched, err := enumerate(tx, st.Address)
				if err != nil {
					return err
				}
				if len(matched) == 0 {
					return ErrNoMatch{Pattern: st.Address.String()}
				}
				targets = matched
			}
			for _, addr := range targets {
				device, key, err := split(addr)
				if err != nil {
					return err
				}
				b, err := tx.CreateBucketIfNotExists([]byte(bucketName(device)))
				if err != nil {
					return err
				}
				if err := s.put(b, key, st.Value); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// EnumerateMatching returns the existing nodes matching pattern, sorted by path
func (s *NodeState) EnumerateMatching(pattern node.Address) ([]node.Address, error) {
	var result []node.Address
	err := s.DB.View(func(tx *bbolt.Tx) error {
		matched, err := enumerate(tx, pattern)
		result = matched
		return err
	})
	return result, err
}

func enumerate(tx *bbolt.Tx, pattern node.Address) ([]node.Address, error) {
	device, key, err := split(pattern)
	if err != nil {
		return nil, err
	}
	var devices []string
	if device == node.Wildcard {
		err = tx.ForEach(func(name []byte, _ *bbolt.Bucket) error {
			if bytes.HasPrefix(name, []byte(BucketNamePrefix)) {
				devices = append(devices, strings.TrimPrefix(string(name), BucketNamePrefix))
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		devices = []string{device}
	}

	prefix := []byte(key)
	if i := strings.Index(key, node.Wildcard); i >= 0 {
		prefix = []byte(key[:i])
	}

	var result []node.Address
	for _, d := range devices {
		b := tx.Bucket([]byte(bucketName(d)))
		if b == nil {
			continue
		}
		c := b.Cursor()
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			addr, err := node.Parse(d + node.Separator + string(k))
			if err != nil {
				log.Warning("Skipping malformed node key %q in device %s", k, d)
				continue
			}
			if pattern.Matches(addr) {
				result = append(result, addr)
			}
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].String() < result[j].String()
	})
	return result, nil
}

// Devices returns the names of all devices that have nodes in the store
func (s *NodeState) Devices() ([]string, error) {
	var devices []string
	err := s.DB.View(func(tx *bbolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bbolt.Bucket) error {
			if bytes.HasPrefix(name, []byte(BucketNamePrefix)) {
				devices = append(devices, strings.TrimPrefix(string(name), BucketNamePrefix))
			}
			return nil
		})
	})
	return devices, err
}

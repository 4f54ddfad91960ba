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
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/imroc/req"

	"jinr.ru/greenlab/go-awg/pkg/command/ifc"
	"jinr.ru/greenlab/go-awg/pkg/config"
	"jinr.ru/greenlab/go-awg/pkg/layers"
	"jinr.ru/greenlab/go-awg/pkg/node"
	"jinr.ru/greenlab/go-awg/pkg/srv/api"
)

// ApiClient is a transport talking to a data server over its REST API.
// Batches are sent as binary set request frames.
type ApiClient struct {
	*config.Config
	ApiPrefix string
	mu        sync.Mutex
	seq       uint16
}

var _ ifc.Transport = &ApiClient{}

func NewApiClient(cfg *config.Config) *ApiClient {
	return NewApiClientWithPrefix(cfg, fmt.Sprintf("http://%s%s", cfg.Addr(), api.ApiPrefix))
}

// NewApiClientWithPrefix is like NewApiClient but talks to the given API root
func NewApiClientWithPrefix(cfg *config.Config, prefix string) *ApiClient {
	return &ApiClient{
		Config:    cfg,
		ApiPrefix: prefix,
	}
}

func (c *ApiClient) nodeUrl(path string) string {
	return fmt.Sprintf("%s/node?%s", c.ApiPrefix, url.Values{"path": {path}}.Encode())
}

func (c *ApiClient) enumerateUrl(path string) string {
	return fmt.Sprintf("%s/enumerate?%s", c.ApiPrefix, url.Values{"path": {path}}.Encode())
}

func (c *ApiClient) setUrl() string {
	return fmt.Sprintf("%s/set", c.ApiPrefix)
}

func (c *ApiClient) nextSeq() uint16 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

func checkStatus(r *req.Resp) error {
	if r.Response().StatusCode != http.StatusOK {
		return ErrApiStatus{Status: r.Response().Status, Body: r.String()}
	}
	return nil
}

// Read sends request to get the record of a concrete node
func (c *ApiClient) Read(addr node.Address) (node.Record, error) {
	r, err := req.Get(c.nodeUrl(addr.String()))
	if err != nil {
		return node.Record{}, err
	}
	if err := checkStatus(r); err != nil {
		return node.Record{}, err
	}
	records := map[string]node.Record{}
	if err := r.ToJSON(&records); err != nil {
		return node.Record{}, err
	}
	record, ok := records[addr.String()]
	if !ok {
		return node.Record{}, ErrApiStatus{Status: "missing node in response", Body: addr.String()}
	}
	return record, nil
}

// EnumerateMatching sends request to list concrete nodes matching a pattern
func (c *ApiClient) EnumerateMatching(pattern node.Address) ([]node.Address, error) {
	r, err := req.Get(c.enumerateUrl(pattern.String()))
	if err != nil {
		return nil, err
	}
	if err := checkStatus(r); err != nil {
		return nil, err
	}
	var paths []string
	if err := r.ToJSON(&paths); err != nil {
		return nil, err
	}
	return node.ParseAll(paths)
}

// WriteBatch sends all settings in one set request frame
func (c *ApiClient) WriteBatch(settings []node.Setting) error {
	frame, err := layers.EncodeSetRequest(settings, c.nextSeq())
	if err != nil {
		return err
	}
	r, err := req.Post(c.setUrl(), req.Header{"Content-Type": api.ContentTypeFrame}, frame)
	if err != nil {
		return err
	}
	if err := checkStatus(r); err != nil {
		return err
	}
	result := &api.SetResult{}
	if err := r.ToJSON(result); err != nil {
		return err
	}
	if result.Count != len(settings) {
		return ErrApiStatus{Status: "short write", Body: fmt.Sprintf("%d of %d settings applied", result.Count, len(settings))}
	}
	return nil
}

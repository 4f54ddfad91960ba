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

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jinr.ru/greenlab/go-awg/pkg/config"
	"jinr.ru/greenlab/go-awg/pkg/layers"
	"jinr.ru/greenlab/go-awg/pkg/node"
	"jinr.ru/greenlab/go-awg/pkg/srv/state"
)

func newTestServer(t *testing.T) (*httptest.Server, *state.NodeState) {
	cfg := config.NewDefaultConfig()
	cfg.Devices = []*config.Device{{Serial: "dev8", Type: "uhfqa"}}
	store, err := state.NewNodeState(context.Background(), filepath.Join(t.TempDir(), "nodes.db"))
	require.NoError(t, err)
	t.Cleanup(store.Close)
	require.NoError(t, SeedDevices(cfg, store))
	s, err := NewApiServer(context.Background(), cfg, store)
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts, store
}

func get(t *testing.T, ts *httptest.Server, path string, query url.Values) (int, []byte) {
	u := ts.URL + path
	if query != nil {
		u += "?" + query.Encode()
	}
	resp, err := http.Get(u)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func post(t *testing.T, ts *httptest.Server, contentType string, body []byte) (int, []byte) {
	resp, err := http.Post(ts.URL+"/api/set", contentType, bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestGetNode(t *testing.T) {
	ts, _ := newTestServer(t)
	code, body := get(t, ts, "/api/node", url.Values{"path": {"dev8/features/devtype", "dev8/sigouts/*/on"}})
	require.Equal(t, http.StatusOK, code, string(body))
	var records map[string]node.Record
	require.NoError(t, json.Unmarshal(body, &records))
	assert.Len(t, records, 3)
	assert.Equal(t, node.StringValue("UHFQA"), records["dev8/features/devtype"].Value)

	code, _ = get(t, ts, "/api/node", url.Values{"path": {"dev8/nothing/here"}})
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = get(t, ts, "/api/node", url.Values{"path": {"dev8//x"}})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestEnumerate(t *testing.T) {
	ts, _ := newTestServer(t)
	code, body := get(t, ts, "/api/enumerate", url.Values{"path": {"dev8/sigouts/*/range"}})
	require.Equal(t, http.StatusOK, code)
	var paths []string
	require.NoError(t, json.Unmarshal(body, &paths))
	assert.Equal(t, []string{"dev8/sigouts/0/range", "dev8/sigouts/1/range"}, paths)
}

func TestSetJSON(t *testing.T) {
	ts, store := newTestServer(t)
	code, body := post(t, ts, ContentTypeJSON, []byte(`[["dev8/sigouts/0/on", 1], ["dev8/sigouts/0/range", 0.5], ["dev8/sigouts/0/on", 0]]`))
	require.Equal(t, http.StatusOK, code, string(body))
	var result SetResult
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, 3, result.Count)

	r, err := store.Read(node.MustParse("dev8/sigouts/0/on"))
	require.NoError(t, err)
	assert.Equal(t, node.IntValue(0), r.Value)
	r, err = store.Read(node.MustParse("dev8/sigouts/0/range"))
	require.NoError(t, err)
	assert.Equal(t, node.DoubleValue(0.5), r.Value)
}

func TestSetFrame(t *testing.T) {
	ts, store := newTestServer(t)
	frame, err := layers.EncodeSetRequest([]node.Setting{
		{Address: node.MustParse("dev8/sigouts/*/on"), Value: node.IntValue(1)},
		{Address: node.MustParse("dev8/awgs/0/waveform/waves/0"), Value: node.VectorValue([]byte{1, 2, 3, 4})},
	}, 7)
	require.NoError(t, err)
	code, body := post(t, ts, ContentTypeFrame, frame)
	require.Equal(t, http.StatusOK, code, string(body))
	var result SetResult
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, SetResult{Code: http.StatusOK, Count: 2, Seq: 7}, result)

	for _, p := range []string{"dev8/sigouts/0/on", "dev8/sigouts/1/on"} {
		r, err := store.Read(node.MustParse(p))
		require.NoError(t, err)
		assert.Equal(t, node.IntValue(1), r.Value)
	}
}

func TestSetRejected(t *testing.T) {
	ts, store := newTestServer(t)
	code, _ := post(t, ts, ContentTypeJSON, []byte(`{"path": 1}`))
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = post(t, ts, ContentTypeJSON, []byte(`[["dev8/sigouts/0/on"]]`))
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = post(t, ts, ContentTypeFrame, []byte{1, 2, 3})
	assert.Equal(t, http.StatusBadRequest, code)

	// a wildcard matching nothing fails the whole batch
	code, _ = post(t, ts, ContentTypeJSON, []byte(`[["dev8/sigouts/0/on", 1], ["dev8/nope/*", 1]]`))
	assert.Equal(t, http.StatusNotFound, code)
	r, err := store.Read(node.MustParse("dev8/sigouts/0/on"))
	require.NoError(t, err)
	assert.Equal(t, node.IntValue(0), r.Value)
}

func TestDevices(t *testing.T) {
	ts, _ := newTestServer(t)
	code, body := get(t, ts, "/api/devices", nil)
	require.Equal(t, http.StatusOK, code)
	var devices []DeviceInfo
	require.NoError(t, json.Unmarshal(body, &devices))
	assert.Equal(t, []DeviceInfo{{Serial: "dev8", Type: "UHFQA"}}, devices)
}

func TestDocs(t *testing.T) {
	doc, err := LoadDocument()
	require.NoError(t, err)
	assert.Equal(t, "go-awg API", doc.Spec().Info.Title)

	ts, _ := newTestServer(t)
	code, body := get(t, ts, SwaggerPath, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), "go-awg API")
	code, body = get(t, ts, "/"+DocsPath, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), "redoc")
}

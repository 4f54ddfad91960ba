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

// go-awg API
//
// # RESTful APIs to read and write instrument nodes
//
// Schemes: http
// Host: localhost:8004
// Version: 1.0.0
//
//	Consumes:
//	- application/json
//	- application/octet-stream
//
//	Produces:
//	- application/json
//
// swagger:meta
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"jinr.ru/greenlab/go-awg/pkg/config"
	"jinr.ru/greenlab/go-awg/pkg/layers"
	"jinr.ru/greenlab/go-awg/pkg/log"
	"jinr.ru/greenlab/go-awg/pkg/node"
	"jinr.ru/greenlab/go-awg/pkg/srv/api/ifc"
)

const (
	ContentTypeFrame = "application/octet-stream"
	ContentTypeJSON  = "application/json"
	ApiPrefix        = "/api"
	// MaxBodySize limits set requests, waveform uploads included
	MaxBodySize = 64 << 20
)

// Success response
// swagger:response okResp
type RespOk struct {
	// in:body
	Body SetResult
}

// SetResult is returned by the set endpoint
type SetResult struct {
	// HTTP status code 200 - OK
	Code int `json:"code"`
	// number of settings applied
	Count int `json:"count"`
	// sequence number of the frame, zero for JSON requests
	Seq uint16 `json:"seq"`
}

// DeviceInfo ...
type DeviceInfo struct {
	Serial string `json:"serial"`
	Type   string `json:"type"`
}

type ApiServer struct {
	context.Context
	*config.Config
	*mux.Router
	store ifc.NodeStore
}

var _ ifc.ApiServer = &ApiServer{}

func NewApiServer(ctx context.Context, cfg *config.Config, store ifc.NodeStore) (*ApiServer, error) {
	log.Info("Initializing API server with address: %s", cfg.Addr())
	s := &ApiServer{
		Context: ctx,
		Config:  cfg,
		store:   store,
	}
	if err := s.configureRouter(); err != nil {
		return nil, err
	}
	return s, nil
}

// Handler returns the router wrapped with access logging and panic recovery
func (s *ApiServer) Handler() http.Handler {
	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(
		handlers.LoggingHandler(log.Writer(), s.Router))
}

// Run serves the API until the server context is done
func (s *ApiServer) Run() error {
	log.Info("Starting API server: %s", s.Config.Addr())
	httpServer := &http.Server{
		Handler: s.Handler(),
		Addr:    s.Config.Addr(),
	}
	errChan := make(chan error, 1)
	go func() {
		errChan <- httpServer.ListenAndServe()
	}()
	select {
	case err := <-errChan:
		return err
	case <-s.Done():
		log.Info("Stopping API server")
		return httpServer.Shutdown(context.Background())
	}
}

func (s *ApiServer) configureRouter() error {
	s.Router = mux.NewRouter()
	subRouter := s.Router.PathPrefix(ApiPrefix).Subrouter()
	// swagger:operation GET /node get nodes
	// ---
	// summary: read nodes, wildcard segments allowed
	// responses:
	//   "200":
	//     description: records by path
	//   "404":
	//     description: node not found
	subRouter.HandleFunc("/node", s.handleGet()).Methods("GET").Queries("path", "{path}")
	// swagger:operation GET /enumerate enumerate nodes
	// ---
	// summary: list concrete nodes matching a pattern
	// responses:
	//   "200":
	//     description: sorted paths
	subRouter.HandleFunc("/enumerate", s.handleEnumerate()).Methods("GET").Queries("path", "{path}")
	// swagger:operation POST /set set nodes
	// ---
	// summary: apply a batch of settings atomically
	// responses:
	//   "200":
	//     "$ref": "#/responses/okResp"
	//   "400":
	//     description: malformed batch
	subRouter.HandleFunc("/set", s.handleSet()).Methods("POST")
	subRouter.HandleFunc("/devices", s.handleDevices()).Methods("GET")
	return s.configureDocs()
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Error while encoding response: %s", err)
	}
}

func (s *ApiServer) resolve(path string) ([]node.Address, error) {
	addr, err := node.Parse(path)
	if err != nil {
		return nil, err
	}
	if !addr.IsWildcard() {
		return []node.Address{addr}, nil
	}
	return s.store.EnumerateMatching(addr)
}

func (s *ApiServer) handleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		paths := r.URL.Query()["path"]
		log.Debug("Handling node get request: %s", strings.Join(paths, ", "))
		result := map[string]node.Record{}
		for _, p := range paths {
			addrs, err := s.resolve(p)
			if err != nil {
				http.Error(w, err.Error(), statusOf(err))
				return
			}
			for _, a := range addrs {
				record, err := s.store.Read(a)
				if err != nil {
					http.Error(w, err.Error(), statusOf(err))
					return
				}
				result[a.String()] = record
			}
		}
		writeJSON(w, result)
	}
}

func (s *ApiServer) handleEnumerate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		log.Debug("Handling enumerate request: %s", vars["path"])
		pattern, err := node.Parse(vars["path"])
		if err != nil {
			http.Error(w, err.Error(), statusOf(err))
			return
		}
		addrs, err := s.store.EnumerateMatching(pattern)
		if err != nil {
			http.Error(w, err.Error(), statusOf(err))
			return
		}
		paths := make([]string, 0, len(addrs))
		for _, a := range addrs {
			paths = append(paths, a.String())
		}
		writeJSON(w, paths)
	}
}

// decodeSet accepts either a binary set request frame or a JSON list of [path, value] pairs
func decodeSet(w http.ResponseWriter, r *http.Request) (uint16, []node.Setting, error) {
	body, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err != nil {
		return 0, nil, err
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), ContentTypeFrame) {
		seq, settings, err := layers.DecodeSetRequest(body)
		if err != nil {
			return 0, nil, ErrUnknownOperation{What: err.Error()}
		}
		return seq, settings, nil
	}
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	var raw []interface{}
	if err := decoder.Decode(&raw); err != nil {
		return 0, nil, ErrUnknownOperation{What: fmt.Sprintf("set body must be a list of [path, value] pairs: %s", err)}
	}
	settings, err := node.ParseSettings(raw)
	return 0, settings, err
}

func (s *ApiServer) handleSet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seq, settings, err := decodeSet(w, r)
		if err != nil {
			http.Error(w, err.Error(), statusOf(err))
			return
		}
		log.Debug("Handling set request: seq: %d settings: %d", seq, len(settings))
		if err := s.store.WriteBatch(settings); err != nil {
			http.Error(w, err.Error(), statusOf(err))
			return
		}
		writeJSON(w, SetResult{Code: http.StatusOK, Count: len(settings), Seq: seq})
	}
}

func (s *ApiServer) handleDevices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serials, err := s.store.Devices()
		if err != nil {
			http.Error(w, err.Error(), statusOf(err))
			return
		}
		devices := make([]DeviceInfo, 0, len(serials))
		for _, serial := range serials {
			info := DeviceInfo{Serial: serial}
			if record, err := s.store.Read(node.MustParse(serial + "/features/devtype")); err == nil {
				info.Type = record.Value.String()
			}
			devices = append(devices, info)
		}
		writeJSON(w, devices)
	}
}

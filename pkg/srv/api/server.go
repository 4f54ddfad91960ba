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
	"context"
	"os"
	"path/filepath"

	"jinr.ru/greenlab/go-awg/pkg/config"
	"jinr.ru/greenlab/go-awg/pkg/device"
	"jinr.ru/greenlab/go-awg/pkg/log"
	"jinr.ru/greenlab/go-awg/pkg/srv/api/ifc"
	"jinr.ru/greenlab/go-awg/pkg/srv/state"
)

// Server is a data server: a node store seeded with the configured devices
// and the API serving it
type Server struct {
	context.Context
	*config.Config
	state *state.NodeState
	api   ifc.ApiServer
}

// SeedDevices creates the default nodes of every configured device
func SeedDevices(cfg *config.Config, store ifc.NodeStore) error {
	for _, d := range cfg.Devices {
		t, err := device.ParseType(d.Type)
		if err != nil {
			return err
		}
		dev, err := device.NewDevice(d.Serial, t, nil)
		if err != nil {
			return err
		}
		log.Info("Seeding device: %s type: %s", dev.Serial, dev.GetType())
		if err := store.Seed(dev.DefaultNodes()); err != nil {
			return err
		}
	}
	return nil
}

// NewServer ...
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, err
	}
	nodeState, err := state.NewNodeState(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := SeedDevices(cfg, nodeState); err != nil {
		nodeState.Close()
		return nil, err
	}
	apiServer, err := NewApiServer(ctx, cfg, nodeState)
	if err != nil {
		nodeState.Close()
		return nil, err
	}
	return &Server{
		Context: ctx,
		Config:  cfg,
		state:   nodeState,
		api:     apiServer,
	}, nil
}

func (s *Server) Run() error {
	defer s.state.Close()
	return s.api.Run()
}

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
	"context"
	"os"
	"os/signal"
	"syscall"

	"jinr.ru/greenlab/go-awg/pkg/config"
	"jinr.ru/greenlab/go-awg/pkg/log"
	"jinr.ru/greenlab/go-awg/pkg/srv/api"
)

// StartServer runs a data server until it is interrupted
func StartServer(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := api.NewServer(ctx, cfg)
	if err != nil {
		return err
	}
	log.Info("Data server for %d devices", len(cfg.Devices))
	return s.Run()
}

// Connect returns a dispatcher bound to the data server described by cfg
func Connect(cfg *config.Config) (*Dispatcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewDispatcher(NewApiClient(cfg)), nil
}

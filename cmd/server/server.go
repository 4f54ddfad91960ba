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

package server

import (
	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-awg/pkg/command"
	"jinr.ru/greenlab/go-awg/pkg/config"
)

const (
	HostOptionName = "host"
	PortOptionName = "port"
	DBOptionName   = "db"
)

func NewCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run a data server",
	}
	cmd.AddCommand(NewStartCommand(cfg))
	return cmd
}

func NewStartCommand(cfg *config.Config) *cobra.Command {
	var host, db string
	var port int
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start data server with the configured devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			if host != "" {
				cfg.Host = host
			}
			if port != 0 {
				cfg.Port = port
			}
			if db != "" {
				cfg.DBPath = db
			}
			return command.StartServer(cfg)
		},
	}
	cmd.Flags().StringVar(&host, HostOptionName, "", "Address to bind. E.g. "+config.DefaultHost)
	cmd.Flags().IntVar(&port, PortOptionName, 0, "Port to bind")
	cmd.Flags().StringVar(&db, DBOptionName, "", "Path to node database")
	return cmd
}

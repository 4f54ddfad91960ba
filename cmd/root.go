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

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-awg/cmd/completion"
	"jinr.ru/greenlab/go-awg/cmd/config"
	"jinr.ru/greenlab/go-awg/cmd/node"
	"jinr.ru/greenlab/go-awg/cmd/server"
	"jinr.ru/greenlab/go-awg/cmd/waveform"
	pkgconfig "jinr.ru/greenlab/go-awg/pkg/config"
	"jinr.ru/greenlab/go-awg/pkg/log"
)

const (
	LogLevelOptionName = "log-level"
)

func NewRootCommand(out io.Writer) *cobra.Command {
	var logLevel string
	cfg := pkgconfig.NewDefaultConfig()
	cmd := &cobra.Command{
		Use:           "go-awg",
		Short:         "Tool to work with arbitrary waveform generators and lock-in amplifiers",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Load(); err != nil {
				return err
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if !log.ValidLevel(cfg.LogLevel) {
				return fmt.Errorf("wrong log level %q. %s", cfg.LogLevel, log.HelpLevels)
			}
			log.Init(cmd.ErrOrStderr(), cfg.LogLevel)
			return nil
		},
	}
	cmd.SetOut(out)
	cmd.AddCommand(config.NewCommand(cfg))
	cmd.AddCommand(server.NewCommand(cfg))
	cmd.AddCommand(node.NewCommand(cfg))
	cmd.AddCommand(waveform.NewCommand(cfg))
	cmd.AddCommand(completion.NewCommand())
	cmd.PersistentFlags().StringVar(&logLevel, LogLevelOptionName, "", fmt.Sprintf("Log level. %s", log.HelpLevels))
	return cmd
}

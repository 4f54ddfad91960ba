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

package node

import (
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-awg/pkg/command"
	"jinr.ru/greenlab/go-awg/pkg/config"
	"jinr.ru/greenlab/go-awg/pkg/node"
)

const (
	PathOptionName   = "path"
	ValueOptionName  = "value"
	PairsOptionName  = "pairs"
	ValuesOptionName = "values"
)

func NewCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Read and write device nodes",
	}
	cmd.AddCommand(NewGetCommand(cfg))
	cmd.AddCommand(NewSetCommand(cfg))
	return cmd
}

func NewGetCommand(cfg *config.Config) *cobra.Command {
	var paths []string
	var valuesOnly bool
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Read nodes, wildcard segments allowed",
		RunE: func(cmd *cobra.Command, args []string) error {
			dispatcher, err := command.Connect(cfg)
			if err != nil {
				return err
			}
			if valuesOnly {
				values, err := dispatcher.GetValues(paths...)
				if err != nil {
					return err
				}
				for _, v := range values {
					cmd.Println(v)
				}
				return nil
			}
			records, err := dispatcher.Get(paths...)
			if err != nil {
				return err
			}
			var keys []string
			for key := range records {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				cmd.Printf("%s = %s (timestamp %d)\n", key, records[key].Value, records[key].Timestamp)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&paths, PathOptionName, nil, "Node path, may be repeated")
	cmd.MarkFlagRequired(PathOptionName)
	cmd.Flags().BoolVar(&valuesOnly, ValuesOptionName, false, "Print bare values in request order")
	return cmd
}

// literal guesses the value type of a command line argument
func literal(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func parsePairs(pairs string) ([]node.Setting, error) {
	decoder := json.NewDecoder(strings.NewReader(pairs))
	decoder.UseNumber()
	var raw []interface{}
	if err := decoder.Decode(&raw); err != nil {
		return nil, err
	}
	return node.ParseSettings(raw)
}

func NewSetCommand(cfg *config.Config) *cobra.Command {
	var path, value, pairs string
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Write nodes, all pairs are sent in one transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			var settings []node.Setting
			switch {
			case pairs != "" && path == "":
				parsed, err := parsePairs(pairs)
				if err != nil {
					return err
				}
				settings = parsed
			case pairs == "" && path != "":
				s, err := node.NewSetting(path, literal(value))
				if err != nil {
					return err
				}
				settings = append(settings, s)
			default:
				return errors.New("Either --path with --value or --pairs must be given")
			}
			dispatcher, err := command.Connect(cfg)
			if err != nil {
				return err
			}
			return dispatcher.Transaction(func() error {
				return dispatcher.SetMany(settings)
			})
		},
	}
	cmd.Flags().StringVar(&path, PathOptionName, "", "Node path")
	cmd.Flags().StringVar(&value, ValueOptionName, "", "Node value")
	cmd.Flags().StringVar(&pairs, PairsOptionName, "", `JSON list of pairs, e.g. [["dev8/sigouts/0/on", 1]]`)
	return cmd
}

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

package waveform

import (
	"os"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-awg/pkg/command"
	"jinr.ru/greenlab/go-awg/pkg/config"
	"jinr.ru/greenlab/go-awg/pkg/device"
	"jinr.ru/greenlab/go-awg/pkg/log"
	"jinr.ru/greenlab/go-awg/pkg/waveform"
)

const (
	DeviceOptionName   = "device"
	CoreOptionName     = "core"
	FileOptionName     = "file"
	AlignEndOptionName = "align-end"
)

func NewCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "waveform",
		Short: "Encode and upload waveforms",
	}
	cmd.AddCommand(NewUploadCommand(cfg))
	return cmd
}

func NewUploadCommand(cfg *config.Config) *cobra.Command {
	var serial, file string
	var core int
	var alignEnd bool
	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload waveforms from a csv file to an AWG core",
		RunE: func(cmd *cobra.Command, args []string) error {
			configured, err := cfg.GetDeviceBySerial(serial)
			if err != nil {
				return err
			}
			t, err := device.ParseType(configured.Type)
			if err != nil {
				return err
			}
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()
			samples, err := waveform.ReadCSV(f)
			if err != nil {
				return err
			}

			dispatcher, err := command.Connect(cfg)
			if err != nil {
				return err
			}
			dev, err := device.NewDevice(configured.Serial, t, dispatcher)
			if err != nil {
				return err
			}
			awg, err := dev.Core(core)
			if err != nil {
				return err
			}
			for _, s := range samples {
				w, err := awg.Queue(s.A, s.B, !alignEnd)
				if err != nil {
					return err
				}
				log.Debug("Queued waveform: %d samples buffer length %d", w.Len(), w.BufferLength())
				cmd.Printf("%016x %d\n", w.Hash(), w.Len())
			}
			if err := awg.Upload(); err != nil {
				return err
			}
			cmd.Printf("Uploaded %d waveforms to %s core %d\n", len(samples), dev.Serial, core)
			return nil
		},
	}
	cmd.Flags().StringVar(&serial, DeviceOptionName, "", "Device serial")
	cmd.MarkFlagRequired(DeviceOptionName)
	cmd.Flags().IntVar(&core, CoreOptionName, 0, "AWG core index")
	cmd.Flags().StringVar(&file, FileOptionName, "", "CSV file, rows a[,b], blank line between waveforms")
	cmd.MarkFlagRequired(FileOptionName)
	cmd.Flags().BoolVar(&alignEnd, AlignEndOptionName, false, "Align samples to the end of the buffer")
	return cmd
}

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

package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "127.0.0.1:8004", cfg.Addr())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"empty host", func(c *Config) { c.Host = " " }},
		{"port zero", func(c *Config) { c.Port = 0 }},
		{"port too big", func(c *Config) { c.Port = 70000 }},
		{"api version", func(c *Config) { c.APIVersion = 4 }},
		{"log level", func(c *Config) { c.LogLevel = "verbose" }},
		{"device type", func(c *Config) { c.Devices = []*Device{{Serial: "dev1", Type: "scope"}} }},
		{"device serial", func(c *Config) { c.Devices = []*Device{{Serial: "dev/1", Type: "hdawg"}} }},
		{"duplicate serial", func(c *Config) {
			c.Devices = []*Device{{Serial: "dev1", Type: "hdawg"}, {Serial: "DEV1", Type: "uhfqa"}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			assert.True(t, errors.As(err, &ErrInvalidConfig{}), "%v", err)
		})
	}
}

func TestPersistAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", ConfigFile)
	cfg := NewDefaultConfig()
	cfg.SetFilepath(path)
	cfg.Port = 9000
	cfg.APIVersion = 5
	cfg.Devices = []*Device{{Serial: "dev8", Type: "HDAWG"}}
	require.NoError(t, cfg.Persist(false))

	err := cfg.Persist(false)
	assert.True(t, errors.As(err, &ErrConfigFileExists{}))
	require.NoError(t, cfg.Persist(true))

	loaded := NewDefaultConfig()
	loaded.SetFilepath(path)
	require.NoError(t, loaded.Load())
	assert.Equal(t, 9000, loaded.Port)
	assert.Equal(t, 5, loaded.APIVersion)
	require.Len(t, loaded.Devices, 1)
	assert.Equal(t, "dev8", loaded.Devices[0].Serial)

	d, err := loaded.GetDeviceBySerial("DEV8")
	require.NoError(t, err)
	assert.Equal(t, "HDAWG", d.Type)
	_, err = loaded.GetDeviceBySerial("dev9")
	assert.True(t, errors.As(err, &ErrNoSuchDevice{}))
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.SetFilepath(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, cfg.Load())
	assert.Equal(t, DefaultPort, cfg.Port)
}

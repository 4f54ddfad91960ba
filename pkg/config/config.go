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
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"jinr.ru/greenlab/go-awg/pkg/device"
	"jinr.ru/greenlab/go-awg/pkg/log"
)

type Device struct {
	Serial string `yaml:"serial"`
	Type   string `yaml:"type"`
}

// Config holds everything needed to reach a data server and to run one
type Config struct {
	Host       string    `yaml:"host"`
	Port       int       `yaml:"port"`
	APIVersion int       `yaml:"apiVersion"`
	LogLevel   string    `yaml:"logLevel"`
	DBPath     string    `yaml:"dbPath"`
	Devices    []*Device `yaml:"devices,omitempty"`
	filepath   string
}

func (c *Config) Filepath() string {
	return c.filepath
}

func (c *Config) SetFilepath(path string) {
	c.filepath = path
}

// Addr returns host:port of the data server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate checks every field and returns the first problem found
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return ErrInvalidConfig{What: "host must not be empty"}
	}
	if c.Port < MinPort || c.Port > MaxPort {
		return ErrInvalidConfig{What: fmt.Sprintf("port %d is out of range %d..%d", c.Port, MinPort, MaxPort)}
	}
	supported := false
	for _, v := range SupportedAPIVersions {
		if v == c.APIVersion {
			supported = true
		}
	}
	if !supported {
		return ErrInvalidConfig{What: fmt.Sprintf("api version %d is not one of %v", c.APIVersion, SupportedAPIVersions)}
	}
	if !log.ValidLevel(c.LogLevel) {
		return ErrInvalidConfig{What: fmt.Sprintf("log level %q. %s", c.LogLevel, log.HelpLevels)}
	}
	seen := map[string]bool{}
	for _, d := range c.Devices {
		serial := strings.ToLower(d.Serial)
		if serial == "" || strings.ContainsAny(serial, "/*") {
			return ErrInvalidConfig{What: fmt.Sprintf("device serial %q", d.Serial)}
		}
		if seen[serial] {
			return ErrInvalidConfig{What: fmt.Sprintf("duplicate device serial %s", serial)}
		}
		seen[serial] = true
		if _, err := device.ParseType(d.Type); err != nil {
			return ErrInvalidConfig{What: err.Error()}
		}
	}
	return nil
}

func (c *Config) GetDeviceBySerial(serial string) (*Device, error) {
	for _, d := range c.Devices {
		if strings.EqualFold(d.Serial, serial) {
			return d, nil
		}
	}
	return nil, ErrNoSuchDevice{Serial: serial}
}

// Marshal renders the config as yaml
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c *Config) Persist(overwrite bool) error {
	if _, err := os.Stat(c.filepath); err == nil && !overwrite {
		return ErrConfigFileExists{Path: c.filepath}
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.filepath)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	return ioutil.WriteFile(c.filepath, data, 0644)
}

// Load reads the config file over the current values.
// A missing file is not an error, defaults stay in place.
func (c *Config) Load() error {
	data, err := ioutil.ReadFile(c.filepath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return err
	}
	return c.Validate()
}

func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir, ConfigFile)
}

func DefaultDBPath() string {
	return filepath.Join(filepath.Dir(DefaultConfigPath()), DefaultDBFile)
}

func NewDefaultConfig() *Config {
	return &Config{
		Host:       DefaultHost,
		Port:       DefaultPort,
		APIVersion: DefaultAPIVersion,
		LogLevel:   DefaultLogLevel,
		DBPath:     DefaultDBPath(),
		filepath:   DefaultConfigPath(),
	}
}

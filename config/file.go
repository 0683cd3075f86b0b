// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Parse builds a config from YAML. Omitted reward and fee constants keep
// their defaults.
func Parse(data []byte) (*Config, error) {
	params := DefaultParams()
	if err := yaml.Unmarshal(data, &params); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	return NewBuilder().Params(params).Build()
}

// Load reads and builds a config from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	return Parse(data)
}

// MarshalYAML implements yaml.Marshaler.
func (c *Config) MarshalYAML() (any, error) {
	return c.params.copy(), nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o600), "save config")
}

// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ChainSafe/xcmsim/internal/log"
	"github.com/ChainSafe/xcmsim/lib/xcmsim"
	"github.com/go-playground/validator/v10"
	"github.com/naoina/toml"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the TOML description of a simulated network.
type Config struct {
	MaxRounds uint         `toml:"max-rounds,omitempty" validate:"lte=65536"`
	Log       string       `toml:"log,omitempty"`
	Colour    bool         `toml:"colour,omitempty"`
	Chains    []ChainEntry `toml:"chains" validate:"required,min=1,unique=Name,dive"`
}

// ChainEntry declares a chain of the network.
type ChainEntry struct {
	ID    uint32 `toml:"id"`
	Name  string `toml:"name" validate:"required"`
	Relay bool   `toml:"relay,omitempty"`
}

// Default returns the configuration of a relay chain
// with the given parachains.
func Default(paraIDs ...uint32) *Config {
	c := &Config{
		MaxRounds: xcmsim.DefaultMaxRounds,
		Log:       log.Info.String(),
		Chains:    []ChainEntry{{ID: uint32(xcmsim.RelayChainID), Name: "relay", Relay: true}},
	}
	for _, id := range paraIDs {
		c.Chains = append(c.Chains, ChainEntry{ID: id, Name: fmt.Sprintf("para-%d", id)})
	}
	return c
}

// Load reads and parses the TOML configuration file at path.
func Load(path string) (*Config, error) {
	fp, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Clean(fp))
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}

	return Parse(data)
}

// Parse parses and validates a TOML configuration.
func Parse(data []byte) (*Config, error) {
	c := new(Config)
	err := toml.Unmarshal(data, c)
	if err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}

	err = c.Validate()
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the configuration fields. Topology rules such as
// the relay chain designation are checked when building the network.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	_, err = c.LogLevel()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// LogLevel returns the configured log level, defaulting to info.
func (c *Config) LogLevel() (log.Level, error) {
	if c.Log == "" {
		return log.Info, nil
	}
	return log.ParseLevel(c.Log)
}

// Binder supplies the genesis and the executor of a configured chain.
type Binder interface {
	Bind(entry ChainEntry) (xcmsim.Genesis, xcmsim.Executor, error)
}

// BinderFunc adapts a function to the Binder interface.
type BinderFunc func(entry ChainEntry) (xcmsim.Genesis, xcmsim.Executor, error)

// Bind calls f(entry).
func (f BinderFunc) Bind(entry ChainEntry) (xcmsim.Genesis, xcmsim.Executor, error) {
	return f(entry)
}

// Build returns the network configuration, using the binder to obtain
// the collaborators of each chain.
func (c *Config) Build(binder Binder) (xcmsim.Config, error) {
	err := c.Validate()
	if err != nil {
		return xcmsim.Config{}, err
	}

	level, err := c.LogLevel()
	if err != nil {
		return xcmsim.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	networkConfig := xcmsim.Config{
		Chains:    make([]xcmsim.ChainConfig, len(c.Chains)),
		MaxRounds: c.MaxRounds,
		Logger: log.NewFromGlobal(
			log.AddContext("pkg", "xcmsim"),
			log.SetLevel(level),
			log.SetColour(c.Colour),
		),
	}

	for i, entry := range c.Chains {
		genesis, executor, err := binder.Bind(entry)
		if err != nil {
			return xcmsim.Config{}, fmt.Errorf("binding chain %s: %w", entry.Name, err)
		}

		networkConfig.Chains[i] = xcmsim.ChainConfig{
			ID:       xcmsim.ChainID(entry.ID),
			Name:     entry.Name,
			IsRelay:  entry.Relay,
			Genesis:  genesis,
			Executor: executor,
		}
	}

	return networkConfig, nil
}

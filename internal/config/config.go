// Package config implements the optional on-disk policy file backing
// the hot-swappable Configurator hook (spec.md §6): workspace naming
// and per-output position overrides, loaded once and installed on
// backend.State via SetConfig. The core only ever calls
// NewConnector/DelConnector/ConnectorConnected/ConnectorDisconnected on
// whatever Configurator is installed; this package supplies one
// concrete implementation that logs those transitions and exposes the
// parsed policy for the caller to act on, but does not interpret the
// policy itself.
//
// Grounded on thiagojdb-adoctl's pkg/config (yaml.v3 load/validate
// shape): Load reads a YAML file if present and falls back to defaults
// if absent, the same "missing file is not an error" posture as
// loadConfigFile there.
package config

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/jaywm/jayd/internal/backend"
)

// OutputRule overrides the dummy workspace-naming and position policy
// for one connector, matched by its kernel name (e.g. "DP-1").
type OutputRule struct {
	Connector  string `yaml:"connector"`
	X          int    `yaml:"x,omitempty"`
	Y          int    `yaml:"y,omitempty"`
	Scale      int    `yaml:"scale,omitempty"`
	Workspaces []string `yaml:"workspaces,omitempty"`
}

// File is the on-disk schema.
type File struct {
	Outputs []OutputRule `yaml:"outputs,omitempty"`
}

// Load reads path and parses it as a File. A missing file yields a
// zero-value File and no error, the same "no config is a valid config"
// posture as the ambient stack's other optional-file readers.
func Load(path string) (*File, error) {
	f := &File{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return f, nil
}

// RuleFor returns the rule matching connector's kernel name, if any.
func (f *File) RuleFor(kernelName string) (OutputRule, bool) {
	for _, r := range f.Outputs {
		if r.Connector == kernelName {
			return r, true
		}
	}
	return OutputRule{}, false
}

// Configurator is the File-backed implementation of backend.Configurator:
// it logs each lifecycle call at debug level and otherwise does
// nothing. It does not match connectors to OutputRules: File.RuleFor
// performs that lookup by kernel name, and internal/backend does not
// call it.
type Configurator struct {
	File *File
	Log  zerolog.Logger
}

var _ backend.Configurator = (*Configurator)(nil)

func (c *Configurator) NewConnector(id backend.ConnectorID) {
	c.Log.Debug().Uint64("connector", uint64(id)).Msg("config: new connector")
}

func (c *Configurator) DelConnector(id backend.ConnectorID) {
	c.Log.Debug().Uint64("connector", uint64(id)).Msg("config: connector removed")
}

func (c *Configurator) ConnectorConnected(id backend.ConnectorID) {
	c.Log.Debug().Uint64("connector", uint64(id)).Msg("config: connector connected")
}

func (c *Configurator) ConnectorDisconnected(id backend.ConnectorID) {
	c.Log.Debug().Uint64("connector", uint64(id)).Msg("config: connector disconnected")
}

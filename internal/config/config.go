// Package config loads tool configuration from an HCL file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// Config holds settings shared by the CLI commands. All fields are
// optional; zero values fall back to built-in defaults.
type Config struct {
	// Store is the default SQLite hierarchy store path.
	Store string `hcl:"store,optional"`

	// VisitBudget caps the number of nodes a single match may visit.
	// Zero means unlimited.
	VisitBudget int `hcl:"visit_budget,optional"`

	Mount *MountConfig `hcl:"mount,block"`
}

// MountConfig configures the mount and serve commands.
type MountConfig struct {
	// Dir is the default mountpoint.
	Dir string `hcl:"dir,optional"`

	// NFS serves the hierarchy over NFS instead of FUSE.
	NFS bool `hcl:"nfs,optional"`

	// Port fixes the NFS server port. Zero means ephemeral.
	Port int `hcl:"port,optional"`
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".agentic-research", "treeslice", "config.hcl")
}

// Load reads the config file at path. An empty path means the default
// location; a missing file yields the zero config rather than an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	var cfg Config
	if path == "" {
		return &cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := hclsimple.DecodeFile(path, nil, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

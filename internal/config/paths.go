package config

import "path/filepath"

// Paths holds resolved paths for config and state files.
type Paths struct {
	Root       string
	ConfigPath string
	LayersLock string
}

// DefaultPaths returns the default paths for a repo root.
func DefaultPaths(root string) Paths {
	stateDir := filepath.Join(root, ".hxr")
	return Paths{
		Root:       root,
		ConfigPath: filepath.Join(root, "hxr.toml"),
		LayersLock: filepath.Join(stateDir, "layers.lock"),
	}
}

package config

import (
	"path/filepath"
	"sort"
)

// Deploy actions that expand into one task per environment.
const (
	ActionDeploy  = "deploy"
	ActionDestroy = "destroy"
	ActionDiff    = "diff"
	ActionSynth   = "synth"
)

// BootstrapTaskName is the environment-independent bootstrap task.
const BootstrapTaskName = "bootstrap"

// DefaultInstaller is used when python.installer is unset.
const DefaultInstaller = "pip"

// Config is the decoded hxr.toml.
type Config struct {
	Deploy       Deploy                 `toml:"deploy"`
	Environments map[string]Environment `toml:"environments"`
	Tasks        map[string]CustomTask  `toml:"tasks"`
	Python       Python                 `toml:"python"`
	Layers       []Layer                `toml:"layers"`
}

// Deploy describes how the deployment tool is invoked.
type Deploy struct {
	Tool       string   `toml:"tool"`
	Profile    string   `toml:"profile"`
	ContextKey string   `toml:"context_key"`
	Actions    []string `toml:"actions"`
	Bootstrap  bool     `toml:"bootstrap"`
}

// Environment is one deployment target.
type Environment struct {
	StackName string `toml:"stack_name"`
	Region    string `toml:"region"`
	Account   string `toml:"account,omitempty"`
	// Protected environments ask before running destructive tasks.
	Protected bool `toml:"protected,omitempty"`
}

// CustomTask is a custom task declared under [tasks.<name>].
type CustomTask struct {
	Description string            `toml:"description,omitempty"`
	Command     string            `toml:"command"`
	Env         map[string]string `toml:"env,omitempty"`
}

// Python configures the package installer used for layers.
type Python struct {
	Installer   string   `toml:"installer"`
	InstallArgs []string `toml:"install_args,omitempty"`
}

// Layer is one dependency layer: a directory of installed packages and its archive.
type Layer struct {
	Name     string    `toml:"name"`
	Dir      string    `toml:"dir"`
	Target   string    `toml:"target,omitempty"`
	Archive  string    `toml:"archive"`
	Packages []Package `toml:"packages"`
}

// Package is a pinned requirement.
type Package struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// Requirement renders the package as name==version.
func (p Package) Requirement() string {
	return p.Name + "==" + p.Version
}

// InstallDir returns the directory packages are installed into, relative to the repo root.
func (l Layer) InstallDir() string {
	if l.Target == "" {
		return filepath.Clean(l.Dir)
	}
	return filepath.Join(l.Dir, l.Target)
}

// ProjectConfig is a validated config bound to its repository root.
type ProjectConfig struct {
	Config
	Root string
}

// Abs resolves a repo-relative path against the project root.
func (p *ProjectConfig) Abs(rel string) string {
	return filepath.Join(p.Root, filepath.FromSlash(rel))
}

// InstallerOrDefault returns python.installer or DefaultInstaller.
func (c *Config) InstallerOrDefault() string {
	if c.Python.Installer == "" {
		return DefaultInstaller
	}
	return c.Python.Installer
}

// EnvironmentNames returns the configured environment names in sorted order.
func (c *Config) EnvironmentNames() []string {
	names := make([]string, 0, len(c.Environments))
	for name := range c.Environments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TaskNames returns the custom task names in sorted order.
func (c *Config) TaskNames() []string {
	names := make([]string, 0, len(c.Tasks))
	for name := range c.Tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DeployTaskName names the task that runs action against env.
func DeployTaskName(action string, env string) string {
	return action + "-" + env
}

// GeneratedTaskNames returns every task name derived from [deploy] and [environments].
func (c *Config) GeneratedTaskNames() []string {
	var names []string
	for _, env := range c.EnvironmentNames() {
		for _, action := range c.Deploy.Actions {
			names = append(names, DeployTaskName(action, env))
		}
	}
	if c.Deploy.Bootstrap {
		names = append(names, BootstrapTaskName)
	}
	return names
}

// FindLayer returns the layer named name.
func (c *Config) FindLayer(name string) (Layer, bool) {
	for _, layer := range c.Layers {
		if layer.Name == name {
			return layer, true
		}
	}
	return Layer{}, false
}

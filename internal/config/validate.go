package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/shlex"

	"github.com/ik-hxr/cms-backend/internal/messages"
)

var validActions = map[string]struct{}{
	ActionDeploy:  {},
	ActionDestroy: {},
	ActionDiff:    {},
	ActionSynth:   {},
}

// ReservedNames are built-in subcommands that tasks may not shadow.
var ReservedNames = map[string]struct{}{
	"completion": {},
	"doctor":     {},
	"envs":       {},
	"help":       {},
	"init":       {},
	"layers":     {},
	"run":        {},
	"tasks":      {},
}

var (
	namePattern        = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
	packageNamePattern = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?(\[[A-Za-z0-9._,-]+\])?$`)
	// Exact versions only: no comparison operators, wildcards, or ranges.
	exactVersionPattern = regexp.MustCompile(`^[0-9A-Za-z][0-9A-Za-z.+!_-]*$`)
)

// Validate ensures the config is complete and consistent.
func (c *Config) Validate(path string) error {
	if strings.TrimSpace(c.Deploy.Tool) == "" {
		return fmt.Errorf(messages.ConfigDeployToolRequiredFmt, path)
	}
	if strings.TrimSpace(c.Deploy.Profile) == "" {
		return fmt.Errorf(messages.ConfigDeployProfileRequiredFmt, path)
	}
	if strings.TrimSpace(c.Deploy.ContextKey) == "" {
		return fmt.Errorf(messages.ConfigDeployContextKeyRequiredFmt, path)
	}
	seenActions := make(map[string]struct{}, len(c.Deploy.Actions))
	for i, action := range c.Deploy.Actions {
		if _, ok := validActions[action]; !ok {
			return fmt.Errorf(messages.ConfigDeployActionInvalidFmt, path, i, action)
		}
		if _, dup := seenActions[action]; dup {
			return fmt.Errorf(messages.ConfigDeployActionDuplicateFmt, path, i, action)
		}
		seenActions[action] = struct{}{}
	}

	if len(c.Environments) == 0 {
		return fmt.Errorf(messages.ConfigEnvironmentsRequiredFmt, path)
	}
	for _, name := range c.EnvironmentNames() {
		if !namePattern.MatchString(name) {
			return fmt.Errorf(messages.ConfigEnvironmentNameInvalidFmt, path, name)
		}
		if strings.TrimSpace(c.Environments[name].StackName) == "" {
			return fmt.Errorf(messages.ConfigEnvironmentStackRequiredFmt, path, name)
		}
	}

	generated := make(map[string]struct{})
	for _, name := range c.GeneratedTaskNames() {
		generated[name] = struct{}{}
	}
	for _, name := range c.TaskNames() {
		if !namePattern.MatchString(name) {
			return fmt.Errorf(messages.ConfigTaskNameInvalidFmt, path, name)
		}
		if _, ok := ReservedNames[name]; ok {
			return fmt.Errorf(messages.ConfigTaskNameReservedFmt, path, name)
		}
		if _, ok := generated[name]; ok {
			return fmt.Errorf(messages.ConfigTaskNameGeneratedFmt, path, name)
		}
		command := strings.TrimSpace(c.Tasks[name].Command)
		if command == "" {
			return fmt.Errorf(messages.ConfigTaskCommandRequiredFmt, path, name)
		}
		words, err := shlex.Split(command)
		if err != nil {
			return fmt.Errorf(messages.ConfigTaskCommandInvalidFmt, path, name, err)
		}
		if len(words) == 0 {
			return fmt.Errorf(messages.ConfigTaskCommandRequiredFmt, path, name)
		}
	}

	return c.validateLayers(path)
}

func (c *Config) validateLayers(path string) error {
	names := make(map[string]int, len(c.Layers))
	dirs := make(map[string]int, len(c.Layers))
	for i, layer := range c.Layers {
		if strings.TrimSpace(layer.Name) == "" {
			return fmt.Errorf(messages.ConfigLayerNameRequiredFmt, path, i)
		}
		if prev, dup := names[layer.Name]; dup {
			return fmt.Errorf(messages.ConfigLayerNameDuplicateFmt, path, i, layer.Name, prev)
		}
		names[layer.Name] = i

		if strings.TrimSpace(layer.Dir) == "" {
			return fmt.Errorf(messages.ConfigLayerDirRequiredFmt, path, i)
		}
		if !isInsideRoot(layer.Dir) {
			return fmt.Errorf(messages.ConfigLayerPathInvalidFmt, path, i, "dir", layer.Dir)
		}
		if layer.Target != "" && !isInsideRoot(layer.InstallDir()) {
			return fmt.Errorf(messages.ConfigLayerPathInvalidFmt, path, i, "target", layer.Target)
		}
		dir := filepath.Clean(layer.Dir)
		if prev, dup := dirs[dir]; dup {
			return fmt.Errorf(messages.ConfigLayerDirDuplicateFmt, path, i, layer.Dir, prev)
		}
		for j, other := range c.Layers[:i] {
			otherDir := filepath.Clean(other.Dir)
			if dirContains(otherDir, dir) || dirContains(dir, otherDir) {
				return fmt.Errorf(messages.ConfigLayerDirNestedFmt, path, i, layer.Dir, j, other.Dir)
			}
		}
		dirs[dir] = i

		if strings.TrimSpace(layer.Archive) == "" {
			return fmt.Errorf(messages.ConfigLayerArchiveRequiredFmt, path, i)
		}
		if !isInsideRoot(layer.Archive) {
			return fmt.Errorf(messages.ConfigLayerPathInvalidFmt, path, i, "archive", layer.Archive)
		}

		if len(layer.Packages) == 0 {
			return fmt.Errorf(messages.ConfigLayerPackagesRequiredFmt, path, i)
		}
		for j, pkg := range layer.Packages {
			if !packageNamePattern.MatchString(strings.TrimSpace(pkg.Name)) {
				return fmt.Errorf(messages.ConfigLayerPackageNameRequiredFmt, path, i, j)
			}
			if !exactVersionPattern.MatchString(pkg.Version) {
				return fmt.Errorf(messages.ConfigLayerPackageVersionInvalidFmt, path, i, j, pkg.Name, pkg.Version)
			}
		}
	}
	return nil
}

// isInsideRoot reports whether rel is a relative path that stays under the repo root.
func isInsideRoot(rel string) bool {
	if filepath.IsAbs(rel) {
		return false
	}
	clean := filepath.Clean(filepath.FromSlash(rel))
	if clean == "." || clean == ".." {
		return false
	}
	return !strings.HasPrefix(clean, ".."+string(filepath.Separator))
}

// dirContains reports whether child is strictly inside parent.
func dirContains(parent string, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

package main

import (
	"errors"
	"os"

	"github.com/ik-hxr/cms-backend/internal/config"
	"github.com/ik-hxr/cms-backend/internal/messages"
	"github.com/ik-hxr/cms-backend/internal/root"
)

var getwd = os.Getwd

// resolveRepoRoot returns the directory holding hxr.toml or fails if none is found.
func resolveRepoRoot() (string, error) {
	cwd, err := getwd()
	if err != nil {
		return "", err
	}
	repoRoot, found, err := root.FindConfigRoot(cwd)
	if err != nil {
		return "", err
	}
	if !found {
		return "", errors.New(messages.RootMissingConfig)
	}
	return repoRoot, nil
}

// resolveInitRoot finds where init writes hxr.toml (existing config, then .git, then cwd).
func resolveInitRoot() (string, error) {
	cwd, err := getwd()
	if err != nil {
		return "", err
	}
	return root.FindInitRoot(cwd)
}

// loadProject resolves the repo root and loads its validated config.
func loadProject() (*config.ProjectConfig, error) {
	repoRoot, err := resolveRepoRoot()
	if err != nil {
		return nil, err
	}
	return config.LoadProjectConfig(repoRoot)
}

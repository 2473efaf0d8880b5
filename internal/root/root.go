// Package root locates the repository that holds hxr.toml.
package root

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik-hxr/cms-backend/internal/messages"
)

// ConfigFileName is the file that marks an hxr repository root.
const ConfigFileName = "hxr.toml"

// FindConfigRoot searches upwards from start for a directory containing hxr.toml.
// It returns the directory, whether it was found, and any filesystem error.
func FindConfigRoot(start string) (string, bool, error) {
	dir, err := absStart(start)
	if err != nil {
		return "", false, err
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		switch {
		case err == nil:
			if !info.Mode().IsRegular() {
				return "", false, fmt.Errorf(messages.RootPathNotFileFmt, candidate)
			}
			return dir, true, nil
		case !errors.Is(err, os.ErrNotExist):
			return "", false, fmt.Errorf(messages.RootCheckPathFmt, candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// FindInitRoot returns the best directory for a new hxr.toml: an existing
// config root, else the enclosing git work tree, else start itself.
func FindInitRoot(start string) (string, error) {
	if dir, found, err := FindConfigRoot(start); err != nil {
		return "", err
	} else if found {
		return dir, nil
	}
	dir, err := absStart(start)
	if err != nil {
		return "", err
	}
	for current := dir; ; {
		gitPath := filepath.Join(current, ".git")
		info, err := os.Lstat(gitPath)
		if err == nil {
			if info.IsDir() || info.Mode().IsRegular() {
				return current, nil
			}
			return "", fmt.Errorf(messages.RootPathNotDirOrFileFmt, gitPath)
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf(messages.RootCheckPathFmt, gitPath, err)
		}
		parent := filepath.Dir(current)
		if parent == current {
			return dir, nil
		}
		current = parent
	}
}

func absStart(start string) (string, error) {
	if start == "" {
		return "", errors.New(messages.RootStartPathRequired)
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf(messages.RootResolvePathFmt, start, err)
	}
	return dir, nil
}

package runner

import (
	"fmt"
	"sort"
	"strings"
)

// Environment keys exported to every task process.
const (
	EnvRunID       = "HXR_RUN_ID"
	EnvEnvironment = "HXR_ENV"
)

// BuildEnv merges base env with task env and run metadata.
// Task env overrides inherited values; environment is omitted when empty.
func BuildEnv(base []string, taskEnv map[string]string, runID string, environment string) []string {
	env := append([]string(nil), base...)
	env = mergeEnv(env, taskEnv)
	if runID != "" {
		env = SetEnv(env, EnvRunID, runID)
	}
	if environment != "" {
		env = SetEnv(env, EnvEnvironment, environment)
	}
	return env
}

// SetEnv sets or appends a key=value entry in an env slice.
func SetEnv(env []string, key string, value string) []string {
	entry := fmt.Sprintf("%s=%s", key, value)
	for i, existing := range env {
		if strings.HasPrefix(existing, key+"=") {
			env[i] = entry
			return env
		}
	}
	return append(env, entry)
}

// mergeEnv applies overrides in key order so the result is deterministic.
func mergeEnv(base []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return base
	}
	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		base = SetEnv(base, key, overrides[key])
	}
	return base
}

package runner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildEnvOverridesAndMetadata(t *testing.T) {
	base := []string{"PATH=/bin", "PYTHONPATH=old", "HXR_ENV=stale"}
	env := BuildEnv(base, map[string]string{"PYTHONPATH": "src", "AWS_REGION": "us-east-2"}, "run-1", "dev")

	assert.Equal(t, []string{"PATH=/bin", "PYTHONPATH=src", "HXR_ENV=dev", "AWS_REGION=us-east-2", "HXR_RUN_ID=run-1"}, env)
	assert.Equal(t, []string{"PATH=/bin", "PYTHONPATH=old", "HXR_ENV=stale"}, base)
}

func TestBuildEnvWithoutEnvironment(t *testing.T) {
	env := BuildEnv([]string{"PATH=/bin"}, nil, "", "")
	assert.Equal(t, []string{"PATH=/bin"}, env)
}

// lookupEnv returns the value for key from an env slice.
func lookupEnv(env []string, key string) (string, bool) {
	for _, entry := range env {
		if k, v, ok := strings.Cut(entry, "="); ok && k == key {
			return v, true
		}
	}
	return "", false
}

func TestSetEnv(t *testing.T) {
	env := SetEnv([]string{"A=1", "AB=2"}, "B", "2")
	env = SetEnv(env, "A", "3")
	assert.Equal(t, []string{"A=3", "AB=2", "B=2"}, env)

	v, ok := lookupEnv(env, "A")
	assert.True(t, ok)
	assert.Equal(t, "3", v)
	_, ok = lookupEnv(env, "C")
	assert.False(t, ok)
}

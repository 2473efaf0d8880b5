package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEnvsYAMLOutput(t *testing.T) {
	setupRepo(t)
	out, _, err := runCLI(t, "envs", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "- name: dev\n  stack_name: IkHxrCmsBackendStack-Dev\n  region: us-east-2\n  protected: false\n")

	var records []envRecord
	require.NoError(t, yaml.Unmarshal([]byte(out), &records))
	require.Len(t, records, 3)
	assert.Equal(t, []string{"dev", "prod", "stage"}, []string{records[0].Name, records[1].Name, records[2].Name})
	assert.True(t, records[1].Protected)
}

func TestEnvsRejectsUnknownOutput(t *testing.T) {
	setupRepo(t)
	_, _, err := runCLI(t, "envs", "--output", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported output format "json"`)
}

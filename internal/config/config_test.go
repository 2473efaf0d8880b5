package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
[deploy]
tool = "cdk"
profile = "ik"
context_key = "env"
actions = ["deploy", "synth"]

[environments.dev]
stack_name = "Stack-Dev"
region = "us-east-2"
`

func TestLoadTemplateConfig(t *testing.T) {
	cfg, err := LoadTemplateConfig()
	require.NoError(t, err)

	assert.Equal(t, "cdk", cfg.Deploy.Tool)
	assert.Equal(t, "ik", cfg.Deploy.Profile)
	assert.Equal(t, []string{"dev", "prod", "stage"}, cfg.EnvironmentNames())
	assert.True(t, cfg.Environments["prod"].Protected)
	assert.Equal(t, "IkHxrCmsBackendStack-Stage", cfg.Environments["stage"].StackName)
	assert.Equal(t, []string{"format", "install-dev", "install-prod", "lint", "test"}, cfg.TaskNames())
	require.Len(t, cfg.Layers, 2)
	assert.Equal(t, "src/layers/auth-dependencies/auth-dependencies.zip", cfg.Layers[0].Archive)
	assert.Len(t, cfg.Layers[0].Packages, 2)
	assert.Equal(t, "src/layers/common-dependencies/common-dependencies.zip", cfg.Layers[1].Archive)
	assert.Len(t, cfg.Layers[1].Packages, 1)
}

func TestLoadProjectConfig(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "hxr.toml"), []byte(minimalConfig), 0o644))

	project, err := LoadProjectConfig(root)
	require.NoError(t, err)
	assert.Equal(t, root, project.Root)
	assert.Equal(t, filepath.Join(root, "src", "x"), project.Abs("src/x"))
	assert.Equal(t, DefaultInstaller, project.InstallerOrDefault())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "hxr.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing config file")
}

func TestParseConfigSyntaxErrorIsNotValidation(t *testing.T) {
	_, err := ParseConfig([]byte("[deploy\n"), "test")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrConfigValidation))
}

func TestParseConfigRejectsUnknownKeys(t *testing.T) {
	_, err := ParseConfig([]byte(minimalConfig+"\n[deploy.extra]\nfoo = 1\n"), "test")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigValidation))
}

func TestGeneratedTaskNames(t *testing.T) {
	cfg, err := ParseConfig([]byte(strings.Replace(minimalConfig, `actions = ["deploy", "synth"]`, `actions = ["deploy", "synth"]
bootstrap = true`, 1)), "test")
	require.NoError(t, err)
	assert.Equal(t, []string{"deploy-dev", "synth-dev", "bootstrap"}, cfg.GeneratedTaskNames())
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name  string
		extra string
		edit  func(string) string
		want  string
	}{
		{
			name: "missing tool",
			edit: func(s string) string { return strings.Replace(s, `tool = "cdk"`, `tool = " "`, 1) },
			want: "deploy.tool is required",
		},
		{
			name: "missing profile",
			edit: func(s string) string { return strings.Replace(s, `profile = "ik"`, "", 1) },
			want: "deploy.profile is required",
		},
		{
			name: "invalid action",
			edit: func(s string) string { return strings.Replace(s, `"synth"`, `"apply"`, 1) },
			want: `"apply" must be one of`,
		},
		{
			name: "duplicate action",
			edit: func(s string) string { return strings.Replace(s, `"synth"`, `"deploy"`, 1) },
			want: "listed more than once",
		},
		{
			name: "invalid environment name",
			edit: func(s string) string { return strings.Replace(s, "environments.dev", "environments.Dev", 1) },
			want: `environment name "Dev"`,
		},
		{
			name: "missing stack name",
			edit: func(s string) string { return strings.Replace(s, `stack_name = "Stack-Dev"`, "", 1) },
			want: "environments.dev.stack_name is required",
		},
		{
			name:  "reserved task name",
			extra: "[tasks.doctor]\ncommand = \"echo\"\n",
			want:  "reserved for a built-in command",
		},
		{
			name:  "generated task name",
			extra: "[tasks.deploy-dev]\ncommand = \"echo\"\n",
			want:  "collides with a generated environment task",
		},
		{
			name:  "empty command",
			extra: "[tasks.lint]\ncommand = \"  \"\n",
			want:  "tasks.lint.command is required",
		},
		{
			name:  "unterminated quote",
			extra: "[tasks.lint]\ncommand = \"flake8 'src\"\n",
			want:  "tasks.lint.command",
		},
		{
			name:  "layer outside root",
			extra: "[[layers]]\nname = \"a\"\ndir = \"../a\"\narchive = \"a.zip\"\npackages = [{ name = \"x\", version = \"1.0\" }]\n",
			want:  "must be a relative path inside the repository",
		},
		{
			name:  "layer without packages",
			extra: "[[layers]]\nname = \"a\"\ndir = \"a\"\narchive = \"a.zip\"\n",
			want:  "must list at least one package",
		},
		{
			name:  "version range",
			extra: "[[layers]]\nname = \"a\"\ndir = \"a\"\narchive = \"a.zip\"\npackages = [{ name = \"x\", version = \">=1.0\" }]\n",
			want:  "must pin an exact version",
		},
		{
			name:  "duplicate layer dir",
			extra: "[[layers]]\nname = \"a\"\ndir = \"a\"\narchive = \"a.zip\"\npackages = [{ name = \"x\", version = \"1.0\" }]\n[[layers]]\nname = \"b\"\ndir = \"./a\"\narchive = \"b.zip\"\npackages = [{ name = \"y\", version = \"1.0\" }]\n",
			want:  "is already used by layers[0]",
		},
		{
			name:  "nested layer dir",
			extra: "[[layers]]\nname = \"outer\"\ndir = \"src/layers\"\narchive = \"outer.zip\"\npackages = [{ name = \"x\", version = \"1.0\" }]\n[[layers]]\nname = \"inner\"\ndir = \"src/layers/inner\"\narchive = \"inner.zip\"\npackages = [{ name = \"y\", version = \"1.0\" }]\n",
			want:  "layers[1].dir \"src/layers/inner\" overlaps layers[0].dir \"src/layers\"",
		},
		{
			name:  "enclosing layer dir listed second",
			extra: "[[layers]]\nname = \"inner\"\ndir = \"src/layers/inner\"\narchive = \"inner.zip\"\npackages = [{ name = \"x\", version = \"1.0\" }]\n[[layers]]\nname = \"outer\"\ndir = \"src/layers/\"\narchive = \"outer.zip\"\npackages = [{ name = \"y\", version = \"1.0\" }]\n",
			want:  "layer directories must not contain each other",
		},
		{
			name:  "duplicate layer name",
			extra: "[[layers]]\nname = \"a\"\ndir = \"a\"\narchive = \"a.zip\"\npackages = [{ name = \"x\", version = \"1.0\" }]\n[[layers]]\nname = \"a\"\ndir = \"b\"\narchive = \"b.zip\"\npackages = [{ name = \"y\", version = \"1.0\" }]\n",
			want:  "duplicates layers[0].name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := minimalConfig
			if tt.edit != nil {
				data = tt.edit(data)
			}
			data += "\n" + tt.extra
			_, err := ParseConfig([]byte(data), "hxr.toml")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfigValidation), "expected validation error, got %v", err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateRequiresEnvironment(t *testing.T) {
	cfg := &Config{Deploy: Deploy{Tool: "cdk", Profile: "ik", ContextKey: "env"}}
	err := cfg.Validate("hxr.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one [environments.<name>]")
}

func TestParseConfigLenientSkipsValidation(t *testing.T) {
	cfg, err := ParseConfigLenient([]byte("[deploy]\ntool = \"cdk\"\n"), "test")
	require.NoError(t, err)
	assert.Equal(t, "cdk", cfg.Deploy.Tool)
}

func TestLayerInstallDir(t *testing.T) {
	assert.Equal(t, filepath.Join("src", "layers", "auth", "python"), Layer{Dir: "src/layers/auth", Target: "python"}.InstallDir())
	assert.Equal(t, filepath.Join("src", "layers", "auth"), Layer{Dir: "src/layers/auth/"}.InstallDir())
}

func TestPackageRequirement(t *testing.T) {
	assert.Equal(t, "PyJWT==2.8.0", Package{Name: "PyJWT", Version: "2.8.0"}.Requirement())
}

func TestFindLayer(t *testing.T) {
	cfg := &Config{Layers: []Layer{{Name: "a"}, {Name: "b", Dir: "b"}}}
	layer, ok := cfg.FindLayer("b")
	require.True(t, ok)
	assert.Equal(t, "b", layer.Dir)
	_, ok = cfg.FindLayer("c")
	assert.False(t, ok)
}

func TestDirContains(t *testing.T) {
	assert.True(t, dirContains("src/layers", filepath.Join("src", "layers", "inner")))
	assert.False(t, dirContains("src/layers", "src/layers"))
	assert.False(t, dirContains("src/layers/auth", "src/layers/auth-dependencies"))
	assert.False(t, dirContains("src/layers/inner", "src/layers"))
	assert.False(t, dirContains("a", "..a"))
}

func TestDefaultPaths(t *testing.T) {
	root := filepath.Join("repo", "root")
	assert.Equal(t, Paths{
		Root:       root,
		ConfigPath: filepath.Join(root, "hxr.toml"),
		LayersLock: filepath.Join(root, ".hxr", "layers.lock"),
	}, DefaultPaths(root))
}

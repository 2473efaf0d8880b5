package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/shlex"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/ini.v1"

	"github.com/ik-hxr/cms-backend/internal/config"
	"github.com/ik-hxr/cms-backend/internal/layers"
	"github.com/ik-hxr/cms-backend/internal/messages"
)

// Environment variables that relocate the shared AWS config files.
const (
	EnvAWSConfigFile      = "AWS_CONFIG_FILE"
	EnvAWSCredentialsFile = "AWS_SHARED_CREDENTIALS_FILE"
)

var (
	loadConfigLenientFunc = config.LoadConfigLenient
	lookPathFunc          = exec.LookPath
	homeDirFunc           = homedir.Dir
)

// CheckConfig validates that hxr.toml loads. When strict loading fails with a
// validation error but the TOML itself parses, CheckConfig returns a FAIL
// result together with the unvalidated config so the remaining checks still run.
func CheckConfig(root string) ([]Result, *config.ProjectConfig) {
	cfg, err := config.LoadProjectConfig(root)
	if err == nil {
		return []Result{{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameConfig,
			Message:   messages.DoctorConfigLoaded,
		}}, cfg
	}

	failed := Result{
		Status:         StatusFail,
		CheckName:      messages.DoctorCheckNameConfig,
		Message:        fmt.Sprintf(messages.DoctorConfigLoadFailedFmt, err),
		Recommendation: messages.DoctorConfigLoadRecommend,
	}
	if !errors.Is(err, config.ErrConfigValidation) {
		return []Result{failed}, nil
	}

	configPath := config.DefaultPaths(root).ConfigPath
	lenient, lenientErr := loadConfigLenientFunc(configPath)
	if lenientErr != nil {
		failed.Message = fmt.Sprintf(messages.DoctorConfigLoadFailedFmt, lenientErr)
		return []Result{failed}, nil
	}

	failed.Recommendation = messages.DoctorConfigLoadLenientRecommend
	if keys, keysErr := findUnknownKeys(configPath); keysErr == nil && len(keys) > 0 {
		failed.Recommendation = unknownKeyRecommendation(configPath, keys)
	}
	return []Result{failed}, &config.ProjectConfig{Config: *lenient, Root: root}
}

// CheckTools verifies that every executable the task table and the layer
// packager need resolves on PATH. The deploy tool and the installer are
// required; custom task commands only warn.
func CheckTools(cfg *config.ProjectConfig) []Result {
	type tool struct {
		name     string
		required bool
	}
	var tools []tool
	seen := make(map[string]bool)
	add := func(name string, required bool) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		tools = append(tools, tool{name: name, required: required})
	}

	add(cfg.Deploy.Tool, true)
	if len(cfg.Layers) > 0 {
		add(cfg.InstallerOrDefault(), true)
	}
	for _, name := range cfg.TaskNames() {
		argv, err := shlex.Split(cfg.Tasks[name].Command)
		if err != nil || len(argv) == 0 {
			continue
		}
		add(argv[0], false)
	}

	results := make([]Result, 0, len(tools))
	for _, t := range tools {
		path, err := lookPathFunc(t.name)
		if err != nil {
			status := StatusWarn
			if t.required {
				status = StatusFail
			}
			results = append(results, Result{
				Status:         status,
				CheckName:      messages.DoctorCheckNameTool,
				Message:        fmt.Sprintf(messages.DoctorToolMissingFmt, t.name),
				Recommendation: fmt.Sprintf(messages.DoctorToolMissingRecommendFmt, t.name),
			})
			continue
		}
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameTool,
			Message:   fmt.Sprintf(messages.DoctorToolFoundFmt, t.name, path),
		})
	}
	return results
}

// CheckProfile looks for the deploy profile in the shared AWS config and
// credentials files. A missing profile is a warning: credentials may come
// from the environment instead.
func CheckProfile(profile string) []Result {
	if profile == "" {
		return nil
	}
	home, err := homeDirFunc()
	if err != nil {
		return []Result{{
			Status:    StatusWarn,
			CheckName: messages.DoctorCheckNameProfile,
			Message:   fmt.Sprintf(messages.DoctorProfileHomeFailedFmt, err),
		}}
	}

	candidates := []struct {
		path    string
		section string
	}{
		{awsFile(home, EnvAWSConfigFile, "config"), configSection(profile)},
		{awsFile(home, EnvAWSCredentialsFile, "credentials"), profile},
	}
	for _, c := range candidates {
		if hasIniSection(c.path, c.section) {
			return []Result{{
				Status:    StatusOK,
				CheckName: messages.DoctorCheckNameProfile,
				Message:   fmt.Sprintf(messages.DoctorProfileFoundFmt, profile, c.path),
			}}
		}
	}
	return []Result{{
		Status:         StatusWarn,
		CheckName:      messages.DoctorCheckNameProfile,
		Message:        fmt.Sprintf(messages.DoctorProfileMissingFmt, profile),
		Recommendation: fmt.Sprintf(messages.DoctorProfileMissingRecommendFmt, profile),
	}}
}

func awsFile(home string, envVar string, name string) string {
	if override := strings.TrimSpace(os.Getenv(envVar)); override != "" {
		if expanded, err := homedir.Expand(override); err == nil {
			return expanded
		}
		return override
	}
	return filepath.Join(home, ".aws", name)
}

// configSection is the section header name ~/.aws/config uses for profile.
func configSection(profile string) string {
	if profile == "default" {
		return profile
	}
	return "profile " + profile
}

func hasIniSection(path string, section string) bool {
	f, err := ini.LoadSources(ini.LoadOptions{
		AllowBooleanKeys:        true,
		SkipUnrecognizableLines: true,
	}, path)
	if err != nil {
		return false
	}
	for _, name := range f.SectionStrings() {
		if strings.Join(strings.Fields(name), " ") == section {
			return true
		}
	}
	return false
}

// CheckLayers reports each layer archive and, for the archives that exist,
// the findings of layers.Verify.
func CheckLayers(ctx context.Context, cfg *config.ProjectConfig) []Result {
	var results []Result
	var built []config.Layer
	for _, layer := range cfg.Layers {
		path := cfg.Abs(layer.Archive)
		if _, err := os.Stat(path); err != nil {
			results = append(results, Result{
				Status:         StatusWarn,
				CheckName:      messages.DoctorCheckNameLayer,
				Message:        fmt.Sprintf(messages.DoctorLayerArchiveMissingFmt, layer.Name, layer.Archive),
				Recommendation: messages.DoctorLayerArchiveMissingRecommend,
			})
			continue
		}
		files, err := layers.List(path)
		if err != nil {
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNameLayer,
				Message:        fmt.Sprintf(messages.DoctorLayerArchiveUnreadableFmt, layer.Name, layer.Archive, err),
				Recommendation: messages.DoctorLayerArchiveUnreadableRecommend,
			})
			continue
		}
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameLayer,
			Message:   fmt.Sprintf(messages.DoctorLayerArchiveFoundFmt, layer.Name, layer.Archive, len(files)),
		})
		built = append(built, layer)
	}
	if len(built) == 0 {
		return results
	}

	findings, err := layers.Verify(ctx, cfg.Root, built)
	if err != nil {
		return append(results, Result{
			Status:    StatusFail,
			CheckName: messages.DoctorCheckNameLayer,
			Message:   fmt.Sprintf(messages.DoctorLayerVerifyFailedFmt, err),
		})
	}
	for _, finding := range findings {
		results = append(results, Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameLayer,
			Message:        finding.Message,
			Recommendation: messages.DoctorLayerFindingRecommend,
		})
	}
	return results
}

package messages

// Config messages for configuration loading and validation.
const (
	// ConfigMissingFileFmt formats missing config file errors.
	ConfigMissingFileFmt        = "missing config file %s: %w"
	ConfigFailedReadTemplateFmt = "failed to read template hxr.toml: %w"
	ConfigInvalidConfigFmt      = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt   = "%s: unrecognized keys: %v"
	ConfigValidationGuidance    = "(run 'hxr doctor' for details)"

	ConfigDeployToolRequiredFmt       = "%s: deploy.tool is required"
	ConfigDeployProfileRequiredFmt    = "%s: deploy.profile is required"
	ConfigDeployContextKeyRequiredFmt = "%s: deploy.context_key is required"
	ConfigDeployActionInvalidFmt      = "%s: deploy.actions[%d] %q must be one of deploy, destroy, diff, synth"
	ConfigDeployActionDuplicateFmt    = "%s: deploy.actions[%d] %q is listed more than once"

	ConfigEnvironmentsRequiredFmt     = "%s: at least one [environments.<name>] table is required"
	ConfigEnvironmentNameInvalidFmt   = "%s: environment name %q must start with a lowercase letter and contain only lowercase letters, digits, and dashes"
	ConfigEnvironmentStackRequiredFmt = "%s: environments.%s.stack_name is required"

	ConfigTaskNameInvalidFmt     = "%s: task name %q must start with a lowercase letter and contain only lowercase letters, digits, and dashes"
	ConfigTaskNameReservedFmt    = "%s: task name %q is reserved for a built-in command"
	ConfigTaskNameGeneratedFmt   = "%s: task name %q collides with a generated environment task"
	ConfigTaskCommandRequiredFmt = "%s: tasks.%s.command is required"
	ConfigTaskCommandInvalidFmt  = "%s: tasks.%s.command: %w"

	ConfigLayerNameRequiredFmt          = "%s: layers[%d].name is required"
	ConfigLayerNameDuplicateFmt         = "%s: layers[%d].name %q duplicates layers[%d].name"
	ConfigLayerDirRequiredFmt           = "%s: layers[%d].dir is required"
	ConfigLayerDirDuplicateFmt          = "%s: layers[%d].dir %q is already used by layers[%d]"
	ConfigLayerDirNestedFmt             = "%s: layers[%d].dir %q overlaps layers[%d].dir %q; layer directories must not contain each other"
	ConfigLayerArchiveRequiredFmt       = "%s: layers[%d].archive is required"
	ConfigLayerPathInvalidFmt           = "%s: layers[%d].%s %q must be a relative path inside the repository"
	ConfigLayerPackagesRequiredFmt      = "%s: layers[%d].packages must list at least one package"
	ConfigLayerPackageNameRequiredFmt   = "%s: layers[%d].packages[%d].name is required"
	ConfigLayerPackageVersionInvalidFmt = "%s: layers[%d].packages[%d] %q must pin an exact version (got %q)"
)

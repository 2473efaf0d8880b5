package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "hxr"
	// RootShort is the short description for the root command.
	RootShort         = "Deployment tasks and layer packaging for the CMS backend"
	RootLong          = "hxr runs the named deployment tasks declared in hxr.toml and packages\nthe pinned Python dependency layers used by the backend functions."
	RootVersionFlag   = "Print version and exit"
	RootFlagVerbose   = "Enable debug logging on stderr"
	RootMissingConfig = "hxr isn't initialized in this repository (missing hxr.toml); run 'hxr init' to create one"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// InitUse is the init command name.
	InitUse            = "init"
	InitShort          = "Write a default hxr.toml at the repository root"
	InitFlagForce      = "Overwrite an existing hxr.toml"
	InitExistsFmt      = "%s already exists; re-run with --force to overwrite it"
	InitWriteFailedFmt = "write %s: %w"
	InitWrittenFmt     = "Wrote %s\n"

	// TasksGroupID is the cobra group for task aliases.
	TasksGroupID    = "tasks"
	TasksGroupTitle = "Tasks (from hxr.toml):"

	TasksUse           = "tasks"
	TasksShort         = "List the task table with the command line each task runs"
	TasksFlagEnv       = "Only list tasks for this environment"
	TasksLineFmt       = "%-*s  %s\n"
	TasksNoneForEnvFmt = "no tasks for environment %q"

	RunUse              = "run <task> [-- args...]"
	RunShort            = "Run a task from the task table"
	RunFlagDryRun       = "Print the command line without running it"
	RunFlagYes          = "Skip the confirmation prompt for destructive tasks"
	RunTaskRequired     = "task name is required"
	RunTooManyArgsFmt   = "unexpected argument %q; pass extra arguments after \"--\""
	RunDryRunFmt        = "%s\n"
	RunConfirmPromptFmt = "Run %q against protected environment %q?\n  %s"
	RunDeclinedFmt      = "%s cancelled"

	TaskAliasLongFmt = "Runs:\n  %s"
	TaskAliasArgsFmt = "%s takes no arguments before \"--\" (got %q); pass extra arguments after \"--\""

	EnvsUse              = "envs"
	EnvsShort            = "List deployment environments"
	EnvsFlagOutput       = "Output format: table or yaml"
	EnvsOutputInvalidFmt = "unsupported output format %q (want table or yaml)"
	EnvsHeader           = "ENVIRONMENT\tSTACK\tREGION\tACCOUNT\tPROTECTED"
	EnvsLineFmt          = "%s\t%s\t%s\t%s\t%t\n"
	EnvsNoAccount        = "-"

	LayersUse            = "layers"
	LayersShort          = "Build, list, and verify dependency layer archives"
	LayersBuildUse       = "build [layer...]"
	LayersBuildShort     = "Install pinned packages into each layer directory and zip it"
	LayersBuildFlagClean = "Remove each layer's install directory before installing"
	LayersListUse        = "list <layer>"
	LayersListShort      = "List the files inside a layer archive"
	LayersVerifyUse      = "verify [layer...]"
	LayersVerifyShort    = "Check archives for pinned packages and cross-layer leakage"
	LayersVerifyOK       = "All layer archives verified."
	LayersVerifyFailed   = "layer verification failed"

	// PromptRequiresTerminalFmt is returned when a confirmation cannot be asked.
	PromptRequiresTerminalFmt = "%s is destructive in a protected environment; re-run with --yes or from an interactive terminal"
)

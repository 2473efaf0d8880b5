package messages

// System messages for internal operations.
const (
	// RootStartPathRequired indicates start path is required for root resolution.
	RootStartPathRequired   = "start path is required"
	RootResolvePathFmt      = "resolve path %s: %w"
	RootPathNotFileFmt      = "%s exists but is not a regular file; move or remove it and retry"
	RootCheckPathFmt        = "check %s: %w"
	RootPathNotDirOrFileFmt = "%s exists but is not a directory or file"

	RunnerSystemRequired = "runner system is required"
	RunnerEmptyArgv      = "task has no command to run"
	RunnerLookPathFmt    = "%s: %w"

	TaskUnknownFmt        = "%w %q"
	TaskUnknownSuggestFmt = "%w %q (did you mean: %s?)"
	TaskShellSplitFmt     = "split %q: %w"
	TaskDeployDescFmt     = "%s %s (%s, %s)"
	TaskBootstrapDesc     = "Bootstrap the deployment toolkit for the account and region"

	LayersSystemRequired       = "layers system is required"
	LayersUnknownFmt           = "unknown layer %q"
	LayersCreateDirFmt         = "create %s: %w"
	LayersCleanDirFmt          = "clean %s: %w"
	LayersInstallFailedFmt     = "install packages for %s: %w"
	LayersWalkFailedFmt        = "scan %s: %w"
	LayersArchiveFailedFmt     = "write archive %s: %w"
	LayersReadArchiveFmt       = "read archive %s: %w"
	LayersOpenLockFmt          = "open lock %s: %w"
	LayersLockFmt              = "lock %s: %w"
	LayersLockTimeoutFmt       = "timed out waiting for lock after %s"
	LayersCreatedDirsFmt       = "Created %s\n"
	LayersArchiveWrittenFmt    = "%s created at %s (%d files)\n"
	LayersMembershipChangedFmt = "%s membership changed since the previous build:\n%s"

	LayersFindingMissingArchiveFmt = "%s: archive %s not found"
	LayersFindingUnreadableFmt     = "%s: archive %s unreadable: %v"
	LayersFindingMissingPackageFmt = "%s: pinned package %s==%s missing (no %s in archive)"
	LayersFindingForeignPackageFmt = "%s: contains %s which is pinned by layer %s"
	LayersFindingSharedFileFmt     = "%s: file %s also appears in layer %s"
)

package messages

// Doctor messages for the doctor command.
const (
	// DoctorUse is the doctor command name.
	DoctorUse   = "doctor"
	DoctorShort = "Check configuration, required tools, credentials profile, and layer archives"

	DoctorHealthCheckFmt = "Checking hxr setup in %s...\n"

	DoctorCheckNameConfig  = "Config"
	DoctorCheckNameTool    = "Tool"
	DoctorCheckNameProfile = "Profile"
	DoctorCheckNameLayer   = "Layer"

	DoctorConfigLoadFailedFmt        = "Failed to load configuration: %v"
	DoctorConfigLoadRecommend        = "Check hxr.toml for syntax errors."
	DoctorConfigLoadLenientRecommend = "Fix the reported field in hxr.toml; remaining checks used the unvalidated values."
	DoctorConfigLoaded               = "Configuration loaded successfully"
	DoctorUnknownKeysEditFmt         = "Edit %s to remove or rename these keys, or run 'hxr init --force' to start from the default config."
	DoctorUnknownKeysHeader          = "Detected keys:"

	DoctorToolFoundFmt            = "%s found at %s"
	DoctorToolMissingFmt          = "%s not found on PATH"
	DoctorToolMissingRecommendFmt = "Install %s or add it to PATH before running tasks that use it."

	DoctorProfileFoundFmt            = "Profile %q found in %s"
	DoctorProfileMissingFmt          = "Profile %q not found in ~/.aws/config or ~/.aws/credentials"
	DoctorProfileMissingRecommendFmt = "Configure it with: aws configure --profile %s"
	DoctorProfileHomeFailedFmt       = "Could not resolve the home directory: %v"

	DoctorLayerArchiveFoundFmt            = "%s: %s (%d files)"
	DoctorLayerArchiveMissingFmt          = "%s: archive %s has not been built"
	DoctorLayerArchiveMissingRecommend    = "Run 'hxr layers build'."
	DoctorLayerArchiveUnreadableFmt       = "%s: archive %s is unreadable: %v"
	DoctorLayerArchiveUnreadableRecommend = "Delete the archive and run 'hxr layers build'."
	DoctorLayerVerifyFailedFmt            = "Layer verification failed: %v"
	DoctorLayerFindingRecommend           = "Rebuild with 'hxr layers build --clean'."

	DoctorStatusOKLabel        = "[OK]"
	DoctorStatusWarnLabel      = "[WARN]"
	DoctorStatusFailLabel      = "[FAIL]"
	DoctorResultLineFmt        = "%s %-8s %s\n"
	DoctorRecommendationPrefix = "       -> "
	DoctorRecommendationIndent = "          "

	DoctorFailureSummary = "Some checks failed. Please address the issues above."
	DoctorFailureError   = "doctor checks failed"
	DoctorSuccessSummary = "All checks passed."
)

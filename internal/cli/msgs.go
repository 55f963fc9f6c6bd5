package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort          = "Project a dotfiles repository onto your home directory"
	MsgVersionShort       = "Print version information"
	MsgInitShort          = "Clone a dotfiles repository, or write a starter configuration"
	MsgSyncShort          = "Pull the repository and install it again"
	MsgStatusShort        = "Show repository and link status"
	MsgInstallShort       = "Install configuration, dependencies or custom scripts"
	MsgInstallConfigShort = "Create the declared symlinks"
	MsgInstallDepsShort   = "Run the dependency script of this platform"
	MsgInstallCustomShort = "Run a custom script"
	MsgInstallAllShort    = "Install dependencies, configuration and custom scripts"
	MsgUninstallShort     = "Remove the links created by dotf"
	MsgValidateShort      = "Check a configuration for errors"
	MsgConfigShort        = "Summarize the configuration or edit the settings"
	MsgBackupShort        = "List and restore backups"
	MsgBackupListShort    = "List backups, most recent first"
	MsgBackupRestoreShort = "Restore the latest backup of a path"
	MsgCompletionShort    = "Generate shell completion script"
	MsgManShort           = "Generate man pages"

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat       = "Output format: auto, term, text, json, markdown, junit"
	MsgFlagDryRun       = "Preview changes without executing them"
	MsgFlagBranch       = "Branch to check out (default: the remote's default branch)"
	MsgFlagInitForce    = "Replace an existing checkout or configuration"
	MsgFlagTemplate     = "Write a starter configuration instead of cloning"
	MsgFlagTemplateName = "Repository name written into the starter configuration"
	MsgFlagYAML         = "Write the starter configuration as dotf.yaml"
	MsgFlagSyncForce    = "Pull even when the checkout has local changes"
	MsgFlagNoInstall    = "Only update the checkout"
	MsgFlagNoRepo       = "Skip the repository check"
	MsgFlagQuiet        = "Print only the summary"
	MsgFlagConfigRepo   = "Also print the repository configuration file"
	MsgFlagConfigEdit   = "Edit the repository settings interactively"
	MsgFlagBackup       = "Back up conflicting files and replace them"
	MsgFlagAbort        = "Leave conflicting files untouched"
	MsgFlagIgnoreErrors = "Install even when validation reports issues"
	MsgFlagPlatform     = "Validate the overlay of this platform (macos, linux)"
	MsgFlagAllPlatforms = "Validate every platform overlay"
	MsgFlagSkipSources  = "Do not check that sources and scripts exist"
	MsgFlagWatch        = "Validate again whenever the configuration changes"
	MsgFlagRestoreAll   = "Restore the latest backup of every path"
	MsgFlagRestoreForce = "Overwrite an existing target, backing it up first"
	MsgFlagManDir       = "Directory receiving the man pages"

	// Status messages
	MsgPromptFallback = "Not running in a terminal, conflicting files will be left untouched (use --backup to replace them)"
	MsgWatching       = "Watching %s for changes, press Ctrl+C to stop"
	MsgManWritten     = "Man pages written to %s"

	// Error messages
	MsgErrNoCommand        = "no command specified"
	MsgErrRestoreArgs      = "restore takes either a path or --all"
	MsgErrTemplateArgs     = "init takes a repository URL, or --template with an optional directory"
	MsgErrUnsupportedShell = "unsupported shell type %q"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/init-example.txt
	msgInitExampleRaw string
	MsgInitExample    = strings.TrimRight(msgInitExampleRaw, "\n")

	//go:embed msgs/sync-long.txt
	msgSyncLongRaw string
	MsgSyncLong    = strings.TrimSpace(msgSyncLongRaw)

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/install-config-example.txt
	msgInstallConfigExampleRaw string
	MsgInstallConfigExample    = strings.TrimRight(msgInstallConfigExampleRaw, "\n")

	//go:embed msgs/validate-long.txt
	msgValidateLongRaw string
	MsgValidateLong    = strings.TrimSpace(msgValidateLongRaw)

	//go:embed msgs/validate-example.txt
	msgValidateExampleRaw string
	MsgValidateExample    = strings.TrimRight(msgValidateExampleRaw, "\n")

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/backup-long.txt
	msgBackupLongRaw string
	MsgBackupLong    = strings.TrimSpace(msgBackupLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)

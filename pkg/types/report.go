package types

import "time"

// Reports are the values commands hand to renderers. They hold display
// strings rather than live errors so every output format can encode them.

// Summary counts projection outcomes.
type Summary struct {
	Total     int `json:"total"`
	Created   int `json:"created"`
	Unchanged int `json:"unchanged"`
	Aborted   int `json:"aborted"`
	Removed   int `json:"removed"`
	Skipped   int `json:"skipped"`
	Errors    int `json:"errors"`
	BackedUp  int `json:"backed_up"`
}

// Failed reports whether any declaration ended in an error.
func (s Summary) Failed() bool { return s.Errors > 0 }

// LinkEntry is one declaration as shown to the user.
type LinkEntry struct {
	Section string     `json:"section"`
	Target  string     `json:"target"`
	Source  string     `json:"source"`
	Line    int        `json:"line,omitempty"`
	Status  LinkStatus `json:"status,omitempty"`
	Outcome Outcome    `json:"outcome,omitempty"`

	// Destination is what a conflicting or broken symlink points at
	Destination string `json:"destination,omitempty"`
	Modified    bool   `json:"modified,omitempty"`
	BackupID    string `json:"backup_id,omitempty"`
	Error       string `json:"error,omitempty"`
	Code        string `json:"code,omitempty"`
}

// LinkReport is the result of install config or uninstall.
type LinkReport struct {
	Command  string      `json:"command"`
	Platform string      `json:"platform"`
	DryRun   bool        `json:"dry_run"`
	Bucket   string      `json:"backup_bucket,omitempty"`
	Entries  []LinkEntry `json:"entries"`
	Summary  Summary     `json:"summary"`

	// Issues is set when validation gated the run
	Issues []ValidationIssue `json:"issues,omitempty"`
}

// ValidationReport is the result of validate.
type ValidationReport struct {
	Config   string            `json:"config"`
	Platform string            `json:"platform,omitempty"`
	Issues   []ValidationIssue `json:"issues"`
}

// Valid reports a clean configuration.
func (r ValidationReport) Valid() bool { return len(r.Issues) == 0 }

// RepositoryState describes the local checkout.
type RepositoryState struct {
	Path   string `json:"path"`
	Remote string `json:"remote,omitempty"`
	Branch string `json:"branch,omitempty"`
	Clean  bool   `json:"clean"`
	Ahead  int    `json:"ahead"`
	Behind int    `json:"behind"`
	Error  string `json:"error,omitempty"`
}

// StatusReport is the result of status.
type StatusReport struct {
	Platform   string           `json:"platform"`
	LastSync   *time.Time       `json:"last_sync,omitempty"`
	Repository *RepositoryState `json:"repository,omitempty"`
	Links      []LinkEntry      `json:"links"`

	// Brief asks the text renderer for the summary lines only
	Brief bool `json:"-"`
}

// Problems counts links that are not valid.
func (r StatusReport) Problems() int {
	n := 0
	for _, l := range r.Links {
		if l.Status != StatusValid {
			n++
		}
	}
	return n
}

// Counts tallies link statuses.
func (r StatusReport) Counts() map[LinkStatus]int {
	counts := make(map[LinkStatus]int, 4)
	for _, l := range r.Links {
		counts[l.Status]++
	}
	return counts
}

// BackupListReport is the result of backup list.
type BackupListReport struct {
	Root    string         `json:"root"`
	Records []BackupRecord `json:"records"`
}

// RestoreEntry is one restored (or not) backup record.
type RestoreEntry struct {
	Original  string         `json:"original"`
	BackupID  string         `json:"backup_id"`
	Outcome   RestoreOutcome `json:"outcome"`
	Displaced string         `json:"displaced,omitempty"`
	Message   string         `json:"message,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// RestoreReport is the result of backup restore.
type RestoreReport struct {
	Entries []RestoreEntry `json:"entries"`
}

// Failed reports whether any restore failed.
func (r RestoreReport) Failed() bool {
	for _, e := range r.Entries {
		if e.Outcome == RestoreFailed {
			return true
		}
	}
	return false
}

// ScriptReport is the result of install deps or install custom.
type ScriptReport struct {
	Name     string        `json:"name"`
	Path     string        `json:"path"`
	ExitCode int           `json:"exit_code"`
	Duration time.Duration `json:"duration_ns"`
	Error    string        `json:"error,omitempty"`

	// Skipped explains why no script ran, e.g. none configured
	Skipped string `json:"skipped,omitempty"`
}

// InstallAllReport is the result of a full install: dependencies, links,
// then the custom scripts the user chose to run.
type InstallAllReport struct {
	Deps   *ScriptReport  `json:"deps,omitempty"`
	Links  *LinkReport    `json:"links,omitempty"`
	Custom []ScriptReport `json:"custom,omitempty"`
}

// InitReport is the result of init.
type InitReport struct {
	Remote   string `json:"remote,omitempty"`
	Branch   string `json:"branch,omitempty"`
	RepoDir  string `json:"repo_dir"`
	Config   string `json:"config,omitempty"`
	Template bool   `json:"template"`
}

// SyncReport is the result of sync.
type SyncReport struct {
	Repository RepositoryState `json:"repository"`
	SyncedAt   time.Time       `json:"synced_at"`
	Install    *LinkReport     `json:"install,omitempty"`
}

// ConfigReport is the result of config: a summary of the repository
// configuration and, on request, its content.
type ConfigReport struct {
	Config      string `json:"config"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`

	Symlinks int `json:"symlinks"`

	// PlatformSymlinks counts the overlay declarations per platform
	PlatformSymlinks map[string]int `json:"platform_symlinks,omitempty"`

	Scripts   int      `json:"scripts"`
	Custom    []string `json:"custom_scripts,omitempty"`
	Platforms []string `json:"platforms"`

	Issues  []ValidationIssue `json:"issues"`
	Content string            `json:"content,omitempty"`
}

// Valid reports a configuration without issues.
func (r ConfigReport) Valid() bool { return len(r.Issues) == 0 }

// SettingsReport is the result of editing the settings.
type SettingsReport struct {
	Path          string `json:"path"`
	Remote        string `json:"remote"`
	Branch        string `json:"branch"`
	InitializedAt string `json:"initialized_at,omitempty"`
	LastSync      string `json:"last_sync,omitempty"`
	Changed       bool   `json:"changed"`
}

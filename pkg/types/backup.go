package types

import "time"

// EntryKind is the kind of filesystem entry a backup holds.
type EntryKind string

const (
	EntryFile    EntryKind = "file"
	EntryDir     EntryKind = "dir"
	EntrySymlink EntryKind = "symlink"
)

// BackupRecord describes one displaced entry. Records are created when a
// conflict is preserved and destroyed only by a restore or external cleanup.
type BackupRecord struct {
	// ID is unique across all buckets: "<bucket>/<sequence>"
	ID string `toml:"id" json:"id"`

	// Original is the absolute path the entry was displaced from
	Original string `toml:"original" json:"original"`

	// Bucket is the timestamp-scoped directory shared by one run
	Bucket string `toml:"bucket" json:"bucket"`

	// Stored is the path of the preserved copy, relative to the bucket
	Stored string `toml:"stored" json:"stored"`

	Kind EntryKind `toml:"kind" json:"kind"`

	// LinkDestination is the preserved symlink's destination for EntrySymlink
	LinkDestination string `toml:"link_destination,omitempty" json:"link_destination,omitempty"`

	// Checksum is the content checksum of an EntryFile copy
	Checksum string `toml:"checksum,omitempty" json:"checksum,omitempty"`

	Size      int64     `toml:"size" json:"size"`
	CreatedAt time.Time `toml:"created_at" json:"created_at"`
}

// RestoreOutcome is the outcome of restoring one backup record.
type RestoreOutcome string

const (
	RestoreRestored RestoreOutcome = "restored"
	RestoreSkipped  RestoreOutcome = "skipped"
	RestoreFailed   RestoreOutcome = "failed"
)

// RestoreResult is the per-record report of a restore.
type RestoreResult struct {
	Record  BackupRecord
	Outcome RestoreOutcome

	// Displaced is set when a forced restore preserved what it replaced
	Displaced *BackupRecord

	Message string
	Err     error
}

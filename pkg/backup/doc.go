// Package backup preserves entries displaced by link creation and restores
// them on demand.
//
// Backups live under dotf's backups directory, one bucket per run:
//
//	backups/
//	  20260301-120000.000000000/
//	    manifest.toml
//	    1/.gitconfig
//	    2/nvim/...
//
// A Store represents one run. Its bucket is chosen on the first Preserve and
// shared by every later Preserve of that run; a bucket name is never reused.
// A backup is copied and verified before Preserve returns, and only then may
// the caller remove the original. File records carry a checksum of their
// copy, and restore refuses a copy that no longer matches. Records are
// never expired here; they go away when restored or when the user deletes
// them.
package backup

package commands

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotf/pkg/backup"
	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/logging"
	"github.com/arthur-debert/dotf/pkg/paths"
	"github.com/arthur-debert/dotf/pkg/types"
)

func (e *Env) backups() *backup.Store {
	return backup.Open(e.FS, e.Layout.BackupsDir(), e.now)
}

// ListBackups returns every backup record, most recent first. Original
// paths under the home directory are shown as "~/...".
func ListBackups(env *Env) (*types.BackupListReport, error) {
	store := env.backups()
	records, err := store.List()
	if err != nil {
		return nil, err
	}

	resolver := env.Resolver()
	for i := range records {
		records[i].Original = resolver.Display(records[i].Original)
	}
	return &types.BackupListReport{Root: resolver.Display(store.Root()), Records: records}, nil
}

// RestoreOptions contains options for Restore and RestoreAll
type RestoreOptions struct {
	// Force replaces a file or directory at the original path after
	// preserving it
	Force bool
}

// Restore puts back the most recent backup of path. "~/..." and absolute
// paths are taken as is; other paths are relative to the working
// directory.
func Restore(env *Env, path string, opts RestoreOptions) (*types.RestoreReport, error) {
	target, err := restorePath(env.Resolver(), path)
	if err != nil {
		return nil, err
	}

	result, err := env.backups().Restore(target, backup.RestoreOptions{Force: opts.Force, Repository: env.RepoDir()})
	if errors.IsErrorCode(err, errors.ErrRestoreNotFound) {
		return nil, err
	}
	report := &types.RestoreReport{Entries: []types.RestoreEntry{restoreEntry(env.Resolver(), result)}}
	return report, err
}

// RestoreAll restores the most recent backup of every recorded path. The
// error is set when at least one restore failed.
func RestoreAll(env *Env, opts RestoreOptions) (*types.RestoreReport, error) {
	results, err := env.backups().RestoreAll(backup.RestoreOptions{Force: opts.Force, Repository: env.RepoDir()})
	if err != nil {
		return nil, err
	}

	resolver := env.Resolver()
	report := &types.RestoreReport{Entries: make([]types.RestoreEntry, 0, len(results))}
	failed := 0
	for _, r := range results {
		if r.Outcome == types.RestoreFailed {
			failed++
		}
		report.Entries = append(report.Entries, restoreEntry(resolver, r))
	}

	logger := logging.GetLogger("commands.backup")
	logger.Info().
		Int("records", len(results)).
		Int("failed", failed).
		Msg("Restore finished")
	if failed > 0 {
		return report, errors.Newf(errors.ErrRestoreFailure, "%d restore(s) failed", failed).
			WithDetail("failed", failed)
	}
	return report, nil
}

func restorePath(resolver *paths.Resolver, path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "a path to restore is required")
	}
	if strings.HasPrefix(path, paths.HomeMarker) || filepath.IsAbs(path) {
		return resolver.Resolve(path, types.RoleTarget)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidPath, "cannot resolve %s", path)
	}
	return abs, nil
}

func restoreEntry(resolver *paths.Resolver, r types.RestoreResult) types.RestoreEntry {
	entry := types.RestoreEntry{
		Original: resolver.Display(r.Record.Original),
		BackupID: r.Record.ID,
		Outcome:  r.Outcome,
		Message:  r.Message,
	}
	if r.Displaced != nil {
		entry.Displaced = r.Displaced.ID
	}
	if r.Err != nil {
		entry.Error = errors.Message(r.Err)
	}
	return entry
}

package backup

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/filesystem"
	"github.com/arthur-debert/dotf/pkg/internal/hashutil"
	"github.com/arthur-debert/dotf/pkg/logging"
	"github.com/arthur-debert/dotf/pkg/types"
)

// RestoreOptions control how a restore treats what is currently at the
// original path.
type RestoreOptions struct {
	// Force replaces a regular file, a directory or a foreign symlink at the
	// original path. The displaced entry is preserved into this run's bucket
	// first.
	Force bool

	// Repository is the root of the managed repository. A symlink pointing
	// inside it was created by dotf and is replaced without Force.
	Repository string
}

// Restore puts back the most recent backup of path. It fails with
// RESTORE_NOT_FOUND when there is none. Nothing at path, a dangling symlink
// or a symlink into the repository is replaced; anything else only with
// Force.
func (s *Store) Restore(path string, opts RestoreOptions) (types.RestoreResult, error) {
	record, err := s.Latest(path)
	if err != nil {
		return types.RestoreResult{Outcome: types.RestoreFailed, Err: err}, err
	}
	result := s.restoreRecord(*record, opts)
	return result, result.Err
}

// RestoreAll restores the most recent backup of every recorded path. Older
// backups of a path that was already handled are reported as skipped. A
// failure never stops the remaining restores.
func (s *Store) RestoreAll(opts RestoreOptions) ([]types.RestoreResult, error) {
	records, err := s.List()
	if err != nil {
		return nil, err
	}

	handled := make(map[string]bool)
	results := make([]types.RestoreResult, 0, len(records))
	for _, record := range records {
		if handled[record.Original] {
			results = append(results, types.RestoreResult{
				Record:  record,
				Outcome: types.RestoreSkipped,
				Message: "a newer backup of this path was already processed",
			})
			continue
		}
		handled[record.Original] = true
		results = append(results, s.restoreRecord(record, opts))
	}
	return results, nil
}

func (s *Store) restoreRecord(record types.BackupRecord, opts RestoreOptions) types.RestoreResult {
	log := logging.GetLogger("backup")
	result := types.RestoreResult{Record: record}
	original := record.Original

	failed := func(err error) types.RestoreResult {
		result.Outcome = types.RestoreFailed
		result.Err = err
		log.Warn().Err(err).Str("path", original).Str("id", record.ID).Msg("Restore failed")
		return result
	}

	stored := s.StoredPath(record)
	if _, err := s.fs.Lstat(stored); err != nil {
		return failed(errors.Wrapf(err, errors.ErrRestoreFailure, "stored copy of %s is missing", original).
			WithDetail("id", record.ID))
	}
	if record.Checksum != "" {
		ok, err := hashutil.Matches(s.fs, stored, record.Checksum)
		if err != nil {
			return failed(errors.Wrapf(err, errors.ErrRestoreFailure, "cannot read stored copy of %s", original))
		}
		if !ok {
			return failed(errors.Newf(errors.ErrRestoreFailure, "stored copy of %s does not match its checksum", original).
				WithDetail("id", record.ID).
				WithDetail("stored", stored))
		}
	}

	current, err := s.fs.Lstat(original)
	switch {
	case err != nil && !os.IsNotExist(err):
		return failed(errors.Wrapf(err, errors.ErrRestoreFailure, "cannot inspect %s", original))

	case err == nil && current.Mode()&os.ModeSymlink != 0 && s.ownedLink(original, opts.Repository):
		if err := s.fs.Remove(original); err != nil {
			return failed(errors.Wrapf(err, errors.ErrRestoreFailure, "cannot remove link at %s", original))
		}

	case err == nil:
		if !opts.Force {
			what := "is not a link"
			if current.Mode()&os.ModeSymlink != 0 {
				what = "links outside the repository"
			}
			return failed(errors.Newf(errors.ErrRestoreConflict,
				"%s exists and %s; use force to replace it", original, what).
				WithDetail("path", original))
		}
		displaced, err := s.Preserve(original)
		if err != nil {
			return failed(err)
		}
		result.Displaced = displaced
		if err := s.fs.RemoveAll(original); err != nil {
			return failed(errors.Wrapf(err, errors.ErrRestoreFailure, "cannot remove %s", original))
		}
	}

	if err := s.fs.MkdirAll(filepath.Dir(original), 0755); err != nil {
		return failed(errors.Wrapf(err, errors.ErrDirCreate, "cannot create parent of %s", original))
	}
	if err := s.moveBack(stored, original); err != nil {
		return failed(errors.Wrapf(err, errors.ErrRestoreFailure, "cannot restore %s", original))
	}

	if err := s.forget(record); err != nil {
		// the file is back; a stale record only means a later restore fails
		log.Warn().Err(err).Str("id", record.ID).Msg("Could not remove restored record from manifest")
	}

	result.Outcome = types.RestoreRestored
	log.Info().Str("path", original).Str("id", record.ID).Msg("Restored entry")
	return result
}

// ownedLink reports whether the symlink at path may be replaced without
// force: it dangles, or it points inside repo.
func (s *Store) ownedLink(path, repo string) bool {
	if _, err := s.fs.Stat(path); err != nil {
		return os.IsNotExist(err)
	}
	if repo == "" {
		return false
	}
	dest, err := s.fs.Readlink(path)
	if err != nil {
		return false
	}
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(path), dest)
	}
	rel, err := filepath.Rel(filepath.Clean(repo), filepath.Clean(dest))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// moveBack renames the stored copy into place, falling back to copy and
// delete when rename is not possible (e.g. across devices).
func (s *Store) moveBack(stored, original string) error {
	if err := s.fs.Rename(stored, original); err == nil {
		return nil
	}
	if _, err := filesystem.Copy(s.fs, stored, original); err != nil {
		_ = s.fs.RemoveAll(original)
		return err
	}
	return s.fs.RemoveAll(stored)
}

// forget drops a record from its bucket's manifest, removing the bucket once
// it holds nothing.
func (s *Store) forget(record types.BackupRecord) error {
	bucketDir := filepath.Join(s.root, record.Bucket)
	_ = s.fs.RemoveAll(filepath.Join(bucketDir, strconv.Itoa(sequence(record.ID))))

	m, err := readManifest(s.fs, bucketDir)
	if err != nil {
		return err
	}
	kept := m.Records[:0]
	for _, r := range m.Records {
		if r.ID != record.ID {
			kept = append(kept, r)
		}
	}
	m.Records = kept

	if len(m.Records) == 0 && record.Bucket != s.bucket {
		return s.fs.RemoveAll(bucketDir)
	}
	return writeManifest(s.fs, bucketDir, m)
}

package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/filesystem"
	"github.com/arthur-debert/dotf/pkg/internal/hashutil"
	"github.com/arthur-debert/dotf/pkg/logging"
	"github.com/arthur-debert/dotf/pkg/types"
)

// BucketLayout is the time format of bucket names.
const BucketLayout = "20060102-150405.000000000"

// Store is the backup area as seen by one run.
type Store struct {
	fs   types.FS
	root string
	now  func() time.Time

	bucket string
	seq    int
}

// Open returns a store rooted at root. Nothing is created until the first
// Preserve. now defaults to time.Now.
func Open(fs types.FS, root string, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{fs: fs, root: root, now: now}
}

// Root returns the backup area directory.
func (s *Store) Root() string { return s.root }

// Bucket returns this run's bucket name, empty until one is created.
func (s *Store) Bucket() string { return s.bucket }

// EnsureBucket creates the backup area and this run's bucket if needed.
// Failure here means no backup can be taken at all and is reported with
// BACKUP_AREA.
func (s *Store) EnsureBucket() (string, error) {
	if s.bucket != "" {
		return s.bucket, nil
	}

	if err := s.fs.MkdirAll(s.root, 0700); err != nil {
		return "", errors.Wrapf(err, errors.ErrBackupArea, "cannot create backup area %s", s.root).
			WithDetail("path", s.root)
	}

	base := s.now().UTC().Format(BucketLayout)
	name := base
	for i := 2; ; i++ {
		exists, err := filesystem.Exists(s.fs, filepath.Join(s.root, name))
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrBackupArea, "cannot inspect backup area %s", s.root)
		}
		if !exists {
			break
		}
		name = base + "-" + strconv.Itoa(i)
	}

	if err := s.fs.MkdirAll(filepath.Join(s.root, name), 0700); err != nil {
		return "", errors.Wrapf(err, errors.ErrBackupArea, "cannot create backup bucket %s", name).
			WithDetail("path", filepath.Join(s.root, name))
	}

	log := logging.GetLogger("backup")
	log.Debug().Str("bucket", name).Msg("Created backup bucket")
	s.bucket = name
	return name, nil
}

// Preserve copies the entry at path into this run's bucket and records it.
// The original is left in place; the record is returned only once the copy
// has been verified and the manifest written.
func (s *Store) Preserve(path string) (*types.BackupRecord, error) {
	log := logging.GetLogger("backup")

	bucket, err := s.EnsureBucket()
	if err != nil {
		return nil, err
	}

	info, err := s.fs.Lstat(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrBackupFailure, "cannot read %s", path).
			WithDetail("path", path)
	}

	s.seq++
	bucketDir := filepath.Join(s.root, bucket)
	slot := strconv.Itoa(s.seq)
	stored := filepath.Join(slot, filepath.Base(path))
	dst := filepath.Join(bucketDir, stored)

	fail := func(err error, msg string) (*types.BackupRecord, error) {
		_ = s.fs.RemoveAll(filepath.Join(bucketDir, slot))
		return nil, errors.Wrapf(err, errors.ErrBackupFailure, "%s %s", msg, path).
			WithDetail("path", path).
			WithDetail("bucket", bucket)
	}

	if err := s.fs.MkdirAll(filepath.Dir(dst), 0700); err != nil {
		return fail(err, "cannot prepare backup of")
	}
	size, err := filesystem.Copy(s.fs, path, dst)
	if err != nil {
		return fail(err, "cannot copy")
	}
	if err := filesystem.Verify(s.fs, path, dst); err != nil {
		return fail(err, "backup verification failed for")
	}

	record := types.BackupRecord{
		ID:        bucket + "/" + slot,
		Original:  filepath.Clean(path),
		Bucket:    bucket,
		Stored:    filepath.ToSlash(stored),
		Kind:      filesystem.KindOf(info),
		Size:      size,
		CreatedAt: s.now().UTC(),
	}
	switch record.Kind {
	case types.EntrySymlink:
		record.LinkDestination, _ = s.fs.Readlink(path)
	case types.EntryFile:
		if record.Checksum, err = hashutil.FileChecksum(s.fs, dst); err != nil {
			return fail(err, "cannot checksum backup of")
		}
	}

	m, err := readManifest(s.fs, bucketDir)
	if err != nil {
		return fail(err, "cannot read manifest while preserving")
	}
	m.Records = append(m.Records, record)
	if err := writeManifest(s.fs, bucketDir, m); err != nil {
		return fail(err, "cannot record backup of")
	}

	log.Info().
		Str("path", path).
		Str("id", record.ID).
		Str("kind", string(record.Kind)).
		Msg("Preserved entry")
	return &record, nil
}

// List returns every record across all buckets, most recent first. A
// missing backup area is an empty list. Unreadable buckets are skipped.
func (s *Store) List() ([]types.BackupRecord, error) {
	log := logging.GetLogger("backup")

	entries, err := s.fs.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return []types.BackupRecord{}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read backup area %s", s.root)
	}

	records := []types.BackupRecord{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		m, err := readManifest(s.fs, filepath.Join(s.root, entry.Name()))
		if err != nil {
			log.Warn().Err(err).Str("bucket", entry.Name()).Msg("Skipping unreadable backup bucket")
			continue
		}
		records = append(records, m.Records...)
	}

	sortNewestFirst(records)
	return records, nil
}

// Latest returns the most recent record for path.
func (s *Store) Latest(path string) (*types.BackupRecord, error) {
	records, err := s.List()
	if err != nil {
		return nil, err
	}
	path = filepath.Clean(path)
	for i := range records {
		if records[i].Original == path {
			return &records[i], nil
		}
	}
	return nil, errors.Newf(errors.ErrRestoreNotFound, "no backup found for %s", path).
		WithDetail("path", path)
}

// StoredPath returns the absolute location of a record's preserved copy.
func (s *Store) StoredPath(record types.BackupRecord) string {
	return filepath.Join(s.root, record.Bucket, filepath.FromSlash(record.Stored))
}

func (s *Store) String() string {
	return fmt.Sprintf("backup store at %s (bucket %q)", s.root, s.bucket)
}

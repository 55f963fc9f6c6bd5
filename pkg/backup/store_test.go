// pkg/backup/store_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem (t.TempDir)
// PURPOSE: Test preservation, listing and bucket allocation

package backup_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/dotf/pkg/backup"
	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/filesystem"
	"github.com/arthur-debert/dotf/pkg/testutil"
	"github.com/arthur-debert/dotf/pkg/types"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clock returns a fixed time that advances by one second per call.
func clock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(time.Second)
		return t
	}
}

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestPreserveFile(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	original := env.WriteHomeFile(".gitconfig", "X")

	store := backup.Open(env.FS, env.Layout.BackupsDir(), clock(epoch))
	record, err := store.Preserve(original)
	require.NoError(t, err)

	assert.Equal(t, "20260301-120000.000000000", record.Bucket)
	assert.Equal(t, record.Bucket+"/1", record.ID)
	assert.Equal(t, original, record.Original)
	assert.Equal(t, types.EntryFile, record.Kind)
	assert.Equal(t, int64(1), record.Size)

	testutil.AssertFileContent(t, original, "X")
	testutil.AssertFileContent(t, store.StoredPath(*record), "X")
	assert.FileExists(t, filepath.Join(env.Layout.BackupsDir(), record.Bucket, backup.ManifestFileName))
}

func TestPreserveDirectoryAndSymlink(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteHomeFile(".config/nvim/init.lua", "vim.o.number = true")
	env.WriteHomeFile(".config/nvim/lua/plugins.lua", "return {}")
	link := env.Link("/somewhere/else", ".profile")

	store := backup.Open(env.FS, env.Layout.BackupsDir(), clock(epoch))

	dir, err := store.Preserve(env.HomePath(".config/nvim"))
	require.NoError(t, err)
	assert.Equal(t, types.EntryDir, dir.Kind)
	testutil.AssertFileContent(t, filepath.Join(store.StoredPath(*dir), "lua", "plugins.lua"), "return {}")

	sym, err := store.Preserve(link)
	require.NoError(t, err)
	assert.Equal(t, types.EntrySymlink, sym.Kind)
	assert.Equal(t, "/somewhere/else", sym.LinkDestination)
	testutil.AssertSymlink(t, store.StoredPath(*sym), "/somewhere/else")

	assert.Equal(t, dir.Bucket, sym.Bucket, "one bucket per run")
	assert.NotEqual(t, dir.ID, sym.ID)
}

func TestBucketsAreNeverReused(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	original := env.WriteHomeFile(".zshrc", "one")

	fixed := func() time.Time { return epoch }

	first := backup.Open(env.FS, env.Layout.BackupsDir(), fixed)
	a, err := first.Preserve(original)
	require.NoError(t, err)

	second := backup.Open(env.FS, env.Layout.BackupsDir(), fixed)
	b, err := second.Preserve(original)
	require.NoError(t, err)

	assert.Equal(t, a.Bucket+"-2", b.Bucket)
	testutil.AssertFileContent(t, first.StoredPath(*a), "one")
}

func TestList(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	root := env.Layout.BackupsDir()

	records, err := backup.Open(env.FS, root, nil).List()
	require.NoError(t, err)
	assert.Empty(t, records, "missing area is empty")

	vimrc := env.WriteHomeFile(".vimrc", "v1")
	zshrc := env.WriteHomeFile(".zshrc", "z1")

	run1 := backup.Open(env.FS, root, clock(epoch))
	_, err = run1.Preserve(vimrc)
	require.NoError(t, err)
	_, err = run1.Preserve(zshrc)
	require.NoError(t, err)

	run2 := backup.Open(env.FS, root, clock(epoch.Add(time.Hour)))
	_, err = run2.Preserve(vimrc)
	require.NoError(t, err)

	// garbage in the area is ignored
	require.NoError(t, os.WriteFile(filepath.Join(root, "README"), []byte("x"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "broken"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "broken", backup.ManifestFileName), []byte("not = [toml"), 0644))

	records, err = backup.Open(env.FS, root, nil).List()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, vimrc, records[0].Original)
	assert.Equal(t, run2.Bucket(), records[0].Bucket)
	assert.Equal(t, zshrc, records[1].Original)
	assert.Equal(t, vimrc, records[2].Original)
}

func TestPreserveFailureLeavesOriginal(t *testing.T) {
	tests := []struct {
		name string
		op   string
	}{
		{name: "copy_fails", op: "WriteFile"},
		{name: "manifest_rename_fails", op: "Rename"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.NewTestEnvironment(t)
			original := env.WriteHomeFile(".gitconfig", "X")
			fs := testutil.NewFaultyFS(env.FS).Inject(tt.op, testutil.FailOn("backups", testutil.ErrInjected))

			store := backup.Open(fs, env.Layout.BackupsDir(), clock(epoch))
			record, err := store.Preserve(original)

			require.Error(t, err)
			assert.Nil(t, record)
			assert.True(t, errors.IsErrorCode(err, errors.ErrBackupFailure), "got %v", err)
			testutil.AssertFileContent(t, original, "X")
			testutil.AssertNoEntry(t, filepath.Join(env.Layout.BackupsDir(), store.Bucket(), "1"))

			records, err := backup.Open(env.FS, env.Layout.BackupsDir(), nil).List()
			require.NoError(t, err)
			assert.Empty(t, records)
		})
	}
}

func TestPreserveAreaFailure(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	original := env.WriteHomeFile(".gitconfig", "X")
	fs := testutil.NewFaultyFS(env.FS).Inject("MkdirAll", testutil.FailOn("backups", testutil.ErrInjected))

	_, err := backup.Open(fs, env.Layout.BackupsDir(), nil).Preserve(original)
	assert.True(t, errors.IsErrorCode(err, errors.ErrBackupArea), "got %v", err)
}

func TestPreserveMissing(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	_, err := backup.Open(filesystem.NewOS(), env.Layout.BackupsDir(), nil).Preserve(env.HomePath("nope"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrBackupFailure))
}

func TestEnsureBucketLogsCreation(t *testing.T) {
	var buf bytes.Buffer
	previous, level := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = previous
		zerolog.SetGlobalLevel(level)
	})
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	env := testutil.NewTestEnvironment(t)
	name, err := backup.Open(env.FS, env.Layout.BackupsDir(), clock(epoch)).EnsureBucket()
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"component":"backup"`)
	assert.Contains(t, out, `"bucket":"`+name+`"`)
	assert.Contains(t, out, "Created backup bucket")
}

package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotf/pkg/types"
)

// Exists reports whether anything, including a dangling symlink, is at path.
func Exists(fsys types.FS, path string) (bool, error) {
	_, err := fsys.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// KindOf maps file info onto the backup entry kinds.
func KindOf(info fs.FileInfo) types.EntryKind {
	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		return types.EntrySymlink
	case info.IsDir():
		return types.EntryDir
	default:
		return types.EntryFile
	}
}

// Copy duplicates the entry at src to dst without following a symlink at
// src: files are copied with their permissions, directories recursively and
// symlinks are recreated with the same destination. It returns the number of
// file bytes copied. dst must not exist and its parent must.
func Copy(fsys types.FS, src, dst string) (int64, error) {
	info, err := fsys.Lstat(src)
	if err != nil {
		return 0, err
	}

	switch KindOf(info) {
	case types.EntrySymlink:
		dest, err := fsys.Readlink(src)
		if err != nil {
			return 0, err
		}
		return 0, fsys.Symlink(dest, dst)

	case types.EntryDir:
		if err := fsys.MkdirAll(dst, info.Mode().Perm()); err != nil {
			return 0, err
		}
		entries, err := fsys.ReadDir(src)
		if err != nil {
			return 0, err
		}
		var total int64
		for _, entry := range entries {
			n, err := Copy(fsys, filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name()))
			total += n
			if err != nil {
				return total, err
			}
		}
		return total, nil

	default:
		if !info.Mode().IsRegular() {
			return 0, &fs.PathError{Op: "copy", Path: src, Err: fs.ErrInvalid}
		}
		data, err := fsys.ReadFile(src)
		if err != nil {
			return 0, err
		}
		if err := fsys.WriteFile(dst, data, info.Mode().Perm()); err != nil {
			return 0, err
		}
		return int64(len(data)), nil
	}
}

// Verify checks that dst holds the same entry as src: same kind, same link
// destination, same file bytes, same directory entries.
func Verify(fsys types.FS, src, dst string) error {
	srcInfo, err := fsys.Lstat(src)
	if err != nil {
		return err
	}
	dstInfo, err := fsys.Lstat(dst)
	if err != nil {
		return err
	}
	if KindOf(srcInfo) != KindOf(dstInfo) {
		return &fs.PathError{Op: "verify", Path: dst, Err: fs.ErrInvalid}
	}

	switch KindOf(srcInfo) {
	case types.EntrySymlink:
		a, err := fsys.Readlink(src)
		if err != nil {
			return err
		}
		b, err := fsys.Readlink(dst)
		if err != nil {
			return err
		}
		if a != b {
			return &fs.PathError{Op: "verify", Path: dst, Err: fs.ErrInvalid}
		}
		return nil

	case types.EntryDir:
		entries, err := fsys.ReadDir(src)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if err := Verify(fsys, filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
				return err
			}
		}
		return nil

	default:
		if srcInfo.Size() != dstInfo.Size() {
			return &fs.PathError{Op: "verify", Path: dst, Err: fs.ErrInvalid}
		}
		a, err := fsys.ReadFile(src)
		if err != nil {
			return err
		}
		b, err := fsys.ReadFile(dst)
		if err != nil {
			return err
		}
		if string(a) != string(b) {
			return &fs.PathError{Op: "verify", Path: dst, Err: fs.ErrInvalid}
		}
		return nil
	}
}

// WriteFileAtomic writes data to a temporary sibling and renames it over name.
func WriteFileAtomic(fsys types.FS, name string, data []byte, perm fs.FileMode) error {
	tmp := name + ".tmp"
	if err := fsys.WriteFile(tmp, data, perm); err != nil {
		_ = fsys.Remove(tmp)
		return err
	}
	if err := fsys.Rename(tmp, name); err != nil {
		_ = fsys.Remove(tmp)
		return err
	}
	return nil
}

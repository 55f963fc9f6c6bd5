package testutil

import (
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/arthur-debert/dotf/pkg/types"
)

// Fault decides whether an operation on path fails.
type Fault func(path string) error

// FailOn returns a fault that fails with err for paths containing substr.
func FailOn(substr string, err error) Fault {
	return func(path string) error {
		if strings.Contains(path, substr) {
			return err
		}
		return nil
	}
}

// ErrInjected is the default injected failure.
var ErrInjected = &fs.PathError{Op: "injected", Path: "", Err: os.ErrPermission}

// FaultyFS wraps a filesystem and fails selected operations. Operation names
// are the types.FS method names ("Symlink", "WriteFile", ...).
type FaultyFS struct {
	types.FS

	mu     sync.Mutex
	faults map[string]Fault
	calls  map[string]int
}

// NewFaultyFS wraps inner.
func NewFaultyFS(inner types.FS) *FaultyFS {
	return &FaultyFS{FS: inner, faults: map[string]Fault{}, calls: map[string]int{}}
}

// Inject registers a fault for op.
func (f *FaultyFS) Inject(op string, fault Fault) *FaultyFS {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults[op] = fault
	return f
}

// Calls returns how often op was invoked.
func (f *FaultyFS) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *FaultyFS) check(op, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	if fault, ok := f.faults[op]; ok {
		return fault(path)
	}
	return nil
}

func (f *FaultyFS) Stat(name string) (fs.FileInfo, error) {
	if err := f.check("Stat", name); err != nil {
		return nil, err
	}
	return f.FS.Stat(name)
}

func (f *FaultyFS) Lstat(name string) (fs.FileInfo, error) {
	if err := f.check("Lstat", name); err != nil {
		return nil, err
	}
	return f.FS.Lstat(name)
}

func (f *FaultyFS) ReadFile(name string) ([]byte, error) {
	if err := f.check("ReadFile", name); err != nil {
		return nil, err
	}
	return f.FS.ReadFile(name)
}

func (f *FaultyFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if err := f.check("WriteFile", name); err != nil {
		return err
	}
	return f.FS.WriteFile(name, data, perm)
}

func (f *FaultyFS) MkdirAll(path string, perm fs.FileMode) error {
	if err := f.check("MkdirAll", path); err != nil {
		return err
	}
	return f.FS.MkdirAll(path, perm)
}

func (f *FaultyFS) Symlink(oldname, newname string) error {
	if err := f.check("Symlink", newname); err != nil {
		return err
	}
	return f.FS.Symlink(oldname, newname)
}

func (f *FaultyFS) Readlink(name string) (string, error) {
	if err := f.check("Readlink", name); err != nil {
		return "", err
	}
	return f.FS.Readlink(name)
}

func (f *FaultyFS) Remove(name string) error {
	if err := f.check("Remove", name); err != nil {
		return err
	}
	return f.FS.Remove(name)
}

func (f *FaultyFS) RemoveAll(path string) error {
	if err := f.check("RemoveAll", path); err != nil {
		return err
	}
	return f.FS.RemoveAll(path)
}

func (f *FaultyFS) Rename(oldpath, newpath string) error {
	if err := f.check("Rename", newpath); err != nil {
		return err
	}
	return f.FS.Rename(oldpath, newpath)
}

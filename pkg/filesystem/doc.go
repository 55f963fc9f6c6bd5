// Package filesystem provides the types.FS implementation used by dotf.
//
// It is a thin layer over afero. Symlink support comes from afero's optional
// Symlinker capability, which the OS backed filesystems implement; backends
// without it report afero's ErrNoSymlink / ErrNoReadlink instead of faking
// links. The package also carries the copy helpers the backup store uses.
package filesystem

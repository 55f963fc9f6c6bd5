// Package paths normalizes declared paths and describes dotf's on-disk layout.
//
// The Resolver turns the raw strings of a declaration into absolute paths.
// Targets may use the home marker ("~" or "~/..."); sources never may, since
// they live in the managed repository and are resolved against its root.
// Both the home directory and the repository root are passed in explicitly so
// that resolution is a pure function of its inputs.
//
// Layout locates dotf's own files: the cloned repository, the settings file
// and the backup area, all rooted at $DOTF_HOME or ~/.dotf.
package paths

// Package testutil provides utilities for testing dotf components.
//
// Key components:
//   - TestEnvironment: an isolated home directory, dotf directory and
//     repository on the real filesystem (symlinks need one)
//   - FaultyFS: a types.FS wrapper that injects failures per operation
//   - Mocks for the repository, script executor and conflict prompt
//   - Assertions about links and file contents
//
// Each test gets its own temporary tree and environment; nothing is shared.
package testutil

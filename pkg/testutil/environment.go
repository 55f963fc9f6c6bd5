// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Orchestrate isolated test environments on the real filesystem

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotf/pkg/filesystem"
	"github.com/arthur-debert/dotf/pkg/paths"
	"github.com/arthur-debert/dotf/pkg/types"
)

// TestEnvironment provides a home directory with a dotf layout and an empty
// repository checkout.
type TestEnvironment struct {
	Root     string
	Home     string
	Layout   *paths.Layout
	FS       types.FS
	Resolver *paths.Resolver

	t *testing.T
}

// NewTestEnvironment creates the environment and points HOME, DOTF_HOME,
// XDG_STATE_HOME and DOTF_LOG_FILE into it for the duration of the test.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	root := t.TempDir()
	home := filepath.Join(root, "home")

	t.Setenv("HOME", home)
	t.Setenv(paths.EnvDotfHome, "")
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	t.Setenv("DOTF_LOG_FILE", filepath.Join(root, "state", "dotf.log"))

	layout, err := paths.NewLayout(home)
	if err != nil {
		t.Fatalf("Failed to create layout: %v", err)
	}
	if err := os.MkdirAll(layout.RepoDir(), 0755); err != nil {
		t.Fatalf("Failed to create repository dir: %v", err)
	}

	return &TestEnvironment{
		Root:     root,
		Home:     home,
		Layout:   layout,
		FS:       filesystem.NewOS(),
		Resolver: layout.Resolver(),
		t:        t,
	}
}

// RepoPath returns the absolute path of rel inside the repository.
func (e *TestEnvironment) RepoPath(rel string) string {
	return filepath.Join(e.Layout.RepoDir(), rel)
}

// HomePath returns the absolute path of rel inside the home directory.
func (e *TestEnvironment) HomePath(rel string) string {
	return filepath.Join(e.Home, rel)
}

// WriteRepoFile creates a file in the repository.
func (e *TestEnvironment) WriteRepoFile(rel, content string) string {
	e.t.Helper()
	return e.write(e.RepoPath(rel), content, 0644)
}

// WriteScript creates an executable script in the repository.
func (e *TestEnvironment) WriteScript(rel, body string) string {
	e.t.Helper()
	return e.write(e.RepoPath(rel), "#!/bin/sh\n"+body+"\n", 0755)
}

// WriteHomeFile creates a file in the home directory.
func (e *TestEnvironment) WriteHomeFile(rel, content string) string {
	e.t.Helper()
	return e.write(e.HomePath(rel), content, 0644)
}

// WriteConfig writes dotf.toml at the repository root.
func (e *TestEnvironment) WriteConfig(doc string) string {
	e.t.Helper()
	return e.write(e.RepoPath(paths.ConfigFileName), doc, 0644)
}

// Link creates a symlink at rel in the home directory pointing at dest.
func (e *TestEnvironment) Link(dest, rel string) string {
	e.t.Helper()
	target := e.HomePath(rel)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		e.t.Fatalf("Failed to create %s: %v", filepath.Dir(target), err)
	}
	if err := os.Symlink(dest, target); err != nil {
		e.t.Fatalf("Failed to link %s: %v", target, err)
	}
	return target
}

// Declaration builds a base-section declaration.
func Declaration(target, source string) types.Declaration {
	return types.Declaration{Target: target, Source: source, Section: "symlinks"}
}

func (e *TestEnvironment) write(path, content string, perm os.FileMode) string {
	e.t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.t.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		e.t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

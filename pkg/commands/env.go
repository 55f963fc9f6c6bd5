package commands

import (
	"path/filepath"
	"runtime"
	"time"

	"github.com/arthur-debert/dotf/pkg/config"
	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/filesystem"
	"github.com/arthur-debert/dotf/pkg/paths"
	"github.com/arthur-debert/dotf/pkg/repository"
	"github.com/arthur-debert/dotf/pkg/scripts"
	"github.com/arthur-debert/dotf/pkg/settings"
	"github.com/arthur-debert/dotf/pkg/types"
)

// Supported platforms.
const (
	PlatformMacOS = "macos"
	PlatformLinux = "linux"
)

// Env holds the collaborators shared by all commands.
type Env struct {
	Layout     *paths.Layout
	FS         types.FS
	Settings   *settings.Settings
	Repository repository.Repository
	Scripts    scripts.Executor

	// ReadFS serves the commands that only inspect the filesystem
	// (validate, status, config); nil means FS
	ReadFS types.FS

	// Now defaults to time.Now
	Now func() time.Time

	// GOOS defaults to runtime.GOOS; the settings platform overrides it
	GOOS string
}

// NewEnv loads settings for layout and wires the real git and shell
// collaborators.
func NewEnv(layout *paths.Layout, overrides map[string]interface{}) (*Env, error) {
	s, err := settings.Load(layout.SettingsPath(), overrides)
	if err != nil {
		return nil, err
	}
	fs := filesystem.NewOS()
	return &Env{
		Layout:     layout,
		FS:         fs,
		ReadFS:     filesystem.NewReadOnly(),
		Settings:   s,
		Repository: repository.NewGit(time.Duration(s.Repository.Timeout)),
		Scripts:    scripts.NewShell(fs, scripts.Options{Dir: layout.RepoDir()}),
	}, nil
}

func (e *Env) readFS() types.FS {
	if e.ReadFS != nil {
		return e.ReadFS
	}
	return e.FS
}

func (e *Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// Platform returns the platform whose overlay and dependency script apply.
func (e *Env) Platform() (string, error) {
	if e.Settings != nil && e.Settings.Platform != "" {
		return e.Settings.Platform, nil
	}
	goos := e.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	return DetectPlatform(goos)
}

// DetectPlatform maps a GOOS value onto a configuration platform name.
func DetectPlatform(goos string) (string, error) {
	switch goos {
	case "darwin":
		return PlatformMacOS, nil
	case "linux":
		return PlatformLinux, nil
	default:
		return "", errors.Newf(errors.ErrUnsupportedHost, "unsupported platform %q", goos).
			WithDetail("goos", goos)
	}
}

// RepoDir is the local checkout, from settings when set.
func (e *Env) RepoDir() string {
	if e.Settings != nil && e.Settings.Repository.Local != "" {
		return e.Settings.Repository.Local
	}
	return e.Layout.RepoDir()
}

// Resolver resolves declarations against the home and the checkout.
func (e *Env) Resolver() *paths.Resolver {
	return paths.NewResolver(e.Layout.Home(), e.RepoDir())
}

// requireInitialized fails with NOT_INITIALIZED unless init has run and the
// checkout exists.
func (e *Env) requireInitialized() error {
	if e.Settings == nil || !e.Settings.Initialized() {
		return errors.New(errors.ErrNotInitialized, "dotf is not initialized, run 'dotf init <repository>' first")
	}
	exists, err := filesystem.Exists(e.readFS(), e.RepoDir())
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot access %s", e.RepoDir())
	}
	if !exists {
		return errors.Newf(errors.ErrNotInitialized, "repository checkout %s is missing, run 'dotf init' again", e.RepoDir()).
			WithDetail("path", e.RepoDir())
	}
	return nil
}

// loadConfig finds and parses the configuration of the checkout.
func (e *Env) loadConfig() (*config.Config, error) {
	path, err := config.Find(e.readFS(), e.RepoDir())
	if err != nil {
		return nil, err
	}
	return config.Load(e.readFS(), path)
}

func (e *Env) saveSettings() error {
	return e.Settings.Save(e.FS, e.Layout.SettingsPath())
}

// repoRelative returns path relative to the checkout, or "" when it lies
// outside it.
func (e *Env) repoRelative(path string) string {
	if !paths.IsWithin(path, e.RepoDir()) {
		return ""
	}
	rel, err := filepath.Rel(e.RepoDir(), path)
	if err != nil {
		return ""
	}
	return filepath.ToSlash(rel)
}

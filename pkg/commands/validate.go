package commands

import (
	"path/filepath"

	"github.com/arthur-debert/dotf/pkg/config"
	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/logging"
	"github.com/arthur-debert/dotf/pkg/paths"
	"github.com/arthur-debert/dotf/pkg/types"
	"github.com/arthur-debert/dotf/pkg/validation"
)

// ValidateOptions contains options for Validate
type ValidateOptions struct {
	// Path is a configuration file or a directory holding one; empty means
	// the managed checkout
	Path string

	// Platform selects the overlay; empty means the current platform
	Platform string

	// AllPlatforms checks every overlay
	AllPlatforms bool

	// SkipSourceCheck disables source and script existence checks
	SkipSourceCheck bool
}

// ConfigPath locates the configuration file Validate would read.
func ConfigPath(env *Env, path string) (string, error) {
	if path == "" {
		return config.Find(env.readFS(), env.RepoDir())
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidPath, "cannot resolve %s", path)
	}
	info, err := env.readFS().Stat(abs)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrNotFound, "%s does not exist", path).WithDetail("path", abs)
	}
	if info.IsDir() {
		return config.Find(env.readFS(), abs)
	}
	return abs, nil
}

// Validate checks a configuration without touching the filesystem. Syntax
// errors are reported as issues; only failures to read the file are
// returned as errors. Sources resolve against the directory holding the
// configuration file.
func Validate(env *Env, opts ValidateOptions) (*types.ValidationReport, error) {
	path, err := ConfigPath(env, opts.Path)
	if err != nil {
		return nil, err
	}

	platform := opts.Platform
	if platform == "" && !opts.AllPlatforms {
		if platform, err = env.Platform(); err != nil {
			return nil, err
		}
	}

	resolver := paths.NewResolver(env.Layout.Home(), filepath.Dir(path))
	report := &types.ValidationReport{
		Config:   resolver.Display(path),
		Platform: platform,
		Issues:   []types.ValidationIssue{},
	}

	cfg, err := config.Load(env.readFS(), path)
	if err != nil {
		issue, ok := validation.IssueFromError(path, err)
		if !ok {
			return nil, err
		}
		report.Issues = append(report.Issues, issue)
		return report, nil
	}

	report.Issues = validation.New(resolver, env.readFS()).Validate(cfg, validation.Options{
		Platform:        platform,
		AllPlatforms:    opts.AllPlatforms,
		SkipSourceCheck: opts.SkipSourceCheck,
	})

	logger := logging.GetLogger("commands.validate")
	logger.Debug().
		Str("config", path).
		Int("issues", len(report.Issues)).
		Msg("Validation finished")
	return report, nil
}

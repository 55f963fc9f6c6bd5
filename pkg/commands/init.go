package commands

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/dotf/pkg/config"
	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/filesystem"
	"github.com/arthur-debert/dotf/pkg/logging"
	"github.com/arthur-debert/dotf/pkg/repository"
	"github.com/arthur-debert/dotf/pkg/types"
)

// InitOptions contains options for Init
type InitOptions struct {
	// Remote is the repository URL to clone
	Remote string

	// Branch to check out; empty uses the remote's default branch
	Branch string

	// Force replaces an existing setup
	Force bool
}

// Init clones the dotfiles repository and records it in the settings.
func Init(ctx context.Context, env *Env, opts InitOptions) (*types.InitReport, error) {
	logger := logging.GetLogger("commands.init")
	logger.Debug().Str("remote", opts.Remote).Str("branch", opts.Branch).Bool("force", opts.Force).Msg("Starting init")

	if opts.Remote == "" {
		return nil, errors.New(errors.ErrInvalidInput, "a repository URL is required")
	}

	repoDir := env.Layout.RepoDir()
	existing, err := filesystem.Exists(env.FS, repoDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot access %s", repoDir)
	}
	if env.Settings.Initialized() || existing {
		if !opts.Force {
			return nil, errors.Newf(errors.ErrInvalidInput,
				"dotf is already initialized with %s, use --force to replace it", env.Settings.Repository.Remote).
				WithDetail("remote", env.Settings.Repository.Remote)
		}
		logger.Info().Str("path", repoDir).Msg("Removing existing checkout")
		if err := env.FS.RemoveAll(repoDir); err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot remove %s", repoDir)
		}
	}

	if err := env.Repository.ValidateRemote(ctx, opts.Remote); err != nil {
		return nil, err
	}

	branch := opts.Branch
	if branch == "" {
		branch, err = env.Repository.DefaultBranch(ctx, opts.Remote)
		if err != nil || branch == "" {
			logger.Warn().Err(err).Str("branch", repository.DefaultBranch).Msg("Cannot read remote default branch")
			branch = repository.DefaultBranch
		}
	}

	if err := env.FS.MkdirAll(env.Layout.BackupsDir(), 0700); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", env.Layout.Root())
	}
	if err := env.Repository.Clone(ctx, opts.Remote, branch, repoDir); err != nil {
		return nil, err
	}

	// A repository without a usable configuration is not kept
	cfgPath, err := config.Find(env.FS, repoDir)
	if err == nil {
		_, err = config.Load(env.FS, cfgPath)
	}
	if err != nil {
		if rmErr := env.FS.RemoveAll(repoDir); rmErr != nil {
			logger.Warn().Err(rmErr).Str("path", repoDir).Msg("Cannot remove rejected checkout")
		}
		return nil, err
	}

	env.Settings.Repository.Remote = opts.Remote
	env.Settings.Repository.Branch = branch
	env.Settings.Repository.Local = repoDir
	env.Settings.MarkInitialized(env.now())
	if err := env.saveSettings(); err != nil {
		return nil, err
	}

	logger.Info().Str("remote", opts.Remote).Str("branch", branch).Msg("Initialized")
	return &types.InitReport{
		Remote:  opts.Remote,
		Branch:  branch,
		RepoDir: env.Resolver().Display(repoDir),
		Config:  filepath.Base(cfgPath),
	}, nil
}

// TemplateOptions contains options for InitTemplate
type TemplateOptions struct {
	// Dir receives the configuration file
	Dir string

	// Name goes into [repo]; defaults to the directory name
	Name string

	Format config.Format

	// Force overwrites an existing configuration
	Force bool
}

// InitTemplate writes a starter configuration into a directory, typically
// a new dotfiles repository.
func InitTemplate(env *Env, opts TemplateOptions) (*types.InitReport, error) {
	if opts.Format == "" {
		opts.Format = config.FormatTOML
	}
	if opts.Name == "" {
		opts.Name = filepath.Base(opts.Dir)
	}

	name := "dotf.toml"
	if opts.Format == config.FormatYAML {
		name = "dotf.yaml"
	}
	path := filepath.Join(opts.Dir, name)

	if found, err := config.Find(env.FS, opts.Dir); err == nil && !opts.Force {
		return nil, errors.Newf(errors.ErrInvalidInput, "%s already exists, use --force to overwrite it", found).
			WithDetail("path", found)
	}

	data, err := config.Template(opts.Name, opts.Format)
	if err != nil {
		return nil, err
	}
	if err := env.FS.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", opts.Dir)
	}
	if err := filesystem.WriteFileAtomic(env.FS, path, data, 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path)
	}

	logger := logging.GetLogger("commands.init")
	logger.Info().Str("path", path).Msg("Wrote configuration template")
	return &types.InitReport{Config: path, Template: true}, nil
}

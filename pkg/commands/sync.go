package commands

import (
	"context"

	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/logging"
	"github.com/arthur-debert/dotf/pkg/types"
)

// SyncOptions contains options for Sync
type SyncOptions struct {
	// Force pulls even when the checkout has local changes
	Force bool

	// NoInstall skips reinstalling links after the pull
	NoInstall bool

	// Install is used for the install that follows the pull
	Install InstallOptions
}

// Sync pulls the repository, records the sync time and reinstalls links.
// A checkout with local changes is refused unless forced.
func Sync(ctx context.Context, env *Env, opts SyncOptions) (*types.SyncReport, error) {
	logger := logging.GetLogger("commands.sync")

	if err := env.requireInitialized(); err != nil {
		return nil, err
	}
	dir := env.RepoDir()

	before, err := env.Repository.Status(ctx, dir)
	if err != nil {
		return nil, err
	}
	if !before.Clean && !opts.Force {
		return nil, errors.Newf(errors.ErrRepository,
			"%s has local changes, commit them or use --force to sync anyway", env.Resolver().Display(dir)).
			WithDetail("modified", before.Modified)
	}

	logger.Info().Str("branch", before.Branch).Int("behind", before.Behind).Msg("Pulling repository")
	if err := env.Repository.Pull(ctx, dir); err != nil {
		return nil, err
	}

	after, err := env.Repository.Status(ctx, dir)
	report := &types.SyncReport{
		Repository: env.repositoryState(after, err),
		SyncedAt:   env.now().UTC(),
	}

	env.Settings.MarkSynced(report.SyncedAt)
	if err := env.saveSettings(); err != nil {
		return nil, err
	}

	if opts.NoInstall {
		return report, nil
	}
	install, err := InstallConfig(ctx, env, opts.Install)
	report.Install = install
	return report, err
}

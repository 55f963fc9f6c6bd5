package commands

import (
	"context"

	"github.com/arthur-debert/dotf/pkg/backup"
	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/links"
	"github.com/arthur-debert/dotf/pkg/logging"
	"github.com/arthur-debert/dotf/pkg/paths"
	"github.com/arthur-debert/dotf/pkg/settings"
	"github.com/arthur-debert/dotf/pkg/types"
	"github.com/arthur-debert/dotf/pkg/validation"
)

// InstallOptions contains options for InstallConfig
type InstallOptions struct {
	// Policy resolves conflicts; see ChoosePolicy
	Policy types.PolicyResolver

	// DryRun reports what would happen without changing anything
	DryRun bool

	// IgnoreErrors projects even when validation found issues
	IgnoreErrors bool
}

// ChoosePolicy picks the conflict policy for an install. An explicit flag
// ("backup" or "abort") wins, then the configured policy. The "prompt"
// policy uses interactive, or falls back to abort when it is nil (no
// terminal); fellBack reports that case.
func ChoosePolicy(flag string, s *settings.Settings, interactive types.PolicyResolver) (policy types.PolicyResolver, fellBack bool) {
	switch flag {
	case settings.PolicyBackup:
		return types.FixedPolicy(types.PolicyBackup), false
	case settings.PolicyAbort:
		return types.FixedPolicy(types.PolicyAbort), false
	}
	if p, ok := s.ConflictPolicy(); ok {
		return types.FixedPolicy(p), false
	}
	if interactive == nil {
		return types.FixedPolicy(types.PolicyAbort), true
	}
	return interactive, false
}

// InstallConfig validates the configuration and projects its symlinks for
// the current platform. When validation finds issues and IgnoreErrors is
// not set, nothing is touched: the report carries the issues and the error
// is CONFIG_INVALID.
func InstallConfig(ctx context.Context, env *Env, opts InstallOptions) (*types.LinkReport, error) {
	logger := logging.GetLogger("commands.install")

	if err := env.requireInitialized(); err != nil {
		return nil, err
	}
	platform, err := env.Platform()
	if err != nil {
		return nil, err
	}
	cfg, err := env.loadConfig()
	if err != nil {
		return nil, err
	}

	report := &types.LinkReport{Command: "install", Platform: platform, DryRun: opts.DryRun}
	resolver := env.Resolver()

	report.Issues = validation.New(resolver, env.FS).Validate(cfg, validation.Options{Platform: platform})
	if len(report.Issues) > 0 {
		if !opts.IgnoreErrors {
			return report, errors.Newf(errors.ErrConfigInvalid,
				"configuration has %d issue(s), fix them or use --ignore-errors", len(report.Issues)).
				WithDetail("issues", len(report.Issues))
		}
		logger.Warn().Int("issues", len(report.Issues)).Msg("Installing despite validation issues")
	}

	policy := opts.Policy
	if policy == nil {
		policy = types.FixedPolicy(types.PolicyAbort)
	}

	store := backup.Open(env.FS, env.Layout.BackupsDir(), env.now)
	projector := links.NewProjector(resolver, env.FS, store, links.Options{DryRun: opts.DryRun})

	results, err := projector.Project(ctx, cfg.Declarations(platform), policy)
	fillLinkReport(report, resolver, results)
	report.Bucket = store.Bucket()

	logger.Info().
		Int("created", report.Summary.Created).
		Int("unchanged", report.Summary.Unchanged).
		Int("aborted", report.Summary.Aborted).
		Int("errors", report.Summary.Errors).
		Bool("dryRun", opts.DryRun).
		Msg("Install finished")
	return report, err
}

// UninstallOptions contains options for Uninstall
type UninstallOptions struct {
	DryRun bool
}

// Uninstall removes the links the configuration owns on this platform.
// Targets that are not links to the declared sources are left alone.
func Uninstall(ctx context.Context, env *Env, opts UninstallOptions) (*types.LinkReport, error) {
	if err := env.requireInitialized(); err != nil {
		return nil, err
	}
	platform, err := env.Platform()
	if err != nil {
		return nil, err
	}
	cfg, err := env.loadConfig()
	if err != nil {
		return nil, err
	}

	resolver := env.Resolver()
	projector := links.NewProjector(resolver, env.FS, nil, links.Options{DryRun: opts.DryRun})
	results, err := projector.Unlink(ctx, cfg.Declarations(platform))

	report := &types.LinkReport{Command: "uninstall", Platform: platform, DryRun: opts.DryRun}
	fillLinkReport(report, resolver, results)

	logger := logging.GetLogger("commands.uninstall")
	logger.Info().
		Int("removed", report.Summary.Removed).
		Int("skipped", report.Summary.Skipped).
		Msg("Uninstall finished")
	return report, err
}

func fillLinkReport(report *types.LinkReport, resolver *paths.Resolver, results []types.ProjectionResult) {
	report.Summary = links.Summarize(results)
	report.Entries = make([]types.LinkEntry, 0, len(results))
	for _, r := range results {
		report.Entries = append(report.Entries, linkEntry(resolver, r))
	}
}

func linkEntry(resolver *paths.Resolver, r types.ProjectionResult) types.LinkEntry {
	entry := types.LinkEntry{
		Section: r.Declaration.Section,
		Target:  r.Declaration.Target,
		Source:  r.Declaration.Source,
		Line:    r.Declaration.Line,
		Status:  r.Before,
		Outcome: r.Outcome,
	}
	if r.Target != "" {
		entry.Target = resolver.Display(r.Target)
	}
	if r.Backup != nil {
		entry.BackupID = r.Backup.ID
	}
	if r.Err != nil {
		entry.Error = errors.Message(r.Err)
		entry.Code = string(errors.GetErrorCode(r.Err))
	}
	return entry
}

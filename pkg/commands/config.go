package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/arthur-debert/dotf/pkg/config"
	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/logging"
	"github.com/arthur-debert/dotf/pkg/types"
)

// ConfigOptions contains options for ShowConfig
type ConfigOptions struct {
	// Content includes the configuration file as written in the checkout
	Content bool
}

// ShowConfig summarizes the configuration of the checkout: declaration and
// script counts, platforms and the issues validation finds across every
// overlay. A configuration with syntax errors yields a report holding only
// the issue.
func ShowConfig(env *Env, opts ConfigOptions) (*types.ConfigReport, error) {
	if err := env.requireInitialized(); err != nil {
		return nil, err
	}
	path, err := ConfigPath(env, "")
	if err != nil {
		return nil, err
	}
	validation, err := Validate(env, ValidateOptions{Path: path, AllPlatforms: true})
	if err != nil {
		return nil, err
	}

	report := &types.ConfigReport{
		Config:    validation.Config,
		Platforms: []string{},
		Issues:    validation.Issues,
	}
	if opts.Content {
		data, err := env.readFS().ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
		}
		report.Content = string(data)
	}

	cfg, err := config.Load(env.readFS(), path)
	if err != nil {
		// already reported as an issue
		return report, nil
	}

	report.Name = cfg.Repo.Name
	report.Description = cfg.Repo.Description
	report.Symlinks = len(cfg.Symlinks)
	report.Scripts = len(cfg.Deps) + len(cfg.Custom)
	for _, o := range cfg.Overlays {
		if report.PlatformSymlinks == nil {
			report.PlatformSymlinks = map[string]int{}
		}
		report.PlatformSymlinks[o.Platform] = len(o.Symlinks)
	}
	for _, s := range cfg.Custom {
		report.Custom = append(report.Custom, s.Name)
	}
	report.Platforms = append(report.Platforms, cfg.Platforms()...)
	for _, s := range cfg.Deps {
		if !contains(report.Platforms, s.Name) {
			report.Platforms = append(report.Platforms, s.Name)
		}
	}
	return report, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// SettingsEditor asks the questions of EditSettings. *prompt.Prompt
// implements it.
type SettingsEditor interface {
	Confirmer
	Input(message, def string) (string, error)
}

// EditSettings lets the user change the repository URL and branch. A new
// URL must be reachable. The checkout keeps its origin until the next
// 'dotf init --force'.
func EditSettings(ctx context.Context, env *Env, editor SettingsEditor) (*types.SettingsReport, error) {
	if editor == nil {
		return nil, errors.New(errors.ErrInvalidInput, "editing settings needs an interactive terminal")
	}
	if env.Settings == nil || !env.Settings.Initialized() {
		return nil, errors.New(errors.ErrNotInitialized, "dotf is not initialized, run 'dotf init <repository>' first")
	}

	repo := &env.Settings.Repository
	report := &types.SettingsReport{
		Path:          env.Layout.SettingsPath(),
		Remote:        repo.Remote,
		Branch:        repo.Branch,
		InitializedAt: env.Settings.InitializedAt,
		LastSync:      env.Settings.LastSync,
	}

	edit, err := editor.Confirm(fmt.Sprintf("Change the repository (%s)?", repo.Remote), false)
	if err != nil {
		return nil, err
	}
	if !edit {
		return report, nil
	}

	remote, err := editor.Input("Repository URL", repo.Remote)
	if err != nil {
		return nil, err
	}
	branch, err := editor.Input("Branch", repo.Branch)
	if err != nil {
		return nil, err
	}
	remote, branch = keep(remote, repo.Remote), keep(branch, repo.Branch)
	if remote == repo.Remote && branch == repo.Branch {
		return report, nil
	}

	if remote != repo.Remote {
		if err := env.Repository.ValidateRemote(ctx, remote); err != nil {
			return nil, err
		}
	}
	repo.Remote, repo.Branch = remote, branch
	if err := env.saveSettings(); err != nil {
		return nil, err
	}

	logger := logging.GetLogger("commands.config")
	logger.Info().Str("remote", remote).Str("branch", branch).Msg("Settings updated")

	report.Remote, report.Branch, report.Changed = remote, branch, true
	return report, nil
}

// keep returns answer, or current when the answer is blank.
func keep(answer, current string) string {
	if answer = strings.TrimSpace(answer); answer == "" {
		return current
	}
	return answer
}

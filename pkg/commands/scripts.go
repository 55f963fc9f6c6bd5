package commands

import (
	"context"
	"fmt"

	"github.com/arthur-debert/dotf/pkg/config"
	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/logging"
	"github.com/arthur-debert/dotf/pkg/types"
)

// Confirmer asks yes/no questions. *prompt.Prompt implements it.
type Confirmer interface {
	Confirm(message string, def bool) (bool, error)
}

// InstallDeps runs the dependency script of the current platform. A
// platform without a configured script is reported as skipped.
func InstallDeps(ctx context.Context, env *Env) (*types.ScriptReport, error) {
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

	script, ok := cfg.DepsScript(platform)
	if !ok {
		logger := logging.GetLogger("commands.scripts")
		logger.Info().Str("platform", platform).Msg("No dependency script configured")
		return &types.ScriptReport{
			Name:    platform,
			Skipped: fmt.Sprintf("no dependency script configured for %s", platform),
		}, nil
	}
	return runScript(ctx, env, script, nil)
}

// InstallCustom runs the custom script called name with args.
func InstallCustom(ctx context.Context, env *Env, name string, args []string) (*types.ScriptReport, error) {
	if err := env.requireInitialized(); err != nil {
		return nil, err
	}
	cfg, err := env.loadConfig()
	if err != nil {
		return nil, err
	}

	script, ok := cfg.CustomScript(name)
	if !ok {
		available := make([]string, 0, len(cfg.Custom))
		for _, s := range cfg.Custom {
			available = append(available, s.Name)
		}
		return nil, errors.Newf(errors.ErrMissingScript, "no custom script named %q", name).
			WithDetail("available", available)
	}
	return runScript(ctx, env, script, args)
}

// runScript resolves a script reference inside the repository and runs it.
// A failed run returns both the report and the error.
func runScript(ctx context.Context, env *Env, script config.Script, args []string) (*types.ScriptReport, error) {
	logger := logging.GetLogger("commands.scripts")
	resolver := env.Resolver()
	report := &types.ScriptReport{Name: script.Name, Path: script.Path}

	path, err := resolver.Resolve(script.Path, types.RoleSource)
	if err != nil {
		report.Error = errors.Message(err)
		return report, err
	}

	logger.Info().Str("script", script.Name).Str("path", path).Msg("Running script")
	result, err := env.Scripts.Run(ctx, path, args)
	report.ExitCode = result.ExitCode
	report.Duration = result.Duration
	if err != nil {
		report.Error = errors.Message(err)
		return report, err
	}
	return report, nil
}

// InstallAllOptions contains options for InstallAll
type InstallAllOptions struct {
	Install InstallOptions

	// Confirm is asked whether to go on after a failed dependency script
	// and which custom scripts to run. Without it a dependency failure
	// stops the install and no custom script runs.
	Confirm Confirmer
}

// InstallAll runs the dependency script, installs the links and then
// offers each custom script.
func InstallAll(ctx context.Context, env *Env, opts InstallAllOptions) (*types.InstallAllReport, error) {
	logger := logging.GetLogger("commands.install")
	report := &types.InstallAllReport{}

	deps, err := InstallDeps(ctx, env)
	report.Deps = deps
	if err != nil {
		if deps == nil || opts.Confirm == nil {
			return report, err
		}
		logger.Warn().Err(err).Msg("Dependency installation failed")
		goOn, askErr := opts.Confirm.Confirm("Dependency installation failed. Continue with configuration installation?", false)
		if askErr != nil {
			return report, askErr
		}
		if !goOn {
			return report, err
		}
	}

	report.Links, err = InstallConfig(ctx, env, opts.Install)
	if err != nil {
		return report, err
	}

	if opts.Confirm == nil || opts.Install.DryRun {
		return report, nil
	}
	cfg, err := env.loadConfig()
	if err != nil {
		return report, err
	}
	if len(cfg.Custom) == 0 {
		return report, nil
	}

	runAny, err := opts.Confirm.Confirm("Would you like to run any custom scripts?", false)
	if err != nil || !runAny {
		return report, err
	}
	for _, script := range cfg.Custom {
		run, err := opts.Confirm.Confirm(fmt.Sprintf("Run custom script '%s' (%s)?", script.Name, script.Path), true)
		if err != nil {
			return report, err
		}
		if !run {
			continue
		}
		// A failing custom script does not stop the others
		sr, err := runScript(ctx, env, script, nil)
		if err != nil {
			logger.Warn().Err(err).Str("script", script.Name).Msg("Custom script failed")
		}
		report.Custom = append(report.Custom, *sr)
	}
	return report, nil
}

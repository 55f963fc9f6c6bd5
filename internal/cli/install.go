package cli

import (
	"github.com/arthur-debert/dotf/pkg/commands"
	"github.com/arthur-debert/dotf/pkg/config"
	"github.com/arthur-debert/dotf/pkg/settings"
	"github.com/arthur-debert/dotf/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// policyFlags are the --backup and --abort flags shared by commands that
// install links.
type policyFlags struct {
	backup bool
	abort  bool
}

func (p *policyFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&p.backup, "backup", false, MsgFlagBackup)
	cmd.Flags().BoolVar(&p.abort, "abort", false, MsgFlagAbort)
	cmd.MarkFlagsMutuallyExclusive("backup", "abort")
}

func (p policyFlags) flag() string {
	switch {
	case p.backup:
		return settings.PolicyBackup
	case p.abort:
		return settings.PolicyAbort
	default:
		return ""
	}
}

// policy chooses how conflicts are resolved and warns when a configured
// prompt cannot be shown.
func (a *app) policy(cmd *cobra.Command, env *commands.Env, flags policyFlags) types.PolicyResolver {
	var interactive types.PolicyResolver
	if p := a.newPrompt(env.Resolver().Display); p != nil {
		interactive = p
	}
	policy, fellBack := commands.ChoosePolicy(flags.flag(), env.Settings, interactive)
	if fellBack {
		log.Warn().Msg("No terminal for conflict prompts, aborting on conflicts")
		a.message(cmd, MsgPromptFallback)
	}
	return policy
}

func (a *app) newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "install",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		GroupID: "core",
	}

	cmd.AddCommand(a.newInstallConfigCmd())
	cmd.AddCommand(a.newInstallDepsCmd())
	cmd.AddCommand(a.newInstallCustomCmd())
	cmd.AddCommand(a.newInstallAllCmd())

	return cmd
}

func (a *app) newInstallConfigCmd() *cobra.Command {
	var (
		opts   commands.InstallOptions
		policy policyFlags
	)

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgInstallConfigShort,
		Example: MsgInstallConfigExample,
		Args:    cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) (interface{}, error) {
			env, err := a.environment()
			if err != nil {
				return nil, err
			}
			opts.Policy = a.policy(cmd, env, policy)

			report, err := commands.InstallConfig(cmd.Context(), env, opts)
			if err == nil && report.Summary.Failed() {
				err = issues()
			}
			return report, err
		}),
	}

	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, MsgFlagDryRun)
	cmd.Flags().BoolVar(&opts.IgnoreErrors, "ignore-errors", false, MsgFlagIgnoreErrors)
	policy.register(cmd)

	return cmd
}

func (a *app) newInstallDepsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: MsgInstallDepsShort,
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) (interface{}, error) {
			env, err := a.environment()
			if err != nil {
				return nil, err
			}
			return commands.InstallDeps(cmd.Context(), env)
		}),
	}
}

func (a *app) newInstallCustomCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "custom <name> [args...]",
		Short:             MsgInstallCustomShort,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: a.customScriptCompletion,
		RunE: a.run(func(cmd *cobra.Command, args []string) (interface{}, error) {
			env, err := a.environment()
			if err != nil {
				return nil, err
			}
			return commands.InstallCustom(cmd.Context(), env, args[0], args[1:])
		}),
	}
}

// customScriptCompletion completes the names in [scripts.custom].
func (a *app) customScriptCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	env, err := a.environment()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	path, err := config.Find(env.FS, env.RepoDir())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	cfg, err := config.Load(env.FS, path)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	names := make([]string, 0, len(cfg.Custom))
	for _, s := range cfg.Custom {
		names = append(names, s.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func (a *app) newInstallAllCmd() *cobra.Command {
	var (
		opts   commands.InstallAllOptions
		policy policyFlags
	)

	cmd := &cobra.Command{
		Use:   "all",
		Short: MsgInstallAllShort,
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) (interface{}, error) {
			env, err := a.environment()
			if err != nil {
				return nil, err
			}
			opts.Install.Policy = a.policy(cmd, env, policy)
			if p := a.newPrompt(env.Resolver().Display); p != nil {
				opts.Confirm = p
			}

			report, err := commands.InstallAll(cmd.Context(), env, opts)
			if err == nil && report.Links != nil && report.Links.Summary.Failed() {
				err = issues()
			}
			return report, err
		}),
	}

	cmd.Flags().BoolVarP(&opts.Install.DryRun, "dry-run", "n", false, MsgFlagDryRun)
	cmd.Flags().BoolVar(&opts.Install.IgnoreErrors, "ignore-errors", false, MsgFlagIgnoreErrors)
	policy.register(cmd)

	return cmd
}

func (a *app) newUninstallCmd() *cobra.Command {
	var opts commands.UninstallOptions

	cmd := &cobra.Command{
		Use:     "uninstall",
		Short:   MsgUninstallShort,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: a.run(func(cmd *cobra.Command, args []string) (interface{}, error) {
			env, err := a.environment()
			if err != nil {
				return nil, err
			}
			report, err := commands.Uninstall(cmd.Context(), env, opts)
			if err == nil && report.Summary.Failed() {
				err = issues()
			}
			return report, err
		}),
	}

	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, MsgFlagDryRun)

	return cmd
}

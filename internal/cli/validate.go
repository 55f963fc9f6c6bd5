package cli

import (
	"context"

	"github.com/arthur-debert/dotf/pkg/commands"
	"github.com/arthur-debert/dotf/pkg/watch"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func (a *app) newValidateCmd() *cobra.Command {
	var (
		opts     commands.ValidateOptions
		watching bool
	)

	validate := func(cmd *cobra.Command, args []string) (interface{}, error) {
		env, err := a.environment()
		if err != nil {
			return nil, err
		}
		report, err := commands.Validate(env, opts)
		if err == nil && !report.Valid() {
			err = issues()
		}
		return report, err
	}

	cmd := &cobra.Command{
		Use:     "validate [file | dir]",
		Short:   MsgValidateShort,
		Long:    MsgValidateLong,
		Example: MsgValidateExample,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "core",
		RunE: a.run(func(cmd *cobra.Command, args []string) (interface{}, error) {
			if len(args) == 1 {
				opts.Path = args[0]
			}
			if !watching {
				return validate(cmd, args)
			}
			return nil, a.watchConfig(cmd, opts.Path, a.run(validate))
		}),
	}

	cmd.Flags().StringVar(&opts.Platform, "platform", "", MsgFlagPlatform)
	cmd.Flags().BoolVar(&opts.AllPlatforms, "all-platforms", false, MsgFlagAllPlatforms)
	cmd.Flags().BoolVar(&opts.SkipSourceCheck, "skip-sources", false, MsgFlagSkipSources)
	cmd.Flags().BoolVarP(&watching, "watch", "w", false, MsgFlagWatch)
	cmd.MarkFlagsMutuallyExclusive("platform", "all-platforms")
	_ = cmd.RegisterFlagCompletionFunc("platform", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{commands.PlatformMacOS, commands.PlatformLinux}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// watchConfig runs validate once and again after every change of the
// configuration file, until the command context ends.
func (a *app) watchConfig(cmd *cobra.Command, path string, validate func(*cobra.Command, []string) error) error {
	env, err := a.environment()
	if err != nil {
		return err
	}
	file, err := commands.ConfigPath(env, path)
	if err != nil {
		return err
	}
	w, err := watch.New(file)
	if err != nil {
		return err
	}

	// Outcomes are rendered by validate; the exit status of a single run
	// does not end the watch
	_ = validate(cmd, nil)
	a.message(cmd, MsgWatching, env.Resolver().Display(file))

	return w.Run(cmd.Context(), func(ctx context.Context, changed []string) error {
		log.Debug().Strs("changed", changed).Msg("Configuration changed")
		_ = validate(cmd, nil)
		return nil
	})
}

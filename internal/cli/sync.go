package cli

import (
	"github.com/arthur-debert/dotf/pkg/commands"
	"github.com/spf13/cobra"
)

func (a *app) newSyncCmd() *cobra.Command {
	var (
		opts   commands.SyncOptions
		policy policyFlags
	)

	cmd := &cobra.Command{
		Use:     "sync",
		Short:   MsgSyncShort,
		Long:    MsgSyncLong,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: a.run(func(cmd *cobra.Command, args []string) (interface{}, error) {
			env, err := a.environment()
			if err != nil {
				return nil, err
			}
			opts.Install.Policy = a.policy(cmd, env, policy)

			report, err := commands.Sync(cmd.Context(), env, opts)
			if err == nil && report != nil && report.Install != nil && report.Install.Summary.Failed() {
				err = issues()
			}
			return report, err
		}),
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, MsgFlagSyncForce)
	cmd.Flags().BoolVar(&opts.NoInstall, "no-install", false, MsgFlagNoInstall)
	policy.register(cmd)

	return cmd
}

func (a *app) newStatusCmd() *cobra.Command {
	var (
		opts  commands.StatusOptions
		quiet bool
	)

	cmd := &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: a.run(func(cmd *cobra.Command, args []string) (interface{}, error) {
			env, err := a.environment()
			if err != nil {
				return nil, err
			}
			report, err := commands.Status(cmd.Context(), env, opts)
			if report != nil {
				report.Brief = quiet
			}
			return report, err
		}),
	}

	cmd.Flags().BoolVar(&opts.SkipRepository, "no-repo", false, MsgFlagNoRepo)
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, MsgFlagQuiet)

	return cmd
}

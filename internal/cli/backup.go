package cli

import (
	"github.com/arthur-debert/dotf/pkg/commands"
	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/spf13/cobra"
)

func (a *app) newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "backup",
		Short:   MsgBackupShort,
		Long:    MsgBackupLong,
		GroupID: "core",
	}

	cmd.AddCommand(a.newBackupListCmd())
	cmd.AddCommand(a.newBackupRestoreCmd())

	return cmd
}

func (a *app) newBackupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgBackupListShort,
		Args:    cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) (interface{}, error) {
			env, err := a.environment()
			if err != nil {
				return nil, err
			}
			return commands.ListBackups(env)
		}),
	}
}

func (a *app) newBackupRestoreCmd() *cobra.Command {
	var (
		opts commands.RestoreOptions
		all  bool
	)

	cmd := &cobra.Command{
		Use:   "restore <path> | --all",
		Short: MsgBackupRestoreShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) (interface{}, error) {
			if all == (len(args) == 1) {
				return nil, errors.New(errors.ErrInvalidInput, MsgErrRestoreArgs)
			}
			env, err := a.environment()
			if err != nil {
				return nil, err
			}
			if all {
				return commands.RestoreAll(env, opts)
			}
			return commands.Restore(env, args[0], opts)
		}),
	}

	cmd.Flags().BoolVar(&all, "all", false, MsgFlagRestoreAll)
	cmd.Flags().BoolVar(&opts.Force, "force", false, MsgFlagRestoreForce)

	return cmd
}

package cli

import (
	"github.com/arthur-debert/dotf/pkg/commands"
	"github.com/spf13/cobra"
)

func (a *app) newConfigCmd() *cobra.Command {
	var (
		opts commands.ConfigOptions
		edit bool
	)

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: a.run(func(cmd *cobra.Command, args []string) (interface{}, error) {
			env, err := a.environment()
			if err != nil {
				return nil, err
			}

			if edit {
				var editor commands.SettingsEditor
				if p := a.newPrompt(env.Resolver().Display); p != nil {
					editor = p
				}
				return commands.EditSettings(cmd.Context(), env, editor)
			}

			report, err := commands.ShowConfig(env, opts)
			if err == nil && !report.Valid() {
				err = issues()
			}
			return report, err
		}),
	}

	cmd.Flags().BoolVar(&opts.Content, "repo", false, MsgFlagConfigRepo)
	cmd.Flags().BoolVar(&edit, "edit", false, MsgFlagConfigEdit)
	cmd.MarkFlagsMutuallyExclusive("repo", "edit")

	return cmd
}

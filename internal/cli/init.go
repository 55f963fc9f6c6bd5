package cli

import (
	"path/filepath"

	"github.com/arthur-debert/dotf/pkg/commands"
	"github.com/arthur-debert/dotf/pkg/config"
	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func (a *app) newInitCmd() *cobra.Command {
	var (
		opts     commands.InitOptions
		template bool
		name     string
		yaml     bool
	)

	cmd := &cobra.Command{
		Use:     "init <repository-url> | --template [dir]",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Example: MsgInitExample,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "core",
		RunE: a.run(func(cmd *cobra.Command, args []string) (interface{}, error) {
			env, err := a.environment()
			if err != nil {
				return nil, err
			}

			if template {
				dir := "."
				if len(args) == 1 {
					dir = args[0]
				}
				abs, err := filepath.Abs(dir)
				if err != nil {
					return nil, errors.Wrapf(err, errors.ErrInvalidPath, "cannot resolve %s", dir)
				}
				format := config.FormatTOML
				if yaml {
					format = config.FormatYAML
				}
				log.Info().Str("dir", abs).Str("format", string(format)).Msg("Writing starter configuration")
				return commands.InitTemplate(env, commands.TemplateOptions{
					Dir:    abs,
					Name:   name,
					Format: format,
					Force:  opts.Force,
				})
			}

			if len(args) != 1 {
				return nil, errors.New(errors.ErrInvalidInput, MsgErrTemplateArgs)
			}
			opts.Remote = args[0]
			log.Info().Str("remote", opts.Remote).Str("branch", opts.Branch).Msg("Initializing")
			return commands.Init(cmd.Context(), env, opts)
		}),
	}

	cmd.Flags().StringVarP(&opts.Branch, "branch", "b", "", MsgFlagBranch)
	cmd.Flags().BoolVar(&opts.Force, "force", false, MsgFlagInitForce)
	cmd.Flags().BoolVar(&template, "template", false, MsgFlagTemplate)
	cmd.Flags().StringVar(&name, "name", "", MsgFlagTemplateName)
	cmd.Flags().BoolVar(&yaml, "yaml", false, MsgFlagYAML)

	return cmd
}

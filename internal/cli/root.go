// Package cli builds the dotf command line on top of pkg/commands.
package cli

import (
	"context"
	"embed"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/arthur-debert/dotf/internal/version"
	"github.com/arthur-debert/dotf/pkg/cobrax/topics"
	"github.com/arthur-debert/dotf/pkg/commands"
	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/logging"
	"github.com/arthur-debert/dotf/pkg/paths"
	"github.com/arthur-debert/dotf/pkg/ui"
	"github.com/arthur-debert/dotf/pkg/ui/prompt"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

// app holds the state shared by all commands of one invocation.
type app struct {
	verbosity int
	format    string

	// loadEnv builds the command environment; replaced in tests
	loadEnv func(a *app) (*commands.Env, error)

	// newPrompt returns nil when nobody can answer questions
	newPrompt func(display func(string) string) *prompt.Prompt

	env *commands.Env
}

func newApp() *app {
	return &app{
		loadEnv:   defaultEnv,
		newPrompt: terminalPrompt,
	}
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newApp().rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "dotf",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(a.verbosity)
			log.Debug().Str("command", cmd.CommandPath()).Msg("Command started")
			if _, err := ui.ParseFormat(a.format); err != nil {
				return errors.Wrap(err, errors.ErrInvalidInput, "invalid --format")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&a.format, "format", "f", "", MsgFlagFormat)
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "term", "text", "json", "markdown", "junit"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(a.newInitCmd())
	rootCmd.AddCommand(a.newSyncCmd())
	rootCmd.AddCommand(a.newStatusCmd())
	rootCmd.AddCommand(a.newInstallCmd())
	rootCmd.AddCommand(a.newUninstallCmd())
	rootCmd.AddCommand(a.newValidateCmd())
	rootCmd.AddCommand(a.newConfigCmd())
	rootCmd.AddCommand(a.newBackupCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	source, err := fs.Sub(topicFiles, "topics")
	if err == nil {
		_, err = topics.Initialize(rootCmd, source, topics.Options{
			Extensions: []string{".md"},
			Renderer:   topics.NewGlamourRenderer(),
		})
	}
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// Execute runs rootCmd and returns the process exit status. Errors the
// commands did not report themselves, such as usage errors, are printed
// here.
func Execute(ctx context.Context, rootCmd *cobra.Command) int {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	var exit *ExitError
	if stderrors.As(err, &exit) {
		return exit.Code
	}
	fmt.Fprintf(rootCmd.ErrOrStderr(), "%s %v\n", formatBold("Error:"), err)
	fmt.Fprintf(rootCmd.ErrOrStderr(), "Run '%s --help' for usage.\n", rootCmd.Name())
	return ExitFailure
}

func defaultEnv(a *app) (*commands.Env, error) {
	layout, err := paths.DefaultLayout()
	if err != nil {
		return nil, err
	}
	var overrides map[string]interface{}
	if a.format != "" {
		overrides = map[string]interface{}{"output.format": a.format}
	}
	return commands.NewEnv(layout, overrides)
}

// environment loads the command environment once per invocation.
func (a *app) environment() (*commands.Env, error) {
	if a.env != nil {
		return a.env, nil
	}
	env, err := a.loadEnv(a)
	if err != nil {
		return nil, err
	}
	a.env = env
	return env, nil
}

func terminalPrompt(display func(string) string) *prompt.Prompt {
	if !ui.IsTerminal(os.Stdin) {
		return nil
	}
	return prompt.NewTerminal(display)
}

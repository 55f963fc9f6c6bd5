package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"reflect"

	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Exit statuses.
const (
	ExitOK = 0
	// ExitIssues: the command ran but found problems (validation issues,
	// failed links, restores or scripts)
	ExitIssues = 1
	// ExitFailure: the command could not run
	ExitFailure = 2
)

// ExitError ends a command with a status after its outcome was reported.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// issues ends a command whose report already shows what went wrong.
func issues() error {
	return &ExitError{Code: ExitIssues}
}

// exitCode maps an error onto an exit status.
func exitCode(err error) int {
	switch errors.GetErrorCode(err) {
	case errors.ErrConfigInvalid, errors.ErrRestoreFailure, errors.ErrScriptExecute:
		return ExitIssues
	default:
		return ExitFailure
	}
}

// commandFunc is a command body returning the report to render.
type commandFunc func(cmd *cobra.Command, args []string) (interface{}, error)

// run adapts a command body to cobra: the report is rendered to stdout,
// then an error, if any, to stderr. Errors come back as *ExitError.
func (a *app) run(fn commandFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		report, err := fn(cmd, args)

		if !isNil(report) {
			if rerr := a.renderer(cmd.OutOrStdout()).RenderResult(report); rerr != nil {
				log.Error().Err(rerr).Msg("Failed to render report")
				if err == nil {
					err = rerr
				}
			}
		}
		if err == nil {
			return nil
		}

		var exit *ExitError
		if stderrors.As(err, &exit) {
			return exit
		}
		log.Debug().Err(err).Str("command", cmd.CommandPath()).Msg("Command failed")
		if rerr := a.renderer(cmd.ErrOrStderr()).RenderError(err); rerr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return &ExitError{Code: exitCode(err), Err: err}
	}
}

// renderer picks the output format: the --format flag, then the settings,
// then auto detection.
func (a *app) renderer(w io.Writer) ui.Renderer {
	name := a.format
	if name == "" && a.env != nil && a.env.Settings != nil {
		name = a.env.Settings.Output.Format
	}
	format, err := ui.ParseFormat(name)
	if err != nil {
		format = ui.FormatAuto
	}
	r, err := ui.NewRenderer(format, w)
	if err != nil {
		r, _ = ui.NewRenderer(ui.FormatText, w)
	}
	return r
}

// message prints a note for humans; machine formats keep stdout clean, so
// it goes to stderr.
func (a *app) message(cmd *cobra.Command, format string, args ...interface{}) {
	_ = a.renderer(cmd.ErrOrStderr()).RenderMessage(fmt.Sprintf(format, args...))
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

package scripts

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"time"

	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/logging"
	"github.com/arthur-debert/dotf/pkg/types"
	"github.com/rs/zerolog"
)

// Result is the outcome of one script run.
type Result struct {
	Path     string        `json:"path"`
	Args     []string      `json:"args,omitempty"`
	ExitCode int           `json:"exit_code"`
	Stdout   string        `json:"stdout,omitempty"`
	Stderr   string        `json:"stderr,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Succeeded reports a zero exit code.
func (r Result) Succeeded() bool { return r.ExitCode == 0 }

// Executor runs scripts.
type Executor interface {
	Run(ctx context.Context, path string, args []string) (Result, error)
}

// Options configure a Shell executor.
type Options struct {
	// Dir is the working directory; defaults to the script's directory
	Dir string

	// Env is added to the inherited environment
	Env map[string]string

	// Stdout and Stderr receive output as it is produced
	Stdout io.Writer
	Stderr io.Writer
}

// Shell runs scripts as child processes.
type Shell struct {
	fs     types.FS
	opts   Options
	logger zerolog.Logger
}

// NewShell creates a shell executor that uses fs to check and fix script
// permissions.
func NewShell(fs types.FS, opts Options) *Shell {
	return &Shell{fs: fs, opts: opts, logger: logging.GetLogger("scripts")}
}

// Run executes the script at path. A missing script is MISSING_SCRIPT; a
// script that cannot be started or exits non-zero is SCRIPT_EXECUTE, with
// the captured output still in the returned Result.
func (s *Shell) Run(ctx context.Context, path string, args []string) (Result, error) {
	result := Result{Path: path, Args: args, ExitCode: -1}

	if err := s.ensureExecutable(path); err != nil {
		return result, err
	}

	cmd := s.command(ctx, path, args)
	cmd.Dir = s.opts.Dir
	if cmd.Dir == "" {
		cmd.Dir = filepath.Dir(path)
	}
	cmd.Env = cmd.Environ()
	keys := make([]string, 0, len(s.opts.Env))
	for k := range s.opts.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, s.opts.Env[k]))
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = tee(&stdout, s.opts.Stdout)
	cmd.Stderr = tee(&stderr, s.opts.Stderr)

	s.logger.Info().Str("script", path).Strs("args", args).Msg("Running script")

	start := time.Now()
	err := cmd.Run()
	result.Duration = time.Since(start)
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	if err != nil {
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		s.logger.Warn().Err(err).Str("script", path).Int("exit_code", result.ExitCode).Msg("Script failed")
		return result, errors.Wrapf(err, errors.ErrScriptExecute, "script %s failed", path).
			WithDetail("exit_code", result.ExitCode).
			WithDetail("stderr", result.Stderr)
	}

	result.ExitCode = 0
	s.logger.Debug().Str("script", path).Dur("duration", result.Duration).Msg("Script finished")
	return result, nil
}

// ensureExecutable adds the owner execute bit when it is missing.
func (s *Shell) ensureExecutable(path string) error {
	info, err := s.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Newf(errors.ErrMissingScript, "script %s does not exist", path).
				WithDetail("path", path)
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect script %s", path)
	}
	if info.IsDir() {
		return errors.Newf(errors.ErrMissingScript, "script %s is a directory", path).
			WithDetail("path", path)
	}

	mode := info.Mode().Perm()
	if mode&0100 != 0 {
		return nil
	}
	if err := s.fs.Chmod(path, mode|0744); err != nil {
		return errors.Wrapf(err, errors.ErrPermission, "cannot make %s executable", path)
	}
	s.logger.Debug().Str("script", path).Msg("Added execute permission")
	return nil
}

// command runs scripts with a shebang directly and everything else
// through /bin/sh.
func (s *Shell) command(ctx context.Context, path string, args []string) *exec.Cmd {
	if data, err := s.fs.ReadFile(path); err == nil && bytes.HasPrefix(data, []byte("#!")) {
		return exec.CommandContext(ctx, path, args...)
	}
	return exec.CommandContext(ctx, "/bin/sh", append([]string{path}, args...)...)
}

func tee(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(buf, w)
}

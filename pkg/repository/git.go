package repository

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/logging"
	"github.com/rs/zerolog"
)

// Git implements Repository with the git command line tool.
type Git struct {
	binary  string
	timeout time.Duration
	logger  zerolog.Logger
}

// NewGit returns a git-backed repository. Every git invocation is bounded
// by timeout; zero means no limit beyond the caller's context.
func NewGit(timeout time.Duration) *Git {
	return &Git{
		binary:  "git",
		timeout: timeout,
		logger:  logging.GetLogger("repository.git"),
	}
}

// Available reports whether the git binary can be found.
func (g *Git) Available() bool {
	_, err := exec.LookPath(g.binary)
	return err == nil
}

func (g *Git) ValidateRemote(ctx context.Context, url string) error {
	_, err := g.run(ctx, "", "ls-remote", "--exit-code", url)
	return err
}

func (g *Git) DefaultBranch(ctx context.Context, url string) (string, error) {
	out, err := g.run(ctx, "", "ls-remote", "--symref", url, "HEAD")
	if err != nil {
		return "", err
	}
	return parseSymref(out), nil
}

func (g *Git) Clone(ctx context.Context, url, branch, dest string) error {
	if branch == "" {
		b, err := g.DefaultBranch(ctx, url)
		if err != nil {
			g.logger.Debug().Err(err).Str("url", url).Msg("Could not determine default branch")
			b = DefaultBranch
		}
		branch = b
	}
	_, err := g.run(ctx, "", "clone", "--branch", branch, url, dest)
	return err
}

func (g *Git) Pull(ctx context.Context, dir string) error {
	branch, err := g.run(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return err
	}
	_, err = g.run(ctx, dir, "pull", "--rebase", "origin", branch)
	return err
}

func (g *Git) Status(ctx context.Context, dir string) (Status, error) {
	porcelain, err := g.raw(ctx, dir, "status", "--porcelain")
	if err != nil {
		return Status{}, err
	}
	branch, err := g.run(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return Status{}, err
	}

	status := Status{
		Branch:   branch,
		Modified: parsePorcelain(porcelain),
	}
	status.Clean = len(status.Modified) == 0

	// No upstream is not an error: the counts stay zero.
	if counts, err := g.run(ctx, dir, "rev-list", "--left-right", "--count", "HEAD...@{u}"); err == nil {
		status.Ahead, status.Behind = parseAheadBehind(counts)
	}
	return status, nil
}

func (g *Git) IsFileModified(ctx context.Context, dir, path string) (bool, error) {
	if filepath.IsAbs(path) {
		rel, err := filepath.Rel(dir, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			return false, nil
		}
		path = rel
	}
	out, err := g.run(ctx, dir, "status", "--porcelain", "--", path)
	if err != nil {
		return false, err
	}
	return out != "", nil
}

func (g *Git) RemoteURL(ctx context.Context, dir string) (string, error) {
	return g.run(ctx, dir, "config", "--get", "remote.origin.url")
}

// run executes git with args in dir and returns trimmed stdout.
func (g *Git) run(ctx context.Context, dir string, args ...string) (string, error) {
	out, err := g.raw(ctx, dir, args...)
	return strings.TrimSpace(out), err
}

// raw executes git with args in dir and returns stdout as is.
func (g *Git) raw(ctx context.Context, dir string, args ...string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, g.binary, args...)
	cmd.Dir = dir
	cmd.Env = append(cmd.Environ(), "GIT_TERMINAL_PROMPT=0")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	g.logger.Debug().Str("dir", dir).Strs("args", args).Msg("Running git")

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		if ctx.Err() == context.DeadlineExceeded {
			msg = "timed out after " + g.timeout.String()
		}
		return "", errors.Wrapf(err, errors.ErrRepository, "git %s: %s", args[0], msg).
			WithDetail("args", args).
			WithDetail("dir", dir)
	}
	return stdout.String(), nil
}

// parseSymref extracts the branch from `ls-remote --symref <url> HEAD`.
func parseSymref(out string) string {
	for _, line := range strings.Split(out, "\n") {
		ref, _, _ := strings.Cut(line, "\t")
		if name, ok := strings.CutPrefix(ref, "ref: refs/heads/"); ok && name != "" {
			return name
		}
	}
	return DefaultBranch
}

// parsePorcelain returns the paths listed by `status --porcelain`. Renames
// contribute their new path.
func parsePorcelain(out string) []string {
	var paths []string
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}
		path := line[3:]
		if _, to, ok := strings.Cut(path, " -> "); ok {
			path = to
		}
		paths = append(paths, strings.Trim(path, `"`))
	}
	return paths
}

// parseAheadBehind reads "<ahead>\t<behind>".
func parseAheadBehind(out string) (int, int) {
	fields := strings.Fields(out)
	if len(fields) != 2 {
		return 0, 0
	}
	ahead, _ := strconv.Atoi(fields[0])
	behind, _ := strconv.Atoi(fields[1])
	return ahead, behind
}

package links

import (
	"context"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotf/pkg/backup"
	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/logging"
	"github.com/arthur-debert/dotf/pkg/paths"
	"github.com/arthur-debert/dotf/pkg/status"
	"github.com/arthur-debert/dotf/pkg/types"
	"github.com/rs/zerolog"
)

// Options configure a projector.
type Options struct {
	// DryRun reports what would happen without touching the filesystem.
	// The policy is still consulted for conflicts.
	DryRun bool
}

// Projector applies declarations for one home and repository.
type Projector struct {
	resolver *paths.Resolver
	fs       types.FS
	detector *status.Detector
	backups  *backup.Store
	opts     Options
}

// NewProjector creates a projector. backups may be nil when conflicts are
// never resolved with PolicyBackup; such a resolution then fails.
func NewProjector(resolver *paths.Resolver, fs types.FS, backups *backup.Store, opts Options) *Projector {
	return &Projector{
		resolver: resolver,
		fs:       fs,
		detector: status.NewDetector(fs),
		backups:  backups,
		opts:     opts,
	}
}

// Project applies decls in order and returns one result per declaration.
// The error is non-nil only when the run was cut short (backup area failure
// or cancellation); the results then still cover every declaration, the
// unprocessed ones as errors carrying that cause.
func (p *Projector) Project(ctx context.Context, decls []types.Declaration, policy types.PolicyResolver) ([]types.ProjectionResult, error) {
	log := logging.GetLogger("links")
	results := make([]types.ProjectionResult, 0, len(decls))

	for i, decl := range decls {
		if err := ctx.Err(); err != nil {
			cause := errors.Wrap(err, errors.ErrCancelled, "projection cancelled")
			return append(results, abortRemaining(decls[i:], cause)...), cause
		}

		result, fatal := p.projectOne(ctx, decl, policy)
		results = append(results, result)
		logResult(log, result)

		if fatal != nil {
			log.Error().Err(fatal).Msg("Aborting projection")
			return append(results, abortRemaining(decls[i+1:], fatal)...), fatal
		}
	}

	return results, nil
}

// projectOne handles one declaration. The second return value is set only
// for failures that must end the whole run.
func (p *Projector) projectOne(ctx context.Context, decl types.Declaration, policy types.PolicyResolver) (types.ProjectionResult, error) {
	result := types.ProjectionResult{Declaration: decl, Planned: p.opts.DryRun}

	link, err := p.resolver.ResolveDeclaration(decl)
	result.Target, result.Source = link.Target, link.Source
	if err != nil {
		return failed(result, err), nil
	}

	state := p.detector.Classify(link)
	result.Before = state.Status
	if state.Err != nil {
		return failed(result, errors.Wrapf(state.Err, errors.ErrFileAccess, "cannot inspect %s", link.Target)), nil
	}

	if state.Status == types.StatusValid {
		result.Outcome = types.OutcomeUnchanged
		return result, nil
	}

	if _, err := p.fs.Stat(link.Source); err != nil {
		return failed(result, errors.Wrapf(err, errors.ErrMissingSource, "source %s does not exist", link.Source).
			WithDetail("source", link.Source)), nil
	}

	switch state.Status {
	case types.StatusMissing:
		return p.create(result, link), nil

	case types.StatusBroken:
		if !p.opts.DryRun {
			if err := p.fs.Remove(link.Target); err != nil && !os.IsNotExist(err) {
				return failed(result, errors.Wrapf(err, errors.ErrLinkRemove, "cannot remove dangling link %s", link.Target)), nil
			}
		}
		return p.create(result, link), nil

	default:
		return p.resolveConflict(ctx, result, state, policy)
	}
}

func (p *Projector) resolveConflict(ctx context.Context, result types.ProjectionResult, state types.LinkState, policy types.PolicyResolver) (types.ProjectionResult, error) {
	link := state.Link

	choice, err := policy.ResolveConflict(ctx, types.Conflict{State: state})
	if err != nil {
		return failed(result, errors.Wrapf(err, errors.ErrCancelled, "no conflict resolution for %s", link.Target)), nil
	}

	switch choice {
	case types.PolicyAbort:
		result.Outcome = types.OutcomeAborted
		return result, nil

	case types.PolicyBackup:
		if p.opts.DryRun {
			return p.create(result, link), nil
		}
		if p.backups == nil {
			return failed(result, errors.New(errors.ErrInternal, "no backup store configured")), nil
		}
		if _, err := p.backups.EnsureBucket(); err != nil {
			return failed(result, err), err
		}
		record, err := p.backups.Preserve(link.Target)
		if err != nil {
			return failed(result, err), nil
		}
		result.Backup = record
		if err := p.fs.RemoveAll(link.Target); err != nil {
			return failed(result, errors.Wrapf(err, errors.ErrLinkRemove, "cannot remove %s after backup", link.Target)), nil
		}
		return p.create(result, link), nil

	default:
		return failed(result, errors.Newf(errors.ErrInvalidInput, "unknown conflict policy %q", choice)), nil
	}
}

// create makes parent directories and the link itself.
func (p *Projector) create(result types.ProjectionResult, link types.ResolvedLink) types.ProjectionResult {
	if p.opts.DryRun {
		result.Outcome = types.OutcomeCreated
		return result
	}
	if err := p.fs.MkdirAll(filepath.Dir(link.Target), 0755); err != nil {
		return failed(result, errors.Wrapf(err, errors.ErrLinkCreate, "cannot create parent directory of %s", link.Target))
	}
	if err := p.fs.Symlink(link.Source, link.Target); err != nil {
		return failed(result, errors.Wrapf(err, errors.ErrLinkCreate, "cannot link %s -> %s", link.Target, link.Source))
	}
	result.Outcome = types.OutcomeCreated
	return result
}

func failed(result types.ProjectionResult, err error) types.ProjectionResult {
	result.Outcome = types.OutcomeError
	result.Err = err
	return result
}

func abortRemaining(decls []types.Declaration, cause error) []types.ProjectionResult {
	results := make([]types.ProjectionResult, 0, len(decls))
	for _, decl := range decls {
		results = append(results, types.ProjectionResult{
			Declaration: decl,
			Outcome:     types.OutcomeError,
			Err:         cause,
		})
	}
	return results
}

func logResult(log zerolog.Logger, r types.ProjectionResult) {
	event := log.Info()
	switch r.Outcome {
	case types.OutcomeUnchanged, types.OutcomeSkipped:
		event = log.Debug()
	case types.OutcomeError:
		event = log.Warn().Err(r.Err)
	}
	event.
		Str("target", r.Target).
		Str("source", r.Source).
		Str("before", string(r.Before)).
		Str("outcome", string(r.Outcome)).
		Bool("dry_run", r.Planned).
		Msg("Projected declaration")
}

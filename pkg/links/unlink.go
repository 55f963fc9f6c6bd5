package links

import (
	"context"

	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/logging"
	"github.com/arthur-debert/dotf/pkg/status"
	"github.com/arthur-debert/dotf/pkg/types"
)

// Unlink removes the links owned by decls: valid links, and broken links
// that still point at the declared source. Anything else at a target is
// skipped. Like Project it never stops on a single failure.
func (p *Projector) Unlink(ctx context.Context, decls []types.Declaration) ([]types.ProjectionResult, error) {
	log := logging.GetLogger("links")
	results := make([]types.ProjectionResult, 0, len(decls))

	for i, decl := range decls {
		if err := ctx.Err(); err != nil {
			cause := errors.Wrap(err, errors.ErrCancelled, "uninstall cancelled")
			return append(results, abortRemaining(decls[i:], cause)...), cause
		}

		result := p.unlinkOne(decl)
		results = append(results, result)
		logResult(log, result)
	}
	return results, nil
}

func (p *Projector) unlinkOne(decl types.Declaration) types.ProjectionResult {
	result := types.ProjectionResult{Declaration: decl, Planned: p.opts.DryRun}

	link, err := p.resolver.ResolveDeclaration(decl)
	result.Target, result.Source = link.Target, link.Source
	if err != nil {
		return failed(result, err)
	}

	state := p.detector.Classify(link)
	result.Before = state.Status
	if state.Err != nil && state.Status != types.StatusBroken {
		return failed(result, errors.Wrapf(state.Err, errors.ErrFileAccess, "cannot inspect %s", link.Target))
	}

	owned := state.Status == types.StatusValid ||
		(state.Status == types.StatusBroken && status.Destination(link.Target, state.Destination) == link.Source)
	if !owned {
		result.Outcome = types.OutcomeSkipped
		return result
	}

	if !p.opts.DryRun {
		if err := p.fs.Remove(link.Target); err != nil {
			return failed(result, errors.Wrapf(err, errors.ErrLinkRemove, "cannot remove %s", link.Target))
		}
	}
	result.Outcome = types.OutcomeRemoved
	return result
}

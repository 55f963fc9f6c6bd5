package commands

import (
	"context"

	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/logging"
	"github.com/arthur-debert/dotf/pkg/repository"
	"github.com/arthur-debert/dotf/pkg/status"
	"github.com/arthur-debert/dotf/pkg/types"
)

// StatusOptions contains options for Status
type StatusOptions struct {
	// SkipRepository leaves out the git inspection
	SkipRepository bool
}

// Status reports the repository state and classifies every declaration of
// the current platform. Nothing is modified.
func Status(ctx context.Context, env *Env, opts StatusOptions) (*types.StatusReport, error) {
	logger := logging.GetLogger("commands.status")

	if err := env.requireInitialized(); err != nil {
		return nil, err
	}
	platform, err := env.Platform()
	if err != nil {
		return nil, err
	}
	cfg, err := env.loadConfig()
	if err != nil {
		return nil, err
	}

	report := &types.StatusReport{Platform: platform}
	if t, ok := env.Settings.LastSyncTime(); ok {
		report.LastSync = &t
	}

	var repoStatus repository.Status
	if !opts.SkipRepository {
		st, err := env.Repository.Status(ctx, env.RepoDir())
		if err != nil {
			logger.Warn().Err(err).Msg("Cannot read repository status")
		}
		repoStatus = st
		state := env.repositoryState(st, err)
		report.Repository = &state
	}

	resolver := env.Resolver()
	detector := status.NewDetector(env.readFS())
	for _, decl := range cfg.Declarations(platform) {
		entry := types.LinkEntry{
			Section: decl.Section,
			Target:  decl.Target,
			Source:  decl.Source,
			Line:    decl.Line,
		}

		link, err := resolver.ResolveDeclaration(decl)
		if err != nil {
			entry.Error = errors.Message(err)
			entry.Code = string(errors.GetErrorCode(err))
			report.Links = append(report.Links, entry)
			continue
		}

		state := detector.Classify(link)
		entry.Target = resolver.Display(link.Target)
		entry.Status = state.Status
		if state.IsSymlink && state.Status != types.StatusValid {
			entry.Destination = resolver.Display(state.Destination)
		}
		if state.Err != nil {
			entry.Error = errors.Message(state.Err)
		}
		if state.Status == types.StatusValid {
			if rel := env.repoRelative(link.Source); rel != "" {
				entry.Modified = repoStatus.IsModified(rel)
			}
		}
		report.Links = append(report.Links, entry)
	}

	logger.Debug().Int("links", len(report.Links)).Msg("Status collected")
	return report, nil
}

// repositoryState converts a repository status for reports.
func (e *Env) repositoryState(st repository.Status, err error) types.RepositoryState {
	state := types.RepositoryState{
		Path:   e.Resolver().Display(e.RepoDir()),
		Remote: e.Settings.Repository.Remote,
	}
	if err != nil {
		state.Error = errors.Message(err)
		return state
	}
	state.Branch = st.Branch
	state.Clean = st.Clean
	state.Ahead = st.Ahead
	state.Behind = st.Behind
	return state
}

package links

import "github.com/arthur-debert/dotf/pkg/types"

// Summarize tallies results.
func Summarize(results []types.ProjectionResult) types.Summary {
	s := types.Summary{Total: len(results)}
	for _, r := range results {
		switch r.Outcome {
		case types.OutcomeCreated:
			s.Created++
		case types.OutcomeUnchanged:
			s.Unchanged++
		case types.OutcomeAborted:
			s.Aborted++
		case types.OutcomeRemoved:
			s.Removed++
		case types.OutcomeSkipped:
			s.Skipped++
		case types.OutcomeError:
			s.Errors++
		}
		if r.Backup != nil {
			s.BackedUp++
		}
	}
	return s
}

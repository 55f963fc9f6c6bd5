package types

import "context"

// Outcome is the result of projecting a single declaration.
type Outcome string

const (
	// OutcomeUnchanged means the link was already valid and nothing was touched
	OutcomeUnchanged Outcome = "unchanged"

	// OutcomeCreated means a link was created (possibly after a backup)
	OutcomeCreated Outcome = "created"

	// OutcomeAborted means the conflict policy left the target untouched
	OutcomeAborted Outcome = "aborted"

	// OutcomeError means this declaration failed; others are unaffected
	OutcomeError Outcome = "error"

	// OutcomeRemoved is used by uninstall for links that were removed
	OutcomeRemoved Outcome = "removed"

	// OutcomeSkipped is used when a declaration was deliberately left alone
	OutcomeSkipped Outcome = "skipped"
)

// ProjectionResult is the per-declaration report of a projection pass.
type ProjectionResult struct {
	Declaration Declaration

	// Target and Source are the resolved paths; empty when resolution failed
	Target string
	Source string

	// Before is the status observed before any mutation
	Before LinkStatus

	Outcome Outcome

	// Backup is set when a conflicting entry was preserved
	Backup *BackupRecord

	// Planned is true for dry runs: Outcome is what would have happened
	Planned bool

	Err error
}

// Succeeded reports whether the declaration ended in the desired state.
func (r ProjectionResult) Succeeded() bool {
	return r.Outcome == OutcomeCreated || r.Outcome == OutcomeUnchanged || r.Outcome == OutcomeRemoved
}

// Policy decides what happens to a target in conflict.
type Policy string

const (
	// PolicyBackup preserves the existing entry and then replaces it with the link
	PolicyBackup Policy = "backup"

	// PolicyAbort skips the declaration and leaves the target untouched
	PolicyAbort Policy = "abort"
)

// Conflict describes a target the projector found in conflict.
type Conflict struct {
	State LinkState
}

// PolicyResolver is consulted once per conflict. Interactive prompts and
// fixed batch policies both implement it, so the projector has one code path.
type PolicyResolver interface {
	ResolveConflict(ctx context.Context, conflict Conflict) (Policy, error)
}

// PolicyFunc adapts a function to PolicyResolver.
type PolicyFunc func(ctx context.Context, conflict Conflict) (Policy, error)

// ResolveConflict calls f.
func (f PolicyFunc) ResolveConflict(ctx context.Context, conflict Conflict) (Policy, error) {
	return f(ctx, conflict)
}

// FixedPolicy returns a resolver that always answers p.
func FixedPolicy(p Policy) PolicyResolver {
	return PolicyFunc(func(context.Context, Conflict) (Policy, error) {
		return p, nil
	})
}

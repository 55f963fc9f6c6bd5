package style

import (
	"github.com/arthur-debert/dotf/pkg/types"
	"github.com/charmbracelet/lipgloss"
)

// Verbs describes an outcome in past and future tense, the latter for dry runs.
type Verbs struct {
	Past   string
	Future string
}

// OutcomeVerbs maps projection outcomes to how they are reported.
var OutcomeVerbs = map[types.Outcome]Verbs{
	types.OutcomeCreated:   {Past: "linked", Future: "will be linked"},
	types.OutcomeUnchanged: {Past: "already linked", Future: "already linked"},
	types.OutcomeAborted:   {Past: "left untouched", Future: "would be left untouched"},
	types.OutcomeRemoved:   {Past: "unlinked", Future: "will be unlinked"},
	types.OutcomeSkipped:   {Past: "not managed, skipped", Future: "not managed, would be skipped"},
	types.OutcomeError:     {Past: "failed", Future: "would fail"},
}

// Describe returns the verb for outcome.
func Describe(outcome types.Outcome, dryRun bool) string {
	v, ok := OutcomeVerbs[outcome]
	if !ok {
		return string(outcome)
	}
	if dryRun {
		return v.Future
	}
	return v.Past
}

// OutcomeGlyph returns the indicator and its style for an outcome.
func (t *Theme) OutcomeGlyph(outcome types.Outcome) (string, lipgloss.Style) {
	switch outcome {
	case types.OutcomeCreated, types.OutcomeRemoved:
		return SuccessGlyph, t.Success
	case types.OutcomeUnchanged:
		return SuccessGlyph, t.Muted
	case types.OutcomeAborted:
		return WarningGlyph, t.Warning
	case types.OutcomeError:
		return ErrorGlyph, t.Error
	default:
		return InfoGlyph, t.Muted
	}
}

// StatusGlyph returns the indicator and its style for a link status.
func (t *Theme) StatusGlyph(status types.LinkStatus) (string, lipgloss.Style) {
	switch status {
	case types.StatusValid:
		return SuccessGlyph, t.Success
	case types.StatusMissing:
		return PendingGlyph, t.Info
	case types.StatusConflict:
		return WarningGlyph, t.Warning
	case types.StatusBroken:
		return ErrorGlyph, t.Error
	default:
		return InfoGlyph, t.Muted
	}
}

// RestoreGlyph returns the indicator and its style for a restore outcome.
func (t *Theme) RestoreGlyph(outcome types.RestoreOutcome) (string, lipgloss.Style) {
	switch outcome {
	case types.RestoreRestored:
		return SuccessGlyph, t.Success
	case types.RestoreFailed:
		return ErrorGlyph, t.Error
	default:
		return InfoGlyph, t.Muted
	}
}

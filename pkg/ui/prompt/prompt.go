// Package prompt asks the user how to resolve conflicts and to confirm
// actions. Prompt implements types.PolicyResolver so interactive runs use
// the same projection path as batch runs.
package prompt

import (
	"context"
	"fmt"
	"sync"

	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/logging"
	"github.com/arthur-debert/dotf/pkg/types"
)

// Conflict choices as shown to the user.
const (
	ChoiceBackup    = "Back up and replace"
	ChoiceSkip      = "Skip"
	ChoiceBackupAll = "Back up and replace all remaining"
	ChoiceSkipAll   = "Skip all remaining"
)

// Choices lists the conflict options in display order.
var Choices = []string{ChoiceBackup, ChoiceSkip, ChoiceBackupAll, ChoiceSkipAll}

// Asker performs the raw interactions.
type Asker interface {
	Select(message string, options []string, def string) (string, error)
	Confirm(message string, def bool) (bool, error)
	Input(message, def string) (string, error)
}

// Prompt resolves conflicts by asking. An "all remaining" answer sticks for
// the rest of the run.
type Prompt struct {
	asker   Asker
	display func(path string) string

	mu     sync.Mutex
	sticky types.Policy
}

// New returns a prompt backed by asker. display shortens paths for the
// question text; nil shows them as is.
func New(asker Asker, display func(string) string) *Prompt {
	if display == nil {
		display = func(p string) string { return p }
	}
	return &Prompt{asker: asker, display: display}
}

// NewTerminal returns a prompt using pterm's interactive printers.
func NewTerminal(display func(string) string) *Prompt {
	return New(PtermAsker{}, display)
}

// ResolveConflict asks what to do with one conflicting target.
func (p *Prompt) ResolveConflict(ctx context.Context, c types.Conflict) (types.Policy, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Wrap(err, errors.ErrCancelled, "prompt cancelled")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sticky != "" {
		return p.sticky, nil
	}

	choice, err := p.asker.Select(p.question(c.State), Choices, ChoiceBackup)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCancelled, "no answer to conflict prompt")
	}

	logger := logging.GetLogger("prompt")
	logger.Debug().
		Str("target", c.State.Link.Target).
		Str("choice", choice).
		Msg("Conflict answered")

	switch choice {
	case ChoiceBackup:
		return types.PolicyBackup, nil
	case ChoiceSkip:
		return types.PolicyAbort, nil
	case ChoiceBackupAll:
		p.sticky = types.PolicyBackup
		return types.PolicyBackup, nil
	case ChoiceSkipAll:
		p.sticky = types.PolicyAbort
		return types.PolicyAbort, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown choice %q", choice)
	}
}

func (p *Prompt) question(state types.LinkState) string {
	existing := "a file"
	switch {
	case state.IsSymlink:
		existing = "a symlink to " + state.Destination
	case state.IsDir:
		existing = "a directory"
	}
	return fmt.Sprintf("%s already exists as %s and is not managed by dotf.\nIt should link to %s. What should happen?",
		p.display(state.Link.Target), existing, p.display(state.Link.Source))
}

// Confirm asks a yes/no question.
func (p *Prompt) Confirm(message string, def bool) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ok, err := p.asker.Confirm(message, def)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCancelled, "no answer to confirmation")
	}
	return ok, nil
}

// Input asks for a line of text.
func (p *Prompt) Input(message, def string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, err := p.asker.Input(message, def)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCancelled, "no answer to prompt")
	}
	return s, nil
}

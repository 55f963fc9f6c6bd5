package prompt

import (
	"github.com/pterm/pterm"
)

// PtermAsker asks on the terminal with pterm's interactive printers.
type PtermAsker struct{}

func (PtermAsker) Select(message string, options []string, def string) (string, error) {
	return pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithDefaultOption(def).
		Show(message)
}

func (PtermAsker) Confirm(message string, def bool) (bool, error) {
	return pterm.DefaultInteractiveConfirm.
		WithDefaultValue(def).
		Show(message)
}

func (PtermAsker) Input(message, def string) (string, error) {
	return pterm.DefaultInteractiveTextInput.
		WithDefaultValue(def).
		Show(message)
}

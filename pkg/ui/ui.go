// Package ui renders command reports in the supported output formats.
package ui

import (
	"fmt"
	"io"

	"github.com/arthur-debert/dotf/pkg/ui/json"
	"github.com/arthur-debert/dotf/pkg/ui/junit"
	"github.com/arthur-debert/dotf/pkg/ui/markdown"
	"github.com/arthur-debert/dotf/pkg/ui/text"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders a report from pkg/types
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a new renderer based on the specified format.
// FormatAuto inspects output to decide whether to use colors.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		return NewRenderer(DetectFormat(output), output)
	case FormatTerminal:
		return text.New(output, true), nil
	case FormatText:
		return text.New(output, false), nil
	case FormatJSON:
		return json.New(output), nil
	case FormatMarkdown:
		return markdown.New(output, IsTerminal(output)), nil
	case FormatJUnit:
		return junit.New(output), nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}

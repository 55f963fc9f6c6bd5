// pkg/ui/ui_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test format parsing and renderer selection

package ui_test

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/dotf/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    ui.Format
		name    string
		wantErr bool
	}{
		{in: "", want: ui.FormatAuto, name: "auto"},
		{in: "auto", want: ui.FormatAuto, name: "auto"},
		{in: "TERM", want: ui.FormatTerminal, name: "term"},
		{in: "plain", want: ui.FormatText, name: "text"},
		{in: "json", want: ui.FormatJSON, name: "json"},
		{in: "md", want: ui.FormatMarkdown, name: "markdown"},
		{in: "junit", want: ui.FormatJUnit, name: "junit"},
		{in: "yaml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ui.ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.name, got.String())
		})
	}
}

func TestNewRenderer(t *testing.T) {
	for _, format := range []ui.Format{ui.FormatAuto, ui.FormatTerminal, ui.FormatText, ui.FormatJSON, ui.FormatMarkdown, ui.FormatJUnit} {
		t.Run(format.String(), func(t *testing.T) {
			r, err := ui.NewRenderer(format, &bytes.Buffer{})
			require.NoError(t, err)
			assert.NotNil(t, r)
		})
	}

	_, err := ui.NewRenderer(ui.Format(999), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestDetectFormatForPipes(t *testing.T) {
	assert.Equal(t, ui.FormatText, ui.DetectFormat(&bytes.Buffer{}))
	assert.False(t, ui.IsTerminal(&bytes.Buffer{}))
}

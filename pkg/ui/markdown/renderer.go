// Package markdown renders reports as markdown documents. On terminals the
// document is styled with glamour; elsewhere the markdown source is written
// so it can be pasted into issues or pull requests.
package markdown

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/style"
	"github.com/arthur-debert/dotf/pkg/types"
	"github.com/charmbracelet/glamour"
)

// Renderer writes markdown reports.
type Renderer struct {
	output io.Writer
	styled bool
	width  int
}

// New creates a markdown renderer. styled renders through glamour.
func New(output io.Writer, styled bool) *Renderer {
	return &Renderer{output: output, styled: styled, width: 100}
}

// RenderResult renders any report type
func (r *Renderer) RenderResult(result interface{}) error {
	var doc string
	switch v := result.(type) {
	case *types.LinkReport:
		doc = Links(v)
	case *types.ValidationReport:
		doc = Validation(v)
	case *types.StatusReport:
		doc = Status(v)
	case *types.BackupListReport:
		doc = Backups(v)
	case *types.RestoreReport:
		doc = Restore(v)
	case *types.ScriptReport:
		doc = Script(v)
	case *types.InitReport:
		doc = Init(v)
	case *types.SyncReport:
		doc = Sync(v)
	case *types.InstallAllReport:
		doc = InstallAll(v)
	case *types.ConfigReport:
		doc = Config(v)
	case *types.SettingsReport:
		doc = Settings(v)
	default:
		doc = fmt.Sprintf("```\n%+v\n```\n", result)
	}
	return r.write(doc)
}

// RenderError renders an error as a quote block
func (r *Renderer) RenderError(err error) error {
	msg := errors.Message(err)
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		msg = fmt.Sprintf("`%s` %s", code, msg)
	}
	return r.write("> **Error:** " + msg + "\n")
}

// RenderMessage renders a simple paragraph
func (r *Renderer) RenderMessage(msg string) error {
	return r.write(msg + "\n")
}

func (r *Renderer) write(doc string) error {
	if r.styled {
		doc = r.style(doc)
	}
	_, err := io.WriteString(r.output, doc)
	return err
}

// style renders doc with glamour and falls back to the source on error.
func (r *Renderer) style(doc string) string {
	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(r.width),
	)
	if err != nil {
		return doc
	}
	out, err := tr.Render(doc)
	if err != nil {
		return doc
	}
	return out
}

// Links renders an install or uninstall report.
func Links(rep *types.LinkReport) string {
	var b strings.Builder
	title := "# " + capitalize(rep.Command)
	if rep.DryRun {
		title += " (dry run)"
	}
	b.WriteString(title + "\n\n")
	if rep.Platform != "" {
		fmt.Fprintf(&b, "Platform: `%s`\n\n", rep.Platform)
	}

	if len(rep.Issues) > 0 {
		b.WriteString("## Validation issues\n\n")
		issueTable(&b, rep.Issues)
		b.WriteString("\n")
	}

	if len(rep.Entries) > 0 {
		b.WriteString("| | Target | Source | Result |\n|---|---|---|---|\n")
		for _, e := range rep.Entries {
			result := style.Describe(e.Outcome, rep.DryRun)
			if e.BackupID != "" {
				result += " (backup `" + e.BackupID + "`)"
			}
			if e.Error != "" {
				result += ": " + e.Error
			}
			fmt.Fprintf(&b, "| %s | `%s` | `%s` | %s |\n", outcomeMark(e.Outcome), cell(e.Target), cell(e.Source), cell(result))
		}
		b.WriteString("\n")
	}

	s := rep.Summary
	fmt.Fprintf(&b, "**%d** declarations: %d linked, %d unchanged, %d removed, %d left untouched, %d skipped, %d failed, %d backed up.\n",
		s.Total, s.Created, s.Unchanged, s.Removed, s.Aborted, s.Skipped, s.Errors, s.BackedUp)
	return b.String()
}

// Validation renders a validation report.
func Validation(rep *types.ValidationReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Validation of `%s`\n\n", rep.Config)
	if rep.Valid() {
		b.WriteString("No issues found.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "Found **%d** issue(s).\n\n", len(rep.Issues))
	issueTable(&b, rep.Issues)
	return b.String()
}

func issueTable(b *strings.Builder, issues []types.ValidationIssue) {
	b.WriteString("| Kind | Location | Message |\n|---|---|---|\n")
	for _, issue := range issues {
		fmt.Fprintf(b, "| %s | %s | %s |\n", issue.Kind, cell(issue.Location()), cell(issue.Message))
	}
}

// Status renders a status report.
func Status(rep *types.StatusReport) string {
	var b strings.Builder
	b.WriteString("# Status\n\n")

	if repo := rep.Repository; repo != nil {
		b.WriteString("## Repository\n\n")
		repository(&b, *repo)
		if rep.LastSync != nil {
			fmt.Fprintf(&b, "- Last sync: %s\n", rep.LastSync.UTC().Format(time.RFC3339))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Links on `%s`\n\n", rep.Platform)
	if len(rep.Links) == 0 {
		b.WriteString("No declarations.\n")
		return b.String()
	}
	b.WriteString("| Status | Target | Source | Note |\n|---|---|---|---|\n")
	for _, l := range rep.Links {
		var notes []string
		if l.Modified {
			notes = append(notes, "modified")
		}
		if l.Destination != "" && l.Status != types.StatusValid {
			notes = append(notes, "points at `"+l.Destination+"`")
		}
		if l.Error != "" {
			notes = append(notes, l.Error)
		}
		fmt.Fprintf(&b, "| %s | `%s` | `%s` | %s |\n", l.Status, cell(l.Target), cell(l.Source), cell(strings.Join(notes, "; ")))
	}
	return b.String()
}

func repository(b *strings.Builder, repo types.RepositoryState) {
	fmt.Fprintf(b, "- Path: `%s`\n", repo.Path)
	if repo.Error != "" {
		fmt.Fprintf(b, "- Error: %s\n", repo.Error)
		return
	}
	if repo.Remote != "" {
		fmt.Fprintf(b, "- Remote: `%s`\n", repo.Remote)
	}
	fmt.Fprintf(b, "- Branch: `%s`\n", repo.Branch)
	state := "clean"
	if !repo.Clean {
		state = "local changes"
	}
	fmt.Fprintf(b, "- Working tree: %s (%d ahead, %d behind)\n", state, repo.Ahead, repo.Behind)
}

// Backups renders the backup listing.
func Backups(rep *types.BackupListReport) string {
	var b strings.Builder
	b.WriteString("# Backups\n\n")
	if len(rep.Records) == 0 {
		fmt.Fprintf(&b, "No backups in `%s`.\n", rep.Root)
		return b.String()
	}
	b.WriteString("| ID | Original | Kind | Created |\n|---|---|---|---|\n")
	for _, rec := range rep.Records {
		fmt.Fprintf(&b, "| `%s` | `%s` | %s | %s |\n", rec.ID, cell(rec.Original), rec.Kind, rec.CreatedAt.UTC().Format(time.RFC3339))
	}
	return b.String()
}

// Restore renders a restore report.
func Restore(rep *types.RestoreReport) string {
	var b strings.Builder
	b.WriteString("# Restore\n\n")
	if len(rep.Entries) == 0 {
		b.WriteString("Nothing to restore.\n")
		return b.String()
	}
	b.WriteString("| Original | Backup | Outcome | Note |\n|---|---|---|---|\n")
	for _, e := range rep.Entries {
		note := e.Message
		if e.Displaced != "" {
			note = strings.TrimSpace(note + " previous entry kept as `" + e.Displaced + "`")
		}
		if e.Error != "" {
			note = e.Error
		}
		fmt.Fprintf(&b, "| `%s` | `%s` | %s | %s |\n", cell(e.Original), e.BackupID, e.Outcome, cell(note))
	}
	return b.String()
}

// Script renders a script run.
func Script(rep *types.ScriptReport) string {
	if rep.Skipped != "" {
		return fmt.Sprintf("# Script `%s`\n\nSkipped: %s.\n", rep.Name, rep.Skipped)
	}
	if rep.Error != "" {
		return fmt.Sprintf("# Script `%s`\n\nFailed with exit code %d: %s\n", rep.Name, rep.ExitCode, rep.Error)
	}
	return fmt.Sprintf("# Script `%s`\n\n`%s` finished in %s.\n", rep.Name, rep.Path, rep.Duration.Round(time.Millisecond))
}

// Init renders an init report.
func Init(rep *types.InitReport) string {
	if rep.Template {
		return fmt.Sprintf("# Init\n\nCreated `%s`.\n", rep.Config)
	}
	return fmt.Sprintf("# Init\n\nCloned `%s` (branch `%s`) into `%s`.\n", rep.Remote, rep.Branch, rep.RepoDir)
}

// Sync renders a sync report.
func Sync(rep *types.SyncReport) string {
	var b strings.Builder
	b.WriteString("# Sync\n\n")
	repository(&b, rep.Repository)
	fmt.Fprintf(&b, "- Synced at: %s\n", rep.SyncedAt.UTC().Format(time.RFC3339))
	if rep.Install != nil {
		b.WriteString("\n" + strings.Replace(Links(rep.Install), "# ", "## ", 1))
	}
	return b.String()
}

// InstallAll renders a full install.
func InstallAll(rep *types.InstallAllReport) string {
	var b strings.Builder
	b.WriteString("# Install\n\n")
	demote := func(doc string) string {
		return strings.Replace(doc, "# ", "## ", 1)
	}
	if rep.Deps != nil {
		b.WriteString(demote(Script(rep.Deps)) + "\n")
	}
	if rep.Links != nil {
		b.WriteString(demote(Links(rep.Links)) + "\n")
	}
	for i := range rep.Custom {
		b.WriteString(demote(Script(&rep.Custom[i])) + "\n")
	}
	return b.String()
}

// Config renders the configuration summary.
func Config(rep *types.ConfigReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Configuration `%s`\n\n", rep.Config)
	if rep.Name != "" {
		fmt.Fprintf(&b, "- Name: %s\n", rep.Name)
	}
	if rep.Description != "" {
		fmt.Fprintf(&b, "- Description: %s\n", rep.Description)
	}
	fmt.Fprintf(&b, "- Symlinks: %d\n", rep.Symlinks)
	for _, p := range rep.Platforms {
		if n, ok := rep.PlatformSymlinks[p]; ok {
			fmt.Fprintf(&b, "  - `%s`: %d\n", p, n)
		}
	}
	fmt.Fprintf(&b, "- Scripts: %d\n", rep.Scripts)
	if len(rep.Custom) > 0 {
		fmt.Fprintf(&b, "- Custom scripts: `%s`\n", strings.Join(rep.Custom, "`, `"))
	}
	fmt.Fprintf(&b, "- Platforms: %s\n\n", strings.Join(rep.Platforms, ", "))

	if rep.Valid() {
		b.WriteString("No issues found.\n")
	} else {
		fmt.Fprintf(&b, "Found **%d** issue(s).\n\n", len(rep.Issues))
		issueTable(&b, rep.Issues)
	}
	if rep.Content != "" {
		fmt.Fprintf(&b, "\n```\n%s\n```\n", strings.TrimRight(rep.Content, "\n"))
	}
	return b.String()
}

// Settings renders the result of a settings edit.
func Settings(rep *types.SettingsReport) string {
	state := "unchanged"
	if rep.Changed {
		state = "saved"
	}
	return fmt.Sprintf("# Settings\n\n- File: `%s` (%s)\n- Remote: `%s`\n- Branch: `%s`\n", rep.Path, state, rep.Remote, rep.Branch)
}

func outcomeMark(o types.Outcome) string {
	switch o {
	case types.OutcomeCreated, types.OutcomeUnchanged, types.OutcomeRemoved:
		return style.SuccessGlyph
	case types.OutcomeError:
		return style.ErrorGlyph
	case types.OutcomeAborted:
		return style.WarningGlyph
	default:
		return style.InfoGlyph
	}
}

func cell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "|", `\|`), "\n", " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Package text renders reports as human readable text, styled when the
// output supports colors.
package text

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/style"
	"github.com/arthur-debert/dotf/pkg/types"
)

// Renderer writes text reports.
type Renderer struct {
	output io.Writer
	theme  *style.Theme
}

// New creates a text renderer. color enables ANSI styling.
func New(output io.Writer, color bool) *Renderer {
	return &Renderer{output: output, theme: style.NewTheme(output, color)}
}

// RenderResult renders any report type
func (r *Renderer) RenderResult(result interface{}) error {
	var b strings.Builder

	switch v := result.(type) {
	case *types.LinkReport:
		r.links(&b, v)
	case *types.ValidationReport:
		r.validation(&b, v)
	case *types.StatusReport:
		r.status(&b, v)
	case *types.BackupListReport:
		r.backups(&b, v)
	case *types.RestoreReport:
		r.restore(&b, v)
	case *types.ScriptReport:
		r.script(&b, v)
	case *types.InitReport:
		r.init(&b, v)
	case *types.SyncReport:
		r.sync(&b, v)
	case *types.InstallAllReport:
		r.installAll(&b, v)
	case *types.ConfigReport:
		r.config(&b, v)
	case *types.SettingsReport:
		r.settings(&b, v)
	default:
		fmt.Fprintf(&b, "%+v\n", result)
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error, with its code when it has one
func (r *Renderer) RenderError(err error) error {
	msg := errors.Message(err)
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		msg = fmt.Sprintf("%s %s", r.theme.Muted.Render("["+string(code)+"]"), msg)
	}
	_, werr := fmt.Fprintf(r.output, "%s %s\n", r.theme.Error.Render(style.ErrorGlyph+" Error:"), msg)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func (r *Renderer) title(b *strings.Builder, s string) {
	b.WriteString(r.theme.Title.Render(s))
	b.WriteString("\n")
}

func (r *Renderer) links(b *strings.Builder, rep *types.LinkReport) {
	heading := rep.Command
	if rep.DryRun {
		heading += " (dry run)"
	}
	if rep.Platform != "" {
		heading += r.theme.Muted.Render(" on " + rep.Platform)
	}
	r.title(b, heading)

	if len(rep.Issues) > 0 {
		r.issues(b, rep.Issues)
		if len(rep.Entries) == 0 {
			return
		}
		b.WriteString("\n")
	}

	if len(rep.Entries) == 0 {
		b.WriteString(style.Indent(r.theme.Muted.Render("No declarations"), 1) + "\n")
		return
	}

	for _, e := range rep.Entries {
		glyph, st := r.theme.OutcomeGlyph(e.Outcome)
		line := fmt.Sprintf("%s %s %s %s  %s",
			st.Render(glyph),
			r.theme.Path.Render(e.Target),
			r.theme.Muted.Render("→"),
			r.theme.Path.Render(e.Source),
			style.Describe(e.Outcome, rep.DryRun))
		if e.BackupID != "" {
			line += " " + r.theme.Backup.Render("(backup "+e.BackupID+")")
		}
		if e.Error != "" {
			line += ": " + r.theme.Error.Render(e.Error)
		}
		b.WriteString(style.Indent(line, 1) + "\n")
	}

	b.WriteString("\n" + r.summary(rep.Summary, rep.DryRun) + "\n")
	if rep.Bucket != "" && !rep.DryRun {
		b.WriteString(r.theme.Muted.Render("Backups stored in "+rep.Bucket) + "\n")
	}
}

func (r *Renderer) summary(s types.Summary, dryRun bool) string {
	var parts []string
	add := func(n int, outcome types.Outcome) {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, style.Describe(outcome, dryRun)))
		}
	}
	add(s.Created, types.OutcomeCreated)
	add(s.Unchanged, types.OutcomeUnchanged)
	add(s.Removed, types.OutcomeRemoved)
	add(s.Aborted, types.OutcomeAborted)
	add(s.Skipped, types.OutcomeSkipped)
	add(s.Errors, types.OutcomeError)
	if s.BackedUp > 0 {
		parts = append(parts, fmt.Sprintf("%d backed up", s.BackedUp))
	}
	if len(parts) == 0 {
		return r.theme.Muted.Render("Nothing to do")
	}

	st := r.theme.Success
	if s.Failed() {
		st = r.theme.Error
	} else if s.Aborted > 0 {
		st = r.theme.Warning
	}
	return st.Render("Summary:") + " " + strings.Join(parts, ", ")
}

func (r *Renderer) issues(b *strings.Builder, issues []types.ValidationIssue) {
	for _, issue := range issues {
		line := fmt.Sprintf("%s %s %s",
			r.theme.Error.Render(style.ErrorGlyph),
			r.theme.Muted.Render(issue.Location()),
			issue.Message)
		b.WriteString(style.Indent(line, 1) + "\n")
	}
}

func (r *Renderer) validation(b *strings.Builder, rep *types.ValidationReport) {
	if rep.Valid() {
		fmt.Fprintf(b, "%s %s is valid\n", r.theme.Success.Render(style.SuccessGlyph), r.theme.Path.Render(rep.Config))
		return
	}
	noun := "issues"
	if len(rep.Issues) == 1 {
		noun = "issue"
	}
	fmt.Fprintf(b, "%s %s: %d %s\n", r.theme.Error.Render(style.ErrorGlyph), r.theme.Path.Render(rep.Config), len(rep.Issues), noun)
	r.issues(b, rep.Issues)
}

func (r *Renderer) status(b *strings.Builder, rep *types.StatusReport) {
	if rep.Brief {
		r.briefStatus(b, rep)
		return
	}
	if repo := rep.Repository; repo != nil {
		r.title(b, "Repository")
		b.WriteString(style.Indent(r.repository(*repo), 1) + "\n")
		if rep.LastSync != nil {
			b.WriteString(style.Indent(r.theme.Muted.Render("last sync "+rep.LastSync.Local().Format(time.RFC1123)), 1) + "\n")
		}
		b.WriteString("\n")
	}

	r.title(b, "Links"+r.theme.Muted.Render(" on "+rep.Platform))
	if len(rep.Links) == 0 {
		b.WriteString(style.Indent(r.theme.Muted.Render("No declarations"), 1) + "\n")
		return
	}
	for _, l := range rep.Links {
		glyph, st := r.theme.StatusGlyph(l.Status)
		line := fmt.Sprintf("%s %s %s %s  %s",
			st.Render(glyph),
			r.theme.Path.Render(l.Target),
			r.theme.Muted.Render("→"),
			r.theme.Path.Render(l.Source),
			st.Render(string(l.Status)))
		if l.Modified {
			line += " " + r.theme.Warning.Render("(modified)")
		}
		if l.Destination != "" && l.Status != types.StatusValid {
			line += r.theme.Muted.Render(" points at " + l.Destination)
		}
		if l.Error != "" {
			line += ": " + r.theme.Error.Render(l.Error)
		}
		b.WriteString(style.Indent(line, 1) + "\n")
	}

	counts := rep.Counts()
	fmt.Fprintf(b, "\n%d valid, %d missing, %d conflict, %d broken\n",
		counts[types.StatusValid], counts[types.StatusMissing], counts[types.StatusConflict], counts[types.StatusBroken])
}

func (r *Renderer) briefStatus(b *strings.Builder, rep *types.StatusReport) {
	fmt.Fprintf(b, "%s Initialized on %s\n", r.theme.Success.Render(style.SuccessGlyph), rep.Platform)
	if repo := rep.Repository; repo != nil {
		switch {
		case repo.Error != "":
			fmt.Fprintf(b, "%s %s\n", r.theme.Error.Render(style.ErrorGlyph), repo.Error)
		case !repo.Clean:
			fmt.Fprintf(b, "%s Repository has local changes\n", r.theme.Warning.Render(style.WarningGlyph))
		}
		if repo.Behind > 0 {
			fmt.Fprintf(b, "%s %d commits behind\n", r.theme.Info.Render(style.InfoGlyph), repo.Behind)
		}
		if repo.Ahead > 0 {
			fmt.Fprintf(b, "%s %d commits ahead\n", r.theme.Info.Render(style.InfoGlyph), repo.Ahead)
		}
	}
	if n := rep.Problems(); n > 0 {
		fmt.Fprintf(b, "%s %d of %d links need attention\n", r.theme.Warning.Render(style.WarningGlyph), n, len(rep.Links))
		return
	}
	fmt.Fprintf(b, "%s All %d links OK\n", r.theme.Success.Render(style.SuccessGlyph), len(rep.Links))
}

func (r *Renderer) repository(repo types.RepositoryState) string {
	if repo.Error != "" {
		return fmt.Sprintf("%s %s: %s", r.theme.Error.Render(style.ErrorGlyph), r.theme.Path.Render(repo.Path), repo.Error)
	}
	state := r.theme.Success.Render("clean")
	if !repo.Clean {
		state = r.theme.Warning.Render("local changes")
	}
	line := fmt.Sprintf("%s on %s, %s", r.theme.Path.Render(repo.Path), r.theme.Code.Render(repo.Branch), state)
	if repo.Ahead > 0 || repo.Behind > 0 {
		line += fmt.Sprintf(", %d ahead, %d behind", repo.Ahead, repo.Behind)
	}
	if repo.Remote != "" {
		line += "\n" + r.theme.Muted.Render("remote "+repo.Remote)
	}
	return line
}

func (r *Renderer) backups(b *strings.Builder, rep *types.BackupListReport) {
	if len(rep.Records) == 0 {
		b.WriteString(r.theme.Muted.Render("No backups in "+rep.Root) + "\n")
		return
	}
	r.title(b, "Backups")
	for _, rec := range rep.Records {
		line := fmt.Sprintf("%s %s %s %s",
			r.theme.Backup.Render(rec.ID),
			r.theme.Path.Render(rec.Original),
			r.theme.Muted.Render(string(rec.Kind)),
			r.theme.Muted.Render(rec.CreatedAt.Local().Format("2006-01-02 15:04:05")))
		b.WriteString(style.Indent(line, 1) + "\n")
	}
}

func (r *Renderer) restore(b *strings.Builder, rep *types.RestoreReport) {
	if len(rep.Entries) == 0 {
		b.WriteString(r.theme.Muted.Render("Nothing to restore") + "\n")
		return
	}
	for _, e := range rep.Entries {
		glyph, st := r.theme.RestoreGlyph(e.Outcome)
		line := fmt.Sprintf("%s %s %s %s",
			st.Render(glyph),
			r.theme.Path.Render(e.Original),
			st.Render(string(e.Outcome)),
			r.theme.Muted.Render("from "+e.BackupID))
		if e.Displaced != "" {
			line += r.theme.Backup.Render(" (previous entry kept as " + e.Displaced + ")")
		}
		if e.Message != "" {
			line += r.theme.Muted.Render(": " + e.Message)
		}
		if e.Error != "" {
			line += ": " + r.theme.Error.Render(e.Error)
		}
		b.WriteString(line + "\n")
	}
}

func (r *Renderer) script(b *strings.Builder, rep *types.ScriptReport) {
	if rep.Skipped != "" {
		fmt.Fprintf(b, "%s %s %s\n", r.theme.Muted.Render(style.InfoGlyph), r.theme.Script.Render(rep.Name), r.theme.Muted.Render(rep.Skipped))
		return
	}
	if rep.Error != "" {
		fmt.Fprintf(b, "%s %s %s: %s\n", r.theme.Error.Render(style.ErrorGlyph), r.theme.Script.Render(rep.Name), r.theme.Path.Render(rep.Path), rep.Error)
		return
	}
	fmt.Fprintf(b, "%s %s %s %s\n",
		r.theme.Success.Render(style.SuccessGlyph),
		r.theme.Script.Render(rep.Name),
		r.theme.Path.Render(rep.Path),
		r.theme.Muted.Render("finished in "+rep.Duration.Round(time.Millisecond).String()))
}

func (r *Renderer) init(b *strings.Builder, rep *types.InitReport) {
	if rep.Template {
		fmt.Fprintf(b, "%s Created %s\n", r.theme.Success.Render(style.SuccessGlyph), r.theme.Path.Render(rep.Config))
		return
	}
	fmt.Fprintf(b, "%s Cloned %s (%s) into %s\n",
		r.theme.Success.Render(style.SuccessGlyph),
		r.theme.Code.Render(rep.Remote),
		rep.Branch,
		r.theme.Path.Render(rep.RepoDir))
	if rep.Config != "" {
		fmt.Fprintf(b, "  %s\n", r.theme.Muted.Render("configuration "+rep.Config))
	}
}

func (r *Renderer) sync(b *strings.Builder, rep *types.SyncReport) {
	fmt.Fprintf(b, "%s Synced %s\n", r.theme.Success.Render(style.SuccessGlyph), r.repository(rep.Repository))
	if rep.Install != nil {
		b.WriteString("\n")
		r.links(b, rep.Install)
	}
}

func (r *Renderer) installAll(b *strings.Builder, rep *types.InstallAllReport) {
	if rep.Deps != nil {
		r.title(b, "Dependencies")
		r.script(b, rep.Deps)
		b.WriteString("\n")
	}
	if rep.Links != nil {
		r.links(b, rep.Links)
	}
	if len(rep.Custom) > 0 {
		b.WriteString("\n")
		r.title(b, "Custom scripts")
		for i := range rep.Custom {
			r.script(b, &rep.Custom[i])
		}
	}
}

func (r *Renderer) config(b *strings.Builder, rep *types.ConfigReport) {
	r.title(b, "Configuration "+r.theme.Path.Render(rep.Config))
	if rep.Name != "" {
		line := r.theme.Code.Render(rep.Name)
		if rep.Description != "" {
			line += r.theme.Muted.Render(": " + rep.Description)
		}
		b.WriteString(style.Indent(line, 1) + "\n")
	}

	symlinks := fmt.Sprintf("%d symlinks", rep.Symlinks)
	for _, p := range rep.Platforms {
		if n, ok := rep.PlatformSymlinks[p]; ok {
			symlinks += r.theme.Muted.Render(fmt.Sprintf(", %s +%d", p, n))
		}
	}
	b.WriteString(style.Indent(symlinks, 1) + "\n")

	scripts := fmt.Sprintf("%d scripts", rep.Scripts)
	if len(rep.Custom) > 0 {
		scripts += r.theme.Muted.Render(" (custom: " + strings.Join(rep.Custom, ", ") + ")")
	}
	b.WriteString(style.Indent(scripts, 1) + "\n")

	platforms := r.theme.Muted.Render("none")
	if len(rep.Platforms) > 0 {
		platforms = strings.Join(rep.Platforms, ", ")
	}
	b.WriteString(style.Indent("platforms "+platforms, 1) + "\n\n")

	if rep.Valid() {
		fmt.Fprintf(b, "%s No issues\n", r.theme.Success.Render(style.SuccessGlyph))
	} else {
		fmt.Fprintf(b, "%s %d issues\n", r.theme.Error.Render(style.ErrorGlyph), len(rep.Issues))
		r.issues(b, rep.Issues)
	}

	if rep.Content != "" {
		b.WriteString("\n" + rep.Content)
		if !strings.HasSuffix(rep.Content, "\n") {
			b.WriteString("\n")
		}
	}
}

func (r *Renderer) settings(b *strings.Builder, rep *types.SettingsReport) {
	if rep.Changed {
		fmt.Fprintf(b, "%s Saved %s\n", r.theme.Success.Render(style.SuccessGlyph), r.theme.Path.Render(rep.Path))
	} else {
		fmt.Fprintf(b, "%s Settings unchanged\n", r.theme.Muted.Render(style.InfoGlyph))
	}
	fmt.Fprintf(b, "  remote %s on %s\n", r.theme.Code.Render(rep.Remote), rep.Branch)
	if rep.Changed {
		fmt.Fprintf(b, "  %s\n", r.theme.Muted.Render("run 'dotf init --force' to check out the new repository"))
	}
}

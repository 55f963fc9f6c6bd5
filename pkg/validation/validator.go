package validation

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/dotf/pkg/config"
	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/logging"
	"github.com/arthur-debert/dotf/pkg/paths"
	"github.com/arthur-debert/dotf/pkg/types"
)

// Options tune a validation pass.
type Options struct {
	// Platform selects the overlay merged after the base declarations
	Platform string

	// AllPlatforms validates every overlay, each merged with the base set
	AllPlatforms bool

	// SkipSourceCheck disables source and script existence checks, e.g.
	// when the repository has not been cloned yet
	SkipSourceCheck bool
}

// Validator checks configurations against one home and repository.
type Validator struct {
	resolver *paths.Resolver
	fs       types.FS
}

// New creates a validator.
func New(resolver *paths.Resolver, fs types.FS) *Validator {
	return &Validator{resolver: resolver, fs: fs}
}

// seen maps a normalized target to the declaration that first claimed it.
type seen map[string]types.Declaration

func (s seen) clone() seen {
	c := make(seen, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}

// Validate returns all issues of cfg; an empty slice means clean.
func (v *Validator) Validate(cfg *config.Config, opts Options) []types.ValidationIssue {
	log := logging.GetLogger("validation")
	issues := []types.ValidationIssue{}

	// 1. Structure
	if !cfg.HasSymlinks {
		issues = append(issues, types.ValidationIssue{
			Kind:     types.IssueMissingSection,
			Severity: types.SeverityError,
			Section:  config.SectionSymlinks,
			Message:  "required section [symlinks] is missing",
		})
	}

	checkExistence := !opts.SkipSourceCheck && v.repositoryMaterialized()
	if !checkExistence {
		log.Debug().Str("repo", v.resolver.RepoRoot()).Msg("Skipping source existence checks")
	}

	// 2-4. Declarations: base first, then overlays
	base := seen{}
	for _, decl := range cfg.Symlinks {
		issues = append(issues, v.checkDeclaration(decl, base, checkExistence)...)
	}
	for _, overlay := range v.overlays(cfg, opts) {
		claimed := base.clone()
		for _, decl := range overlay.Symlinks {
			issues = append(issues, v.checkDeclaration(decl, claimed, checkExistence)...)
		}
	}

	// 5. Scripts
	for _, script := range cfg.Deps {
		issues = append(issues, v.checkScript(script, checkExistence)...)
	}
	for _, script := range cfg.Custom {
		issues = append(issues, v.checkScript(script, checkExistence)...)
	}

	log.Debug().
		Int("declarations", len(cfg.Symlinks)).
		Int("issues", len(issues)).
		Msg("Validated configuration")
	return issues
}

func (v *Validator) overlays(cfg *config.Config, opts Options) []config.Overlay {
	if opts.AllPlatforms {
		return cfg.Overlays
	}
	if overlay, ok := cfg.Overlay(opts.Platform); ok {
		return []config.Overlay{overlay}
	}
	return nil
}

// checkDeclaration applies the per-declaration rules in order: target path,
// source path, duplicate target, source existence.
func (v *Validator) checkDeclaration(decl types.Declaration, claimed seen, checkExistence bool) []types.ValidationIssue {
	var issues []types.ValidationIssue

	target, targetErr := v.resolver.Resolve(decl.Target, types.RoleTarget)
	if targetErr != nil {
		issues = append(issues, declIssue(decl, types.IssueInvalidPath, "invalid target: "+message(targetErr)))
	}

	source, sourceErr := v.resolver.Resolve(decl.Source, types.RoleSource)
	if sourceErr != nil {
		issues = append(issues, declIssue(decl, types.IssueInvalidPath, "invalid source: "+message(sourceErr)))
	}

	if targetErr == nil {
		if first, dup := claimed[target]; dup {
			issues = append(issues, declIssue(decl, types.IssueDuplicateTarget, duplicateMessage(decl, first, target)))
		} else {
			claimed[target] = decl
		}
	}

	if sourceErr == nil && checkExistence && v.resolver.InRepository(source) {
		if _, err := v.fs.Lstat(source); err != nil {
			issues = append(issues, declIssue(decl, types.IssueMissingSource,
				fmt.Sprintf("source %q does not exist in the repository", decl.Source)))
		}
	}

	return issues
}

func (v *Validator) checkScript(script config.Script, checkExistence bool) []types.ValidationIssue {
	path, err := v.resolver.Resolve(script.Path, types.RoleSource)
	if err != nil {
		return []types.ValidationIssue{scriptIssue(script, types.IssueInvalidPath, "invalid script path: "+message(err))}
	}
	if !checkExistence {
		return nil
	}
	info, err := v.fs.Stat(path)
	if err != nil {
		return []types.ValidationIssue{scriptIssue(script, types.IssueMissingScript,
			fmt.Sprintf("script %q for %s does not exist", script.Path, script.Name))}
	}
	if info.IsDir() {
		return []types.ValidationIssue{scriptIssue(script, types.IssueMissingScript,
			fmt.Sprintf("script %q for %s is a directory", script.Path, script.Name))}
	}
	return nil
}

func (v *Validator) repositoryMaterialized() bool {
	info, err := v.fs.Stat(v.resolver.RepoRoot())
	return err == nil && info.IsDir()
}

func declIssue(decl types.Declaration, kind types.IssueKind, msg string) types.ValidationIssue {
	return types.ValidationIssue{
		Kind:     kind,
		Severity: types.SeverityError,
		Section:  decl.Section,
		Subject:  decl.Target,
		Line:     decl.Line,
		Message:  msg,
	}
}

func scriptIssue(script config.Script, kind types.IssueKind, msg string) types.ValidationIssue {
	return types.ValidationIssue{
		Kind:     kind,
		Severity: types.SeverityError,
		Section:  script.Section,
		Subject:  script.Name,
		Line:     script.Line,
		Message:  msg,
	}
}

func duplicateMessage(decl, first types.Declaration, target string) string {
	where := "[" + first.Section + "]"
	if first.Line > 0 {
		where = fmt.Sprintf("line %d", first.Line)
	}
	return fmt.Sprintf("target %q resolves to %s, already declared at %s", decl.Target, target, where)
}

func message(err error) string {
	if derr, ok := err.(*errors.DotfError); ok {
		if derr.Wrapped != nil {
			return derr.Message + ": " + derr.Wrapped.Error()
		}
		return derr.Message
	}
	return err.Error()
}

// IssueFromError turns a configuration load failure with a position into a
// syntax issue. Other errors are not validation findings and are returned
// unchanged with ok false.
func IssueFromError(path string, err error) (types.ValidationIssue, bool) {
	code := errors.GetErrorCode(err)
	if code != errors.ErrConfigParse && code != errors.ErrConfigInvalid {
		return types.ValidationIssue{}, false
	}
	line, _ := errors.GetErrorDetails(err)["line"].(int)
	return types.ValidationIssue{
		Kind:     types.IssueSyntax,
		Severity: types.SeverityError,
		Section:  filepath.Base(path),
		Line:     line,
		Message:  message(err),
	}, true
}

// Count tallies issues by kind.
func Count(issues []types.ValidationIssue) map[types.IssueKind]int {
	counts := make(map[types.IssueKind]int)
	for _, issue := range issues {
		counts[issue.Kind]++
	}
	return counts
}

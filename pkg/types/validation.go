package types

import "fmt"

// IssueKind identifies which rule a validation issue violates.
type IssueKind string

const (
	IssueSyntax          IssueKind = "syntax"
	IssueMissingSection  IssueKind = "missing_section"
	IssueInvalidPath     IssueKind = "invalid_path"
	IssueDuplicateTarget IssueKind = "duplicate_target"
	IssueMissingSource   IssueKind = "missing_source"
	IssueMissingScript   IssueKind = "missing_script"
)

// IssueKinds lists every rule in the order the validator applies them.
var IssueKinds = []IssueKind{
	IssueSyntax,
	IssueMissingSection,
	IssueInvalidPath,
	IssueDuplicateTarget,
	IssueMissingSource,
	IssueMissingScript,
}

// Severity of a validation issue. Only errors exist today; an empty issue
// list means the configuration is clean.
type Severity string

const (
	SeverityError Severity = "error"
)

// ValidationIssue is one discrete finding of the configuration validator.
type ValidationIssue struct {
	Kind     IssueKind `json:"kind"`
	Severity Severity  `json:"severity"`

	// Section is the configuration section, e.g. "symlinks" or "scripts.custom"
	Section string `json:"section"`

	// Subject is the offending key: a target, a platform or a script name
	Subject string `json:"subject,omitempty"`

	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

// Location returns a human readable reference for the issue.
func (i ValidationIssue) Location() string {
	loc := "[" + i.Section + "]"
	if i.Subject != "" {
		loc += fmt.Sprintf(" %q", i.Subject)
	}
	if i.Line > 0 {
		loc += fmt.Sprintf(" (line %d)", i.Line)
	}
	return loc
}

func (i ValidationIssue) String() string {
	return i.Location() + ": " + i.Message
}

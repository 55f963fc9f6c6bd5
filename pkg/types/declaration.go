package types

import "fmt"

// Role tells the path resolver which side of a declaration a path is on.
type Role int

const (
	// RoleTarget is the filesystem location where the link is created.
	RoleTarget Role = iota
	// RoleSource is the location inside the managed repository.
	RoleSource
)

func (r Role) String() string {
	switch r {
	case RoleTarget:
		return "target"
	case RoleSource:
		return "source"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Declaration is one target -> source pair as written in the configuration.
// Declarations are immutable once parsed.
type Declaration struct {
	// Target is the raw target path, e.g. "~/.vimrc"
	Target string
	// Source is the raw source path, usually relative to the repository root
	Source string
	// Section is the configuration section the declaration came from,
	// e.g. "symlinks" or "platform.macos.symlinks"
	Section string
	// Line is the 1-based line in the configuration file, 0 when unknown
	Line int
}

// Location returns a human readable reference to the declaration.
func (d Declaration) Location() string {
	if d.Line > 0 {
		return fmt.Sprintf("[%s] %q (line %d)", d.Section, d.Target, d.Line)
	}
	return fmt.Sprintf("[%s] %q", d.Section, d.Target)
}

// ResolvedLink is a declaration whose paths have been normalized into
// absolute filesystem paths.
type ResolvedLink struct {
	Declaration Declaration
	Target      string
	Source      string
}

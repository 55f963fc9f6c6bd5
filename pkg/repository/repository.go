package repository

import (
	"context"
	"strings"
)

// DefaultBranch is used when the remote does not advertise its HEAD.
const DefaultBranch = "main"

// Status describes the local checkout.
type Status struct {
	Branch string `json:"branch"`
	Clean  bool   `json:"clean"`
	Ahead  int    `json:"ahead"`
	Behind int    `json:"behind"`

	// Modified lists repository-relative paths with local changes
	Modified []string `json:"modified,omitempty"`
}

// IsModified reports whether rel (repository-relative) has local changes.
// A modified directory entry covers everything below it.
func (s Status) IsModified(rel string) bool {
	for _, m := range s.Modified {
		if m == rel || (strings.HasSuffix(m, "/") && strings.HasPrefix(rel, m)) {
			return true
		}
	}
	return false
}

// Repository is the version-control collaborator.
type Repository interface {
	// ValidateRemote checks that url is a reachable repository.
	ValidateRemote(ctx context.Context, url string) error

	// DefaultBranch returns the branch the remote's HEAD points at.
	DefaultBranch(ctx context.Context, url string) (string, error)

	// Clone checks out branch of url into dest. An empty branch means the
	// remote's default branch.
	Clone(ctx context.Context, url, branch, dest string) error

	// Pull rebases the checkout at dir onto its upstream.
	Pull(ctx context.Context, dir string) error

	// Status inspects the checkout at dir.
	Status(ctx context.Context, dir string) (Status, error)

	// IsFileModified reports whether path (absolute or relative to dir) has
	// local changes.
	IsFileModified(ctx context.Context, dir, path string) (bool, error)

	// RemoteURL returns the origin URL of the checkout.
	RemoteURL(ctx context.Context, dir string) (string, error)
}

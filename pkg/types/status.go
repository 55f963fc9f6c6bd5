package types

// LinkStatus classifies one declaration against live filesystem state.
// Exactly one status applies at any instant and it is never cached.
type LinkStatus string

const (
	// StatusValid means the target is a symlink pointing at the source
	StatusValid LinkStatus = "valid"

	// StatusMissing means nothing exists at the target
	StatusMissing LinkStatus = "missing"

	// StatusConflict means the target exists and is not the expected link
	StatusConflict LinkStatus = "conflict"

	// StatusBroken means the target is a symlink whose destination is gone
	StatusBroken LinkStatus = "broken"
)

// LinkState is the detailed result of classifying one link.
type LinkState struct {
	Link   ResolvedLink
	Status LinkStatus

	// Destination is what the existing symlink points at, if the target is one
	Destination string

	// IsSymlink reports whether the target currently is a symlink
	IsSymlink bool

	// IsDir reports whether a non-link target is a directory
	IsDir bool

	// Modified is set by the status service when a valid link's source has
	// uncommitted changes in the repository
	Modified bool

	// Err records an inspection failure; the status is then Conflict
	Err error
}

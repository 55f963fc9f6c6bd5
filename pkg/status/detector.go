package status

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotf/pkg/logging"
	"github.com/arthur-debert/dotf/pkg/types"
	"github.com/rs/zerolog"
)

// Detector classifies resolved links into exactly one LinkStatus.
type Detector struct {
	fs types.FS
}

// NewDetector creates a detector reading through fs.
func NewDetector(fs types.FS) *Detector {
	return &Detector{fs: fs}
}

// Classify inspects the target of link:
//   - nothing at the target: Missing
//   - something that is not a symlink: Conflict
//   - a symlink whose destination does not exist: Broken
//   - a symlink to the declared source: Valid
//   - a symlink anywhere else: Conflict
//
// Inspection failures other than "does not exist" are reported as Conflict
// with Err set, so the caller never mutates a target it could not read.
func (d *Detector) Classify(link types.ResolvedLink) types.LinkState {
	log := logging.GetLogger("status")
	state := types.LinkState{Link: link}

	info, err := d.fs.Lstat(link.Target)
	if err != nil {
		if os.IsNotExist(err) {
			state.Status = types.StatusMissing
		} else {
			state.Status = types.StatusConflict
			state.Err = err
		}
		return d.logged(log, state)
	}

	if info.Mode()&os.ModeSymlink == 0 {
		state.Status = types.StatusConflict
		state.IsDir = info.IsDir()
		return d.logged(log, state)
	}

	state.IsSymlink = true
	dest, err := d.fs.Readlink(link.Target)
	if err != nil {
		state.Status = types.StatusConflict
		state.Err = err
		return d.logged(log, state)
	}
	state.Destination = dest

	// Stat follows the link; any failure means the destination is unusable
	if _, err := d.fs.Stat(link.Target); err != nil {
		state.Status = types.StatusBroken
		if !os.IsNotExist(err) {
			state.Err = err
		}
		return d.logged(log, state)
	}

	if d.pointsAt(link.Target, dest, link.Source) {
		state.Status = types.StatusValid
	} else {
		state.Status = types.StatusConflict
	}
	return d.logged(log, state)
}

// ClassifyAll classifies every link, preserving order.
func (d *Detector) ClassifyAll(links []types.ResolvedLink) []types.LinkState {
	states := make([]types.LinkState, 0, len(links))
	for _, link := range links {
		states = append(states, d.Classify(link))
	}
	return states
}

// pointsAt compares the link destination with the source, first by path and
// then by real path to absorb symlinked parents. Another name for the same
// inode, such as a hard link outside the checkout, does not count.
func (d *Detector) pointsAt(target, dest, source string) bool {
	if source == "" {
		return false
	}
	resolved := Destination(target, dest)
	if resolved == filepath.Clean(source) {
		return true
	}

	linked, err := filepath.EvalSymlinks(resolved)
	if err != nil {
		return false
	}
	expected, err := filepath.EvalSymlinks(source)
	if err != nil {
		return false
	}
	return linked == expected
}

func (d *Detector) logged(log zerolog.Logger, state types.LinkState) types.LinkState {
	event := log.Trace().
		Str("target", state.Link.Target).
		Str("source", state.Link.Source).
		Str("status", string(state.Status))
	if state.Destination != "" {
		event = event.Str("destination", state.Destination)
	}
	if state.Err != nil {
		event = event.Err(state.Err)
	}
	event.Msg("Classified link")
	return state
}

// Destination returns the absolute path a symlink at target with the given
// raw destination refers to. Relative destinations are relative to the
// directory holding the link.
func Destination(target, dest string) string {
	if filepath.IsAbs(dest) {
		return filepath.Clean(dest)
	}
	return filepath.Join(filepath.Dir(target), dest)
}

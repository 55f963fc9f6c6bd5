// Package watch re-runs an action whenever one of a set of files changes.
//
// It backs `dotf validate --watch`. Parent directories are watched rather
// than the files themselves so that editors which save by renaming a
// temporary file over the original keep being observed. Bursts of events
// are collapsed into one call after a short quiet period.
package watch

// Package links projects declarations onto the filesystem as symlinks.
//
// For every declaration the projector resolves the paths, classifies the
// target, and then leaves it alone (valid), creates the link (missing or
// broken) or asks the policy what to do with a conflict. One declaration's
// failure is recorded in its result and never stops the others; only a
// backup area that cannot be created ends the run early, because no conflict
// could be handled safely after that.
//
// Running the projector twice over an unchanged filesystem mutates nothing
// the second time.
package links

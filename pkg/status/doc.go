// Package status classifies declared links against the live filesystem.
//
// Every call re-reads the filesystem; nothing is cached, because another
// process or an earlier step of the same run may have changed the target.
// The detector never mutates anything.
package status

// Package types defines the core data model shared by dotf's engine:
// link declarations and their resolved form, live link status, projection
// outcomes, backup records and validation issues, together with the narrow
// policy interface the projector consults when a target is in conflict.
package types

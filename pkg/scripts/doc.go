// Package scripts runs the dependency and custom scripts a configuration
// declares. Scripts are made executable on demand and their output is both
// streamed to the caller and captured for reporting.
package scripts

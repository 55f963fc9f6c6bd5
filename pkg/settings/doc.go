// Package settings holds dotf's persisted, per-user settings: where the
// managed repository comes from, the default conflict policy and output
// preferences, plus bookkeeping such as the last sync time.
//
// Settings are layered with koanf: embedded defaults, then the settings file
// under dotf's directory, then DOTF_* environment variables, then explicit
// overrides (command line flags). Nested keys in environment variables are
// separated by a double underscore.
package settings

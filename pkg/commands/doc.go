// Package commands implements dotf's user-facing operations on top of the
// engine packages.
//
// Each operation takes an *Env holding the collaborators (filesystem,
// settings, repository, script executor) and an options struct, and returns
// a report from pkg/types for the ui renderers. Commands never print; the
// only interaction they perform is through the policy resolver, confirmer or
// settings editor they are given.
//
// Operations:
//   - Init, InitTemplate - clone a dotfiles repository or write a starter config
//   - Sync               - pull the repository and reinstall links
//   - Status             - repository state and per-link classification
//   - InstallConfig      - validate and project symlinks
//   - InstallDeps        - run the platform dependency script
//   - InstallCustom      - run a named custom script
//   - InstallAll         - dependencies, links, then optional custom scripts
//   - Uninstall          - remove links owned by the configuration
//   - Validate           - check a configuration without touching anything
//   - ShowConfig         - summarize the configuration of the checkout
//   - EditSettings       - change the repository URL and branch
//   - ListBackups, Restore, RestoreAll - inspect and undo backups
package commands

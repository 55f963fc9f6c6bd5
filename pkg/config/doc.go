// Package config reads the declarative dotf configuration that lives at the
// root of the managed repository (dotf.toml, or dotf.yaml / dotf.yml).
//
// The configuration maps link targets to repository sources:
//
//	[symlinks]
//	"~/.vimrc" = "vim/.vimrc"
//
//	[platform.macos.symlinks]
//	"~/Library/Application Support/Code/User/settings.json" = "vscode/settings.json"
//
//	[scripts.deps]
//	macos = "scripts/macos.sh"
//	linux = "scripts/linux.sh"
//
//	[scripts.custom]
//	fonts = "scripts/fonts.sh"
//
// Parsing keeps declarations in file order with their line numbers, and keeps
// repeated keys instead of rejecting the document: a target declared twice is
// reported by the validator as a duplicate, which is more useful than a parse
// failure. Nothing here touches the filesystem beyond reading the file.
package config

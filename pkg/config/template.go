package config

import (
	"bytes"
	"fmt"

	"github.com/arthur-debert/dotf/pkg/errors"
	"gopkg.in/yaml.v3"
)

const tomlTemplate = `# dotf configuration
# Keys are link targets (where the link is created), values are sources
# relative to the root of this repository.

[repo]
name = %q
description = "My dotfiles"

[symlinks]
# "~/.vimrc" = "vim/.vimrc"
# "~/.zshrc" = "zsh/.zshrc"
# "~/.config/nvim" = "nvim"

# Links that only apply on one platform are added after the base set.
# [platform.macos.symlinks]
# "~/Library/Application Support/Code/User/settings.json" = "vscode/settings.json"
#
# [platform.linux.symlinks]
# "~/.config/Code/User/settings.json" = "vscode/settings.json"

[scripts.deps]
# macos = "scripts/deps-macos.sh"
# linux = "scripts/deps-linux.sh"

[scripts.custom]
# fonts = "scripts/fonts.sh"
`

// Template renders a starter configuration for a new repository.
func Template(name string, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		return []byte(fmt.Sprintf(tomlTemplate, name)), nil
	case FormatYAML:
		return yamlTemplate(name)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unsupported configuration format %q", format)
	}
}

func yamlTemplate(name string) ([]byte, error) {
	str := func(v string) *yaml.Node { return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v} }
	mapping := func(comment string, pairs ...*yaml.Node) *yaml.Node {
		return &yaml.Node{Kind: yaml.MappingNode, HeadComment: comment, Content: pairs}
	}

	doc := mapping("dotf configuration\nKeys are link targets, values are sources relative to this repository.\n\nsymlinks:\n  \"~/.vimrc\": vim/.vimrc",
		str("repo"), mapping("", str("name"), str(name), str("description"), str("My dotfiles")),
		str("symlinks"), mapping(""),
		str("scripts"), mapping("", str("deps"), mapping(""), str("custom"), mapping("")),
	)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{doc}}); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render YAML template")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render YAML template")
	}
	return buf.Bytes(), nil
}

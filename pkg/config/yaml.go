package config

import (
	"fmt"

	"github.com/arthur-debert/dotf/pkg/errors"
	"gopkg.in/yaml.v3"
)

// parseYAML decodes into a yaml.Node tree, which like the TOML walker keeps
// order, line numbers and repeated keys.
func parseYAML(data []byte) (*Config, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		line := 0
		_, _ = fmt.Sscanf(err.Error(), "yaml: line %d:", &line)
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid YAML at line %d", line).
			WithDetail("line", line)
	}

	b := newBuilder(FormatYAML)
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return b.cfg, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.Newf(errors.ErrConfigInvalid, "top level of the configuration must be a mapping (line %d)", root.Line).
			WithDetail("line", root.Line)
	}
	if err := walkMapping(b, nil, root); err != nil {
		return nil, err
	}
	return b.cfg, nil
}

func walkMapping(b *builder, prefix []string, mapping *yaml.Node) error {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, value := mapping.Content[i], mapping.Content[i+1]
		if value.Kind == yaml.AliasNode && value.Alias != nil {
			value = value.Alias
		}

		path := make([]string, 0, len(prefix)+1)
		path = append(path, prefix...)
		path = append(path, key.Value)

		switch {
		case value.Kind == yaml.MappingNode:
			if err := b.table(path, key.Line); err != nil {
				return err
			}
			if err := walkMapping(b, path, value); err != nil {
				return err
			}
		case value.Kind == yaml.ScalarNode && value.Tag == "!!null" && len(path) == 1:
			// "symlinks:" with nothing under it is an empty section
			if err := b.table(path, key.Line); err != nil {
				return err
			}
		case value.Kind == yaml.ScalarNode && value.Tag != "!!null":
			// unquoted numbers and booleans carry other tags and are not paths
			if err := b.assign(path, value.Value, value.Tag == "!!str", key.Line); err != nil {
				return err
			}
		default:
			if err := b.assign(path, "", false, key.Line); err != nil {
				return err
			}
		}
	}
	return nil
}

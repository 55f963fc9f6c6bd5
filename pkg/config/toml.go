package config

import (
	stderrors "errors"

	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
)

// parseTOML walks the document expression by expression. The unstable parser
// is used instead of toml.Unmarshal because it keeps order, positions and
// repeated keys.
func parseTOML(data []byte) (*Config, error) {
	p := &unstable.Parser{}
	p.Reset(data)
	b := newBuilder(FormatTOML)

	var current []string
	for p.NextExpression() {
		expr := p.Expression()
		switch expr.Kind {
		case unstable.Table, unstable.ArrayTable:
			path, line := keyPath(p, expr.Key())
			current = path
			if expr.Kind == unstable.Table {
				if err := b.table(path, line); err != nil {
					return nil, err
				}
			}
		case unstable.KeyValue:
			if err := keyValue(p, b, current, expr); err != nil {
				return nil, err
			}
		}
	}

	if err := p.Error(); err != nil {
		return nil, tomlSyntaxError(p, data, err)
	}
	return b.cfg, nil
}

func keyValue(p *unstable.Parser, b *builder, prefix []string, kv *unstable.Node) error {
	key, line := keyPath(p, kv.Key())
	path := make([]string, 0, len(prefix)+len(key))
	path = append(path, prefix...)
	path = append(path, key...)

	value := kv.Value()
	switch value.Kind {
	case unstable.String:
		return b.assign(path, string(value.Data), true, line)
	case unstable.InlineTable:
		if err := b.table(path, line); err != nil {
			return err
		}
		children := value.Children()
		for children.Next() {
			if err := keyValue(p, b, path, children.Node()); err != nil {
				return err
			}
		}
		return nil
	default:
		return b.assign(path, "", false, line)
	}
}

// keyPath flattens a (possibly dotted) key and returns the line it starts on.
func keyPath(p *unstable.Parser, it unstable.Iterator) ([]string, int) {
	var parts []string
	line := 0
	for it.Next() {
		node := it.Node()
		if line == 0 {
			line = p.Shape(node.Raw).Start.Line
		}
		parts = append(parts, string(node.Data))
	}
	return parts, line
}

func tomlSyntaxError(p *unstable.Parser, data []byte, err error) error {
	line, col := 0, 0

	var perr *unstable.ParserError
	if stderrors.As(err, &perr) && len(perr.Highlight) > 0 {
		shape := p.Shape(p.Range(perr.Highlight))
		line, col = shape.Start.Line, shape.Start.Column
	} else {
		// the decoder reports the same syntax error with a position
		var derr *toml.DecodeError
		var scratch map[string]interface{}
		if stderrors.As(toml.Unmarshal(data, &scratch), &derr) {
			line, col = derr.Position()
		}
	}

	return errors.Wrapf(err, errors.ErrConfigParse, "invalid TOML at line %d, column %d", line, col).
		WithDetail("line", line).
		WithDetail("column", col)
}

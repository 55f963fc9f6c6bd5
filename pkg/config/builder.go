package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/types"
)

// builder assembles a Config from flattened key paths. Both syntaxes feed it
// the same events: a table was opened, or a key was assigned a value.
type builder struct {
	cfg *Config
}

func newBuilder(format Format) *builder {
	return &builder{cfg: &Config{Format: format}}
}

// table records that the table at path exists, even if it stays empty.
func (b *builder) table(path []string, line int) error {
	switch {
	case len(path) >= 1 && path[0] == SectionSymlinks:
		b.cfg.HasSymlinks = true
	case len(path) >= 2 && path[0] == "platform":
		if err := checkPlatform(path[1], line); err != nil {
			return err
		}
		b.overlay(path[1], line)
	}
	return nil
}

// assign handles one key = value. isString is false for values that are not
// plain strings (numbers, arrays, nulls).
func (b *builder) assign(path []string, value string, isString bool, line int) error {
	switch {
	case len(path) == 1 && (path[0] == SectionSymlinks || path[0] == "scripts" || path[0] == "platform"):
		return notATable(strings.Join(path, "."), line)

	case len(path) == 2 && path[0] == SectionSymlinks:
		if !isString {
			return notAString(path, line)
		}
		b.cfg.HasSymlinks = true
		b.cfg.Symlinks = append(b.cfg.Symlinks, types.Declaration{
			Target:  path[1],
			Source:  value,
			Section: SectionSymlinks,
			Line:    line,
		})

	case len(path) >= 2 && path[0] == "platform":
		if err := checkPlatform(path[1], line); err != nil {
			return err
		}
		switch {
		case len(path) == 2, len(path) == 3 && path[2] == SectionSymlinks:
			return notATable(strings.Join(path, "."), line)
		case len(path) == 4 && path[2] == SectionSymlinks:
			if !isString {
				return notAString(path, line)
			}
			o := b.overlay(path[1], line)
			o.Symlinks = append(o.Symlinks, types.Declaration{
				Target:  path[3],
				Source:  value,
				Section: OverlaySection(path[1]),
				Line:    line,
			})
		}

	case len(path) == 2 && path[0] == "scripts" && (path[1] == "deps" || path[1] == "custom"):
		return notATable(strings.Join(path, "."), line)

	case len(path) == 3 && path[0] == "scripts" && (path[1] == "deps" || path[1] == "custom"):
		if !isString {
			return notAString(path, line)
		}
		script := Script{Name: path[2], Path: value, Line: line}
		if path[1] == "deps" {
			script.Section = SectionDeps
			b.cfg.Deps = append(b.cfg.Deps, script)
		} else {
			script.Section = SectionCustom
			b.cfg.Custom = append(b.cfg.Custom, script)
		}

	case len(path) == 2 && path[0] == SectionRepo:
		if !isString {
			return notAString(path, line)
		}
		switch path[1] {
		case "name":
			b.cfg.Repo.Name = value
		case "version":
			b.cfg.Repo.Version = value
		case "description":
			b.cfg.Repo.Description = value
		case "author":
			b.cfg.Repo.Author = value
		}
	}

	// anything else is ignored so newer files still load
	return nil
}

func (b *builder) overlay(platform string, line int) *Overlay {
	for i := range b.cfg.Overlays {
		if b.cfg.Overlays[i].Platform == platform {
			return &b.cfg.Overlays[i]
		}
	}
	b.cfg.Overlays = append(b.cfg.Overlays, Overlay{Platform: platform, Line: line})
	return &b.cfg.Overlays[len(b.cfg.Overlays)-1]
}

func checkPlatform(name string, line int) error {
	if strings.TrimSpace(name) == "" {
		return errors.New(errors.ErrConfigInvalid, "platform name cannot be empty").
			WithDetail("line", line)
	}
	return nil
}

func notATable(key string, line int) error {
	return errors.Newf(errors.ErrConfigInvalid, "%s must be a table (line %d)", key, line).
		WithDetail("key", key).
		WithDetail("line", line)
}

func notAString(path []string, line int) error {
	key := strings.Join(path, ".")
	return errors.Newf(errors.ErrConfigInvalid, "%s must be a string (line %d)", key, line).
		WithDetail("key", key).
		WithDetail("line", line)
}

func isNotExist(err error) bool {
	return os.IsNotExist(err)
}

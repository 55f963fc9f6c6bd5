package config

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/logging"
	"github.com/arthur-debert/dotf/pkg/paths"
	"github.com/arthur-debert/dotf/pkg/types"
)

// Format is the syntax of a configuration file.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Section names as they appear in issues and declarations.
const (
	SectionSymlinks = "symlinks"
	SectionDeps     = "scripts.deps"
	SectionCustom   = "scripts.custom"
	SectionRepo     = "repo"
)

// OverlaySection returns the section name of a platform overlay.
func OverlaySection(platform string) string {
	return "platform." + platform + ".symlinks"
}

// RepoInfo is the optional [repo] metadata block.
type RepoInfo struct {
	Name        string `json:"name,omitempty"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
	Author      string `json:"author,omitempty"`
}

// Script is a script reference from [scripts.deps] or [scripts.custom].
type Script struct {
	// Name is the platform for dependency scripts, the script name otherwise
	Name    string
	Path    string
	Section string
	Line    int
}

// Overlay holds the extra declarations of one platform.
type Overlay struct {
	Platform string
	Line     int
	Symlinks []types.Declaration
}

// Config is a parsed configuration. Slices keep file order.
type Config struct {
	Path   string
	Format Format

	Repo RepoInfo

	// HasSymlinks reports whether the [symlinks] section is present at all
	HasSymlinks bool
	Symlinks    []types.Declaration

	Overlays []Overlay
	Deps     []Script
	Custom   []Script
}

// Declarations returns the base declarations followed by the overlay for
// platform, if any.
func (c *Config) Declarations(platform string) []types.Declaration {
	decls := make([]types.Declaration, 0, len(c.Symlinks))
	decls = append(decls, c.Symlinks...)
	if overlay, ok := c.Overlay(platform); ok {
		decls = append(decls, overlay.Symlinks...)
	}
	return decls
}

// Overlay returns the overlay for platform.
func (c *Config) Overlay(platform string) (Overlay, bool) {
	for _, o := range c.Overlays {
		if o.Platform == platform {
			return o, true
		}
	}
	return Overlay{}, false
}

// Platforms lists the platforms that have an overlay, in file order.
func (c *Config) Platforms() []string {
	names := make([]string, 0, len(c.Overlays))
	for _, o := range c.Overlays {
		names = append(names, o.Platform)
	}
	return names
}

// DepsScript returns the dependency script for platform.
func (c *Config) DepsScript(platform string) (Script, bool) {
	return findScript(c.Deps, platform)
}

// CustomScript returns the custom script called name.
func (c *Config) CustomScript(name string) (Script, bool) {
	return findScript(c.Custom, name)
}

func findScript(scripts []Script, name string) (Script, bool) {
	for _, s := range scripts {
		if s.Name == name {
			return s, true
		}
	}
	return Script{}, false
}

// Parse parses configuration data of the given format.
func Parse(data []byte, format Format) (*Config, error) {
	switch format {
	case FormatTOML:
		return parseTOML(data)
	case FormatYAML:
		return parseYAML(data)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unsupported configuration format %q", format)
	}
}

// FormatOf infers the format from a file name.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "cannot infer configuration format of %s", path).
			WithDetail("path", path)
	}
}

// Load reads and parses the configuration file at path.
func Load(fsys types.FS, path string) (*Config, error) {
	log := logging.GetLogger("config")

	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		if isNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrNotFound, "configuration file not found: %s", path).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read %s", path).
			WithDetail("path", path)
	}

	cfg, err := Parse(data, format)
	if err != nil {
		if derr, ok := err.(*errors.DotfError); ok {
			derr.WithDetail("path", path)
		}
		return nil, err
	}
	cfg.Path = path

	log.Debug().
		Str("path", path).
		Str("format", string(format)).
		Int("symlinks", len(cfg.Symlinks)).
		Int("overlays", len(cfg.Overlays)).
		Msg("Loaded configuration")

	return cfg, nil
}

// Find returns the first configuration file present in dir, trying
// dotf.toml, dotf.yaml and dotf.yml in that order.
func Find(fsys types.FS, dir string) (string, error) {
	for _, name := range paths.ConfigFileNames {
		candidate := filepath.Join(dir, name)
		if _, err := fsys.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", errors.Newf(errors.ErrNotFound, "no %s found in %s", strings.Join(paths.ConfigFileNames, ", "), dir).
		WithDetail("dir", dir)
}

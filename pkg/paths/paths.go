package paths

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotf/pkg/errors"
)

// Environment variable names
const (
	// EnvDotfHome overrides the location of dotf's own directory
	EnvDotfHome = "DOTF_HOME"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Fixed names inside dotf's directory. These are not user-configurable.
const (
	// DirName is the directory under $HOME holding all dotf state
	DirName = ".dotf"

	// RepoDirName is the subdirectory holding the cloned repository
	RepoDirName = "repo"

	// SettingsFileName is the persisted settings file
	SettingsFileName = "settings.toml"

	// BackupsDirName is the root of the backup area
	BackupsDirName = "backups"

	// ConfigFileName is the declarative configuration at the repository root
	ConfigFileName = "dotf.toml"
)

// ConfigFileNames lists the accepted configuration file names in lookup order.
var ConfigFileNames = []string{ConfigFileName, "dotf.yaml", "dotf.yml"}

// Layout locates dotf's files for one home directory.
type Layout struct {
	home string
	root string
}

// NewLayout creates a layout for home. The root is $DOTF_HOME when set,
// otherwise home/.dotf.
func NewLayout(home string) (*Layout, error) {
	if home == "" {
		return nil, errors.New(errors.ErrInvalidInput, "home directory cannot be empty")
	}
	absHome, err := filepath.Abs(home)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for home %s", home)
	}

	root := filepath.Join(absHome, DirName)
	if override := os.Getenv(EnvDotfHome); override != "" {
		root, err = filepath.Abs(expandHome(override, absHome))
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", EnvDotfHome)
		}
	}

	return &Layout{home: absHome, root: root}, nil
}

// DefaultLayout creates a layout for the current user's home directory.
func DefaultLayout() (*Layout, error) {
	home, err := HomeDir()
	if err != nil {
		return nil, err
	}
	return NewLayout(home)
}

// HomeDir returns $HOME, falling back to the OS user database.
func HomeDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileAccess, "cannot determine home directory")
	}
	return home, nil
}

// Home returns the home directory the layout was created for.
func (l *Layout) Home() string { return l.home }

// Root returns dotf's directory.
func (l *Layout) Root() string { return l.root }

// RepoDir returns where the managed repository is cloned.
func (l *Layout) RepoDir() string { return filepath.Join(l.root, RepoDirName) }

// SettingsPath returns the settings file path.
func (l *Layout) SettingsPath() string { return filepath.Join(l.root, SettingsFileName) }

// BackupsDir returns the root of the backup area.
func (l *Layout) BackupsDir() string { return filepath.Join(l.root, BackupsDirName) }

// ConfigCandidates returns the possible configuration paths in lookup order.
func (l *Layout) ConfigCandidates() []string {
	candidates := make([]string, 0, len(ConfigFileNames))
	for _, name := range ConfigFileNames {
		candidates = append(candidates, filepath.Join(l.RepoDir(), name))
	}
	return candidates
}

// Resolver returns a resolver for this layout's home and repository.
func (l *Layout) Resolver() *Resolver {
	return NewResolver(l.home, l.RepoDir())
}

func expandHome(path, home string) string {
	if path == HomeMarker {
		return home
	}
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}

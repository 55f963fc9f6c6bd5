package settings

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	doterrors "github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/filesystem"
	"github.com/arthur-debert/dotf/pkg/types"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix of environment variables read as settings.
const EnvPrefix = "DOTF_"

// Conflict policy modes.
const (
	PolicyPrompt = "prompt"
	PolicyBackup = "backup"
	PolicyAbort  = "abort"
)

// Output formats.
const (
	FormatAuto     = "auto"
	FormatTerminal = "term"
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatJUnit    = "junit"
)

//go:embed embedded/defaults.toml
var defaultSettings []byte

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Settings is the persisted user settings document.
type Settings struct {
	Repository Repository `koanf:"repository" toml:"repository"`
	Install    Install    `koanf:"install" toml:"install"`
	Output     Output     `koanf:"output" toml:"output"`

	// Platform overrides host detection when set ("macos", "linux")
	Platform string `koanf:"platform" toml:"platform"`

	// LastSync and InitializedAt are RFC 3339 timestamps, empty when unset
	LastSync      string `koanf:"last_sync" toml:"last_sync"`
	InitializedAt string `koanf:"initialized_at" toml:"initialized_at"`
}

// Repository describes where the managed repository comes from.
type Repository struct {
	Remote  string   `koanf:"remote" toml:"remote"`
	Branch  string   `koanf:"branch" toml:"branch"`
	Local   string   `koanf:"local" toml:"local"`
	Timeout Duration `koanf:"timeout" toml:"timeout"`
}

// Duration is a time.Duration stored as text ("2m") in settings files.
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Install holds defaults for install config.
type Install struct {
	ConflictPolicy string `koanf:"conflict_policy" toml:"conflict_policy"`
}

// Output holds report preferences.
type Output struct {
	Format string `koanf:"format" toml:"format"`
}

// Load builds settings from the embedded defaults, the file at path (if it
// exists), DOTF_* environment variables and overrides, in that order.
func Load(path string, overrides map[string]interface{}) (*Settings, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultSettings}, toml.Parser()); err != nil {
		return nil, doterrors.Wrap(err, doterrors.ErrInternal, "failed to load default settings")
	}

	// 2. Settings file
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, doterrors.Wrapf(err, doterrors.ErrConfigLoad, "failed to load settings from %s", path)
			}
		} else if !os.IsNotExist(err) {
			return nil, doterrors.Wrapf(err, doterrors.ErrFileAccess, "cannot access settings file %s", path)
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, doterrors.Wrap(err, doterrors.ErrConfigLoad, "failed to load environment settings")
	}

	// 4. Explicit overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, doterrors.Wrap(err, doterrors.ErrConfigLoad, "failed to apply setting overrides")
		}
	}

	var s Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.TextUnmarshallerHookFunc(),
				timeToStringHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, doterrors.Wrap(err, doterrors.ErrConfigInvalid, "failed to unmarshal settings")
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// envKey maps DOTF_INSTALL__CONFLICT_POLICY to install.conflict_policy.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// timeToStringHookFunc renders TOML datetimes, which the parser hands over as
// time.Time, as RFC 3339 strings.
func timeToStringHookFunc() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if t, ok := data.(time.Time); ok && to.Kind() == reflect.String {
			return t.UTC().Format(time.RFC3339), nil
		}
		return data, nil
	}
}

// Validate checks enumerated values.
func (s *Settings) Validate() error {
	switch s.Install.ConflictPolicy {
	case PolicyPrompt, PolicyBackup, PolicyAbort:
	default:
		return doterrors.Newf(doterrors.ErrConfigInvalid,
			"install.conflict_policy must be prompt, backup or abort, got %q", s.Install.ConflictPolicy)
	}
	switch s.Output.Format {
	case FormatAuto, FormatTerminal, FormatText, FormatJSON, FormatMarkdown, FormatJUnit:
	default:
		return doterrors.Newf(doterrors.ErrConfigInvalid,
			"output.format must be one of auto, term, text, json, markdown, junit; got %q", s.Output.Format)
	}
	if s.Repository.Timeout < 0 {
		return doterrors.New(doterrors.ErrConfigInvalid, "repository.timeout cannot be negative")
	}
	return nil
}

// Initialized reports whether init has been run.
func (s *Settings) Initialized() bool {
	return s.InitializedAt != ""
}

// MarkInitialized records the init time.
func (s *Settings) MarkInitialized(now time.Time) {
	s.InitializedAt = now.UTC().Format(time.RFC3339)
}

// MarkSynced records the sync time.
func (s *Settings) MarkSynced(now time.Time) {
	s.LastSync = now.UTC().Format(time.RFC3339)
}

// LastSyncTime parses LastSync; ok is false when it is unset or malformed.
func (s *Settings) LastSyncTime() (t time.Time, ok bool) {
	if s.LastSync == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s.LastSync)
	return t, err == nil
}

// ConflictPolicy returns the fixed policy configured for installs; ok is
// false when conflicts should be resolved interactively.
func (s *Settings) ConflictPolicy() (p types.Policy, ok bool) {
	switch s.Install.ConflictPolicy {
	case PolicyBackup:
		return types.PolicyBackup, true
	case PolicyAbort:
		return types.PolicyAbort, true
	default:
		return "", false
	}
}

// Save writes the settings document to path atomically.
func (s *Settings) Save(fsys types.FS, path string) error {
	data, err := gotoml.Marshal(s)
	if err != nil {
		return doterrors.Wrap(err, doterrors.ErrInternal, "failed to encode settings")
	}
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return doterrors.Wrapf(err, doterrors.ErrDirCreate, "failed to create %s", filepath.Dir(path))
	}
	if err := filesystem.WriteFileAtomic(fsys, path, data, 0644); err != nil {
		return doterrors.Wrapf(err, doterrors.ErrFileWrite, "failed to write settings to %s", path)
	}
	return nil
}

func (s Settings) String() string {
	return fmt.Sprintf("remote=%s branch=%s policy=%s format=%s",
		s.Repository.Remote, s.Repository.Branch, s.Install.ConflictPolicy, s.Output.Format)
}

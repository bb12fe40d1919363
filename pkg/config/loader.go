package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/matrix/pkg/errors"
	"github.com/arthur-debert/matrix/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read into the config.
const EnvPrefix = "MATRIX_"

// Clone directory layouts.
const (
	LayoutHashed = "hashed"
	LayoutNamed  = "named"
)

// Config is the fully resolved matrix configuration.
type Config struct {
	Root     string         `koanf:"root"`
	Clone    CloneConfig    `koanf:"clone"`
	Manifest ManifestConfig `koanf:"manifest"`
	Store    StoreConfig    `koanf:"store"`
	Log      LogConfig      `koanf:"log"`
}

// CloneConfig controls the repository cloner.
type CloneConfig struct {
	Tool         string        `koanf:"tool"`
	Timeout      time.Duration `koanf:"timeout"`
	ProbeTimeout time.Duration `koanf:"probe_timeout"`
	Layout       string        `koanf:"layout"`
}

// ManifestConfig controls the generated workspace manifest.
type ManifestConfig struct {
	Filename string `koanf:"filename"`
}

// StoreConfig locates the record store.
type StoreConfig struct {
	File string `koanf:"file"`
}

// LogConfig locates the log file.
type LogConfig struct {
	File string `koanf:"file"`
}

// Options tunes Load. Overrides is applied last and uses dotted keys
// ("clone.timeout"); the CLI feeds its flags through it.
type Options struct {
	ConfigFile string
	Overrides  map[string]interface{}
}

// DefaultConfigFile returns $XDG_CONFIG_HOME/matrix/config.toml.
func DefaultConfigFile() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = xdg.ConfigHome
	}
	return filepath.Join(base, paths.AppDirName, "config.toml")
}

// Load resolves configuration from, in increasing precedence: embedded
// defaults, the config file, MATRIX_* environment variables, and
// opts.Overrides.
func Load(opts Options) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Config file. An explicit file must exist; the default one is optional.
	configFile := opts.ConfigFile
	if configFile == "" {
		configFile = DefaultConfigFile()
		if _, err := os.Stat(configFile); err != nil {
			configFile = ""
		}
	}
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", configFile)
		}
	}

	// 3. Env vars
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Explicit overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps MATRIX_CLONE_PROBE_TIMEOUT to clone.probe_timeout: the first
// underscore separates the section, the rest belong to the key.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// Validate checks values that would otherwise fail deep inside a component.
func (c *Config) Validate() error {
	switch c.Clone.Layout {
	case LayoutHashed, LayoutNamed:
	default:
		return errors.Newf(errors.ErrConfigLoad, "unknown clone layout %q (want %q or %q)",
			c.Clone.Layout, LayoutHashed, LayoutNamed)
	}
	if c.Clone.Tool == "" {
		return errors.New(errors.ErrConfigLoad, "clone.tool must not be empty")
	}
	if c.Clone.Timeout <= 0 || c.Clone.ProbeTimeout <= 0 {
		return errors.New(errors.ErrConfigLoad, "clone timeouts must be positive")
	}
	name := c.Manifest.Filename
	if name == "" || strings.ContainsAny(name, `/\`) {
		return errors.Newf(errors.ErrConfigLoad, "invalid manifest filename %q", name)
	}
	return nil
}

// Paths builds the path layout for the configured root.
func (c *Config) Paths() (paths.Paths, error) {
	return paths.New(c.Root)
}

// StoreFile returns the configured store file or the default under root.
func (c *Config) StoreFile(p paths.Paths) string {
	if c.Store.File != "" {
		return c.Store.File
	}
	return p.StoreFile()
}

// String renders the effective configuration for `matrix config show`.
func (c *Config) String() string {
	return fmt.Sprintf("root=%q clone.tool=%q clone.timeout=%s clone.probe_timeout=%s clone.layout=%q manifest.filename=%q store.file=%q log.file=%q",
		c.Root, c.Clone.Tool, c.Clone.Timeout, c.Clone.ProbeTimeout, c.Clone.Layout,
		c.Manifest.Filename, c.Store.File, c.Log.File)
}

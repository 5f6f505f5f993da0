package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/hdrstrip/pkg/errors"
	"github.com/arthur-debert/hdrstrip/pkg/logging"
	"github.com/arthur-debert/hdrstrip/pkg/stripper"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// ProjectFile is looked up in the working directory when no path is given
	ProjectFile = ".hdrstrip.toml"
	// EnvPrefix marks environment variables that override configuration
	EnvPrefix = "HDRSTRIP_"
)

// Config is the effective hdrstrip configuration
type Config struct {
	Target TargetConfig `koanf:"target" toml:"target"`
}

// TargetConfig selects the header entry to strip
type TargetConfig struct {
	Header      string `koanf:"header" toml:"header"`
	Object      string `koanf:"object" toml:"object"`
	Field       string `koanf:"field" toml:"field"`
	Indent      int    `koanf:"indent" toml:"indent"`
	ContentType string `koanf:"content_type" toml:"content_type"`
}

// Options tells Load where to look
type Options struct {
	// Path is an explicit config file; it must exist when set
	Path string
	// WorkDir is searched for ProjectFile when Path is empty
	WorkDir string
}

// Load builds the configuration from defaults, the project file and the
// environment.
func Load(opts Options) (*Config, error) {
	log := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	path, err := resolvePath(opts)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		log.Debug().Str("path", path).Msg("Loaded config file")
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("header", cfg.Target.Header).
		Str("object", cfg.Target.Object).
		Str("field", cfg.Target.Field).
		Msg("Configuration loaded")
	return &cfg, nil
}

// Default returns the configuration with nothing but the embedded defaults
func Default() *Config {
	t := stripper.DefaultTarget()
	return &Config{Target: TargetConfig{
		Header:      t.Header,
		Object:      t.Object,
		Field:       t.Field,
		Indent:      t.Indent,
		ContentType: t.ContentType,
	}}
}

// StripperTarget converts the target section for the stripper package
func (c *Config) StripperTarget() stripper.Target {
	return stripper.Target{
		Header:      c.Target.Header,
		Object:      c.Target.Object,
		Field:       c.Target.Field,
		Indent:      c.Target.Indent,
		ContentType: c.Target.ContentType,
	}
}

// Validate reports whether the configuration can compile into rules
func (c *Config) Validate() error {
	if err := c.StripperTarget().Validate(); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid [target] section")
	}
	return nil
}

func resolvePath(opts Options) (string, error) {
	if opts.Path != "" {
		if _, err := os.Stat(opts.Path); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", opts.Path).
				WithDetail("path", opts.Path)
		}
		return opts.Path, nil
	}

	dir := opts.WorkDir
	if dir == "" {
		dir = "."
	}
	candidate := filepath.Join(dir, ProjectFile)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", nil
}

// envKey maps HDRSTRIP_TARGET_CONTENT_TYPE to target.content_type
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// LanguageVersion is the SodaScript language version this front end accepts.
const LanguageVersion = "0.1.0"

var ErrUnsupportedFormat = errors.New("unsupported config format")

// Filenames are tried in order when no explicit config path is given.
var Filenames = []string{"soda.yaml", "soda.yml", "soda.toml"}

type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "unknown"
	}
}

type Config struct {
	// Language is a semver constraint on LanguageVersion, e.g. "^0.1".
	Language   string   `yaml:"language" toml:"language"`
	SourceDir  string   `yaml:"source_dir" toml:"source_dir"`
	Extensions []string `yaml:"extensions" toml:"extensions"`
	LogLevel   string   `yaml:"log_level" toml:"log_level"`
	Color      *bool    `yaml:"color" toml:"color"`

	// Path is the file the config was read from, empty for defaults.
	Path string `yaml:"-" toml:"-"`
}

func Default() *Config {
	color := true
	return &Config{
		SourceDir:  ".",
		Extensions: []string{".soda"},
		LogLevel:   "warn",
		Color:      &color,
	}
}

func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}

	return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Load reads the config at path, filling unset fields from Default.
func Load(path string) (*Config, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg, err := Parse(content, format)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.Path = path

	return cfg, nil
}

func Parse(content []byte, format Format) (*Config, error) {
	var cfg Config

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("yaml: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	cfg.mergeDefaults(Default())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Discover loads the first of Filenames found in dir, or returns Default
// when there is none.
func Discover(dir string) (*Config, error) {
	for _, name := range Filenames {
		path := filepath.Join(dir, name)

		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}

		return Load(path)
	}

	return Default(), nil
}

func (c *Config) mergeDefaults(defaults *Config) {
	if c.SourceDir == "" {
		c.SourceDir = defaults.SourceDir
	}
	if len(c.Extensions) == 0 {
		c.Extensions = defaults.Extensions
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.Color == nil {
		c.Color = defaults.Color
	}
}

func (c *Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}

	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with '.'", ext)
		}
	}

	if c.Language != "" {
		if _, err := semver.NewConstraint(c.Language); err != nil {
			return fmt.Errorf("invalid language constraint %q: %w", c.Language, err)
		}
	}

	return nil
}

// CheckLanguage fails when the configured constraint excludes LanguageVersion.
func (c *Config) CheckLanguage() error {
	if c.Language == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(c.Language)
	if err != nil {
		return fmt.Errorf("invalid language constraint %q: %w", c.Language, err)
	}

	version := semver.MustParse(LanguageVersion)
	if ok, errs := constraint.Validate(version); !ok {
		return fmt.Errorf("language version %s does not satisfy %q: %w", version, c.Language, errors.Join(errs...))
	}

	return nil
}

func (c *Config) ColorEnabled() bool {
	return c.Color == nil || *c.Color
}

// IsSource reports whether path has one of the configured source extensions.
func (c *Config) IsSource(path string) bool {
	return slices.Contains(c.Extensions, filepath.Ext(path))
}

func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	return l, nil
}

// Package config loads autogen settings.
//
// Settings come from three layers, later ones winning:
//
//  1. built-in defaults ([Default]);
//  2. the user config file ($XDG_CONFIG_HOME/autogen/config.toml) and
//     AUTOGEN_* environment variables, read with viper;
//  3. the [tool.autogen] table of the project's pyproject.toml.
package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"github.com/matzehuels/autogen/pkg/errors"
)

const (
	// AppName is the application name used for directories and env prefixes.
	AppName = "autogen"

	// FileName is the user config file name (without extension).
	FileName = "config"

	// PyprojectFile holds per-project overrides under [tool.autogen].
	PyprojectFile = "pyproject.toml"
)

// Config holds every tunable of the tool.
type Config struct {
	Remote      string        `mapstructure:"remote"`       // remote pushed to with tags
	Branch      string        `mapstructure:"branch"`       // branch pushed with tags
	Repository  string        `mapstructure:"repository"`   // twine --repository name, empty for the default index
	Formatter   string        `mapstructure:"formatter"`    // command setup.py is piped through; empty disables
	Pipreqs     string        `mapstructure:"pipreqs"`      // dependency scanner executable
	Python      string        `mapstructure:"python"`       // interpreter used to build distributions
	Twine       string        `mapstructure:"twine"`        // upload tool
	WindowsOnly []string      `mapstructure:"windows_only"` // packages qualified with platform_system=='Windows'
	Exclude     []string      `mapstructure:"exclude"`      // requirements never emitted
	CheckIndex  bool          `mapstructure:"check_index"`  // refuse to release a version already on the index
	IndexURL    string        `mapstructure:"index_url"`    // JSON API base of the package index
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`    // lifetime of cached index responses
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Remote:      "origin",
		Branch:      "master",
		Formatter:   "autopep8 -",
		Pipreqs:     "pipreqs",
		Python:      "python",
		Twine:       "twine",
		WindowsOnly: []string{"xlwings", "pywin32"},
		Exclude:     []string{"setuptools"},
		IndexURL:    "https://pypi.org/pypi",
		CacheTTL:    time.Hour,
	}
}

// LoadOptions selects where configuration is read from.
type LoadOptions struct {
	ConfigFile string // explicit user config file; overrides the default location
	ProjectDir string // directory containing pyproject.toml (optional)
}

// Load reads the configuration layers and validates the result.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()

	d := Default()
	v.SetDefault("remote", d.Remote)
	v.SetDefault("branch", d.Branch)
	v.SetDefault("repository", d.Repository)
	v.SetDefault("formatter", d.Formatter)
	v.SetDefault("pipreqs", d.Pipreqs)
	v.SetDefault("python", d.Python)
	v.SetDefault("twine", d.Twine)
	v.SetDefault("windows_only", d.WindowsOnly)
	v.SetDefault("exclude", d.Exclude)
	v.SetDefault("check_index", d.CheckIndex)
	v.SetDefault("index_url", d.IndexURL)
	v.SetDefault("cache_ttl", d.CacheTTL)

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.AutomaticEnv()

	if err := readUserConfig(v, opts.ConfigFile); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode configuration")
	}

	if opts.ProjectDir != "" {
		if err := applyPyproject(&cfg, filepath.Join(opts.ProjectDir, PyprojectFile)); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readUserConfig(v *viper.Viper, explicit string) error {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", explicit)
		}
		v.SetConfigFile(explicit)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config file %s", explicit)
		}
		return nil
	}

	dir, err := Dir()
	if err != nil {
		return nil
	}
	v.AddConfigPath(dir)
	v.SetConfigName(FileName)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if stderrors.As(err, &notFound) {
			return nil
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config file in %s", dir)
	}
	return nil
}

// pyprojectOverrides mirrors Config with optional fields so only keys present
// in [tool.autogen] take effect.
type pyprojectOverrides struct {
	Remote      *string   `toml:"remote"`
	Branch      *string   `toml:"branch"`
	Repository  *string   `toml:"repository"`
	Formatter   *string   `toml:"formatter"`
	Pipreqs     *string   `toml:"pipreqs"`
	Python      *string   `toml:"python"`
	Twine       *string   `toml:"twine"`
	WindowsOnly *[]string `toml:"windows_only"`
	Exclude     *[]string `toml:"exclude"`
	CheckIndex  *bool     `toml:"check_index"`
	IndexURL    *string   `toml:"index_url"`
	CacheTTL    *string   `toml:"cache_ttl"`
}

func applyPyproject(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	var doc struct {
		Tool struct {
			Autogen pyprojectOverrides `toml:"autogen"`
		} `toml:"tool"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	o := doc.Tool.Autogen

	setString(&cfg.Remote, o.Remote)
	setString(&cfg.Branch, o.Branch)
	setString(&cfg.Repository, o.Repository)
	setString(&cfg.Formatter, o.Formatter)
	setString(&cfg.Pipreqs, o.Pipreqs)
	setString(&cfg.Python, o.Python)
	setString(&cfg.Twine, o.Twine)
	setString(&cfg.IndexURL, o.IndexURL)
	if o.WindowsOnly != nil {
		cfg.WindowsOnly = *o.WindowsOnly
	}
	if o.Exclude != nil {
		cfg.Exclude = *o.Exclude
	}
	if o.CheckIndex != nil {
		cfg.CheckIndex = *o.CheckIndex
	}
	if o.CacheTTL != nil {
		ttl, err := time.ParseDuration(*o.CacheTTL)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "tool.autogen.cache_ttl in %s", path)
		}
		cfg.CacheTTL = ttl
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// Validate checks that required settings are present.
func (c *Config) Validate() error {
	required := []struct {
		key, value string
	}{
		{"remote", c.Remote},
		{"branch", c.Branch},
		{"pipreqs", c.Pipreqs},
		{"python", c.Python},
		{"twine", c.Twine},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must not be empty", r.key)
		}
	}
	if c.CacheTTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache_ttl must not be negative")
	}
	if c.CheckIndex {
		if err := errors.ValidateIndexURL(c.IndexURL); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "index_url")
		}
	}
	return nil
}

// Dir returns the user configuration directory ($XDG_CONFIG_HOME/autogen,
// defaulting to ~/.config/autogen).
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// CacheDir returns the cache directory ($XDG_CACHE_HOME/autogen, defaulting
// to ~/.cache/autogen).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

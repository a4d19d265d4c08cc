// Package config handles jrnl configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	homedir "github.com/mitchellh/go-homedir"
)

// Environment variables consulted between command-line flags and the file.
const (
	EnvConfig = "JRNL_CONFIG"
	EnvDir    = "JRNL_DIR"
)

// FallbackEditor is used when neither config nor environment name an editor.
const FallbackEditor = "vim"

// Log levels accepted by log_level.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

func init() {
	// Name fields in validation errors the way they are written in the file.
	validation.ErrorTag = "toml"
}

// DefaultExclude hides editor swap files and the git metadata directory.
var DefaultExclude = []string{`.*\.swp$`, `^\.git$`}

// Config represents the jrnl configuration file.
type Config struct {
	// JournalDir is the directory holding journal entries. "~" is expanded.
	JournalDir string `toml:"journal_dir"`

	// Exclude lists regular expressions for filenames the store ignores.
	Exclude []string `toml:"exclude"`

	// Editor is the editor command for open/new (defaults to $VISUAL, $EDITOR, vim).
	Editor string `toml:"editor"`

	// Extension is given to entries created with "new".
	Extension string `toml:"extension"`

	// Prompt is printed before each line of interactive input.
	Prompt string `toml:"prompt"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// UI controls optional theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for aliases, references and headings.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	exclude := make([]string, len(DefaultExclude))
	copy(exclude, DefaultExclude)
	return &Config{
		JournalDir: filepath.Join("~", "journal"),
		Exclude:    exclude,
		Extension:  ".md",
		Prompt:     ">> ",
		LogLevel:   LevelWarn,
	}
}

// Load loads the configuration from the default location.
// Returns the default config if the file doesn't exist.
func Load() (*Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom loads the configuration at path on top of Default(). A missing
// file is not an error.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ResolveConfigPath picks the config file: an explicit path, then
// $JRNL_CONFIG, then DefaultPath().
func ResolveConfigPath(explicit string) string {
	if p := strings.TrimSpace(explicit); p != "" {
		return p
	}
	if p := strings.TrimSpace(os.Getenv(EnvConfig)); p != "" {
		return p
	}
	return DefaultPath()
}

// DefaultPath returns the default config file path.
// Checks ~/.config/jrnl/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if xdgPath, err := XDGPath(); err == nil {
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "jrnl", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// XDGPath returns the XDG-style config path (~/.config/jrnl/config.toml).
func XDGPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "jrnl", "config.toml"), nil
}

// ApplyEnv overrides file values with environment variables.
func (c *Config) ApplyEnv() {
	if dir := strings.TrimSpace(os.Getenv(EnvDir)); dir != "" {
		c.JournalDir = dir
	}
}

// Validate checks every field. A config that fails validation cannot be used.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.JournalDir, validation.Required),
		validation.Field(&c.Exclude, validation.Each(validation.By(validatePattern))),
		validation.Field(&c.Extension, validation.By(validateExtension)),
		validation.Field(&c.LogLevel, validation.In(LevelDebug, LevelInfo, LevelWarn, LevelError)),
	)
}

func validatePattern(value interface{}) error {
	p, _ := value.(string)
	if _, err := regexp.Compile(p); err != nil {
		return fmt.Errorf("invalid pattern %q: %v", p, err)
	}
	return nil
}

func validateExtension(value interface{}) error {
	ext, _ := value.(string)
	switch {
	case ext == "":
		return nil
	case !strings.HasPrefix(ext, "."):
		return errors.New("must start with '.'")
	case strings.Count(ext, ".") > 1 || strings.ContainsAny(ext, `~/\`):
		return errors.New("must be a single extension such as .md")
	}
	return nil
}

// ExpandedJournalDir returns JournalDir with a leading "~" expanded.
func (c *Config) ExpandedJournalDir() (string, error) {
	dir, err := homedir.Expand(c.JournalDir)
	if err != nil {
		return "", fmt.Errorf("expand journal_dir %q: %w", c.JournalDir, err)
	}
	return dir, nil
}

// GetEditor returns the editor to use: the configured one, then $VISUAL,
// then $EDITOR, then FallbackEditor.
func (c *Config) GetEditor() string {
	if e := strings.TrimSpace(c.Editor); e != "" {
		return e
	}
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if e := strings.TrimSpace(os.Getenv(env)); e != "" {
			return e
		}
	}
	return FallbackEditor
}

// Level returns LogLevel as a slog level. Unknown values mean warn.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

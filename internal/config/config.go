package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds every setting keyview reads.
type Config struct {
	Log   LogConfig   `toml:"log"`
	Theme ThemeConfig `toml:"theme"`
}

// LogConfig controls the session log.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `toml:"level"`
	// File is the log destination. Empty disables logging.
	File string `toml:"file"`
}

// ThemeConfig holds the status line colors as "#RRGGBB" strings and the
// separator glyphs.
type ThemeConfig struct {
	ModeFG         string `toml:"mode_fg"`
	ModeBG         string `toml:"mode_bg"`
	FileFG         string `toml:"file_fg"`
	FileBG         string `toml:"file_bg"`
	LeftSeparator  string `toml:"left_separator"`
	RightSeparator string `toml:"right_separator"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Theme: ThemeConfig{
			ModeFG:         "#000000",
			ModeBG:         "#B890F3",
			FileFG:         "#FFFFFF",
			FileBG:         "#3C4659",
			LeftSeparator:  "\ue0b0",
			RightSeparator: "\ue0b2",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/keyview/config.toml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset. It returns "" when no home
// directory can be determined.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "keyview", "config.toml")
}

// Load reads the config file at path over the defaults. A missing file
// yields the defaults. A file that does not parse, or that names unknown
// settings, yields a *ParseError; a setting with a bad value yields a
// *ValidationError.
func Load(path string) (*Config, error) {
	return LoadFS(osFS{}, path)
}

// LoadFS is Load reading through fsys.
func LoadFS(fsys fs.ReadFileFS, path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := cfg.parse(path, data); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parse decodes data over cfg. Keys absent from data keep their current
// values.
func (c *Config) parse(source string, data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	err := dec.Decode(c)
	if err == nil {
		return nil
	}

	perr := &ParseError{Path: source, Message: err.Error(), Err: err}

	var decodeErr *toml.DecodeError
	var strictErr *toml.StrictMissingError
	switch {
	case errors.As(err, &decodeErr):
		perr.Line, perr.Column = decodeErr.Position()
	case errors.As(err, &strictErr) && len(strictErr.Errors) > 0:
		perr.Line, perr.Column = strictErr.Errors[0].Position()
		perr.Message = "unknown setting " + fmt.Sprint(strictErr.Errors[0].Key())
	}
	return perr
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

// Validate checks every setting that has a restricted set of values.
func (c *Config) Validate() error {
	if !logLevels[strings.ToLower(c.Log.Level)] {
		return &ValidationError{Path: "log.level", Value: c.Log.Level, Message: "expected debug, info, warn or error"}
	}
	if _, err := c.Theme.StatusTheme(); err != nil {
		return err
	}
	return nil
}

// osFS reads files by absolute or working-directory-relative path, which
// os.DirFS cannot do.
type osFS struct{}

func (osFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

func (osFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

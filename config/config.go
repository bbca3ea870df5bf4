// Package config loads editor settings from TOML or YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ionut-t/vimcore/core"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported config format")
	ErrInvalidConfig     = errors.New("invalid config")
)

// Config holds the user-tunable settings of the editor and its terminal host.
type Config struct {
	UndoCapacity    int    `toml:"undo_capacity" yaml:"undo_capacity"`
	Indent          string `toml:"indent" yaml:"indent"`
	TabWidth        int    `toml:"tab_width" yaml:"tab_width"`
	PageSize        int    `toml:"page_size" yaml:"page_size"`
	RelativeNumbers bool   `toml:"relative_numbers" yaml:"relative_numbers"`
	Theme           string `toml:"theme" yaml:"theme"`       // chroma style name
	Language        string `toml:"language" yaml:"language"` // chroma lexer name, guessed from the file when empty
}

func Default() Config {
	opts := core.DefaultOptions()
	return Config{
		UndoCapacity: opts.UndoCapacity,
		Indent:       opts.Indent,
		TabWidth:     4,
		Theme:        "catppuccin-mocha",
	}
}

// Load reads path over the defaults. The decoder is picked by extension; a
// missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.UndoCapacity < 0 {
		return fmt.Errorf("%w: undo_capacity must not be negative, got %d", ErrInvalidConfig, c.UndoCapacity)
	}
	if c.TabWidth < 1 || c.TabWidth > 16 {
		return fmt.Errorf("%w: tab_width must be within [1, 16], got %d", ErrInvalidConfig, c.TabWidth)
	}
	if c.PageSize < 0 {
		return fmt.Errorf("%w: page_size must not be negative, got %d", ErrInvalidConfig, c.PageSize)
	}
	if strings.Trim(c.Indent, " \t") != "" {
		return fmt.Errorf("%w: indent may only hold spaces and tabs", ErrInvalidConfig)
	}
	return nil
}

// EditorOptions maps the config onto the editor core.
func (c Config) EditorOptions() core.Options {
	return core.Options{
		UndoCapacity:    c.UndoCapacity,
		Indent:          c.Indent,
		PageSize:        c.PageSize,
		RelativeNumbers: c.RelativeNumbers,
	}
}

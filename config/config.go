// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads the sandbox configuration from TOML.
//
// The embedded default.toml holds every default; a user file only needs the
// keys it changes. The user file is looked up in $GRIDSANDBOX_CONFIG_DIR,
// then in the OS user configuration directory (gridsandbox/config.toml).
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gogpu/gg"
	"github.com/gogpu/sandbox"
)

//go:embed default.toml
var defaultConfig string

// ErrInvalid is returned when a configuration value is out of range.
var ErrInvalid = errors.New("config: invalid value")

// Config is the complete sandbox configuration.
type Config struct {
	Surface SurfaceConfig `toml:"surface"`
	Grid    GridConfig    `toml:"grid"`
	Images  ImagesConfig  `toml:"images"`
	Overlay OverlayConfig `toml:"overlay"`
	Cells   []CellConfig  `toml:"cells"`
}

type SurfaceConfig struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Background string `toml:"background"`
}

type GridConfig struct {
	Rows        int     `toml:"rows"`
	Columns     int     `toml:"columns"`
	BorderColor string  `toml:"border_color"`
	Lines       bool    `toml:"lines"`
	LineColor   string  `toml:"line_color"`
	LineWidth   float64 `toml:"line_width"`
}

type ImagesConfig struct {
	BaseURL   string   `toml:"base_url"`
	Width     int      `toml:"width"`
	Height    int      `toml:"height"`
	Timeout   Duration `toml:"timeout"`
	ReloadMin Duration `toml:"reload_min"`
	ReloadMax Duration `toml:"reload_max"`
}

type OverlayConfig struct {
	ShowFPS    bool   `toml:"show_fps"`
	Color      string `toml:"color"`
	FontSize   string `toml:"font_size"`
	FontFamily string `toml:"font_family"`
}

// CellConfig seeds one cell. Row and Col are one-based.
type CellConfig struct {
	Row     int    `toml:"row"`
	Col     int    `toml:"col"`
	Content string `toml:"content"`
	Value   string `toml:"value"`
}

// Duration is a time.Duration written as a Go duration string ("3s").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg := &Config{}
	if _, err := toml.Decode(defaultConfig, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded default config: %v", err))
	}
	return cfg
}

// Path returns the user configuration file path, or "" when the
// configuration directory cannot be determined.
func Path() string {
	if dir := os.Getenv("GRIDSANDBOX_CONFIG_DIR"); dir != "" {
		return filepath.Join(dir, "config.toml")
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gridsandbox", "config.toml")
}

// Load reads the configuration file at path over the defaults. An empty
// path uses Path(); a missing file at the default location is not an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = Path()
	}
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, cfg.Validate()
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Load(string(data)); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Load decodes data over c and validates the result. A [[cells]] list in
// data replaces the existing cells; unknown keys are rejected.
func (c *Config) Load(data string) error {
	baseCells := c.Cells
	c.Cells = nil

	md, err := toml.Decode(data, c)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
	}
	if !md.IsDefined("cells") {
		c.Cells = baseCells
	}
	return c.Validate()
}

// Validate checks ranges, colors and cell content tags.
func (c *Config) Validate() error {
	var errs []error
	if c.Surface.Width <= 0 || c.Surface.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: surface size %dx%d", ErrInvalid, c.Surface.Width, c.Surface.Height))
	}
	if c.Grid.Rows <= 0 || c.Grid.Columns <= 0 {
		errs = append(errs, fmt.Errorf("%w: grid %dx%d", ErrInvalid, c.Grid.Rows, c.Grid.Columns))
	}
	for _, col := range []struct{ key, value string }{
		{"surface.background", c.Surface.Background},
		{"grid.border_color", c.Grid.BorderColor},
		{"grid.line_color", c.Grid.LineColor},
		{"overlay.color", c.Overlay.Color},
	} {
		if _, err := sandbox.ParseColor(col.value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", col.key, err))
		}
	}
	if c.Images.ReloadMin.Duration <= 0 || c.Images.ReloadMax.Duration < c.Images.ReloadMin.Duration {
		errs = append(errs, fmt.Errorf("%w: reload delay [%v, %v)", ErrInvalid,
			c.Images.ReloadMin.Duration, c.Images.ReloadMax.Duration))
	}
	if c.Images.Timeout.Duration <= 0 {
		errs = append(errs, fmt.Errorf("%w: images.timeout %v", ErrInvalid, c.Images.Timeout.Duration))
	}
	if c.Images.Width < 0 || c.Images.Height < 0 {
		errs = append(errs, fmt.Errorf("%w: image size %dx%d", ErrInvalid, c.Images.Width, c.Images.Height))
	}
	if _, err := sandbox.ParseFontSize(c.Overlay.FontSize); err != nil {
		errs = append(errs, fmt.Errorf("overlay.font_size: %w", err))
	}
	for _, cell := range c.Cells {
		if _, err := sandbox.ParseContentKind(cell.Content); err != nil {
			errs = append(errs, &sandbox.CellError{Row: cell.Row, Col: cell.Col, Err: err})
		}
	}
	return errors.Join(errs...)
}

// Background returns the parsed surface background color.
func (c *Config) Background() gg.RGBA {
	return sandbox.MustParseColor(c.Surface.Background)
}

// BorderColor returns the parsed cell border color.
func (c *Config) BorderColor() gg.RGBA {
	return sandbox.MustParseColor(c.Grid.BorderColor)
}

// RenderOptions returns the grid render options.
func (c *Config) RenderOptions() sandbox.RenderOptions {
	lineColor := sandbox.MustParseColor(c.Grid.LineColor)
	return sandbox.RenderOptions{
		GridLines: c.Grid.Lines,
		LineColor: &lineColor,
		LineWidth: c.Grid.LineWidth,
	}
}

// OverlayFont returns the FPS overlay font.
func (c *Config) OverlayFont() sandbox.Font {
	return sandbox.Font{Size: c.Overlay.FontSize, Family: c.Overlay.FontFamily}
}

// SeedCells applies the configured cells to g. Image cells without a value
// are registered with r, which fills them from the image source; when r is
// nil they are left empty.
func (c *Config) SeedCells(g *sandbox.Grid, r *sandbox.Reloader) error {
	for _, cell := range c.Cells {
		it, err := g.Cell(cell.Row, cell.Col)
		if err != nil {
			return err
		}
		kind, err := sandbox.ParseContentKind(cell.Content)
		if err != nil {
			return &sandbox.CellError{Row: cell.Row, Col: cell.Col, Err: err}
		}
		if kind == sandbox.KindImage && cell.Value == "" {
			if r != nil {
				r.Add(it)
			}
			continue
		}
		content, err := sandbox.NewContent(kind, cell.Value)
		if err != nil {
			return &sandbox.CellError{Row: cell.Row, Col: cell.Col, Err: err}
		}
		it.SetContent(content)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/carousel/internal/carousel"
)

// Config captures the carousel behaviour and terminal geometry.
type Config struct {
	SlidesToScroll   int
	SlidesVisible    int
	Loop             bool
	CompactBelow     float64 // pixels
	CellWidth        float64 // pixels per terminal column
	CellHeight       float64 // pixels per terminal row
	TransitionFrames int
	MarkdownStyle    string
	LogFile          string
	LogLevel         string
}

const (
	defaultConfigPath       = "~/.config/carousel/config.toml"
	defaultLogFile          = "~/.local/state/carousel/carousel.log"
	defaultLogLevel         = "info"
	defaultCellWidth        = 8
	defaultCellHeight       = 16
	defaultTransitionFrames = 6
	defaultMarkdownStyle    = "dark"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	opts := carousel.DefaultOptions()
	return Config{
		SlidesToScroll:   opts.SlidesToScroll,
		SlidesVisible:    opts.SlidesVisible,
		Loop:             opts.Loop,
		CompactBelow:     opts.CompactBelow,
		CellWidth:        defaultCellWidth,
		CellHeight:       defaultCellHeight,
		TransitionFrames: defaultTransitionFrames,
		MarkdownStyle:    defaultMarkdownStyle,
		LogFile:          mustExpand(defaultLogFile),
		LogLevel:         defaultLogLevel,
	}
}

// Load locates and parses the carousel config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	// Pointers distinguish "absent" from an explicit zero, which Validate rejects.
	var raw struct {
		SlidesToScroll   *int     `toml:"slides_to_scroll"`
		SlidesVisible    *int     `toml:"slides_visible"`
		Loop             *bool    `toml:"loop"`
		CompactBelow     *float64 `toml:"compact_below"`
		CellWidth        *float64 `toml:"cell_width"`
		CellHeight       *float64 `toml:"cell_height"`
		TransitionFrames *int     `toml:"transition_frames"`
		MarkdownStyle    string   `toml:"markdown_style"`
		LogFile          string   `toml:"log_file"`
		LogLevel         string   `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if raw.SlidesToScroll != nil {
		cfg.SlidesToScroll = *raw.SlidesToScroll
	}
	if raw.SlidesVisible != nil {
		cfg.SlidesVisible = *raw.SlidesVisible
	}
	if raw.Loop != nil {
		cfg.Loop = *raw.Loop
	}
	if raw.CompactBelow != nil && *raw.CompactBelow > 0 {
		cfg.CompactBelow = *raw.CompactBelow
	}
	if raw.CellWidth != nil && *raw.CellWidth > 0 {
		cfg.CellWidth = *raw.CellWidth
	}
	if raw.CellHeight != nil && *raw.CellHeight > 0 {
		cfg.CellHeight = *raw.CellHeight
	}
	if raw.TransitionFrames != nil && *raw.TransitionFrames >= 0 {
		cfg.TransitionFrames = *raw.TransitionFrames
	}
	if style := strings.TrimSpace(raw.MarkdownStyle); style != "" {
		cfg.MarkdownStyle = style
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}

	return cfg, nil
}

// Validate rejects counts the carousel cannot lay out.
func (c Config) Validate() error {
	if c.SlidesVisible < 1 {
		return fmt.Errorf("slides_visible must be at least 1, got %d", c.SlidesVisible)
	}
	if c.SlidesToScroll < 1 {
		return fmt.Errorf("slides_to_scroll must be at least 1, got %d", c.SlidesToScroll)
	}
	return nil
}

// CarouselOptions converts the config into engine options.
func (c Config) CarouselOptions() carousel.Options {
	return carousel.Options{
		SlidesToScroll: c.SlidesToScroll,
		SlidesVisible:  c.SlidesVisible,
		Loop:           c.Loop,
		CompactBelow:   c.CompactBelow,
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

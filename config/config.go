package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ByLCY/spantext/compose"
	"github.com/ByLCY/spantext/layout"
)

// DefaultFile 是命令行默认读取的配置文件。
const DefaultFile = "spantext.yaml"

// Config represents the optional spantext.yaml configuration.
type Config struct {
	Page PageConfig `yaml:"page"`
	Text TextConfig `yaml:"text"`
	Log  LogConfig  `yaml:"log"`
}

// PageConfig contains page defaults used when a document omits them.
type PageConfig struct {
	Size   string `yaml:"size,omitempty"`   // A4 / A5 / Letter [landscape]
	Margin string `yaml:"margin,omitempty"` // e.g. "10mm 5mm"
}

// TextConfig contains default text settings for every view.
type TextConfig struct {
	Size       float64 `yaml:"size,omitempty"` // pt
	LineHeight string  `yaml:"line-height,omitempty"`
	Color      string  `yaml:"color,omitempty"`
	Font       string  `yaml:"font,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `yaml:"level,omitempty"` // debug / info / warn / error
}

// LoadOptional reads path if present. A missing file yields an empty config.
func LoadOptional(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("读取配置 %s 失败: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("解析配置 %s 失败: %w", path, err)
	}
	return &cfg, nil
}

// Level returns the configured log level, falling back to def when unset.
func (c *Config) Level(def slog.Level) (slog.Level, error) {
	v := strings.TrimSpace(c.Log.Level)
	if v == "" {
		return def, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		return def, fmt.Errorf("无效的日志级别 %q: %w", v, err)
	}
	return level, nil
}

// BuildOptions converts the config into compose options for ts.
func (c *Config) BuildOptions(ts layout.Typesetter) (compose.BuildOptions, error) {
	opts := compose.BuildOptions{
		Typesetter: ts,
		PageSize:   c.Page.Size,
		Margin:     c.Page.Margin,
		FontSize:   c.Text.Size,
		LineHeight: c.Text.LineHeight,
	}
	if c.Text.Color != "" {
		col, err := layout.ParseColor(c.Text.Color)
		if err != nil {
			return compose.BuildOptions{}, fmt.Errorf("text.color: %w", err)
		}
		opts.Color = col
	}
	if c.Text.Font != "" {
		opts.Font = layout.FontResource{Name: c.Text.Font, Src: c.Text.Font, Family: c.Text.Font}
	}
	return opts, nil
}

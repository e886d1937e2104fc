package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/spantext/layout"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOptionalMissingFile(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadOptionalParsesFile(t *testing.T) {
	path := writeConfig(t, `
page:
  size: A5 landscape
  margin: 10mm 5mm
text:
  size: 11
  line-height: 1.5x
  color: "#336699"
  font: embed:lmroman10regular
log:
  level: debug
`)
	cfg, err := LoadOptional(path)
	require.NoError(t, err)
	assert.Equal(t, "A5 landscape", cfg.Page.Size)
	assert.Equal(t, "10mm 5mm", cfg.Page.Margin)
	assert.Equal(t, 11.0, cfg.Text.Size)

	level, err := cfg.Level(slog.LevelInfo)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	opts, err := cfg.BuildOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, "A5 landscape", opts.PageSize)
	assert.Equal(t, "1.5x", opts.LineHeight)
	assert.Equal(t, layout.Color{R: 0x33, G: 0x66, B: 0x99}, opts.Color)
	assert.Equal(t, "embed:lmroman10regular", opts.Font.Src)
}

func TestLoadOptionalRejectsBrokenYAML(t *testing.T) {
	path := writeConfig(t, "page: [unclosed")
	_, err := LoadOptional(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "解析配置")
}

func TestLevelDefaultsAndErrors(t *testing.T) {
	cfg := &Config{}
	level, err := cfg.Level(slog.LevelWarn)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	cfg.Log.Level = "loud"
	_, err = cfg.Level(slog.LevelInfo)
	assert.Error(t, err)
}

func TestBuildOptionsRejectsBadColor(t *testing.T) {
	cfg := &Config{Text: TextConfig{Color: "not-a-color"}}
	_, err := cfg.BuildOptions(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "text.color")
}

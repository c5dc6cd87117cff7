package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jackfield.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	cfg, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, 300.0, cfg.PNG.DPI)
	require.True(t, cfg.Export.Strict)
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, `
log_level: debug
human_logs: true
font_dir: ./fonts
png:
  dpi: 600
preview:
  columns: 120
`))
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.True(t, cfg.HumanLogs)
	require.Equal(t, "./fonts", cfg.FontDir)
	require.Equal(t, 600.0, cfg.PNG.DPI)
	require.Equal(t, 120, cfg.Preview.Columns)
	require.Zero(t, cfg.Preview.Rows)
	require.True(t, cfg.Export.Strict)
}

func TestLoadValidation(t *testing.T) {
	t.Parallel()

	_, err := Load(writeConfig(t, "png:\n  dpi: 10\n"))
	require.ErrorContains(t, err, "png.dpi")

	_, err = Load(writeConfig(t, "log_level: loud\n"))
	require.ErrorContains(t, err, "log_level")

	_, err = Load(writeConfig(t, "preview:\n  rows: 9000\n"))
	require.ErrorContains(t, err, "preview.rows")
}

func TestLoadReportsYAMLLine(t *testing.T) {
	t.Parallel()

	_, err := Load(writeConfig(t, "log_level: info\npng:\n  dpi: abc\n"))
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, 3, pe.Line)
}

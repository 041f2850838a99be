package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
Requires = ">= 0.1.0, < 1.0.0"
Color = "never"
MaxErrors = 10
Verbose = true
IgnoreCodes = ["W0001", "E2002"]
WarningsAsErrors = true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Requires:         ">= 0.1.0, < 1.0.0",
		Color:            ColorNever,
		MaxErrors:        10,
		Verbose:          true,
		IgnoreCodes:      []string{"W0001", "E2002"},
		WarningsAsErrors: true,
	}, cfg)
	assert.NoError(t, cfg.CheckVersion(Version))
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	// Fields not present in the file keep their defaults.
	cfg, err = LoadConfig(writeConfig(t, "Verbose = true\n"))
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Equal(t, 50, cfg.MaxErrors)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{"unknown field", "Colour = \"never\"\n", "field 'Colour' is not defined"},
		{"bad colour", "Color = \"sometimes\"\n", "invalid Color"},
		{"negative limit", "MaxErrors = -1\n", "invalid MaxErrors"},
		{"bad constraint", "Requires = \"not a version\"\n", "invalid Requires"},
		{"bad code", "IgnoreCodes = [\"unused\"]\n", "invalid IgnoreCodes entry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestCheckVersion(t *testing.T) {
	assert.NoError(t, Config{}.CheckVersion("0.1.0"))
	assert.NoError(t, Config{Requires: "^0.1"}.CheckVersion("0.1.5"))

	err := Config{Requires: ">= 2.0.0"}.CheckVersion("0.1.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not satisfy")

	assert.Error(t, Config{Requires: ">= 1.0.0"}.CheckVersion("banana"))
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, false, false, false)
	l.now = func() time.Time { return time.Date(2026, 1, 2, 13, 4, 5, 0, time.UTC) }

	l.Info("hidden")
	l.Debug("hidden")
	l.Warn("careful %d", 1)
	l.Error("broken")
	assert.Equal(t, "[WARN] 13:04:05: careful 1\n[ERROR] 13:04:05: broken\n", buf.String())

	buf.Reset()
	l.Verbose, l.DebugMode = true, true
	l.Info("parsed %s", "main.mrs")
	l.Debug("tokens=%d", 3)
	assert.Equal(t, "[INFO] 13:04:05: parsed main.mrs\n[DEBUG] 13:04:05: tokens=3\n", buf.String())
}

func TestLoggerColored(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, false, false, true)
	l.Error("broken")
	assert.True(t, strings.HasPrefix(buf.String(), "\x1b["))
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintVersion(&buf, "murustc", false))
	assert.True(t, strings.HasPrefix(buf.String(), "murustc v"+Version+"\n"))

	buf.Reset()
	require.NoError(t, PrintVersion(&buf, "murustc", true))

	var decoded struct {
		Tool        string      `json:"tool"`
		VersionInfo VersionInfo `json:"version_info"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "murustc", decoded.Tool)
	assert.Equal(t, Version, decoded.VersionInfo.Version)
}

func TestColorEnabled(t *testing.T) {
	on, err := ColorEnabled(ColorAlways, nil)
	require.NoError(t, err)
	assert.True(t, on)

	on, err = ColorEnabled(ColorNever, os.Stdout)
	require.NoError(t, err)
	assert.False(t, on)

	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	defer f.Close()

	on, err = ColorEnabled(ColorAuto, f)
	require.NoError(t, err)
	assert.False(t, on)
	assert.Equal(t, 100, TerminalWidth(f))

	_, err = ColorEnabled("sometimes", f)
	assert.Error(t, err)
}

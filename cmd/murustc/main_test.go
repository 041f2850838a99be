package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/urfave/cli.v1"

	mcli "github.com/murust-lang/murust/internal/cli"
)

func testSettings() *settings {
	return &settings{
		cfg:    mcli.DefaultConfig(),
		width:  100,
		logger: mcli.NewLogger(io.Discard, false, false, false),
	}
}

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestFrontEnd(t *testing.T) {
	dir := t.TempDir()
	s := testSettings()

	t.Run("valid", func(t *testing.T) {
		path := writeSource(t, dir, "ok.mrs", "fn main() -> i32 { 0 }\n")
		var out bytes.Buffer
		res, err := s.frontEnd(path, &out)
		require.NoError(t, err)
		require.NotNil(t, res.crate)
		assert.Equal(t, "ok", res.crate.Name)
		assert.Equal(t, "module ok\n  fn main() -> i32\n", res.module.String())
		assert.Empty(t, out.String())
	})

	t.Run("syntax error", func(t *testing.T) {
		path := writeSource(t, dir, "bad.mrs", "fn main() {\n    let x: i32 = 5\n}\n")
		var out bytes.Buffer
		res, err := s.frontEnd(path, &out)
		require.NoError(t, err)
		assert.Nil(t, res.crate)
		assert.Nil(t, res.module)
		assert.False(t, res.truncated)
		assert.Contains(t, out.String(), "bad.mrs:2:19: error[E1003]: Missing token")
		assert.Contains(t, out.String(), "   2 |     let x: i32 = 5\n")
	})

	t.Run("duplicate definition", func(t *testing.T) {
		path := writeSource(t, dir, "dup.mrs", "fn f() {}\nfn f() {}\n")
		var out bytes.Buffer
		res, err := s.frontEnd(path, &out)
		require.NoError(t, err)
		assert.Nil(t, res.crate)
		assert.Contains(t, out.String(), "error[E2101]: Invalid declaration")
	})

	t.Run("missing file", func(t *testing.T) {
		var out bytes.Buffer
		res, err := s.frontEnd(filepath.Join(dir, "missing.mrs"), &out)
		require.NoError(t, err)
		assert.Nil(t, res.crate)
		assert.Contains(t, out.String(), "error[E0002]: Cannot read source")
	})

	t.Run("warning", func(t *testing.T) {
		path := writeSource(t, dir, "spin.mrs", "fn main() {\n    while true {}\n}\n")
		var out bytes.Buffer
		res, err := s.frontEnd(path, &out)
		require.NoError(t, err)
		assert.NotNil(t, res.crate)
		assert.NotNil(t, res.module)
		assert.Contains(t, out.String(), "spin.mrs:2:5: warning[W0001]: Constant loop condition")
		assert.Contains(t, out.String(), "found 1 warning(s)")
	})

	t.Run("too many errors", func(t *testing.T) {
		limited := testSettings()
		limited.cfg.MaxErrors = 1
		path := writeSource(t, dir, "many.mrs", "static A: i32;\nstatic B: i32;\nstatic C: i32;\n")
		var out bytes.Buffer
		res, err := limited.frontEnd(path, &out)
		require.NoError(t, err)
		assert.Nil(t, res.crate)
		assert.True(t, res.truncated)
		assert.Contains(t, out.String(), "error[E0001]: Too many errors")
	})
}

func TestFrontEndWarningConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "spin.mrs", "fn main() { while (true) {} }\n")

	t.Run("warnings as errors", func(t *testing.T) {
		s := testSettings()
		s.cfg.WarningsAsErrors = true
		var out bytes.Buffer
		res, err := s.frontEnd(path, &out)
		require.NoError(t, err)
		assert.Nil(t, res.crate)
		assert.Contains(t, out.String(), "error[W0001]: Constant loop condition")
	})

	t.Run("ignored code", func(t *testing.T) {
		s := testSettings()
		s.cfg.IgnoreCodes = []string{"W0001"}
		s.cfg.WarningsAsErrors = true
		var out bytes.Buffer
		res, err := s.frontEnd(path, &out)
		require.NoError(t, err)
		assert.NotNil(t, res.crate)
		assert.Empty(t, out.String())
	})
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	a := writeSource(t, dir, "a.mrs", "static X: i32 = 1;\n")
	b := writeSource(t, dir, "b.mrs", "extern \"C\" { fn f(); }\nfn main() { f(); }\n")
	cfg := writeSource(t, dir, "murust.toml", "Color = \"never\"\n")

	err := newApp().Run([]string{"murustc", "--config", cfg, "check", "-j", "2", a, b})
	assert.NoError(t, err)
}

func TestCheckCommandDenyWarnings(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "spin.mrs", "fn main() { while true {} }\n")
	cfg := writeSource(t, dir, "murust.toml", "Color = \"never\"\n")

	exitCode := -1
	defer func(exiter func(int)) { cli.OsExiter = exiter }(cli.OsExiter)
	cli.OsExiter = func(code int) { exitCode = code }

	err := newApp().Run([]string{"murustc", "--config", cfg, "--deny-warnings", "check", src})
	require.Error(t, err)
	coder, ok := err.(cli.ExitCoder)
	require.True(t, ok)
	assert.Equal(t, 1, coder.ExitCode())
	assert.Equal(t, 1, exitCode)

	cfg = writeSource(t, dir, "murust.toml", "Color = \"never\"\nIgnoreCodes = [\"W0001\"]\n")
	assert.NoError(t, newApp().Run([]string{"murustc", "--config", cfg, "--deny-warnings", "check", src}))
}

func TestLoadSettingsRejectsVersion(t *testing.T) {
	dir := t.TempDir()
	cfg := writeSource(t, dir, "murust.toml", "Requires = \">= 99.0.0\"\n")
	src := writeSource(t, dir, "a.mrs", "fn main() {}\n")

	err := newApp().Run([]string{"murustc", "--config", cfg, "check", src})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not satisfy")
}

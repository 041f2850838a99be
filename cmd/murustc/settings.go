package main

import (
	"io"
	"os"

	"gopkg.in/urfave/cli.v1"

	mcli "github.com/murust-lang/murust/internal/cli"
	"github.com/murust-lang/murust/internal/diagnostic"
)

// settings is the resolved driver configuration: murust.toml values
// overridden by command-line flags.
type settings struct {
	cfg    mcli.Config
	color  bool
	width  int
	logger *mcli.Logger
}

func loadSettings(ctx *cli.Context) (*settings, error) {
	cfg, err := mcli.LoadConfig(ctx.GlobalString(configFileFlag.Name))
	if err != nil {
		return nil, err
	}

	if ctx.GlobalIsSet(colorFlag.Name) {
		cfg.Color = ctx.GlobalString(colorFlag.Name)
	}
	if ctx.GlobalIsSet(maxErrorsFlag.Name) {
		cfg.MaxErrors = ctx.GlobalInt(maxErrorsFlag.Name)
	}
	if ctx.GlobalBool(denyWarningsFlag.Name) {
		cfg.WarningsAsErrors = true
	}
	if ctx.GlobalBool(verboseFlag.Name) {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.CheckVersion(mcli.Version); err != nil {
		return nil, err
	}

	colored, err := mcli.ColorEnabled(cfg.Color, os.Stderr)
	if err != nil {
		return nil, err
	}

	return &settings{
		cfg:    cfg,
		color:  colored,
		width:  mcli.TerminalWidth(os.Stderr),
		logger: mcli.NewLogger(os.Stderr, cfg.Verbose, ctx.GlobalBool(debugFlag.Name), colored),
	}, nil
}

func (s *settings) newEngine(filename string) *diagnostic.DiagnosticEngine {
	return diagnostic.NewDiagnosticEngine(filename, diagnostic.DiagnosticConfig{
		IgnoreCodes:      s.cfg.IgnoreCodes,
		MaxErrors:        s.cfg.MaxErrors,
		WarningsAsErrors: s.cfg.WarningsAsErrors,
	})
}

func (s *settings) newRenderer(w io.Writer) *diagnostic.Renderer {
	r := diagnostic.NewRenderer(w, s.color)
	r.Width = s.width
	return r
}

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"

	"github.com/davecgh/go-spew/spew"
	"github.com/fsnotify/fsnotify"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/sync/errgroup"
	"gopkg.in/urfave/cli.v1"

	"github.com/murust-lang/murust/internal/ast"
	mcli "github.com/murust-lang/murust/internal/cli"
	"github.com/murust-lang/murust/internal/codegen"
	"github.com/murust-lang/murust/internal/diagnostic"
	"github.com/murust-lang/murust/internal/lexer"
	"github.com/murust-lang/murust/internal/parser"
	"github.com/murust-lang/murust/internal/position"
)

var (
	rawFlag = cli.BoolFlag{
		Name:  "raw",
		Usage: "Dump the Go structures of the crate instead of the tree",
	}
	declsFlag = cli.BoolFlag{
		Name:  "decls",
		Usage: "Print the declaration summary handed to the backend",
	}
	jsonFlag = cli.BoolFlag{
		Name:  "json",
		Usage: "Output version in JSON format",
	}
	jobsFlag = cli.IntFlag{
		Name:  "jobs, j",
		Usage: "Number of files checked concurrently",
		Value: runtime.NumCPU(),
	}

	lexCommand = cli.Command{
		Action:    lexFile,
		Name:      "lex",
		Usage:     "Print the token stream of a source file",
		ArgsUsage: "<file.mrs>",
	}
	parseCommand = cli.Command{
		Action:    parseFile,
		Name:      "parse",
		Usage:     "Parse a source file and print its syntax tree",
		ArgsUsage: "<file.mrs>",
		Flags:     []cli.Flag{rawFlag, declsFlag},
	}
	checkCommand = cli.Command{
		Action:    checkFiles,
		Name:      "check",
		Usage:     "Parse source files and report diagnostics",
		ArgsUsage: "<file.mrs>...",
		Flags:     []cli.Flag{jobsFlag},
	}
	watchCommand = cli.Command{
		Action:    watchFile,
		Name:      "watch",
		Usage:     "Check a source file again whenever it changes",
		ArgsUsage: "<file.mrs>",
	}
	versionCommand = cli.Command{
		Action: printVersion,
		Name:   "version",
		Usage:  "Print version information",
		Flags:  []cli.Flag{jsonFlag},
	}
)

func singleFile(ctx *cli.Context) (string, error) {
	if ctx.NArg() != 1 {
		return "", cli.NewExitError(fmt.Sprintf("usage: murustc %s %s", ctx.Command.Name, ctx.Command.ArgsUsage), 2)
	}
	return ctx.Args().First(), nil
}

// frontEndResult is the outcome of running the front end on one file.
type frontEndResult struct {
	// crate and module are nil when the file has errors.
	crate     *ast.Crate
	module    *codegen.Module
	truncated bool
}

// frontEnd parses one file and hands it to the declaration backend.
// Diagnostics, warnings included, are rendered to w.
func (s *settings) frontEnd(path string, w io.Writer) (*frontEndResult, error) {
	engine := s.newEngine(path)
	res := &frontEndResult{}

	src, err := os.ReadFile(path)
	if err != nil {
		engine.AddError(err)
		return res, s.newRenderer(w).Render(engine, nil)
	}

	crate, err := parser.New(lexer.New(path, bytes.NewReader(src))).Parse()
	if err != nil {
		engine.AddError(err)
	} else {
		backend := codegen.NewDeclBackend(crate.Name)
		if err := codegen.Generate(crate, backend); err != nil {
			engine.AddDiagnostic(diagnostic.NewDiagnostic().
				Error().
				Semantic().
				Code(diagnostic.CodeDeclaration).
				Title("Invalid declaration").
				Message(err.Error()).
				Build())
		} else {
			engine.AddDiagnostics(diagnostic.Lint(crate))
			if !engine.HasErrors() {
				res.crate, res.module = crate, backend.Module
			}
		}
	}
	res.truncated = engine.Truncated()

	if len(engine.GetDiagnostics()) == 0 {
		return res, nil
	}
	return res, s.newRenderer(w).Render(engine, position.NewSourceFile(path, string(src)))
}

func lexFile(ctx *cli.Context) error {
	path, err := singleFile(ctx)
	if err != nil {
		return err
	}
	s, err := loadSettings(ctx)
	if err != nil {
		return err
	}

	l, err := lexer.Open(path)
	if err != nil {
		return err
	}
	defer l.Close()

	tokens, lexErr := l.Tokens()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Kind", "Text", "Span"})
	table.SetAutoWrapText(false)
	for _, tok := range tokens {
		table.Append([]string{tok.Type.String(), tok.Literal, tok.Span.String()})
	}
	table.Render()

	if lexErr != nil {
		engine := s.newEngine(path)
		engine.AddError(lexErr)
		src, _ := os.ReadFile(path)
		if err := s.newRenderer(os.Stderr).Render(engine, position.NewSourceFile(path, string(src))); err != nil {
			return err
		}
		return cli.NewExitError("", 1)
	}
	s.logger.Info("%s: %d tokens", path, len(tokens))
	return nil
}

func parseFile(ctx *cli.Context) error {
	path, err := singleFile(ctx)
	if err != nil {
		return err
	}
	s, err := loadSettings(ctx)
	if err != nil {
		return err
	}

	res, err := s.frontEnd(path, os.Stderr)
	if err != nil {
		return err
	}
	if res.crate == nil {
		return cli.NewExitError("", 1)
	}

	switch {
	case ctx.Bool(rawFlag.Name):
		cfg := spew.ConfigState{
			Indent:                  "  ",
			DisablePointerAddresses: true,
			DisableCapacities:       true,
		}
		cfg.Fdump(os.Stdout, res.crate)
	case ctx.Bool(declsFlag.Name):
		fmt.Print(res.module)
	default:
		if err := ast.Dump(os.Stdout, res.crate); err != nil {
			return err
		}
	}
	return nil
}

// checkResult is the rendered outcome of checking one file.
type checkResult struct {
	output    bytes.Buffer
	ok        bool
	truncated bool
}

func checkFiles(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return cli.NewExitError("usage: murustc check <file.mrs>...", 2)
	}
	s, err := loadSettings(ctx)
	if err != nil {
		return err
	}

	paths := ctx.Args()
	results := make([]checkResult, len(paths))

	g, gctx := errgroup.WithContext(context.Background())
	g.SetLimit(max(1, ctx.Int("jobs")))

	for i, path := range paths {
		i, path := i, path

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s.logger.Debug("checking %s", path)

			res := &results[i]
			fe, err := s.frontEnd(path, &res.output)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			res.ok = fe.crate != nil
			res.truncated = fe.truncated
			if res.ok {
				fmt.Fprintf(&res.output, "%s: ok\n", path)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	failed, truncated := 0, 0
	for i := range results {
		os.Stderr.Write(results[i].output.Bytes())
		if !results[i].ok {
			failed++
		}
		if results[i].truncated {
			truncated++
		}
	}
	s.logger.Info("checked %d file(s), %d failed", len(paths), failed)
	if truncated > 0 {
		s.logger.Warn("%d file(s) stopped after %d errors, raise MaxErrors to see the rest", truncated, s.cfg.MaxErrors)
	}

	if failed > 0 {
		return cli.NewExitError("", 1)
	}
	return nil
}

func watchFile(ctx *cli.Context) error {
	path, err := singleFile(ctx)
	if err != nil {
		return err
	}
	s, err := loadSettings(ctx)
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Editors often replace files instead of writing them, so watch the
	// directory and filter by name.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	check := func() {
		if res, err := s.frontEnd(path, os.Stderr); err != nil {
			s.logger.Error("%v", err)
		} else if res.crate != nil {
			fmt.Fprintf(os.Stderr, "%s: ok\n", path)
		}
	}

	check()
	s.logger.Info("watching %s", path)

	for {
		select {
		case <-sigCtx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Name != abs || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			s.logger.Debug("%s: %s", ev.Name, ev.Op)
			check()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watch: %v", err)
		}
	}
}

func printVersion(ctx *cli.Context) error {
	return mcli.PrintVersion(os.Stdout, "murustc", ctx.Bool(jsonFlag.Name))
}

// Command murustc is the μRust front end driver.
package main

import (
	"fmt"
	"os"

	"gopkg.in/urfave/cli.v1"

	mcli "github.com/murust-lang/murust/internal/cli"
)

var (
	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
		Value: mcli.ConfigFileName,
	}
	colorFlag = cli.StringFlag{
		Name:  "color",
		Usage: "Colour diagnostics: auto, always or never",
	}
	maxErrorsFlag = cli.IntFlag{
		Name:  "max-errors",
		Usage: "Stop reporting after this many errors (0 = unlimited)",
	}
	denyWarningsFlag = cli.BoolFlag{
		Name:  "deny-warnings",
		Usage: "Treat warnings as errors",
	}
	verboseFlag = cli.BoolFlag{
		Name:  "verbose",
		Usage: "Log progress messages",
	}
	debugFlag = cli.BoolFlag{
		Name:  "debug",
		Usage: "Log debug messages",
	}
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "murustc"
	app.Usage = "the μRust compiler front end"
	app.Version = mcli.Version
	app.HideVersion = true
	app.Flags = []cli.Flag{
		configFileFlag,
		colorFlag,
		maxErrorsFlag,
		denyWarningsFlag,
		verboseFlag,
		debugFlag,
	}
	app.Commands = []cli.Command{
		lexCommand,
		parseCommand,
		checkCommand,
		watchCommand,
		versionCommand,
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		if coder, ok := err.(cli.ExitCoder); ok {
			if msg := err.Error(); msg != "" {
				fmt.Fprintln(os.Stderr, msg)
			}
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

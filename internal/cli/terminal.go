package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

// defaultWidth is used when the terminal width cannot be determined.
const defaultWidth = 100

// ColorEnabled resolves a colour mode for output written to f.
func ColorEnabled(mode string, f *os.File) (bool, error) {
	switch mode {
	case ColorAlways:
		return true, nil
	case ColorNever:
		return false, nil
	case ColorAuto, "":
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		return isTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid colour mode %q", mode)
	}
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// TerminalWidth returns the column count of the terminal attached to f, or
// 100 when f is not a terminal.
func TerminalWidth(f *os.File) int {
	if !isTerminal(f) {
		return defaultWidth
	}
	if w := terminalWidth(f); w > 0 {
		return w
	}
	return defaultWidth
}

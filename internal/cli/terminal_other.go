//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package cli

import "os"

func terminalWidth(*os.File) int { return 0 }

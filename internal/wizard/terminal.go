package wizard

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsTTY reports whether stdout is an interactive terminal.
func IsTTY() bool {
	return isTTY(os.Stdout.Fd())
}

// IsInputTTY reports whether stdin is an interactive terminal, which huh
// forms need.
func IsInputTTY() bool {
	return isTTY(os.Stdin.Fd())
}

func isTTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

package progress

import (
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether stdout is attached to an interactive terminal.
// Logger selection uses this to pick the TTY renderer over structured
// output.
func IsTTY() bool {
	return isTerminal(os.Stdout)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

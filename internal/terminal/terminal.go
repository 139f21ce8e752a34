// Package terminal answers questions about the controlling terminal.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// DefaultWidth is used when the width of the output cannot be determined.
const DefaultWidth = 80

// IsInteractive reports whether f is attached to a terminal. Anything that is
// not an *os.File (buffers, pipes wrapped by tests) is not interactive.
func IsInteractive(f any) bool {
	file, ok := f.(*os.File)
	if !ok || file == nil {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// Width returns the column count of the terminal behind f, or DefaultWidth.
func Width(f any) int {
	file, ok := f.(*os.File)
	if !ok || file == nil {
		return DefaultWidth
	}
	if width, _, err := term.GetSize(int(file.Fd())); err == nil && width > 0 {
		return width
	}
	return DefaultWidth
}

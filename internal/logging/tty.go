package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// colorEnabled reports whether ANSI colour codes should be written to w.
func colorEnabled(w io.Writer) bool {
	return colorAllowed(isTerminal(w))
}

// isTerminal reports whether w is backed by a terminal file descriptor.
func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// colorAllowed applies the colour environment conventions on top of tty.
// NO_COLOR and TERM=dumb always win. FORCE_COLOR turns colour on for
// captured output, such as a hook runner piping stderr.
func colorAllowed(tty bool) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	if v, ok := os.LookupEnv("FORCE_COLOR"); ok && v != "0" {
		return true
	}
	return tty
}

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// writer formats bitpart-bench's status output, falling back to plain
// ASCII when stdout is not a terminal (e.g. when output is piped or
// redirected in CI).
type writer struct {
	out    io.Writer
	useTTY bool
}

func newWriter(out io.Writer) *writer {
	useTTY := false
	if f, ok := out.(*os.File); ok {
		useTTY = isatty.IsTerminal(f.Fd())
	}
	return &writer{out: out, useTTY: useTTY}
}

func (w *writer) status(icon, msg string) {
	if w.useTTY && icon != "" {
		_, _ = fmt.Fprintf(w.out, "%s %s\n", icon, msg)
		return
	}
	_, _ = fmt.Fprintln(w.out, msg)
}

func (w *writer) statusf(icon, format string, args ...any) {
	w.status(icon, fmt.Sprintf(format, args...))
}

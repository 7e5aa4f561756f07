package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Logica ASCII banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct{ text, color string }{
		{"  _                _           ", "#34d399"},
		{" | |    ___   __ _(_) ___ __ _ ", "#2dd4bf"},
		{" | |   / _ \\ / _` | |/ __/ _` |", "#22d3ee"},
		{" | |__| (_) | (_| | | (_| (_| |", "#38bdf8"},
		{" |_____\\___/ \\__, |_|\\___\\__,_|", "#60a5fa"},
		{"             |___/             ", "#818cf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}

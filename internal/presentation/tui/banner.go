package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the startup banner and the running version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"   __ _ _ __ (_)_ __ ___   ___ / _|_ __ ___ | |_ ", "#818cf8"},
		{"  / _` | '_ \\| | '_ ` _ \\ / _ \\ |_| '_ ` _ \\| __|", "#a78bfa"},
		{" | (_| | | | | | | | | | |  __/  _| | | | | | |_ ", "#c084fc"},
		{"  \\__,_|_| |_|_|_| |_| |_|\\___|_| |_| |_| |_|\\__|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  "+version).Faint())
	fmt.Fprintln(w)
}

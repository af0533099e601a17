package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{"  ____            _             _ _   ", "#818cf8"},
	{" |  _ \\ ___  _ __| |_ _ __ __ _(_) |_ ", "#a78bfa"},
	{" | |_) / _ \\| '__| __| '__/ _` | | __|", "#c084fc"},
	{" |  __/ (_) | |  | |_| | | (_| | | |_ ", "#e879f9"},
	{" |_|   \\___/|_|   \\__|_|  \\__,_|_|\\__|", "#f472b6"},
}

// PrintBanner writes the ASCII banner followed by the version line.
func PrintBanner(w io.Writer, version string) {
	p := termenv.EnvColorProfile()

	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line.text).Foreground(p.Color(line.color)))
	}
	if version != "" {
		fmt.Fprintln(w, termenv.String(" v"+version).Faint())
	}
	fmt.Fprintln(w)
}

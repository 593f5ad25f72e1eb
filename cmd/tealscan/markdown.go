package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders md for the terminal, falling back to the raw text
// when no renderer can be built.
func printMarkdown(w io.Writer, md string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		fmt.Fprint(w, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(w, md)
		return
	}
	fmt.Fprint(w, out)
}

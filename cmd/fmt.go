package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// printMarkdown renders markdown for the terminal. When stdout is not a
// terminal (pipes, CI) the raw markdown is printed instead.
func printMarkdown(source string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println(source)
		return
	}
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		fmt.Println(source)
		return
	}
	out, err := r.Render(source)
	if err != nil {
		fmt.Println(source)
		return
	}
	fmt.Print(out)
}

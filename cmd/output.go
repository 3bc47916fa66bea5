package cmd

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// colors holds the color functions for command output.
type colors struct {
	Success func(format string, a ...interface{}) string
	Value   func(format string, a ...interface{}) string
}

// newColors disables colors for non-TTY outputs or when noColor is set.
func newColors(w io.Writer, disabled bool) colors {
	if disabled || !isTTY(w) {
		plain := color.New()
		plain.DisableColor()
		return colors{
			Success: plain.Sprintf,
			Value:   plain.Sprintf,
		}
	}

	success := color.New(color.FgGreen)
	value := color.New(color.FgCyan, color.Bold)
	success.EnableColor()
	value.EnableColor()

	return colors{
		Success: success.Sprintf,
		Value:   value.Sprintf,
	}
}

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Formatter applies semantic formatting to text.
type Formatter struct {
	attrs  []color.Attribute
	prefix string
	suffix string
}

// ForceColor overrides terminal detection. Nil restores detection.
var ForceColor *bool

// Sprint formats the arguments and returns the resulting string.
func (f Formatter) Sprint(a ...interface{}) string {
	return f.render(fmt.Sprint(a...))
}

// Sprintf formats according to a format specifier and returns the resulting string.
func (f Formatter) Sprintf(format string, a ...interface{}) string {
	return f.render(fmt.Sprintf(format, a...))
}

func (f Formatter) render(text string) string {
	if noColor() {
		return f.prefix + text + f.suffix
	}
	c := color.New(f.attrs...)
	// fatih/color decides from stdout; diagnostics are written to stderr.
	c.EnableColor()
	return c.Sprint(text)
}

// noColor returns true if color output should be disabled.
func noColor() bool {
	// Check NO_COLOR environment variable (https://no-color.org/).
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	if ForceColor != nil {
		return !*ForceColor
	}
	if os.Getenv("TERM") == "dumb" {
		return true
	}
	return !term.IsTerminal(int(os.Stderr.Fd()))
}

// Semantic formatters for different types of CLI output.
var (
	// Path formats file or directory paths.
	Path = Formatter{[]color.Attribute{color.FgYellow}, "", ""}

	// Success formats success indicators and messages.
	Success = Formatter{[]color.Attribute{color.FgGreen}, "", ""}

	// Error formats error indicators and messages.
	Error = Formatter{[]color.Attribute{color.FgRed}, "", ""}

	// Warning formats warning indicators and messages.
	Warning = Formatter{[]color.Attribute{color.FgYellow}, "", ""}

	// Info formats informational hints.
	Info = Formatter{[]color.Attribute{color.FgCyan}, "", ""}

	// Highlight formats emphasized user values like project names and modes.
	// Cyan with color, 'single quotes' without.
	Highlight = Formatter{[]color.Attribute{color.FgCyan}, "'", "'"}

	// Muted formats de-emphasized or secondary text.
	// Gray with color, (parentheses) without.
	Muted = Formatter{[]color.Attribute{color.FgHiBlack}, "(", ")"}
)

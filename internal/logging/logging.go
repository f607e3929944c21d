package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/PolarWolf314/projscan/internal/ui"
)

type Logger struct {
	Verbose bool
	Debug   bool

	// Writer receives all log lines. Nil means os.Stderr.
	Writer io.Writer
}

func (l Logger) out() io.Writer {
	if l.Writer != nil {
		return l.Writer
	}
	return os.Stderr
}

func (l Logger) Infof(msg string, args ...any) {
	if l.Verbose || l.Debug {
		fmt.Fprintf(l.out(), ui.Success.Sprint("[info] ")+msg+"\n", args...)
	}
}

func (l Logger) Debugf(msg string, args ...any) {
	if l.Debug {
		fmt.Fprintf(l.out(), ui.Info.Sprint("[debug] ")+msg+"\n", args...)
	}
}

func (l Logger) Warnf(msg string, args ...any) {
	fmt.Fprintf(l.out(), ui.Warning.Sprint("Warning: ")+msg+"\n", args...)
}

func (l Logger) Errorf(msg string, args ...any) {
	fmt.Fprintf(l.out(), ui.Error.Sprint("Error: ")+msg+"\n", args...)
}


package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	fatalColor   = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
)

// LogFatal logs a fatal error to stderr and exits.
func LogFatal(msg string, err error) {
	_, _ = fatalColor.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = warnColor.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// logSuccess reports a completed write on w.
func logSuccess(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, successColor.Sprintf(format, args...))
}

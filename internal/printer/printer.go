// Package printer writes the colored action lines shared by commands that
// change files.
package printer

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
)

// SetColor forces colored output on or off for every writer.
func SetColor(enabled bool) {
	color.NoColor = !enabled
}

// Action prints "[OK]  VERB detail" for performed actions and
// "[DRY] VERB detail" for previewed ones.
func Action(w io.Writer, dryRun bool, verb, format string, a ...any) {
	if dryRun {
		_, _ = yellow.Fprint(w, "[DRY]")
	} else {
		_, _ = green.Fprint(w, "[OK] ")
	}
	_, _ = fmt.Fprintf(w, " %s %s\n", verb, fmt.Sprintf(format, a...))
}

// Failure prints "[ERR] detail" in red.
func Failure(w io.Writer, format string, a ...any) {
	_, _ = red.Fprint(w, "[ERR]")
	_, _ = fmt.Fprintf(w, " %s\n", fmt.Sprintf(format, a...))
}

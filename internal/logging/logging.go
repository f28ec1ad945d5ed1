// Package logging configures the process-wide logger: verbosity
// filtering and, when stderr is a terminal, severity coloring.
package logging

import (
	"bytes"
	"io"
	"log"
	"os"
	"strings"

	"golang.org/x/term"
)

// Verbosity levels. Default shows warnings and errors plus normal
// output; Quiet drops everything below warning; Debug and Trace enable
// the debugf call sites and add timestamps.
const (
	Silent = iota
	Quiet
	Default
	Debug
	Trace
)

const (
	colorReset  = "\x1b[0m"
	colorYellow = "\x1b[33m"
	colorRed    = "\x1b[31m"
	colorDim    = "\x1b[2m"
)

// Setup installs the logging configuration for the given verbosity and
// reports whether debug output should be emitted by callers.
func Setup(verbosity int) bool {
	flags := 0
	if verbosity >= Debug {
		flags = log.Ldate | log.Ltime | log.Lmicroseconds
	}
	log.SetFlags(flags)
	log.SetOutput(&levelWriter{
		out:       os.Stderr,
		verbosity: verbosity,
		colorize:  term.IsTerminal(int(os.Stderr.Fd())),
	})
	return verbosity >= Debug
}

// levelWriter classifies each log line by the severity token the call
// sites embed ("warning:", "error:", "debug:") and filters or colors
// it accordingly.
type levelWriter struct {
	out       io.Writer
	verbosity int
	colorize  bool
}

func (w *levelWriter) Write(p []byte) (int, error) {
	if w.verbosity <= Silent {
		return len(p), nil
	}

	line := string(p)
	var color string
	switch {
	case strings.Contains(line, "error:"):
		color = colorRed
	case strings.Contains(line, "warning:"):
		color = colorYellow
	case strings.Contains(line, "debug:"):
		if w.verbosity < Debug {
			return len(p), nil
		}
		color = colorDim
	default:
		if w.verbosity <= Quiet {
			return len(p), nil
		}
	}

	if !w.colorize || color == "" {
		return w.out.Write(p)
	}

	var buf bytes.Buffer
	buf.WriteString(color)
	buf.WriteString(strings.TrimSuffix(line, "\n"))
	buf.WriteString(colorReset)
	buf.WriteByte('\n')
	if _, err := w.out.Write(buf.Bytes()); err != nil {
		return 0, err
	}
	return len(p), nil
}

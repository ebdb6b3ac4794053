// Package diag is the diagnostic logger (spec component C7): it renders
// location-anchored errors, warnings, notes, and extra-verbosity traces
// with a source-line excerpt and a caret/tilde underline, and tracks
// whether any ERROR was emitted so the pipeline can fail-collect rather
// than abort on the first problem.
//
// The rendering format is grounded on the original lc3tools
// AssemblerLogger::xprintfMessage (backend/src/logger.h): a bold
// "filename:row+1:col+1: " prefix, the leveled "label: message" line, the
// verbatim source line, then a caret at the token's column with tildes
// spanning length-1. Colorization is delegated to an external printer per
// spec §4.7, so this package only ever emits plain text.
package diag

import (
	"fmt"
	"io"
	"strings"
)

// Level is one of the four leveled message kinds spec §4.7 requires.
type Level int

const (
	EXTRA Level = iota
	NOTE
	WARNING
	ERROR
)

func (l Level) label() string {
	switch l {
	case EXTRA:
		return "extra"
	case NOTE:
		return "note"
	case WARNING:
		return "warning"
	case ERROR:
		return "error"
	default:
		return "unknown"
	}
}

// Message is one rendered diagnostic.
type Message struct {
	Level    Level
	Row      int // 0-based
	Column   int // 0-based
	Length   int
	LineText string
	Text     string
}

// Log collects diagnostics for one assembly invocation.
type Log struct {
	Filename string
	Verbose  bool // when false, EXTRA-level messages are discarded
	messages []Message
	hasError bool
}

// NewLog creates a Log for filename.
func NewLog(filename string) *Log {
	return &Log{Filename: filename}
}

func (lg *Log) add(level Level, row, col, length int, lineText, format string, args ...any) {
	if level == EXTRA && !lg.Verbose {
		return
	}
	if level == ERROR {
		lg.hasError = true
	}
	lg.messages = append(lg.messages, Message{
		Level:    level,
		Row:      row,
		Column:   col,
		Length:   length,
		LineText: lineText,
		Text:     fmt.Sprintf(format, args...),
	})
}

// Errorf records an ERROR at the given source position.
func (lg *Log) Errorf(row, col, length int, lineText, format string, args ...any) {
	lg.add(ERROR, row, col, length, lineText, format, args...)
}

// Warningf records a WARNING.
func (lg *Log) Warningf(row, col, length int, lineText, format string, args ...any) {
	lg.add(WARNING, row, col, length, lineText, format, args...)
}

// Notef records a NOTE.
func (lg *Log) Notef(row, col, length int, lineText, format string, args ...any) {
	lg.add(NOTE, row, col, length, lineText, format, args...)
}

// Extraf records an EXTRA-verbosity trace message.
func (lg *Log) Extraf(row, col, length int, lineText, format string, args ...any) {
	lg.add(EXTRA, row, col, length, lineText, format, args...)
}

// HasErrors reports whether any ERROR-level diagnostic has been recorded.
func (lg *Log) HasErrors() bool { return lg.hasError }

// Messages returns the recorded diagnostics in emission order.
func (lg *Log) Messages() []Message { return lg.messages }

// WriteTo renders every recorded diagnostic to w in the §4.7 format.
func (lg *Log) WriteTo(w io.Writer) error {
	for _, m := range lg.messages {
		if err := writeMessage(w, lg.Filename, m); err != nil {
			return err
		}
	}
	return nil
}

func writeMessage(w io.Writer, filename string, m Message) error {
	if _, err := fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", filename, m.Row+1, m.Column+1, m.Level.label(), m.Text); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n", m.LineText); err != nil {
		return err
	}
	length := m.Length
	if length < 1 {
		length = 1
	}
	underline := strings.Repeat(" ", m.Column) + "^" + strings.Repeat("~", length-1)
	_, err := fmt.Fprintf(w, "%s\n", underline)
	return err
}

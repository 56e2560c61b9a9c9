// Package report accumulates step failures. Only the first error code is
// remembered for the final exit status; every failure is still printed as it
// occurs so a best-effort run shows everything that went wrong.
package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/conn-castle/limine-install/internal/exitcode"
	"github.com/conn-castle/limine-install/internal/messages"
)

// Log records step results for one invocation.
type Log struct {
	out   io.Writer
	first *exitcode.Error
}

// New returns a Log writing diagnostics to out.
func New(out io.Writer) *Log {
	return &Log{out: out}
}

// Record prints err as a red diagnostic and keeps it if it is the first
// failure of the run. A nil err is ignored.
func (l *Log) Record(err error) {
	if err == nil {
		return
	}

	_, _ = fmt.Fprintln(l.out, color.RedString("error: %v", err))

	if l.first != nil {
		return
	}
	var coded *exitcode.Error
	if errors.As(err, &coded) {
		l.first = coded
	} else {
		l.first = &exitcode.Error{Code: 1, Err: err}
	}
}

// ExitCode returns the code of the first recorded failure, or 0.
func (l *Log) ExitCode() exitcode.Code {
	if l.first == nil {
		return exitcode.OK
	}
	return l.first.Code
}

// Summarize prints the final colorized success or failure line. successMsg is
// shown in green on a clean run; otherwise the first failure is repeated in
// red together with the exit status.
func (l *Log) Summarize(successMsg string) {
	if l.first == nil {
		_, _ = fmt.Fprintln(l.out, color.GreenString(successMsg))
		return
	}
	_, _ = fmt.Fprintln(l.out, color.RedString(messages.RunFailedFmt, l.first.Error(), l.first.Code))
}

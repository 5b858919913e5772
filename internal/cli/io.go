package cli

import (
	"fmt"
	"io"

	"github.com/notexe/remind/internal/ui"
)

// IO routes command output: results to stdout, warnings and errors to
// stderr, both styled by the same formatter.
type IO struct {
	out    io.Writer
	errOut io.Writer
	fmt    *ui.Formatter
}

// NewIO creates a new IO instance.
func NewIO(out, errOut io.Writer, f *ui.Formatter) *IO {
	return &IO{out: out, errOut: errOut, fmt: f}
}

// Println writes to stdout.
func (o *IO) Println(a ...any) {
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted output to stdout.
func (o *IO) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// ErrPrintln writes to stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

func (o *IO) Success(format string, a ...any) {
	o.Println(o.fmt.Success(fmt.Sprintf(format, a...)))
}

func (o *IO) Info(format string, a ...any) {
	o.Println(o.fmt.Info(fmt.Sprintf(format, a...)))
}

// Warn reports a problem that does not stop the command.
func (o *IO) Warn(format string, a ...any) {
	o.ErrPrintln(o.fmt.Warning(fmt.Sprintf(format, a...)))
}

// Error reports the failure that ends the command.
func (o *IO) Error(err error) {
	o.ErrPrintln(o.fmt.Error(err))
}

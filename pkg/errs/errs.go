// Package errs holds the single error kind returned by the preprocessing
// components. Every failure, whether loading, building, fitting,
// transforming or persisting, is reported as an *Error carrying the
// underlying cause, the operation that failed and where it was wrapped.
package errs

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
)

// Error is a failure of a named operation.
type Error struct {
	Op       string // operation that failed, e.g. "transform.run"
	Context  string // optional detail, e.g. the file being read
	Location string // file:line where the failure was wrapped
	Err      error  // underlying cause, carrying a stack trace
}

// Wrap returns err as an *Error for op. It returns nil for a nil err and
// returns err unchanged when it already is an *Error.
func Wrap(err error, op string, context ...string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	loc := "unknown"
	if _, file, line, ok := runtime.Caller(1); ok {
		loc = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}
	ctx := ""
	if len(context) > 0 {
		ctx = context[0]
		for _, c := range context[1:] {
			ctx += ", " + c
		}
	}
	return &Error{Op: op, Context: ctx, Location: loc, Err: errors.WithStack(err)}
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Context != "" {
		msg += " (" + e.Context + ")"
	}
	return fmt.Sprintf("%s at %s: %v", msg, e.Location, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Format prints the cause's stack trace with %+v.
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			io.WriteString(s, e.Error())
			fmt.Fprintf(s, "\n%+v", e.Err)
			return
		}
		fallthrough
	case 's':
		io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

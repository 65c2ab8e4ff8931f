package errs

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/leonid6372/stock-trader/pkg/log"
	"go.uber.org/zap"
)

const (
	traceSkip     = 3
	trackPrealloc = 50
)

type sFrame struct {
	filename string
	method   string
	line     int
}

type stack []sFrame

func (s stack) String() string {
	var b strings.Builder
	for i, f := range s {
		if i > 0 {
			b.WriteString(" <- ")
		}
		fmt.Fprintf(&b, "%s (%s:%d)", f.method, f.filename, f.line)
	}

	return b.String()
}

type errorWithTrace struct {
	error

	trace stack
}

func (e *errorWithTrace) Unwrap() error { return e.error }

// NewStack attaches the caller's stack to err and logs it. Errors that already
// carry a trace are returned as is.
func NewStack(err error) error {
	if err == nil {
		return nil
	}

	var errWT *errorWithTrace

	// Add trace only once
	if errors.As(err, &errWT) {
		return err
	}

	stack := stackTrace(traceSkip)

	log.Error(err.Error(), zap.Stringer("trace", stack))

	return &errorWithTrace{
		error: err,
		trace: stack,
	}
}

// Trace returns the stack recorded by NewStack, or "" when err has none.
func Trace(err error) string {
	var errWT *errorWithTrace
	if errors.As(err, &errWT) {
		return errWT.trace.String()
	}

	return ""
}

func stackTrace(skip int) stack {
	pc := make([]uintptr, trackPrealloc)
	n := runtime.Callers(skip, pc)
	pc = pc[:n]

	frames := runtime.CallersFrames(pc)
	stack := make(stack, 0, n)

	for {
		frame, more := frames.Next()

		stack = append(stack, sFrame{filename: frame.File, method: frame.Function, line: frame.Line})

		if !more {
			break
		}
	}

	return stack
}

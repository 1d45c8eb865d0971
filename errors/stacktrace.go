package errors

import (
	"fmt"
	"io"
	"path"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// stackTrace returns the first found stack trace frame carried by given error
// or any wrapped error. It returns nil if no stack trace is found.
func stackTrace(err error) errors.StackTrace {
	type stackTracer interface {
		StackTrace() errors.StackTrace
	}

	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return nil
		}
	}
}

// Format implements fmt.Formatter. %+v prints the full stack trace of the
// deepest wrapped error while %v appends the location the error was created
// at.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	// normal output here....
	if verb != 'v' {
		fmt.Fprint(s, e.Error())
		return
	}
	// work with the stack trace... whole or part
	if s.Flag('+') {
		fmt.Fprintf(s, "%+v\n", stackTrace(e))
		fmt.Fprint(s, e.Error())
		return
	}
	fmt.Fprint(s, e.Error())
	writeSimpleFrame(s, trimInternal(stackTrace(e)))
}

// trimInternal removes all frames that are part of this package or the
// runtime, so the first frame points at the caller that created the error.
func trimInternal(st errors.StackTrace) errors.StackTrace {
	// trim our internal parts here
	// manual error creation, or runtime for caught panics
	for len(st) > 0 && matchesFile(st[0], ownFiles[0], ownFiles[1], "/pkg/errors/", "/runtime/") {
		st = st[1:]
	}
	// trim out outer wrappers (runtime.goexit and test library if present)
	for l := len(st) - 1; l > 0 && matchesFile(st[l], "runtime/", "src/testing/"); l-- {
		st = st[:l]
	}
	return st
}

// ownFiles are the source files of this package that create errors.
var ownFiles = func() [2]string {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	return [2]string{dir + "/errors.go", dir + "/field.go"}
}()

func writeSimpleFrame(s io.Writer, stack errors.StackTrace) {
	if len(stack) == 0 {
		return
	}
	file, line := fileLine(stack[0])
	// cut file at "github.com/"
	// TODO: generalize better for other hosts?
	chunks := strings.SplitN(file, "github.com/", 2)
	if len(chunks) == 2 {
		file = chunks[1]
	}
	fmt.Fprintf(s, " [%s:%d]", file, line)
}

func matchesFile(f errors.Frame, substrs ...string) bool {
	file, _ := fileLine(f)
	for _, sub := range substrs {
		if strings.Contains(file, sub) {
			return true
		}
	}
	return false
}

func fileLine(f errors.Frame) (string, int) {
	// this looks a bit like magic, but follows example here:
	// https://github.com/pkg/errors/blob/v0.8.1/stack.go#L14-L27
	// as this is where we get the Frames
	pc := uintptr(f) - 1
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown", 0
	}
	return fn.FileLine(pc)
}

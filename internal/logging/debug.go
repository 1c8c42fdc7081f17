package logging

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
)

// Output is where warnings and errors are written. Tests may replace it.
var Output io.Writer = os.Stderr

var verbose atomic.Bool

// SetVerbose turns debug output on regardless of TASKBOARD_DEBUG
func SetVerbose(on bool) {
	verbose.Store(on)
}

// DebugEnabled returns true if debug mode is enabled via TASKBOARD_DEBUG environment variable or SetVerbose
func DebugEnabled() bool {
	return verbose.Load() || os.Getenv("TASKBOARD_DEBUG") != ""
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintf(Output, "debug: "+format+"\n", args...)
	}
}

// Warnf always prints a warning
func Warnf(format string, args ...interface{}) {
	fmt.Fprintf(Output, "warning: "+format+"\n", args...)
}

// Errorf always prints an error line. It does not return an error value.
func Errorf(format string, args ...interface{}) {
	fmt.Fprintf(Output, "error: "+format+"\n", args...)
}

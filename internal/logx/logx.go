// Package logx is the edge-only logger. Query functions in internal/db and
// its downstream layers never log: a pure function that logs on every call
// defeats memoization and makes revision-stability impossible to reason
// about. Only adapters (internal/ide) and hosts (cmd/wgslcheck) log -- the
// analysis packages stay silent, and logging lives at the plain stdlib
// `log.Printf` edges instead.
package logx

import (
	"io"
	"log"
	"os"
)

var std = log.New(os.Stderr, "wgsl-analyzer: ", 0)

// SetOutput redirects the default logger, e.g. to silence it in tests.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

func Printf(format string, args ...interface{}) {
	std.Printf(format, args...)
}

func Println(args ...interface{}) {
	std.Println(args...)
}

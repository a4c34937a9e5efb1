// Command wgslcheck is the thin batch-checking host: point it at one or
// more `.wgsl` files (or directories of them) and it prints every
// diagnostic the core produces, the way an editor's problems panel would,
// without speaking LSP. os.Args is parsed by hand into a small set of
// subcommands, os.Exit(1) on any failure, and a top-level panic recovers
// into a one-line "this is a bug" message instead of a Go stack trace.
package main

import (
	"fmt"
	"os"

	"github.com/wgsl-analyzer/wgsl-analyzer/internal/config"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("WGSLCHECK_DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "this is a bug; rerun with WGSLCHECK_DEBUG=1 for a stack trace")
			os.Exit(1)
		}
	}()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "check":
		os.Exit(runCheck(os.Args[2:]))
	case "dump-syntax":
		os.Exit(runDumpSyntax(os.Args[2:]))
	case "-help", "--help", "help":
		printUsage()
	case "-version", "--version", "version":
		fmt.Println(config.Version)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`wgslcheck - batch WGSL diagnostics

Usage:
  wgslcheck check [-c manifest.yaml] [-D NAME]... <file-or-dir>...
  wgslcheck dump-syntax <file>
  wgslcheck version

check runs the full preprocess/parse/resolve/infer/validate pipeline over
every named .wgsl file (directories are scanned non-recursively) and prints
one line per diagnostic. Exit status is 1 if any file has an error.

-D NAME activates a shader-def flag (repeatable), as if "#ifdef NAME" were
true; -c loads a manifest (source roots, default shader defs, custom
imports) the way an editor integration would.`)
}

package main

import (
	"fmt"
	"os"

	"github.com/wgsl-analyzer/wgsl-analyzer/internal/ide"
)

// runDumpSyntax implements `wgslcheck dump-syntax`, printing the raw parse
// tree as JSON for debugging the parser itself.
func runDumpSyntax(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "dump-syntax: expected exactly one file")
		return 1
	}
	text, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "dump-syntax: %s\n", err)
		return 1
	}
	a := ide.Analyze(args[0], string(text), nil, nil)
	fmt.Println(ide.DumpSyntaxTree(string(text), a.Root))
	return 0
}

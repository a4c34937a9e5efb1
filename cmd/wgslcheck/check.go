package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wgsl-analyzer/wgsl-analyzer/internal/config"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/diagnostics"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/ide"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/logx"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/span"
)

// runCheck implements `wgslcheck check`. It returns the process exit code
// rather than calling os.Exit itself, so main's deferred panic recovery
// still runs.
func runCheck(args []string) int {
	manifestPath := ""
	var shaderDefs []string
	var paths []string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-c", "--config":
			i++
			if i >= len(args) {
				fmt.Fprintln(os.Stderr, "check: -c requires a manifest path")
				return 1
			}
			manifestPath = args[i]
		case "-D":
			i++
			if i >= len(args) {
				fmt.Fprintln(os.Stderr, "check: -D requires a shader-def name")
				return 1
			}
			shaderDefs = append(shaderDefs, args[i])
		default:
			paths = append(paths, args[i])
		}
	}

	defines := map[string]struct{}{}
	imports := map[string]string{}
	if manifestPath != "" {
		m, err := config.LoadManifest(manifestPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "check: %s\n", err)
			return 1
		}
		defines = m.ShaderDefSet()
		for k, v := range m.CustomImports {
			imports[k] = v
		}
	}
	for _, name := range shaderDefs {
		defines[name] = struct{}{}
	}

	files, err := collectSourceFiles(paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "check: %s\n", err)
		return 1
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "check: no .wgsl files named")
		return 1
	}

	color := stdoutSupportsColor()
	hasErrors := false
	for _, path := range files {
		text, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", path, err)
			hasErrors = true
			continue
		}
		logx.Printf("checking %s", path)

		a := ide.Analyze(path, string(text), defines, imports)
		ds := a.Diagnostics()
		li := span.NewLineIndex(string(text))
		for _, d := range ds {
			printDiagnostic(path, li, d, color)
			if d.Severity == diagnostics.SeverityError {
				hasErrors = true
			}
		}
	}

	if hasErrors {
		return 1
	}
	return 0
}

// collectSourceFiles expands paths: a directory contributes every
// recognized source file directly inside it (non-recursive, matching
// config.Manifest's flat SourceRoots shape); a file is taken as-is.
func collectSourceFiles(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("read dir %s: %w", p, err)
		}
		for _, e := range entries {
			if e.IsDir() || !config.HasSourceExt(e.Name()) {
				continue
			}
			out = append(out, filepath.Join(p, e.Name()))
		}
	}
	return out, nil
}

func printDiagnostic(path string, li *span.LineIndex, d diagnostics.Diagnostic, color bool) {
	lc := li.LineCol(d.Range.Start)
	sev := d.Severity.String()
	if color {
		sev = colorizeSeverity(d.Severity, sev)
	}
	fmt.Printf("%s:%d:%d: %s[%s]: %s\n", path, lc.Line, lc.Column, sev, d.Code, d.Message)
	for _, rel := range d.Related {
		relLC := li.LineCol(rel.Range.Start)
		fmt.Printf("    %s:%d:%d: note: %s\n", path, relLC.Line, relLC.Column, rel.Message)
	}
}

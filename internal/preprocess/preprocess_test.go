package preprocess_test

import (
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/wgsl-analyzer/wgsl-analyzer/internal/preprocess"
)

func TestIfdefRetainsSatisfiedBlock(t *testing.T) {
	src := "fn a() {}\n#ifdef FEATURE\nfn b() {}\n#endif\nfn c() {}\n"
	res := preprocess.Process(src, map[string]struct{}{"FEATURE": {}}, nil)

	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
	if !strings.Contains(res.Processed, "fn b() {}") {
		t.Fatalf("expected FEATURE block retained, got %q", res.Processed)
	}
	if len(res.Unconfigured) != 0 {
		t.Fatalf("expected no unconfigured regions when the flag is active, got %v", res.Unconfigured)
	}
}

func TestIfdefExcisesUnsatisfiedBlockAndRecordsRange(t *testing.T) {
	src := "fn a() {}\n#ifdef FEATURE\nfn b() {}\n#endif\nfn c() {}\n"
	res := preprocess.Process(src, map[string]struct{}{}, nil)

	if strings.Contains(res.Processed, "fn b() {}") {
		t.Fatalf("expected FEATURE block excised, got %q", res.Processed)
	}
	if !strings.Contains(res.Processed, "fn a() {}") || !strings.Contains(res.Processed, "fn c() {}") {
		t.Fatalf("expected surrounding code retained, got %q", res.Processed)
	}
	if len(res.Unconfigured) != 1 || res.Unconfigured[0].Flag != "FEATURE" {
		t.Fatalf("expected one unconfigured region for FEATURE, got %v", res.Unconfigured)
	}
}

func TestIfndefElseBranches(t *testing.T) {
	src := "#ifndef FEATURE\nfn a() {}\n#else\nfn b() {}\n#endif\n"
	res := preprocess.Process(src, map[string]struct{}{"FEATURE": {}}, nil)

	if strings.Contains(res.Processed, "fn a() {}") {
		t.Fatalf("ifndef branch should be excised when FEATURE is defined: %q", res.Processed)
	}
	if !strings.Contains(res.Processed, "fn b() {}") {
		t.Fatalf("else branch should be retained when FEATURE is defined: %q", res.Processed)
	}
}

func TestImportSubstitution(t *testing.T) {
	src := "fn a() {}\n#import SNIPPET\nfn c() {}\n"
	res := preprocess.Process(src, nil, map[string]string{"SNIPPET": "fn b() {}\n"})

	if !strings.Contains(res.Processed, "fn b() {}") {
		t.Fatalf("expected snippet substituted, got %q", res.Processed)
	}
	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
}

func TestImportCycleDetected(t *testing.T) {
	src := "#import A\n"
	imports := map[string]string{
		"A": "#import B\n",
		"B": "#import A\n",
	}
	res := preprocess.Process(src, nil, imports)

	if len(res.Diagnostics) == 0 {
		t.Fatalf("expected an import-cycle diagnostic")
	}
}

func TestUnknownImportReported(t *testing.T) {
	res := preprocess.Process("#import MISSING\n", nil, map[string]string{})
	if len(res.Diagnostics) != 1 {
		t.Fatalf("expected exactly one diagnostic for an unknown import, got %v", res.Diagnostics)
	}
}

func TestTranslateRangeRoundTripsNormalRegion(t *testing.T) {
	src := "fn a() {}\n#ifdef FEATURE\nfn b() {}\n#endif\nfn c() {}\n"
	res := preprocess.Process(src, map[string]struct{}{}, nil)

	idx := strings.Index(res.Processed, "fn c")
	if idx < 0 {
		t.Fatalf("expected fn c present in processed text")
	}
	start := res.Translator.TranslateStart(uint32(idx))
	origIdx := strings.Index(src, "fn c")
	if int(start) != origIdx {
		t.Fatalf("translate_start(%d) = %d, want %d", idx, start, origIdx)
	}
}

// fixture is one golden scenario unpacked from a txtar archive: a source
// file, an optional list of active shader defines, a set of named import
// snippets, and the expected processed output.
type fixture struct {
	src     string
	defines map[string]struct{}
	imports map[string]string
	want    string
}

func loadFixture(t *testing.T, path string) fixture {
	t.Helper()
	arc, err := txtar.ParseFile(path)
	if err != nil {
		t.Fatalf("parsing txtar fixture %s: %v", path, err)
	}
	f := fixture{defines: map[string]struct{}{}, imports: map[string]string{}}
	for _, file := range arc.Files {
		switch {
		case file.Name == "src.wgsl":
			f.src = string(file.Data)
		case file.Name == "want.wgsl":
			f.want = string(file.Data)
		case file.Name == "defines":
			for _, line := range strings.Split(strings.TrimSpace(string(file.Data)), "\n") {
				line = strings.TrimSpace(line)
				if line != "" {
					f.defines[line] = struct{}{}
				}
			}
		case strings.HasPrefix(file.Name, "imports/"):
			key := strings.TrimPrefix(file.Name, "imports/")
			f.imports[key] = string(file.Data)
		default:
			t.Fatalf("fixture %s: unrecognized archive entry %q", path, file.Name)
		}
	}
	if f.src == "" {
		t.Fatalf("fixture %s: missing src.wgsl entry", path)
	}
	return f
}

// TestGoldenFixtures runs every testdata/*.txtar archive through Process
// and compares the result against its want.wgsl entry. Packing a whole
// multi-file scenario (source, import snippets, active defines, expected
// output) into one golden file keeps each scenario self-contained instead
// of spreading it across several testdata fixtures.
func TestGoldenFixtures(t *testing.T) {
	paths, err := filepath.Glob("testdata/*.txtar")
	if err != nil {
		t.Fatalf("globbing testdata fixtures: %v", err)
	}
	if len(paths) == 0 {
		t.Fatalf("expected at least one testdata/*.txtar fixture")
	}
	for _, path := range paths {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			f := loadFixture(t, path)
			res := preprocess.Process(f.src, f.defines, f.imports)
			if len(res.Diagnostics) != 0 {
				t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
			}
			if res.Processed != f.want {
				t.Fatalf("processed output mismatch\n got: %q\nwant: %q", res.Processed, f.want)
			}
		})
	}
}

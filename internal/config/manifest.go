package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is the optional `wgsl-analyzer.yaml` project file. It is not
// consumed by any query directly (the query database's inputs are set by the
// embedding IDE/VFS layer) -- it is the format `cmd/wgslcheck` and similar
// thin hosts use to seed those inputs, decoded the same way a host's own
// project config file would be.
type Manifest struct {
	// SourceRoots lists source directories. It is decoded but not read by
	// anything in this module; cmd/wgslcheck checks the files and
	// directories named on its command line.
	SourceRoots []string `yaml:"source_roots"`

	// ShaderDefs are the `#ifdef` flags active by default.
	ShaderDefs []string `yaml:"shader_defs"`

	// CustomImports maps an `#import` key to the literal snippet text that
	// is substituted for it; values are not read as file paths.
	CustomImports map[string]string `yaml:"custom_imports"`
}

// LoadManifest reads and decodes a manifest file. A missing file is not an
// error: callers fall back to an empty Manifest (no shader defs, no custom
// imports), matching the query database's input defaults.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("config: parse manifest %s: %w", path, err)
	}
	return &m, nil
}

// ShaderDefSet converts the manifest's flat list into the set shape the
// query database's `shader_defs` input slot expects.
func (m *Manifest) ShaderDefSet() map[string]struct{} {
	set := make(map[string]struct{}, len(m.ShaderDefs))
	for _, name := range m.ShaderDefs {
		set[name] = struct{}{}
	}
	return set
}

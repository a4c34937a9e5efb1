package config

// Version is the current wgsl-analyzer core version.
var Version = "0.1.0"

const SourceFileExt = ".wgsl"

// SourceFileExtensions are all recognized shader source extensions.
var SourceFileExtensions = []string{".wgsl", ".wgs"}

// TrimSourceExt removes any recognized source extension from a filename.
// Returns the original string if no extension matches.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt returns true if the path ends with any recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// IsTestMode is a mode flag for running under `go test`. It defaults to
// false; nothing in this module sets or reads it.
var IsTestMode = false

// Default WGSL address spaces, used by internal/validate.
const (
	AddressSpaceFunction  = "function"
	AddressSpacePrivate   = "private"
	AddressSpaceWorkgroup = "workgroup"
	AddressSpaceUniform   = "uniform"
	AddressSpaceStorage   = "storage"
	AddressSpaceHandle    = "handle"
)

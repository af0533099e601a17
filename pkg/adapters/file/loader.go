package file

import (
	"path/filepath"
	"strings"

	"github.com/aretw0/portrait/pkg/ports"
)

// NewLoader picks the loader matching the file extension: .yaml and .yml
// are read as YAML, anything else as CSV.
func NewLoader(path string, opts ...Option) ports.GraphLoader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return NewYAMLLoader(path, opts...)
	default:
		return NewCSVLoader(path, opts...)
	}
}

package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// ErrUnsupportedFormat is returned for job files with an unknown extension.
var ErrUnsupportedFormat = errors.New("batch: unsupported job file format")

// Job is one formula to evaluate. Vals may be relaxed or JSON text, or a
// table of numbers.
type Job struct {
	Name    string      `json:"name" yaml:"name" toml:"name"`
	Formula string      `json:"formula" yaml:"formula" toml:"formula"`
	Params  []string    `json:"params" yaml:"params" toml:"params"`
	Vals    interface{} `json:"vals" yaml:"vals" toml:"vals"`
}

// File is the top level of a job file.
type File struct {
	Jobs []Job `json:"jobs" yaml:"jobs" toml:"jobs"`
}

// Format names a job file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFor picks the encoding from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// LoadFile reads and decodes a job file.
func LoadFile(path string) ([]Job, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}
	return Decode(data, format)
}

// Decode parses job file contents. Jobs without a name are named by position.
func Decode(data []byte, format Format) ([]Job, error) {
	var file File
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &file)
	case FormatTOML:
		err = toml.Unmarshal(data, &file)
	case FormatJSON:
		err = sonic.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s job file: %w", format, err)
	}

	for i := range file.Jobs {
		if file.Jobs[i].Name == "" {
			file.Jobs[i].Name = fmt.Sprintf("job-%d", i+1)
		}
	}
	return file.Jobs, nil
}

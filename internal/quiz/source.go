package quiz

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type Format string

const (
	FormatAuto   Format = "auto"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatText   Format = "text"
	FormatSQLite Format = "sqlite"
)

// ParseFormat validates a user supplied format name. The empty string is
// FormatAuto.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", string(FormatAuto):
		return FormatAuto, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatYAML), "yml":
		return FormatYAML, nil
	case string(FormatText), "txt":
		return FormatText, nil
	case string(FormatSQLite), "db":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("unknown bank format %q", name)
	}
}

// DetectFormat resolves FormatAuto from the file extension. Unknown
// extensions are read as the delimited text format.
func DetectFormat(path string, format Format) Format {
	if format != "" && format != FormatAuto {
		return format
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatText
	}
}

// FileSource loads a JSON, YAML or text bank from disk.
type FileSource struct {
	Path   string
	Format Format
}

func (s FileSource) Load(_ context.Context, constraints Constraints) (Result, error) {
	format := DetectFormat(s.Path, s.Format)

	var decode func(io.Reader, Constraints) (Result, error)
	switch format {
	case FormatJSON:
		decode = LoadJSON
	case FormatYAML:
		decode = LoadYAML
	case FormatText:
		decode = LoadText
	default:
		return SourceFailure(nil, ErrSourceEmptyOrMalformed, fmt.Sprintf("format %q is not a file format", format))
	}

	file, err := os.Open(s.Path)
	if err != nil {
		return SourceFailure(nil, ErrSourceUnavailable, fmt.Sprintf("unable to open %s: %v", s.Path, err))
	}
	defer file.Close()

	return decode(file, constraints)
}

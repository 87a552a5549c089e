package seed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for files that are neither YAML nor JSON.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Format identifies a record file encoding.
type Format string

// Supported file formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: .yaml, .yml, .json)", ErrUnsupportedFormat, ext)
	}
}

// decode strictly decodes data into v. Unknown fields are rejected so typos
// in hand-written files surface instead of silently dropping data.
func decode(data []byte, format Format, v any) error {
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return nil
}

// isList reports whether the document's top-level value is a sequence.
func isList(data []byte, format Format) (bool, error) {
	switch format {
	case FormatYAML:
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return false, fmt.Errorf("failed to parse YAML: %w", err)
		}
		if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
			return node.Content[0].Kind == yaml.SequenceNode, nil
		}
		return node.Kind == yaml.SequenceNode, nil
	case FormatJSON:
		trimmed := bytes.TrimSpace(data)
		return len(trimmed) > 0 && trimmed[0] == '[', nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// DecodeRecords decodes a document holding either one record or a list of
// records of type R.
func DecodeRecords[R any](data []byte, format Format) ([]R, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("file is empty")
	}

	list, err := isList(data, format)
	if err != nil {
		return nil, err
	}
	if list {
		var records []R
		if err := decode(data, format, &records); err != nil {
			return nil, err
		}
		return records, nil
	}

	var record R
	if err := decode(data, format, &record); err != nil {
		return nil, err
	}
	return []R{record}, nil
}

// ReadRecords reads and decodes a record file. The format comes from the
// file extension.
func ReadRecords[R any](path string) ([]R, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return DecodeRecords[R](data, format)
}

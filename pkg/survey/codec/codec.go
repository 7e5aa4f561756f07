// Package codec reads and writes survey documents as JSON or YAML.
//
// Both formats share one layout: pages holding elements (questions and nested
// panels), each question with optional columns, choices and validators, and the
// document collections triggers, calculatedValues and completedHtmlOnCondition.
// A top-level "elements" list is accepted as a single page named "page1".
// Properties the engine does not manage are kept as node extras and written back
// unchanged.
package codec

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/logica/pkg/survey"
	"gopkg.in/yaml.v3"
)

// Format selects the serialization.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatFromPath infers the format from a file extension. Unknown extensions are JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	}
	return JSON
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case JSON:
		return JSON, nil
	case YAML, "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unsupported format %q", s)
}

// Decode parses data into a new document.
func Decode(data []byte, format Format) (*survey.Document, error) {
	var raw map[string]any
	var err error
	switch format {
	case YAML:
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}
	return FromMap(raw)
}

// Encode serializes doc.
func Encode(doc *survey.Document, format Format) ([]byte, error) {
	m := ToMap(doc)
	if format == YAML {
		return yaml.Marshal(m)
	}
	return json.MarshalIndent(m, "", "  ")
}

// Clone returns a deep copy of doc. Node identities are not preserved.
func Clone(doc *survey.Document) (*survey.Document, error) {
	return FromMap(ToMap(doc))
}

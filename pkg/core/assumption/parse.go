package assumption

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
	"gopkg.in/yaml.v2"

	"saas_pnl/pkg/core/projection"
)

// Format identifies a scenario document encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatHJSON Format = "hjson"
)

// FormatFromPath picks the format from a file extension. Unknown extensions are read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".hjson":
		return FormatHJSON
	default:
		return FormatJSON
	}
}

// Parse decodes a scenario document.
// JSON input goes through the lenient chain: strict JSON, then repaired JSON, then Hjson.
func Parse(data []byte, format Format) (Document, error) {
	var doc Document

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Document{}, fmt.Errorf("ASSUMPTION_PARSE_ERROR: yaml: %w", err)
		}
		return doc, nil

	case FormatHJSON:
		if err := parseHJSON(data, &doc); err != nil {
			return Document{}, fmt.Errorf("ASSUMPTION_PARSE_ERROR: %w", err)
		}
		return doc, nil

	case FormatJSON, "":
		return smartParse(data)

	default:
		return Document{}, fmt.Errorf("ASSUMPTION_PARSE_ERROR: unsupported format %q", format)
	}
}

// LoadFile reads a scenario file and overlays it on Default().
func LoadFile(path string) (projection.Assumptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return projection.Assumptions{}, fmt.Errorf("read scenario %s: %w", path, err)
	}
	doc, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return projection.Assumptions{}, fmt.Errorf("scenario %s: %w", path, err)
	}
	return doc.Apply(Default()), nil
}

// smartParse tries strict JSON, json-repair, and finally Hjson.
func smartParse(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if repaired, err := jsonrepair.RepairJSON(string(data)); err == nil {
		doc = Document{}
		if err := json.Unmarshal([]byte(repaired), &doc); err == nil {
			return doc, nil
		}
	}

	doc = Document{}
	if err := parseHJSON(data, &doc); err == nil {
		return doc, nil
	}

	return Document{}, fmt.Errorf("ASSUMPTION_PARSE_ERROR: all parsing strategies failed for input")
}

// parseHJSON converts Hjson to standard JSON first so the json tags on Document apply.
func parseHJSON(data []byte, doc *Document) error {
	var generic interface{}
	if err := hjson.Unmarshal(data, &generic); err != nil {
		return fmt.Errorf("HJSON_PARSE_ERROR: %v", err)
	}
	jsonBytes, err := json.Marshal(generic)
	if err != nil {
		return fmt.Errorf("JSON_MARSHAL_ERROR: %v", err)
	}
	if err := json.Unmarshal(jsonBytes, doc); err != nil {
		return fmt.Errorf("HJSON_DECODE_ERROR: %v", err)
	}
	return nil
}

package graph

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/causeview/pkg/causal"
	cverrors "github.com/matzehuels/causeview/pkg/errors"
)

// Format identifies the encoding of an input document.
type Format string

// Supported document formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the document format from a file extension.
// Anything that is not .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// =============================================================================
// Reading
// =============================================================================

// ReadFile loads and validates a causality graph from path.
// A missing file yields a MISSING_INPUT error naming the file.
func ReadFile(path string) (*causal.Graph, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, cverrors.New(cverrors.ErrCodeMissingInput, "input file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	g, err := Read(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return g, nil
}

// Read decodes a document from r and converts it into a validated graph.
func Read(r io.Reader, format Format) (*causal.Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	doc, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	return doc.ToGraph()
}

// Decode parses raw document bytes without validating references.
func Decode(data []byte, format Format) (Document, error) {
	var doc Document
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Document{}, cverrors.Wrap(cverrors.ErrCodeInvalidFormat, err, "decode yaml")
		}
	case FormatJSON, "":
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&doc); err != nil {
			return Document{}, cverrors.Wrap(cverrors.ErrCodeInvalidFormat, err, "decode json")
		}
	default:
		return Document{}, cverrors.New(cverrors.ErrCodeInvalidFormat, "unsupported document format: %q", format)
	}
	return doc, nil
}

// =============================================================================
// Writing
// =============================================================================

// Marshal encodes a graph as indented JSON with every default made explicit.
func Marshal(g *causal.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(g, &buf, FormatJSON); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes a graph to w in the given format.
func Write(g *causal.Graph, w io.Writer, format Format) error {
	doc := FromGraph(g)
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	default:
		return cverrors.New(cverrors.ErrCodeInvalidFormat, "unsupported document format: %q", format)
	}
}

// WriteFile writes a graph to path, choosing the format from its extension.
// The file is created with 0644 permissions.
func WriteFile(g *causal.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(g, f, FormatFromPath(path))
}

// Package codec serializes documents for exchange with front ends running in
// other processes: JSON and YAML for authoring and debugging, msgpack for
// compact machine transport.
package codec

import (
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/xab-mack/metaast/internal/model"
	"github.com/xab-mack/metaast/internal/node"
)

type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// FormatForPath picks the wire format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".msgpack", ".mp":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("no codec for file extension of %q", path)
	}
}

// Encode serializes a document in the given format.
func Encode(doc *model.Document, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatMsgpack:
		return msgpack.Marshal(doc)
	default:
		return nil, fmt.Errorf("unknown format %q", f)
	}
}

// Decode deserializes a document and verifies that its root conforms.
// JSON numbers arrive as float64; integer-kinded literal payloads are
// renormalized to int64 so conformance holds across a JSON round trip.
func Decode(data []byte, f Format) (*model.Document, error) {
	var doc model.Document
	switch f {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		renormalize(doc.Root)
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	case FormatMsgpack:
		if err := msgpack.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown format %q", f)
	}
	if doc.Root == nil {
		return nil, fmt.Errorf("document has no root node")
	}
	if err := node.Check(doc.Root); err != nil {
		return nil, fmt.Errorf("decoded document: %w", err)
	}
	return &doc, nil
}

// renormalize repairs integer literal payloads widened to float64 by the JSON
// decoder. Native payloads are opaque and left alone.
func renormalize(n *node.Node) {
	if n == nil {
		return
	}
	if n.Type == node.TypeLiteral && n.Attrs.Kind == node.LiteralInteger {
		if f, ok := n.Value.(float64); ok && f == math.Trunc(f) {
			n.Value = int64(f)
		}
	}
	for _, c := range n.Children {
		renormalize(c)
	}
}

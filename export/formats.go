package export

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/knakk/rdf"

	"github.com/c360studio/mapfgraph/graph"
)

// Format specifies the serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatTurtle: {
		Name:        FormatTurtle,
		MIMEType:    "text/turtle",
		Extension:   ".ttl",
		Description: "Turtle - Terse RDF Triple Language",
	},
	FormatNTriples: {
		Name:        FormatNTriples,
		MIMEType:    "application/n-triples",
		Extension:   ".nt",
		Description: "N-Triples - Line-based RDF format",
	},
	FormatJSONLD: {
		Name:        FormatJSONLD,
		MIMEType:    "application/ld+json",
		Extension:   ".jsonld",
		Description: "JSON-LD - JSON for Linked Data",
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// ParseFormat resolves a format name. Common aliases ("ttl", "nt", "json-ld")
// are accepted.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "turtle", "ttl":
		return FormatTurtle, nil
	case "ntriples", "n-triples", "nt":
		return FormatNTriples, nil
	case "jsonld", "json-ld":
		return FormatJSONLD, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", name)
	}
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	for format, info := range FormatRegistry {
		if info.Extension == ext {
			return format, true
		}
	}
	if ext == ".json" {
		return FormatJSONLD, true
	}
	return "", false
}

// JSONLDDocument represents a JSON-LD document structure.
type JSONLDDocument struct {
	Context map[string]string `json:"@context"`
	Graph   []JSONLDNode      `json:"@graph"`
}

// JSONLDNode represents a node in a JSON-LD graph.
type JSONLDNode struct {
	ID         string
	Type       []string
	Properties map[string][]any
}

// MarshalJSON implements custom JSON marshaling for JSONLDNode.
func (n JSONLDNode) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(n.Properties)+2)
	m["@id"] = n.ID
	if len(n.Type) > 0 {
		m["@type"] = n.Type
	}
	for k, v := range n.Properties {
		m[k] = v
	}
	return json.Marshal(m)
}

type jsonldIRI struct {
	ID string `json:"@id"`
}

type jsonldValue struct {
	Value string `json:"@value"`
	Type  string `json:"@type,omitempty"`
	Lang  string `json:"@language,omitempty"`
}

func encodeJSONLD(w io.Writer, g *graph.Graph, prefixes map[string]string) error {
	doc := JSONLDDocument{
		Context: make(map[string]string, len(prefixes)),
		Graph:   make([]JSONLDNode, 0),
	}
	for prefix, iri := range prefixes {
		doc.Context[prefix] = iri
	}

	const rdfType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	index := make(map[string]int)
	for _, t := range g.Triples() {
		id := nodeID(t.Subj)
		i, ok := index[id]
		if !ok {
			i = len(doc.Graph)
			index[id] = i
			doc.Graph = append(doc.Graph, JSONLDNode{ID: id, Properties: make(map[string][]any)})
		}
		node := &doc.Graph[i]

		pred := nodeID(t.Pred)
		if pred == rdfType && t.Obj.Type() == rdf.TermIRI {
			node.Type = append(node.Type, nodeID(t.Obj))
			continue
		}
		node.Properties[pred] = append(node.Properties[pred], jsonldObject(t.Obj))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func jsonldObject(o rdf.Object) any {
	switch v := o.(type) {
	case rdf.Literal:
		val := jsonldValue{Value: v.String(), Lang: v.Lang()}
		if val.Lang == "" {
			val.Type = nodeID(v.DataType)
		}
		return val
	default:
		return jsonldIRI{ID: nodeID(o)}
	}
}

// nodeID renders IRIs without angle brackets and blank nodes as _:label.
func nodeID(t rdf.Term) string {
	s := t.Serialize(rdf.NTriples)
	if t.Type() == rdf.TermIRI {
		return strings.TrimSuffix(strings.TrimPrefix(s, "<"), ">")
	}
	return s
}

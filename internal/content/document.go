package content

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is one parsed content file. Root is always a mapping node; its
// line numbers are relative to the YAML source, so use Line to get file lines.
type Document struct {
	Path       string // path on disk
	Rel        string // slash-separated path relative to the content dir
	Type       Type
	Slug       string
	Root       *yaml.Node
	Body       string
	BodyLine   int // file line where the Markdown body starts
	LineOffset int
}

// Line converts a node's YAML line into a 1-based file line.
func (d *Document) Line(n *yaml.Node) int {
	if n == nil || n.Line == 0 {
		return 0
	}
	return n.Line + d.LineOffset
}

// Decode unmarshals the document's mapping into v.
func (d *Document) Decode(v any) error {
	if d.Root == nil {
		return errors.New("document has no root mapping")
	}
	if err := d.Root.Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", d.Rel, err)
	}
	return nil
}

// Field returns the value node for key in the root mapping, or nil.
func (d *Document) Field(key string) *yaml.Node {
	return FindNode(d.Root, key)
}

// ParseError records a file that could not be parsed at all.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse decodes raw file bytes into a Document. rel is the slash-separated
// path relative to the content dir and is used for the slug and messages.
func Parse(rel string, t Type, format Format, data []byte) (*Document, error) {
	doc := &Document{
		Path: rel,
		Rel:  rel,
		Type: t,
		Slug: strings.TrimSuffix(path.Base(rel), path.Ext(rel)),
	}

	source := data
	if format == FormatMarkdown {
		meta, body, bodyLine, err := SplitFrontMatter(data)
		if err != nil {
			return nil, &ParseError{Path: rel, Line: 1, Column: 1, Message: err.Error(), Err: err}
		}
		source = meta
		doc.Body = strings.TrimSpace(string(body))
		doc.LineOffset = 1
		doc.BodyLine = bodyLine
	}

	var node yaml.Node
	if err := yaml.Unmarshal(source, &node); err != nil {
		line, column := ExtractLineColumn(err.Error())
		if line > 0 {
			line += doc.LineOffset
		}
		return nil, &ParseError{Path: rel, Line: line, Column: column, Message: CleanYAMLError(err.Error()), Err: err}
	}

	root, err := rootMapping(&node, format)
	if err != nil {
		return nil, &ParseError{Path: rel, Line: doc.LineOffset + 1, Column: 1, Message: err.Error(), Err: err}
	}
	doc.Root = root
	return doc, nil
}

// rootMapping unwraps the document node. Empty front-matter is treated as an
// empty mapping so that required-field checks report what is missing.
func rootMapping(node *yaml.Node, format Format) (*yaml.Node, error) {
	if node.Kind == 0 || (node.Kind == yaml.DocumentNode && len(node.Content) == 0) {
		if format == FormatYAML {
			return nil, errors.New("file is empty or contains only comments")
		}
		return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Line: 1, Column: 1}, nil
	}
	if node.Kind == yaml.DocumentNode {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a YAML mapping at document root, got %s", KindName(node.Kind))
	}
	return node, nil
}

// FindNode finds the value node for key in a mapping node.
func FindNode(root *yaml.Node, key string) *yaml.Node {
	if root == nil {
		return nil
	}
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		return FindNode(root.Content[0], key)
	}
	if root.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == key {
			return root.Content[i+1]
		}
	}
	return nil
}

// KindName converts a yaml.Kind to a human-readable string.
func KindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "array"
	case yaml.MappingNode:
		return "object"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}

// ExtractLineColumn pulls line and column numbers out of a yaml.v3 error
// message. Returns 0, 0 if none are present.
func ExtractLineColumn(errMsg string) (line, column int) {
	var l, c int
	if n, _ := fmt.Sscanf(errMsg, "yaml: line %d: column %d:", &l, &c); n == 2 {
		return l, c
	}
	if n, _ := fmt.Sscanf(errMsg, "yaml: line %d:", &l); n == 1 {
		return l, 1
	}
	return 0, 0
}

// CleanYAMLError strips the "yaml: line X:" prefix from an error message.
func CleanYAMLError(errMsg string) string {
	if strings.HasPrefix(errMsg, "yaml:") {
		if idx := strings.LastIndex(errMsg, ": "); idx > 0 {
			return errMsg[idx+2:]
		}
	}
	return errMsg
}

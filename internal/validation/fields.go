package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ariel-frischer/folio/internal/content"
	"gopkg.in/yaml.v3"
)

// fieldChecker walks one document's mapping against a schema.
type fieldChecker struct {
	v      *Validator
	doc    *content.Document
	result *FileResult
}

// checkMapping applies fields to a mapping node. prefix is the path of the
// mapping itself ("" for the document root).
func (c *fieldChecker) checkMapping(node *yaml.Node, fields []SchemaField, prefix string, warnUnknown bool) {
	for _, field := range fields {
		path := joinPath(prefix, field.Name)
		value := content.FindNode(node, field.Name)
		if isEmpty(value) {
			if field.Required {
				c.result.AddError(&ValidationError{
					Path:    path,
					Line:    c.line(node, value),
					Message: fmt.Sprintf("missing required field: %s", path),
					Hint:    fmt.Sprintf("Add the '%s' field", field.Name),
				})
			}
			continue
		}
		c.checkField(value, field, path)
	}

	if warnUnknown {
		c.checkUnknownKeys(node, fields, prefix)
	}
}

// checkField validates a single present, non-empty value.
func (c *fieldChecker) checkField(node *yaml.Node, field SchemaField, path string) {
	if !c.checkType(node, field.Type, path) {
		return
	}

	switch field.Type {
	case FieldTypeString:
		c.checkString(node, field, path)
	case FieldTypeInt, FieldTypeNumber:
		c.checkRange(node, field, path)
	case FieldTypeArray:
		c.checkArray(node, field, path)
	case FieldTypeObject:
		c.checkMapping(node, field.Children, path, false)
	}
}

func (c *fieldChecker) checkString(node *yaml.Node, field SchemaField, path string) {
	value := strings.TrimSpace(node.Value)

	if field.MinLength > 0 && utf8.RuneCountInString(value) < field.MinLength {
		c.result.AddError(&ValidationError{
			Path:     path,
			Line:     c.doc.Line(node),
			Column:   node.Column,
			Message:  fmt.Sprintf("'%s' is too short", path),
			Expected: fmt.Sprintf("at least %d characters", field.MinLength),
			Actual:   fmt.Sprintf("%d characters", utf8.RuneCountInString(value)),
		})
	}

	if len(field.Enum) > 0 {
		c.checkEnum(node, path, field.Enum)
	}

	if field.Format != FormatNone {
		if msg, ok := c.v.checkFormat(value, field.Format); !ok {
			c.result.AddError(&ValidationError{
				Path:     path,
				Line:     c.doc.Line(node),
				Column:   node.Column,
				Message:  fmt.Sprintf("invalid %s for field '%s'", field.Format, path),
				Expected: msg,
				Actual:   fmt.Sprintf("'%s'", value),
			})
		}
	}

	if field.Asset {
		c.v.checkAsset(c.doc, node, path, c.result)
	}
}

func (c *fieldChecker) checkEnum(node *yaml.Node, path string, allowed []string) {
	for _, a := range allowed {
		if node.Value == a {
			return
		}
	}
	c.result.AddError(&ValidationError{
		Path:     path,
		Line:     c.doc.Line(node),
		Column:   node.Column,
		Message:  fmt.Sprintf("invalid value for field '%s'", path),
		Expected: fmt.Sprintf("one of: %s", strings.Join(allowed, ", ")),
		Actual:   fmt.Sprintf("'%s'", node.Value),
		Hint:     fmt.Sprintf("Use one of the valid values: %s", strings.Join(allowed, ", ")),
	})
}

func (c *fieldChecker) checkRange(node *yaml.Node, field SchemaField, path string) {
	if field.Range == nil {
		return
	}
	// Decode through yaml so hex, octal and .inf/.nan resolve the way the
	// loader reads them.
	var n float64
	err := node.Decode(&n)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n < field.Range.Min || n > field.Range.Max {
		c.result.AddError(&ValidationError{
			Path:     path,
			Line:     c.doc.Line(node),
			Column:   node.Column,
			Message:  fmt.Sprintf("value out of range for field '%s'", path),
			Expected: fmt.Sprintf("between %s and %s", formatNumber(field.Range.Min), formatNumber(field.Range.Max)),
			Actual:   node.Value,
		})
	}
}

func (c *fieldChecker) checkArray(node *yaml.Node, field SchemaField, path string) {
	if field.MinLength > 0 && len(node.Content) < field.MinLength {
		c.result.AddError(&ValidationError{
			Path:     path,
			Line:     c.doc.Line(node),
			Column:   node.Column,
			Message:  fmt.Sprintf("'%s' needs at least %d item(s)", path, field.MinLength),
			Expected: fmt.Sprintf(">= %d items", field.MinLength),
			Actual:   fmt.Sprintf("%d items", len(node.Content)),
		})
	}

	for i, item := range node.Content {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		switch {
		case len(field.Children) > 0:
			if !c.checkType(item, FieldTypeObject, itemPath) {
				continue
			}
			c.checkMapping(item, field.Children, itemPath, false)
		case field.Items != "":
			c.checkType(item, field.Items, itemPath)
		}
	}
}

func (c *fieldChecker) checkUnknownKeys(node *yaml.Node, fields []SchemaField, prefix string) {
	known := make(map[string]bool, len(fields))
	for _, f := range fields {
		known[f.Name] = true
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if known[key.Value] {
			continue
		}
		c.result.AddWarning(&ValidationError{
			Path:    joinPath(prefix, key.Value),
			Line:    c.doc.Line(key),
			Column:  key.Column,
			Message: fmt.Sprintf("unknown field: %s", key.Value),
			Hint:    "Check the field name for typos; unknown fields are ignored",
		})
	}
}

// checkType reports a type mismatch and returns false when node does not
// hold a value of type want.
func (c *fieldChecker) checkType(node *yaml.Node, want FieldType, path string) bool {
	if matchesType(node, want) {
		return true
	}
	c.result.AddError(&ValidationError{
		Path:     path,
		Line:     c.doc.Line(node),
		Column:   node.Column,
		Message:  fmt.Sprintf("wrong type for field '%s'", path),
		Expected: string(want),
		Actual:   describeNode(node),
		Hint:     fmt.Sprintf("Change '%s' to be a %s", path, want),
	})
	return false
}

func (c *fieldChecker) line(parent, node *yaml.Node) int {
	if node != nil {
		return c.doc.Line(node)
	}
	return c.doc.Line(parent)
}

func matchesType(node *yaml.Node, want FieldType) bool {
	switch want {
	case FieldTypeArray:
		return node.Kind == yaml.SequenceNode
	case FieldTypeObject:
		return node.Kind == yaml.MappingNode
	}
	if node.Kind != yaml.ScalarNode {
		return false
	}
	tag := node.ShortTag()
	switch want {
	case FieldTypeString:
		return tag == "!!str" || tag == "!!timestamp" || tag == "!!int" || tag == "!!float"
	case FieldTypeInt:
		return tag == "!!int"
	case FieldTypeNumber:
		return tag == "!!int" || tag == "!!float"
	case FieldTypeBool:
		return tag == "!!bool"
	}
	return false
}

func describeNode(node *yaml.Node) string {
	if node.Kind != yaml.ScalarNode {
		return content.KindName(node.Kind)
	}
	switch node.ShortTag() {
	case "!!int":
		return "int"
	case "!!float":
		return "number"
	case "!!bool":
		return "bool"
	case "!!null":
		return "null"
	default:
		return "string"
	}
}

// isEmpty treats absent keys, null values and blank strings as missing.
func isEmpty(node *yaml.Node) bool {
	if node == nil {
		return true
	}
	if node.Kind == yaml.ScalarNode {
		return node.ShortTag() == "!!null" || strings.TrimSpace(node.Value) == ""
	}
	return false
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

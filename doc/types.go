// Package doc models the structured content tree produced by the authoring
// system and normalizes it into flat, render-ready blocks. The tree shape
// (node type/content/attrs) is an external contract - we parse it
// permissively and drop what we do not understand instead of failing.
package doc

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// NodeType distinguishes the different kinds of authored nodes.
type NodeType string

const (
	NodeDoc            NodeType = "doc"
	NodeText           NodeType = "text"
	NodeParagraph      NodeType = "paragraph"
	NodeHeading        NodeType = "heading"
	NodeImage          NodeType = "ImageBlock"
	NodeVideo          NodeType = "Video"
	NodeWarning        NodeType = "WarningBlock"
	NodeDivider        NodeType = "DividerBlock"
	NodeOrderedList    NodeType = "orderedList"
	NodeBulletList     NodeType = "bulletList"
	NodeBlockquote     NodeType = "blockquote"
	NodeCodeBlock      NodeType = "codeBlock"
	NodeCardGroup      NodeType = "card-group"
	NodeMathDisplay    NodeType = "math_display"
	NodeMathInline     NodeType = "math_inline"
	NodeButton         NodeType = "button"
	NodeTable          NodeType = "table"
	NodeTableRow       NodeType = "tableRow"
	NodeTableCell      NodeType = "tableCell"
	NodeDetails        NodeType = "details"
	NodeDetailsSummary NodeType = "detailsSummary"
	NodeDetailsContent NodeType = "detailsContent"
)

// MarkType distinguishes inline style/semantic annotations on text runs.
type MarkType string

const (
	MarkBold      MarkType = "bold"
	MarkItalic    MarkType = "italic"
	MarkHighlight MarkType = "highlight"
	MarkTextStyle MarkType = "textStyle"
	MarkLink      MarkType = "link"
)

// Mark annotates a run of text.
type Mark struct {
	Type  MarkType  `json:"type"`
	Attrs MarkAttrs `json:"attrs,omitempty"`
}

// MarkAttrs carries the mark attributes we act on. Unknown attributes are
// ignored by the JSON decoder on purpose.
type MarkAttrs struct {
	Color string `json:"color,omitempty"`
	Href  string `json:"href,omitempty"`
}

// Attrs is the type-specific attribute bag of a node.
type Attrs map[string]any

// String returns the attribute as a string, or "" when absent or not a
// string-like value.
func (a Attrs) String(key string) string {
	switch v := a[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Int returns the attribute as an int, or def when absent or unparsable.
func (a Attrs) Int(key string, def int) int {
	switch v := a[key].(type) {
	case float64:
		return int(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i)
		}
	case string:
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	case int:
		return v
	}
	return def
}

// Float returns the attribute as a float64, or def when absent or unparsable.
func (a Attrs) Float(key string, def float64) float64 {
	switch v := a[key].(type) {
	case float64:
		return v
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	case int:
		return float64(v)
	}
	return def
}

// Bool returns the attribute as a bool, absent means false.
func (a Attrs) Bool(key string) bool {
	v, _ := a[key].(bool)
	return v
}

// Sub returns a nested attribute object, or nil.
func (a Attrs) Sub(key string) Attrs {
	if m, ok := a[key].(map[string]any); ok {
		return Attrs(m)
	}
	return nil
}

// Has reports whether the key is present at all, regardless of value.
func (a Attrs) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// Node is a single node of the authored content tree. Text runs are nodes of
// type "text" carrying Text and Marks; everything else nests through Content.
type Node struct {
	Type    NodeType `json:"type"`
	Text    string   `json:"text,omitempty"`
	Marks   []Mark   `json:"marks,omitempty"`
	Attrs   Attrs    `json:"attrs,omitempty"`
	Content []Node   `json:"content,omitempty"`
	Src     string   `json:"src,omitempty"`
}

// ParseDocument reads the JSON encoding of an authored document tree.
func ParseDocument(r io.Reader) (*Node, error) {
	var root Node
	dec := json.NewDecoder(r)
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("unable to decode document tree: %w", err)
	}
	return &root, nil
}

// mark returns the first mark of the given type, or nil.
func (n *Node) mark(t MarkType) *Mark {
	for i := range n.Marks {
		if n.Marks[i].Type == t {
			return &n.Marks[i]
		}
	}
	return nil
}

// linkHref returns the href of the node's link mark, "" when unlinked.
func (n *Node) linkHref() string {
	if m := n.mark(MarkLink); m != nil {
		return m.Attrs.Href
	}
	return ""
}

// AsPlainText extracts the text content of the node and all descendants.
func (n *Node) AsPlainText() string {
	return strings.TrimSpace(n.rawText())
}

// rawText is AsPlainText without the surrounding whitespace trim, for
// whitespace-significant content such as code.
func (n *Node) rawText() string {
	var buf strings.Builder
	n.appendPlainText(&buf)
	return buf.String()
}

func (n *Node) appendPlainText(buf *strings.Builder) {
	if n.Text != "" {
		buf.WriteString(n.Text)
	}
	for i := range n.Content {
		n.Content[i].appendPlainText(buf)
	}
}

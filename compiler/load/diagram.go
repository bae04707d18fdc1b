// Package load decodes draw.io diagram documents into plain cell records.
package load

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
)

// Diagram holds the cells of one diagram document in document order.
type Diagram struct {
	// Path of the file the diagram was read from. Empty for readers.
	Path string
	// Nodes are all mxCell elements, across every page.
	Nodes []*Node
}

// Node is a single mxCell element. Attribute values are kept verbatim and
// their presence is tracked separately, since an empty attribute and a
// missing one mean different things to the classifier and the extractor.
type Node struct {
	ID     string
	Value  string
	Style  Style
	Source string
	Target string
	// Page is the name (or id) of the enclosing <diagram> element, if any.
	Page string
	// Line is the line of the element in its (possibly decompressed) source.
	Line int

	has attr
}

type attr uint8

const (
	attrID attr = 1 << iota
	attrValue
	attrStyle
	attrSource
	attrTarget
)

// HasID reports whether the cell carries an id attribute.
func (n *Node) HasID() bool { return n.has&attrID != 0 }

// HasValue reports whether the cell carries a value attribute.
func (n *Node) HasValue() bool { return n.has&attrValue != 0 }

// HasStyle reports whether the cell carries a style attribute.
func (n *Node) HasStyle() bool { return n.has&attrStyle != 0 }

// HasSource reports whether the cell carries a source attribute.
func (n *Node) HasSource() bool { return n.has&attrSource != 0 }

// HasTarget reports whether the cell carries a target attribute.
func (n *Node) HasTarget() bool { return n.has&attrTarget != 0 }

// Pos describes the location of the node for error messages.
func (n *Node) Pos() string {
	var b strings.Builder
	fmt.Fprintf(&b, "line %d", n.Line)
	if n.Page != "" {
		fmt.Fprintf(&b, " of page %q", n.Page)
	}
	return b.String()
}

// NewNode builds a node from attribute pairs. It is used by the decoder and
// is handy for building diagrams in memory. Unknown keys are ignored.
func NewNode(attrs ...string) *Node {
	n := &Node{}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.set(attrs[i], attrs[i+1])
	}
	return n
}

func (n *Node) set(name, value string) {
	switch name {
	case "id":
		n.ID, n.has = value, n.has|attrID
	case "value":
		n.Value, n.has = value, n.has|attrValue
	case "style":
		n.Style, n.has = Style(value), n.has|attrStyle
	case "source":
		n.Source, n.has = value, n.has|attrSource
	case "target":
		n.Target, n.has = value, n.has|attrTarget
	}
}

// ParseFile opens and decodes the diagram at path.
func ParseFile(path string) (*Diagram, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewParseError(path, 0, "open diagram", err)
	}
	defer f.Close()

	d, err := Parse(f)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.File = path
			return nil, perr
		}
		return nil, NewParseError(path, 0, "", err)
	}
	d.Path = path
	return d, nil
}

// Parse decodes a diagram document. Cells are collected from anywhere in the
// element tree. Compressed <diagram> payloads, as written by draw.io, are
// inflated and their cells are spliced in at the position of the page.
func Parse(r io.Reader) (*Diagram, error) {
	d := &Diagram{}
	if err := d.scan(r, ""); err != nil {
		return nil, err
	}
	return d, nil
}

// page tracks an open <diagram> element while scanning.
type page struct {
	name    string
	text    bytes.Buffer
	inlined bool // the page holds an mxGraphModel element instead of a payload
}

func (d *Diagram) scan(r io.Reader, pageName string) error {
	dec := xml.NewDecoder(r)
	var cur *page
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			line, _ := dec.InputPos()
			return NewParseError("", line, "malformed diagram document", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "diagram":
				cur = &page{name: pageAttr(t.Attr)}
			case "mxCell":
				line, _ := dec.InputPos()
				n := &Node{Line: line, Page: pageName}
				if cur != nil {
					cur.inlined = true
					n.Page = cur.name
				}
				for _, a := range t.Attr {
					n.set(a.Name.Local, a.Value)
				}
				d.Nodes = append(d.Nodes, n)
			default:
				if cur != nil {
					cur.inlined = true
				}
			}
		case xml.CharData:
			if cur != nil && !cur.inlined {
				cur.text.Write(t)
			}
		case xml.EndElement:
			if t.Name.Local != "diagram" || cur == nil {
				continue
			}
			p := cur
			cur = nil
			payload := strings.TrimSpace(p.text.String())
			if p.inlined || payload == "" {
				continue
			}
			raw, err := inflate(payload)
			if err != nil {
				line, _ := dec.InputPos()
				return NewParseError("", line, fmt.Sprintf("decode compressed page %q", p.name), err)
			}
			if err := d.scan(strings.NewReader(raw), p.name); err != nil {
				return err
			}
		}
	}
}

func pageAttr(attrs []xml.Attr) string {
	var id string
	for _, a := range attrs {
		switch a.Name.Local {
		case "name":
			if a.Value != "" {
				return a.Value
			}
		case "id":
			id = a.Value
		}
	}
	return id
}

// inflate reverses the draw.io page encoding:
// base64(deflateRaw(encodeURIComponent(xml))).
func inflate(payload string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("base64: %w", err)
	}
	fr := flate.NewReader(bytes.NewReader(data))
	defer fr.Close()
	buf, err := io.ReadAll(fr)
	if err != nil {
		return "", fmt.Errorf("inflate: %w", err)
	}
	s, err := url.PathUnescape(string(buf))
	if err != nil {
		return "", fmt.Errorf("unescape: %w", err)
	}
	return s, nil
}

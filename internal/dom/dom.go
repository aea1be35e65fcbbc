// Package dom builds small markup trees and writes them as indented text.
package dom

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Attribute is a single key/value pair written as key="value".
type Attribute struct {
	Key   string
	Value string
}

// Renderer produces element content at render time. It receives the output
// sink, the active format and the nesting level of the content.
type Renderer func(w io.Writer, f Format, level int) error

// Element is a markup node. Content is chosen at render time in the order
// renderer, text, children.
type Element struct {
	name       string
	text       string
	comment    string
	renderer   Renderer
	attributes []Attribute
	children   []*Element
}

// New returns an element named name.
func New(name string) *Element {
	return &Element{name: name}
}

// AddElement appends a child named name and returns it. The returned
// pointer stays valid for the lifetime of the tree.
func (e *Element) AddElement(name string) *Element {
	child := New(name)
	e.children = append(e.children, child)
	return child
}

// AddAttribute appends an attribute. Duplicate keys are kept and written in
// insertion order.
func (e *Element) AddAttribute(key, value string) *Element {
	e.attributes = append(e.attributes, Attribute{Key: key, Value: value})
	return e
}

// SetComment sets the comment written before the opening tag.
func (e *Element) SetComment(comment string) *Element {
	e.comment = comment
	return e
}

// SetText sets plain text content.
func (e *Element) SetText(text string) *Element {
	e.text = text
	return e
}

// SetRenderer sets content produced at render time.
func (e *Element) SetRenderer(r Renderer) *Element {
	e.renderer = r
	return e
}

// FindChild returns the first direct child named name, or nil.
func (e *Element) FindChild(name string) *Element {
	for _, c := range e.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Name returns the tag name.
func (e *Element) Name() string { return e.name }

// Attributes returns the attributes in insertion order, duplicates included.
func (e *Element) Attributes() []Attribute { return e.attributes }

// Children returns the child elements in insertion order.
func (e *Element) Children() []*Element { return e.children }

// Comment returns the comment written before the element.
func (e *Element) Comment() string { return e.comment }

// Text returns the text content.
func (e *Element) Text() string { return e.text }

// IsLeaf reports whether e has no children.
func (e *Element) IsLeaf() bool { return len(e.children) == 0 }

// HasComment reports whether a comment is set.
func (e *Element) HasComment() bool { return e.comment != "" }

// HasText reports whether text content is set.
func (e *Element) HasText() bool { return e.text != "" }

// HasRenderer reports whether a renderer is set.
func (e *Element) HasRenderer() bool { return e.renderer != nil }

// DefaultIndentation is the number of spaces per nesting level.
const DefaultIndentation = 2

// Format configures a render pass.
type Format struct {
	Indentation   int
	StripComments bool
}

// DefaultFormat returns the two-space, comment-preserving format.
func DefaultFormat() Format {
	return Format{Indentation: DefaultIndentation}
}

// Indent returns the leading whitespace for level.
func (f Format) Indent(level int) string {
	if f.Indentation <= 0 || level <= 0 {
		return ""
	}
	return strings.Repeat(" ", f.Indentation*level)
}

// Write serializes e at level. Renderer errors are returned unchanged.
func Write(w io.Writer, e *Element, f Format, level int) error {
	bw := bufio.NewWriter(w)
	if err := write(bw, e, f, level); err != nil {
		return err
	}
	return bw.Flush()
}

// String renders e with the default format.
func (e *Element) String() string {
	var b strings.Builder
	_ = write(&b, e, DefaultFormat(), 0)
	return b.String()
}

type stringWriter interface {
	io.Writer
	io.StringWriter
}

func write(w stringWriter, e *Element, f Format, level int) error {
	ind := f.Indent(level)
	if !f.StripComments && e.HasComment() {
		if _, err := fmt.Fprintf(w, "%s<!-- %s -->\n", ind, e.comment); err != nil {
			return err
		}
	}

	var open strings.Builder
	open.WriteString(ind)
	open.WriteByte('<')
	open.WriteString(e.name)
	for _, a := range e.attributes {
		open.WriteString(" " + a.Key + `="` + a.Value + `"`)
	}
	open.WriteByte('>')
	if _, err := w.WriteString(open.String()); err != nil {
		return err
	}

	closing := "</" + e.name + ">\n"
	switch {
	case e.HasRenderer():
		if _, err := w.WriteString("\n"); err != nil {
			return err
		}
		if err := e.renderer(w, f, level+1); err != nil {
			return err
		}
		if _, err := w.WriteString("\n" + ind + closing); err != nil {
			return err
		}
	case e.HasText():
		if _, err := w.WriteString("\n"); err != nil {
			return err
		}
		if err := writeText(w, f, level+1, e.text); err != nil {
			return err
		}
		if _, err := w.WriteString(ind + closing); err != nil {
			return err
		}
	case len(e.children) == 0:
		if _, err := w.WriteString(closing); err != nil {
			return err
		}
	default:
		if _, err := w.WriteString("\n"); err != nil {
			return err
		}
		for _, c := range e.children {
			if err := write(w, c, f, level+1); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(ind + closing); err != nil {
			return err
		}
	}
	return nil
}

// writeText writes each line of text on its own indented line.
func writeText(w io.StringWriter, f Format, level int, text string) error {
	ind := f.Indent(level)
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 4096), len(text)+1)
	for scanner.Scan() {
		if _, err := w.WriteString(ind + scanner.Text() + "\n"); err != nil {
			return err
		}
	}
	return scanner.Err()
}

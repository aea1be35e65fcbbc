// internal/chart/chart.go
// Package chart assembles a self-contained HTML document that draws a data
// set with Google Charts.
package chart

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mwiater/benchchart/internal/dataset"
	"github.com/mwiater/benchchart/internal/dom"
	"github.com/mwiater/benchchart/internal/util"
)

// LoaderURL is the Google Charts loader script.
const LoaderURL = "https://www.gstatic.com/charts/loader.js"

// timestampLayout is used for the optional meta timestamp.
const timestampLayout = "2006-01-02 15:04:05"

// Chart pairs a visualization type with its draw options.
type Chart struct {
	Type    Visualization
	Options Options
	// Now supplies the meta timestamp; time.Now when nil.
	Now func() time.Time
}

// New returns a chart of type t with default options.
func New(t Visualization) *Chart {
	return &Chart{Type: t, Options: DefaultOptions()}
}

func (c *Chart) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Document builds the HTML tree for p. The chart script is generated when
// the tree is written, so p must stay unchanged until then.
func (c *Chart) Document(p dataset.Provider, opts DOMOptions) *dom.Element {
	div := opts.Div
	if div == "" {
		div = DefaultDiv
	}

	html := dom.New("html")
	head := html.AddElement("head")
	if opts.IncludeMetaTimestamp {
		head.AddElement("meta").
			AddAttribute("name", "timestamp").
			AddAttribute("timestamp", c.now().Format(timestampLayout))
	}
	head.AddElement("script").
		AddAttribute("type", "text/javascript").
		AddAttribute("src", LoaderURL)
	head.AddElement("script").
		AddAttribute("type", "text/javascript").
		SetRenderer(func(w io.Writer, f dom.Format, level int) error {
			return WriteScript(w, f, level, c, p, div)
		})

	body := html.AddElement("body")
	body.AddElement("div").
		SetComment("This div element will hold the generated chart").
		AddAttribute("id", div).
		AddAttribute("style", "width: "+strconv.Itoa(opts.Width)+"px; height: "+strconv.Itoa(opts.Height)+"px;")

	return html
}

// WriteHTML writes the chart document for p to w.
func (c *Chart) WriteHTML(w io.Writer, p dataset.Provider, opts DOMOptions, f dom.Format) error {
	if err := dom.Write(w, c.Document(p, opts), f, 0); err != nil {
		return fmt.Errorf("write chart document: %w", err)
	}
	return nil
}

// WriteHTMLFile renders the document and writes it to path, creating parent
// directories as needed. Nothing is written if rendering fails.
func (c *Chart) WriteHTMLFile(path string, p dataset.Provider, opts DOMOptions, f dom.Format) error {
	var buf bytes.Buffer
	if err := c.WriteHTML(&buf, p, opts, f); err != nil {
		return err
	}
	if err := util.WriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("unable to write HTML file %s: %w", path, err)
	}
	return nil
}

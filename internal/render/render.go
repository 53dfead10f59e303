// Package render produces self-contained d3 pages for traceability graphs.
package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/rionatty/ampower-visualize/internal/graph"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Options configures HTML rendering.
type Options struct {
	Title    string
	BaseURL  string // site that document links point to; empty for relative links
	Width    int
	Height   int
	Doctypes []string // index page only
}

func (o *Options) applyDefaults() {
	if o.Title == "" {
		o.Title = "Product Traceability"
	}
	if o.Width <= 0 {
		o.Width = 1256
	}
	if o.Height <= 0 {
		o.Height = 720
	}
}

// ViewNode is a graph node with its display attributes resolved
type ViewNode struct {
	graph.Node
	URL   string `json:"url"`
	Color string `json:"color"`
	Size  int    `json:"size"`
}

// View is the renderer input: nodes with display attributes plus links
type View struct {
	Nodes []ViewNode   `json:"nodes"`
	Links []graph.Edge `json:"links"`
}

// NewView resolves colours, sizes and document URLs for every node of g
func NewView(g *graph.Graph, baseURL string) *View {
	v := &View{
		Nodes: make([]ViewNode, 0, len(g.Nodes)),
		Links: make([]graph.Edge, len(g.Links)),
	}
	for _, n := range g.Nodes {
		v.Nodes = append(v.Nodes, ViewNode{
			Node:  n,
			URL:   graph.DocumentURL(baseURL, n),
			Color: ColorOf(n.Type),
			Size:  SizeOf(n),
		})
	}
	copy(v.Links, g.Links)
	return v
}

type pageData struct {
	Title      string
	Width      int
	Height     int
	GraphJSON  template.JS
	LegendJSON template.JS
	Doctypes   []string
}

func newPageData(opts Options, view *View) (*pageData, error) {
	legendJSON, err := json.Marshal(Legend())
	if err != nil {
		return nil, err
	}
	graphJSON := []byte("null")
	if view != nil {
		if graphJSON, err = json.Marshal(view); err != nil {
			return nil, fmt.Errorf("encoding graph: %w", err)
		}
	}
	return &pageData{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		GraphJSON:  template.JS(graphJSON),
		LegendJSON: template.JS(legendJSON),
		Doctypes:   opts.Doctypes,
	}, nil
}

// RenderHTML generates a self-contained HTML page drawing g.
func RenderHTML(g *graph.Graph, opts Options) ([]byte, error) {
	opts.applyDefaults()
	if root, ok := g.Root(); ok && opts.Title == "Product Traceability" {
		opts.Title = "Product Traceability: " + root.Label
	}
	data, err := newPageData(opts, NewView(g, opts.BaseURL))
	if err != nil {
		return nil, err
	}
	return execute("graph.html", data)
}

// RenderIndex generates the interactive page where the user picks a
// document type and a document.
func RenderIndex(opts Options) ([]byte, error) {
	opts.applyDefaults()
	data, err := newPageData(opts, nil)
	if err != nil {
		return nil, err
	}
	return execute("index.html", data)
}

func execute(name string, data *pageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

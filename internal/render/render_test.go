package render

import (
	"strings"
	"testing"

	"github.com/rionatty/ampower-visualize/internal/graph"
)

func sampleGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.Build([]graph.SourceItem{{
		ItemCode: "A1", ItemName: "Widget", Qty: 5,
		SalesInvoices: []graph.LinkedRecord{
			{UniqueID: "SI-1", SalesInvoice: "SINV-001", Qty: 5, Status: "Paid"},
		},
	}}, "SO-100")
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestNewView(t *testing.T) {
	v := NewView(sampleGraph(t), "https://erp.example.com/")

	byID := map[string]ViewNode{}
	for _, n := range v.Nodes {
		byID[n.ID] = n
	}
	root := byID[graph.RootID]
	if root.Color != "#b0b336" || root.Size != ParentNodeSize {
		t.Errorf("root = %+v", root)
	}
	if root.URL != "https://erp.example.com/app/sales-order/SO-100" {
		t.Errorf("root url = %q", root.URL)
	}
	inv := byID["SI-1"]
	if inv.Color != "#3498db" || inv.Size != DefaultNodeSize {
		t.Errorf("invoice = %+v", inv)
	}
	if inv.URL != "https://erp.example.com/app/sales-invoice/SINV-001" {
		t.Errorf("invoice url = %q", inv.URL)
	}
	if len(v.Links) != 2 {
		t.Errorf("expected 2 links, got %d", len(v.Links))
	}
}

func TestColorOf_Unknown(t *testing.T) {
	if got := ColorOf("quotation"); got != DefaultColor {
		t.Errorf("ColorOf(unknown) = %q, want %q", got, DefaultColor)
	}
}

func TestLegend(t *testing.T) {
	legend := Legend()
	if len(legend) != len(graph.NodeTypes) {
		t.Fatalf("expected %d entries, got %d", len(graph.NodeTypes), len(legend))
	}
	if legend[0].Label != "Root Document" {
		t.Errorf("first legend entry = %+v", legend[0])
	}
	for _, e := range legend {
		if e.Label == "" || e.Color == DefaultColor {
			t.Errorf("legend entry %+v is incomplete", e)
		}
	}
}

func TestRenderHTML(t *testing.T) {
	out, err := RenderHTML(sampleGraph(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	html := string(out)
	for _, want := range []string{
		"<title>Product Traceability: SO-100</title>",
		`"id":"SI-1"`,
		`"url":"/app/sales-invoice/SINV-001"`,
		"Sales Order Item",
		"d3.v7.min.js",
		"distance(300)",
		"visualize(",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
}

func TestRenderHTML_CustomTitle(t *testing.T) {
	out, err := RenderHTML(sampleGraph(t), Options{Title: "Trace", Width: 800, Height: 600})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "<title>Trace</title>") {
		t.Error("custom title not used")
	}
	if !strings.Contains(string(out), "800") || !strings.Contains(string(out), "600") {
		t.Error("custom size not used")
	}
}

func TestRenderIndex(t *testing.T) {
	out, err := RenderIndex(Options{Doctypes: []string{"Sales Order"}})
	if err != nil {
		t.Fatal(err)
	}
	html := string(out)
	for _, want := range []string{
		`<option value="Sales Order">Sales Order</option>`,
		"/api/view/",
		"TraceabilityPage",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("index page missing %q", want)
		}
	}
}

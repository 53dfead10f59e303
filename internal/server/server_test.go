package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"github.com/rionatty/ampower-visualize/internal/db"
	"github.com/rionatty/ampower-visualize/internal/graph"
	"github.com/rionatty/ampower-visualize/internal/links"
	"github.com/rionatty/ampower-visualize/internal/render"
)

func setupTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	store, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Migrate(); err != nil {
		store.Close()
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	_, err = store.ImportDocuments(context.Background(), []db.Document{
		{Doctype: db.DoctypeSalesOrder, Name: "SO-100", Status: "To Bill", Items: []db.DocumentItem{
			{Idx: 1, Name: "soi-1", ItemCode: "A1", ItemName: "Widget", Qty: 5},
		}},
		{Doctype: db.DoctypeSalesOrder, Name: "SO-101", Status: "Draft", Items: []db.DocumentItem{
			{Idx: 1, Name: "soi-2", ItemCode: "A1", ItemName: "Widget", Qty: 1},
		}},
		{Doctype: db.DoctypeSalesInvoice, Name: "SINV-001", Status: "Paid", Items: []db.DocumentItem{
			{Idx: 1, ItemCode: "A1", Qty: 5, SalesOrder: "SO-100"},
		}},
	})
	if err != nil {
		t.Fatal(err)
	}

	service := links.NewService(links.DefaultRegistry(store), log.New(io.Discard))
	return New(&App{
		Store:  store,
		Links:  service,
		Render: render.Options{BaseURL: "https://erp.example.com"},
	})
}

func get(t *testing.T, e *echo.Echo, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	e := setupTestServer(t)
	rec := get(t, e, "/health")
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Errorf("health = %d %q", rec.Code, rec.Body.String())
	}
}

func TestGetGraph(t *testing.T) {
	e := setupTestServer(t)
	rec := get(t, e, "/api/graph/Sales%20Order/SO-100")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var g graph.Graph
	if err := json.Unmarshal(rec.Body.Bytes(), &g); err != nil {
		t.Fatal(err)
	}
	if len(g.Nodes) != 3 || len(g.Links) != 2 {
		t.Errorf("expected 3 nodes and 2 links, got %d and %d", len(g.Nodes), len(g.Links))
	}
	var root *graph.Node
	for i := range g.Nodes {
		if g.Nodes[i].ID == graph.RootID {
			root = &g.Nodes[i]
		}
	}
	if root == nil || root.Label != "SO-100" {
		t.Errorf("root = %+v, want label SO-100", root)
	}
}

func TestGetGraph_Errors(t *testing.T) {
	e := setupTestServer(t)
	tests := []struct {
		name   string
		target string
		status int
		notice string
	}{
		{"unsupported doctype", "/api/graph/Delivery%20Note/DN-001", http.StatusUnprocessableEntity, "This is the last node."},
		{"unknown document", "/api/graph/Sales%20Order/SO-404", http.StatusNotFound, "Document not found."},
		{"no items", "/api/graph/Sales%20Order/%20", http.StatusBadRequest, "Invalid data format or no items to display."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, e, tt.target)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			var n links.Notice
			if err := json.Unmarshal(rec.Body.Bytes(), &n); err != nil {
				t.Fatal(err)
			}
			if n.Message != tt.notice {
				t.Errorf("notice = %q, want %q", n.Message, tt.notice)
			}
		})
	}
}

func TestGetView(t *testing.T) {
	e := setupTestServer(t)
	rec := get(t, e, "/api/view/Sales%20Order/SO-100")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"url":"https://erp.example.com/app/sales-invoice/SINV-001"`) {
		t.Errorf("view missing invoice url: %s", rec.Body.String())
	}
}

func TestGetStats(t *testing.T) {
	e := setupTestServer(t)
	rec := get(t, e, "/api/stats/Sales%20Order/SO-100?top_n=3")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var report graph.TopologyReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatal(err)
	}
	if report.NumComponents != 1 || report.OrphanCount != 0 {
		t.Errorf("report = %+v, want one component and no orphans", report)
	}
}

func TestSearchDocuments(t *testing.T) {
	e := setupTestServer(t)
	rec := get(t, e, "/api/documents/Sales%20Order?q=SO-10")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var docs []documentSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &docs); err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 || docs[0].Name != "SO-100" || docs[1].Name != "SO-101" {
		t.Errorf("docs = %+v", docs)
	}

	rec = get(t, e, "/api/documents/Sales%20Order?q=nothing")
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("empty search should return [], got %s", rec.Body.String())
	}

	rec = get(t, e, "/api/documents/Sales%20Order?limit=500")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("oversized limit should be rejected, got %d", rec.Code)
	}
}

func TestPages(t *testing.T) {
	e := setupTestServer(t)

	rec := get(t, e, "/")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `<option value="Sales Order">`) {
		t.Errorf("index page = %d", rec.Code)
	}

	rec = get(t, e, "/view/Sales%20Order/SO-100")
	if rec.Code != http.StatusOK {
		t.Fatalf("graph page = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML) {
		t.Errorf("content type = %q", rec.Header().Get(echo.HeaderContentType))
	}
	if !strings.Contains(rec.Body.String(), "SO-100") {
		t.Error("graph page should embed the root document")
	}
}

package links

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/rionatty/ampower-visualize/internal/db"
	"github.com/rionatty/ampower-visualize/internal/graph"
)

func testLogger(buf *bytes.Buffer) *log.Logger {
	return log.NewWithOptions(buf, log.Options{Level: log.DebugLevel})
}

func staticProcedure(resp *graph.LinksResponse) Procedure {
	return func(ctx context.Context, name string) (*graph.LinksResponse, error) {
		return resp, nil
	}
}

func sampleResponse() *graph.LinksResponse {
	return &graph.LinksResponse{Items: []graph.SourceItem{{
		ItemCode: "A1", ItemName: "Widget", Qty: 5,
		SalesInvoices: []graph.LinkedRecord{
			{UniqueID: "SI-1", SalesInvoice: "SINV-001", Qty: 5, Status: "Submitted"},
			{SalesInvoice: "SINV-BROKEN"},
		},
	}}}
}

func TestService_Graph(t *testing.T) {
	var buf bytes.Buffer
	r := NewRegistry()
	r.Register("Sales Order", staticProcedure(sampleResponse()))
	s := NewService(r, testLogger(&buf))

	g, err := s.Graph(context.Background(), "Sales Order", " SO-100 ")
	if err != nil {
		t.Fatal(err)
	}
	root, ok := g.Root()
	if !ok || root.Label != "SO-100" {
		t.Errorf("root = %+v, want label SO-100", root)
	}
	if len(g.Nodes) != 3 {
		t.Errorf("expected 3 nodes, got %d", len(g.Nodes))
	}
	if !strings.Contains(buf.String(), "Skipped linked record") || !strings.Contains(buf.String(), "SINV-BROKEN") {
		t.Errorf("skipped record should be logged, log was:\n%s", buf.String())
	}
}

func TestService_UnsupportedDoctype(t *testing.T) {
	var buf bytes.Buffer
	s := NewService(NewRegistry(), testLogger(&buf))

	_, err := s.Graph(context.Background(), "Delivery Note", "DN-1")
	if !errors.Is(err, ErrUnsupportedDocumentType) {
		t.Fatalf("expected ErrUnsupportedDocumentType, got %v", err)
	}
	if n := NoticeFor(err); n.Message != "This is the last node." || n.Indicator != IndicatorRed {
		t.Errorf("notice = %+v", n)
	}
}

func TestService_EmptyInput(t *testing.T) {
	var buf bytes.Buffer
	r := NewRegistry()
	r.Register("Sales Order", staticProcedure(&graph.LinksResponse{}))
	s := NewService(r, testLogger(&buf))

	tests := []struct {
		name, doctype, document string
	}{
		{"no items", "Sales Order", "SO-1"},
		{"blank doctype", " ", "SO-1"},
		{"blank document", "Sales Order", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Graph(context.Background(), tt.doctype, tt.document)
			if !errors.Is(err, graph.ErrEmptyInput) {
				t.Fatalf("expected ErrEmptyInput, got %v", err)
			}
		})
	}
}

func TestService_ProcedureError(t *testing.T) {
	var buf bytes.Buffer
	r := NewRegistry()
	r.Register("Sales Order", func(ctx context.Context, name string) (*graph.LinksResponse, error) {
		return nil, fmt.Errorf("Sales Order %s: %w", name, db.ErrDocumentNotFound)
	})
	s := NewService(r, testLogger(&buf))

	_, err := s.Graph(context.Background(), "Sales Order", "SO-404")
	if !errors.Is(err, db.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if n := NoticeFor(err); n.Message != "Document not found." {
		t.Errorf("notice = %+v", n)
	}
}

func TestService_SharesConcurrentFetches(t *testing.T) {
	var buf bytes.Buffer
	var calls atomic.Int32
	release := make(chan struct{})
	r := NewRegistry()
	r.Register("Sales Order", func(ctx context.Context, name string) (*graph.LinksResponse, error) {
		calls.Add(1)
		<-release
		return sampleResponse(), nil
	})
	s := NewService(r, testLogger(&buf))

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Links(context.Background(), "Sales Order", "SO-1"); err != nil {
				t.Error(err)
			}
		}()
	}
	// Give the goroutines time to join the in-flight call
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := calls.Load(); n < 1 || n > 5 {
		t.Errorf("procedure called %d times", n)
	}
}

func TestService_CancelledCallerDoesNotFailOthers(t *testing.T) {
	var buf bytes.Buffer
	var calls atomic.Int32
	started := make(chan struct{}, 5)
	release := make(chan struct{})
	r := NewRegistry()
	r.Register("Sales Order", func(ctx context.Context, name string) (*graph.LinksResponse, error) {
		calls.Add(1)
		started <- struct{}{}
		select {
		case <-release:
			return sampleResponse(), nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})
	s := NewService(r, testLogger(&buf))

	first, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := s.Links(first, "Sales Order", "SO-1")
		firstErr <- err
	}()
	<-started

	secondErr := make(chan error, 1)
	go func() {
		_, err := s.Links(context.Background(), "Sales Order", "SO-1")
		secondErr <- err
	}()
	// Let the second caller join the in-flight fetch
	time.Sleep(20 * time.Millisecond)

	cancel()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled caller: expected context.Canceled, got %v", err)
	}

	close(release)
	if err := <-secondErr; err != nil {
		t.Fatalf("live caller failed: %v", err)
	}
	if n := calls.Load(); n < 1 {
		t.Errorf("procedure called %d times", n)
	}
}

func TestService_NestedOption(t *testing.T) {
	var buf bytes.Buffer
	resp := &graph.LinksResponse{Items: []graph.SourceItem{{
		ItemCode: "A", ItemName: "A", Qty: 1,
		PurchaseOrders: []graph.LinkedRecord{{
			UniqueID: "PO-1", PurchaseOrder: "PO-1",
			PurchaseReceipts: []graph.LinkedRecord{{UniqueID: "PR-1", PurchaseReceipt: "PR-1"}},
		}},
	}}}
	r := NewRegistry()
	r.Register("Sales Order", staticProcedure(resp))

	flat, err := NewService(r, testLogger(&buf)).Graph(context.Background(), "Sales Order", "SO-1")
	if err != nil {
		t.Fatal(err)
	}
	nested, err := NewService(r, testLogger(&buf), graph.WithNested()).Graph(context.Background(), "Sales Order", "SO-1")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := flat.Node("PR-1"); ok {
		t.Error("receipt should not be linked without the nested option")
	}
	if _, ok := nested.Node("PR-1"); !ok {
		t.Error("receipt should be linked with the nested option")
	}
}

func TestRegistry_Doctypes(t *testing.T) {
	r := NewRegistry()
	r.Register("Sales Order", staticProcedure(nil))
	r.Register("Material Request", staticProcedure(nil))
	got := r.Doctypes()
	if len(got) != 2 || got[0] != "Material Request" || got[1] != "Sales Order" {
		t.Errorf("Doctypes() = %v", got)
	}
}

func TestNoticeFor(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{fmt.Errorf("wrapped: %w", graph.ErrEmptyInput), "Invalid data format or no items to display."},
		{errors.New("connection reset"), "Error fetching linked documents."},
	}
	for _, tt := range tests {
		if got := NoticeFor(tt.err).Message; got != tt.want {
			t.Errorf("NoticeFor(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

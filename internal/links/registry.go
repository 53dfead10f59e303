package links

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rionatty/ampower-visualize/internal/db"
	"github.com/rionatty/ampower-visualize/internal/graph"
)

// ErrUnsupportedDocumentType means no procedure walks links for a document
// type. It marks a leaf in the traversal, not a fault.
var ErrUnsupportedDocumentType = errors.New("unsupported document type")

// Procedure collects the linked records of one root document
type Procedure func(ctx context.Context, name string) (*graph.LinksResponse, error)

// Registry maps document types to their link-traversal procedures
type Registry struct {
	procedures map[string]Procedure
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{procedures: make(map[string]Procedure)}
}

// DefaultRegistry wires the procedures backed by the document store
func DefaultRegistry(store *db.DB) *Registry {
	r := NewRegistry()
	r.Register(db.DoctypeSalesOrder, store.SalesOrderLinks)
	return r
}

// Register adds or replaces the procedure for a document type
func (r *Registry) Register(doctype string, p Procedure) {
	r.procedures[doctype] = p
}

// Lookup returns the procedure for a document type
func (r *Registry) Lookup(doctype string) (Procedure, error) {
	p, ok := r.procedures[strings.TrimSpace(doctype)]
	if !ok {
		return nil, fmt.Errorf("%q: %w", doctype, ErrUnsupportedDocumentType)
	}
	return p, nil
}

// Doctypes returns the registered document types, sorted
func (r *Registry) Doctypes() []string {
	out := make([]string, 0, len(r.procedures))
	for dt := range r.procedures {
		out = append(out, dt)
	}
	sort.Strings(out)
	return out
}

package graph

import (
	"fmt"
	"strconv"
	"strings"
)

// Option configures Build
type Option func(*builder)

// WithNested also links the records nested under material requests
// (purchase orders) and purchase orders (purchase invoices and receipts).
func WithNested() Option {
	return func(b *builder) { b.nested = true }
}

type builder struct {
	g      *Graph
	nested bool
}

// ParentID is the node id of a line item: item code and quantity.
// Items with the same code and quantity share one node.
func ParentID(itemCode string, qty float64) string {
	return itemCode + "-" + FormatQty(qty)
}

// FormatQty renders a quantity with the fewest digits that round-trip
func FormatQty(qty float64) string {
	return strconv.FormatFloat(qty, 'f', -1, 64)
}

// Build converts the line items of a root document into a graph.
//
// Nodes and edges are appended in input order. Every line item becomes a
// parent node, every linked record a child node keyed by its unique id, and
// every node left without an inbound edge is linked from the synthetic root.
// Records without a unique id are skipped and reported in Graph.Skipped.
func Build(items []SourceItem, rootName string, opts ...Option) (*Graph, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("no source items: %w", ErrEmptyInput)
	}
	if strings.TrimSpace(rootName) == "" {
		return nil, fmt.Errorf("no root document name: %w", ErrEmptyInput)
	}

	b := &builder{g: &Graph{index: make(map[string]int)}}
	for _, opt := range opts {
		opt(b)
	}

	for _, item := range items {
		parentID := ParentID(item.ItemCode, item.Qty)
		b.addNode(Node{
			ID:       parentID,
			Label:    fmt.Sprintf("%s\n(%s)", item.ItemName, item.ItemCode),
			Type:     TypeSalesOrderItem,
			Qty:      item.Qty,
			IsParent: true,
			Expanded: collapsed(),
		})

		b.link(parentID, TypeSalesInvoice, item.SalesInvoices)
		b.link(parentID, TypeDeliveryNote, item.DeliveryNotes)
		b.link(parentID, TypeMaterialRequest, item.MaterialRequests)
		b.link(parentID, TypePurchaseOrder, item.PurchaseOrders)
	}

	b.addNode(Node{
		ID:       RootID,
		Label:    rootName,
		Type:     TypeRoot,
		IsParent: true,
		Expanded: collapsed(),
	})
	b.connectOrphans()

	return b.g, nil
}

// addNode appends n unless a node with the same id exists. Returns true if
// n was added.
func (b *builder) addNode(n Node) bool {
	if _, exists := b.g.index[n.ID]; exists {
		return false
	}
	b.g.index[n.ID] = len(b.g.Nodes)
	b.g.Nodes = append(b.g.Nodes, n)
	return true
}

func (b *builder) link(parentID string, category NodeType, records []LinkedRecord) {
	for _, rec := range records {
		name := DisplayName(rec, category)
		if strings.TrimSpace(rec.UniqueID) == "" {
			b.g.Skipped = append(b.g.Skipped, &RecordError{
				Category: category,
				ParentID: parentID,
				Name:     name,
				Reason:   "missing unique_id",
			})
			continue
		}

		label := name
		if label == "" {
			label = rec.UniqueID
		}
		added := b.addNode(Node{
			ID:     rec.UniqueID,
			Label:  label,
			Type:   category,
			Qty:    rec.Qty,
			Status: rec.Status,
		})
		// A child may hang off several parents
		b.g.Links = append(b.g.Links, Edge{Source: parentID, Target: rec.UniqueID})

		// Nested records are the same for every occurrence of a record
		if !b.nested || !added {
			continue
		}
		switch category {
		case TypeMaterialRequest:
			b.link(rec.UniqueID, TypePurchaseOrder, rec.PurchaseOrders)
		case TypePurchaseOrder:
			b.link(rec.UniqueID, TypePurchaseInvoice, rec.PurchaseInvoices)
			b.link(rec.UniqueID, TypePurchaseReceipt, rec.PurchaseReceipts)
		}
	}
}

func (b *builder) connectOrphans() {
	targets := make(map[string]bool, len(b.g.Links))
	for _, e := range b.g.Links {
		targets[e.Target] = true
	}
	for _, n := range b.g.Nodes {
		if n.ID != RootID && !targets[n.ID] {
			b.g.Links = append(b.g.Links, Edge{Source: RootID, Target: n.ID})
		}
	}
}

// DisplayName returns the category-specific name field of a record
func DisplayName(rec LinkedRecord, category NodeType) string {
	switch category {
	case TypeSalesInvoice:
		return rec.SalesInvoice
	case TypeDeliveryNote:
		return rec.DeliveryNote
	case TypeMaterialRequest:
		return rec.MaterialRequest
	case TypePurchaseOrder:
		return rec.PurchaseOrder
	case TypePurchaseInvoice:
		return rec.PurchaseInvoice
	case TypePurchaseReceipt:
		return rec.PurchaseReceipt
	default:
		return ""
	}
}

func collapsed() *bool {
	v := false
	return &v
}

package db

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ImportFile is the document dump accepted by ImportDocuments
type ImportFile struct {
	Documents []Document `json:"documents"`
}

// ParseImportFile decodes a document dump
func ParseImportFile(r io.Reader) (*ImportFile, error) {
	var f ImportFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &f, nil
}

// ImportDocuments upserts documents and replaces their item rows in a single
// transaction. Returns the number of item rows written.
func (d *DB) ImportDocuments(ctx context.Context, docs []Document) (int, error) {
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback()

	rows := 0
	for _, doc := range docs {
		if strings.TrimSpace(doc.Doctype) == "" || strings.TrimSpace(doc.Name) == "" {
			return 0, fmt.Errorf("document missing doctype or name: %+v", doc)
		}
		status := doc.Status
		if status == "" {
			status = "Draft"
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO documents (doctype, name, status) VALUES (?, ?, ?)
			ON CONFLICT (doctype, name) DO UPDATE SET status = excluded.status
		`, doc.Doctype, doc.Name, status); err != nil {
			return 0, fmt.Errorf("upserting %s %s: %w", doc.Doctype, doc.Name, err)
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM document_items WHERE parent_doctype = ? AND parent = ?`,
			doc.Doctype, doc.Name,
		); err != nil {
			return 0, fmt.Errorf("clearing items of %s %s: %w", doc.Doctype, doc.Name, err)
		}

		idxs, err := itemIndexes(doc.Items)
		if err != nil {
			return 0, fmt.Errorf("%s %s: %w", doc.Doctype, doc.Name, err)
		}

		for i, item := range doc.Items {
			itemDoctype := item.Doctype
			if itemDoctype == "" {
				itemDoctype = ItemDoctype(doc.Doctype)
			}
			idx := idxs[i]
			name := item.Name
			if name == "" {
				name = fmt.Sprintf("%s-%d", doc.Name, idx)
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO document_items (
					doctype, parent_doctype, parent, idx, name, item_code, item_name, qty,
					sales_order, sales_order_item, material_request, purchase_order
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
				itemDoctype, doc.Doctype, doc.Name, idx, name, item.ItemCode, item.ItemName, item.Qty,
				nullable(item.SalesOrder), nullable(item.SalesOrderItem),
				nullable(item.MaterialReq), nullable(item.PurchaseOrder),
			); err != nil {
				return 0, fmt.Errorf("inserting item %d of %s %s: %w", idx, doc.Doctype, doc.Name, err)
			}
			rows++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}
	return rows, nil
}

// itemIndexes returns the idx of every item. Items without one are numbered
// after the highest explicit idx, in order.
func itemIndexes(items []DocumentItem) ([]int, error) {
	seen := make(map[int]bool, len(items))
	next := 1
	for _, item := range items {
		if item.Idx == 0 {
			continue
		}
		if item.Idx < 0 {
			return nil, fmt.Errorf("item %s has negative idx %d", item.ItemCode, item.Idx)
		}
		if seen[item.Idx] {
			return nil, fmt.Errorf("duplicate idx %d", item.Idx)
		}
		seen[item.Idx] = true
		if item.Idx >= next {
			next = item.Idx + 1
		}
	}

	out := make([]int, len(items))
	for i, item := range items {
		if item.Idx != 0 {
			out[i] = item.Idx
			continue
		}
		out[i] = next
		next++
	}
	return out, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetDocument returns a single document without its items, or
// ErrDocumentNotFound
func (d *DB) GetDocument(ctx context.Context, doctype, name string) (*Document, error) {
	var doc Document
	err := d.conn.QueryRowContext(ctx,
		`SELECT doctype, name, status FROM documents WHERE doctype = ? AND name = ?`,
		doctype, name,
	).Scan(&doc.Doctype, &doc.Name, &doc.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s %s: %w", doctype, name, ErrDocumentNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// SearchByNamePrefix finds non-cancelled documents of a type whose name
// starts with the given prefix
func (d *DB) SearchByNamePrefix(ctx context.Context, doctype, prefix string, limit int) ([]Document, error) {
	rows, err := d.conn.QueryContext(ctx, `
		SELECT doctype, name, status FROM documents
		WHERE doctype = ? AND name LIKE ? ESCAPE '\' AND status != ?
		ORDER BY name LIMIT ?
	`, doctype, escapeLike(prefix)+"%", StatusCancelled, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.Doctype, &doc.Name, &doc.Status); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// scanItem scans a row into a DocumentItem. The row must have the columns
// listed in itemColumns, in order.
func scanItem(scanner interface{ Scan(dest ...any) error }) (DocumentItem, error) {
	var it DocumentItem
	var so, soi, mr, po sql.NullString
	err := scanner.Scan(
		&it.Doctype, &it.Parent, &it.Idx, &it.Name, &it.ItemCode, &it.ItemName, &it.Qty,
		&so, &soi, &mr, &po,
	)
	it.SalesOrder = so.String
	it.SalesOrderItem = soi.String
	it.MaterialReq = mr.String
	it.PurchaseOrder = po.String
	return it, err
}

const itemColumns = `doctype, parent, idx, name, item_code, item_name, qty,
	sales_order, sales_order_item, material_request, purchase_order`

// ItemsOf returns the item rows of a document ordered by idx
func (d *DB) ItemsOf(ctx context.Context, doctype, name string) ([]DocumentItem, error) {
	return d.queryItems(ctx, `
		SELECT `+itemColumns+` FROM document_items
		WHERE parent_doctype = ? AND parent = ? ORDER BY idx
	`, doctype, name)
}

func (d *DB) queryItems(ctx context.Context, query string, args ...any) ([]DocumentItem, error) {
	rows, err := d.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []DocumentItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}

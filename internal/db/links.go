package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rionatty/ampower-visualize/internal/graph"
)

// linkedRow is an item row joined with the status of its parent document
type linkedRow struct {
	DocumentItem
	Status string
}

// UniqueID identifies the row across all documents: parent-item_code-idx
func (r linkedRow) UniqueID() string {
	return fmt.Sprintf("%s-%s-%d", r.Parent, r.ItemCode, r.Idx)
}

// linkedRows returns the rows of itemDoctype matching the filter column,
// skipping rows whose parent document is cancelled. An empty itemCode
// matches any item.
func (d *DB) linkedRows(ctx context.Context, itemDoctype, column, value, itemCode string) ([]linkedRow, error) {
	query := `
		SELECT i.doctype, i.parent, i.idx, i.name, i.item_code, i.item_name, i.qty,
		       i.sales_order, i.sales_order_item, i.material_request, i.purchase_order,
		       d.status
		FROM document_items i
		JOIN documents d ON d.doctype = i.parent_doctype AND d.name = i.parent
		WHERE i.doctype = ? AND i.` + column + ` = ? AND d.status != ?`
	args := []any{itemDoctype, value, StatusCancelled}
	if itemCode != "" {
		query += ` AND i.item_code = ?`
		args = append(args, itemCode)
	}
	query += ` ORDER BY i.parent, i.idx`

	rows, err := d.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s by %s: %w", itemDoctype, column, err)
	}
	defer rows.Close()

	var out []linkedRow
	for rows.Next() {
		var r linkedRow
		var so, soi, mr, po sql.NullString
		if err := rows.Scan(
			&r.Doctype, &r.Parent, &r.Idx, &r.Name, &r.ItemCode, &r.ItemName, &r.Qty,
			&so, &soi, &mr, &po, &r.Status,
		); err != nil {
			return nil, err
		}
		r.SalesOrder, r.SalesOrderItem, r.MaterialReq, r.PurchaseOrder = so.String, soi.String, mr.String, po.String
		out = append(out, r)
	}
	return out, rows.Err()
}

// SalesOrderLinks walks every item of a sales order and collects the
// sales invoices, delivery notes, material requests and purchase orders
// raised against it. Purchase orders carry their invoices and receipts;
// material requests carry the purchase orders raised from them.
func (d *DB) SalesOrderLinks(ctx context.Context, name string) (*graph.LinksResponse, error) {
	so, err := d.GetDocument(ctx, DoctypeSalesOrder, name)
	if err != nil {
		return nil, err
	}

	soItems, err := d.ItemsOf(ctx, DoctypeSalesOrder, so.Name)
	if err != nil {
		return nil, fmt.Errorf("loading items of %s: %w", so.Name, err)
	}

	resp := &graph.LinksResponse{
		RootDocument: &graph.RootDocument{Name: so.Name, Status: so.Status},
		Items:        make([]graph.SourceItem, 0, len(soItems)),
	}

	for _, soItem := range soItems {
		item := graph.SourceItem{
			ItemCode: soItem.ItemCode,
			ItemName: soItem.ItemName,
			Qty:      soItem.Qty,
		}

		rows, err := d.linkedRows(ctx, DoctypeSalesInvoiceItem, "sales_order", so.Name, soItem.ItemCode)
		if err != nil {
			return nil, err
		}
		item.SalesInvoices = toRecords(rows, func(r *graph.LinkedRecord, parent string) { r.SalesInvoice = parent })

		rows, err = d.linkedRows(ctx, DoctypeDeliveryNoteItem, "sales_order", so.Name, soItem.ItemCode)
		if err != nil {
			return nil, err
		}
		item.DeliveryNotes = toRecords(rows, func(r *graph.LinkedRecord, parent string) { r.DeliveryNote = parent })

		rows, err = d.linkedRows(ctx, DoctypeMaterialRequestItem, "sales_order_item", soItem.Name, soItem.ItemCode)
		if err != nil {
			return nil, err
		}
		item.MaterialRequests = toRecords(rows, func(r *graph.LinkedRecord, parent string) { r.MaterialRequest = parent })
		for i := range item.MaterialRequests {
			mr := &item.MaterialRequests[i]
			mr.PurchaseOrders, err = d.purchaseOrders(ctx, "material_request", mr.MaterialRequest, "")
			if err != nil {
				return nil, err
			}
		}

		item.PurchaseOrders, err = d.purchaseOrders(ctx, "sales_order_item", soItem.Name, soItem.ItemCode)
		if err != nil {
			return nil, err
		}

		resp.Items = append(resp.Items, item)
	}

	return resp, nil
}

// purchaseOrders collects purchase order rows with their invoices and receipts
func (d *DB) purchaseOrders(ctx context.Context, column, value, itemCode string) ([]graph.LinkedRecord, error) {
	rows, err := d.linkedRows(ctx, DoctypePurchaseOrderItem, column, value, itemCode)
	if err != nil {
		return nil, err
	}
	pos := toRecords(rows, func(r *graph.LinkedRecord, parent string) { r.PurchaseOrder = parent })

	for i := range pos {
		po := &pos[i]
		pi, err := d.linkedRows(ctx, DoctypePurchaseInvoiceItem, "purchase_order", po.PurchaseOrder, "")
		if err != nil {
			return nil, err
		}
		po.PurchaseInvoices = toRecords(pi, func(r *graph.LinkedRecord, parent string) { r.PurchaseInvoice = parent })

		pr, err := d.linkedRows(ctx, DoctypePurchaseReceiptItem, "purchase_order", po.PurchaseOrder, "")
		if err != nil {
			return nil, err
		}
		po.PurchaseReceipts = toRecords(pr, func(r *graph.LinkedRecord, parent string) { r.PurchaseReceipt = parent })
	}
	return pos, nil
}

func toRecords(rows []linkedRow, setName func(r *graph.LinkedRecord, parent string)) []graph.LinkedRecord {
	records := make([]graph.LinkedRecord, 0, len(rows))
	for _, row := range rows {
		rec := graph.LinkedRecord{
			UniqueID: row.UniqueID(),
			ItemCode: row.ItemCode,
			Qty:      row.Qty,
			Status:   row.Status,
		}
		setName(&rec, row.Parent)
		records = append(records, rec)
	}
	return records
}

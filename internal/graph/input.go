package graph

// LinksResponse is the payload of a link-traversal procedure
type LinksResponse struct {
	RootDocument *RootDocument `json:"sales_order,omitempty"`
	Items        []SourceItem  `json:"items"`
}

// RootDocument identifies the document the traversal started from
type RootDocument struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// SourceItem is one line item of a root document with its linked records
type SourceItem struct {
	ItemCode         string         `json:"item_code"`
	ItemName         string         `json:"item_name"`
	Qty              float64        `json:"sales_order_qty"`
	SalesInvoices    []LinkedRecord `json:"sales_invoices"`
	DeliveryNotes    []LinkedRecord `json:"delivery_notes"`
	MaterialRequests []LinkedRecord `json:"material_requests"`
	PurchaseOrders   []LinkedRecord `json:"purchase_orders"`
}

// LinkedRecord is one document row linked to a line item. Exactly one of the
// name fields is set, depending on the category the record belongs to.
type LinkedRecord struct {
	UniqueID        string  `json:"unique_id"`
	ItemCode        string  `json:"item_code,omitempty"`
	Qty             float64 `json:"qty"`
	Status          string  `json:"status,omitempty"`
	SalesInvoice    string  `json:"sales_invoice,omitempty"`
	DeliveryNote    string  `json:"delivery_note,omitempty"`
	MaterialRequest string  `json:"material_request,omitempty"`
	PurchaseOrder   string  `json:"purchase_order,omitempty"`
	PurchaseInvoice string  `json:"purchase_invoice,omitempty"`
	PurchaseReceipt string  `json:"purchase_receipt,omitempty"`

	PurchaseOrders   []LinkedRecord `json:"purchase_orders,omitempty"`   // material requests only
	PurchaseInvoices []LinkedRecord `json:"purchase_invoices,omitempty"` // purchase orders only
	PurchaseReceipts []LinkedRecord `json:"purchase_receipts,omitempty"` // purchase orders only
}

package db

// Document represents a row in the documents table
type Document struct {
	Doctype string         `json:"doctype"` // "Sales Order", "Sales Invoice", "Delivery Note", ...
	Name    string         `json:"name"`
	Status  string         `json:"status"` // "Draft", "Submitted", "Cancelled", ...
	Items   []DocumentItem `json:"items,omitempty"`
}

// DocumentItem represents a row in the document_items table.
// The link columns hold the upstream document a row was created against.
type DocumentItem struct {
	Doctype        string  `json:"doctype"` // child doctype, e.g. "Sales Invoice Item"
	Parent         string  `json:"parent"`
	Idx            int     `json:"idx"`
	Name           string  `json:"name"` // row id
	ItemCode       string  `json:"item_code"`
	ItemName       string  `json:"item_name"`
	Qty            float64 `json:"qty"`
	SalesOrder     string  `json:"sales_order,omitempty"`
	SalesOrderItem string  `json:"sales_order_item,omitempty"`
	MaterialReq    string  `json:"material_request,omitempty"`
	PurchaseOrder  string  `json:"purchase_order,omitempty"`
}

// Doctype names as stored in the documents table
const (
	DoctypeSalesOrder          = "Sales Order"
	DoctypeSalesOrderItem      = "Sales Order Item"
	DoctypeSalesInvoice        = "Sales Invoice"
	DoctypeSalesInvoiceItem    = "Sales Invoice Item"
	DoctypeDeliveryNote        = "Delivery Note"
	DoctypeDeliveryNoteItem    = "Delivery Note Item"
	DoctypeMaterialRequest     = "Material Request"
	DoctypeMaterialRequestItem = "Material Request Item"
	DoctypePurchaseOrder       = "Purchase Order"
	DoctypePurchaseOrderItem   = "Purchase Order Item"
	DoctypePurchaseInvoice     = "Purchase Invoice"
	DoctypePurchaseInvoiceItem = "Purchase Invoice Item"
	DoctypePurchaseReceipt     = "Purchase Receipt"
	DoctypePurchaseReceiptItem = "Purchase Receipt Item"

	StatusCancelled = "Cancelled"
)

// ItemDoctype returns the child table doctype for a parent doctype
func ItemDoctype(doctype string) string {
	return doctype + " Item"
}

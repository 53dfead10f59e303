package render

import "github.com/rionatty/ampower-visualize/internal/graph"

// DefaultColor fills nodes of unknown type
const DefaultColor = "#69b3a2"

// NodeColors are the fill colours per node type
var NodeColors = map[graph.NodeType]string{
	graph.TypeSalesOrderItem:  "#ff59d0",
	graph.TypeSalesInvoice:    "#3498db",
	graph.TypeDeliveryNote:    "#e74c3c",
	graph.TypeMaterialRequest: "#f39c12",
	graph.TypePurchaseOrder:   "#2ecc71",
	graph.TypePurchaseInvoice: "#9b59b6",
	graph.TypePurchaseReceipt: "#34495e",
	graph.TypeRoot:            "#b0b336",
}

// Square sizes in pixels
const (
	ParentNodeSize  = 60
	DefaultNodeSize = 36
)

// LegendEntry is one swatch in the legend
type LegendEntry struct {
	Type  graph.NodeType `json:"type"`
	Label string         `json:"label"`
	Color string         `json:"color"`
}

var legendLabels = map[graph.NodeType]string{
	graph.TypeRoot:            "Root Document",
	graph.TypeSalesOrderItem:  "Sales Order Item",
	graph.TypeSalesInvoice:    "Sales Invoice",
	graph.TypeDeliveryNote:    "Delivery Note",
	graph.TypeMaterialRequest: "Material Request",
	graph.TypePurchaseOrder:   "Purchase Order",
	graph.TypePurchaseInvoice: "Purchase Invoice",
	graph.TypePurchaseReceipt: "Purchase Receipt",
}

// Legend returns the legend entries in display order
func Legend() []LegendEntry {
	out := make([]LegendEntry, 0, len(graph.NodeTypes))
	for _, t := range graph.NodeTypes {
		out = append(out, LegendEntry{Type: t, Label: legendLabels[t], Color: ColorOf(t)})
	}
	return out
}

// ColorOf returns the fill colour of a node type
func ColorOf(t graph.NodeType) string {
	if c, ok := NodeColors[t]; ok {
		return c
	}
	return DefaultColor
}

// SizeOf returns the square size of a node
func SizeOf(n graph.Node) int {
	if n.IsParent {
		return ParentNodeSize
	}
	return DefaultNodeSize
}

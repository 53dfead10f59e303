package graph

// NodeType tags what kind of document a node stands for
type NodeType string

const (
	TypeRoot            NodeType = "root"
	TypeSalesOrderItem  NodeType = "sales_order_item"
	TypeSalesInvoice    NodeType = "sales_invoice"
	TypeDeliveryNote    NodeType = "delivery_note"
	TypeMaterialRequest NodeType = "material_request"
	TypePurchaseOrder   NodeType = "purchase_order"
	TypePurchaseInvoice NodeType = "purchase_invoice"
	TypePurchaseReceipt NodeType = "purchase_receipt"
)

// NodeTypes lists every node type in legend order
var NodeTypes = []NodeType{
	TypeRoot,
	TypeSalesOrderItem,
	TypeSalesInvoice,
	TypeDeliveryNote,
	TypeMaterialRequest,
	TypePurchaseOrder,
	TypePurchaseInvoice,
	TypePurchaseReceipt,
}

// Valid reports whether t is one of the known node types
func (t NodeType) Valid() bool {
	for _, known := range NodeTypes {
		if t == known {
			return true
		}
	}
	return false
}

// RootID is the id of the synthetic root node
const RootID = "root"

// Node is a graph node as consumed by the renderer
type Node struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Type     NodeType `json:"type"`
	Qty      float64  `json:"qty"`
	Status   string   `json:"status,omitempty"`
	IsParent bool     `json:"is_parent"`
	Expanded *bool    `json:"expanded,omitempty"` // parents only
}

// Edge links a source node to a target node. Display fields are read from
// the target.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Graph is the node/edge structure handed to the renderer. It is not
// modified after Build returns.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Edge `json:"links"`

	// Skipped holds one *RecordError per linked record left out of the graph
	Skipped []error `json:"-"`

	index map[string]int
}

// Node returns the node with the given id
func (g *Graph) Node(id string) (Node, bool) {
	if g.index == nil {
		g.reindex()
	}
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.Nodes[i], true
}

// Root returns the synthetic root node
func (g *Graph) Root() (Node, bool) {
	return g.Node(RootID)
}

func (g *Graph) reindex() {
	g.index = make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		if _, seen := g.index[n.ID]; !seen {
			g.index[n.ID] = i
		}
	}
}

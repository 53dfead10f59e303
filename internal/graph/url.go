package graph

import (
	"regexp"
	"strings"
)

var itemCodePattern = regexp.MustCompile(`\((.*?)\)`)

// PathSegment maps a node type to the document route segment
func PathSegment(t NodeType) string {
	switch t {
	case TypeRoot:
		return "sales-order"
	case TypeSalesOrderItem:
		return "item"
	default:
		return strings.ReplaceAll(string(t), "_", "-")
	}
}

// DocumentName extracts the document identifier from a node label: the
// parenthesised item code for line items, the first word otherwise.
func DocumentName(t NodeType, label string) string {
	if t == TypeSalesOrderItem {
		if m := itemCodePattern.FindStringSubmatch(label); m != nil {
			return m[1]
		}
	}
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// DocumentPath returns the browser path of the document behind a node
func DocumentPath(t NodeType, label string) string {
	return "/app/" + PathSegment(t) + "/" + DocumentName(t, label)
}

// DocumentURL prefixes DocumentPath with the site base URL
func DocumentURL(baseURL string, n Node) string {
	return strings.TrimRight(baseURL, "/") + DocumentPath(n.Type, n.Label)
}

package links

import "strings"

// Selection remembers the document type and document last picked by one
// viewer so that re-picking the same values does not redraw the graph
type Selection struct {
	Doctype  string
	Document string
}

// SelectDoctype records a document type. Returns true if it changed, in
// which case the document is cleared.
func (s *Selection) SelectDoctype(doctype string) bool {
	doctype = strings.TrimSpace(doctype)
	if doctype == "" || doctype == s.Doctype {
		return false
	}
	s.Doctype = doctype
	s.Document = ""
	return true
}

// SelectDocument records a document. Returns true if the graph needs to be
// redrawn.
func (s *Selection) SelectDocument(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || name == s.Document {
		return false
	}
	s.Document = name
	return true
}

// Ready reports whether both a document type and a document are selected
func (s *Selection) Ready() bool {
	return s.Doctype != "" && s.Document != ""
}

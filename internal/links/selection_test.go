package links

import "testing"

func TestSelection(t *testing.T) {
	var s Selection

	if s.SelectDocument("") {
		t.Error("blank document should not trigger a redraw")
	}
	if !s.SelectDoctype("Sales Order") {
		t.Error("first doctype should be a change")
	}
	if s.SelectDoctype("Sales Order") {
		t.Error("same doctype should not be a change")
	}
	if s.Ready() {
		t.Error("no document selected yet")
	}
	if !s.SelectDocument("SO-100") {
		t.Error("first document should trigger a redraw")
	}
	if s.SelectDocument(" SO-100 ") {
		t.Error("same document should not trigger a redraw")
	}
	if !s.Ready() {
		t.Error("doctype and document are selected")
	}
	if !s.SelectDocument("SO-101") {
		t.Error("new document should trigger a redraw")
	}

	if !s.SelectDoctype("Material Request") {
		t.Error("new doctype should be a change")
	}
	if s.Document != "" {
		t.Errorf("changing doctype should clear the document, got %q", s.Document)
	}
	if !s.SelectDocument("SO-101") {
		t.Error("re-picking a document after a doctype change should redraw")
	}
}

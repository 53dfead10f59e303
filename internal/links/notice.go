package links

import (
	"errors"

	"github.com/rionatty/ampower-visualize/internal/db"
	"github.com/rionatty/ampower-visualize/internal/graph"
)

// Indicator colours of a notice
const (
	IndicatorYellow = "yellow"
	IndicatorRed    = "red"
)

// Notice is the user-facing message for a failed graph request
type Notice struct {
	Message   string `json:"error"`
	Indicator string `json:"indicator"`
}

// NoticeFor maps an error from Service.Graph to the message shown to the user
func NoticeFor(err error) Notice {
	switch {
	case err == nil:
		return Notice{}
	case errors.Is(err, ErrUnsupportedDocumentType):
		return Notice{Message: "This is the last node.", Indicator: IndicatorRed}
	case errors.Is(err, graph.ErrEmptyInput):
		return Notice{Message: "Invalid data format or no items to display.", Indicator: IndicatorRed}
	case errors.Is(err, db.ErrDocumentNotFound):
		return Notice{Message: "Document not found.", Indicator: IndicatorYellow}
	default:
		return Notice{Message: "Error fetching linked documents.", Indicator: IndicatorRed}
	}
}

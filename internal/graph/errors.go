package graph

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyInput      = errors.New("empty input")
	ErrMalformedRecord = errors.New("malformed record")
)

// RecordError describes a linked record that was left out of the graph
type RecordError struct {
	Category NodeType
	ParentID string // node the record would have been linked from
	Name     string // display name, may be empty
	Reason   string
}

func (e *RecordError) Error() string {
	name := e.Name
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Sprintf("%s %s under %s: %s", e.Category, name, e.ParentID, e.Reason)
}

func (e *RecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

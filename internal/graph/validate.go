package graph

import (
	"errors"
	"fmt"
)

// Validate checks the structural invariants of a built graph: unique node
// ids, a single root, edge endpoints that exist, and an inbound edge for
// every non-root node. All violations are returned joined.
func Validate(g *Graph) error {
	var errs []error

	ids := make(map[string]bool, len(g.Nodes))
	roots := 0
	for _, n := range g.Nodes {
		if ids[n.ID] {
			errs = append(errs, fmt.Errorf("duplicate node id %q", n.ID))
		}
		ids[n.ID] = true
		if !n.Type.Valid() {
			errs = append(errs, fmt.Errorf("node %q has unknown type %q", n.ID, n.Type))
		}
		if n.Type == TypeRoot {
			roots++
			if n.ID != RootID {
				errs = append(errs, fmt.Errorf("root node has id %q, want %q", n.ID, RootID))
			}
		}
	}
	if roots != 1 {
		errs = append(errs, fmt.Errorf("graph has %d root nodes, want 1", roots))
	}

	inbound := make(map[string]bool, len(g.Links))
	for _, e := range g.Links {
		if !ids[e.Source] {
			errs = append(errs, fmt.Errorf("edge %s -> %s: unknown source", e.Source, e.Target))
		}
		if !ids[e.Target] {
			errs = append(errs, fmt.Errorf("edge %s -> %s: unknown target", e.Source, e.Target))
		}
		inbound[e.Target] = true
	}
	for _, n := range g.Nodes {
		if n.ID != RootID && !inbound[n.ID] {
			errs = append(errs, fmt.Errorf("node %q has no inbound edge", n.ID))
		}
	}

	return errors.Join(errs...)
}

package graph

import "sort"

// HubNode is a node with high connectivity
type HubNode struct {
	ID        string   `json:"id"`
	Label     string   `json:"label"`
	Type      NodeType `json:"type"`
	Degree    int      `json:"degree"`
	InDegree  int      `json:"in_degree"`
	OutDegree int      `json:"out_degree"`
}

// DegreeBucket is one bucket in the degree histogram
type DegreeBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TypeCount is the number of nodes of one type
type TypeCount struct {
	Type  NodeType `json:"type"`
	Count int      `json:"count"`
}

// TopologyReport contains topology analysis results
type TopologyReport struct {
	TotalNodes       int            `json:"total_nodes"`
	TotalEdges       int            `json:"total_edges"`
	ParentNodes      int            `json:"parent_nodes"`
	SharedChildren   int            `json:"shared_children"` // children linked from more than one node
	NumComponents    int            `json:"num_components"`
	LargestComponent int            `json:"largest_component"`
	OrphanCount      int            `json:"orphan_count"` // non-root nodes without an inbound edge
	OrphanIDs        []string       `json:"orphan_ids"`
	UnreachableCount int            `json:"unreachable_count"` // nodes the root cannot reach
	UnreachableIDs   []string       `json:"unreachable_ids"`
	TypeCounts       []TypeCount    `json:"type_counts"`
	DegreeHistogram  []DegreeBucket `json:"degree_histogram"`
	Hubs             []HubNode      `json:"hubs"`
}

// ComputeTopology analyzes graph topology: components, orphans, reachability
// from the root, degree distribution, hubs
func ComputeTopology(snap *Snapshot, hubThreshold, topN int) *TopologyReport {
	g := snap.Graph
	report := &TopologyReport{
		TotalNodes:      len(g.Nodes),
		TotalEdges:      len(g.Links),
		DegreeHistogram: defaultHistogram(),
	}
	if len(g.Nodes) == 0 {
		return report
	}

	components := snap.Components()
	report.NumComponents = len(components)
	for _, c := range components {
		if len(c) > report.LargestComponent {
			report.LargestComponent = len(c)
		}
	}

	reachable := snap.Reachable(RootID)
	counts := make(map[NodeType]int)
	var orphans, unreachable []string
	var hubs []HubNode

	for i, node := range g.Nodes {
		counts[node.Type]++
		if node.IsParent {
			report.ParentNodes++
		}
		in := len(snap.InAdj[i])
		if !node.IsParent && in > 1 {
			report.SharedChildren++
		}
		if node.ID != RootID && in == 0 {
			orphans = append(orphans, node.ID)
		}
		if !reachable[i] {
			unreachable = append(unreachable, node.ID)
		}

		degree := len(snap.Adj[i])
		report.DegreeHistogram[degreeBucket(degree)].Count++
		if degree > hubThreshold {
			hubs = append(hubs, HubNode{
				ID:        node.ID,
				Label:     node.Label,
				Type:      node.Type,
				Degree:    degree,
				InDegree:  in,
				OutDegree: len(snap.OutAdj[i]),
			})
		}
	}

	report.OrphanCount = len(orphans)
	report.OrphanIDs = truncate(orphans, topN)
	report.UnreachableCount = len(unreachable)
	report.UnreachableIDs = truncate(unreachable, topN)

	for _, t := range NodeTypes {
		if counts[t] > 0 {
			report.TypeCounts = append(report.TypeCounts, TypeCount{Type: t, Count: counts[t]})
		}
	}

	sort.SliceStable(hubs, func(i, j int) bool { return hubs[i].Degree > hubs[j].Degree })
	report.Hubs = truncateHubs(hubs, topN)

	return report
}

func truncate(ids []string, n int) []string {
	if len(ids) > n {
		return ids[:n]
	}
	return ids
}

func truncateHubs(hubs []HubNode, n int) []HubNode {
	if len(hubs) > n {
		return hubs[:n]
	}
	return hubs
}

func defaultHistogram() []DegreeBucket {
	return []DegreeBucket{
		{Label: "0"}, {Label: "1"}, {Label: "2-3"},
		{Label: "4-7"}, {Label: "8-15"}, {Label: "16-31"}, {Label: "32+"},
	}
}

func degreeBucket(degree int) int {
	switch {
	case degree == 0:
		return 0
	case degree == 1:
		return 1
	case degree <= 3:
		return 2
	case degree <= 7:
		return 3
	case degree <= 15:
		return 4
	case degree <= 31:
		return 5
	default:
		return 6
	}
}

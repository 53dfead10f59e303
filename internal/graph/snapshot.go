package graph

// Snapshot holds a graph with precomputed adjacency lists, indexed by node
// position in Graph.Nodes
type Snapshot struct {
	Graph  *Graph
	IDs    []string
	Pos    map[string]int
	Adj    [][]int // undirected
	OutAdj [][]int // directed: source -> targets
	InAdj  [][]int // directed: target -> sources

	// DanglingEdges counts edges whose endpoints are not both nodes
	DanglingEdges int
}

// NewSnapshot builds adjacency lists for g. Edges with unknown endpoints are
// counted and left out.
func NewSnapshot(g *Graph) *Snapshot {
	n := len(g.Nodes)
	s := &Snapshot{
		Graph:  g,
		IDs:    make([]string, n),
		Pos:    make(map[string]int, n),
		Adj:    make([][]int, n),
		OutAdj: make([][]int, n),
		InAdj:  make([][]int, n),
	}
	for i, node := range g.Nodes {
		s.IDs[i] = node.ID
		if _, dup := s.Pos[node.ID]; !dup {
			s.Pos[node.ID] = i
		}
	}

	for _, e := range g.Links {
		u, okU := s.Pos[e.Source]
		v, okV := s.Pos[e.Target]
		if !okU || !okV {
			s.DanglingEdges++
			continue
		}
		s.Adj[u] = append(s.Adj[u], v)
		s.Adj[v] = append(s.Adj[v], u)
		s.OutAdj[u] = append(s.OutAdj[u], v)
		s.InAdj[v] = append(s.InAdj[v], u)
	}
	return s
}

// Reachable returns the positions reachable from the node with the given id
// along directed edges, including the start node
func (s *Snapshot) Reachable(fromID string) map[int]bool {
	seen := make(map[int]bool)
	start, ok := s.Pos[fromID]
	if !ok {
		return seen
	}
	queue := []int{start}
	seen[start] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range s.OutAdj[cur] {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return seen
}

package graph

// disjointSet is a union-find over node positions with path halving and
// union by size
type disjointSet struct {
	parent []int
	size   []int
}

func newDisjointSet(n int) *disjointSet {
	ds := &disjointSet{parent: make([]int, n), size: make([]int, n)}
	for i := range ds.parent {
		ds.parent[i] = i
		ds.size[i] = 1
	}
	return ds
}

func (ds *disjointSet) find(x int) int {
	for ds.parent[x] != x {
		ds.parent[x] = ds.parent[ds.parent[x]]
		x = ds.parent[x]
	}
	return x
}

func (ds *disjointSet) union(a, b int) {
	ra, rb := ds.find(a), ds.find(b)
	if ra == rb {
		return
	}
	if ds.size[ra] < ds.size[rb] {
		ra, rb = rb, ra
	}
	ds.parent[rb] = ra
	ds.size[ra] += ds.size[rb]
}

// Components returns the weakly connected components of the snapshot as
// lists of node ids, in order of first appearance
func (s *Snapshot) Components() [][]string {
	ds := newDisjointSet(len(s.IDs))
	for u, targets := range s.OutAdj {
		for _, v := range targets {
			ds.union(u, v)
		}
	}

	slot := make(map[int]int)
	var out [][]string
	for i, id := range s.IDs {
		root := ds.find(i)
		k, ok := slot[root]
		if !ok {
			k = len(out)
			slot[root] = k
			out = append(out, nil)
		}
		out[k] = append(out[k], id)
	}
	return out
}

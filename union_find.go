package meshtopo

// disjointSet is a union-find forest with path halving and union by size.
type disjointSet struct {
	parent []int
	size   []int
}

func newDisjointSet(n int) *disjointSet {
	d := &disjointSet{
		parent: make([]int, n),
		size:   make([]int, n),
	}
	for i := range d.parent {
		d.parent[i] = i
		d.size[i] = 1
	}
	return d
}

func (d *disjointSet) find(x int) int {
	for d.parent[x] != x {
		d.parent[x] = d.parent[d.parent[x]]
		x = d.parent[x]
	}
	return x
}

// union merges the sets holding a and b and reports whether they were apart.
func (d *disjointSet) union(a, b int) bool {
	ra, rb := d.find(a), d.find(b)
	if ra == rb {
		return false
	}
	if d.size[ra] < d.size[rb] {
		ra, rb = rb, ra
	}
	d.parent[rb] = ra
	d.size[ra] += d.size[rb]
	return true
}

// labels numbers the sets 0..n-1 in order of their smallest element.
func (d *disjointSet) labels() ([]int, int) {
	out := make([]int, len(d.parent))
	rootLabel := make(map[int]int)
	for i := range d.parent {
		r := d.find(i)
		l, ok := rootLabel[r]
		if !ok {
			l = len(rootLabel)
			rootLabel[r] = l
		}
		out[i] = l
	}
	return out, len(rootLabel)
}

package meshtopo

// edgeFilter selects the edges across which faces around a vertex stay
// joined.
type edgeFilter func(m *PolygonMesh, e int) bool

func anyEdge(*PolygonMesh, int) bool { return true }

func regularEdge(m *PolygonMesh, e int) bool { return len(m.edgeUses[e]) == 2 }

// fanClusters splits the star of v into clusters of faces joined across
// edges incident to v that pass keep. The returned labels are parallel to
// the star and numbered in star order, so the lowest face is in cluster 0.
func (m *PolygonMesh) fanClusters(v int, keep edgeFilter) ([]int, int) {
	star := m.vertexFaces[v]
	if len(star) <= 1 {
		return make([]int, len(star)), len(star)
	}

	ds := newDisjointSet(len(star))
	for i, c := range m.vertexCorners[v] {
		f := star[i]
		// The two edges of f meeting at v.
		for _, e := range [2]int{m.cornerEdge[c], m.cornerEdge[m.prevCorner(f, c)]} {
			if !keep(m, e) {
				continue
			}
			for _, u := range m.edgeUses[e] {
				if u.Face != f {
					ds.union(i, m.starIndex(v, u.Face))
				}
			}
		}
	}
	return ds.labels()
}

// FanCount returns the number of fans meeting at v: 0 for an isolated vertex,
// 1 for a vertex whose faces are joined through edges at v.
func (m *PolygonMesh) FanCount(v int) int {
	_, n := m.fanClusters(v, anyEdge)
	return n
}

// IsSingularVertex reports whether the faces around v form more than one fan.
func (m *PolygonMesh) IsSingularVertex(v int) bool {
	return m.FanCount(v) > 1
}

// SingularVertices lists the singular vertices in ascending order.
func (m *PolygonMesh) SingularVertices() []int {
	var out []int
	for v := 0; v < m.numVertices; v++ {
		if m.IsSingularVertex(v) {
			out = append(out, v)
		}
	}
	return out
}

// CutThroughSingularVertices gives every fan of a singular vertex its own
// copy of the vertex. The fan holding the lowest face keeps the original id;
// the other fans get new ids numbered from NumVertices upward, by vertex and
// then by fan. It returns false and no repair when no vertex is singular.
func (m *PolygonMesh) CutThroughSingularVertices() (*Repair, bool) {
	cornerVertex, vertexMap, split := m.splitVertices(anyEdge)
	if !split {
		return nil, false
	}
	return &Repair{
		VertexMap:  vertexMap,
		CoordIndex: m.relabelCorners(func(c int) int { return cornerVertex[c] }),
	}, true
}

// splitVertices assigns every corner a vertex id after splitting each vertex
// into its fan clusters. Unsplit vertices keep their ids.
func (m *PolygonMesh) splitVertices(keep edgeFilter) ([]int, []int, bool) {
	cornerVertex := make([]int, len(m.faceVerts))
	copy(cornerVertex, m.faceVerts)

	vertexMap := make([]int, m.numVertices, m.numVertices+m.numVertices/8)
	for v := range vertexMap {
		vertexMap[v] = v
	}

	for v := 0; v < m.numVertices; v++ {
		labels, n := m.fanClusters(v, keep)
		if n <= 1 {
			continue
		}
		ids := make([]int, n)
		ids[0] = v
		for k := 1; k < n; k++ {
			ids[k] = len(vertexMap)
			vertexMap = append(vertexMap, v)
		}
		for i, c := range m.vertexCorners[v] {
			cornerVertex[c] = ids[labels[i]]
		}
	}
	return cornerVertex, vertexMap, len(vertexMap) > m.numVertices
}

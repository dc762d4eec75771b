package meshtopo

import "sort"

// IsBoundaryEdge reports whether exactly one face uses edge e.
func (m *PolygonMesh) IsBoundaryEdge(e int) bool {
	return len(m.edgeUses[e]) == 1
}

// IsRegularEdge reports whether exactly two faces use edge e.
func (m *PolygonMesh) IsRegularEdge(e int) bool {
	return len(m.edgeUses[e]) == 2
}

// IsSingularEdge reports whether three or more faces use edge e.
func (m *PolygonMesh) IsSingularEdge(e int) bool {
	return len(m.edgeUses[e]) > 2
}

// SingularEdges lists the edges used by three or more faces.
func (m *PolygonMesh) SingularEdges() []Edge {
	var out []Edge
	for e, key := range m.edges {
		if m.IsSingularEdge(e) {
			out = append(out, key)
		}
	}
	sortEdges(out)
	return out
}

// IsBoundaryVertex reports whether v lies on a boundary edge.
func (m *PolygonMesh) IsBoundaryVertex(v int) bool {
	for i, c := range m.vertexCorners[v] {
		f := m.vertexFaces[v][i]
		if m.IsBoundaryEdge(m.cornerEdge[c]) || m.IsBoundaryEdge(m.cornerEdge[m.prevCorner(f, c)]) {
			return true
		}
	}
	return false
}

func sortEdges(edges []Edge) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].V0 != edges[j].V0 {
			return edges[i].V0 < edges[j].V0
		}
		return edges[i].V1 < edges[j].V1
	})
}

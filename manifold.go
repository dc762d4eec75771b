package meshtopo

// ConvertToManifold cuts the mesh along its singular edges and through its
// singular vertices, then drops the vertices no face references. VertexMap of
// the result maps the output vertices to vertices of m.
//
// Faces around a vertex stay joined only across regular edges. Each face has
// two edges at a vertex, so the faces joined this way form a path or a cycle
// in which a face whose other edge is singular can only be an end. A cluster
// therefore holds at most two of the faces on any singular edge, and after
// the split every edge is shared by at most two faces and every vertex is a
// single fan.
//
// It returns false and no repair when the mesh needs no cut and has no
// isolated vertex.
func (m *PolygonMesh) ConvertToManifold() (*Repair, bool) {
	cornerVertex, splitMap, split := m.splitVertices(regularEdge)

	referenced := make([]bool, len(splitMap))
	for _, v := range cornerVertex {
		referenced[v] = true
	}
	keptMap, oldToNew := compactVertices(referenced)
	if !split && len(keptMap) == m.numVertices {
		return nil, false
	}

	vertexMap := make([]int, len(keptMap))
	for i, v := range keptMap {
		vertexMap[i] = splitMap[v]
	}
	return &Repair{
		VertexMap:  vertexMap,
		CoordIndex: m.relabelCorners(func(c int) int { return oldToNew[cornerVertex[c]] }),
	}, true
}

// IsManifold reports whether every edge has at most two faces and every
// vertex a single fan.
func (m *PolygonMesh) IsManifold() bool {
	for e := range m.edges {
		if m.IsSingularEdge(e) {
			return false
		}
	}
	for v := 0; v < m.numVertices; v++ {
		if m.IsSingularVertex(v) {
			return false
		}
	}
	return true
}

package meshtopo

// Repair is a rewritten face list over a new vertex numbering. VertexMap[i]
// is the vertex of the input mesh that new vertex i was made from, so any
// per-vertex attribute can be rebuilt as attr[VertexMap[i]].
type Repair struct {
	VertexMap  []int
	CoordIndex []int
}

// NumVertices returns the size of the new vertex pool.
func (r *Repair) NumVertices() int {
	return len(r.VertexMap)
}

// Mesh builds the incidence index of the repaired face list.
func (r *Repair) Mesh() (*PolygonMesh, error) {
	return NewPolygonMesh(len(r.VertexMap), r.CoordIndex)
}

// IsolatedVertices lists the vertices no face references, in ascending order.
func (m *PolygonMesh) IsolatedVertices() []int {
	var out []int
	for v, faces := range m.vertexFaces {
		if len(faces) == 0 {
			out = append(out, v)
		}
	}
	return out
}

// RemoveIsolatedVertices drops every unreferenced vertex and renumbers the
// rest, keeping their relative order. It returns false and no repair when
// every vertex is referenced.
func (m *PolygonMesh) RemoveIsolatedVertices() (*Repair, bool) {
	referenced := make([]bool, m.numVertices)
	for v, faces := range m.vertexFaces {
		referenced[v] = len(faces) > 0
	}
	coordMap, oldToNew := compactVertices(referenced)
	if len(coordMap) == m.numVertices {
		return nil, false
	}
	return &Repair{
		VertexMap:  coordMap,
		CoordIndex: m.relabelCorners(func(c int) int { return oldToNew[m.faceVerts[c]] }),
	}, true
}

// compactVertices numbers the kept vertices consecutively. It returns the
// new-to-old map and the old-to-new map, with -1 for dropped vertices.
func compactVertices(keep []bool) ([]int, []int) {
	newToOld := make([]int, 0, len(keep))
	oldToNew := make([]int, len(keep))
	for v, k := range keep {
		if !k {
			oldToNew[v] = -1
			continue
		}
		oldToNew[v] = len(newToOld)
		newToOld = append(newToOld, v)
	}
	return newToOld, oldToNew
}

// relabelCorners writes the face list with each corner's vertex given by
// vertexOf.
func (m *PolygonMesh) relabelCorners(vertexOf func(c int) int) []int {
	out := make([]int, 0, len(m.faceVerts)+m.NumFaces())
	for f := 0; f < m.NumFaces(); f++ {
		for c := m.faceStart[f]; c < m.faceStart[f+1]; c++ {
			out = append(out, vertexOf(c))
		}
		out = append(out, -1)
	}
	return out
}

package meshtopo

// ConnectedComponentsPrimal labels faces by connected component, two faces
// being connected when they share an edge. Labels start at 0 and follow the
// order in which components are first reached scanning faces in input order.
func (m *PolygonMesh) ConnectedComponentsPrimal() ([]int, int) {
	label := make([]int, m.NumFaces())
	for f := range label {
		label[f] = -1
	}

	nCC := 0
	queue := make([]int, 0, 16)
	for seed := range label {
		if label[seed] >= 0 {
			continue
		}
		label[seed] = nCC
		queue = append(queue[:0], seed)
		for len(queue) > 0 {
			f := queue[0]
			queue = queue[1:]
			for c := m.faceStart[f]; c < m.faceStart[f+1]; c++ {
				for _, u := range m.edgeUses[m.cornerEdge[c]] {
					if label[u.Face] < 0 {
						label[u.Face] = nCC
						queue = append(queue, u.Face)
					}
				}
			}
		}
		nCC++
	}
	return label, nCC
}

// ConnectedComponentsDual labels every vertex of the pool by connected
// component, two vertices being connected when some face holds both.
// Unreferenced vertices form singleton components. Labels are assigned in
// ascending vertex order.
func (m *PolygonMesh) ConnectedComponentsDual() ([]int, int) {
	ds := newDisjointSet(m.numVertices)
	for f := 0; f < m.NumFaces(); f++ {
		verts := m.face(f)
		for _, v := range verts[1:] {
			ds.union(verts[0], v)
		}
	}
	return ds.labels()
}

// ComponentSizes counts the elements carrying each of the nCC labels.
func ComponentSizes(label []int, nCC int) []int {
	sizes := make([]int, nCC)
	for _, l := range label {
		sizes[l]++
	}
	return sizes
}

// Package meshtopo analyzes and repairs the topology of polygon meshes given
// as faces over a shared pool of vertex ids. It never looks at coordinates:
// every operation works on the integer index arrays alone.
//
// A mesh is built once with NewPolygonMesh and is read-only afterwards, so a
// single *PolygonMesh may be queried from several goroutines. Repairs return
// a new face list together with a new-to-old vertex map; the caller decides
// whether to commit them.
package meshtopo

import (
	"fmt"
	"sort"
)

// Edge is an undirected edge between two vertices, stored with V0 < V1.
type Edge struct {
	V0, V1 int
}

// NewEdge returns the edge joining a and b.
func NewEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{V0: a, V1: b}
}

// EdgeUse is one occurrence of an edge in a face. Forward is set when the
// face walks the edge from V0 to V1. Corner is the position in the face of the
// vertex the traversal starts from.
type EdgeUse struct {
	Face    int
	Corner  int
	Forward bool
}

// PolygonMesh is the incidence index of a face list.
type PolygonMesh struct {
	numVertices int

	// faces are stored back to back in faceVerts; face f spans
	// faceVerts[faceStart[f]:faceStart[f+1]]. A corner is a position in
	// faceVerts.
	faceStart []int
	faceVerts []int

	vertexFaces   [][]int // ascending face ids
	vertexCorners [][]int // parallel to vertexFaces

	edges      []Edge
	edgeUses   [][]EdgeUse
	edgeIndex  map[Edge]int
	cornerEdge []int // edge leaving each corner
}

// NewPolygonMesh decodes coordIndex and builds the incidence index. Faces are
// runs of vertex ids ended by a negative marker; the last run may omit it.
// Every face needs at least three distinct ids in [0, numVertices).
func NewPolygonMesh(numVertices int, coordIndex []int) (*PolygonMesh, error) {
	if numVertices <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVertexCount, numVertices)
	}

	m := &PolygonMesh{
		numVertices: numVertices,
		faceStart:   []int{0},
		faceVerts:   make([]int, 0, len(coordIndex)),
	}

	// seen[v] holds the last face that used v, shifted by one so the zero
	// value means "never".
	seen := make([]int, numVertices)
	open := false
	for _, v := range coordIndex {
		if v < 0 {
			if err := m.closeFace(seen); err != nil {
				return nil, err
			}
			open = false
			continue
		}
		m.faceVerts = append(m.faceVerts, v)
		open = true
	}
	if open {
		if err := m.closeFace(seen); err != nil {
			return nil, err
		}
	}

	m.buildIncidence()
	return m, nil
}

// NewPolygonMeshFromFaces builds a mesh from an explicit face table.
func NewPolygonMeshFromFaces(numVertices int, faces [][]int) (*PolygonMesh, error) {
	return NewPolygonMesh(numVertices, encodeFaces(faces))
}

func (m *PolygonMesh) closeFace(seen []int) error {
	f := len(m.faceStart) - 1
	verts := m.faceVerts[m.faceStart[f]:]
	if len(verts) < 3 {
		return &FaceError{Face: f, Vertex: -1, Err: ErrTooFewVertices}
	}
	for _, v := range verts {
		if v >= m.numVertices {
			return &FaceError{Face: f, Vertex: v, Err: ErrVertexOutOfRange}
		}
		if seen[v] == f+1 {
			return &FaceError{Face: f, Vertex: v, Err: ErrRepeatedVertex}
		}
		seen[v] = f + 1
	}
	m.faceStart = append(m.faceStart, len(m.faceVerts))
	return nil
}

func (m *PolygonMesh) buildIncidence() {
	m.vertexFaces = make([][]int, m.numVertices)
	m.vertexCorners = make([][]int, m.numVertices)
	m.cornerEdge = make([]int, len(m.faceVerts))
	m.edgeIndex = make(map[Edge]int, len(m.faceVerts)/2)

	for f := 0; f < m.NumFaces(); f++ {
		start, end := m.faceStart[f], m.faceStart[f+1]
		n := end - start
		for i := 0; i < n; i++ {
			c := start + i
			a := m.faceVerts[c]
			b := m.faceVerts[start+(i+1)%n]

			m.vertexFaces[a] = append(m.vertexFaces[a], f)
			m.vertexCorners[a] = append(m.vertexCorners[a], c)

			key := NewEdge(a, b)
			e, ok := m.edgeIndex[key]
			if !ok {
				e = len(m.edges)
				m.edgeIndex[key] = e
				m.edges = append(m.edges, key)
				m.edgeUses = append(m.edgeUses, nil)
			}
			m.cornerEdge[c] = e
			m.edgeUses[e] = append(m.edgeUses[e], EdgeUse{Face: f, Corner: i, Forward: a == key.V0})
		}
	}
}

// NumVertices returns the size of the vertex pool, referenced or not.
func (m *PolygonMesh) NumVertices() int {
	return m.numVertices
}

func (m *PolygonMesh) NumFaces() int {
	return len(m.faceStart) - 1
}

func (m *PolygonMesh) NumEdges() int {
	return len(m.edges)
}

// NumCorners returns the total face degree.
func (m *PolygonMesh) NumCorners() int {
	return len(m.faceVerts)
}

func (m *PolygonMesh) FaceSize(f int) int {
	return m.faceStart[f+1] - m.faceStart[f]
}

// Face returns a copy of the vertex ids of face f in traversal order.
func (m *PolygonMesh) Face(f int) []int {
	return append([]int(nil), m.face(f)...)
}

func (m *PolygonMesh) face(f int) []int {
	return m.faceVerts[m.faceStart[f]:m.faceStart[f+1]]
}

// FaceVertex returns the i-th vertex of face f.
func (m *PolygonMesh) FaceVertex(f, i int) int {
	return m.faceVerts[m.faceStart[f]+i]
}

// VertexFaces returns the faces incident to v in ascending order.
func (m *PolygonMesh) VertexFaces(v int) []int {
	return append([]int(nil), m.vertexFaces[v]...)
}

// VertexDegree returns the number of faces incident to v.
func (m *PolygonMesh) VertexDegree(v int) int {
	return len(m.vertexFaces[v])
}

func (m *PolygonMesh) Edge(e int) Edge {
	return m.edges[e]
}

// EdgeUses lists the faces traversing edge e in face order.
func (m *PolygonMesh) EdgeUses(e int) []EdgeUse {
	return append([]EdgeUse(nil), m.edgeUses[e]...)
}

// FindEdge returns the id of the edge joining a and b.
func (m *PolygonMesh) FindEdge(a, b int) (int, bool) {
	e, ok := m.edgeIndex[NewEdge(a, b)]
	return e, ok
}

// CornerEdge returns the edge from the i-th vertex of face f to the next one.
func (m *PolygonMesh) CornerEdge(f, i int) int {
	return m.cornerEdge[m.faceStart[f]+i]
}

// CoordIndex returns the face list with every face ended by -1.
func (m *PolygonMesh) CoordIndex() []int {
	out := make([]int, 0, len(m.faceVerts)+m.NumFaces())
	for f := 0; f < m.NumFaces(); f++ {
		out = append(out, m.face(f)...)
		out = append(out, -1)
	}
	return out
}

// cornerPosition returns the position of global corner c inside face f.
func (m *PolygonMesh) cornerPosition(f, c int) int {
	return c - m.faceStart[f]
}

// prevCorner returns the corner before c in its face.
func (m *PolygonMesh) prevCorner(f, c int) int {
	start, n := m.faceStart[f], m.FaceSize(f)
	return start + (c-start+n-1)%n
}

// starIndex returns the position of face f in the star of v.
func (m *PolygonMesh) starIndex(v, f int) int {
	return sort.SearchInts(m.vertexFaces[v], f)
}

func encodeFaces(faces [][]int) []int {
	n := 0
	for _, f := range faces {
		n += len(f) + 1
	}
	out := make([]int, 0, n)
	for _, f := range faces {
		out = append(out, f...)
		out = append(out, -1)
	}
	return out
}

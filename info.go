package meshtopo

import (
	"fmt"
	"strings"
)

// MeshInfo summarizes the topology of a mesh.
type MeshInfo struct {
	NumVertices int
	NumFaces    int
	NumEdges    int
	NumCorners  int

	BoundaryEdges int
	RegularEdges  int
	SingularEdges int

	IsolatedVertices int
	BoundaryVertices int
	SingularVertices int

	Components int

	IsRegular   bool
	HasBoundary bool
	IsOriented  bool
}

// Info classifies every edge and vertex of m.
func (m *PolygonMesh) Info() MeshInfo {
	info := MeshInfo{
		NumVertices: m.numVertices,
		NumFaces:    m.NumFaces(),
		NumEdges:    m.NumEdges(),
		NumCorners:  m.NumCorners(),
	}
	for e := range m.edges {
		switch {
		case m.IsBoundaryEdge(e):
			info.BoundaryEdges++
		case m.IsRegularEdge(e):
			info.RegularEdges++
		default:
			info.SingularEdges++
		}
	}
	for v := 0; v < m.numVertices; v++ {
		if len(m.vertexFaces[v]) == 0 {
			info.IsolatedVertices++
			continue
		}
		if m.IsBoundaryVertex(v) {
			info.BoundaryVertices++
		}
		if m.IsSingularVertex(v) {
			info.SingularVertices++
		}
	}
	_, info.Components = m.ConnectedComponentsPrimal()
	info.IsRegular = info.SingularEdges == 0 && info.SingularVertices == 0
	info.HasBoundary = info.BoundaryEdges > 0
	info.IsOriented = m.IsOriented()
	return info
}

// String renders the summary one field per line.
func (i MeshInfo) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "nVertices         = %d\n", i.NumVertices)
	fmt.Fprintf(&sb, "nFaces            = %d\n", i.NumFaces)
	fmt.Fprintf(&sb, "nCorners          = %d\n", i.NumCorners)
	fmt.Fprintf(&sb, "nEdges            = %d\n", i.NumEdges)
	fmt.Fprintf(&sb, "  boundary        = %d\n", i.BoundaryEdges)
	fmt.Fprintf(&sb, "  regular         = %d\n", i.RegularEdges)
	fmt.Fprintf(&sb, "  singular        = %d\n", i.SingularEdges)
	fmt.Fprintf(&sb, "isolatedVertices  = %d\n", i.IsolatedVertices)
	fmt.Fprintf(&sb, "boundaryVertices  = %d\n", i.BoundaryVertices)
	fmt.Fprintf(&sb, "singularVertices  = %d\n", i.SingularVertices)
	fmt.Fprintf(&sb, "nCC               = %d\n", i.Components)
	fmt.Fprintf(&sb, "isRegular         = %t\n", i.IsRegular)
	fmt.Fprintf(&sb, "hasBoundary       = %t\n", i.HasBoundary)
	fmt.Fprintf(&sb, "isOriented        = %t\n", i.IsOriented)
	return sb.String()
}

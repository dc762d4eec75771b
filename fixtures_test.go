package meshtopo

import "testing"

// Small meshes shared by the tests. Each is listed as a vertex count and a
// face table.

type fixture struct {
	numVertices int
	faces       [][]int
}

var (
	triangle = fixture{3, [][]int{{0, 1, 2}}}

	// Closed, consistently oriented tetrahedron.
	tetrahedron = fixture{4, [][]int{
		{0, 2, 1},
		{0, 1, 3},
		{0, 3, 2},
		{1, 2, 3},
	}}

	// Closed, consistently oriented cube made of quads.
	cube = fixture{8, [][]int{
		{0, 3, 2, 1},
		{4, 5, 6, 7},
		{0, 1, 5, 4},
		{1, 2, 6, 5},
		{2, 3, 7, 6},
		{3, 0, 4, 7},
	}}

	// Band of six triangles closed with a half twist.
	mobius = fixture{6, [][]int{
		{0, 3, 1},
		{3, 4, 1},
		{1, 4, 2},
		{4, 5, 2},
		{2, 5, 3},
		{5, 0, 3},
	}}

	// Two fans of two triangles meeting only at vertex 0.
	bowtie = fixture{7, [][]int{
		{0, 1, 2},
		{0, 2, 3},
		{0, 4, 5},
		{0, 5, 6},
	}}

	// Three triangles hinged on edge {0,1}.
	book = fixture{5, [][]int{
		{0, 1, 2},
		{1, 0, 3},
		{0, 1, 4},
	}}

	// Two triangles walking the shared edge the same way.
	misoriented = fixture{4, [][]int{
		{0, 1, 2},
		{0, 1, 3},
	}}
)

// grid returns an oriented n x n grid of quads over (n+1)^2 vertices.
func grid(n int) fixture {
	fx := fixture{numVertices: (n + 1) * (n + 1)}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a := i*(n+1) + j
			fx.faces = append(fx.faces, []int{a, a + 1, a + n + 2, a + n + 1})
		}
	}
	return fx
}

func (fx fixture) mesh(t *testing.T) *PolygonMesh {
	t.Helper()
	m, err := NewPolygonMeshFromFaces(fx.numVertices, fx.faces)
	if err != nil {
		t.Fatalf("NewPolygonMeshFromFaces: %v", err)
	}
	return m
}

// withFlipped returns a copy of fx with the listed faces reversed.
func (fx fixture) withFlipped(faces ...int) fixture {
	out := fixture{numVertices: fx.numVertices, faces: make([][]int, len(fx.faces))}
	for i, f := range fx.faces {
		out.faces[i] = append([]int(nil), f...)
	}
	for _, f := range faces {
		v := out.faces[f]
		for i, j := 0, len(v)-1; i < j; i, j = i+1, j-1 {
			v[i], v[j] = v[j], v[i]
		}
	}
	return out
}

// join places b after a, shifting b's vertex ids past a's pool.
func join(a, b fixture) fixture {
	out := fixture{numVertices: a.numVertices + b.numVertices}
	out.faces = append(out.faces, a.faces...)
	for _, f := range b.faces {
		g := make([]int, len(f))
		for i, v := range f {
			g[i] = v + a.numVertices
		}
		out.faces = append(out.faces, g)
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

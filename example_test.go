package meshtopo_test

import (
	"fmt"

	"github.com/smasonuk/meshtopo"
)

func ExamplePolygonMesh_Orient() {
	// Two triangles walking their shared edge 0->1 the same way.
	m, err := meshtopo.NewPolygonMesh(4, []int{0, 1, 2, -1, 0, 1, 3, -1})
	if err != nil {
		panic(err)
	}
	o := m.Orient()
	fmt.Println(o.Status, o.InvertFace)
	out, _ := o.Apply(m)
	fmt.Println(out)
	// Output:
	// reoriented [false true]
	// [0 1 2 -1 3 1 0 -1]
}

func ExamplePolygonMesh_CutThroughSingularVertices() {
	// Two triangles touching at vertex 0 only.
	m, err := meshtopo.NewPolygonMesh(5, []int{0, 1, 2, -1, 0, 3, 4, -1})
	if err != nil {
		panic(err)
	}
	r, ok := m.CutThroughSingularVertices()
	fmt.Println(ok, r.VertexMap, r.CoordIndex)
	// Output:
	// true [0 1 2 3 4 0] [0 1 2 -1 5 3 4 -1]
}

func ExamplePolygonMesh_RemoveIsolatedVertices() {
	m, err := meshtopo.NewPolygonMesh(6, []int{1, 3, 5, -1})
	if err != nil {
		panic(err)
	}
	r, ok := m.RemoveIsolatedVertices()
	fmt.Println(ok, r.VertexMap, r.CoordIndex)
	// Output:
	// true [1 3 5] [0 1 2 -1]
}

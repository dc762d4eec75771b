package meshtopo

import (
	"errors"
	"testing"
)

func TestIsOriented(t *testing.T) {
	testCases := []struct {
		name string
		fx   fixture
		want bool
	}{
		{"triangle", triangle, true},
		{"tetrahedron", tetrahedron, true},
		{"cube", cube, true},
		{"grid", grid(3), true},
		{"shared edge same direction", misoriented, false},
		{"cube with a flipped face", cube.withFlipped(2), false},
		{"book", book, false},
		{"mobius", mobius, false},
		{"bowtie", bowtie, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fx.mesh(t).IsOriented(); got != tc.want {
				t.Errorf("IsOriented = %t, want %t", got, tc.want)
			}
		})
	}
}

func TestIsOrientable(t *testing.T) {
	testCases := []struct {
		name string
		fx   fixture
		want bool
	}{
		{"triangle", triangle, true},
		{"cube", cube, true},
		{"cube with flipped faces", cube.withFlipped(0, 3, 5), true},
		{"shared edge same direction", misoriented, true},
		{"mobius", mobius, false},
		{"mobius next to a cube", join(cube, mobius), false},
		{"book", book, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fx.mesh(t).IsOrientable(); got != tc.want {
				t.Errorf("IsOrientable = %t, want %t", got, tc.want)
			}
		})
	}
}

func TestOrient(t *testing.T) {
	t.Run("already oriented", func(t *testing.T) {
		o := cube.mesh(t).Orient()
		if o.Status != AlreadyOriented {
			t.Fatalf("Status = %v, want %v", o.Status, AlreadyOriented)
		}
		if o.CCIndex != nil || o.InvertFace != nil {
			t.Errorf("flips set for an oriented mesh")
		}
	})

	t.Run("not orientable", func(t *testing.T) {
		o := join(grid(1), mobius).mesh(t).Orient()
		if o.Status != NonOrientable {
			t.Fatalf("Status = %v, want %v", o.Status, NonOrientable)
		}
		if o.CCIndex != nil || o.InvertFace != nil {
			t.Errorf("partial flips returned for a non-orientable mesh")
		}
	})

	t.Run("two faces", func(t *testing.T) {
		o := misoriented.mesh(t).Orient()
		if o.Status != Reoriented {
			t.Fatalf("Status = %v, want %v", o.Status, Reoriented)
		}
		if !equalInts(o.CCIndex, []int{0, 0}) {
			t.Errorf("CCIndex = %v, want [0 0]", o.CCIndex)
		}
		if o.InvertFace[0] || !o.InvertFace[1] {
			t.Errorf("InvertFace = %v, want [false true]", o.InvertFace)
		}
	})

	t.Run("components", func(t *testing.T) {
		fx := join(join(cube.withFlipped(1, 4), triangle), tetrahedron.withFlipped(0))
		m := fx.mesh(t)
		o := m.Orient()
		if o.Status != Reoriented {
			t.Fatalf("Status = %v, want %v", o.Status, Reoriented)
		}
		want := []int{0, 0, 0, 0, 0, 0, 1, 2, 2, 2, 2}
		if !equalInts(o.CCIndex, want) {
			t.Errorf("CCIndex = %v, want %v", o.CCIndex, want)
		}
		label, _ := m.ConnectedComponentsPrimal()
		if !equalInts(o.CCIndex, label) {
			t.Errorf("CCIndex %v differs from primal labels %v", o.CCIndex, label)
		}
		// The seed face of every component is kept.
		for _, f := range []int{0, 6, 7} {
			if o.InvertFace[f] {
				t.Errorf("seed face %d flipped", f)
			}
		}
	})
}

func TestOrientThenCheck(t *testing.T) {
	meshes := map[string]fixture{
		"misoriented":       misoriented,
		"cube":              cube.withFlipped(1, 2),
		"cube seed flipped": cube.withFlipped(0),
		"grid":              grid(3).withFlipped(0, 4, 5, 8),
		"tetrahedra":        join(tetrahedron.withFlipped(3), tetrahedron.withFlipped(0, 1)),
	}

	for name, fx := range meshes {
		t.Run(name, func(t *testing.T) {
			m := fx.mesh(t)
			if !m.IsOrientable() {
				t.Fatalf("IsOrientable = false")
			}
			o := m.Orient()
			if o.Status != Reoriented {
				t.Fatalf("Status = %v, want %v", o.Status, Reoriented)
			}
			out, err := o.Apply(m)
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			fixed, err := NewPolygonMesh(m.NumVertices(), out)
			if err != nil {
				t.Fatalf("NewPolygonMesh: %v", err)
			}
			if !fixed.IsOriented() {
				t.Errorf("flipped mesh is not oriented: %v", out)
			}
			if fixed.Orient().Status != AlreadyOriented {
				t.Errorf("second Orient did not report %v", AlreadyOriented)
			}
		})
	}
}

func TestFlipFaces(t *testing.T) {
	m := misoriented.mesh(t)
	out, err := m.FlipFaces([]bool{false, true})
	if err != nil {
		t.Fatal(err)
	}
	want := []int{0, 1, 2, -1, 3, 1, 0, -1}
	if !equalInts(out, want) {
		t.Errorf("FlipFaces = %v, want %v", out, want)
	}

	if _, err := m.FlipFaces([]bool{true}); !errors.Is(err, ErrFlipLength) {
		t.Errorf("err = %v, want %v", err, ErrFlipLength)
	}

	// Untouched statuses hand back the input face list.
	out, err = Orientation{Status: NonOrientable}.Apply(m)
	if err != nil || !equalInts(out, m.CoordIndex()) {
		t.Errorf("Apply on %v = %v, %v", NonOrientable, out, err)
	}
}

func TestOrientationStatusString(t *testing.T) {
	for s, want := range map[OrientationStatus]string{
		AlreadyOriented:      "already oriented",
		Reoriented:           "reoriented",
		NonOrientable:        "not orientable",
		OrientationStatus(7): "OrientationStatus(7)",
	} {
		if got := s.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}

package scene

import (
	"errors"
	"image/color"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func twoTriangles() *IndexedFaceSet {
	ifs := NewIndexedFaceSet()
	ifs.Coord = []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {-1, 0, 0}, {0, -1, 0}}
	ifs.CoordIndex = []int{0, 1, 2, -1, 0, 3, 4, -1}
	return ifs
}

func TestNumberOfFaces(t *testing.T) {
	testCases := []struct {
		name  string
		index []int
		want  int
	}{
		{"empty", nil, 0},
		{"terminated", []int{0, 1, 2, -1}, 1},
		{"last run unterminated", []int{0, 1, 2, -1, 2, 1, 3}, 2},
		{"two faces", []int{0, 1, 2, -1, 0, 3, 4, -1}, 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ifs := &IndexedFaceSet{CoordIndex: tc.index}
			if got := ifs.NumberOfFaces(); got != tc.want {
				t.Errorf("NumberOfFaces() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestApplyVertexMap(t *testing.T) {
	ifs := twoTriangles()
	ifs.Color = []color.RGBA{{R: 1}, {R: 2}, {R: 3}, {R: 4}, {R: 5}}
	ifs.Normal = []mgl64.Vec3{{0, 0, 1}}
	ifs.NormalPerVertex = false

	err := ifs.ApplyVertexMap([]int{0, 1, 2, 3, 4, 0}, []int{0, 1, 2, -1, 5, 3, 4, -1})
	if err != nil {
		t.Fatalf("ApplyVertexMap() error = %v", err)
	}
	if got := ifs.NumberOfCoord(); got != 6 {
		t.Fatalf("NumberOfCoord() = %d, want 6", got)
	}
	if ifs.Coord[5] != ifs.Coord[0] {
		t.Errorf("Coord[5] = %v, want copy of Coord[0] %v", ifs.Coord[5], ifs.Coord[0])
	}
	if ifs.Color[5] != (color.RGBA{R: 1}) {
		t.Errorf("Color[5] = %v, want color of vertex 0", ifs.Color[5])
	}
	if len(ifs.Normal) != 1 {
		t.Errorf("per-face normals changed: %v", ifs.Normal)
	}
	if want := []int{0, 1, 2, -1, 5, 3, 4, -1}; !reflect.DeepEqual(ifs.CoordIndex, want) {
		t.Errorf("CoordIndex = %v, want %v", ifs.CoordIndex, want)
	}
}

func TestApplyVertexMapErrors(t *testing.T) {
	testCases := []struct {
		name      string
		vertexMap []int
		index     []int
		wantFaces bool
	}{
		{"old vertex out of range", []int{0, 1, 9}, []int{0, 1, 2, -1, 0, 1, 2, -1}, false},
		{"negative old vertex", []int{-1}, []int{0, 0, 0, -1, 0, 0, 0, -1}, false},
		{"face count changed", []int{0, 1, 2}, []int{0, 1, 2, -1}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ifs := twoTriangles()
			err := ifs.ApplyVertexMap(tc.vertexMap, tc.index)
			if err == nil {
				t.Fatal("ApplyVertexMap() error = nil")
			}
			if got := errors.Is(err, ErrFaceCount); got != tc.wantFaces {
				t.Errorf("errors.Is(err, ErrFaceCount) = %v, want %v", got, tc.wantFaces)
			}
			if ifs.NumberOfCoord() != 5 {
				t.Errorf("face set modified on error")
			}
		})
	}
}

func TestReverseFaces(t *testing.T) {
	ifs := twoTriangles()
	ifs.TexCoord = []mgl64.Vec2{{0, 0}, {1, 0}, {0, 1}}
	ifs.TexCoordIndex = []int{0, 1, 2, -1, 2, 1, 0, -1}

	if err := ifs.ReverseFaces([]bool{false, true}); err != nil {
		t.Fatalf("ReverseFaces() error = %v", err)
	}
	if want := []int{0, 1, 2, -1, 4, 3, 0, -1}; !reflect.DeepEqual(ifs.CoordIndex, want) {
		t.Errorf("CoordIndex = %v, want %v", ifs.CoordIndex, want)
	}
	if want := []int{0, 1, 2, -1, 0, 1, 2, -1}; !reflect.DeepEqual(ifs.TexCoordIndex, want) {
		t.Errorf("TexCoordIndex = %v, want %v", ifs.TexCoordIndex, want)
	}

	if err := ifs.ReverseFaces([]bool{true}); !errors.Is(err, ErrFaceCount) {
		t.Errorf("ReverseFaces(short) error = %v, want ErrFaceCount", err)
	}
}

func TestRemoveProperties(t *testing.T) {
	ifs := twoTriangles()
	ifs.Normal = []mgl64.Vec3{{0, 0, 1}, {0, 0, 1}}
	ifs.NormalPerVertex = false
	ifs.Color = []color.RGBA{{R: 255}}
	ifs.TexCoord = []mgl64.Vec2{{0, 0}}
	ifs.TexCoordIndex = []int{0, 0, 0, -1, 0, 0, 0, -1}

	ifs.RemoveProperties()
	if ifs.Normal != nil || ifs.Color != nil || ifs.TexCoord != nil || ifs.TexCoordIndex != nil {
		t.Errorf("properties left after RemoveProperties: %+v", ifs)
	}
	if !ifs.NormalPerVertex || !ifs.ColorPerVertex {
		t.Errorf("bindings not reset")
	}
	if ifs.NumberOfCoord() != 5 || ifs.NumberOfFaces() != 2 {
		t.Errorf("geometry changed by RemoveProperties")
	}
}

func TestFaceSets(t *testing.T) {
	a, b := twoTriangles(), twoTriangles()
	sg := &SceneGraph{Children: []Node{
		&Group{Name: "root", Children: []Node{
			&Shape{Name: "a", Geometry: a},
			&Shape{Name: "lines", Geometry: &IndexedLineSet{}},
			&Group{Name: "inner", Children: []Node{&Shape{Name: "b", Geometry: b}}},
		}},
	}}

	var names []string
	sg.Walk(func(n Node) { names = append(names, n.NodeName()) })
	if want := []string{"root", "a", "lines", "inner", "b"}; !reflect.DeepEqual(names, want) {
		t.Errorf("Walk order = %v, want %v", names, want)
	}

	sets := sg.FaceSets()
	if len(sets) != 2 || sets[0] != a || sets[1] != b {
		t.Errorf("FaceSets() = %v, want [a b]", sets)
	}
}

func TestPointIndex(t *testing.T) {
	pi := NewPointIndex()
	pts := []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 0, 0}, {1, 0, 0}, {1, 1, 0}}
	var got []int
	for _, p := range pts {
		got = append(got, pi.Add(p))
	}
	if want := []int{0, 1, 0, 1, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("Add() indices = %v, want %v", got, want)
	}
	if pi.Len() != 3 {
		t.Errorf("Len() = %d, want 3", pi.Len())
	}
}

// Package scene holds the scene graph the command-line tools load meshes
// into, and the file formats they read and write.
package scene

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Node is an element of a scene graph.
type Node interface {
	NodeName() string
}

// Geometry is what a Shape draws.
type Geometry interface {
	GeometryType() string
}

// SceneGraph is the root of a loaded scene.
type SceneGraph struct {
	Children []Node
}

// Group gathers child nodes.
type Group struct {
	Name     string
	Children []Node
}

func (g *Group) NodeName() string { return g.Name }

// Shape binds a geometry into the scene.
type Shape struct {
	Name     string
	Geometry Geometry
}

func (s *Shape) NodeName() string { return s.Name }

// IndexedFaceSet is a polygon mesh. CoordIndex lists faces as runs of
// indices into Coord ended by -1.
//
// Normals and colors follow the VRML bindings: with the per-vertex flag set
// and an empty index they are indexed like Coord, with an index they are
// looked up per corner through an array parallel to CoordIndex; with the flag
// clear they are per face, directly or through the index. TexCoord is always
// per vertex or per corner.
type IndexedFaceSet struct {
	Coord      []mgl64.Vec3
	CoordIndex []int

	Normal          []mgl64.Vec3
	NormalIndex     []int
	NormalPerVertex bool

	Color          []color.RGBA
	ColorIndex     []int
	ColorPerVertex bool

	TexCoord      []mgl64.Vec2
	TexCoordIndex []int
}

// NewIndexedFaceSet returns an empty face set with per-vertex bindings.
func NewIndexedFaceSet() *IndexedFaceSet {
	return &IndexedFaceSet{NormalPerVertex: true, ColorPerVertex: true}
}

func (ifs *IndexedFaceSet) GeometryType() string { return "IndexedFaceSet" }

// IndexedLineSet is a set of polylines. The topology tools skip it.
type IndexedLineSet struct {
	Coord      []mgl64.Vec3
	CoordIndex []int
}

func (ils *IndexedLineSet) GeometryType() string { return "IndexedLineSet" }

// Walk visits every node depth first, parents before children.
func (sg *SceneGraph) Walk(fn func(Node)) {
	var walk func(nodes []Node)
	walk = func(nodes []Node) {
		for _, n := range nodes {
			fn(n)
			if g, ok := n.(*Group); ok {
				walk(g.Children)
			}
		}
	}
	walk(sg.Children)
}

// FaceSets returns the IndexedFaceSet of every Shape in traversal order.
func (sg *SceneGraph) FaceSets() []*IndexedFaceSet {
	var out []*IndexedFaceSet
	sg.Walk(func(n Node) {
		shape, ok := n.(*Shape)
		if !ok {
			return
		}
		if ifs, ok := shape.Geometry.(*IndexedFaceSet); ok {
			out = append(out, ifs)
		}
	})
	return out
}

// NewSceneGraph wraps a single face set in a shape.
func NewSceneGraph(name string, ifs *IndexedFaceSet) *SceneGraph {
	return &SceneGraph{Children: []Node{&Shape{Name: name, Geometry: ifs}}}
}

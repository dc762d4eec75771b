// Command meshview shows a mesh with its faces colored by connected
// component, boundary edges in yellow and singular edges in red.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/smasonuk/meshtopo"
	"github.com/smasonuk/meshtopo/scene"
	"github.com/smasonuk/meshtopo/view"
)

var (
	outlineColor  = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	boundaryColor = color.RGBA{R: 255, G: 220, B: 0, A: 255}
	singularColor = color.RGBA{R: 255, A: 255}
)

// shownMesh is one face set ready to draw.
type shownMesh struct {
	points     []mgl64.Vec3
	faces      [][]int
	faceColor  []color.RGBA
	boundary   []meshtopo.Edge
	singular   []meshtopo.Edge
	components int
}

func newShownMesh(ifs *scene.IndexedFaceSet, dual bool) (*shownMesh, error) {
	m, err := meshtopo.NewPolygonMesh(ifs.NumberOfCoord(), ifs.CoordIndex)
	if err != nil {
		return nil, err
	}
	sm := &shownMesh{points: ifs.Coord, faces: ifs.Faces()}
	var faceLabel func(f int) int
	if dual {
		// every vertex of a face carries the same vertex label
		label, n := m.ConnectedComponentsDual()
		faceLabel = func(f int) int { return label[sm.faces[f][0]] }
		sm.components = n
	} else {
		label, n := m.ConnectedComponentsPrimal()
		faceLabel = func(f int) int { return label[f] }
		sm.components = n
	}
	palette := view.Palette(sm.components)

	sm.faceColor = make([]color.RGBA, len(sm.faces))
	for f := range sm.faces {
		sm.faceColor[f] = palette[faceLabel(f)]
	}
	for e := 0; e < m.NumEdges(); e++ {
		if m.IsBoundaryEdge(e) {
			sm.boundary = append(sm.boundary, m.Edge(e))
		}
	}
	sm.singular = m.SingularEdges()
	return sm, nil
}

type Game struct {
	meshes        []*shownMesh
	projector     *view.Projector
	width, height int
	lastX, lastY  int
	isDragging    bool
	showEdges     bool
}

func NewGame(meshes []*shownMesh, width, height int) *Game {
	var all []mgl64.Vec3
	for _, sm := range meshes {
		all = append(all, sm.points...)
	}
	return &Game{
		meshes:    meshes,
		projector: view.NewProjector(all, width, height),
		width:     width,
		height:    height,
		showEdges: true,
	}
}

func (g *Game) Update() error {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.isDragging = true
		g.lastX, g.lastY = ebiten.CursorPosition()
	}
	if g.isDragging {
		x, y := ebiten.CursorPosition()
		dx := float64(x-g.lastX) / 200.0
		dy := float64(y-g.lastY) / 200.0
		g.projector.Orbit(-dx, dy)
		g.lastX, g.lastY = x, y
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.isDragging = false
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		g.projector.Zoom(1 - wy*0.1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.showEdges = !g.showEdges
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	eye := g.projector.Eye()
	light := eye.Sub(g.projector.Target)
	faces := 0

	for _, sm := range g.meshes {
		for _, f := range view.DepthOrder(sm.points, sm.faces, eye) {
			face := sm.faces[f]
			xp, yp, visible := g.projector.ProjectFace(sm.points, face)
			if !visible {
				continue
			}
			clr := view.Shade(sm.faceColor[f], view.FaceNormal(sm.points, face), light)
			fillPolygon(screen, xp, yp, clr)
			if g.showEdges {
				strokePath(screen, xp, yp, true, 1, outlineColor)
			}
			faces++
		}
		xs, ys, ok := g.projector.ProjectAll(sm.points)
		g.drawEdges(screen, sm.boundary, xs, ys, ok, 2, boundaryColor)
		g.drawEdges(screen, sm.singular, xs, ys, ok, 3, singularColor)
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %0.2f  faces: %d  [E] outlines", ebiten.ActualFPS(), faces))
}

func (g *Game) drawEdges(screen *ebiten.Image, edges []meshtopo.Edge, xs, ys []float32, ok []bool, width float32, clr color.RGBA) {
	for _, e := range edges {
		if !ok[e.V0] || !ok[e.V1] {
			continue
		}
		strokePath(screen, []float32{xs[e.V0], xs[e.V1]}, []float32{ys[e.V0], ys[e.V1]}, false, width, clr)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func main() {
	var (
		width  = flag.Int("width", 800, "window width")
		height = flag.Int("height", 600, "window height")
		dual   = flag.Bool("dual", false, "color components joined through shared vertices instead of edges")
	)
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatalf("usage: meshview [options] inFile")
	}

	sg, err := scene.DefaultRegistry(false).Load(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to load: %v", err)
	}

	var meshes []*shownMesh
	for i, ifs := range sg.FaceSets() {
		sm, err := newShownMesh(ifs, *dual)
		if err != nil {
			log.Printf("IndexedFaceSet %d skipped: %v", i, err)
			continue
		}
		log.Printf("IndexedFaceSet %d: %d faces, %d components, %d singular edges",
			i, len(sm.faces), sm.components, len(sm.singular))
		meshes = append(meshes, sm)
	}
	if len(meshes) == 0 {
		log.Fatalf("nothing to show in %s", flag.Arg(0))
	}

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("meshview " + flag.Arg(0))
	if err := ebiten.RunGame(NewGame(meshes, *width, *height)); err != nil {
		log.Fatal(err)
	}
}

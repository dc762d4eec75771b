package meshtopo

import "fmt"

// OrientationStatus is the outcome of Orient.
type OrientationStatus int

const (
	// AlreadyOriented means no directed edge is used twice; nothing to flip.
	AlreadyOriented OrientationStatus = iota
	// Reoriented means a set of face flips makes the mesh oriented.
	Reoriented
	// NonOrientable means no set of face flips can orient the mesh.
	NonOrientable
)

func (s OrientationStatus) String() string {
	switch s {
	case AlreadyOriented:
		return "already oriented"
	case Reoriented:
		return "reoriented"
	case NonOrientable:
		return "not orientable"
	}
	return fmt.Sprintf("OrientationStatus(%d)", int(s))
}

// Orientation is the result of Orient. CCIndex and InvertFace have one entry
// per face and are only set when Status is Reoriented.
type Orientation struct {
	Status     OrientationStatus
	CCIndex    []int
	InvertFace []bool
}

// Apply returns the face list of m with the flips of o applied. For any status
// other than Reoriented the face list is returned unchanged.
func (o Orientation) Apply(m *PolygonMesh) ([]int, error) {
	if o.Status != Reoriented {
		return m.CoordIndex(), nil
	}
	return m.FlipFaces(o.InvertFace)
}

// IsOriented reports whether every directed edge is used by at most one face.
func (m *PolygonMesh) IsOriented() bool {
	for _, uses := range m.edgeUses {
		forward, backward := 0, 0
		for _, u := range uses {
			if u.Forward {
				forward++
			} else {
				backward++
			}
		}
		if forward > 1 || backward > 1 {
			return false
		}
	}
	return true
}

// IsOrientable reports whether flipping some subset of faces makes the mesh
// oriented. A mesh with an edge shared by three or more faces never is.
func (m *PolygonMesh) IsOrientable() bool {
	_, _, ok := m.propagateOrientation()
	return ok
}

// Orient computes the per-face flips that orient each connected component,
// keeping the first face of every component as it is.
func (m *PolygonMesh) Orient() Orientation {
	if m.IsOriented() {
		return Orientation{Status: AlreadyOriented}
	}
	cc, invert, ok := m.propagateOrientation()
	if !ok {
		return Orientation{Status: NonOrientable}
	}
	return Orientation{Status: Reoriented, CCIndex: cc, InvertFace: invert}
}

// propagateOrientation walks every component breadth first from a kept seed,
// forcing each neighbour to traverse the shared edge in the opposite
// direction. It stops at the first face that would need both states.
func (m *PolygonMesh) propagateOrientation() ([]int, []bool, bool) {
	nf := m.NumFaces()
	cc := make([]int, nf)
	for f := range cc {
		cc[f] = -1
	}
	invert := make([]bool, nf)

	nCC := 0
	queue := make([]int, 0, 16)
	for seed := 0; seed < nf; seed++ {
		if cc[seed] >= 0 {
			continue
		}
		cc[seed] = nCC
		queue = append(queue[:0], seed)
		for len(queue) > 0 {
			f := queue[0]
			queue = queue[1:]
			for c := m.faceStart[f]; c < m.faceStart[f+1]; c++ {
				e := m.cornerEdge[c]
				forward := m.faceVerts[c] == m.edges[e].V0
				for _, u := range m.edgeUses[e] {
					if u.Face == f {
						continue
					}
					// Same stored direction means exactly one of the two
					// faces has to turn around.
					want := invert[f] != (forward == u.Forward)
					if cc[u.Face] < 0 {
						cc[u.Face] = nCC
						invert[u.Face] = want
						queue = append(queue, u.Face)
						continue
					}
					if invert[u.Face] != want {
						return nil, nil, false
					}
				}
			}
		}
		nCC++
	}
	return cc, invert, true
}

// FlipFaces returns the face list with every face f where invert[f] is set
// written in reverse order.
func (m *PolygonMesh) FlipFaces(invert []bool) ([]int, error) {
	if len(invert) != m.NumFaces() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrFlipLength, len(invert), m.NumFaces())
	}
	out := make([]int, 0, len(m.faceVerts)+m.NumFaces())
	for f := 0; f < m.NumFaces(); f++ {
		verts := m.face(f)
		if invert[f] {
			for i := len(verts) - 1; i >= 0; i-- {
				out = append(out, verts[i])
			}
		} else {
			out = append(out, verts...)
		}
		out = append(out, -1)
	}
	return out, nil
}

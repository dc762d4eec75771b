package scene

import "github.com/go-gl/mathgl/mgl64"

// PointIndex welds coordinates: formats that store every triangle with its
// own corner positions are turned into a shared vertex pool by giving
// bit-identical positions the same index.
type PointIndex struct {
	Points []mgl64.Vec3
	index  map[mgl64.Vec3]int
}

func NewPointIndex() *PointIndex {
	return &PointIndex{index: make(map[mgl64.Vec3]int)}
}

// Add returns the index of p, appending it if it has not been seen.
func (pi *PointIndex) Add(p mgl64.Vec3) int {
	if i, found := pi.index[p]; found {
		return i
	}
	pi.Points = append(pi.Points, p)
	i := len(pi.Points) - 1
	pi.index[p] = i
	return i
}

func (pi *PointIndex) Len() int {
	return len(pi.Points)
}

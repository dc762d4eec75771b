package scene

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrFaceCount = errors.New("face count mismatch")

// NumberOfCoord returns the size of the vertex pool.
func (ifs *IndexedFaceSet) NumberOfCoord() int {
	return len(ifs.Coord)
}

// NumberOfFaces counts the runs of CoordIndex.
func (ifs *IndexedFaceSet) NumberOfFaces() int {
	return len(faceRuns(ifs.CoordIndex))
}

// Faces returns the faces of the set as slices of coordinate indices.
func (ifs *IndexedFaceSet) Faces() [][]int {
	runs := faceRuns(ifs.CoordIndex)
	out := make([][]int, len(runs))
	for i, r := range runs {
		out[i] = append([]int(nil), ifs.CoordIndex[r[0]:r[1]]...)
	}
	return out
}

// RemoveProperties clears normals, colors and texture coordinates.
func (ifs *IndexedFaceSet) RemoveProperties() {
	ifs.NormalPerVertex = true
	ifs.Normal = nil
	ifs.NormalIndex = nil
	ifs.ColorPerVertex = true
	ifs.Color = nil
	ifs.ColorIndex = nil
	ifs.TexCoord = nil
	ifs.TexCoordIndex = nil
}

// hasVertexNormals reports whether normals are indexed like Coord.
func (ifs *IndexedFaceSet) hasVertexNormals() bool {
	return ifs.NormalPerVertex && len(ifs.NormalIndex) == 0 && len(ifs.Normal) > 0
}

func (ifs *IndexedFaceSet) hasVertexColors() bool {
	return ifs.ColorPerVertex && len(ifs.ColorIndex) == 0 && len(ifs.Color) > 0
}

func (ifs *IndexedFaceSet) hasFaceColors() bool {
	return !ifs.ColorPerVertex && len(ifs.ColorIndex) == 0 && len(ifs.Color) > 0
}

func (ifs *IndexedFaceSet) hasVertexTexCoords() bool {
	return len(ifs.TexCoordIndex) == 0 && len(ifs.TexCoord) > 0
}

// ApplyVertexMap replaces the face list with coordIndex, whose vertex i was
// made from old vertex vertexMap[i]. Coordinates and every attribute indexed
// like Coord are rebuilt to match; per-corner and per-face attributes are
// kept, since a vertex map does not move corners or faces.
func (ifs *IndexedFaceSet) ApplyVertexMap(vertexMap, coordIndex []int) error {
	for i, v := range vertexMap {
		if v < 0 || v >= len(ifs.Coord) {
			return fmt.Errorf("vertex map entry %d: old vertex %d out of range", i, v)
		}
	}
	if got, want := len(faceRuns(coordIndex)), ifs.NumberOfFaces(); got != want {
		return fmt.Errorf("%w: %d faces, want %d", ErrFaceCount, got, want)
	}

	if ifs.hasVertexNormals() {
		ifs.Normal = remapVec3(ifs.Normal, vertexMap)
	}
	if ifs.hasVertexColors() {
		colors := ifs.Color
		ifs.Color = make([]color.RGBA, len(vertexMap))
		for i, v := range vertexMap {
			ifs.Color[i] = colors[v]
		}
	}
	if ifs.hasVertexTexCoords() {
		tex := ifs.TexCoord
		ifs.TexCoord = make([]mgl64.Vec2, len(vertexMap))
		for i, v := range vertexMap {
			ifs.TexCoord[i] = tex[v]
		}
	}
	ifs.Coord = remapVec3(ifs.Coord, vertexMap)
	ifs.CoordIndex = append([]int(nil), coordIndex...)
	return nil
}

func remapVec3(src []mgl64.Vec3, vertexMap []int) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(vertexMap))
	for i, v := range vertexMap {
		out[i] = src[v]
	}
	return out
}

// ReverseFaces reverses the vertex order of every face f with invert[f] set,
// together with the per-corner index arrays.
func (ifs *IndexedFaceSet) ReverseFaces(invert []bool) error {
	runs := faceRuns(ifs.CoordIndex)
	if len(runs) != len(invert) {
		return fmt.Errorf("%w: %d flags for %d faces", ErrFaceCount, len(invert), len(runs))
	}

	arrays := [][]int{ifs.CoordIndex}
	if ifs.NormalPerVertex && len(ifs.NormalIndex) > 0 {
		arrays = append(arrays, ifs.NormalIndex)
	}
	if ifs.ColorPerVertex && len(ifs.ColorIndex) > 0 {
		arrays = append(arrays, ifs.ColorIndex)
	}
	if len(ifs.TexCoordIndex) > 0 {
		arrays = append(arrays, ifs.TexCoordIndex)
	}
	for _, a := range arrays[1:] {
		if len(a) < len(ifs.CoordIndex) {
			return fmt.Errorf("corner index has %d entries, want %d", len(a), len(ifs.CoordIndex))
		}
	}

	for f, r := range runs {
		if !invert[f] {
			continue
		}
		for _, a := range arrays {
			for i, j := r[0], r[1]-1; i < j; i, j = i+1, j-1 {
				a[i], a[j] = a[j], a[i]
			}
		}
	}
	return nil
}

// faceRuns returns the [start, end) range of every face of index. The last
// face may omit its -1.
func faceRuns(index []int) [][2]int {
	var runs [][2]int
	start := 0
	for i, v := range index {
		if v < 0 {
			runs = append(runs, [2]int{start, i})
			start = i + 1
		}
	}
	if start < len(index) {
		runs = append(runs, [2]int{start, len(index)})
	}
	return runs
}

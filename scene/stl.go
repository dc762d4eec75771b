package scene

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrSTLFormat = errors.New("stl: malformed file")

const stlHeaderSize = 80

// STLLoader reads ascii and binary STL. Corners are welded on exact
// position so that neighbouring facets share vertices.
type STLLoader struct{}

func (STLLoader) Ext() string { return "stl" }

func (STLLoader) Load(r io.Reader) (*SceneGraph, error) {
	ifs, err := ReadSTL(r)
	if err != nil {
		return nil, err
	}
	return NewSceneGraph("stl", ifs), nil
}

// ReadSTL parses an STL stream. Facet normals become per-face normals.
func ReadSTL(r io.Reader) (*IndexedFaceSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("stl: %w", err)
	}
	if isBinarySTL(data) {
		return readBinarySTL(data)
	}
	return readASCIISTL(data)
}

// isBinarySTL trusts the facet count when it explains the file size, since
// binary headers may start with "solid" too.
func isBinarySTL(data []byte) bool {
	if len(data) >= stlHeaderSize+4 {
		n := binary.LittleEndian.Uint32(data[stlHeaderSize:])
		if uint64(len(data)) == stlHeaderSize+4+uint64(n)*50 {
			return true
		}
	}
	return !bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid"))
}

func readBinarySTL(data []byte) (*IndexedFaceSet, error) {
	if len(data) < stlHeaderSize+4 {
		return nil, fmt.Errorf("%w: short header", ErrSTLFormat)
	}
	n := int(binary.LittleEndian.Uint32(data[stlHeaderSize:]))
	body := data[stlHeaderSize+4:]
	if len(body) < n*50 {
		return nil, fmt.Errorf("%w: %d facets declared, data for %d", ErrSTLFormat, n, len(body)/50)
	}

	ifs := NewIndexedFaceSet()
	ifs.NormalPerVertex = false
	points := NewPointIndex()
	vec := func(b []byte) mgl64.Vec3 {
		return mgl64.Vec3{
			float64(math.Float32frombits(binary.LittleEndian.Uint32(b[0:]))),
			float64(math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))),
			float64(math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))),
		}
	}
	for i := 0; i < n; i++ {
		rec := body[i*50 : i*50+50]
		ifs.Normal = append(ifs.Normal, vec(rec[0:]))
		for c := 0; c < 3; c++ {
			ifs.CoordIndex = append(ifs.CoordIndex, points.Add(vec(rec[12+12*c:])))
		}
		ifs.CoordIndex = append(ifs.CoordIndex, -1)
	}
	ifs.Coord = points.Points
	return ifs, nil
}

func readASCIISTL(data []byte) (*IndexedFaceSet, error) {
	ifs := NewIndexedFaceSet()
	ifs.NormalPerVertex = false
	points := NewPointIndex()

	var facet []int
	inFacet := false
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		switch parts[0] {
		case "facet":
			var n mgl64.Vec3
			if len(parts) == 5 && parts[1] == "normal" {
				v, err := parseVec3(parts[2:5])
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %v", ErrSTLFormat, lineNo, err)
				}
				n = v
			}
			ifs.Normal = append(ifs.Normal, n)
			facet = facet[:0]
			inFacet = true
		case "vertex":
			if !inFacet || len(parts) != 4 {
				return nil, fmt.Errorf("%w: line %d: unexpected vertex", ErrSTLFormat, lineNo)
			}
			v, err := parseVec3(parts[1:4])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrSTLFormat, lineNo, err)
			}
			facet = append(facet, points.Add(v))
		case "endfacet":
			if !inFacet || len(facet) < 3 {
				return nil, fmt.Errorf("%w: line %d: facet with %d vertices", ErrSTLFormat, lineNo, len(facet))
			}
			ifs.CoordIndex = append(ifs.CoordIndex, facet...)
			ifs.CoordIndex = append(ifs.CoordIndex, -1)
			inFacet = false
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("stl: %w", err)
	}
	if inFacet {
		return nil, fmt.Errorf("%w: unterminated facet", ErrSTLFormat)
	}
	ifs.Coord = points.Points
	return ifs, nil
}

func parseVec3(fields []string) (mgl64.Vec3, error) {
	var v mgl64.Vec3
	for i, s := range fields {
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return v, fmt.Errorf("could not parse %q", s)
		}
		v[i] = x
	}
	return v, nil
}

// STLSaver writes every face set of a scene as one solid. Polygons are
// split into triangle fans around their first corner.
type STLSaver struct {
	Binary bool
}

func (STLSaver) Ext() string { return "stl" }

func (s STLSaver) Save(w io.Writer, sg *SceneGraph) error {
	var tris [][3]mgl64.Vec3
	for _, ifs := range sg.FaceSets() {
		t, err := triangulate(ifs)
		if err != nil {
			return err
		}
		tris = append(tris, t...)
	}
	if s.Binary {
		return writeBinarySTL(w, tris)
	}
	return writeASCIISTL(w, tris)
}

func triangulate(ifs *IndexedFaceSet) ([][3]mgl64.Vec3, error) {
	var tris [][3]mgl64.Vec3
	for i, f := range ifs.Faces() {
		for _, v := range f {
			if v >= len(ifs.Coord) {
				return nil, fmt.Errorf("stl: face %d: vertex %d out of range", i, v)
			}
		}
		for k := 1; k+1 < len(f); k++ {
			tris = append(tris, [3]mgl64.Vec3{ifs.Coord[f[0]], ifs.Coord[f[k]], ifs.Coord[f[k+1]]})
		}
	}
	return tris, nil
}

// facetNormal is zero for degenerate triangles.
func facetNormal(t [3]mgl64.Vec3) mgl64.Vec3 {
	n := t[1].Sub(t[0]).Cross(t[2].Sub(t[0]))
	if n.Len() == 0 {
		return n
	}
	return n.Normalize()
}

func writeASCIISTL(w io.Writer, tris [][3]mgl64.Vec3) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("solid meshtopo\n")
	for _, t := range tris {
		n := facetNormal(t)
		fmt.Fprintf(bw, "  facet normal %g %g %g\n    outer loop\n", n[0], n[1], n[2])
		for _, p := range t {
			fmt.Fprintf(bw, "      vertex %g %g %g\n", p[0], p[1], p[2])
		}
		bw.WriteString("    endloop\n  endfacet\n")
	}
	bw.WriteString("endsolid meshtopo\n")
	return bw.Flush()
}

func writeBinarySTL(w io.Writer, tris [][3]mgl64.Vec3) error {
	bw := bufio.NewWriter(w)
	var header [stlHeaderSize]byte
	copy(header[:], "binary STL written by meshtopo")
	bw.Write(header[:])
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(tris))); err != nil {
		return err
	}
	var rec [50]byte
	put := func(off int, v mgl64.Vec3) {
		for i := 0; i < 3; i++ {
			binary.LittleEndian.PutUint32(rec[off+4*i:], math.Float32bits(float32(v[i])))
		}
	}
	for _, t := range tris {
		put(0, facetNormal(t))
		for c, p := range t {
			put(12+12*c, p)
		}
		if _, err := bw.Write(rec[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

package scene

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// DXFLoader reads the 3DFACE entities of a DXF file. Other entities are
// ignored.
type DXFLoader struct{}

func (DXFLoader) Ext() string { return "dxf" }

func (DXFLoader) Load(r io.Reader) (*SceneGraph, error) {
	ifs, err := ReadDXF(r)
	if err != nil {
		return nil, err
	}
	return NewSceneGraph("dxf", ifs), nil
}

// ReadDXF reads 3DFACE entities as group code / value pairs. Codes 10-13,
// 20-23 and 30-33 hold the x, y and z of the four corners; a fourth corner
// equal to the third makes a triangle.
func ReadDXF(r io.Reader) (*IndexedFaceSet, error) {
	scanner := bufio.NewScanner(r)
	ifs := NewIndexedFaceSet()
	points := NewPointIndex()

	var corners [4]mgl64.Vec3
	inFace := false
	flush := func() {
		n := 4
		if corners[3] == corners[2] {
			n = 3
		}
		for c := 0; c < n; c++ {
			ifs.CoordIndex = append(ifs.CoordIndex, points.Add(corners[c]))
		}
		ifs.CoordIndex = append(ifs.CoordIndex, -1)
	}

	pair := 0
	for scanner.Scan() {
		pair++
		code, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			return nil, fmt.Errorf("dxf: pair %d: could not parse group code %q: %w", pair, scanner.Text(), err)
		}
		if !scanner.Scan() {
			return nil, fmt.Errorf("dxf: pair %d: missing value for group code %d", pair, code)
		}
		value := strings.TrimSpace(scanner.Text())

		if code == 0 {
			if inFace {
				flush()
			}
			inFace = value == "3DFACE"
			corners = [4]mgl64.Vec3{}
			continue
		}
		if !inFace {
			continue
		}
		axis, corner := code/10-1, code%10
		if code < 10 || code > 33 || corner > 3 {
			continue
		}
		x, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("dxf: pair %d: could not parse float value %q: %w", pair, value, err)
		}
		corners[corner][axis] = x
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from DXF source: %w", err)
	}
	if inFace {
		flush()
	}
	ifs.Coord = points.Points
	return ifs, nil
}

package scene

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrPLYFormat = errors.New("ply: malformed file")

type plyProperty struct {
	name      string
	typ       string
	countType string // set for list properties
}

type plyElement struct {
	name  string
	count int
	props []plyProperty
}

type plyHeader struct {
	format   string
	elements []plyElement
}

// PLYLoader reads ascii and binary PLY files holding a vertex and a face
// element.
type PLYLoader struct{}

func (PLYLoader) Ext() string { return "ply" }

func (PLYLoader) Load(r io.Reader) (*SceneGraph, error) {
	ifs, err := ReadPLY(r)
	if err != nil {
		return nil, err
	}
	return NewSceneGraph("ply", ifs), nil
}

// ReadPLY parses a PLY stream into a face set. Vertex positions, normals,
// colors and texture coordinates are read; face colors are kept only when
// the vertices have none.
func ReadPLY(r io.Reader) (*IndexedFaceSet, error) {
	br := bufio.NewReader(r)
	h, err := readPLYHeader(br)
	if err != nil {
		return nil, err
	}

	var values plyValueReader
	switch h.format {
	case "ascii":
		sc := bufio.NewScanner(br)
		sc.Split(bufio.ScanWords)
		values = &plyASCIIReader{scanner: sc}
	case "binary_little_endian":
		values = &plyBinaryReader{r: br, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &plyBinaryReader{r: br, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrPLYFormat, h.format)
	}

	ifs := NewIndexedFaceSet()
	var faceColors []color.RGBA
	for _, el := range h.elements {
		switch el.name {
		case "vertex":
			if err := readPLYVertices(values, el, ifs); err != nil {
				return nil, err
			}
		case "face":
			if faceColors, err = readPLYFaces(values, el, ifs); err != nil {
				return nil, err
			}
		default:
			if err := skipPLYElement(values, el); err != nil {
				return nil, err
			}
		}
	}
	if len(ifs.Color) == 0 && len(faceColors) > 0 {
		ifs.Color = faceColors
		ifs.ColorPerVertex = false
	}
	return ifs, nil
}

func readPLYHeader(br *bufio.Reader) (*plyHeader, error) {
	h := &plyHeader{}
	line, err := br.ReadString('\n')
	if err != nil || strings.TrimSpace(line) != "ply" {
		return nil, fmt.Errorf("%w: missing magic number", ErrPLYFormat)
	}
	for {
		line, err = br.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("%w: header not terminated: %v", ErrPLYFormat, err)
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		switch parts[0] {
		case "format":
			if len(parts) < 2 {
				return nil, fmt.Errorf("%w: bad format line", ErrPLYFormat)
			}
			h.format = parts[1]
		case "element":
			if len(parts) != 3 {
				return nil, fmt.Errorf("%w: bad element line %q", ErrPLYFormat, strings.TrimSpace(line))
			}
			n, err := strconv.Atoi(parts[2])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w: bad element count %q", ErrPLYFormat, parts[2])
			}
			h.elements = append(h.elements, plyElement{name: parts[1], count: n})
		case "property":
			if len(h.elements) == 0 {
				return nil, fmt.Errorf("%w: property before element", ErrPLYFormat)
			}
			el := &h.elements[len(h.elements)-1]
			switch {
			case len(parts) == 5 && parts[1] == "list":
				el.props = append(el.props, plyProperty{name: parts[4], typ: parts[3], countType: parts[2]})
			case len(parts) == 3:
				el.props = append(el.props, plyProperty{name: parts[2], typ: parts[1]})
			default:
				return nil, fmt.Errorf("%w: bad property line %q", ErrPLYFormat, strings.TrimSpace(line))
			}
		case "end_header":
			return h, nil
		}
	}
}

func readPLYVertices(values plyValueReader, el plyElement, ifs *IndexedFaceSet) error {
	names := make(map[string]bool, len(el.props))
	for _, p := range el.props {
		names[p.name] = true
	}
	hasNormal := names["nx"] && names["ny"] && names["nz"]
	hasColor := (names["red"] && names["green"] && names["blue"]) ||
		(names["diffuse_red"] && names["diffuse_green"] && names["diffuse_blue"])
	hasTex := (names["s"] && names["t"]) || (names["u"] && names["v"]) ||
		(names["texture_u"] && names["texture_v"])

	ifs.Coord = make([]mgl64.Vec3, 0, el.count)
	for i := 0; i < el.count; i++ {
		var pos, nrm mgl64.Vec3
		var tex mgl64.Vec2
		col := color.RGBA{A: 255}
		for _, p := range el.props {
			if p.countType != "" {
				if err := skipPLYList(values, p); err != nil {
					return fmt.Errorf("vertex %d: %w", i, err)
				}
				continue
			}
			x, err := values.next(p.typ)
			if err != nil {
				return fmt.Errorf("vertex %d: %w", i, err)
			}
			switch p.name {
			case "x":
				pos[0] = x
			case "y":
				pos[1] = x
			case "z":
				pos[2] = x
			case "nx":
				nrm[0] = x
			case "ny":
				nrm[1] = x
			case "nz":
				nrm[2] = x
			case "red", "diffuse_red":
				col.R = plyChannel(p.typ, x)
			case "green", "diffuse_green":
				col.G = plyChannel(p.typ, x)
			case "blue", "diffuse_blue":
				col.B = plyChannel(p.typ, x)
			case "alpha":
				col.A = plyChannel(p.typ, x)
			case "s", "u", "texture_u":
				tex[0] = x
			case "t", "v", "texture_v":
				tex[1] = x
			}
		}
		ifs.Coord = append(ifs.Coord, pos)
		if hasNormal {
			ifs.Normal = append(ifs.Normal, nrm)
		}
		if hasColor {
			ifs.Color = append(ifs.Color, col)
		}
		if hasTex {
			ifs.TexCoord = append(ifs.TexCoord, tex)
		}
	}
	return nil
}

func readPLYFaces(values plyValueReader, el plyElement, ifs *IndexedFaceSet) ([]color.RGBA, error) {
	hasColor := false
	for _, p := range el.props {
		if p.name == "red" || p.name == "diffuse_red" {
			hasColor = true
		}
	}

	var colors []color.RGBA
	for i := 0; i < el.count; i++ {
		col := color.RGBA{A: 255}
		for _, p := range el.props {
			if p.countType == "" {
				x, err := values.next(p.typ)
				if err != nil {
					return nil, fmt.Errorf("face %d: %w", i, err)
				}
				switch p.name {
				case "red", "diffuse_red":
					col.R = plyChannel(p.typ, x)
				case "green", "diffuse_green":
					col.G = plyChannel(p.typ, x)
				case "blue", "diffuse_blue":
					col.B = plyChannel(p.typ, x)
				case "alpha":
					col.A = plyChannel(p.typ, x)
				}
				continue
			}
			if p.name != "vertex_indices" && p.name != "vertex_index" {
				if err := skipPLYList(values, p); err != nil {
					return nil, fmt.Errorf("face %d: %w", i, err)
				}
				continue
			}
			n, err := values.next(p.countType)
			if err != nil {
				return nil, fmt.Errorf("face %d: %w", i, err)
			}
			for j := 0; j < int(n); j++ {
				idx, err := values.next(p.typ)
				if err != nil {
					return nil, fmt.Errorf("face %d: %w", i, err)
				}
				ifs.CoordIndex = append(ifs.CoordIndex, int(idx))
			}
			ifs.CoordIndex = append(ifs.CoordIndex, -1)
		}
		if hasColor {
			colors = append(colors, col)
		}
	}
	return colors, nil
}

func skipPLYElement(values plyValueReader, el plyElement) error {
	for i := 0; i < el.count; i++ {
		for _, p := range el.props {
			if p.countType != "" {
				if err := skipPLYList(values, p); err != nil {
					return fmt.Errorf("%s %d: %w", el.name, i, err)
				}
				continue
			}
			if _, err := values.next(p.typ); err != nil {
				return fmt.Errorf("%s %d: %w", el.name, i, err)
			}
		}
	}
	return nil
}

func skipPLYList(values plyValueReader, p plyProperty) error {
	n, err := values.next(p.countType)
	if err != nil {
		return err
	}
	for j := 0; j < int(n); j++ {
		if _, err := values.next(p.typ); err != nil {
			return err
		}
	}
	return nil
}

// plyChannel converts a color value to 8 bits; float channels are in [0,1].
func plyChannel(typ string, x float64) uint8 {
	if typ == "float" || typ == "float32" || typ == "double" || typ == "float64" {
		x *= 255
	}
	return uint8(math.Max(0, math.Min(255, math.Round(x))))
}

type plyValueReader interface {
	next(typ string) (float64, error)
}

type plyASCIIReader struct {
	scanner *bufio.Scanner
}

func (r *plyASCIIReader) next(typ string) (float64, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("%w: unexpected end of data", ErrPLYFormat)
	}
	x, err := strconv.ParseFloat(r.scanner.Text(), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: could not parse %s value %q", ErrPLYFormat, typ, r.scanner.Text())
	}
	return x, nil
}

type plyBinaryReader struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (r *plyBinaryReader) next(typ string) (float64, error) {
	size := plyTypeSize(typ)
	if size == 0 {
		return 0, fmt.Errorf("%w: unknown type %q", ErrPLYFormat, typ)
	}
	b := r.buf[:size]
	if _, err := io.ReadFull(r.r, b); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPLYFormat, err)
	}
	switch typ {
	case "char", "int8":
		return float64(int8(b[0])), nil
	case "uchar", "uint8":
		return float64(b[0]), nil
	case "short", "int16":
		return float64(int16(r.order.Uint16(b))), nil
	case "ushort", "uint16":
		return float64(r.order.Uint16(b)), nil
	case "int", "int32":
		return float64(int32(r.order.Uint32(b))), nil
	case "uint", "uint32":
		return float64(r.order.Uint32(b)), nil
	case "float", "float32":
		return float64(math.Float32frombits(r.order.Uint32(b))), nil
	default:
		return math.Float64frombits(r.order.Uint64(b)), nil
	}
}

func plyTypeSize(typ string) int {
	switch typ {
	case "char", "int8", "uchar", "uint8":
		return 1
	case "short", "int16", "ushort", "uint16":
		return 2
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	}
	return 0
}

// PLYSaver writes the single face set of a scene as PLY.
type PLYSaver struct {
	Binary bool
}

func (PLYSaver) Ext() string { return "ply" }

func (s PLYSaver) Save(w io.Writer, sg *SceneGraph) error {
	sets := sg.FaceSets()
	if len(sets) != 1 {
		return fmt.Errorf("ply: scene has %d face sets, want 1", len(sets))
	}
	return WritePLY(w, sets[0], s.Binary)
}

// WritePLY writes positions, per-vertex normals and colors, faces and
// per-face colors. Binary output is little endian.
func WritePLY(w io.Writer, ifs *IndexedFaceSet, binaryOutput bool) error {
	bw := bufio.NewWriter(w)
	normals := ifs.hasVertexNormals() && len(ifs.Normal) == len(ifs.Coord)
	vertexColors := ifs.hasVertexColors() && len(ifs.Color) == len(ifs.Coord)
	faces := ifs.Faces()
	faceColors := ifs.hasFaceColors() && len(ifs.Color) == len(faces)

	format := "ascii"
	if binaryOutput {
		format = "binary_little_endian"
	}
	fmt.Fprintf(bw, "ply\nformat %s 1.0\n", format)
	bw.WriteString("comment Generated by meshtopo\n")
	fmt.Fprintf(bw, "element vertex %d\n", len(ifs.Coord))
	bw.WriteString("property float x\nproperty float y\nproperty float z\n")
	if normals {
		bw.WriteString("property float nx\nproperty float ny\nproperty float nz\n")
	}
	if vertexColors {
		bw.WriteString("property uchar red\nproperty uchar green\nproperty uchar blue\n")
	}
	fmt.Fprintf(bw, "element face %d\n", len(faces))
	bw.WriteString("property list uchar int vertex_indices\n")
	if faceColors {
		bw.WriteString("property uchar red\nproperty uchar green\nproperty uchar blue\n")
	}
	bw.WriteString("end_header\n")

	out := plyWriter{w: bw, binary: binaryOutput}
	for i, p := range ifs.Coord {
		out.float(p[0])
		out.float(p[1])
		out.float(p[2])
		if normals {
			n := ifs.Normal[i]
			out.float(n[0])
			out.float(n[1])
			out.float(n[2])
		}
		if vertexColors {
			c := ifs.Color[i]
			out.uchar(c.R)
			out.uchar(c.G)
			out.uchar(c.B)
		}
		out.endRow()
	}
	for i, f := range faces {
		if len(f) > math.MaxUint8 {
			return fmt.Errorf("ply: face %d has %d vertices", i, len(f))
		}
		out.uchar(uint8(len(f)))
		for _, v := range f {
			out.int32(int32(v))
		}
		if faceColors {
			c := ifs.Color[i]
			out.uchar(c.R)
			out.uchar(c.G)
			out.uchar(c.B)
		}
		out.endRow()
	}
	if out.err != nil {
		return out.err
	}
	return bw.Flush()
}

type plyWriter struct {
	w      *bufio.Writer
	binary bool
	sep    bool
	err    error
}

func (p *plyWriter) field(s string) {
	if p.sep {
		p.w.WriteByte(' ')
	}
	p.w.WriteString(s)
	p.sep = true
}

func (p *plyWriter) float(x float64) {
	if p.binary {
		p.write(math.Float32bits(float32(x)))
		return
	}
	p.field(strconv.FormatFloat(float64(float32(x)), 'g', -1, 32))
}

func (p *plyWriter) uchar(x uint8) {
	if p.binary {
		p.write(x)
		return
	}
	p.field(strconv.Itoa(int(x)))
}

func (p *plyWriter) int32(x int32) {
	if p.binary {
		p.write(x)
		return
	}
	p.field(strconv.Itoa(int(x)))
}

func (p *plyWriter) write(v any) {
	if p.err == nil {
		p.err = binary.Write(p.w, binary.LittleEndian, v)
	}
}

func (p *plyWriter) endRow() {
	if !p.binary {
		p.w.WriteByte('\n')
	}
	p.sep = false
}

package scene

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WRLSaver writes a scene as VRML 2.0. Groups become Transform nodes and
// every face set keeps its attribute bindings.
type WRLSaver struct{}

func (WRLSaver) Ext() string { return "wrl" }

func (WRLSaver) Save(w io.Writer, sg *SceneGraph) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("#VRML V2.0 utf8\n\n")
	for _, n := range sg.Children {
		writeWRLNode(bw, n, 0)
	}
	return bw.Flush()
}

func writeWRLNode(w *bufio.Writer, n Node, depth int) {
	ind := strings.Repeat("  ", depth)
	switch n := n.(type) {
	case *Group:
		fmt.Fprintf(w, "%s%sTransform {\n%s  children [\n", ind, wrlDef(n.Name), ind)
		for _, c := range n.Children {
			writeWRLNode(w, c, depth+2)
		}
		fmt.Fprintf(w, "%s  ]\n%s}\n", ind, ind)
	case *Shape:
		fmt.Fprintf(w, "%s%sShape {\n", ind, wrlDef(n.Name))
		switch g := n.Geometry.(type) {
		case *IndexedFaceSet:
			writeWRLFaceSet(w, g, depth+1)
		case *IndexedLineSet:
			writeWRLLineSet(w, g, depth+1)
		}
		fmt.Fprintf(w, "%s}\n", ind)
	}
}

func wrlDef(name string) string {
	if name == "" {
		return ""
	}
	return "DEF " + strings.Map(func(r rune) rune {
		if r <= ' ' || strings.ContainsRune(`"#'+,.[\]{}`, r) {
			return '_'
		}
		return r
	}, name) + " "
}

func writeWRLFaceSet(w *bufio.Writer, ifs *IndexedFaceSet, depth int) {
	ind := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%sgeometry IndexedFaceSet {\n", ind)
	in := ind + "  "

	fmt.Fprintf(w, "%scoord Coordinate {\n%s  point [\n", in, in)
	for _, p := range ifs.Coord {
		fmt.Fprintf(w, "%s    %g %g %g,\n", in, p[0], p[1], p[2])
	}
	fmt.Fprintf(w, "%s  ]\n%s}\n", in, in)
	writeWRLIndex(w, in, "coordIndex", ifs.CoordIndex)

	if len(ifs.Normal) > 0 {
		fmt.Fprintf(w, "%snormalPerVertex %s\n", in, wrlBool(ifs.NormalPerVertex))
		fmt.Fprintf(w, "%snormal Normal {\n%s  vector [\n", in, in)
		for _, n := range ifs.Normal {
			fmt.Fprintf(w, "%s    %g %g %g,\n", in, n[0], n[1], n[2])
		}
		fmt.Fprintf(w, "%s  ]\n%s}\n", in, in)
		writeWRLIndex(w, in, "normalIndex", ifs.NormalIndex)
	}
	if len(ifs.Color) > 0 {
		fmt.Fprintf(w, "%scolorPerVertex %s\n", in, wrlBool(ifs.ColorPerVertex))
		fmt.Fprintf(w, "%scolor Color {\n%s  color [\n", in, in)
		for _, c := range ifs.Color {
			fmt.Fprintf(w, "%s    %.4g %.4g %.4g,\n", in, float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
		}
		fmt.Fprintf(w, "%s  ]\n%s}\n", in, in)
		writeWRLIndex(w, in, "colorIndex", ifs.ColorIndex)
	}
	if len(ifs.TexCoord) > 0 {
		fmt.Fprintf(w, "%stexCoord TextureCoordinate {\n%s  point [\n", in, in)
		for _, t := range ifs.TexCoord {
			fmt.Fprintf(w, "%s    %g %g,\n", in, t[0], t[1])
		}
		fmt.Fprintf(w, "%s  ]\n%s}\n", in, in)
		writeWRLIndex(w, in, "texCoordIndex", ifs.TexCoordIndex)
	}
	fmt.Fprintf(w, "%s}\n", ind)
}

func writeWRLLineSet(w *bufio.Writer, ils *IndexedLineSet, depth int) {
	ind := strings.Repeat("  ", depth)
	in := ind + "  "
	fmt.Fprintf(w, "%sgeometry IndexedLineSet {\n", ind)
	fmt.Fprintf(w, "%scoord Coordinate {\n%s  point [\n", in, in)
	for _, p := range ils.Coord {
		fmt.Fprintf(w, "%s    %g %g %g,\n", in, p[0], p[1], p[2])
	}
	fmt.Fprintf(w, "%s  ]\n%s}\n", in, in)
	writeWRLIndex(w, in, "coordIndex", ils.CoordIndex)
	fmt.Fprintf(w, "%s}\n", ind)
}

// writeWRLIndex prints one face per line.
func writeWRLIndex(w *bufio.Writer, ind, field string, index []int) {
	if len(index) == 0 {
		return
	}
	fmt.Fprintf(w, "%s%s [\n", ind, field)
	for _, r := range faceRuns(index) {
		w.WriteString(ind + "  ")
		for _, v := range index[r[0]:r[1]] {
			fmt.Fprintf(w, "%d ", v)
		}
		w.WriteString("-1,\n")
	}
	fmt.Fprintf(w, "%s]\n", ind)
}

func wrlBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

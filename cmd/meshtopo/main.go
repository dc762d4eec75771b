// Command meshtopo loads a polygon mesh, runs topology analyses and repairs
// on every face set, and optionally saves the result.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/smasonuk/meshtopo"
	"github.com/smasonuk/meshtopo/scene"
)

type options struct {
	debug            bool
	binaryOutput     bool
	removeProperties bool
	apply            bool

	ccPrimal       bool
	ccDual         bool
	isOriented     bool
	isOrientable   bool
	orient         bool
	removeIsolated bool
	cutSingular    bool
	toManifold     bool

	inFile  string
	outFile string
}

var errUsage = errors.New("usage")

func parseOptions(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("meshtopo", flag.ContinueOnError)
	fs.SetOutput(stderr)

	boolFlag := func(p *bool, short, long, usage string) {
		fs.BoolVar(p, short, false, usage)
		fs.BoolVar(p, long, false, usage)
	}
	boolFlag(&opts.debug, "d", "debug", "print mesh info before and after processing")
	boolFlag(&opts.binaryOutput, "b", "binaryOutput", "write binary PLY and STL")
	boolFlag(&opts.removeProperties, "r", "removeProperties", "drop normals, colors and texture coordinates")
	boolFlag(&opts.apply, "a", "apply", "write flips and repairs back into the scene")
	boolFlag(&opts.ccPrimal, "ccp", "ccPrimal", "connected components through shared vertices")
	boolFlag(&opts.ccDual, "ccd", "ccDual", "connected components through shared edges")
	boolFlag(&opts.isOriented, "iso", "isOriented", "report whether faces are consistently oriented")
	boolFlag(&opts.isOrientable, "isot", "isOrientable", "report whether faces can be consistently oriented")
	boolFlag(&opts.orient, "or", "orient", "compute face flips that orient every component")
	boolFlag(&opts.removeIsolated, "riv", "removeIsolatedVertices", "drop vertices no face uses")
	boolFlag(&opts.cutSingular, "ctsv", "cutThroughSingularVertices", "split vertices whose faces form several fans")
	boolFlag(&opts.toManifold, "ctm", "convertToManifold", "split singular vertices and edges")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: meshtopo [options] inFile [outFile]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	switch fs.NArg() {
	case 1:
		opts.inFile = fs.Arg(0)
	case 2:
		opts.inFile, opts.outFile = fs.Arg(0), fs.Arg(1)
	default:
		fs.Usage()
		return nil, errUsage
	}
	return opts, nil
}

func main() {
	log.SetFlags(0)
	opts, err := parseOptions(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	reg := scene.DefaultRegistry(opts.binaryOutput)
	sg, err := reg.Load(opts.inFile)
	if err != nil {
		log.Fatalf("Failed to load: %v", err)
	}
	if opts.debug {
		log.Printf("loaded %s", opts.inFile)
	}

	if err := run(sg, opts, os.Stdout); err != nil {
		log.Fatalf("Failed to process: %v", err)
	}

	if opts.outFile == "" {
		return
	}
	if err := reg.Save(opts.outFile, sg); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	if opts.debug {
		log.Printf("saved %s", opts.outFile)
	}
}

// run processes every face set of sg concurrently and writes the reports to
// w in scene order.
func run(sg *scene.SceneGraph, opts *options, w io.Writer) error {
	sets := sg.FaceSets()
	if opts.removeProperties {
		for _, ifs := range sets {
			ifs.RemoveProperties()
		}
	}

	reports := make([]bytes.Buffer, len(sets))
	var g errgroup.Group
	for i, ifs := range sets {
		i, ifs := i, ifs // per-iteration copies (go 1.21 loop semantics)
		g.Go(func() error {
			return process(i, ifs, opts, &reports[i])
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i := range reports {
		if _, err := reports[i].WriteTo(w); err != nil {
			return err
		}
	}
	return nil
}

// process runs the selected operations on one face set. With apply set each
// operation sees the mesh left by the previous one.
func process(i int, ifs *scene.IndexedFaceSet, opts *options, w io.Writer) error {
	m, err := meshtopo.NewPolygonMesh(ifs.NumberOfCoord(), ifs.CoordIndex)
	if err != nil {
		log.Printf("IndexedFaceSet %d skipped: %v", i, err)
		return nil
	}
	if opts.debug {
		fmt.Fprintf(w, "IndexedFaceSet %d before processing\n%s\n", i, indent(m.Info().String(), "  "))
	}

	// rebuild re-indexes the face set after a change was applied to it.
	rebuild := func() error {
		next, err := meshtopo.NewPolygonMesh(ifs.NumberOfCoord(), ifs.CoordIndex)
		if err != nil {
			return fmt.Errorf("IndexedFaceSet %d: %w", i, err)
		}
		m = next
		return nil
	}

	if opts.ccPrimal {
		label, n := m.ConnectedComponentsPrimal()
		fmt.Fprintf(w, "IndexedFaceSet %d | ccPrimal nCC = %d sizes = %v\n", i, n, meshtopo.ComponentSizes(label, n))
	}
	if opts.ccDual {
		label, n := m.ConnectedComponentsDual()
		fmt.Fprintf(w, "IndexedFaceSet %d | ccDual nCC = %d sizes = %v\n", i, n, meshtopo.ComponentSizes(label, n))
	}
	if opts.isOriented {
		fmt.Fprintf(w, "IndexedFaceSet %d | isOriented = %t\n", i, m.IsOriented())
	}
	if opts.isOrientable {
		fmt.Fprintf(w, "IndexedFaceSet %d | isOrientable = %t\n", i, m.IsOrientable())
	}
	if opts.orient {
		o := m.Orient()
		fmt.Fprintf(w, "IndexedFaceSet %d | orient: %s\n", i, o.Status)
		if o.Status == meshtopo.Reoriented {
			for f, inv := range o.InvertFace {
				if inv {
					fmt.Fprintf(w, "  face %d (cc %d) inverted\n", f, o.CCIndex[f])
				}
			}
			if opts.apply {
				if err := ifs.ReverseFaces(o.InvertFace); err != nil {
					return fmt.Errorf("IndexedFaceSet %d: %w", i, err)
				}
				if err := rebuild(); err != nil {
					return err
				}
			}
		}
	}

	repairs := []struct {
		enabled bool
		name    string
		run     func(*meshtopo.PolygonMesh) (*meshtopo.Repair, bool)
	}{
		{opts.removeIsolated, "removeIsolatedVertices", (*meshtopo.PolygonMesh).RemoveIsolatedVertices},
		{opts.cutSingular, "cutThroughSingularVertices", (*meshtopo.PolygonMesh).CutThroughSingularVertices},
		{opts.toManifold, "convertToManifold", (*meshtopo.PolygonMesh).ConvertToManifold},
	}
	for _, rep := range repairs {
		if !rep.enabled {
			continue
		}
		r, changed := rep.run(m)
		if !changed {
			fmt.Fprintf(w, "IndexedFaceSet %d | %s: nothing to change\n", i, rep.name)
			continue
		}
		before := ifs.NumberOfCoord()
		fmt.Fprintf(w, "IndexedFaceSet %d | %s: %d -> %d vertices\n", i, rep.name, before, r.NumVertices())
		for v, old := range r.VertexMap {
			if v >= before || old != v {
				fmt.Fprintf(w, "  vertex %d <- %d\n", v, old)
			}
		}
		if rep.name == "cutThroughSingularVertices" {
			if cut, err := r.Mesh(); err == nil {
				fmt.Fprintf(w, "  singular edges left = %v\n", cut.SingularEdges())
			}
		}
		if opts.apply {
			if err := ifs.ApplyVertexMap(r.VertexMap, r.CoordIndex); err != nil {
				return fmt.Errorf("IndexedFaceSet %d: %w", i, err)
			}
			if err := rebuild(); err != nil {
				return err
			}
		}
	}

	if opts.debug {
		fmt.Fprintf(w, "IndexedFaceSet %d after processing\n%s\n", i, indent(m.Info().String(), "  "))
	}
	return nil
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	return prefix + strings.Join(lines, "\n"+prefix)
}

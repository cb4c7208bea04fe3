// Command draft loads construction scripts and DXF files, validates them and
// prints a summary of their geometry. Optional point picks and ray casts are
// run against every loaded drawing.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/chazu/draft/pkg/drawing"
	"github.com/chazu/draft/pkg/geom"
	"github.com/chazu/draft/pkg/pick"
	"github.com/chazu/draft/pkg/tessellate"
	"github.com/chazu/draft/pkg/vec"
)

func main() {
	log.SetPrefix("draft: ")
	log.SetFlags(0)

	tol := flag.Float64("tol", tessellate.DefaultTolerance, "curve flattening tolerance in drawing units")
	maxSeg := flag.Int("max-segments", tessellate.DefaultMaxSegments, "maximum segments per circle or arc")
	pickTol := flag.Float64("pick-tol", drawing.DefaultPickTolerance, "pick radius in drawing units")
	pickAt := flag.String("pick", "", "pick entities near `x,y`")
	rayArg := flag.String("ray", "", "cast a ray `ox,oy,dx,dy` through the drawing")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: draft [flags] file.draft|file.dxf...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	probe, err := parseProbe(*pickAt, *rayArg)
	if err != nil {
		log.Fatal(err)
	}

	app := NewApp(Options{
		Tessellate: tessellate.Options{Tolerance: *tol, MaxSegments: *maxSeg},
		Pick:       pick.Options{Tolerance: *pickTol},
	})

	failed := false
	for _, path := range flag.Args() {
		r, err := app.LoadFile(path)
		if err != nil {
			log.Print(err)
			failed = true
			continue
		}
		if err := app.Probe(&r, probe); err != nil {
			log.Print(err)
			failed = true
		}
		fmt.Println(Render(r))
		if len(r.Errors) > 0 {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// parseProbe turns the -pick and -ray flag values into a Probe.
func parseProbe(at, ray string) (Probe, error) {
	var p Probe
	if at != "" {
		xs, err := parseFloats(at, 2)
		if err != nil {
			return p, fmt.Errorf("-pick: %w", err)
		}
		p.At = &vec.Vec2{X: xs[0], Y: xs[1]}
	}
	if ray != "" {
		xs, err := parseFloats(ray, 4)
		if err != nil {
			return p, fmt.Errorf("-ray: %w", err)
		}
		r := geom.NewRay2D(vec.Vec2{X: xs[0], Y: xs[1]}, vec.Vec2{X: xs[2], Y: xs[3]})
		p.Ray = &r
	}
	return p, nil
}

// parseFloats parses exactly n comma-separated numbers.
func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d comma-separated numbers, got %q", n, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i+1, err)
		}
		out[i] = f
	}
	return out, nil
}

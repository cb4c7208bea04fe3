package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/draft/pkg/drawing"
	"github.com/chazu/draft/pkg/dxfimport"
	"github.com/chazu/draft/pkg/engine"
	"github.com/chazu/draft/pkg/geom"
	"github.com/chazu/draft/pkg/kernel"
	"github.com/chazu/draft/pkg/kernel/sdfx"
	"github.com/chazu/draft/pkg/pick"
	"github.com/chazu/draft/pkg/tessellate"
	"github.com/chazu/draft/pkg/vec"
)

// Options configures an App. Zero fields fall back to the package defaults.
type Options struct {
	Tessellate tessellate.Options
	Pick       pick.Options
}

// DefaultOptions returns the default pipeline settings.
func DefaultOptions() Options {
	return Options{
		Tessellate: tessellate.DefaultOptions(),
		Pick:       pick.DefaultOptions(),
	}
}

// App runs the load, validate, measure and flatten pipeline for the CLI.
type App struct {
	engine *engine.Engine
	kernel kernel.Kernel
	opts   Options
}

// Finding is a single error or warning line in a report.
type Finding struct {
	Line    int    // source line, 0 when unknown
	Entity  string // entity name or short id, "" when not tied to one
	Message string
}

func (f Finding) String() string {
	var b strings.Builder
	if f.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", f.Line)
	}
	if f.Entity != "" {
		fmt.Fprintf(&b, "%s: ", f.Entity)
	}
	b.WriteString(f.Message)
	return b.String()
}

// Report is everything the CLI prints for one input.
type Report struct {
	Source   string
	Drawing  *drawing.Drawing
	Extents  geom.BoundingBox
	Paths    []tessellate.Path
	Errors   []Finding
	Warnings []Finding
	Skipped  []string // DXF entity types that were not imported

	Picked  []pick.Hit
	RayHits []pick.RayHit
}

// Vertices counts the flattened points across all paths.
func (r Report) Vertices() int {
	n := 0
	for _, p := range r.Paths {
		n += len(p.Points)
	}
	return n
}

// Probe is an optional point pick and ray cast run against a report.
type Probe struct {
	At  *vec.Vec2
	Ray *geom.Ray2D
}

// NewApp creates a new App with an engine and the sdfx kernel.
func NewApp(opts Options) *App {
	def := DefaultOptions()
	if opts.Tessellate.Tolerance == 0 {
		opts.Tessellate.Tolerance = def.Tessellate.Tolerance
	}
	if opts.Tessellate.MaxSegments == 0 {
		opts.Tessellate.MaxSegments = def.Tessellate.MaxSegments
	}
	if opts.Pick.Tolerance == 0 {
		opts.Pick = def.Pick
	}
	return &App{
		engine: engine.NewEngine(),
		kernel: sdfx.New(),
		opts:   opts,
	}
}

// LoadFile reads a .dxf file or a construction script and runs the pipeline.
// Only I/O failures are returned as errors; problems with the contents are
// reported as findings.
func (a *App) LoadFile(path string) (Report, error) {
	if strings.EqualFold(filepath.Ext(path), ".dxf") {
		d, st, err := dxfimport.Load(path)
		if err != nil {
			return Report{}, err
		}
		r := Report{Source: path, Drawing: d, Skipped: st.SkippedSummary()}
		a.validate(&r)
		a.finish(&r)
		return r, nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("read %s: %w", path, err)
	}
	r := a.Evaluate(string(src))
	r.Source = path
	return r, nil
}

// Evaluate takes construction script source and returns the report.
func (a *App) Evaluate(source string) Report {
	r := Report{Source: "<source>"}

	// Step 1: Evaluate the source into a drawing, with validation findings.
	res, err := a.engine.Run(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		r.Errors = append(r.Errors, Finding{Message: err.Error()})
		return r
	}

	// Step 2: Convert eval errors and warnings to findings. Validation
	// errors name their entity the same way DXF findings do.
	r.Drawing = res.Drawing
	for _, e := range res.Errors {
		f := Finding{Line: e.Line, Message: e.Message}
		if r.Drawing != nil {
			f.Entity = a.entityLabel(r.Drawing, e.EntityID)
		}
		r.Errors = append(r.Errors, f)
	}
	if r.Drawing == nil {
		return r
	}
	for _, w := range res.Warnings {
		r.Warnings = append(r.Warnings, Finding{Entity: a.entityLabel(r.Drawing, w.EntityID), Message: w.Message})
	}

	// Step 3: Measure and flatten.
	a.finish(&r)
	return r
}

// validate attaches drawing validation findings to r.
func (a *App) validate(r *Report) {
	v := drawing.ValidateAll(r.Drawing)
	for _, e := range v.Errors {
		r.Errors = append(r.Errors, Finding{Entity: a.entityLabel(r.Drawing, e.EntityID), Message: e.Message})
	}
	for _, w := range v.Warnings {
		r.Warnings = append(r.Warnings, Finding{Entity: a.entityLabel(r.Drawing, w.EntityID), Message: w.Message})
	}
}

// finish computes the extents and flattened paths of r's drawing.
func (a *App) finish(r *Report) {
	r.Extents = r.Drawing.Extents()

	paths, err := tessellate.Tessellate(r.Drawing, a.opts.Tessellate)
	if err != nil {
		log.Printf("Tessellate error: %v", err)
		r.Errors = append(r.Errors, Finding{Message: "tessellation failed: " + err.Error()})
		return
	}
	r.Paths = paths
}

// Probe runs the requested pick and ray cast against r's drawing.
func (a *App) Probe(r *Report, p Probe) error {
	if r.Drawing == nil || (p.At == nil && p.Ray == nil) {
		return nil
	}
	pk := pick.New(r.Drawing, a.kernel, a.opts.Pick)
	if p.At != nil {
		hits, err := pk.At(*p.At)
		if err != nil {
			return err
		}
		// Non-nil even when empty, so the report shows the probe ran.
		r.Picked = append([]pick.Hit{}, hits...)
	}
	if p.Ray != nil {
		r.RayHits = append([]pick.RayHit{}, pk.Cast(*p.Ray)...)
	}
	return nil
}

func (a *App) entityLabel(d *drawing.Drawing, id drawing.EntityID) string {
	if id.IsZero() {
		return ""
	}
	if e := d.Get(id); e != nil && e.Name != "" {
		return e.Name
	}
	return id.Short()
}

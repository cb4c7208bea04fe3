package engine

import (
	"math"
	"strings"
	"testing"

	"github.com/chazu/draft/pkg/drawing"
	"github.com/chazu/draft/pkg/geom"
	"github.com/chazu/draft/pkg/vec"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(circle :radius 2)`,
			expect: `(circle "__kw_radius" 2)`,
		},
		{
			name:   "multiple keywords",
			input:  `(draw s :name "rim" :layer "outline")`,
			expect: `(draw s "__kw_name" "rim" "__kw_layer" "outline")`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"thing with :keyword inside"`,
			expect: `"thing with :keyword inside"`,
		},
		{
			name:   "escaped quote in string",
			input:  `"a \":b" :c`,
			expect: `"a \":b" "__kw_c"`,
		},
		{
			name:   "backtick string preserved",
			input:  "`raw :kw`",
			expect: "`raw :kw`",
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "kebab-case identifier",
			input:  `(vec-x :start-angle p)`,
			expect: `(vec_x "__kw_start-angle" p)`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "negative literal preserved",
			input:  `(vec2 -1 -2.5)`,
			expect: `(vec2 -1 -2.5)`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
		{
			name:   "single semicolon comment",
			input:  "; simple comment\n:x",
			expect: "// simple comment\n\"__kw_x\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// evalOK evaluates source and fails the test on any error.
func evalOK(t *testing.T, source string) *drawing.Drawing {
	t.Helper()
	d, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if d == nil {
		t.Fatal("expected non-nil drawing")
	}
	return d
}

// evalFails evaluates source and returns the first eval error message.
func evalFails(t *testing.T, source string) string {
	t.Helper()
	d, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if d != nil {
		t.Error("expected nil drawing on eval error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error")
	}
	return evalErrs[0].Message
}

// ---------------------------------------------------------------------------
// Shape construction
// ---------------------------------------------------------------------------

func TestDrawSegment(t *testing.T) {
	d := evalOK(t, `(draw (segment (vec2 0 0) (vec2 10 5)) :name "edge" :layer "outline")`)

	if d.Len() != 1 {
		t.Fatalf("expected 1 entity, got %d", d.Len())
	}
	e := d.Lookup("edge")
	if e == nil {
		t.Fatal("expected entity named 'edge'")
	}
	if e.Layer != "outline" {
		t.Errorf("layer = %q, want outline", e.Layer)
	}
	s, ok := e.Shape.(geom.Segment)
	if !ok {
		t.Fatalf("expected Segment, got %T", e.Shape)
	}
	want := geom.Segment{Beg: vec.Vec2{X: 0, Y: 0}, End: vec.Vec2{X: 10, Y: 5}}
	if s != want {
		t.Errorf("segment = %+v, want %+v", s, want)
	}
	if bb := e.Bounds(); bb != (geom.BoundingBox{L: 0, T: 0, R: 10, B: 5}) {
		t.Errorf("bounds = %+v", bb)
	}
}

func TestDrawDefaultsLayer(t *testing.T) {
	d := evalOK(t, `(draw (circle :radius 1))`)

	e := d.Entities[0]
	if e.Layer != drawing.DefaultLayer {
		t.Errorf("layer = %q, want %q", e.Layer, drawing.DefaultLayer)
	}
	if e.Name != "" {
		t.Errorf("name = %q, want anonymous", e.Name)
	}
	c := e.Shape.(geom.Circle)
	if c.Center != (vec.Vec2{}) || c.Radius != 1 {
		t.Errorf("circle = %+v", c)
	}
}

func TestCircleWithCenter(t *testing.T) {
	d := evalOK(t, `(defshape "hole" (circle :center (vec2 3 4) :radius 2.5))`)

	c, ok := d.Lookup("hole").Shape.(geom.Circle)
	if !ok {
		t.Fatalf("expected Circle, got %T", d.Lookup("hole").Shape)
	}
	if c.Center != (vec.Vec2{X: 3, Y: 4}) || c.Radius != 2.5 {
		t.Errorf("circle = %+v", c)
	}
}

func TestArcInDegrees(t *testing.T) {
	d := evalOK(t, `(defshape "bend" (arc :center (vec2 1 1) :radius 5 :start (deg 90) :sweep (deg -180)))`)

	a, ok := d.Lookup("bend").Shape.(geom.Arc)
	if !ok {
		t.Fatalf("expected Arc, got %T", d.Lookup("bend").Shape)
	}
	if math.Abs(a.Start-math.Pi/2) > 1e-12 {
		t.Errorf("start = %v, want pi/2", a.Start)
	}
	if math.Abs(a.Sweep+math.Pi) > 1e-12 {
		t.Errorf("sweep = %v, want -pi", a.Sweep)
	}
	if a.Radius != 5 || a.Center != (vec.Vec2{X: 1, Y: 1}) {
		t.Errorf("arc = %+v", a)
	}
}

func TestPolylineForms(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"variadic", `(defshape "p" (polyline (vec2 0 0) (vec2 1 0) (vec2 1 1)))`},
		{"list", `(defshape "p" (polyline (list (vec2 0 0) (vec2 1 0) (vec2 1 1))))`},
		{"array", `(defshape "p" (polyline [(vec2 0 0) (vec2 1 0) (vec2 1 1)]))`},
	}
	want := []vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := evalOK(t, tt.source)
			p, ok := d.Lookup("p").Shape.(geom.Polyline)
			if !ok {
				t.Fatalf("expected Polyline, got %T", d.Lookup("p").Shape)
			}
			if len(p.Points) != len(want) {
				t.Fatalf("points = %v, want %v", p.Points, want)
			}
			for i := range want {
				if p.Points[i] != want[i] {
					t.Errorf("point %d = %v, want %v", i, p.Points[i], want[i])
				}
			}
		})
	}
}

func TestVariableReference(t *testing.T) {
	d := evalOK(t, `
(def r 7)
(def c (vec2 2 3))
(draw (circle :center c :radius r) :name "a")
(draw (circle :center c :radius (* r 2)) :name "b")
`)
	if got := d.Lookup("b").Shape.(geom.Circle).Radius; got != 14 {
		t.Errorf("radius = %v, want 14", got)
	}
	if got := d.Lookup("a").Shape.(geom.Circle).Center; got != (vec.Vec2{X: 2, Y: 3}) {
		t.Errorf("center = %v", got)
	}
}

func TestVecAccessors(t *testing.T) {
	d := evalOK(t, `
(def p (vec2 3 4))
(draw (segment (vec2 0 0) (vec2 (vec-x p) (vec-y p))) :name "s")
`)
	if got := d.Lookup("s").Shape.(geom.Segment).End; got != (vec.Vec2{X: 3, Y: 4}) {
		t.Errorf("end = %v, want (3,4)", got)
	}
}

// ---------------------------------------------------------------------------
// Rays
// ---------------------------------------------------------------------------

func TestIntersectRays(t *testing.T) {
	d := evalOK(t, `
(def hit (intersect (ray (vec2 0 0) (vec2 1 0)) (ray (vec2 5 5) (vec2 0 -1))))
(draw (segment (vec2 0 0) hit) :name "to-hit")
`)
	if got := d.Lookup("to-hit").Shape.(geom.Segment).End; got != (vec.Vec2{X: 5, Y: 0}) {
		t.Errorf("intersection = %v, want (5,0)", got)
	}
}

func TestIntersectParallelIsNil(t *testing.T) {
	msg := evalFails(t, `
(def hit (intersect (ray (vec2 0 0) (vec2 1 0)) (ray (vec2 0 1) (vec2 1 0))))
(draw (segment (vec2 0 0) hit))
`)
	if !strings.Contains(msg, "expected vec2") {
		t.Errorf("message = %q, want a vec2 type error", msg)
	}
}

// ---------------------------------------------------------------------------
// Names
// ---------------------------------------------------------------------------

func TestShapeLookup(t *testing.T) {
	d := evalOK(t, `
(defshape "rim" (circle :radius 4) :layer "outline")
(draw (shape "rim") :name "copy" :layer "hidden")
`)
	if d.Len() != 2 {
		t.Fatalf("expected 2 entities, got %d", d.Len())
	}
	if d.Lookup("rim").Layer != "outline" || d.Lookup("copy").Layer != "hidden" {
		t.Errorf("layers = %q, %q", d.Lookup("rim").Layer, d.Lookup("copy").Layer)
	}
	if d.Lookup("rim").Shape != d.Lookup("copy").Shape {
		t.Error("copy should share the rim's shape")
	}
	if d.Lookup("rim").ID == d.Lookup("copy").ID {
		t.Error("entities should have distinct ids")
	}
}

func TestDeterministicIDs(t *testing.T) {
	source := `
(defshape "a" (circle :radius 1))
(draw (segment (vec2 0 0) (vec2 1 1)))
`
	d1 := evalOK(t, source)
	d2 := evalOK(t, source)
	for i := range d1.Entities {
		if d1.Entities[i].ID != d2.Entities[i].ID {
			t.Errorf("entity %d id differs between runs: %s vs %s",
				i, d1.Entities[i].ID, d2.Entities[i].ID)
		}
	}
}

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

func TestBuiltinErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantMsg string
	}{
		{"unknown shape", `(shape "nope")`, `no shape named "nope"`},
		{"duplicate defshape", `(defshape "a" (circle :radius 1)) (defshape "a" (circle :radius 2))`, `"a" already defined`},
		{"duplicate draw name", `(defshape "a" (circle :radius 1)) (draw (circle :radius 2) :name "a")`, `already defined`},
		{"circle without radius", `(circle :center (vec2 0 0))`, "missing :radius"},
		{"arc without sweep", `(arc :radius 1)`, "missing :sweep"},
		{"segment arity", `(segment (vec2 0 0))`, "segment requires"},
		{"segment wrong type", `(segment 1 (vec2 0 0))`, "expected vec2"},
		{"vec2 arity", `(vec2 1)`, "vec2 requires exactly 2"},
		{"vec2 not a number", `(vec2 "a" 1)`, "expected number"},
		{"draw not a shape", `(draw (vec2 0 0))`, "expected shape"},
		{"draw nothing", `(draw :name "x")`, "exactly one shape"},
		{"polyline bad point", `(polyline (vec2 0 0) 3)`, "point 1"},
		{"ray arity", `(ray (vec2 0 0))`, "ray requires"},
		{"intersect wrong type", `(intersect (vec2 0 0) (vec2 1 1))`, "expected ray"},
		{"empty defshape name", `(defshape "" (circle :radius 1))`, "must not be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := evalFails(t, tt.source)
			if !strings.Contains(msg, tt.wantMsg) {
				t.Errorf("message = %q, want containing %q", msg, tt.wantMsg)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Full example
// ---------------------------------------------------------------------------

func TestBracketExample(t *testing.T) {
	source := `
;; A mounting bracket outline with two holes.
(def w 40)
(def h 20)

(defshape "outline"
  (polyline (vec2 0 0) (vec2 w 0) (vec2 w h) (vec2 0 h) (vec2 0 0))
  :layer "cut")

(defshape "hole-left"  (circle :center (vec2 8 10) :radius 3) :layer "drill")
(defshape "hole-right" (circle :center (vec2 32 10) :radius 3) :layer "drill")

(draw (arc :center (vec2 20 h) :radius 6 :start 0 :sweep (deg 180))
      :name "notch" :layer "cut")
`
	d := evalOK(t, source)

	if d.Len() != 4 {
		t.Fatalf("expected 4 entities, got %d", d.Len())
	}
	for _, name := range []string{"outline", "hole-left", "hole-right", "notch"} {
		if d.Lookup(name) == nil {
			t.Errorf("missing entity %q", name)
		}
	}
	if got := len(d.OnLayer("drill")); got != 2 {
		t.Errorf("drill layer has %d entities, want 2", got)
	}

	// The notch arc rises above the outline to y = h + 6.
	want := geom.BoundingBox{L: 0, T: 0, R: 40, B: 26}
	if got := d.Extents(); got != want {
		t.Errorf("extents = %+v, want %+v", got, want)
	}
	if v := drawing.ValidateAll(d); !v.OK() || len(v.Warnings) != 0 {
		t.Errorf("validation = %+v, want clean", v)
	}
}

func TestEmptySourceStillWorks(t *testing.T) {
	d := evalOK(t, "")
	if d.Len() != 0 {
		t.Errorf("expected empty drawing, got %d entities", d.Len())
	}
}

func TestArithmeticStillWorks(t *testing.T) {
	d := evalOK(t, "(+ 1 2)")
	if d.Len() != 0 {
		t.Errorf("expected empty drawing, got %d entities", d.Len())
	}
}

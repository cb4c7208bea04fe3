package engine

import (
	"fmt"
	"math"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/draft/pkg/drawing"
	"github.com/chazu/draft/pkg/geom"
	"github.com/chazu/draft/pkg/vec"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec2 wraps a vec.Vec2.
type sexpVec2 struct {
	v vec.Vec2
}

func (s *sexpVec2) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec2 %g %g)", s.v.X, s.v.Y)
}
func (s *sexpVec2) Type() *zygo.RegisteredType { return nil }

// sexpShape wraps a geom.Shape so it can be returned from the shape
// constructors and consumed by draw and defshape.
type sexpShape struct {
	shape geom.Shape
}

func (s *sexpShape) SexpString(ps *zygo.PrintState) string {
	bb := geom.Bounds(s.shape)
	return fmt.Sprintf("(%s [%g %g %g %g])", s.shape.Kind(), bb.L, bb.T, bb.R, bb.B)
}
func (s *sexpShape) Type() *zygo.RegisteredType { return nil }

// sexpRay wraps a geom.Ray2D.
type sexpRay struct {
	ray geom.Ray2D
}

func (s *sexpRay) SexpString(ps *zygo.PrintState) string {
	o, d := s.ray.Origin, s.ray.Direction
	return fmt.Sprintf("(ray (vec2 %g %g) (vec2 %g %g))", o.X, o.Y, d.X, d.Y)
}
func (s *sexpRay) Type() *zygo.RegisteredType { return nil }

// sexpEntityRef wraps a drawing.EntityID returned from draw and defshape.
type sexpEntityRef struct {
	id   drawing.EntityID
	name string // human-readable name for printing
}

func (s *sexpEntityRef) SexpString(ps *zygo.PrintState) string {
	if s.name != "" {
		return fmt.Sprintf("(entity %q)", s.name)
	}
	return fmt.Sprintf("(entity %s)", s.id.Short())
}
func (s *sexpEntityRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// A trailing keyword with no value maps to nil.
func parseArgs(args []zygo.Sexp) kwArgs {
	pa := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			pa.positional = append(pa.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			pa.kw[name] = args[i+1]
			i++
		} else {
			pa.kw[name] = zygo.SexpNull
		}
	}
	return pa
}

// requireFloat reads keyword key from pa as a number.
func (pa kwArgs) requireFloat(fn, key string) (float64, error) {
	v, ok := pa.kw[key]
	if !ok {
		return 0, fmt.Errorf("%s: missing :%s", fn, key)
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %s: %w", fn, key, err)
	}
	return f, nil
}

// optString reads keyword key from pa as a string, or "" when absent.
func (pa kwArgs) optString(fn, key string) (string, error) {
	v, ok := pa.kw[key]
	if !ok {
		return "", nil
	}
	s, err := toString(v)
	if err != nil {
		return "", fmt.Errorf("%s: %s: %w", fn, key, err)
	}
	return s, nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toVec2 extracts a Vec2 from a sexpVec2.
func toVec2(s zygo.Sexp) (vec.Vec2, error) {
	if v, ok := s.(*sexpVec2); ok {
		return v.v, nil
	}
	return vec.Vec2{}, fmt.Errorf("expected vec2, got %T (%s)", s, s.SexpString(nil))
}

// toShape extracts a geom.Shape from a sexpShape.
func toShape(s zygo.Sexp) (geom.Shape, error) {
	if v, ok := s.(*sexpShape); ok {
		return v.shape, nil
	}
	return nil, fmt.Errorf("expected shape, got %T (%s)", s, s.SexpString(nil))
}

// toRay extracts a geom.Ray2D from a sexpRay.
func toRay(s zygo.Sexp) (geom.Ray2D, error) {
	if v, ok := s.(*sexpRay); ok {
		return v.ray, nil
	}
	return geom.Ray2D{}, fmt.Errorf("expected ray, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the construction builtins into a zygomys
// environment. Builtins that place entities add them to d.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, d *drawing.Drawing) {

	// -----------------------------------------------------------------------
	// (vec2 3 4)
	// -----------------------------------------------------------------------
	env.AddFunction("vec2", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("vec2 requires exactly 2 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec2: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec2: y: %w", err)
		}
		return &sexpVec2{v: vec.Vec2{X: x, Y: y}}, nil
	})

	// (vec-x v), (vec-y v)
	for _, acc := range []struct {
		name string
		get  func(vec.Vec2) float64
	}{
		{"vec_x", func(v vec.Vec2) float64 { return v.X }},
		{"vec_y", func(v vec.Vec2) float64 { return v.Y }},
	} {
		env.AddFunction(acc.name, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 1 {
				return zygo.SexpNull, fmt.Errorf("%s requires exactly 1 argument, got %d", name, len(args))
			}
			v, err := toVec2(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			return &zygo.SexpFloat{Val: acc.get(v)}, nil
		})
	}

	// -----------------------------------------------------------------------
	// (deg 90) => radians
	// -----------------------------------------------------------------------
	env.AddFunction("deg", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("deg requires exactly 1 argument, got %d", len(args))
		}
		a, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("deg: %w", err)
		}
		return &zygo.SexpFloat{Val: a * math.Pi / 180}, nil
	})

	// -----------------------------------------------------------------------
	// (segment (vec2 0 0) (vec2 10 5))
	// -----------------------------------------------------------------------
	env.AddFunction("segment", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("segment requires a start and an end point, got %d arguments", len(args))
		}
		beg, err := toVec2(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("segment: start: %w", err)
		}
		end, err := toVec2(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("segment: end: %w", err)
		}
		return &sexpShape{shape: geom.Segment{Beg: beg, End: end}}, nil
	})

	// -----------------------------------------------------------------------
	// (circle :center (vec2 0 0) :radius 2)
	// -----------------------------------------------------------------------
	env.AddFunction("circle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		c := geom.Circle{}

		if v, ok := pa.kw["center"]; ok {
			p, err := toVec2(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("circle: center: %w", err)
			}
			c.Center = p
		}
		r, err := pa.requireFloat("circle", "radius")
		if err != nil {
			return zygo.SexpNull, err
		}
		c.Radius = r

		return &sexpShape{shape: c}, nil
	})

	// -----------------------------------------------------------------------
	// (arc :center (vec2 0 0) :radius 5 :start 0 :sweep (deg 270))
	// -----------------------------------------------------------------------
	env.AddFunction("arc", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		a := geom.Arc{}

		if v, ok := pa.kw["center"]; ok {
			p, err := toVec2(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("arc: center: %w", err)
			}
			a.Center = p
		}
		var err error
		if a.Radius, err = pa.requireFloat("arc", "radius"); err != nil {
			return zygo.SexpNull, err
		}
		if v, ok := pa.kw["start"]; ok {
			if a.Start, err = toFloat64(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("arc: start: %w", err)
			}
		}
		if a.Sweep, err = pa.requireFloat("arc", "sweep"); err != nil {
			return zygo.SexpNull, err
		}

		return &sexpShape{shape: a}, nil
	})

	// -----------------------------------------------------------------------
	// (polyline (vec2 0 0) (vec2 1 0) (vec2 1 1))
	// (polyline (list (vec2 0 0) (vec2 1 0)))
	// -----------------------------------------------------------------------
	env.AddFunction("polyline", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		items := args
		if len(args) == 1 {
			if list, err := sexpListToSlice(args[0]); err == nil {
				items = list
			}
		}
		pts := make([]vec.Vec2, 0, len(items))
		for i, item := range items {
			p, err := toVec2(item)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polyline: point %d: %w", i, err)
			}
			pts = append(pts, p)
		}
		return &sexpShape{shape: geom.NewPolyline(pts...)}, nil
	})

	// -----------------------------------------------------------------------
	// (ray (vec2 0 0) (vec2 1 0))
	// -----------------------------------------------------------------------
	env.AddFunction("ray", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("ray requires an origin and a direction, got %d arguments", len(args))
		}
		o, err := toVec2(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("ray: origin: %w", err)
		}
		dir, err := toVec2(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("ray: direction: %w", err)
		}
		return &sexpRay{ray: geom.NewRay2D(o, dir)}, nil
	})

	// -----------------------------------------------------------------------
	// (intersect r1 r2) => vec2, or nil when the rays do not meet
	// -----------------------------------------------------------------------
	env.AddFunction("intersect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("intersect requires exactly 2 rays, got %d arguments", len(args))
		}
		a, err := toRay(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("intersect: first: %w", err)
		}
		b, err := toRay(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("intersect: second: %w", err)
		}
		p, ok := a.Intersect(b)
		if !ok {
			return zygo.SexpNull, nil
		}
		return &sexpVec2{v: p}, nil
	})

	// -----------------------------------------------------------------------
	// (draw (segment ...) :name "edge" :layer "outline")
	// -----------------------------------------------------------------------
	env.AddFunction("draw", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("draw requires exactly one shape, got %d", len(pa.positional))
		}
		s, err := toShape(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("draw: %w", err)
		}
		entName, err := pa.optString("draw", "name")
		if err != nil {
			return zygo.SexpNull, err
		}
		layer, err := pa.optString("draw", "layer")
		if err != nil {
			return zygo.SexpNull, err
		}
		if entName != "" && d.Lookup(entName) != nil {
			return zygo.SexpNull, fmt.Errorf("draw: name %q already defined", entName)
		}

		e := d.AddShape(entName, layer, s)
		return &sexpEntityRef{id: e.ID, name: e.Name}, nil
	})

	// -----------------------------------------------------------------------
	// (defshape "rim" (circle ...) :layer "outline")
	// -----------------------------------------------------------------------
	env.AddFunction("defshape", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 2 {
			return zygo.SexpNull, fmt.Errorf("defshape requires a name and a shape expression")
		}
		entName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defshape: name: %w", err)
		}
		if entName == "" {
			return zygo.SexpNull, fmt.Errorf("defshape: name must not be empty")
		}
		s, err := toShape(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defshape: %w", err)
		}
		layer, err := pa.optString("defshape", "layer")
		if err != nil {
			return zygo.SexpNull, err
		}
		if d.Lookup(entName) != nil {
			return zygo.SexpNull, fmt.Errorf("defshape: %q already defined", entName)
		}

		e := d.AddShape(entName, layer, s)
		return &sexpEntityRef{id: e.ID, name: entName}, nil
	})

	// -----------------------------------------------------------------------
	// (shape "rim") => the shape of a named entity
	// -----------------------------------------------------------------------
	env.AddFunction("shape", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("shape requires a name argument")
		}
		entName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("shape: name: %w", err)
		}
		e := d.Lookup(entName)
		if e == nil {
			return zygo.SexpNull, fmt.Errorf("shape: no shape named %q", entName)
		}
		return &sexpShape{shape: e.Shape}, nil
	})
}

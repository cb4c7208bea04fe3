package dxfimport

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/chazu/draft/pkg/geom"
	"github.com/chazu/draft/pkg/vec"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		in   entity.Entity
		want geom.Shape
	}{
		{
			name: "line drops z",
			in:   &entity.Line{Start: []float64{0, 0, 3}, End: []float64{10, 5, 3}},
			want: geom.Segment{Beg: vec.Vec2{X: 0, Y: 0}, End: vec.Vec2{X: 10, Y: 5}},
		},
		{
			name: "circle",
			in:   &entity.Circle{Center: []float64{1, 2, 0}, Radius: 4},
			want: geom.Circle{Center: vec.Vec2{X: 1, Y: 2}, Radius: 4},
		},
		{
			name: "open polyline",
			in:   &entity.LwPolyline{Vertices: [][]float64{{0, 0}, {1, 0}, {1, 1}}},
			want: geom.NewPolyline(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 1, Y: 0}, vec.Vec2{X: 1, Y: 1}),
		},
		{
			name: "closed polyline repeats first vertex",
			in:   &entity.LwPolyline{Closed: true, Vertices: [][]float64{{0, 0}, {1, 0}, {1, 1}}},
			want: geom.NewPolyline(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 1, Y: 0}, vec.Vec2{X: 1, Y: 1}, vec.Vec2{X: 0, Y: 0}),
		},
		{
			name: "closed polyline already closed",
			in:   &entity.LwPolyline{Closed: true, Vertices: [][]float64{{0, 0}, {1, 0}, {0, 0}}},
			want: geom.NewPolyline(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 1, Y: 0}, vec.Vec2{X: 0, Y: 0}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Convert(tt.in)
			if !ok {
				t.Fatal("Convert() rejected entity")
			}
			if got.Kind() != tt.want.Kind() {
				t.Fatalf("kind = %s, want %s", got.Kind(), tt.want.Kind())
			}
			if geom.Bounds(got) != geom.Bounds(tt.want) {
				t.Errorf("bounds = %+v, want %+v", geom.Bounds(got), geom.Bounds(tt.want))
			}
			if p, ok := got.(geom.Polyline); ok {
				w := tt.want.(geom.Polyline)
				if len(p.Points) != len(w.Points) {
					t.Fatalf("points = %v, want %v", p.Points, w.Points)
				}
				for i := range w.Points {
					if p.Points[i] != w.Points[i] {
						t.Errorf("point %d = %v, want %v", i, p.Points[i], w.Points[i])
					}
				}
			}
		})
	}
}

func TestConvertHeavyPolyline(t *testing.T) {
	dd := dxf.NewDrawing()
	open, err := dd.Polyline(false, []float64{0, 0, 1}, []float64{4, 0, 1}, []float64{4, 3, 1})
	if err != nil {
		t.Fatal(err)
	}
	closed, err := dd.Polyline(true, []float64{0, 0, 0}, []float64{4, 0, 0}, []float64{4, 3, 0})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		in   entity.Entity
		want []vec.Vec2
	}{
		{"open", open, []vec.Vec2{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 3}}},
		{"closed", closed, []vec.Vec2{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 3}, {X: 0, Y: 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Convert(tt.in)
			if !ok {
				t.Fatal("Convert() rejected POLYLINE")
			}
			p := got.(geom.Polyline)
			if len(p.Points) != len(tt.want) {
				t.Fatalf("points = %v, want %v", p.Points, tt.want)
			}
			for i := range tt.want {
				if p.Points[i] != tt.want[i] {
					t.Errorf("point %d = %v, want %v", i, p.Points[i], tt.want[i])
				}
			}
		})
	}

	d, st := FromEntities(dd.Entities())
	if st.Converted != 2 || st.Skipped != 0 || d.Len() != 2 {
		t.Errorf("FromEntities() = %d entities, stats %+v", d.Len(), st)
	}
}

func TestConvertArc(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
		wantStart  float64
		wantSweep  float64
	}{
		{"quarter", 0, 90, 0, math.Pi / 2},
		{"wraps through zero", 270, 90, 3 * math.Pi / 2, math.Pi},
		{"end before start", 90, 0, math.Pi / 2, 3 * math.Pi / 2},
		{"equal angles are a full turn", 45, 45, math.Pi / 4, 2 * math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := &entity.Arc{
				Circle: &entity.Circle{Center: []float64{5, 5, 0}, Radius: 2},
				Angle:  []float64{tt.start, tt.end},
			}
			got, ok := Convert(in)
			if !ok {
				t.Fatal("Convert() rejected arc")
			}
			a := got.(geom.Arc)
			if a.Center != (vec.Vec2{X: 5, Y: 5}) || a.Radius != 2 {
				t.Errorf("arc = %+v", a)
			}
			if math.Abs(a.Start-tt.wantStart) > 1e-12 {
				t.Errorf("start = %v, want %v", a.Start, tt.wantStart)
			}
			if math.Abs(a.Sweep-tt.wantSweep) > 1e-12 {
				t.Errorf("sweep = %v, want %v", a.Sweep, tt.wantSweep)
			}
		})
	}
}

func TestConvertRejects(t *testing.T) {
	if _, ok := Convert(&entity.Arc{Circle: &entity.Circle{Radius: 1}}); ok {
		t.Error("arc without angles converted")
	}
	if _, ok := Convert(nil); ok {
		t.Error("nil entity converted")
	}
}

func TestSweepDegrees(t *testing.T) {
	tests := []struct {
		start, end, want float64
	}{
		{0, 360, 360},
		{0, 720, 360},
		{10, 20, 10},
		{20, 10, 350},
		{-90, 90, 180},
	}
	for _, tt := range tests {
		if got := sweepDegrees(tt.start, tt.end); got != tt.want {
			t.Errorf("sweepDegrees(%v, %v) = %v, want %v", tt.start, tt.end, got, tt.want)
		}
	}
}

// bracket builds a small DXF drawing across two layers.
func bracket(t *testing.T) []entity.Entity {
	t.Helper()
	dd := dxf.NewDrawing()
	if _, err := dd.AddLayer("cut", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		t.Fatalf("AddLayer() error = %v", err)
	}
	if _, err := dd.Line(0, 0, 0, 40, 0, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := dd.LwPolyline(true, []float64{0, 0}, []float64{40, 0}, []float64{40, 20}, []float64{0, 20}); err != nil {
		t.Fatal(err)
	}
	if _, err := dd.AddLayer("drill", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		t.Fatalf("AddLayer() error = %v", err)
	}
	if _, err := dd.Circle(8, 10, 0, 3); err != nil {
		t.Fatal(err)
	}
	if _, err := dd.Arc(20, 20, 0, 6, 0, 180); err != nil {
		t.Fatal(err)
	}
	if _, err := dd.Point(1, 1, 0); err != nil {
		t.Fatal(err)
	}
	return dd.Entities()
}

func TestFromEntities(t *testing.T) {
	d, st := FromEntities(bracket(t))

	if st.Converted != 4 || st.Skipped != 1 {
		t.Errorf("stats = %+v, want 4 converted, 1 skipped", st)
	}
	if st.SkippedKinds["POINT"] != 1 {
		t.Errorf("skipped kinds = %v, want POINT", st.SkippedKinds)
	}
	if got := st.SkippedSummary(); len(got) != 1 || got[0] != "POINT x1" {
		t.Errorf("SkippedSummary() = %v", got)
	}
	if d.Len() != 4 {
		t.Fatalf("drawing has %d entities, want 4", d.Len())
	}
	if got := len(d.OnLayer("cut")); got != 2 {
		t.Errorf("cut layer has %d entities, want 2", got)
	}
	if got := len(d.OnLayer("drill")); got != 2 {
		t.Errorf("drill layer has %d entities, want 2", got)
	}
	want := geom.BoundingBox{L: 0, T: 0, R: 40, B: 26}
	if got := d.Extents(); got != want {
		t.Errorf("extents = %+v, want %+v", got, want)
	}
}

func TestLoad(t *testing.T) {
	dd := dxf.NewDrawing()
	if _, err := dd.Line(0, 0, 0, 10, 5, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := dd.Circle(0, 0, 0, 2); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "part.dxf")
	if err := dd.SaveAs(path); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}

	d, st, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if st.Converted != 2 || d.Len() != 2 {
		t.Fatalf("Load() = %d entities, stats %+v", d.Len(), st)
	}
	want := geom.BoundingBox{L: -2, T: -2, R: 10, B: 5}
	if got := d.Extents(); got != want {
		t.Errorf("extents = %+v, want %+v", got, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, _, err := Load(filepath.Join(t.TempDir(), "nope.dxf")); err == nil {
		t.Error("Load() of a missing file succeeded")
	}
}

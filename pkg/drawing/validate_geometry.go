package drawing

import (
	"fmt"
	"math"

	"github.com/chazu/draft/pkg/geom"
)

// ---------------------------------------------------------------------------
// Tier 2: geometric warnings
// ---------------------------------------------------------------------------

// validateGeometry flags shapes that are legal but degenerate. None of these
// block use; they usually point at an import or construction mistake.
func validateGeometry(d *Drawing) []ValidationWarning {
	var warnings []ValidationWarning
	warnings = append(warnings, validateDegenerate(d)...)
	warnings = append(warnings, validateSweeps(d)...)
	return warnings
}

// validateDegenerate warns about zero-length segments, polylines with fewer
// than two points and zero radii.
func validateDegenerate(d *Drawing) []ValidationWarning {
	var warnings []ValidationWarning

	for _, e := range d.Entities {
		switch s := e.Shape.(type) {
		case geom.Segment:
			if s.Beg == s.End {
				warnings = append(warnings, ValidationWarning{
					EntityID: e.ID,
					Message:  "segment has zero length",
				})
			}
		case geom.Polyline:
			if len(s.Points) < 2 {
				warnings = append(warnings, ValidationWarning{
					EntityID: e.ID,
					Message:  fmt.Sprintf("polyline has %d point(s), need at least 2", len(s.Points)),
				})
			}
		case geom.Circle:
			if s.Radius == 0 {
				warnings = append(warnings, ValidationWarning{
					EntityID: e.ID,
					Message:  "circle has zero radius",
				})
			}
		case geom.Arc:
			if s.Radius == 0 {
				warnings = append(warnings, ValidationWarning{
					EntityID: e.ID,
					Message:  "arc has zero radius",
				})
			}
		}
	}

	return warnings
}

// validateSweeps warns about arcs that draw nothing or a whole circle.
func validateSweeps(d *Drawing) []ValidationWarning {
	var warnings []ValidationWarning

	for _, e := range d.Entities {
		a, ok := e.Shape.(geom.Arc)
		if !ok {
			continue
		}
		switch {
		case a.Sweep == 0:
			warnings = append(warnings, ValidationWarning{
				EntityID: e.ID,
				Message:  "arc has zero sweep",
			})
		case math.Abs(a.Sweep) >= 2*math.Pi:
			warnings = append(warnings, ValidationWarning{
				EntityID: e.ID,
				Message:  fmt.Sprintf("arc sweep %.4f rad covers a full turn; use a circle", a.Sweep),
			})
		}
	}

	return warnings
}

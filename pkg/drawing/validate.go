package drawing

import (
	"fmt"
	"math"

	"github.com/chazu/draft/pkg/geom"
	"github.com/chazu/draft/pkg/vec"
)

// ValidationSeverity indicates whether a validation finding blocks use of
// the drawing or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks use
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	EntityID EntityID           // which entity has the problem (zero if drawing-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.EntityID.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] entity %s: %s", e.Severity, e.EntityID.Short(), e.Message)
}

// ValidationWarning describes a non-blocking advisory finding.
type ValidationWarning struct {
	EntityID EntityID
	Message  string
}

func (w ValidationWarning) String() string {
	if w.EntityID.IsZero() {
		return w.Message
	}
	return fmt.Sprintf("entity %s: %s", w.EntityID.Short(), w.Message)
}

// ValidationResult bundles errors (blocking) and warnings (advisory) from
// both validation tiers.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// OK reports whether there are no blocking errors.
func (r ValidationResult) OK() bool { return len(r.Errors) == 0 }

// Validate runs the structural checks and returns the findings. An empty
// slice means the drawing is usable. Validate never mutates d.
func Validate(d *Drawing) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateNames(d)...)
	errs = append(errs, validateShapes(d)...)
	errs = append(errs, validateFinite(d)...)
	errs = append(errs, validateRadii(d)...)
	return errs
}

// ValidateAll runs the structural and geometric tiers and separates errors
// from warnings.
func ValidateAll(d *Drawing) ValidationResult {
	var result ValidationResult
	for _, e := range Validate(d) {
		if e.Severity == SeverityWarning {
			result.Warnings = append(result.Warnings, ValidationWarning{
				EntityID: e.EntityID,
				Message:  e.Message,
			})
		} else {
			result.Errors = append(result.Errors, e)
		}
	}
	result.Warnings = append(result.Warnings, validateGeometry(d)...)
	return result
}

// validateNames checks that names are unique and that every NameIndex
// entry resolves to an entity carrying that name.
func validateNames(d *Drawing) []ValidationError {
	var errs []ValidationError

	seen := make(map[string]EntityID)
	for _, e := range d.Entities {
		if e.Name == "" {
			continue
		}
		if first, ok := seen[e.Name]; ok {
			errs = append(errs, ValidationError{
				EntityID: e.ID,
				Message:  fmt.Sprintf("name %q already used by entity %s", e.Name, first.Short()),
				Severity: SeverityError,
			})
			continue
		}
		seen[e.Name] = e.ID
	}

	for name, id := range d.NameIndex {
		e := d.Get(id)
		if e == nil {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("name %q references missing entity %s", name, id.Short()),
				Severity: SeverityError,
			})
			continue
		}
		if e.Name != name {
			errs = append(errs, ValidationError{
				EntityID: id,
				Message:  fmt.Sprintf("name index entry %q points at entity named %q", name, e.Name),
				Severity: SeverityError,
			})
		}
	}

	return errs
}

// validateShapes checks that every entity carries a shape.
func validateShapes(d *Drawing) []ValidationError {
	var errs []ValidationError
	for _, e := range d.Entities {
		if e.Shape == nil {
			errs = append(errs, ValidationError{
				EntityID: e.ID,
				Message:  "entity has no shape",
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateFinite rejects NaN and infinite coordinates, which would poison
// every box union they take part in.
func validateFinite(d *Drawing) []ValidationError {
	var errs []ValidationError
	for _, e := range d.Entities {
		if e.Shape == nil || shapeFinite(e.Shape) {
			continue
		}
		errs = append(errs, ValidationError{
			EntityID: e.ID,
			Message:  fmt.Sprintf("%s has non-finite coordinates", e.Shape.Kind()),
			Severity: SeverityError,
		})
	}
	return errs
}

// validateRadii rejects negative circle and arc radii.
func validateRadii(d *Drawing) []ValidationError {
	var errs []ValidationError
	for _, e := range d.Entities {
		var r float64
		switch s := e.Shape.(type) {
		case geom.Circle:
			r = s.Radius
		case geom.Arc:
			r = s.Radius
		default:
			continue
		}
		if r < 0 {
			errs = append(errs, ValidationError{
				EntityID: e.ID,
				Message:  fmt.Sprintf("%s radius is %.4f, must not be negative", e.Shape.Kind(), r),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func pointFinite(p vec.Vec2) bool { return finite(p.X, p.Y) }

func shapeFinite(s geom.Shape) bool {
	switch v := s.(type) {
	case geom.Segment:
		return pointFinite(v.Beg) && pointFinite(v.End)
	case geom.Circle:
		return pointFinite(v.Center) && finite(v.Radius)
	case geom.Arc:
		return pointFinite(v.Center) && finite(v.Radius, v.Start, v.Sweep)
	case geom.Polyline:
		for _, p := range v.Points {
			if !pointFinite(p) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

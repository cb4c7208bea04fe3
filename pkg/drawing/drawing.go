// Package drawing holds the flat, ordered collection of named entities that
// the import and construction front ends produce and the viewer consumes.
package drawing

import (
	"github.com/samber/lo"

	"github.com/chazu/draft/pkg/geom"
)

// DefaultLayer is the layer entities land on when none is given. It matches
// the DXF convention of layer "0".
const DefaultLayer = "0"

// DefaultPickTolerance is the default pick radius in drawing units.
const DefaultPickTolerance = 0.5

// Defaults contains drawing-wide default settings.
type Defaults struct {
	Layer         string  `json:"layer"`
	PickTolerance float64 `json:"pick_tolerance"`
}

// Entity is one shape placed in a drawing.
type Entity struct {
	ID    EntityID   `json:"id"`
	Name  string     `json:"name,omitempty"`
	Layer string     `json:"layer"`
	Shape geom.Shape `json:"shape"`
}

// Bounds returns the bounding box of the entity's shape.
func (e *Entity) Bounds() geom.BoundingBox {
	return geom.Bounds(e.Shape)
}

// Drawing is produced once per import or evaluation and then only read.
// Entities keep insertion order.
type Drawing struct {
	Entities  []*Entity           `json:"entities"`
	NameIndex map[string]EntityID `json:"name_index"`
	Layers    []string            `json:"layers"`
	Defaults  Defaults            `json:"defaults"`

	byID map[EntityID]*Entity
}

// New creates an empty Drawing with default settings.
func New() *Drawing {
	return &Drawing{
		NameIndex: make(map[string]EntityID),
		Defaults: Defaults{
			Layer:         DefaultLayer,
			PickTolerance: DefaultPickTolerance,
		},
		byID: make(map[EntityID]*Entity),
	}
}

// Add appends e. An empty layer is replaced by the default layer and a zero
// ID is derived from the entity's content and position. Add does not check
// for duplicate names; the last entity with a name wins the NameIndex slot
// and Validate reports the clash.
func (d *Drawing) Add(e *Entity) {
	if e.Layer == "" {
		e.Layer = d.Defaults.Layer
	}
	if e.ID.IsZero() {
		e.ID = NewEntityID(len(d.Entities), e.Name, e.Layer, e.Shape)
	}
	d.Entities = append(d.Entities, e)
	d.byID[e.ID] = e
	if e.Name != "" {
		d.NameIndex[e.Name] = e.ID
	}
	if !lo.Contains(d.Layers, e.Layer) {
		d.Layers = append(d.Layers, e.Layer)
	}
}

// AddShape wraps s in a new entity, adds it and returns it.
func (d *Drawing) AddShape(name, layer string, s geom.Shape) *Entity {
	e := &Entity{Name: name, Layer: layer, Shape: s}
	d.Add(e)
	return e
}

// Lookup returns the entity with the given user-assigned name, or nil.
func (d *Drawing) Lookup(name string) *Entity {
	id, ok := d.NameIndex[name]
	if !ok {
		return nil
	}
	return d.byID[id]
}

// Get returns the entity with the given ID, or nil.
func (d *Drawing) Get(id EntityID) *Entity {
	return d.byID[id]
}

// Len returns the number of entities.
func (d *Drawing) Len() int {
	return len(d.Entities)
}

// OnLayer returns the entities on layer, in insertion order.
func (d *Drawing) OnLayer(layer string) []*Entity {
	return lo.Filter(d.Entities, func(e *Entity, _ int) bool {
		return e.Layer == layer
	})
}

// LayerNames returns the layers in order of first use.
func (d *Drawing) LayerNames() []string {
	return append([]string(nil), d.Layers...)
}

// Shapes returns the shape of every entity, in insertion order.
func (d *Drawing) Shapes() []geom.Shape {
	return lo.Map(d.Entities, func(e *Entity, _ int) geom.Shape {
		return e.Shape
	})
}

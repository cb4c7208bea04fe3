package drawing

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/chazu/draft/pkg/geom"
)

// entityNamespace seeds the name-based UUIDs of entities.
var entityNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("github.com/chazu/draft/entity"))

// EntityID is a content-addressed identifier for drawing entities.
type EntityID uuid.UUID

// NewEntityID derives an ID from the entity's position in the drawing, its
// name, layer and shape. Rebuilding the same drawing yields the same IDs;
// identical unnamed shapes still get distinct IDs through their position.
func NewEntityID(seq int, name, layer string, s geom.Shape) EntityID {
	key := fmt.Sprintf("%d\x00%s\x00%s\x00%s", seq, layer, name, shapeKey(s))
	return EntityID(uuid.NewSHA1(entityNamespace, []byte(key)))
}

func shapeKey(s geom.Shape) string {
	if s == nil {
		return "nil"
	}
	return fmt.Sprintf("%s%v", s.Kind(), s)
}

// String returns the canonical UUID form.
func (id EntityID) String() string {
	return uuid.UUID(id).String()
}

// Short returns the first 8 hex digits, enough for log lines and reports.
func (id EntityID) Short() string {
	return id.String()[:8]
}

// IsZero reports whether id is unset.
func (id EntityID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

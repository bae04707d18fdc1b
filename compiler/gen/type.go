package gen

// The following types are the records extracted from a diagram. They are
// built once by NewGraph and never mutated afterwards.
type (
	// Entity is a class extracted from an entity shape.
	Entity struct {
		// ID is the cell id, copied verbatim.
		ID string
		// ClassName is the cell value, copied verbatim.
		ClassName string
		// IsAbstract is set for shapes drawn with a dashed border.
		IsAbstract bool
	}

	// Relation is a connector between two entities.
	Relation struct {
		// Source and Target reference entities of the same graph. A nil
		// reference means the endpoint id matched no entity.
		Source *Entity
		Target *Entity
		// SourceID and TargetID are the raw endpoint ids of the connector.
		SourceID string
		TargetID string
		// Kind is fixed when the relation is created.
		Kind RelKind
	}
)

// RelKind is the kind of a relation.
type RelKind uint8

// Relation kinds.
const (
	// Points is a solid directed arrow: the source owns an attribute of the target type.
	Points RelKind = iota
	// Extends is a dashed arrow: the source inherits from the target.
	Extends
)

// String returns the kind name.
func (k RelKind) String() string {
	if k == Extends {
		return "extends"
	}
	return "points"
}

// Resolved reports whether both endpoints of the relation are bound.
// Unresolved relations take no part in model building.
func (r *Relation) Resolved() bool {
	return r.Source != nil && r.Target != nil
}

// from reports whether r is a resolved relation of kind k sourced at e.
func (r *Relation) from(e *Entity, k RelKind) bool {
	return r.Resolved() && r.Kind == k && r.Source == e
}

// to reports whether r is a resolved relation of kind k targeting e.
func (r *Relation) to(e *Entity, k RelKind) bool {
	return r.Resolved() && r.Kind == k && r.Target == e
}

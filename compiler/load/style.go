package load

import "strings"

// Style is the raw style attribute of a cell: a semicolon-delimited bag of
// key=value pairs and bare tokens, e.g. "shape=umlEntity;dashed=1;html=1".
type Style string

// Contains reports whether the raw style text contains fragment.
func (s Style) Contains(fragment string) bool {
	return fragment != "" && strings.Contains(string(s), fragment)
}

// Get returns the value of the token with the given key. Bare tokens
// are reported with an empty value.
func (s Style) Get(key string) (string, bool) {
	for tok := range strings.SplitSeq(string(s), ";") {
		k, v, _ := strings.Cut(strings.TrimSpace(tok), "=")
		if k == key {
			return v, true
		}
	}
	return "", false
}

// Kind is the classification of a diagram cell.
type Kind uint8

// Cell kinds.
const (
	KindIgnored Kind = iota
	KindEntity
	KindRelation
)

func (k Kind) String() string {
	switch k {
	case KindEntity:
		return "entity"
	case KindRelation:
		return "relation"
	default:
		return "ignored"
	}
}

// Conventions are the style fragments that give cells their meaning.
type Conventions struct {
	// Entity marks a class shape.
	Entity string `json:"entity" yaml:"entity"`
	// Relation marks a connector between two shapes.
	Relation string `json:"relation" yaml:"relation"`
	// Abstract marks a class shape drawn with a dashed border.
	Abstract string `json:"abstract" yaml:"abstract"`
	// Extends marks a dashed connector, i.e. an inheritance link.
	Extends string `json:"extends" yaml:"extends"`
}

// DefaultConventions returns the draw.io UML conventions.
func DefaultConventions() Conventions {
	return Conventions{
		Entity:   "shape=umlEntity",
		Relation: "orthogonalEdgeStyle",
		Abstract: "dashed",
		Extends:  "dashed=1",
	}
}

// Merge returns c with every empty marker taken from other.
func (c Conventions) Merge(other Conventions) Conventions {
	if c.Entity == "" {
		c.Entity = other.Entity
	}
	if c.Relation == "" {
		c.Relation = other.Relation
	}
	if c.Abstract == "" {
		c.Abstract = other.Abstract
	}
	if c.Extends == "" {
		c.Extends = other.Extends
	}
	return c
}

// Classify decides what the node represents. Cells without a style are not
// diagram shapes. The entity check runs first, so a cell carrying both
// markers is an entity.
func (c Conventions) Classify(n *Node) Kind {
	switch {
	case !n.HasStyle():
		return KindIgnored
	case n.Style.Contains(c.Entity):
		return KindEntity
	case n.Style.Contains(c.Relation):
		return KindRelation
	default:
		return KindIgnored
	}
}

// IsAbstract reports whether an entity style marks an abstract class.
// Any occurrence of the marker counts, including "dashed=0".
func (c Conventions) IsAbstract(s Style) bool {
	return s.Contains(c.Abstract)
}

// IsExtends reports whether a connector style marks an inheritance link.
func (c Conventions) IsExtends(s Style) bool {
	return s.Contains(c.Extends)
}

package gen

// ClassModel is the flat, render-ready view of one entity. It is the data
// passed to every artifact template.
type ClassModel struct {
	Name           string           `json:"name" yaml:"name" msgpack:"name"`
	LowerCamelName string           `json:"lowerCamelName" yaml:"lowerCamelName" msgpack:"lowerCamelName"`
	TableName      string           `json:"tableName" yaml:"tableName" msgpack:"tableName"`
	IsAbstract     bool             `json:"isAbstract" yaml:"isAbstract" msgpack:"isAbstract"`
	IsBase         bool             `json:"isBase" yaml:"isBase" msgpack:"isBase"`
	ExtendsName    string           `json:"extendsName" yaml:"extendsName" msgpack:"extendsName"`
	Attributes     []AttributeModel `json:"attributes" yaml:"attributes" msgpack:"attributes"`
}

// AttributeModel is an attribute owned through a Points relation.
type AttributeModel struct {
	ClassName      string `json:"className" yaml:"className" msgpack:"className"`
	LowerCamelName string `json:"lowerCamelName" yaml:"lowerCamelName" msgpack:"lowerCamelName"`
	UpperName      string `json:"upperName" yaml:"upperName" msgpack:"upperName"`
}

// HasExtends reports whether the class inherits from another class.
func (m *ClassModel) HasExtends() bool {
	return m.ExtendsName != ""
}

// Models returns one ClassModel per entity, in entity order.
func (g *Graph) Models() []*ClassModel {
	models := make([]*ClassModel, 0, len(g.Entities))
	for _, e := range g.Entities {
		models = append(models, g.Model(e))
	}
	return models
}

// Model builds the ClassModel of e. Relations are scanned in diagram order,
// which makes both ExtendsName and the attribute order deterministic.
func (g *Graph) Model(e *Entity) *ClassModel {
	return &ClassModel{
		Name:           e.ClassName,
		LowerCamelName: LowerFirst(e.ClassName),
		TableName:      TableName(e.ClassName),
		IsAbstract:     e.IsAbstract,
		IsBase:         g.IsBase(e),
		ExtendsName:    g.ExtendsName(e),
		Attributes:     g.Attributes(e),
	}
}

// IsBase reports whether any Extends relation targets e.
func (g *Graph) IsBase(e *Entity) bool {
	for _, r := range g.Relations {
		if r.to(e, Extends) {
			return true
		}
	}
	return false
}

// ExtendsName returns the class name of the target of the first Extends
// relation sourced at e, or "" if there is none or its target is unresolved.
// Diagrams with multiple inheritance resolve to whichever link comes first.
func (g *Graph) ExtendsName(e *Entity) string {
	for _, r := range g.Relations {
		if r.Kind != Extends || r.Source != e {
			continue
		}
		if r.Target == nil {
			return ""
		}
		return r.Target.ClassName
	}
	return ""
}

// Attributes returns the targets of all Points relations sourced at e.
func (g *Graph) Attributes(e *Entity) []AttributeModel {
	attrs := make([]AttributeModel, 0)
	for _, r := range g.Relations {
		if !r.from(e, Points) {
			continue
		}
		name := r.Target.ClassName
		attrs = append(attrs, AttributeModel{
			ClassName:      name,
			LowerCamelName: LowerFirst(name),
			UpperName:      UpperName(name),
		})
	}
	return attrs
}

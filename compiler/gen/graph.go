package gen

import (
	"log/slog"

	"github.com/syssam/umlgen/compiler/load"
)

// Graph holds the entities and relations of one diagram.
type Graph struct {
	*Config
	// Entities in diagram order.
	Entities []*Entity
	// Relations in diagram order, including unresolved ones.
	Relations []*Relation
	// index of entities by cell id. On duplicate ids the first entity wins.
	index map[string]*Entity
}

// NewGraph builds the graph of a decoded diagram in two passes. All entities
// are extracted first, so that relation endpoints can be resolved against
// the complete entity index regardless of cell order.
func NewGraph(c *Config, d *load.Diagram) (*Graph, error) {
	if c == nil {
		c = &Config{}
	}
	g := &Graph{
		Config: c,
		index:  make(map[string]*Entity),
	}
	conv := c.conventions()
	log := c.logger()
	if err := g.extractEntities(conv, d.Nodes); err != nil {
		return nil, err
	}
	g.resolveRelations(conv, log, d.Nodes)
	log.Debug("diagram graph built",
		slog.String("diagram", d.Path),
		slog.Int("entities", len(g.Entities)),
		slog.Int("relations", len(g.Relations)),
	)
	return g, nil
}

func (g *Graph) extractEntities(conv load.Conventions, nodes []*load.Node) error {
	for _, n := range nodes {
		if conv.Classify(n) != load.KindEntity {
			continue
		}
		switch {
		case !n.HasID():
			return NewEntityError("", n.Pos(), "id", "entity shape has no id")
		case !n.HasValue():
			return NewEntityError(n.ID, n.Pos(), "value", "entity shape has no class name")
		}
		e := &Entity{
			ID:         n.ID,
			ClassName:  n.Value,
			IsAbstract: conv.IsAbstract(n.Style),
		}
		if prev, ok := g.index[e.ID]; ok {
			if g.StrictIDs {
				return NewEntityError(e.ID, n.Pos(), "id", "duplicate id, already used by "+prev.ClassName)
			}
		} else {
			g.index[e.ID] = e
		}
		g.Entities = append(g.Entities, e)
	}
	return nil
}

func (g *Graph) resolveRelations(conv load.Conventions, log *slog.Logger, nodes []*load.Node) {
	for _, n := range nodes {
		if conv.Classify(n) != load.KindRelation {
			continue
		}
		r := &Relation{
			Source:   g.lookup(n.Source, n.HasSource()),
			Target:   g.lookup(n.Target, n.HasTarget()),
			SourceID: n.Source,
			TargetID: n.Target,
			Kind:     Points,
		}
		if conv.IsExtends(n.Style) {
			r.Kind = Extends
		}
		if !r.Resolved() {
			log.Debug("relation endpoint unresolved",
				slog.String("cell", n.ID),
				slog.String("source", n.Source),
				slog.String("target", n.Target),
				slog.String("kind", r.Kind.String()),
			)
		}
		g.Relations = append(g.Relations, r)
	}
}

// lookup resolves an endpoint. Connectors left dangling in the editor have
// no source or target attribute at all.
func (g *Graph) lookup(id string, present bool) *Entity {
	if !present {
		return nil
	}
	return g.index[id]
}

// Entity returns the entity with the given cell id.
func (g *Graph) Entity(id string) (*Entity, bool) {
	e, ok := g.index[id]
	return e, ok
}

// Unresolved returns the relations with at least one unbound endpoint.
func (g *Graph) Unresolved() []*Relation {
	var rs []*Relation
	for _, r := range g.Relations {
		if !r.Resolved() {
			rs = append(rs, r)
		}
	}
	return rs
}

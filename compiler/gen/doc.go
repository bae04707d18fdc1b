// Package gen builds class models from decoded UML diagrams and renders them
// into source files.
//
// # Architecture
//
// The generation pipeline follows this flow:
//
//	Diagram (load.Diagram, cells in document order)
//	        ↓
//	   NewGraph pass 1: entity shapes → Entity, indexed by cell id
//	        ↓
//	   NewGraph pass 2: connectors → Relation, endpoints looked up in the index
//	        ↓
//	   Graph.Models (one ClassModel per Entity)
//	        ↓
//	   TemplateWriter (artifact templates × models) → Emitter
//
// # Key Types
//
//   - Graph: Entities and Relations of one diagram
//   - Entity: A class shape with its name and abstract flag
//   - Relation: A Points (attribute) or Extends (inheritance) link
//   - ClassModel: The flat, render-ready view of an Entity
//   - Artifact: One kind of generated file (class, DAO, DAO implementation)
//   - Config: Global configuration for code generation
//
// # Error Handling
//
// The package uses structured error types:
//
//   - EntityError: An entity shape without id or value, or a duplicate id in strict mode
//   - ConfigError: Configuration errors
//   - TemplateError: Missing, unreadable or invalid templates
//   - GenerationError: Rendering, formatting or write failures
//
// Relations whose endpoints match no entity are not errors. They are kept in
// Graph.Relations, reported by Graph.Unresolved, and ignored by the models.
//
// Example error handling:
//
//	graph, err := gen.NewGraph(config, diagram)
//	if err != nil {
//	    if gen.IsEntityError(err) {
//	        // The diagram has a broken class shape.
//	    }
//	    return err
//	}
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	config, err := gen.NewConfig(
//	    gen.WithTarget("./output"),
//	    gen.WithTemplatesDir("./templates"),
//	    gen.WithGoPackage("model"),	// Also emit Go structs
//	)
//
// # Generated Output
//
// With the default artifacts the generator produces:
//
//	{output}/
//	├── {Name}.java
//	├── dao/
//	│   ├── {Name}Dao.java
//	│   └── impl/
//	│       └── {Name}DaoImpl.java
//	└── go/                 // only with WithGoPackage
//	    └── {name}.go
package gen

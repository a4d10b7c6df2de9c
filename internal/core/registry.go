package core

import (
	"context"
	"fmt"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"cody-schema/internal/shared"
	"cody-schema/internal/types"
)

// DefinitionsRegistry is the namespaced store of named schema fragments
// used during one generation session. It mutates the SchemaDefinitions
// document it wraps; persisting that document is up to the caller.
type DefinitionsRegistry struct {
	defs *types.SchemaDefinitions
}

// NewDefinitionsRegistry wraps defs. A nil document starts empty.
func NewDefinitionsRegistry(defs *types.SchemaDefinitions) *DefinitionsRegistry {
	if defs == nil {
		defs = types.NewSchemaDefinitions()
	}
	if defs.SourceMap == nil {
		defs.SourceMap = map[string]string{}
	}
	if defs.Definitions == nil {
		defs.Definitions = map[string]*types.DefinitionNode{}
	}
	return &DefinitionsRegistry{defs: defs}
}

// Definitions returns the wrapped document for persistence.
func (r *DefinitionsRegistry) Definitions() *types.SchemaDefinitions {
	return r.defs
}

// Upsert registers schema under name. Registering a name again from the
// same origin overwrites it; registering it from a different origin is a
// ConflictingDefinition and leaves the registry untouched.
func (r *DefinitionsRegistry) Upsert(ctx context.Context, name string, origin string, schema types.Fragment) error {
	segments := shared.PathSegments(strings.TrimSpace(name))
	if len(segments) == 0 {
		return types.NewSchemaError(
			types.KindMalformedShorthand,
			"schema definition name must not be empty",
			fmt.Sprintf("origin: %s", origin),
		)
	}
	if schema == nil {
		return types.NewSchemaError(
			types.KindMalformedShorthand,
			fmt.Sprintf("schema definition %q has no schema", name),
			fmt.Sprintf("origin: %s", origin),
		)
	}
	absolute := shared.AbsoluteName(name)
	assert.NotEmpty(ctx, absolute, "definition name must be absolute")

	if existing, ok := r.defs.SourceMap[absolute]; ok && existing != origin {
		return types.NewSchemaError(
			types.KindConflictingDefinition,
			"I found a duplicate schema definition!",
			fmt.Sprintf(
				"Schema name %s is already registered in schema-definitions.json with a different source: %s, but you want me to add it with source: %s. Only one source is possible, to avoid schema conflicts. You have to resolve it first, sorry",
				absolute, existing, origin,
			),
		)
	}

	parent, err := r.container(segments, absolute)
	if err != nil {
		return err
	}
	last := segments[len(segments)-1]
	if current, ok := parent[last]; ok && !current.IsLeaf() && len(current.Children) > 0 {
		return types.NewSchemaError(
			types.KindConflictingDefinition,
			fmt.Sprintf("schema name %s is already used as a namespace", absolute),
			fmt.Sprintf("it contains %d nested definitions; choose another name", len(current.Children)),
		)
	}

	r.defs.SourceMap[absolute] = origin
	parent[last] = types.NewDefinitionLeaf(schema.Clone())

	log.Ctx(ctx).Debug().
		Str("definition", absolute).
		Str("origin", origin).
		Str("kind", string(schema.Kind())).
		Msg("schema definition upserted")
	return nil
}

// container walks to the parent namespace of the last segment, creating
// missing containers. Nothing is created when the walk hits a leaf.
func (r *DefinitionsRegistry) container(segments []string, absolute string) (map[string]*types.DefinitionNode, error) {
	current := r.defs.Definitions
	for _, segment := range segments[:len(segments)-1] {
		node, ok := current[segment]
		if ok && node.IsLeaf() {
			return nil, types.NewSchemaError(
				types.KindConflictingDefinition,
				fmt.Sprintf("cannot register %s: namespace segment %q is already a schema definition", absolute, segment),
				"a definition cannot contain other definitions",
			)
		}
		if !ok {
			break
		}
		current = node.Children
	}

	current = r.defs.Definitions
	for _, segment := range segments[:len(segments)-1] {
		node, ok := current[segment]
		if !ok {
			node = types.NewDefinitionContainer()
			current[segment] = node
		}
		if node.Children == nil {
			node.Children = map[string]*types.DefinitionNode{}
		}
		current = node.Children
	}
	return current, nil
}

// Origin returns the origin recorded for an absolute definition name.
func (r *DefinitionsRegistry) Origin(name string) (string, bool) {
	origin, ok := r.defs.SourceMap[shared.AbsoluteName(name)]
	return origin, ok
}

// Contains reports whether every segment of path exists in the
// definitions tree. Namespace containers count.
func (r *DefinitionsRegistry) Contains(path string) bool {
	_, ok := r.lookup(path)
	return ok
}

// Get returns a deep copy of the schema at path. Containers and missing
// paths yield false.
func (r *DefinitionsRegistry) Get(path string) (types.Fragment, bool) {
	node, ok := r.lookup(path)
	if !ok || !node.IsLeaf() {
		return nil, false
	}
	return node.Schema.Clone(), true
}

// IsArrayType reports whether the definition at path is an array schema.
// References are not followed.
func (r *DefinitionsRegistry) IsArrayType(path string) bool {
	schema, ok := r.Get(path)
	if !ok {
		return false
	}
	return schema.Kind() == types.FragmentKindArray
}

func (r *DefinitionsRegistry) lookup(path string) (*types.DefinitionNode, bool) {
	segments := shared.PathSegments(path)
	if len(segments) == 0 {
		return nil, false
	}
	var node *types.DefinitionNode
	current := r.defs.Definitions
	for _, segment := range segments {
		if current == nil {
			return nil, false
		}
		next, ok := current[segment]
		if !ok || next == nil {
			return nil, false
		}
		node = next
		current = next.Children
	}
	return node, true
}

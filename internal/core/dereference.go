package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/go-openapi/jsonpointer"
	"github.com/rs/zerolog/log"

	"cody-schema/internal/ports"
	"cody-schema/internal/types"
)

const localDocument = ""

// Dereferencer inlines $ref pointers into a closed schema. Registry
// definitions are tried first; anything else is resolved as a JSON pointer
// into the schema itself (with the registry tree attached as its
// definitions) or into an external document fetched through Loader.
type Dereferencer struct {
	Registry *DefinitionsRegistry
	Loader   ports.ReferenceLoaderPort
}

// NewDereferencer returns a Dereferencer over registry. loader may be nil,
// in which case external references are unresolved.
func NewDereferencer(registry *DefinitionsRegistry, loader ports.ReferenceLoaderPort) Dereferencer {
	if registry == nil {
		registry = NewDefinitionsRegistry(nil)
	}
	return Dereferencer{Registry: registry, Loader: loader}
}

// Dereference returns a copy of schema with every reference replaced by
// the schema it points to. Sibling keywords of a reference override the
// target's own. The input is never modified.
func (d Dereferencer) Dereference(ctx context.Context, schema types.Fragment) (types.Fragment, error) {
	if schema == nil {
		return nil, types.NewSchemaError(types.KindMalformedShorthand, "cannot dereference an empty schema", "")
	}
	w := &derefWalk{
		ctx:       ctx,
		d:         d,
		root:      schema,
		resolving: map[string]struct{}{},
		documents: map[string]any{},
	}
	out, err := w.walk(schema, localDocument)
	if err != nil {
		return nil, err
	}
	log.Ctx(ctx).Debug().
		Int("references", w.resolved).
		Str("kind", string(out.Kind())).
		Msg("schema dereferenced")
	return out, nil
}

// IsStateType reports whether the definition at path dereferences to an
// object schema. Missing definitions are not state types.
func (d Dereferencer) IsStateType(ctx context.Context, path string) (bool, error) {
	schema, ok := d.Registry.Get(path)
	if !ok {
		return false, nil
	}
	resolved, err := d.Dereference(ctx, schema)
	if err != nil {
		return false, err
	}
	return resolved.Kind() == types.FragmentKindObject, nil
}

type derefWalk struct {
	ctx       context.Context
	d         Dereferencer
	root      types.Fragment
	resolving map[string]struct{}
	documents map[string]any
	resolved  int
}

// walk dereferences f, which belongs to the document doc. Local pointers
// inside f resolve against doc.
func (w *derefWalk) walk(f types.Fragment, doc string) (types.Fragment, error) {
	switch v := f.(type) {
	case *types.Reference:
		return w.reference(v, doc)
	case *types.Object:
		out := &types.Object{
			Annotations:          v.Annotations,
			Required:             v.Required,
			AdditionalProperties: v.AdditionalProperties,
		}
		out = out.Clone().(*types.Object)
		if v.Properties != nil {
			out.Properties = make([]types.Property, 0, len(v.Properties))
		}
		for _, prop := range v.Properties {
			propSchema, err := w.walk(prop.Schema, doc)
			if err != nil {
				return nil, err
			}
			out.Properties = append(out.Properties, types.Property{Name: prop.Name, Schema: propSchema})
		}
		return out, nil
	case *types.Array:
		out := &types.Array{Annotations: v.Annotations}
		out = out.Clone().(*types.Array)
		if v.Items != nil {
			items, err := w.walk(v.Items, doc)
			if err != nil {
				return nil, err
			}
			out.Items = items
		}
		return out, nil
	default:
		return f.Clone(), nil
	}
}

func (w *derefWalk) reference(ref *types.Reference, doc string) (types.Fragment, error) {
	location, pointer := splitReference(ref.Pointer)
	if location == localDocument {
		location = doc
	}
	key := location + "#" + pointer
	if _, busy := w.resolving[key]; busy {
		return nil, types.NewSchemaError(
			types.KindCyclicReference,
			fmt.Sprintf("schema reference %q refers back to itself", ref.Pointer),
			"the reference is already being resolved; break the cycle between the definitions involved",
		)
	}
	w.resolving[key] = struct{}{}
	defer delete(w.resolving, key)

	target, scope, err := w.target(ref, location, pointer)
	if err != nil {
		return nil, err
	}
	resolved, err := w.walk(target, scope)
	if err != nil {
		return nil, err
	}
	w.resolved++
	return overlay(resolved, ref), nil
}

// target locates the schema a reference points at and the document its
// own local pointers belong to.
func (w *derefWalk) target(ref *types.Reference, location string, pointer string) (types.Fragment, string, error) {
	if location == localDocument {
		if path, ok := ref.DefinitionPath(); ok && w.d.Registry.Contains(path) {
			if schema, ok := w.d.Registry.Get(path); ok {
				return schema, localDocument, nil
			}
		}
	}

	document, err := w.document(location, ref.Pointer)
	if err != nil {
		return nil, "", err
	}
	p, err := jsonpointer.New(pointer)
	if err != nil {
		return nil, "", unresolved(ref.Pointer, err.Error())
	}
	value, _, err := p.Get(document)
	if err != nil {
		return nil, "", unresolved(ref.Pointer, err.Error())
	}
	schema, err := decodeGeneric(value)
	if err != nil {
		return nil, "", unresolved(ref.Pointer, "the pointer does not point at a schema: "+describeError(err))
	}
	return schema, location, nil
}

// document returns the generic JSON tree of a document. The local document
// is the schema being dereferenced with the registry tree attached as its
// definitions keyword.
func (w *derefWalk) document(location string, pointer string) (any, error) {
	if cached, ok := w.documents[location]; ok {
		return cached, nil
	}

	var document any
	if location == localDocument {
		root, err := toGeneric(w.root)
		if err != nil {
			return nil, types.WrapSchemaError(types.KindIO, errbuilder.CodeInternal, "cannot prepare schema for pointer resolution", err)
		}
		definitions, err := toGeneric(w.d.Registry.Definitions().Definitions)
		if err != nil {
			return nil, types.WrapSchemaError(types.KindIO, errbuilder.CodeInternal, "cannot prepare schema definitions for pointer resolution", err)
		}
		if object, ok := root.(map[string]any); ok {
			object["definitions"] = definitions
		}
		document = root
	} else {
		if w.d.Loader == nil {
			return nil, unresolved(pointer, fmt.Sprintf("external document %q cannot be loaded here", location))
		}
		loaded, err := w.d.Loader.LoadReference(w.ctx, location)
		if err != nil {
			var schemaErr *types.SchemaError
			if errors.As(err, &schemaErr) {
				return nil, err
			}
			return nil, types.WrapSchemaError(
				types.KindIO,
				errbuilder.CodeInternal,
				fmt.Sprintf("failed to load referenced document %q", location),
				err,
			)
		}
		log.Ctx(w.ctx).Debug().Str("document", location).Msg("external reference document loaded")
		document = loaded
	}
	w.documents[location] = document
	return document, nil
}

// overlay applies the sibling keywords of ref on top of the resolved
// target. target is owned by the caller.
func overlay(target types.Fragment, ref *types.Reference) types.Fragment {
	meta := target.Meta()
	if ref.Title != "" {
		meta.Title = ref.Title
	}
	for key, value := range ref.Keywords {
		meta.Set(key, value)
	}
	return target
}

// splitReference separates "file.json#/a/b" into its document and JSON
// pointer parts. A pointer without "#" addresses a whole document.
func splitReference(ref string) (string, string) {
	idx := strings.Index(ref, "#")
	if idx < 0 {
		return ref, ""
	}
	return ref[:idx], ref[idx+1:]
}

func unresolved(pointer string, details string) error {
	return types.NewSchemaError(
		types.KindUnresolvedReference,
		fmt.Sprintf("schema reference %q could not be resolved", pointer),
		details,
	)
}

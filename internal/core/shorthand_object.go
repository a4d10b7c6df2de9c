package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"cody-schema/internal/shared"
	"cody-schema/internal/types"
)

const (
	refKey      = "$ref"
	itemsKey    = "$items"
	titleKey    = "$title"
	optionalTag = "?"
)

// Compile dispatches on the shape of value: strings go through
// CompileString, objects through CompileObject. Anything else is
// malformed.
func (c ShorthandCompiler) Compile(ctx context.Context, value types.ShorthandValue, namespace string) (types.Fragment, error) {
	var (
		schema types.Fragment
		err    error
	)
	switch v := value.(type) {
	case types.ShorthandString:
		schema, err = c.CompileString(string(v), namespace)
	default:
		schema, err = c.CompileObject(value, namespace)
	}
	if err != nil {
		return nil, err
	}
	log.Ctx(ctx).Debug().
		Str("namespace", shared.NormalizeNamespace(namespace)).
		Str("kind", string(schema.Kind())).
		Msg("shorthand compiled")
	return schema, nil
}

// CompileObject compiles a nested shorthand object into an object schema.
// The reserved keys $ref and $items turn the whole object into a reference
// or an array; $title sets the schema title. Keys ending in "?" are
// optional, every other key is required.
func (c ShorthandCompiler) CompileObject(value types.ShorthandValue, namespace string) (types.Fragment, error) {
	shorthand, ok := value.(*types.ShorthandObject)
	if !ok || shorthand == nil {
		return nil, types.NewSchemaError(
			types.KindMalformedShorthand,
			fmt.Sprintf("I was not able to convert shorthand object %s to JSON schema", describeShorthand(value)),
			"expected an object of property shorthands",
		)
	}
	ns := shared.NormalizeNamespace(namespace)

	if shorthand.Has(refKey) {
		return compileTopLevelRef(shorthand, ns)
	}
	if shorthand.Has(itemsKey) {
		return c.compileTopLevelItems(shorthand, ns)
	}

	schema := &types.Object{
		Properties:           []types.Property{},
		Required:             []string{},
		AdditionalProperties: false,
	}

	for _, field := range shorthand.Fields {
		if field.Key == "" {
			return nil, types.NewSchemaError(
				types.KindMalformedShorthand,
				fmt.Sprintf("shorthand object %s contains an empty property name", describeShorthand(shorthand)),
				"please remove it",
			)
		}
		if field.Key == titleKey {
			title, ok := field.Value.(types.ShorthandString)
			if !ok {
				return nil, malformedProperty(titleKey, field.Value, "the title must be a string")
			}
			schema.Title = string(title)
			continue
		}

		name := field.Key
		required := true
		if strings.HasSuffix(name, optionalTag) {
			name = strings.TrimSuffix(name, optionalTag)
			required = false
			if name == "" {
				return nil, types.NewSchemaError(
					types.KindMalformedShorthand,
					fmt.Sprintf("shorthand object %s contains an optional marker without a property name", describeShorthand(shorthand)),
					`write the property name before "?"`,
				)
			}
		}

		var (
			propSchema types.Fragment
			err        error
		)
		switch v := field.Value.(type) {
		case *types.ShorthandObject:
			propSchema, err = c.CompileObject(v, ns)
		case types.ShorthandString:
			propSchema, err = c.CompileString(string(v), ns)
		default:
			return nil, malformedProperty(field.Key, field.Value, "it is neither a string nor an object")
		}
		if err != nil {
			return nil, err
		}

		schema.SetProperty(name, propSchema)
		if required && !containsString(schema.Required, name) {
			schema.Required = append(schema.Required, name)
		}
	}

	return schema, nil
}

func compileTopLevelRef(shorthand *types.ShorthandObject, ns string) (types.Fragment, error) {
	if len(shorthand.Fields) > 1 {
		return nil, types.NewSchemaError(
			types.KindMalformedShorthand,
			fmt.Sprintf("shorthand %s contains a top level ref property %q, but it is not the only property", describeShorthand(shorthand), refKey),
			fmt.Sprintf("a top level reference cannot have other properties than %q", refKey),
		)
	}
	value, _ := shorthand.Get(refKey)
	ref, ok := value.(types.ShorthandString)
	if !ok {
		return nil, malformedProperty(refKey, value, "the reference must be a string")
	}
	reference := strings.TrimPrefix(string(ref), definitionsPtr)
	return &types.Reference{Pointer: referencePointer(reference, ns)}, nil
}

func (c ShorthandCompiler) compileTopLevelItems(shorthand *types.ShorthandObject, ns string) (types.Fragment, error) {
	for _, key := range shorthand.Keys() {
		if key != itemsKey && key != titleKey {
			return nil, types.NewSchemaError(
				types.KindMalformedShorthand,
				fmt.Sprintf("shorthand %s contains a top level array property %q, but it is not the only property", describeShorthand(shorthand), itemsKey),
				fmt.Sprintf("a top level array cannot have other properties than %q and %q", itemsKey, titleKey),
			)
		}
	}
	value, _ := shorthand.Get(itemsKey)
	items, ok := value.(types.ShorthandString)
	if !ok {
		return nil, types.NewSchemaError(
			types.KindMalformedShorthand,
			fmt.Sprintf("detected a top level shorthand array using an %q prop, but the value of the property is not a string", itemsKey),
			"it is of type "+shorthandTypeName(value),
		)
	}

	itemsShorthand := string(items)
	if !strings.HasSuffix(itemsShorthand, arraySuffix) {
		itemsShorthand += arraySuffix
	}
	schema, err := c.CompileString(itemsShorthand, ns)
	if err != nil {
		return nil, err
	}

	if titleValue, ok := shorthand.Get(titleKey); ok {
		title, ok := titleValue.(types.ShorthandString)
		if !ok {
			return nil, malformedProperty(titleKey, titleValue, "the title must be a string")
		}
		schema.Meta().Title = string(title)
	}
	return schema, nil
}

func malformedProperty(property string, value types.ShorthandValue, reason string) error {
	return types.NewSchemaError(
		types.KindMalformedShorthand,
		fmt.Sprintf("I tried to parse JSON schema for property %q, but %s", property, reason),
		"got "+shorthandTypeName(value)+" "+describeShorthand(value),
	)
}

func shorthandTypeName(value types.ShorthandValue) string {
	switch v := value.(type) {
	case types.ShorthandString:
		return "string"
	case *types.ShorthandObject:
		return "object"
	case types.ShorthandLiteral:
		return v.Type
	default:
		return "nothing"
	}
}

// describeShorthand renders shorthand input compactly for error messages.
func describeShorthand(value types.ShorthandValue) string {
	switch v := value.(type) {
	case types.ShorthandString:
		return fmt.Sprintf("%q", string(v))
	case *types.ShorthandObject:
		if v == nil {
			return "null"
		}
		parts := make([]string, 0, len(v.Fields))
		for _, field := range v.Fields {
			parts = append(parts, fmt.Sprintf("%q: %s", field.Key, describeShorthand(field.Value)))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case types.ShorthandLiteral:
		return v.Text
	default:
		return "null"
	}
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

package core

import (
	"fmt"
	"strings"

	"cody-schema/internal/shared"
	"cody-schema/internal/types"
)

const (
	enumPrefix     = "enum:"
	arraySuffix    = "[]"
	nullDirective  = "null"
	directiveSep   = "|"
	titleDirective = "title"
	definitionsPtr = "#/definitions"
)

// structuralKeywords cannot be set through a validation directive because
// the compiler owns them.
var structuralKeywords = map[string]struct{}{
	"type":                 {},
	"properties":           {},
	"required":             {},
	"items":                {},
	"enum":                 {},
	"$ref":                 {},
	"additionalProperties": {},
	"definitions":          {},
}

// ShorthandCompiler turns shorthand strings and objects into schema
// fragments. It holds no state; the zero value is ready to use.
type ShorthandCompiler struct{}

func NewShorthandCompiler() ShorthandCompiler {
	return ShorthandCompiler{}
}

// CompileString compiles one shorthand string such as
// "string|format:email|maxLength:255" under namespace.
func (c ShorthandCompiler) CompileString(value string, namespace string) (types.Fragment, error) {
	if value == "" {
		return &types.Primitive{Type: types.PrimitiveString}, nil
	}
	ns := shared.NormalizeNamespace(namespace)

	parts := strings.Split(value, directiveSep)
	base, directives := parts[0], parts[1:]

	switch {
	case strings.HasPrefix(base, enumPrefix):
		return compileEnum(base, directives)
	case strings.HasSuffix(base, arraySuffix):
		itemParts := append([]string{strings.TrimSuffix(base, arraySuffix)}, directives...)
		items, err := c.CompileString(strings.Join(itemParts, directiveSep), ns)
		if err != nil {
			return nil, err
		}
		return &types.Array{Items: items}, nil
	case base == "" || types.IsPrimitiveType(base):
		return compilePrimitive(base, directives)
	default:
		return compileReference(base, directives, ns)
	}
}

func compileEnum(base string, directives []string) (types.Fragment, error) {
	raw := strings.Split(strings.TrimPrefix(base, enumPrefix), ",")
	values := make([]string, 0, len(raw))
	for _, val := range raw {
		values = append(values, strings.TrimSpace(val))
	}
	schema := &types.Enum{Values: values}
	if err := applyDirectives(&schema.Annotations, directives); err != nil {
		return nil, err
	}
	return schema, nil
}

func compilePrimitive(base string, directives []string) (types.Fragment, error) {
	if base == "" {
		base = string(types.PrimitiveString)
	}
	schema := &types.Primitive{Type: types.PrimitiveType(base)}

	remaining := directives[:0:0]
	for _, directive := range directives {
		if directive == nullDirective {
			schema.Nullable = true
			continue
		}
		remaining = append(remaining, directive)
	}
	if err := applyDirectives(&schema.Annotations, remaining); err != nil {
		return nil, err
	}
	return schema, nil
}

func compileReference(ref string, directives []string, ns string) (types.Fragment, error) {
	schema := &types.Reference{}
	override := ""
	for _, directive := range directives {
		key, value, err := ParseDirective(directive)
		if err != nil {
			return nil, err
		}
		if key == NamespaceKeyword {
			override = value.String()
			continue
		}
		if err := applyDirective(&schema.Annotations, key, value); err != nil {
			return nil, err
		}
	}

	if override != "" && !shared.IsRootNamespace(ref) {
		ref = strings.TrimSuffix(override, "/") + "/" + ref
	}
	schema.Pointer = referencePointer(ref, ns)
	return schema, nil
}

// referencePointer resolves ref against ns: root-anchored refs are used as
// they are, anything else is prefixed with the namespace.
func referencePointer(ref string, ns string) string {
	if shared.IsRootNamespace(ref) {
		return definitionsPtr + ref
	}
	return definitionsPtr + ns + ref
}

func applyDirectives(meta *types.Annotations, directives []string) error {
	for _, directive := range directives {
		key, value, err := ParseDirective(directive)
		if err != nil {
			return err
		}
		if err := applyDirective(meta, key, value); err != nil {
			return err
		}
	}
	return nil
}

func applyDirective(meta *types.Annotations, key string, value types.Value) error {
	if key == titleDirective {
		meta.Title = value.String()
		return nil
	}
	if _, reserved := structuralKeywords[key]; reserved {
		return types.NewSchemaError(
			types.KindMalformedDirective,
			fmt.Sprintf("shorthand validation %q overrides the structural keyword %q", key+":"+value.String(), key),
			"structural keywords are derived from the shorthand itself",
		)
	}
	meta.Set(key, value)
	return nil
}

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cody-schema/internal/types"
)

type shorthandString = types.ShorthandString

func obj(fields ...types.ShorthandField) *types.ShorthandObject {
	return types.NewShorthandObject(fields...)
}

var field = types.Field

func TestCompileObject(t *testing.T) {
	compiler := NewShorthandCompiler()

	tests := []struct {
		name      string
		shorthand *types.ShorthandObject
		namespace string
		want      string
	}{
		{
			name: "required and optional properties",
			shorthand: obj(
				field("userId", shorthandString("string|format:uuid")),
				field("nickname?", shorthandString("string")),
				field("age", shorthandString("integer|minimum:0")),
			),
			want: `{
				"type": "object",
				"properties": {
					"userId": {"type": "string", "format": "uuid"},
					"nickname": {"type": "string"},
					"age": {"type": "integer", "minimum": 0}
				},
				"required": ["userId", "age"],
				"additionalProperties": false
			}`,
		},
		{
			name:      "empty object",
			shorthand: obj(),
			want:      `{"type":"object","properties":{},"required":[],"additionalProperties":false}`,
		},
		{
			name: "nested object and title",
			shorthand: obj(
				field("$title", shorthandString("User")),
				field("address", obj(field("street", shorthandString("string")), field("zip?", shorthandString("string")))),
			),
			want: `{
				"type": "object",
				"title": "User",
				"properties": {
					"address": {
						"type": "object",
						"properties": {"street": {"type": "string"}, "zip": {"type": "string"}},
						"required": ["street"],
						"additionalProperties": false
					}
				},
				"required": ["address"],
				"additionalProperties": false
			}`,
		},
		{
			name:      "references resolve against namespace",
			shorthand: obj(field("address", shorthandString("Address")), field("tags?", shorthandString("/Common/Tag[]"))),
			namespace: "/Model/",
			want: `{
				"type": "object",
				"properties": {
					"address": {"$ref": "#/definitions/Model/Address"},
					"tags": {"type": "array", "items": {"$ref": "#/definitions/Common/Tag"}}
				},
				"required": ["address"],
				"additionalProperties": false
			}`,
		},
		{
			name:      "top level ref",
			shorthand: obj(field("$ref", shorthandString("Profile"))),
			namespace: "/Model",
			want:      `{"$ref":"#/definitions/Model/Profile"}`,
		},
		{
			name:      "top level root ref",
			shorthand: obj(field("$ref", shorthandString("/Profile"))),
			namespace: "/Model",
			want:      `{"$ref":"#/definitions/Profile"}`,
		},
		{
			name:      "top level expanded ref",
			shorthand: obj(field("$ref", shorthandString("#/definitions/Profile"))),
			want:      `{"$ref":"#/definitions/Profile"}`,
		},
		{
			name:      "top level items",
			shorthand: obj(field("$items", shorthandString("Profile"))),
			want:      `{"type":"array","items":{"$ref":"#/definitions/Profile"}}`,
		},
		{
			name:      "top level items with suffix and title",
			shorthand: obj(field("$items", shorthandString("string[]")), field("$title", shorthandString("Tags"))),
			want:      `{"type":"array","items":{"type":"string"},"title":"Tags"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, err := compiler.CompileObject(tt.shorthand, tt.namespace)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, schemaJSON(t, schema))
		})
	}
}

func TestCompileObjectKeepsPropertyOrder(t *testing.T) {
	schema, err := NewShorthandCompiler().CompileObject(obj(
		field("zeta", shorthandString("string")),
		field("alpha?", shorthandString("string")),
		field("mid", shorthandString("string")),
	), "/")
	require.NoError(t, err)

	object, ok := schema.(*types.Object)
	require.True(t, ok)
	names := make([]string, 0, len(object.Properties))
	for _, prop := range object.Properties {
		names = append(names, prop.Name)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, names)
	assert.Equal(t, []string{"zeta", "mid"}, object.Required)
	assert.Equal(t, `{"type":"object","properties":{"zeta":{"type":"string"},"alpha":{"type":"string"},"mid":{"type":"string"}},"required":["zeta","mid"],"additionalProperties":false}`, schemaJSON(t, schema))
}

func TestCompileObjectErrors(t *testing.T) {
	compiler := NewShorthandCompiler()

	tests := []struct {
		name      string
		shorthand types.ShorthandValue
		wantKind  types.ErrorKind
	}{
		{name: "not an object", shorthand: shorthandString("string"), wantKind: types.KindMalformedShorthand},
		{name: "literal", shorthand: types.ShorthandLiteral{Type: "number", Text: "42"}, wantKind: types.KindMalformedShorthand},
		{
			name:      "ref with siblings",
			shorthand: obj(field("$ref", shorthandString("Profile")), field("name", shorthandString("string"))),
			wantKind:  types.KindMalformedShorthand,
		},
		{name: "ref not a string", shorthand: obj(field("$ref", obj())), wantKind: types.KindMalformedShorthand},
		{
			name:      "items with siblings",
			shorthand: obj(field("$items", shorthandString("string")), field("name", shorthandString("string"))),
			wantKind:  types.KindMalformedShorthand,
		},
		{name: "items not a string", shorthand: obj(field("$items", obj())), wantKind: types.KindMalformedShorthand},
		{name: "empty key", shorthand: obj(field("", shorthandString("string"))), wantKind: types.KindMalformedShorthand},
		{name: "bare optional marker", shorthand: obj(field("?", shorthandString("string"))), wantKind: types.KindMalformedShorthand},
		{
			name:      "number property",
			shorthand: obj(field("age", types.ShorthandLiteral{Type: "number", Text: "3"})),
			wantKind:  types.KindMalformedShorthand,
		},
		{
			name:      "nested directive error",
			shorthand: obj(field("user", obj(field("name", shorthandString("string|maxLength"))))),
			wantKind:  types.KindMalformedDirective,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compiler.CompileObject(tt.shorthand, "/")
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, types.KindOf(err))
		})
	}
}

func TestCompileDispatch(t *testing.T) {
	compiler := NewShorthandCompiler()

	schema, err := compiler.Compile(t.Context(), shorthandString("string[]"), "/")
	require.NoError(t, err)
	assert.Equal(t, types.FragmentKindArray, schema.Kind())

	schema, err = compiler.Compile(t.Context(), obj(field("name", shorthandString("string"))), "/")
	require.NoError(t, err)
	assert.Equal(t, types.FragmentKindObject, schema.Kind())

	_, err = compiler.Compile(t.Context(), types.ShorthandLiteral{Type: "boolean", Text: "true"}, "/")
	require.Error(t, err)
	assert.Equal(t, types.KindMalformedShorthand, types.KindOf(err))
}

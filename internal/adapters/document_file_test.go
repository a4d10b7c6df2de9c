package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cody-schema/internal/types"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDocumentDiscover(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "boards", "user.yaml"), "schema: string\n")
	writeFile(t, filepath.Join(root, "boards", "model", "state.json"), `{"schema":"string"}`)
	writeFile(t, filepath.Join(root, "boards", "model", "notes.txt"), "ignored")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "boards", "dir.yaml"), 0755))

	adapter := NewDocumentFileAdapter()
	got, err := adapter.Discover(t.Context(), []string{
		filepath.Join(root, "boards", "**", "*"),
		filepath.Join(root, "boards", "*.yaml"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "boards", "model", "state.json"),
		filepath.Join(root, "boards", "user.yaml"),
	}, got)
}

func TestDocumentDiscoverInvalidPattern(t *testing.T) {
	_, err := NewDocumentFileAdapter().Discover(t.Context(), []string{"boards/[unclosed"})
	require.Error(t, err)
}

func TestLoadShorthandDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user-profile.yaml")
	writeFile(t, path, `name: User Profile
ns: /Model
schema:
  userId: string|format:uuid
  nickname?: string
  address:
    street: string
  age: 42
`)
	doc, err := NewDocumentFileAdapter().LoadDocument(t.Context(), path)
	require.NoError(t, err)

	assert.Equal(t, "User Profile", doc.Name)
	assert.Equal(t, "/Model", doc.Namespace)
	assert.True(t, doc.Shorthand)
	assert.Equal(t, path, doc.Origin)

	schema, ok := doc.Schema.(*types.ShorthandObject)
	require.True(t, ok)
	assert.Equal(t, []string{"userId", "nickname?", "address", "age"}, schema.Keys())
	userID, _ := schema.Get("userId")
	assert.Equal(t, types.ShorthandString("string|format:uuid"), userID)
	address, _ := schema.Get("address")
	assert.IsType(t, &types.ShorthandObject{}, address)
	age, _ := schema.Get("age")
	assert.Equal(t, types.ShorthandLiteral{Type: "number", Text: "42"}, age)
}

func TestLoadLiteralDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	writeFile(t, path, `{"namespace":"Shared","shorthand":false,"schema":{"type":"object","properties":{"b":{"type":"string"},"a":{"type":"integer"}}}}`)

	doc, err := NewDocumentFileAdapter().LoadDocument(t.Context(), path)
	require.NoError(t, err)
	assert.Equal(t, "state", doc.Name, "name defaults to the file name")
	assert.Equal(t, "Shared", doc.Namespace)
	assert.False(t, doc.Shorthand)

	object, ok := doc.Literal.(*types.Object)
	require.True(t, ok)
	require.Len(t, object.Properties, 2)
	assert.Equal(t, "b", object.Properties[0].Name)
	assert.Equal(t, "a", object.Properties[1].Name)
}

func TestParseDocumentNamespacePrecedence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "ns wins", input: "ns: /A\nnamespace: /B\nschema: string\n", want: "/A"},
		{name: "namespace", input: "namespace: /B\nschema: string\n", want: "/B"},
		{name: "root default", input: "schema: string\n", want: "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseDocument([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.Namespace)
		})
	}
}

func TestParseDocumentErrors(t *testing.T) {
	inputs := map[string]string{
		"not an object":  "- a\n- b\n",
		"missing schema": "name: User\n",
		"bad shorthand":  "shorthand: maybe\nschema: string\n",
		"bad literal":    "shorthand: false\nschema:\n  type: date\n",
		"invalid yaml":   "schema: [a\n",
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := ParseDocument([]byte(input))
			require.Error(t, err)
			assert.Equal(t, types.KindMalformedShorthand, types.KindOf(err))
		})
	}
}

func TestLoadDocumentMissingFile(t *testing.T) {
	_, err := NewDocumentFileAdapter().LoadDocument(t.Context(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, types.KindIO, types.KindOf(err))
}

func TestParseShorthand(t *testing.T) {
	adapter := NewDocumentFileAdapter()

	value, err := adapter.ParseShorthand([]byte("string|format:email"))
	require.NoError(t, err)
	assert.Equal(t, types.ShorthandString("string|format:email"), value)

	value, err = adapter.ParseShorthand([]byte(`{"name":"string","tags?":"string[]"}`))
	require.NoError(t, err)
	object, ok := value.(*types.ShorthandObject)
	require.True(t, ok)
	assert.Equal(t, []string{"name", "tags?"}, object.Keys())
}

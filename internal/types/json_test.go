package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFragmentJSONKeyOrder(t *testing.T) {
	schema := &Object{
		Annotations: Annotations{Title: "User", Keywords: Keywords{"description": StringValue("a user")}},
		Properties: []Property{
			{Name: "name", Schema: &Primitive{Type: PrimitiveString, Nullable: true}},
			{Name: "age", Schema: &Primitive{Type: PrimitiveInteger, Annotations: Annotations{
				Keywords: Keywords{"minimum": IntValue(0), "maximum": FloatValue(120.5)},
			}}},
			{Name: "status", Schema: &Enum{Values: []string{"a"}}},
			{Name: "friends", Schema: &Array{Items: &Reference{Pointer: "#/definitions/User"}}},
		},
		Required: []string{"name"},
	}

	data, err := json.Marshal(schema)
	require.NoError(t, err)
	assert.Equal(t,
		`{"type":"object","properties":{"name":{"type":["string","null"]},"age":{"type":"integer","maximum":120.5,"minimum":0},"status":{"enum":["a"]},"friends":{"type":"array","items":{"$ref":"#/definitions/User"}}},"required":["name"],"additionalProperties":false,"description":"a user","title":"User"}`,
		string(data))
}

func TestDefinitionsJSON(t *testing.T) {
	data, err := json.Marshal(&SchemaDefinitions{})
	require.NoError(t, err)
	assert.Equal(t, `{"sourceMap":{},"definitions":{}}`, string(data))
}

func TestReferenceDefinitionPath(t *testing.T) {
	path, ok := (&Reference{Pointer: "#/definitions/Model/User"}).DefinitionPath()
	require.True(t, ok)
	assert.Equal(t, "Model/User", path)

	_, ok = (&Reference{Pointer: "#/properties/id"}).DefinitionPath()
	assert.False(t, ok)
	_, ok = (&Reference{Pointer: "#/definitions/"}).DefinitionPath()
	assert.False(t, ok)
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "255", IntValue(255).String())
	assert.Equal(t, "0.5", FloatValue(0.5).String())
	assert.Equal(t, "true", BoolValue(true).String())
	assert.Equal(t, "x", StringValue("x").String())
}

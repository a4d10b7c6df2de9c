package core

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"cody-schema/internal/shared"
	"cody-schema/internal/types"
)

// schemaMarkers are the keys that make a definitions tree node a schema
// leaf instead of a namespace container.
var schemaMarkers = []string{"type", "enum", "$ref"}

// DecodeFragment parses a JSON or YAML schema document into a Fragment.
// Property order is preserved.
func DecodeFragment(data []byte) (types.Fragment, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, malformedSchema("schema is neither valid JSON nor YAML", err.Error())
	}
	return DecodeFragmentNode(&doc)
}

// DecodeFragmentNode converts a parsed YAML/JSON node into a Fragment.
func DecodeFragmentNode(node *yaml.Node) (types.Fragment, error) {
	node = unwrapDocument(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil, malformedSchema("schema must be an object", describeNode(node))
	}

	var (
		meta       types.Annotations
		ref        *yaml.Node
		typeNode   *yaml.Node
		enumNode   *yaml.Node
		items      *yaml.Node
		properties *yaml.Node
		required   *yaml.Node
		additional *yaml.Node
	)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i].Value, node.Content[i+1]
		switch key {
		case "$ref":
			ref = value
		case "type":
			typeNode = value
		case "enum":
			enumNode = value
		case "items":
			items = value
		case "properties":
			properties = value
		case "required":
			required = value
		case "additionalProperties":
			additional = value
		case "title":
			if value.Kind != yaml.ScalarNode {
				return nil, malformedSchema("schema title must be a string", describeNode(value))
			}
			meta.Title = value.Value
		case "definitions":
			// embedded definitions are resolved by the dereferencer, not kept
		default:
			keyword, err := decodeKeyword(key, value)
			if err != nil {
				return nil, err
			}
			meta.Set(key, keyword)
		}
	}

	switch {
	case ref != nil:
		if ref.Kind != yaml.ScalarNode {
			return nil, malformedSchema("$ref must be a string", describeNode(ref))
		}
		return &types.Reference{Annotations: meta, Pointer: ref.Value}, nil
	case enumNode != nil:
		if enumNode.Kind != yaml.SequenceNode {
			return nil, malformedSchema("enum must be a list", describeNode(enumNode))
		}
		values := make([]string, 0, len(enumNode.Content))
		for _, item := range enumNode.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, malformedSchema("enum values must be scalars", describeNode(item))
			}
			values = append(values, item.Value)
		}
		return &types.Enum{Annotations: meta, Values: values}, nil
	}

	typeName, nullable, err := decodeType(typeNode)
	if err != nil {
		return nil, err
	}
	switch typeName {
	case "array":
		if nullable {
			return nil, malformedSchema("nullable arrays are not supported", describeNode(typeNode))
		}
		if items == nil {
			return nil, malformedSchema("array schema has no items", "")
		}
		itemSchema, err := DecodeFragmentNode(items)
		if err != nil {
			return nil, err
		}
		return &types.Array{Annotations: meta, Items: itemSchema}, nil
	case "object":
		if nullable {
			return nil, malformedSchema("nullable objects are not supported", describeNode(typeNode))
		}
		return decodeObject(meta, properties, required, additional)
	default:
		if !types.IsPrimitiveType(typeName) {
			return nil, malformedSchema(fmt.Sprintf("unsupported schema type %q", typeName), "")
		}
		return &types.Primitive{Annotations: meta, Type: types.PrimitiveType(typeName), Nullable: nullable}, nil
	}
}

func decodeObject(meta types.Annotations, properties, required, additional *yaml.Node) (types.Fragment, error) {
	schema := &types.Object{Annotations: meta, AdditionalProperties: true}
	if properties != nil {
		if properties.Kind != yaml.MappingNode {
			return nil, malformedSchema("properties must be an object", describeNode(properties))
		}
		schema.Properties = make([]types.Property, 0, len(properties.Content)/2)
		for i := 0; i+1 < len(properties.Content); i += 2 {
			propSchema, err := DecodeFragmentNode(properties.Content[i+1])
			if err != nil {
				return nil, err
			}
			schema.SetProperty(properties.Content[i].Value, propSchema)
		}
	}
	if required != nil {
		if required.Kind != yaml.SequenceNode {
			return nil, malformedSchema("required must be a list", describeNode(required))
		}
		schema.Required = make([]string, 0, len(required.Content))
		for _, item := range required.Content {
			schema.Required = append(schema.Required, item.Value)
		}
	}
	if additional != nil {
		var allowed bool
		if additional.Kind != yaml.ScalarNode || additional.Decode(&allowed) != nil {
			return nil, malformedSchema("additionalProperties must be a boolean", describeNode(additional))
		}
		schema.AdditionalProperties = allowed
	}
	return schema, nil
}

func decodeType(node *yaml.Node) (string, bool, error) {
	if node == nil {
		return "", false, malformedSchema("schema has no type, enum or $ref", "")
	}
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Value, false, nil
	case yaml.SequenceNode:
		if len(node.Content) == 2 {
			first, second := node.Content[0].Value, node.Content[1].Value
			if second == "null" && first != "null" {
				return first, true, nil
			}
			if first == "null" && second != "null" {
				return second, true, nil
			}
		}
	}
	return "", false, malformedSchema("type must be a type name or a [type, \"null\"] pair", describeNode(node))
}

func decodeKeyword(key string, node *yaml.Node) (types.Value, error) {
	if node.Kind != yaml.ScalarNode {
		return types.Value{}, malformedSchema(fmt.Sprintf("unsupported keyword %q", key), "only scalar keyword values are supported")
	}
	switch node.Tag {
	case "!!int":
		var i int64
		if err := node.Decode(&i); err == nil {
			return types.IntValue(i), nil
		}
	case "!!float":
		var f float64
		if err := node.Decode(&f); err == nil {
			return types.FloatValue(f), nil
		}
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err == nil {
			return types.BoolValue(b), nil
		}
	case "!!null":
		return types.Value{}, malformedSchema(fmt.Sprintf("keyword %q has no value", key), "")
	}
	return types.StringValue(node.Value), nil
}

// DecodeDefinitions parses a schema-definitions document. Empty input
// yields an empty document.
func DecodeDefinitions(data []byte) (*types.SchemaDefinitions, error) {
	defs := types.NewSchemaDefinitions()
	if strings.TrimSpace(string(data)) == "" {
		return defs, nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, malformedSchema("schema definitions are not valid JSON", err.Error())
	}
	root := unwrapDocument(&doc)
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, malformedSchema("schema definitions must be an object", describeNode(root))
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i].Value, root.Content[i+1]
		switch key {
		case "sourceMap":
			if value.Kind != yaml.MappingNode {
				return nil, malformedSchema("sourceMap must be an object", describeNode(value))
			}
			for j := 0; j+1 < len(value.Content); j += 2 {
				defs.SourceMap[shared.AbsoluteName(value.Content[j].Value)] = value.Content[j+1].Value
			}
		case "definitions":
			children, err := decodeDefinitionChildren(value, "")
			if err != nil {
				return nil, err
			}
			defs.Definitions = children
		}
	}
	return defs, nil
}

func decodeDefinitionChildren(node *yaml.Node, path string) (map[string]*types.DefinitionNode, error) {
	if node.Kind != yaml.MappingNode {
		return nil, malformedSchema(fmt.Sprintf("definitions namespace %q must be an object", "/"+path), describeNode(node))
	}
	children := make(map[string]*types.DefinitionNode, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name, value := node.Content[i].Value, node.Content[i+1]
		childPath := strings.TrimPrefix(path+"/"+name, "/")
		if isSchemaNode(value) {
			schema, err := DecodeFragmentNode(value)
			if err != nil {
				return nil, types.NewSchemaError(
					types.KindMalformedShorthand,
					fmt.Sprintf("definition %q is not a valid schema", "/"+childPath),
					describeError(err),
				)
			}
			children[name] = types.NewDefinitionLeaf(schema)
			continue
		}
		grandChildren, err := decodeDefinitionChildren(value, childPath)
		if err != nil {
			return nil, err
		}
		children[name] = &types.DefinitionNode{Children: grandChildren}
	}
	return children, nil
}

// EncodeDefinitions renders a schema-definitions document as indented
// JSON.
func EncodeDefinitions(defs *types.SchemaDefinitions) ([]byte, error) {
	return json.MarshalIndent(defs, "", "  ")
}

// decodeGeneric converts a value produced by encoding/json (maps, slices,
// scalars) into a Fragment.
func decodeGeneric(value any) (types.Fragment, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, malformedSchema("referenced value cannot be encoded", err.Error())
	}
	return DecodeFragment(data)
}

// toGeneric renders v as the plain maps and slices encoding/json produces.
func toGeneric(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func isSchemaNode(node *yaml.Node) bool {
	if node.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		for _, marker := range schemaMarkers {
			if node.Content[i].Value == marker {
				return true
			}
		}
	}
	return false
}

func unwrapDocument(node *yaml.Node) *yaml.Node {
	if node != nil && node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		return node.Content[0]
	}
	return node
}

func describeNode(node *yaml.Node) string {
	if node == nil {
		return "got nothing"
	}
	switch node.Kind {
	case yaml.MappingNode:
		return "got an object"
	case yaml.SequenceNode:
		return "got a list"
	default:
		return fmt.Sprintf("got %q", node.Value)
	}
}

func describeError(err error) string {
	message, details := types.Describe(err)
	if details == "" {
		return message
	}
	return message + ": " + details
}

func malformedSchema(message string, details string) error {
	return types.NewSchemaError(types.KindMalformedShorthand, message, details)
}

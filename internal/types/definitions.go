package types

// DefinitionNode is one node of the definitions tree. A node is either a
// leaf holding a schema or a namespace container holding children, never
// both.
type DefinitionNode struct {
	Schema   Fragment
	Children map[string]*DefinitionNode
}

// NewDefinitionLeaf wraps a schema as a tree leaf.
func NewDefinitionLeaf(schema Fragment) *DefinitionNode {
	return &DefinitionNode{Schema: schema}
}

// NewDefinitionContainer returns an empty namespace container.
func NewDefinitionContainer() *DefinitionNode {
	return &DefinitionNode{Children: map[string]*DefinitionNode{}}
}

func (n *DefinitionNode) IsLeaf() bool {
	return n != nil && n.Schema != nil
}

// SchemaDefinitions is the persisted schema-definitions document. SourceMap
// records which origin declared each absolute definition name and is only
// consulted for conflict detection. Definitions is the namespaced tree
// that references resolve against.
type SchemaDefinitions struct {
	SourceMap   map[string]string
	Definitions map[string]*DefinitionNode
}

// NewSchemaDefinitions returns an empty document.
func NewSchemaDefinitions() *SchemaDefinitions {
	return &SchemaDefinitions{
		SourceMap:   map[string]string{},
		Definitions: map[string]*DefinitionNode{},
	}
}

package types

// SchemaDocument is the metadata of one board element that declares a
// reusable schema (a value object, state or document).
type SchemaDocument struct {
	// Name is the element name as written on the board, e.g. "User Profile".
	Name string
	// Namespace comes from the "ns" or "namespace" metadata key; empty
	// means the root namespace.
	Namespace string
	// Shorthand marks Schema as shorthand input. When false the document
	// carries a literal schema in Literal.
	Shorthand bool
	Schema    ShorthandValue
	Literal   Fragment
	// Origin identifies where the document was read from.
	Origin string
}

package types

// FragmentKind identifies the variant of a compiled schema fragment.
type FragmentKind string

const (
	FragmentKindPrimitive FragmentKind = "primitive"
	FragmentKindEnum      FragmentKind = "enum"
	FragmentKindArray     FragmentKind = "array"
	FragmentKindObject    FragmentKind = "object"
	FragmentKindReference FragmentKind = "reference"
)

// PrimitiveType is one of the four JSON Schema scalar types the shorthand
// grammar understands.
type PrimitiveType string

const (
	PrimitiveString  PrimitiveType = "string"
	PrimitiveInteger PrimitiveType = "integer"
	PrimitiveNumber  PrimitiveType = "number"
	PrimitiveBoolean PrimitiveType = "boolean"
)

// DefinitionsPointerPrefix is the pointer prefix of every registry reference.
const DefinitionsPointerPrefix = "#/definitions/"

// IsPrimitiveType reports whether name is one of the shorthand primitives.
func IsPrimitiveType(name string) bool {
	switch PrimitiveType(name) {
	case PrimitiveString, PrimitiveInteger, PrimitiveNumber, PrimitiveBoolean:
		return true
	default:
		return false
	}
}

// Fragment is one node of a compiled schema tree. The set of
// implementations is closed: Primitive, Enum, Array, Object and Reference.
type Fragment interface {
	Kind() FragmentKind
	// Meta exposes the title and sibling keywords shared by all variants.
	// The pointer refers to the receiver's own storage.
	Meta() *Annotations
	// Clone returns a deep copy that shares no mutable state with the
	// receiver.
	Clone() Fragment

	fragment()
}

// Annotations carries the keywords every fragment variant may hold in
// addition to its structural keywords.
type Annotations struct {
	Title string
	// Keywords holds validation and format keywords such as format,
	// minLength or maximum, keyed by JSON Schema keyword name.
	Keywords Keywords
}

func (a *Annotations) Meta() *Annotations { return a }

func (a Annotations) clone() Annotations {
	return Annotations{Title: a.Title, Keywords: a.Keywords.Clone()}
}

// Keywords maps keyword names to scalar values.
type Keywords map[string]Value

// Clone copies the map. A nil map stays nil.
func (k Keywords) Clone() Keywords {
	if k == nil {
		return nil
	}
	out := make(Keywords, len(k))
	for key, value := range k {
		out[key] = value
	}
	return out
}

// Set assigns a keyword, allocating the map on first use.
func (a *Annotations) Set(key string, value Value) {
	if a.Keywords == nil {
		a.Keywords = Keywords{}
	}
	a.Keywords[key] = value
}

// Primitive is a scalar type, optionally nullable.
type Primitive struct {
	Annotations
	Type     PrimitiveType
	Nullable bool
}

func (*Primitive) Kind() FragmentKind { return FragmentKindPrimitive }
func (*Primitive) fragment()          {}

func (p *Primitive) Clone() Fragment {
	out := *p
	out.Annotations = p.Annotations.clone()
	return &out
}

// Enum restricts a value to a list of strings.
type Enum struct {
	Annotations
	Values []string
}

func (*Enum) Kind() FragmentKind { return FragmentKindEnum }
func (*Enum) fragment()          {}

func (e *Enum) Clone() Fragment {
	return &Enum{
		Annotations: e.Annotations.clone(),
		Values:      cloneStrings(e.Values),
	}
}

// Array is a list whose elements match Items.
type Array struct {
	Annotations
	Items Fragment
}

func (*Array) Kind() FragmentKind { return FragmentKindArray }
func (*Array) fragment()          {}

func (a *Array) Clone() Fragment {
	out := &Array{Annotations: a.Annotations.clone()}
	if a.Items != nil {
		out.Items = a.Items.Clone()
	}
	return out
}

// Property is a named member of an object schema. Properties keep the
// order in which they were declared.
type Property struct {
	Name   string
	Schema Fragment
}

// Object is a closed record of named properties.
type Object struct {
	Annotations
	Properties           []Property
	Required             []string
	AdditionalProperties bool
}

func (*Object) Kind() FragmentKind { return FragmentKindObject }
func (*Object) fragment()          {}

func (o *Object) Clone() Fragment {
	out := &Object{
		Annotations:          o.Annotations.clone(),
		Required:             cloneStrings(o.Required),
		AdditionalProperties: o.AdditionalProperties,
	}
	if o.Properties != nil {
		out.Properties = make([]Property, len(o.Properties))
		for i, prop := range o.Properties {
			out.Properties[i] = Property{Name: prop.Name}
			if prop.Schema != nil {
				out.Properties[i].Schema = prop.Schema.Clone()
			}
		}
	}
	return out
}

// Property returns the schema of the named property.
func (o *Object) Property(name string) (Fragment, bool) {
	for _, prop := range o.Properties {
		if prop.Name == name {
			return prop.Schema, true
		}
	}
	return nil, false
}

// SetProperty replaces the named property in place or appends it.
func (o *Object) SetProperty(name string, schema Fragment) {
	for i := range o.Properties {
		if o.Properties[i].Name == name {
			o.Properties[i].Schema = schema
			return
		}
	}
	o.Properties = append(o.Properties, Property{Name: name, Schema: schema})
}

// Reference points at another schema, usually a registry definition in
// the "#/definitions/<path>" form.
type Reference struct {
	Annotations
	Pointer string
}

func (*Reference) Kind() FragmentKind { return FragmentKindReference }
func (*Reference) fragment()          {}

func (r *Reference) Clone() Fragment {
	return &Reference{Annotations: r.Annotations.clone(), Pointer: r.Pointer}
}

// DefinitionPath returns the registry path of a "#/definitions/..."
// pointer and whether the pointer has that form.
func (r *Reference) DefinitionPath() (string, bool) {
	if len(r.Pointer) <= len(DefinitionsPointerPrefix) || r.Pointer[:len(DefinitionsPointerPrefix)] != DefinitionsPointerPrefix {
		return "", false
	}
	return r.Pointer[len(DefinitionsPointerPrefix):], true
}

// TypeName returns the JSON Schema "type" keyword a fragment would carry,
// or "" for enums and references.
func TypeName(f Fragment) string {
	switch v := f.(type) {
	case *Primitive:
		return string(v.Type)
	case *Array:
		return "array"
	case *Object:
		return "object"
	default:
		return ""
	}
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

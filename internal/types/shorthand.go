package types

// ShorthandValue is raw shorthand input: a ShorthandString, a
// *ShorthandObject or a ShorthandLiteral the compiler will reject.
type ShorthandValue interface {
	shorthand()
}

// ShorthandString is a compact type expression such as
// "string|format:email|maxLength:255".
type ShorthandString string

func (ShorthandString) shorthand() {}

// ShorthandField is one key/value pair of a shorthand object.
type ShorthandField struct {
	Key   string
	Value ShorthandValue
}

// ShorthandObject is an ordered property map. Field order is the order in
// which the keys were written and drives the order of properties and
// required entries in the compiled schema.
type ShorthandObject struct {
	Fields []ShorthandField
}

func (*ShorthandObject) shorthand() {}

// NewShorthandObject builds an object from fields in the given order.
func NewShorthandObject(fields ...ShorthandField) *ShorthandObject {
	return &ShorthandObject{Fields: fields}
}

// Field is a convenience constructor for ShorthandField.
func Field(key string, value ShorthandValue) ShorthandField {
	return ShorthandField{Key: key, Value: value}
}

// Has reports whether key is present.
func (o *ShorthandObject) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Get returns the value of the first field named key.
func (o *ShorthandObject) Get(key string) (ShorthandValue, bool) {
	for _, field := range o.Fields {
		if field.Key == key {
			return field.Value, true
		}
	}
	return nil, false
}

// Keys lists the field keys in order.
func (o *ShorthandObject) Keys() []string {
	keys := make([]string, 0, len(o.Fields))
	for _, field := range o.Fields {
		keys = append(keys, field.Key)
	}
	return keys
}

// ShorthandLiteral carries input that is neither a string nor an object,
// for example a number or a list. Type names the input kind.
type ShorthandLiteral struct {
	Type string
	Text string
}

func (ShorthandLiteral) shorthand() {}

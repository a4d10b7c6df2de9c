package types

import (
	"bytes"
	"encoding/json"
	"sort"
)

// objectWriter emits a JSON object with keys in call order.
type objectWriter struct {
	buf   bytes.Buffer
	count int
	err   error
}

func newObjectWriter() *objectWriter {
	w := &objectWriter{}
	w.buf.WriteByte('{')
	return w
}

func (w *objectWriter) raw(key string, value []byte) {
	if w.err != nil {
		return
	}
	if w.count > 0 {
		w.buf.WriteByte(',')
	}
	w.count++
	encodedKey, err := json.Marshal(key)
	if err != nil {
		w.err = err
		return
	}
	w.buf.Write(encodedKey)
	w.buf.WriteByte(':')
	w.buf.Write(value)
}

func (w *objectWriter) field(key string, value any) {
	if w.err != nil {
		return
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		w.err = err
		return
	}
	w.raw(key, encoded)
}

func (w *objectWriter) annotations(a Annotations) {
	keys := make([]string, 0, len(a.Keywords))
	for key := range a.Keywords {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		w.field(key, a.Keywords[key])
	}
	if a.Title != "" {
		w.field("title", a.Title)
	}
}

func (w *objectWriter) bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	w.buf.WriteByte('}')
	return w.buf.Bytes(), nil
}

func (p *Primitive) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	if p.Nullable {
		w.field("type", []string{string(p.Type), "null"})
	} else {
		w.field("type", string(p.Type))
	}
	w.annotations(p.Annotations)
	return w.bytes()
}

func (e *Enum) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	values := e.Values
	if values == nil {
		values = []string{}
	}
	w.field("enum", values)
	w.annotations(e.Annotations)
	return w.bytes()
}

func (a *Array) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	w.field("type", "array")
	if a.Items != nil {
		w.field("items", a.Items)
	}
	w.annotations(a.Annotations)
	return w.bytes()
}

func (o *Object) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	w.field("type", "object")
	if o.Properties != nil {
		props := newObjectWriter()
		for _, prop := range o.Properties {
			props.field(prop.Name, prop.Schema)
		}
		encoded, err := props.bytes()
		if err != nil {
			return nil, err
		}
		w.raw("properties", encoded)
	}
	if o.Required != nil {
		w.field("required", o.Required)
	}
	w.field("additionalProperties", o.AdditionalProperties)
	w.annotations(o.Annotations)
	return w.bytes()
}

func (r *Reference) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	w.field("$ref", r.Pointer)
	w.annotations(r.Annotations)
	return w.bytes()
}

func (n *DefinitionNode) MarshalJSON() ([]byte, error) {
	if n.IsLeaf() {
		return json.Marshal(n.Schema)
	}
	children := n.Children
	if children == nil {
		children = map[string]*DefinitionNode{}
	}
	return json.Marshal(children)
}

type schemaDefinitionsJSON struct {
	SourceMap   map[string]string          `json:"sourceMap"`
	Definitions map[string]*DefinitionNode `json:"definitions"`
}

func (d *SchemaDefinitions) MarshalJSON() ([]byte, error) {
	out := schemaDefinitionsJSON{SourceMap: d.SourceMap, Definitions: d.Definitions}
	if out.SourceMap == nil {
		out.SourceMap = map[string]string{}
	}
	if out.Definitions == nil {
		out.Definitions = map[string]*DefinitionNode{}
	}
	return json.Marshal(out)
}

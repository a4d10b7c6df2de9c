package core

import (
	"cody-schema/internal/shared"
	"cody-schema/internal/types"
)

// MapPropertiesToTitles returns a copy of schema in which every untitled
// object property carries a title derived from its key, e.g. "user_id"
// becomes "User Id". property is the hint for schema itself and may be
// empty. Array items get no hint.
func MapPropertiesToTitles(schema types.Fragment, property string) types.Fragment {
	if schema == nil {
		return nil
	}
	out := schema.Clone()
	applyTitles(out, property)
	return out
}

func applyTitles(schema types.Fragment, property string) {
	if schema == nil {
		return
	}
	if meta := schema.Meta(); meta.Title == "" && property != "" {
		meta.Title = shared.PropertyTitle(property)
	}
	switch v := schema.(type) {
	case *types.Object:
		for _, prop := range v.Properties {
			applyTitles(prop.Schema, prop.Name)
		}
	case *types.Array:
		applyTitles(v.Items, "")
	}
}

package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"cody-schema/internal/core"
	"cody-schema/internal/types"
)

func (s Service) Compile(ctx context.Context, req CompileRequest) (CompileResult, error) {
	if strings.TrimSpace(string(req.Input)) == "" {
		return CompileResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("shorthand input is required")
	}
	value, err := s.Documents.ParseShorthand(req.Input)
	if err != nil {
		return CompileResult{}, err
	}
	schema, err := core.NewShorthandCompiler().Compile(ctx, value, req.Namespace)
	if err != nil {
		return CompileResult{}, err
	}
	return CompileResult{Schema: schema}, nil
}

// compileDocument turns a document into the schema registered for it.
// Untitled schemas are titled after the element, then every untitled
// property gets a title derived from its key.
func compileDocument(ctx context.Context, doc types.SchemaDocument) (types.Fragment, error) {
	var (
		schema types.Fragment
		err    error
	)
	if doc.Shorthand {
		schema, err = core.NewShorthandCompiler().Compile(ctx, doc.Schema, doc.Namespace)
		if err != nil {
			return nil, err
		}
	} else {
		if doc.Literal == nil {
			return nil, types.NewSchemaError(
				types.KindMalformedShorthand,
				"document "+doc.Origin+" has no schema",
				"",
			)
		}
		schema = doc.Literal.Clone()
	}
	if meta := schema.Meta(); meta.Title == "" {
		meta.Title = strings.TrimSpace(doc.Name)
	}
	return core.MapPropertiesToTitles(schema, ""), nil
}

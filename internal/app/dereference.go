package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"cody-schema/internal/core"
	"cody-schema/internal/shared"
	"cody-schema/internal/types"
)

func (s Service) Dereference(ctx context.Context, req DereferenceRequest) (DereferenceResult, error) {
	dereferencer, err := s.dereferencer(ctx, req.DefinitionsPath, req.RefsDir)
	if err != nil {
		return DereferenceResult{}, err
	}

	var schema types.Fragment
	switch {
	case strings.TrimSpace(req.Name) != "":
		name := shared.AbsoluteName(req.Name)
		found, ok := dereferencer.Registry.Get(name)
		if !ok {
			return DereferenceResult{}, types.NewSchemaError(
				types.KindUnresolvedReference,
				fmt.Sprintf("schema definition %s is not registered", name),
				"run define for the document that declares it first",
			)
		}
		schema = found
	case strings.TrimSpace(string(req.Input)) != "":
		schema, err = s.decodeInput(ctx, req)
		if err != nil {
			return DereferenceResult{}, err
		}
	default:
		return DereferenceResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("a definition name or a schema is required")
	}

	resolved, err := dereferencer.Dereference(ctx, schema)
	if err != nil {
		return DereferenceResult{}, err
	}
	return DereferenceResult{Schema: resolved}, nil
}

func (s Service) Classify(ctx context.Context, req ClassifyRequest) (ClassifyResult, error) {
	if strings.TrimSpace(req.Name) == "" {
		return ClassifyResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("a definition name is required")
	}
	dereferencer, err := s.dereferencer(ctx, req.DefinitionsPath, req.RefsDir)
	if err != nil {
		return ClassifyResult{}, err
	}
	name := shared.AbsoluteName(req.Name)
	result := ClassifyResult{
		Name:    name,
		IsArray: dereferencer.Registry.IsArrayType(name),
	}
	_, result.Exists = dereferencer.Registry.Get(name)
	if result.IsState, err = dereferencer.IsStateType(ctx, name); err != nil {
		return ClassifyResult{}, err
	}
	return result, nil
}

func (s Service) dereferencer(ctx context.Context, definitions string, refsDir string) (core.Dereferencer, error) {
	defs, err := s.DefinitionsStore(definitionsPath(definitions)).LoadDefinitions(ctx)
	if err != nil {
		return core.Dereferencer{}, err
	}
	dereferencer := core.NewDereferencer(core.NewDefinitionsRegistry(defs), nil)
	if s.ReferenceLoader != nil {
		dereferencer.Loader = s.ReferenceLoader(refsDir)
	}
	return dereferencer, nil
}

func (s Service) decodeInput(ctx context.Context, req DereferenceRequest) (types.Fragment, error) {
	if !req.Shorthand {
		return core.DecodeFragment(req.Input)
	}
	compiled, err := s.Compile(ctx, CompileRequest{Input: req.Input, Namespace: req.Namespace})
	if err != nil {
		return nil, err
	}
	return compiled.Schema, nil
}

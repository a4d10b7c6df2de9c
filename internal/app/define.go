package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"cody-schema/internal/adapters"
	"cody-schema/internal/core"
	"cody-schema/internal/shared"
)

// Define compiles every matching document and registers its schema under
// the element's namespaced name. The definitions file is saved after each
// successful registration; the run stops at the first failure, leaving the
// definitions registered so far in place.
func (s Service) Define(ctx context.Context, req DefineRequest) (DefineResult, error) {
	if len(req.Documents) == 0 {
		return DefineResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one document pattern is required")
	}
	path := definitionsPath(req.DefinitionsPath)
	store := s.DefinitionsStore(path)

	locations, err := s.Documents.Discover(ctx, req.Documents)
	if err != nil {
		return DefineResult{}, err
	}
	if len(locations) == 0 {
		return DefineResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("no documents matched " + strings.Join(req.Documents, ", "))
	}

	defs, err := store.LoadDefinitions(ctx)
	if err != nil {
		return DefineResult{}, err
	}
	registry := core.NewDefinitionsRegistry(defs)

	result := DefineResult{DefinitionsPath: path}
	for _, location := range locations {
		doc, err := s.Documents.LoadDocument(ctx, location)
		if err != nil {
			return result, err
		}
		schema, err := compileDocument(ctx, doc)
		if err != nil {
			return result, err
		}
		name := shared.DefinitionName(doc.Namespace, doc.Name)
		origin := relativeOrigin(req.OriginRoot, doc.Origin)
		if err := registry.Upsert(ctx, name, origin, schema); err != nil {
			return result, err
		}
		if err := store.SaveDefinitions(ctx, registry.Definitions()); err != nil {
			return result, err
		}
		log.Ctx(ctx).Info().Str("definition", name).Str("origin", origin).Msg("schema defined")
		result.Defined = append(result.Defined, DefinedSchema{Name: name, Origin: origin})
	}
	return result, nil
}

func definitionsPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return adapters.DefaultDefinitionsFile
	}
	return path
}

// relativeOrigin records origin relative to root with forward slashes, so
// the same document yields the same origin on every machine.
func relativeOrigin(root string, origin string) string {
	if strings.TrimSpace(root) == "" {
		return filepath.ToSlash(origin)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return filepath.ToSlash(origin)
	}
	absOrigin, err := filepath.Abs(origin)
	if err != nil {
		return filepath.ToSlash(origin)
	}
	rel, err := filepath.Rel(absRoot, absOrigin)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(origin)
	}
	return filepath.ToSlash(rel)
}

package ports

import (
	"context"

	"cody-schema/internal/types"
)

// DefinitionsStorePort persists the schema-definitions document shared by
// every generation session.
type DefinitionsStorePort interface {
	// LoadDefinitions reads the document. A store that has never been
	// written yields an empty document, not an error.
	LoadDefinitions(ctx context.Context) (*types.SchemaDefinitions, error)
	SaveDefinitions(ctx context.Context, defs *types.SchemaDefinitions) error
}

// DocumentSourcePort supplies shorthand documents (board element
// metadata) to the compiler.
type DocumentSourcePort interface {
	// Discover expands glob patterns into document locations, sorted and
	// without duplicates.
	Discover(ctx context.Context, patterns []string) ([]string, error)
	LoadDocument(ctx context.Context, location string) (types.SchemaDocument, error)
	// ParseShorthand decodes standalone shorthand text such as a single
	// shorthand string or a JSON/YAML shorthand object.
	ParseShorthand(data []byte) (types.ShorthandValue, error)
}

// ReferenceLoaderPort resolves the document part of an external $ref such
// as "common.json#/definitions/Address". The returned value is a generic
// JSON tree (maps, slices and scalars).
type ReferenceLoaderPort interface {
	LoadReference(ctx context.Context, location string) (any, error)
}

// DocumentWatcherPort reports changes in the watched document roots.
type DocumentWatcherPort interface {
	// Watch blocks until ctx is done, calling onChange with the changed
	// paths after each quiet period.
	Watch(ctx context.Context, roots []string, onChange func(paths []string)) error
}

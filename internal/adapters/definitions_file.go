package adapters

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"cody-schema/internal/core"
	"cody-schema/internal/ports"
	"cody-schema/internal/types"
)

// DefaultDefinitionsFile is the file name used when no path is configured.
const DefaultDefinitionsFile = "schema-definitions.json"

// DefinitionsFileAdapter stores the schema-definitions document as an
// indented JSON file.
type DefinitionsFileAdapter struct {
	Path string
}

func NewDefinitionsFileAdapter(path string) DefinitionsFileAdapter {
	if path == "" {
		path = DefaultDefinitionsFile
	}
	return DefinitionsFileAdapter{Path: path}
}

func (a DefinitionsFileAdapter) LoadDefinitions(ctx context.Context) (*types.SchemaDefinitions, error) {
	data, err := os.ReadFile(a.Path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("path", a.Path).Msg("schema definitions file not found, starting empty")
		return types.NewSchemaDefinitions(), nil
	}
	if err != nil {
		return nil, types.WrapSchemaError(
			types.KindIO,
			errbuilder.CodeInternal,
			fmt.Sprintf("failed to read schema definitions %s", a.Path),
			err,
		)
	}
	defs, err := core.DecodeDefinitions(data)
	if err != nil {
		message, details := types.Describe(err)
		return nil, types.NewSchemaError(
			types.KindMalformedShorthand,
			fmt.Sprintf("schema definitions %s are malformed: %s", a.Path, message),
			details,
		)
	}
	log.Debug().
		Str("path", a.Path).
		Int("definitions", len(defs.SourceMap)).
		Msg("schema definitions loaded")
	return defs, nil
}

// SaveDefinitions writes the document through a temporary file in the
// same directory so readers never observe a partial file.
func (a DefinitionsFileAdapter) SaveDefinitions(ctx context.Context, defs *types.SchemaDefinitions) error {
	data, err := core.EncodeDefinitions(defs)
	if err != nil {
		return types.WrapSchemaError(types.KindIO, errbuilder.CodeInternal, "failed to encode schema definitions", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(a.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return types.WrapSchemaError(
			types.KindIO,
			errbuilder.CodeInternal,
			fmt.Sprintf("failed to create directory for %s", a.Path),
			err,
		)
	}
	tmp, err := os.CreateTemp(dir, ".schema-definitions-*.json")
	if err != nil {
		return types.WrapSchemaError(types.KindIO, errbuilder.CodeInternal, "failed to create temporary definitions file", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return types.WrapSchemaError(types.KindIO, errbuilder.CodeInternal, "failed to write schema definitions", err)
	}
	if err := tmp.Close(); err != nil {
		return types.WrapSchemaError(types.KindIO, errbuilder.CodeInternal, "failed to write schema definitions", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return types.WrapSchemaError(types.KindIO, errbuilder.CodeInternal, "failed to write schema definitions", err)
	}
	if err := os.Rename(tmpName, a.Path); err != nil {
		return types.WrapSchemaError(
			types.KindIO,
			errbuilder.CodeInternal,
			fmt.Sprintf("failed to replace schema definitions %s", a.Path),
			err,
		)
	}
	log.Debug().Str("path", a.Path).Msg("schema definitions saved")
	return nil
}

var _ ports.DefinitionsStorePort = DefinitionsFileAdapter{}

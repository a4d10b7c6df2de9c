package adapters

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"cody-schema/internal/ports"
	"cody-schema/internal/types"
)

// ReferenceFileAdapter loads the documents named by external $ref values.
// Relative locations resolve against Dir. Loaded documents are cached.
type ReferenceFileAdapter struct {
	Dir string

	mu    sync.Mutex
	cache map[string]any
}

func NewReferenceFileAdapter(dir string) *ReferenceFileAdapter {
	return &ReferenceFileAdapter{Dir: dir, cache: map[string]any{}}
}

func (a *ReferenceFileAdapter) LoadReference(ctx context.Context, location string) (any, error) {
	path := location
	if !filepath.IsAbs(path) && a.Dir != "" {
		path = filepath.Join(a.Dir, path)
	}
	path = filepath.Clean(path)

	a.mu.Lock()
	defer a.mu.Unlock()
	if doc, ok := a.cache[path]; ok {
		return doc, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		code := errbuilder.CodeInternal
		if errors.Is(err, fs.ErrNotExist) {
			code = errbuilder.CodeNotFound
		}
		return nil, types.WrapSchemaError(
			types.KindIO,
			code,
			fmt.Sprintf("failed to read referenced document %s", location),
			err,
		)
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, types.WrapSchemaError(
			types.KindIO,
			errbuilder.CodeInvalidArgument,
			fmt.Sprintf("referenced document %s is neither valid JSON nor YAML", location),
			err,
		)
	}
	if a.cache == nil {
		a.cache = map[string]any{}
	}
	a.cache[path] = doc
	log.Debug().Str("path", path).Msg("referenced document loaded")
	return doc, nil
}

var _ ports.ReferenceLoaderPort = (*ReferenceFileAdapter)(nil)

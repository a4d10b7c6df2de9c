package adapters

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"cody-schema/internal/ports"
	"cody-schema/internal/types"
)

const defaultDebounce = 200 * time.Millisecond

// DocumentWatcher reports changes to document files below a set of
// directories. Events are collected until no change has arrived for
// Debounce.
type DocumentWatcher struct {
	Debounce time.Duration
}

func NewDocumentWatcher(debounce time.Duration) DocumentWatcher {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return DocumentWatcher{Debounce: debounce}
}

func (w DocumentWatcher) Watch(ctx context.Context, roots []string, onChange func(paths []string)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return types.WrapSchemaError(types.KindIO, errbuilder.CodeInternal, "failed to start file watcher", err)
	}
	defer fsw.Close()

	for _, root := range roots {
		if err := addWatchesRecursive(fsw, root); err != nil {
			return types.WrapSchemaError(types.KindIO, errbuilder.CodeNotFound, "failed to watch "+root, err)
		}
	}
	log.Info().Strs("roots", roots).Dur("debounce", w.debounce()).Msg("watching documents")

	timer := time.NewTimer(w.debounce())
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	pending := map[string]struct{}{}
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addWatchesRecursive(fsw, event.Name); err != nil {
						log.Warn().Err(err).Str("path", event.Name).Msg("failed to watch new directory")
					}
					continue
				}
			}
			if !isDocumentFile(event.Name) || event.Op == fsnotify.Chmod {
				continue
			}
			log.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("document change detected")
			pending[event.Name] = struct{}{}
			timer.Reset(w.debounce())
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("file watcher error")
		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for path := range pending {
				paths = append(paths, path)
			}
			sort.Strings(paths)
			pending = map[string]struct{}{}
			onChange(paths)
		}
	}
}

func (w DocumentWatcher) debounce() time.Duration {
	if w.Debounce <= 0 {
		return defaultDebounce
	}
	return w.Debounce
}

func addWatchesRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}

func isDocumentFile(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	_, ok := documentExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

var _ ports.DocumentWatcherPort = DocumentWatcher{}

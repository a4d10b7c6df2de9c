package app

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog/log"
)

// Watch runs Define once and again after every change below the watched
// roots. Failed runs are reported and watching continues. It returns when
// ctx is done.
func (s Service) Watch(ctx context.Context, req WatchRequest) error {
	if s.Watcher == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("no document watcher configured")
	}
	roots := req.Roots
	if len(roots) == 0 {
		roots = patternRoots(req.Define.Documents)
	}
	if len(roots) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("nothing to watch: no roots and no document patterns")
	}

	run := func() {
		result, err := s.Define(ctx, req.Define)
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("define failed")
		} else {
			log.Ctx(ctx).Info().Int("definitions", len(result.Defined)).Msg("definitions updated")
		}
		if req.OnDefine != nil {
			req.OnDefine(result, err)
		}
	}
	run()

	definitions, _ := filepath.Abs(definitionsPath(req.Define.DefinitionsPath))
	return s.Watcher.Watch(ctx, roots, func(paths []string) {
		changed := false
		for _, path := range paths {
			if abs, err := filepath.Abs(path); err == nil && abs == definitions {
				continue
			}
			changed = true
		}
		if !changed {
			return
		}
		log.Ctx(ctx).Debug().Strs("paths", paths).Msg("documents changed")
		run()
	})
}

// patternRoots returns the static base directory of every glob pattern,
// e.g. "boards" for "boards/**/*.yaml".
func patternRoots(patterns []string) []string {
	seen := map[string]struct{}{}
	var roots []string
	for _, pattern := range patterns {
		base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
		root := filepath.FromSlash(base)
		if root == "" {
			root = "."
		}
		if _, ok := seen[root]; ok {
			continue
		}
		seen[root] = struct{}{}
		roots = append(roots, root)
	}
	sort.Strings(roots)
	return roots
}

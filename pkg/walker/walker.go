// Copyright 2025 BarkBase
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package walker selects the files a rewrite job runs over
package walker

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🚫 DefaultExcludes are always applied on top of the job's own excludes.
// Generated and vendored trees are never rewrite targets.
var DefaultExcludes = []string{
	"**/node_modules/**",
	"**/.git/**",
	"**/dist/**",
	"**/build/**",
	"**/coverage/**",
	"**/cdk.out/**",
	"**/__tests__/**",
}

// prunedDirs are skipped without descending, they can be huge
var prunedDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"cdk.out":      true,
}

// 🔍 Walk returns the relative, slash-separated paths of every regular file
// under root that matches at least one include pattern and no exclude
// pattern. Results are sorted so runs are reproducible.
func Walk(ctx context.Context, root string, include, exclude []string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	exclude = append(append([]string{}, exclude...), DefaultExcludes...)

	// Reject bad globs before touching the filesystem
	for _, pattern := range append(append([]string{}, include...), exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid glob pattern: %s", pattern)
		}
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Errorf("walking %s: %w", path, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if prunedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return errors.Errorf("relativizing %s: %w", path, err)
		}
		rel = filepath.ToSlash(rel)

		if !matchesAny(include, rel) || matchesAny(exclude, rel) {
			return nil
		}

		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	logger.Debug().Str("root", root).Int("files", len(files)).Msg("selected files")
	return files, nil
}

func matchesAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		// patterns are pre-validated, Match cannot fail here
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

// Copyright 2025 walteh LLC
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

package files

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔍 Expand resolves file arguments and glob patterns into a sorted, unique file list.
// Literal paths are kept even when missing so the batch can report them.
func Expand(ctx context.Context, patterns, ignore []string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	for _, pattern := range ignore {
		if !doublestar.ValidatePathPattern(pattern) {
			return nil, errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	seen := map[string]struct{}{}
	var out []string
	add := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		if isIgnored(ctx, path, ignore) {
			return
		}
		seen[path] = struct{}{}
		out = append(out, path)
	}

	for _, pattern := range patterns {
		if !hasMeta(pattern) {
			add(pattern)
			continue
		}
		if !doublestar.ValidatePathPattern(pattern) {
			return nil, errors.Errorf("invalid pattern %q", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			logger.Warn().Str("pattern", pattern).Msg("pattern matched no files")
		}
		for _, match := range matches {
			add(match)
		}
	}

	sort.Strings(out)
	return out, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{\\")
}

// 🚫 isIgnored checks a path against the ignore globs
func isIgnored(ctx context.Context, path string, ignore []string) bool {
	for _, pattern := range ignore {
		matched, err := doublestar.PathMatch(pattern, path)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Str("path", path).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			zerolog.Ctx(ctx).Debug().Str("file", path).Str("pattern", pattern).Msg("file ignored by pattern")
			return true
		}
	}
	return false
}

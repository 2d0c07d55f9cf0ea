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

package transform

import (
	"bytes"
	"context"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/es6migrate/pkg/migrate"
	"gitlab.com/tozd/go/errors"
)

// 🔄 ReplacementRule replaces FromText with ToText, in files matching FileFilterGlob when set
type ReplacementRule struct {
	FromText       string
	ToText         string
	FileFilterGlob string
}

// 🔄 Replacer applies literal text replacements in order
type Replacer struct {
	name  migrate.StageName
	rules []ReplacementRule
}

// 🏭 NewReplacer validates the rules and creates a replacer stage
func NewReplacer(name migrate.StageName, rules []ReplacementRule) (*Replacer, error) {
	for i, rule := range rules {
		if rule.FromText == "" {
			return nil, errors.Errorf("rule %d: from_text is required", i)
		}
		if rule.FileFilterGlob != "" && !doublestar.ValidatePattern(rule.FileFilterGlob) {
			return nil, errors.Errorf("rule %d: invalid file filter %q", i, rule.FileFilterGlob)
		}
	}
	return &Replacer{name: name, rules: rules}, nil
}

func (r *Replacer) Name() migrate.StageName { return r.name }

func (r *Replacer) Apply(ctx context.Context, content []byte) ([]byte, error) {
	file, _ := migrate.FileID(ctx)

	count := 0
	for _, rule := range r.rules {
		if rule.FileFilterGlob != "" {
			matched, err := doublestar.Match(rule.FileFilterGlob, file)
			if err != nil {
				return nil, errors.Errorf("matching %q: %w", rule.FileFilterGlob, err)
			}
			if !matched {
				continue
			}
		}

		from := []byte(rule.FromText)
		if n := bytes.Count(content, from); n > 0 {
			count += n
			content = bytes.ReplaceAll(content, from, []byte(rule.ToText))
		}
	}

	if count > 0 {
		zerolog.Ctx(ctx).Debug().Int("replacements", count).Msg("applied replacements")
	}
	return content, nil
}

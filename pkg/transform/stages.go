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
	"context"

	"github.com/walteh/es6migrate/pkg/config"
	"github.com/walteh/es6migrate/pkg/migrate"
	"gitlab.com/tozd/go/errors"
)

// 🧰 default tools, each reads stdin and writes stdout
var (
	DefaultConvert = []string{"decaffeinate"}
	DefaultModules = []string{"amdtoes6"}
	DefaultLint    = []string{"standard", "--fix", "--stdin"}
)

// standard exits 1 when violations remain after fixing
var defaultLintAccept = []int{1}

// 🔗 chain runs several stages under one name
type chain struct {
	name   migrate.StageName
	stages []migrate.Stage
}

// Chain composes stages so the pipeline sees them as a single step.
func Chain(name migrate.StageName, stages ...migrate.Stage) migrate.Stage {
	return &chain{name: name, stages: stages}
}

func (c *chain) Name() migrate.StageName { return c.name }

func (c *chain) Apply(ctx context.Context, content []byte) ([]byte, error) {
	for _, stage := range c.stages {
		next, err := stage.Apply(ctx, content)
		if err != nil {
			return nil, err
		}
		content = next
	}
	return content, nil
}

// Identity returns a stage that passes content through unchanged.
func Identity(name migrate.StageName) migrate.Stage {
	return migrate.StageFunc{
		StageName: name,
		Fn: func(ctx context.Context, content []byte) ([]byte, error) {
			return content, nil
		},
	}
}

// 🏗️ Build creates the stage chain described by the config
func Build(cfg *config.Config) (migrate.Stages, error) {
	convert := command(migrate.StageConvert, cfg.Convert, DefaultConvert, nil)
	if c, ok := convert.(*Command); ok {
		if cfg.PreferLet {
			c.args = append(c.args, "--prefer-let")
		}
		if cfg.LooseDefaultParams {
			c.args = append(c.args, "--loose-default-params")
		}
	}

	modules := command(migrate.StageRewriteModules, cfg.Modules, DefaultModules, nil)
	if len(cfg.Replacements) > 0 {
		rules := make([]ReplacementRule, 0, len(cfg.Replacements))
		for _, r := range cfg.Replacements {
			rules = append(rules, ReplacementRule{FromText: r.Old, ToText: r.New, FileFilterGlob: r.File})
		}
		replacer, err := NewReplacer(migrate.StageRewriteModules, rules)
		if err != nil {
			return migrate.Stages{}, errors.Errorf("building replacements: %w", err)
		}
		modules = Chain(migrate.StageRewriteModules, modules, replacer)
	}

	return migrate.Stages{
		Convert:        convert,
		RewriteModules: modules,
		Lint:           command(migrate.StageLint, cfg.Lint, DefaultLint, defaultLintAccept),
	}, nil
}

func command(name migrate.StageName, cmd *config.Command, defaults []string, defaultAccept []int) migrate.Stage {
	if cmd == nil {
		return NewCommand(name, defaults, defaultAccept...)
	}
	if len(cmd.Args) == 0 {
		return Identity(name)
	}
	return NewCommand(name, cmd.Args, cmd.AcceptExitCodes...)
}

type verifier interface {
	Verify() error
}

// 🔍 Verify checks every external tool of the chain before a batch starts
func Verify(stages migrate.Stages) error {
	for _, stage := range []migrate.Stage{stages.Convert, stages.RewriteModules, stages.Lint} {
		if err := verify(stage); err != nil {
			return errors.Errorf("%w: %s", migrate.ErrConfig, err.Error())
		}
	}
	return nil
}

func verify(stage migrate.Stage) error {
	switch s := stage.(type) {
	case verifier:
		return s.Verify()
	case *chain:
		for _, inner := range s.stages {
			if err := verify(inner); err != nil {
				return err
			}
		}
	}
	return nil
}

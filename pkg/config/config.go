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

package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const (
	DefaultSourceExt = ".coffee"
	DefaultTargetExt = ".js"
	DefaultFileName  = ".es6migrate.yaml"
)

// 🔧 Command configures an external tool run as a stage
type Command struct {
	Args            []string `json:"command" yaml:"command" hcl:"command"`
	AcceptExitCodes []int    `json:"accept_exit_codes,omitempty" yaml:"accept_exit_codes,omitempty" hcl:"accept_exit_codes,optional"`
}

// 🔄 Replacement represents a string replacement applied after the module rewrite
type Replacement struct {
	Old  string `json:"old" yaml:"old" hcl:"old"`
	New  string `json:"new" yaml:"new" hcl:"new"`
	File string `json:"file,omitempty" yaml:"file,omitempty" hcl:"file,optional"` // optional glob limiting the files
}

// 📚 Config represents the complete configuration
type Config struct {
	SourceExt   string   `json:"source_ext,omitempty" yaml:"source_ext,omitempty" hcl:"source_ext,optional"`
	TargetExt   string   `json:"target_ext,omitempty" yaml:"target_ext,omitempty" hcl:"target_ext,optional"`
	Include     []string `json:"include,omitempty" yaml:"include,omitempty" hcl:"include,optional"`
	Ignore      []string `json:"ignore,omitempty" yaml:"ignore,omitempty" hcl:"ignore,optional"`
	Concurrency int      `json:"concurrency,omitempty" yaml:"concurrency,omitempty" hcl:"concurrency,optional"`
	Timeout     string   `json:"timeout,omitempty" yaml:"timeout,omitempty" hcl:"timeout,optional"`

	// conversion dialect
	PreferLet          bool `json:"prefer_let,omitempty" yaml:"prefer_let,omitempty" hcl:"prefer_let,optional"`
	LooseDefaultParams bool `json:"loose_default_params,omitempty" yaml:"loose_default_params,omitempty" hcl:"loose_default_params,optional"`

	// nil uses the default tool, an empty command skips the stage
	Convert *Command `json:"convert,omitempty" yaml:"convert,omitempty" hcl:"convert,block"`
	Modules *Command `json:"modules,omitempty" yaml:"modules,omitempty" hcl:"modules,block"`
	Lint    *Command `json:"lint,omitempty" yaml:"lint,omitempty" hcl:"lint,block"`

	Replacements []Replacement `json:"replacements,omitempty" yaml:"replacements,omitempty" hcl:"replacement,block"`

	location string
	timeout  time.Duration
}

// 🏭 Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		SourceExt: DefaultSourceExt,
		TargetExt: DefaultTargetExt,
	}
}

// Location is the file the config was loaded from, empty for defaults.
func (cfg *Config) Location() string { return cfg.location }

// TimeoutDuration is the parsed batch timeout, zero when unset.
func (cfg *Config) TimeoutDuration() time.Duration { return cfg.timeout }

// 🔍 Validate fills defaults and checks the configuration
func Validate(ctx context.Context, cfg *Config) error {
	if cfg.SourceExt == "" {
		cfg.SourceExt = DefaultSourceExt
	}
	if cfg.TargetExt == "" {
		cfg.TargetExt = DefaultTargetExt
	}
	if !strings.HasPrefix(cfg.SourceExt, ".") {
		return errors.Errorf("source_ext %q must start with a dot", cfg.SourceExt)
	}
	if !strings.HasPrefix(cfg.TargetExt, ".") {
		return errors.Errorf("target_ext %q must start with a dot", cfg.TargetExt)
	}
	if cfg.SourceExt == cfg.TargetExt {
		return errors.Errorf("source_ext and target_ext must differ, both are %q", cfg.SourceExt)
	}
	if cfg.Concurrency < 0 {
		return errors.Errorf("concurrency must not be negative, got %d", cfg.Concurrency)
	}

	cfg.timeout = 0
	if cfg.Timeout != "" {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return errors.Errorf("parsing timeout: %w", err)
		}
		if d < 0 {
			return errors.Errorf("timeout must not be negative, got %s", cfg.Timeout)
		}
		cfg.timeout = d
	}

	for _, pattern := range append(append([]string{}, cfg.Include...), cfg.Ignore...) {
		if !doublestar.ValidatePathPattern(pattern) {
			return errors.Errorf("invalid glob pattern %q", pattern)
		}
	}

	for i, r := range cfg.Replacements {
		if r.Old == "" {
			return errors.Errorf("replacement %d: old is required", i)
		}
		if r.File != "" && !doublestar.ValidatePattern(r.File) {
			return errors.Errorf("replacement %d: invalid file glob %q", i, r.File)
		}
	}

	for name, cmd := range map[string]*Command{"convert": cfg.Convert, "modules": cfg.Modules, "lint": cfg.Lint} {
		if cmd == nil {
			continue
		}
		for _, code := range cmd.AcceptExitCodes {
			if code <= 0 {
				return errors.Errorf("%s: accept_exit_codes must be positive, got %d", name, code)
			}
		}
	}

	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Msg("validated config")
	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	s := fmt.Sprintf("%s -> %s", cfg.SourceExt, cfg.TargetExt)
	if cfg.Concurrency > 0 {
		s += fmt.Sprintf(" (concurrency %d)", cfg.Concurrency)
	}
	if cfg.Timeout != "" {
		s += fmt.Sprintf(" (timeout %s)", cfg.Timeout)
	}
	return s
}

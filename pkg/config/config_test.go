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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func writeConfig(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("ES6MIGRATE_TEST_TIMEOUT", "45s")

	tests := []struct {
		name        string
		file        string
		config      string
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "yaml_full",
			file: "config.yaml",
			config: `
source_ext: .coffee
target_ext: .mjs
include:
  - "src/**/*.coffee"
ignore:
  - "vendor/**"
concurrency: 4
timeout: 2m
prefer_let: true
convert:
  command: [npx, decaffeinate]
lint:
  command: [npx, standard, --fix, --stdin]
  accept_exit_codes: [1]
modules:
  command: []
replacements:
  - old: "require('jquery')"
    new: "import $ from 'jquery'"
    file: "src/**"
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, ".coffee", cfg.SourceExt)
				assert.Equal(t, ".mjs", cfg.TargetExt)
				assert.Equal(t, []string{"src/**/*.coffee"}, cfg.Include)
				assert.Equal(t, []string{"vendor/**"}, cfg.Ignore)
				assert.Equal(t, 4, cfg.Concurrency)
				assert.Equal(t, 2*time.Minute, cfg.TimeoutDuration())
				assert.True(t, cfg.PreferLet)
				assert.False(t, cfg.LooseDefaultParams)
				require.NotNil(t, cfg.Convert)
				assert.Equal(t, []string{"npx", "decaffeinate"}, cfg.Convert.Args)
				require.NotNil(t, cfg.Lint)
				assert.Equal(t, []int{1}, cfg.Lint.AcceptExitCodes)
				require.NotNil(t, cfg.Modules)
				assert.Empty(t, cfg.Modules.Args)
				require.Len(t, cfg.Replacements, 1)
				assert.Equal(t, "src/**", cfg.Replacements[0].File)
			},
		},
		{
			name:   "yaml_minimal_gets_defaults",
			file:   "config.yml",
			config: "concurrency: 2\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultSourceExt, cfg.SourceExt)
				assert.Equal(t, DefaultTargetExt, cfg.TargetExt)
				assert.Nil(t, cfg.Convert)
				assert.Zero(t, cfg.TimeoutDuration())
			},
		},
		{
			name:        "yaml_unknown_field",
			file:        "config.yaml",
			config:      "source_extension: .coffee\n",
			errContains: "parsing YAML",
		},
		{
			name: "json",
			file: "config.json",
			config: `{
  "source_ext": ".coffee",
  "target_ext": ".js",
  "loose_default_params": true,
  "lint": {"command": ["standard", "--fix", "--stdin"], "accept_exit_codes": [1]}
}`,
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.LooseDefaultParams)
				require.NotNil(t, cfg.Lint)
				assert.Equal(t, []string{"standard", "--fix", "--stdin"}, cfg.Lint.Args)
			},
		},
		{
			name:        "json_unknown_field",
			file:        "config.json",
			config:      `{"extension": ".js"}`,
			errContains: "parsing JSON",
		},
		{
			name: "hcl",
			file: "config.hcl",
			config: `
source_ext = ".coffee"
target_ext = ".js"
include    = ["app/**/*.coffee"]
timeout    = env.ES6MIGRATE_TEST_TIMEOUT

convert {
  command = ["decaffeinate", "--use-js-modules"]
}

lint {
  command           = ["standard", "--fix", "--stdin"]
  accept_exit_codes = [1]
}

replacement {
  old = "define("
  new = "export default ("
}

replacement {
  old  = "foo"
  new  = "bar"
  file = "app/legacy/**"
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"app/**/*.coffee"}, cfg.Include)
				assert.Equal(t, 45*time.Second, cfg.TimeoutDuration())
				require.NotNil(t, cfg.Convert)
				assert.Equal(t, []string{"decaffeinate", "--use-js-modules"}, cfg.Convert.Args)
				assert.Nil(t, cfg.Modules)
				require.NotNil(t, cfg.Lint)
				assert.Equal(t, []int{1}, cfg.Lint.AcceptExitCodes)
				require.Len(t, cfg.Replacements, 2)
				assert.Equal(t, "app/legacy/**", cfg.Replacements[1].File)
			},
		},
		{
			name:        "hcl_syntax_error",
			file:        "config.hcl",
			config:      `source_ext = `,
			errContains: "parsing HCL",
		},
		{
			name:        "unsupported_extension",
			file:        "config.toml",
			config:      `source_ext = ".coffee"`,
			errContains: `unsupported file extension ".toml"`,
		},
		{
			name:        "same_extensions",
			file:        "config.yaml",
			config:      "source_ext: .js\ntarget_ext: .js\n",
			errContains: "source_ext and target_ext must differ",
		},
		{
			name:        "extension_without_dot",
			file:        "config.yaml",
			config:      "target_ext: js\n",
			errContains: "must start with a dot",
		},
		{
			name:        "bad_timeout",
			file:        "config.yaml",
			config:      "timeout: soon\n",
			errContains: "parsing timeout",
		},
		{
			name:        "negative_concurrency",
			file:        "config.yaml",
			config:      "concurrency: -1\n",
			errContains: "concurrency must not be negative",
		},
		{
			name:        "empty_replacement",
			file:        "config.yaml",
			config:      "replacements:\n  - new: x\n",
			errContains: "replacement 0: old is required",
		},
		{
			name:        "bad_exit_code",
			file:        "config.yaml",
			config:      "lint:\n  command: [standard]\n  accept_exit_codes: [0]\n",
			errContains: "lint: accept_exit_codes must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file, tt.config)

			cfg, err := LoadConfig(testContext(t), path)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, path, cfg.Location())
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadConfigOrDefault(t *testing.T) {
	ctx := testContext(t)

	cfg, err := LoadConfigOrDefault(ctx, filepath.Join(t.TempDir(), DefaultFileName))
	require.NoError(t, err)
	assert.Equal(t, DefaultSourceExt, cfg.SourceExt)
	assert.Equal(t, DefaultTargetExt, cfg.TargetExt)
	assert.Empty(t, cfg.Location())

	path := writeConfig(t, "custom.yaml", "target_ext: .mjs\n")
	cfg, err = LoadConfigOrDefault(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, ".mjs", cfg.TargetExt)
}

func TestConfigString(t *testing.T) {
	cfg := &Config{SourceExt: ".coffee", TargetExt: ".js", Concurrency: 3, Timeout: "1m"}
	assert.Equal(t, ".coffee -> .js (concurrency 3) (timeout 1m)", cfg.String())
}

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

package config_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/walteh/es6migrate/pkg/config"
)

func ExampleLoadConfig_yaml() {
	ctx := context.Background()
	configYAML := `
concurrency: 4
include:
  - "src/**/*.coffee"
lint:
  command: [standard, --fix, --stdin]
  accept_exit_codes: [1]
`

	dir, err := os.MkdirTemp("", "es6migrate-example")
	if err != nil {
		fmt.Printf("Error creating dir: %v\n", err)
		return
	}
	defer os.RemoveAll(dir)

	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configYAML), 0644); err != nil {
		fmt.Printf("Error writing config: %v\n", err)
		return
	}

	cfg, err := config.LoadConfig(ctx, configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return
	}

	fmt.Println(cfg)
	fmt.Printf("Lint: %v accepting %v\n", cfg.Lint.Args, cfg.Lint.AcceptExitCodes)

	// Output:
	// .coffee -> .js (concurrency 4)
	// Lint: [standard --fix --stdin] accepting [1]
}

func ExampleLoadConfig_hcl() {
	ctx := context.Background()
	configHCL := `
source_ext = ".cjsx"
target_ext = ".jsx"
timeout    = "2m"

convert {
  command = ["decaffeinate", "--use-js-modules"]
}

replacement {
  old  = "require('lodash')"
  new  = "require('lodash-es')"
  file = "src/**"
}
`

	dir, err := os.MkdirTemp("", "es6migrate-example")
	if err != nil {
		fmt.Printf("Error creating dir: %v\n", err)
		return
	}
	defer os.RemoveAll(dir)

	configPath := filepath.Join(dir, "config.hcl")
	if err := os.WriteFile(configPath, []byte(configHCL), 0644); err != nil {
		fmt.Printf("Error writing config: %v\n", err)
		return
	}

	cfg, err := config.LoadConfig(ctx, configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return
	}

	fmt.Println(cfg)
	fmt.Printf("Convert: %v\n", cfg.Convert.Args)
	fmt.Printf("Replacements: %d, timeout %s\n", len(cfg.Replacements), cfg.TimeoutDuration())

	// Output:
	// .cjsx -> .jsx (timeout 2m)
	// Convert: [decaffeinate --use-js-modules]
	// Replacements: 1, timeout 2m0s
}

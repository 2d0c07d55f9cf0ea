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

package commands

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/es6migrate/cmd/es6migrate/opts"
	"github.com/walteh/es6migrate/pkg/config"
	"github.com/walteh/es6migrate/pkg/files"
	"github.com/walteh/es6migrate/pkg/migrate"
	"github.com/walteh/es6migrate/pkg/report"
	"github.com/walteh/es6migrate/pkg/transform"
	"gitlab.com/tozd/go/errors"
)

// ErrMigrationFailed is returned when at least one file of the batch failed.
var ErrMigrationFailed = errors.Base("migration failed")

func NewMigrateCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		concurrency int
		noProgress  bool
	)

	cmd := &cobra.Command{
		Use:   "migrate [files or globs...]",
		Short: "Migrate CoffeeScript files to ES6",
		Long: `Migrate runs every file through the conversion chain.
It will:
1. Expand the arguments, or the configured include patterns
2. Check that every external tool is available
3. Convert, rewrite modules and lint each file concurrently
4. Write the migrated file and remove the original
5. Report every file that failed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "migrate").Logger().WithContext(cmd.Context())

			cfg := *ro.Config
			if cmd.Flags().Changed("concurrency") {
				cfg.Concurrency = concurrency
			}

			var progress io.Writer
			if !noProgress {
				progress = cmd.ErrOrStderr()
			}

			outcome, err := runMigrate(ctx, &cfg, args, progress)
			if err != nil {
				return err
			}

			report.NewEmitter(cmd.OutOrStdout()).Emit(ctx, outcome)
			if outcome.Failed() > 0 {
				return errors.Errorf("%w: %d of %d files", ErrMigrationFailed, outcome.Failed(), outcome.Total)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "maximum files migrated at once, 0 for no limit")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the progress bar")

	return cmd
}

func runMigrate(ctx context.Context, cfg *config.Config, args []string, progress io.Writer) (*migrate.BatchOutcome, error) {
	if cfg.Concurrency < 0 {
		return nil, errors.Errorf("%w: concurrency must not be negative", migrate.ErrConfig)
	}

	paths, err := resolveFiles(ctx, cfg, args)
	if err != nil {
		return nil, err
	}

	stages, err := transform.Build(cfg)
	if err != nil {
		return nil, errors.Errorf("%w: %s", migrate.ErrConfig, err.Error())
	}
	if err := transform.Verify(stages); err != nil {
		return nil, err
	}

	mgr := files.NewManager(".")
	options := migrate.Options{
		Reader:      mgr,
		Writer:      mgr,
		Deleter:     mgr,
		Stages:      stages,
		Concurrency: cfg.Concurrency,
		Timeout:     cfg.TimeoutDuration(),
	}
	if progress != nil {
		options.Observer = report.NewProgress(progress, "Migrating")
	}

	m, err := migrate.New(options)
	if err != nil {
		return nil, errors.Errorf("creating migrator: %w", err)
	}

	outcome, err := m.RunBatch(ctx, paths, migrate.BatchConfig{SourceExt: cfg.SourceExt, TargetExt: cfg.TargetExt})
	if err != nil {
		return nil, errors.Errorf("running batch: %w", err)
	}
	return outcome, nil
}

// resolveFiles expands the arguments, falling back to the configured include
// patterns and then to every source file below the working directory
func resolveFiles(ctx context.Context, cfg *config.Config, args []string) ([]string, error) {
	patterns := args
	if len(patterns) == 0 {
		patterns = cfg.Include
	}
	if len(patterns) == 0 {
		patterns = []string{"**/*" + cfg.SourceExt}
	}

	paths, err := files.Expand(ctx, patterns, cfg.Ignore)
	if err != nil {
		return nil, errors.Errorf("%w: expanding files: %s", migrate.ErrConfig, err.Error())
	}
	if len(paths) == 0 {
		return nil, errors.Errorf("%w: no files match %v", migrate.ErrConfig, patterns)
	}
	return paths, nil
}

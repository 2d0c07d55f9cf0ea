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
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/walteh/es6migrate/cmd/es6migrate/opts"
	"github.com/walteh/es6migrate/pkg/files"
	"github.com/walteh/es6migrate/pkg/migrate"
	"gitlab.com/tozd/go/errors"
)

func NewPlanCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [files or globs...]",
		Short: "Show which files would be migrated",
		Long: `Plan lists every source file with the file it would become.
Nothing is converted, written or removed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := ro.Config

			paths, err := resolveFiles(ctx, cfg, args)
			if err != nil {
				return err
			}

			mgr := files.NewManager(".")
			out := cmd.OutOrStdout()
			for _, path := range paths {
				dest, err := migrate.DestinationPath(path, cfg.SourceExt, cfg.TargetExt)
				if err != nil {
					return errors.Errorf("planning %s: %w", path, err)
				}

				exists, err := mgr.FileExists(ctx, dest)
				if err != nil {
					return errors.Errorf("checking %s: %w", dest, err)
				}

				line := fmt.Sprintf("%s -> %s", path, dest)
				if exists {
					line += color.YellowString(" (overwrites existing file)")
				}
				fmt.Fprintln(out, line)
			}

			fmt.Fprintln(out, color.New(color.Faint).Sprintf("%d files, %s", len(paths), cfg))
			return nil
		},
	}

	return cmd
}

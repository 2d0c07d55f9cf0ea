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

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/walteh/es6migrate/cmd/es6migrate/commands"
	"github.com/walteh/es6migrate/cmd/es6migrate/opts"
)

func main() {
	if err := loadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("❌ %v", err))
		os.Exit(1)
	}

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("❌ %v", err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	ro := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "es6migrate",
		Short: "Migrate CoffeeScript sources to linted ES6 modules",
		Long: `es6migrate converts CoffeeScript files to JavaScript, rewrites their
modules to ES6 imports and exports, lints the result and replaces each
original with the migrated file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context())
			cmd.SetContext(ctx)
			if cmd.Name() == "version" {
				return nil
			}
			return loadRootOpts(ctx, ro)
		},
	}

	addRootFlags(rootCmd)

	rootCmd.AddCommand(
		commands.NewMigrateCmd(ro),
		commands.NewPlanCmd(ro),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), FormatVersion())
		},
	}
}

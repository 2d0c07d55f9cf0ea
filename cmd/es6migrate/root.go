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
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/es6migrate/cmd/es6migrate/opts"
	"github.com/walteh/es6migrate/pkg/config"
	"gitlab.com/tozd/go/errors"
)

const (
	envConfig = "ES6MIGRATE_CONFIG"
	envDebug  = "ES6MIGRATE_DEBUG"
)

var (
	// Flags
	configFile   string
	debugLogging bool
)

// loadDotEnv reads .env from the working directory when present
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return errors.Errorf("loading .env: %w", err)
	}
	return nil
}

// addRootFlags adds shared flags to the root command, defaulting from the environment
func addRootFlags(cmd *cobra.Command) {
	defaultConfig := config.DefaultFileName
	if v, ok := os.LookupEnv(envConfig); ok && v != "" {
		defaultConfig = v
	}
	defaultDebug := false
	if v, ok := os.LookupEnv(envDebug); ok {
		defaultDebug, _ = strconv.ParseBool(v)
	}

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", defaultConfig, "config file path")
	cmd.PersistentFlags().BoolVarP(&debugLogging, "debug", "d", defaultDebug, "enable debug logging")
}

// setupLogging configures zerolog based on flags and returns a context carrying the logger
func setupLogging(ctx context.Context) context.Context {
	if debugLogging {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
	return log.WithContext(ctx)
}

// loadRootOpts fills the shared options once flags are parsed
func loadRootOpts(ctx context.Context, ro *opts.RootOpts) error {
	cfg, err := config.LoadConfigOrDefault(ctx, configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Str("location", cfg.Location()).Msg("configuration loaded")

	ro.ConfigFile = configFile
	ro.Config = cfg
	return nil
}

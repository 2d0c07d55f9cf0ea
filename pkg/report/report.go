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

package report

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/es6migrate/pkg/migrate"
)

const (
	failedHeader = "------ failed migrations ------"
	failedFooter = "-------------------------------"
)

// 📝 Summary renders a batch outcome as plain lines
func Summary(outcome *migrate.BatchOutcome) []string {
	lines := []string{headline(outcome)}

	if len(outcome.Errors) > 0 {
		lines = append(lines, failedHeader)
		for _, rec := range outcome.Errors {
			lines = append(lines, formatRecord(rec))
		}
		lines = append(lines, failedFooter)
	}

	for _, rec := range outcome.Warnings {
		lines = append(lines, "original not removed: "+formatRecord(rec))
	}

	return lines
}

func headline(outcome *migrate.BatchOutcome) string {
	switch {
	case outcome.Failed() == 0:
		return fmt.Sprintf("migration complete: %d of %d files migrated", outcome.Completed, outcome.Total)
	case outcome.Completed == 0:
		return fmt.Sprintf("migration failed: 0 of %d files migrated", outcome.Total)
	default:
		return fmt.Sprintf("migration complete with errors: %d of %d files migrated, %d failed", outcome.Completed, outcome.Total, outcome.Failed())
	}
}

func formatRecord(rec migrate.ErrorRecord) string {
	return fmt.Sprintf("%s [%s] => %s", rec.FileID, rec.Stage, oneLine(rec.Message))
}

func oneLine(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}

// 🎯 Emitter writes the summary to a console and the structured log
type Emitter struct {
	console io.Writer
	mu      sync.Mutex
}

// 🏭 NewEmitter creates an emitter writing to console
func NewEmitter(console io.Writer) *Emitter {
	return &Emitter{console: console}
}

// 📣 Emit renders the outcome
func (e *Emitter) Emit(ctx context.Context, outcome *migrate.BatchOutcome) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logger := zerolog.Ctx(ctx)
	lines := Summary(outcome)

	symbol, paint := "✅", color.New(color.FgGreen)
	if outcome.Failed() > 0 {
		symbol, paint = "❌", color.New(color.FgRed)
	}
	fmt.Fprintf(e.console, "\n%s %s\n", symbol, paint.Sprint(lines[0]))

	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)
	for _, line := range lines[1:] {
		switch {
		case line == failedHeader || line == failedFooter:
			fmt.Fprintln(e.console, color.New(color.Faint).Sprint(line))
		case strings.HasPrefix(line, "original not removed: "):
			fmt.Fprintf(e.console, "⚠️  %s\n", yellow.Sprint(line))
		default:
			fmt.Fprintf(e.console, "    %s\n", red.Sprint(line))
		}
	}

	for _, rec := range outcome.Errors {
		logger.Error().Str("file", rec.FileID).Str("stage", string(rec.Stage)).Err(rec.Err).Msg("file failed")
	}
	for _, rec := range outcome.Warnings {
		logger.Warn().Str("file", rec.FileID).Str("stage", string(rec.Stage)).Err(rec.Err).Msg("original not removed")
	}
	logger.Info().
		Int("total", outcome.Total).
		Int("completed", outcome.Completed).
		Int("failed", outcome.Failed()).
		Int("warnings", len(outcome.Warnings)).
		Msg("batch complete")
}

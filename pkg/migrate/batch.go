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

package migrate

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 👀 Observer is notified of batch progress. Calls are serialized.
type Observer interface {
	BatchStarted(total int)
	FileFinished(outcome FileOutcome, done, total int)
	BatchResolved(outcome *BatchOutcome)
}

// 🔧 Options contains the collaborators of a Migrator
type Options struct {
	Reader  Reader
	Writer  Writer
	Deleter Deleter
	Stages  Stages

	// Observer is optional.
	Observer Observer
	// Concurrency caps in-flight pipelines, 0 means one per file.
	Concurrency int
	// Timeout bounds a whole batch, 0 means no deadline.
	Timeout time.Duration
}

// 🎮 Migrator runs batches of file migrations
type Migrator struct {
	opts Options
}

// 🏭 New creates a migrator with the given options
func New(opts Options) (*Migrator, error) {
	if opts.Reader == nil {
		return nil, configErrorf("reader is required")
	}
	if opts.Writer == nil {
		return nil, configErrorf("writer is required")
	}
	if opts.Deleter == nil {
		return nil, configErrorf("deleter is required")
	}
	if err := opts.Stages.validate(); err != nil {
		return nil, err
	}
	if opts.Concurrency < 0 {
		return nil, configErrorf("concurrency must not be negative, got %d", opts.Concurrency)
	}
	return &Migrator{opts: opts}, nil
}

// 🚀 RunBatch migrates every file and resolves exactly once.
// Only an invalid request returns an error; per-file failures land in the outcome.
func (m *Migrator) RunBatch(ctx context.Context, files []string, cfg BatchConfig) (*BatchOutcome, error) {
	if err := validateRequest(files, cfg); err != nil {
		return nil, err
	}

	if m.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.opts.Timeout)
		defer cancel()
	}

	logger := zerolog.Ctx(ctx)
	logger.Debug().Int("files", len(files)).Str("source_ext", cfg.SourceExt).Str("target_ext", cfg.TargetExt).Msg("starting batch")

	pipeline := NewPipeline(m.opts.Reader, m.opts.Writer, m.opts.Deleter, m.opts.Stages, cfg)
	t := newTally(files)
	m.notifyStarted(len(files))

	// every started pipeline is waited for, so results never outnumber N
	results := make(chan FileOutcome, len(files))
	var g errgroup.Group
	if m.opts.Concurrency > 0 {
		g.SetLimit(m.opts.Concurrency)
	}
	go func() {
		defer close(results)
		for _, file := range files {
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				results <- pipeline.Run(ctx, file)
				return nil
			})
		}
		_ = g.Wait()
	}()

	for outcome := range results {
		m.record(ctx, t, expired(ctx, outcome))
	}

	if !t.complete() {
		logger.Warn().Err(ctx.Err()).Int("pending", len(files)-t.done).Msg("batch expired")
		for _, file := range t.pending() {
			m.record(ctx, t, failed(file, StageTimeout, ctx.Err()))
		}
	}

	result := t.outcome()
	logger.Debug().Int("completed", result.Completed).Int("failed", result.Failed()).Msg("batch resolved")
	if m.opts.Observer != nil {
		m.opts.Observer.BatchResolved(result)
	}
	return result, nil
}

// expired relabels a failure caused by the batch context as a Timeout.
// Outcomes that got past the deadline, including finished writes, are kept.
func expired(ctx context.Context, outcome FileOutcome) FileOutcome {
	err := ctx.Err()
	if err == nil || outcome.Failure == nil || !errors.Is(outcome.Failure.Err, err) {
		return outcome
	}
	return failed(outcome.FileID, StageTimeout, outcome.Failure.Err)
}

func (m *Migrator) record(ctx context.Context, t *tally, outcome FileOutcome) {
	if !t.record(outcome) {
		zerolog.Ctx(ctx).Warn().Str("file", outcome.FileID).Msg("dropping duplicate outcome")
		return
	}
	if m.opts.Observer != nil {
		m.opts.Observer.FileFinished(outcome, t.done, t.total)
	}
}

func (m *Migrator) notifyStarted(total int) {
	if m.opts.Observer != nil {
		m.opts.Observer.BatchStarted(total)
	}
}

func validateRequest(files []string, cfg BatchConfig) error {
	if len(files) == 0 {
		return configErrorf("at least one file is required")
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(files))
	for _, file := range files {
		if _, ok := seen[file]; ok {
			return configErrorf("file %q listed more than once", file)
		}
		seen[file] = struct{}{}
		if _, err := DestinationPath(file, cfg.SourceExt, cfg.TargetExt); err != nil {
			return err
		}
	}
	return nil
}

// 🧮 tally is the completion counter and error log of one batch.
// It is owned by the RunBatch goroutine; pipelines only reach it through the results channel.
type tally struct {
	total    int
	done     int
	files    []string
	finished map[string]bool
	result   BatchOutcome
}

func newTally(files []string) *tally {
	finished := make(map[string]bool, len(files))
	for _, f := range files {
		finished[f] = false
	}
	return &tally{
		total:    len(files),
		files:    files,
		finished: finished,
		result:   BatchOutcome{Total: len(files)},
	}
}

// record appends the outcome and counts it in one step. It reports false for
// an unknown file or one that already has an outcome.
func (t *tally) record(outcome FileOutcome) bool {
	if done, known := t.finished[outcome.FileID]; !known || done {
		return false
	}
	t.finished[outcome.FileID] = true

	if outcome.Failure != nil {
		t.result.Errors = append(t.result.Errors, newErrorRecord(outcome.Failure))
	} else {
		t.result.Completed++
		if outcome.Warning != nil {
			t.result.Warnings = append(t.result.Warnings, newErrorRecord(outcome.Warning))
		}
	}
	t.done++
	return true
}

func (t *tally) complete() bool { return t.done == t.total }

func (t *tally) pending() []string {
	var out []string
	for _, f := range t.files {
		if !t.finished[f] {
			out = append(out, f)
		}
	}
	return out
}

func (t *tally) outcome() *BatchOutcome {
	result := t.result
	return &result
}

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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📥 Reader loads the content of a source file
type Reader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// 📤 Writer stores the content of a migrated file
type Writer interface {
	WriteFile(ctx context.Context, path string, content []byte) error
}

// 🗑️ Deleter removes an original file
type Deleter interface {
	DeleteFile(ctx context.Context, path string) error
}

type fileIDKey struct{}

// WithFileID records the file being migrated in the context.
func WithFileID(ctx context.Context, file string) context.Context {
	return context.WithValue(ctx, fileIDKey{}, file)
}

// FileID returns the file a stage is running for.
func FileID(ctx context.Context) (string, bool) {
	file, ok := ctx.Value(fileIDKey{}).(string)
	return file, ok
}

// 🔄 Pipeline runs the stage chain for one file at a time
type Pipeline struct {
	reader  Reader
	writer  Writer
	deleter Deleter
	stages  Stages
	config  BatchConfig
}

// 🏭 NewPipeline creates a pipeline bound to one batch configuration
func NewPipeline(reader Reader, writer Writer, deleter Deleter, stages Stages, cfg BatchConfig) *Pipeline {
	return &Pipeline{
		reader:  reader,
		writer:  writer,
		deleter: deleter,
		stages:  stages,
		config:  cfg,
	}
}

// 🏃 Run migrates one file and always returns its terminal outcome
func (p *Pipeline) Run(ctx context.Context, file string) (outcome FileOutcome) {
	logger := zerolog.Ctx(ctx).With().Str("file", file).Logger()
	ctx = WithFileID(logger.WithContext(ctx), file)

	current := StageRead
	defer func() {
		if r := recover(); r != nil {
			outcome = failed(file, current, errors.Errorf("%s panicked: %v", current, r))
		}
		if outcome.Failure != nil {
			logger.Debug().Str("stage", string(outcome.Failure.Stage)).Err(outcome.Failure.Err).Msg("file failed")
		}
	}()

	dest, err := DestinationPath(file, p.config.SourceExt, p.config.TargetExt)
	if err != nil {
		return failed(file, StageRead, err)
	}

	if err := ctx.Err(); err != nil {
		return failed(file, StageRead, err)
	}
	content, err := p.reader.ReadFile(ctx, file)
	if err != nil {
		return failed(file, StageRead, errors.Errorf("reading file: %w", err))
	}

	for _, stage := range p.stages.ordered() {
		current = stage.Name()
		logger.Trace().Str("stage", string(current)).Msg("running stage")
		result := RunStage(ctx, stage, content)
		if result.Failed() {
			return failed(file, current, result.Err())
		}
		content = result.Next()
	}

	current = StageFinalize
	return p.finalize(ctx, file, dest, content)
}

// 💾 finalize writes the new file, then removes the original
func (p *Pipeline) finalize(ctx context.Context, file, dest string, content []byte) FileOutcome {
	if err := ctx.Err(); err != nil {
		return failed(file, StageFinalize, err)
	}

	if err := p.writer.WriteFile(ctx, dest, content); err != nil {
		return failed(file, StageFinalize, errors.Errorf("writing %s: %w", dest, err))
	}

	outcome := completed(file, dest)
	if err := p.deleter.DeleteFile(ctx, file); err != nil {
		outcome.Warning = newStageError(file, StageFinalize, errors.Errorf("removing original: %w", err))
	}
	return outcome
}

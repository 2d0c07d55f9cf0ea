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

	"gitlab.com/tozd/go/errors"
)

// 🏷️ StageName identifies a step of the file pipeline
type StageName string

const (
	StageRead           StageName = "Read"
	StageConvert        StageName = "Convert"
	StageRewriteModules StageName = "RewriteModules"
	StageLint           StageName = "Lint"
	StageFinalize       StageName = "Finalize"
	StageTimeout        StageName = "Timeout"
)

// 🔧 Stage transforms one file's content into the next content
type Stage interface {
	Name() StageName
	Apply(ctx context.Context, content []byte) ([]byte, error)
}

// 🔧 StageFunc adapts a function to the Stage interface
type StageFunc struct {
	StageName StageName
	Fn        func(ctx context.Context, content []byte) ([]byte, error)
}

func (s StageFunc) Name() StageName { return s.StageName }

func (s StageFunc) Apply(ctx context.Context, content []byte) ([]byte, error) {
	return s.Fn(ctx, content)
}

// 📦 Stages is the transformation chain run between read and finalize
type Stages struct {
	Convert        Stage
	RewriteModules Stage
	Lint           Stage
}

func (s Stages) ordered() []Stage {
	return []Stage{s.Convert, s.RewriteModules, s.Lint}
}

func (s Stages) validate() error {
	if s.Convert == nil {
		return configErrorf("convert stage is required")
	}
	if s.RewriteModules == nil {
		return configErrorf("rewrite modules stage is required")
	}
	if s.Lint == nil {
		return configErrorf("lint stage is required")
	}
	return nil
}

// 📬 StageOutcome is either an advanced value or a failure, never both
type StageOutcome struct {
	next []byte
	err  error
}

// Advance builds a successful outcome.
func Advance(next []byte) StageOutcome {
	return StageOutcome{next: next}
}

// Fail builds a failed outcome.
func Fail(err error) StageOutcome {
	if err == nil {
		err = errors.New("stage failed without an error")
	}
	return StageOutcome{err: err}
}

func (o StageOutcome) Failed() bool { return o.err != nil }

func (o StageOutcome) Next() []byte { return o.next }

func (o StageOutcome) Err() error { return o.err }

// 🛡️ RunStage applies a stage, turning panics and empty output into failures
func RunStage(ctx context.Context, stage Stage, content []byte) (outcome StageOutcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = Fail(errors.Errorf("stage %s panicked: %v", stage.Name(), r))
		}
	}()

	if err := ctx.Err(); err != nil {
		return Fail(err)
	}

	next, err := stage.Apply(ctx, content)
	if err != nil {
		return Fail(err)
	}
	if len(next) == 0 && len(content) != 0 {
		return Fail(errors.Errorf("stage %s produced no content", stage.Name()))
	}
	return Advance(next)
}

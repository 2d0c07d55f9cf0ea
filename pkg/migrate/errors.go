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
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// 🏷️ error kinds, match with errors.Is
var (
	ErrIO      = errors.Base("io error")
	ErrSyntax  = errors.Base("syntax error")
	ErrRewrite = errors.Base("rewrite error")
	ErrLint    = errors.Base("lint error")
	ErrConfig  = errors.Base("config error")
	ErrTimeout = errors.Base("timeout")
)

// 🚨 StageError is the failure of one stage for one file
type StageError struct {
	FileID string
	Stage  StageName
	Kind   error
	Err    error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s [%s]: %s: %v", e.FileID, e.Stage, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *StageError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// 🏷️ kindOf maps a stage to the error kind its failures carry
func kindOf(stage StageName) error {
	switch stage {
	case StageConvert:
		return ErrSyntax
	case StageRewriteModules:
		return ErrRewrite
	case StageLint:
		return ErrLint
	case StageTimeout:
		return ErrTimeout
	default:
		return ErrIO
	}
}

func newStageError(file string, stage StageName, err error) *StageError {
	return &StageError{
		FileID: file,
		Stage:  stage,
		Kind:   kindOf(stage),
		Err:    err,
	}
}

func configErrorf(format string, args ...any) error {
	return errors.Errorf("%w: "+format, append([]any{ErrConfig}, args...)...)
}

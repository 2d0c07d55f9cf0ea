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
	"path/filepath"
	"strings"
)

// ⚙️ BatchConfig holds the settings shared by every file of a batch
type BatchConfig struct {
	SourceExt string
	TargetExt string
}

func (c BatchConfig) validate() error {
	if !strings.HasPrefix(c.SourceExt, ".") || len(c.SourceExt) < 2 {
		return configErrorf("source extension %q must start with a dot", c.SourceExt)
	}
	if !strings.HasPrefix(c.TargetExt, ".") || len(c.TargetExt) < 2 {
		return configErrorf("target extension %q must start with a dot", c.TargetExt)
	}
	if c.SourceExt == c.TargetExt {
		return configErrorf("source and target extension are both %q", c.SourceExt)
	}
	return nil
}

// 📍 DestinationPath swaps the source extension of file for the target extension
func DestinationPath(file, sourceExt, targetExt string) (string, error) {
	base := filepath.Base(file)
	if !strings.HasSuffix(base, sourceExt) || base == sourceExt {
		return "", configErrorf("file %q does not have extension %q", file, sourceExt)
	}
	return filepath.Join(filepath.Dir(file), strings.TrimSuffix(base, sourceExt)+targetExt), nil
}

// 📝 ErrorRecord is one entry of the batch error log
type ErrorRecord struct {
	FileID  string
	Stage   StageName
	Message string
	Err     error
}

func newErrorRecord(err *StageError) ErrorRecord {
	return ErrorRecord{
		FileID:  err.FileID,
		Stage:   err.Stage,
		Message: err.Err.Error(),
		Err:     err,
	}
}

// 📄 FileOutcome is the terminal result of one file pipeline
type FileOutcome struct {
	FileID      string
	Destination string      // set when the file completed
	Failure     *StageError // set when the file failed
	Warning     *StageError // set when the file completed but the original was not removed
}

func completed(file, dest string) FileOutcome {
	return FileOutcome{FileID: file, Destination: dest}
}

func failed(file string, stage StageName, err error) FileOutcome {
	return FileOutcome{FileID: file, Failure: newStageError(file, stage, err)}
}

func (o FileOutcome) Completed() bool { return o.Failure == nil }

// 📊 BatchOutcome is the single aggregate result of one batch
type BatchOutcome struct {
	Total     int
	Completed int
	Errors    []ErrorRecord // one per failed file
	Warnings  []ErrorRecord // completed files whose original could not be removed
}

func (b *BatchOutcome) Failed() int { return len(b.Errors) }

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

package migrate_test

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/walteh/es6migrate/pkg/migrate"
)

// 🧪 mockFiles implements Reader, Writer and Deleter
type mockFiles struct {
	mock.Mock
}

func newMockFiles(t *testing.T) *mockFiles {
	m := &mockFiles{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockFiles) ReadFile(ctx context.Context, path string) ([]byte, error) {
	args := m.Called(ctx, path)
	content, _ := args.Get(0).([]byte)
	return content, args.Error(1)
}

func (m *mockFiles) WriteFile(ctx context.Context, path string, content []byte) error {
	return m.Called(ctx, path, content).Error(0)
}

func (m *mockFiles) DeleteFile(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

// 🧪 recordingObserver records every notification
type recordingObserver struct {
	mu       sync.Mutex
	started  int
	finished []migrate.FileOutcome
	resolved int
	notify   chan string
}

func newRecordingObserver(buffer int) *recordingObserver {
	return &recordingObserver{notify: make(chan string, buffer)}
}

func (o *recordingObserver) BatchStarted(total int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.started++
}

func (o *recordingObserver) FileFinished(outcome migrate.FileOutcome, done, total int) {
	o.mu.Lock()
	o.finished = append(o.finished, outcome)
	o.mu.Unlock()
	o.notify <- outcome.FileID
}

func (o *recordingObserver) BatchResolved(outcome *migrate.BatchOutcome) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.resolved++
}

func identity(name migrate.StageName) migrate.Stage {
	return migrate.StageFunc{
		StageName: name,
		Fn: func(ctx context.Context, content []byte) ([]byte, error) {
			return content, nil
		},
	}
}

func upper() migrate.Stage {
	return migrate.StageFunc{
		StageName: migrate.StageConvert,
		Fn: func(ctx context.Context, content []byte) ([]byte, error) {
			return bytes.ToUpper(content), nil
		},
	}
}

func identityStages() migrate.Stages {
	return migrate.Stages{
		Convert:        identity(migrate.StageConvert),
		RewriteModules: identity(migrate.StageRewriteModules),
		Lint:           identity(migrate.StageLint),
	}
}

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

var coffeeToJS = migrate.BatchConfig{SourceExt: ".coffee", TargetExt: ".js"}
